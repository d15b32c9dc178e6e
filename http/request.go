package http

import (
	"bytes"
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// Request is one request framed off a connection.
type Request struct {
	Method     string
	RequestURI string
	Proto      string

	// Path is the percent-decoded base path, without the query string.
	Path     string
	RawPath  string
	RawQuery string
	Query    Values

	// Headers holds the raw header lines in the order they were received.
	Headers []string

	// ContentLength is -1 when no Content-Length header was present.
	ContentLength int64
	// Body is nil unless the request carried a Content-Length header.
	Body []byte
}

func (req *Request) Reset() {
	*req = Request{ContentLength: -1}
}

func (req *Request) HasBody() bool {
	return req.Body != nil
}

// HeaderValue returns the trimmed value of the first header line whose name
// matches name case-insensitively.
func (req *Request) HeaderValue(name string) (string, bool) {
	for _, line := range req.Headers {
		k, v, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(k), name) {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}

// ParseHead parses the request line and header block at the start of buf and
// returns the number of bytes they occupy, header terminator included. Only
// buf[:len(buf)] is inspected; the body, if any, is not part of the result.
func (req *Request) ParseHead(buf []byte) (int, error) {
	n := len(buf)

	lineEnd := IndexOf(buf, crlf, 0, n)
	if lineEnd == NotFound {
		return 0, ErrRequestLineNotTerminated
	}

	tokens := strings.Split(string(buf[:lineEnd]), " ")
	if len(tokens) != 3 {
		return 0, fmt.Errorf("%w: %d tokens", ErrMalformedRequestLine, len(tokens))
	}
	method, target, proto := tokens[0], tokens[1], tokens[2]

	if !slices.Contains(allowedMethods[:], method) {
		return 0, fmt.Errorf("%w: %q", ErrMethodNotAllowed, method)
	}

	if !strings.HasPrefix(target, "/") {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPath, target)
	}

	rawPath, rawQuery, hasQuery := strings.Cut(target, "?")
	path, err := url.PathUnescape(rawPath)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidPath, err)
	}

	req.Method = method
	req.RequestURI = target
	req.Proto = proto
	req.Path = path
	req.RawPath = rawPath
	req.RawQuery = rawQuery
	if method == MethodGet && hasQuery {
		req.Query = ParseQuery(rawQuery)
	} else {
		req.Query = Values{}
	}

	headersStart := lineEnd + len(crlf)
	headersEnd, consumed := headersStart, headersStart+len(crlf)
	if !bytes.HasPrefix(buf[headersStart:], crlf) {
		headersEnd = IndexOf(buf, headTerminator, headersStart, n)
		if headersEnd == NotFound {
			return 0, ErrHeadersNotTerminated
		}
		consumed = headersEnd + len(headTerminator)
	}

	req.Headers = nil
	if headersEnd > headersStart {
		req.Headers = strings.Split(string(buf[headersStart:headersEnd]), headerSeparator)
	}

	req.ContentLength = -1
	if method != MethodGet {
		if v, found := contentLength(req.Headers); found {
			length, err := parseContentLength(v)
			if err != nil {
				return 0, err
			}
			req.ContentLength = length
		}
	}

	return consumed, nil
}

// contentLength returns the value of the first header line starting with
// "Content-Length", compared as received.
func contentLength(headers []string) (string, bool) {
	for _, line := range headers {
		if !strings.HasPrefix(line, contentLengthName) {
			continue
		}
		v := strings.TrimSpace(line[len(contentLengthName):])
		v = strings.TrimPrefix(v, ":")
		return strings.TrimSpace(v), true
	}
	return "", false
}
