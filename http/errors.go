package http

import "errors"

var (
	ErrRequestLineNotTerminated = errors.New("http: request line not terminated")
	ErrMalformedRequestLine     = errors.New("http: malformed request line")
	ErrMethodNotAllowed         = errors.New("http: method not allowed")
	ErrInvalidPath              = errors.New("http: invalid request path")
	ErrHeadersNotTerminated     = errors.New("http: header block not terminated")
	ErrInvalidContentLength     = errors.New("http: invalid content-length")
	ErrBodyTooLarge             = errors.New("http: request body too large")

	ErrServerClosed = errors.New("http: server closed")
)

var malformed = [...]error{
	ErrRequestLineNotTerminated,
	ErrMalformedRequestLine,
	ErrMethodNotAllowed,
	ErrInvalidPath,
	ErrHeadersNotTerminated,
	ErrInvalidContentLength,
	ErrBodyTooLarge,
}

// IsMalformed reports whether err means the peer sent a request that must be
// answered with 400 Bad Request.
func IsMalformed(err error) bool {
	for _, target := range malformed {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// rejectReason is the short label used for the rejected-requests metric.
func rejectReason(err error) string {
	switch {
	case errors.Is(err, ErrRequestLineNotTerminated):
		return "request_line_not_terminated"
	case errors.Is(err, ErrMalformedRequestLine):
		return "malformed_request_line"
	case errors.Is(err, ErrMethodNotAllowed):
		return "method_not_allowed"
	case errors.Is(err, ErrInvalidPath):
		return "invalid_path"
	case errors.Is(err, ErrHeadersNotTerminated):
		return "headers_not_terminated"
	case errors.Is(err, ErrInvalidContentLength):
		return "invalid_content_length"
	case errors.Is(err, ErrBodyTooLarge):
		return "body_too_large"
	}
	return "unknown"
}
