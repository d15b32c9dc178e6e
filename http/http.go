package http

import "time"

const (
	MaxRequestSize         = 2 * 1024 * 1024 // 2MB
	DefaultMaxHeadSize     = 4096            // request line + header block
	DefaultWriteBufferSize = 4096            // 4kB
	DefaultBacklog         = 50
	DefaultWorkers         = 64
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
)

const (
	MethodGet  = "GET"
	MethodPost = "POST"
)

var allowedMethods = [...]string{MethodGet, MethodPost}

var (
	crlf            = []byte("\r\n")
	headTerminator  = []byte("\r\n\r\n")
	headerSeparator = "\r\n"

	contentLengthName = "Content-Length"

	protocolHttp11 = "HTTP/1.1"

	// Pre-computed complete responses
	response400 = []byte("HTTP/1.1 400 Bad Request\r\nContent-Length: 0\r\nConnection: close\r\n\r\n")
	response200 = []byte("HTTP/1.1 200 OK\r\nContent-Length: 0\r\nConnection: close\r\n\r\n")
)

// NotFound is returned by IndexOf when the delimiter does not occur in range.
const NotFound = -1

// IndexOf returns the index of the first occurrence of delim in buf[start:max],
// or NotFound. Bytes outside [start, max) are never inspected.
func IndexOf(buf, delim []byte, start, max int) int {
	if max > len(buf) {
		max = len(buf)
	}
	if start < 0 {
		start = 0
	}
	if len(delim) == 0 {
		return NotFound
	}

outer:
	for i := start; i <= max-len(delim); i++ {
		for j := range delim {
			if buf[i+j] != delim[j] {
				continue outer
			}
		}
		return i
	}

	return NotFound
}
