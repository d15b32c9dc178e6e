package http

import (
	"bufio"
	"strings"
)

type HeaderField struct {
	Name  string
	Value string
}

// Response is written as a status line, the extra headers, Content-Length,
// "Connection: close" and the body. Content-Length and Connection set by a
// responder are ignored.
type Response struct {
	Status  uint16
	Headers []HeaderField
	Body    []byte
}

func (res *Response) Reset() {
	res.Status = StatusOK
	res.Headers = res.Headers[:0]
	res.Body = res.Body[:0]
}

func (res *Response) SetHeader(name, value string) {
	for i := range res.Headers {
		if strings.EqualFold(res.Headers[i].Name, name) {
			res.Headers[i].Value = value
			return
		}
	}
	res.Headers = append(res.Headers, HeaderField{Name: name, Value: value})
}

func (res *Response) WithStatus(status uint16) *Response {
	res.Status = status
	return res
}

func (res *Response) WithText(payload string) *Response {
	res.SetHeader("Content-Type", "text/plain; charset=utf-8")
	res.Body = append(res.Body[:0], payload...)
	return res
}

func (res *Response) WithBytes(contentType string, payload []byte) *Response {
	res.SetHeader("Content-Type", contentType)
	res.Body = append(res.Body[:0], payload...)
	return res
}

func (res *Response) WriteTo(bw *bufio.Writer) error {
	status := res.Status
	if status == 0 {
		status = StatusOK
	}

	var num [20]byte

	bw.WriteString(protocolHttp11)
	bw.WriteByte(' ')
	bw.Write(num[:writeIntToBuffer(int(status), num[:])])
	bw.WriteByte(' ')
	bw.WriteString(StatusText(status))
	bw.Write(crlf)

	for _, h := range res.Headers {
		if strings.EqualFold(h.Name, contentLengthName) || strings.EqualFold(h.Name, "Connection") {
			continue
		}
		bw.WriteString(h.Name)
		bw.WriteString(": ")
		bw.WriteString(h.Value)
		bw.Write(crlf)
	}

	bw.WriteString("Content-Length: ")
	bw.Write(num[:writeIntToBuffer(len(res.Body), num[:])])
	bw.Write(crlf)
	bw.WriteString("Connection: close\r\n\r\n")

	_, err := bw.Write(res.Body)
	return err
}
