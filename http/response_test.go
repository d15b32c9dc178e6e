package http

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/freekieb7/formserve/test"
)

func writeResponse(t *testing.T, res *Response) string {
	t.Helper()

	buf := &bytes.Buffer{}
	bw := bufio.NewWriter(buf)
	test.NoError(t, res.WriteTo(bw))
	test.NoError(t, bw.Flush())
	return buf.String()
}

func TestResponseWritePlaceholder(t *testing.T) {
	var res Response
	res.Reset()

	test.Equal(t, string(response200), writeResponse(t, &res))
}

func TestResponseWriteZeroStatus(t *testing.T) {
	test.Equal(t, string(response200), writeResponse(t, &Response{}))
}

func TestResponseWriteText(t *testing.T) {
	var res Response
	res.Reset()
	res.WithStatus(StatusNotFound).WithText("not found")
	res.SetHeader("X-Test", "foo")

	expected := "HTTP/1.1 404 Not Found\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"X-Test: foo\r\n" +
		"Content-Length: 9\r\n" +
		"Connection: close\r\n" +
		"\r\n" +
		"not found"
	test.Equal(t, expected, writeResponse(t, &res))
}

func TestResponseWriteIgnoresFramingHeaders(t *testing.T) {
	res := Response{Status: StatusOK, Body: []byte("hi")}
	res.SetHeader("content-length", "999")
	res.SetHeader("Connection", "keep-alive")

	expected := "HTTP/1.1 200 OK\r\nContent-Length: 2\r\nConnection: close\r\n\r\nhi"
	test.Equal(t, expected, writeResponse(t, &res))
}

func TestResponseSetHeaderReplaces(t *testing.T) {
	var res Response
	res.SetHeader("Content-Type", "text/plain")
	res.WithBytes("application/json", []byte(`{}`))

	test.Equal(t, []HeaderField{{Name: "Content-Type", Value: "application/json"}}, res.Headers)
}

func TestStatusText(t *testing.T) {
	test.Equal(t, "Bad Request", StatusText(StatusBadRequest))
	test.Equal(t, unknownStatusCode, StatusText(299))
	test.Equal(t, unknownStatusCode, StatusText(302))
}

func TestStatusTextCoversEmittedCodes(t *testing.T) {
	codes := []uint16{StatusOK, StatusCreated, StatusBadRequest, StatusNotFound, StatusMethodNotAllowed, StatusInternalServerError}

	test.Equal(t, len(codes), len(statusMessages))
	for _, code := range codes {
		test.True(t, StatusText(code) != unknownStatusCode, "reason phrase for emitted code")
	}
}
