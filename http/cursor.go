package http

import "io"

// cursor is the raw request buffer of a connection. buf[r:w] holds bytes that
// were read from the connection but not consumed yet; nothing outside that
// window is ever inspected. Leftover bytes after a request mark the start of
// the next one.
type cursor struct {
	buf  []byte
	r, w int
}

func newCursor(size int) cursor {
	return cursor{buf: make([]byte, size)}
}

func (c *cursor) Bytes() []byte {
	return c.buf[c.r:c.w]
}

func (c *cursor) Len() int {
	return c.w - c.r
}

func (c *cursor) Full() bool {
	return c.Len() == len(c.buf)
}

func (c *cursor) Reset() {
	c.r, c.w = 0, 0
}

// Fill performs a single read into the free tail of the buffer, moving the
// unread window to the front first.
func (c *cursor) Fill(rd io.Reader) (int, error) {
	if c.r > 0 {
		c.w = copy(c.buf, c.buf[c.r:c.w])
		c.r = 0
	}
	if c.w == len(c.buf) {
		return 0, nil
	}

	n, err := rd.Read(c.buf[c.w:])
	c.w += n
	return n, err
}

// Next consumes up to n bytes and returns them. The slice is only valid until
// the next Fill.
func (c *cursor) Next(n int) []byte {
	if n > c.Len() {
		n = c.Len()
	}
	b := c.buf[c.r : c.r+n]
	c.r += n
	if c.r == c.w {
		c.Reset()
	}
	return b
}
