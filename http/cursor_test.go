package http

import (
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/freekieb7/formserve/test"
)

func TestCursorFillAndNext(t *testing.T) {
	c := newCursor(8)
	r := iotest.OneByteReader(strings.NewReader("abcdefghij"))

	for !c.Full() {
		_, err := c.Fill(r)
		test.NoError(t, err)
	}
	test.Equal(t, "abcdefgh", string(c.Bytes()))

	n, err := c.Fill(r)
	test.NoError(t, err)
	test.Equal(t, 0, n)

	test.Equal(t, "abc", string(c.Next(3)))
	test.Equal(t, 5, c.Len())

	// Filling moves the unread window to the front.
	_, err = c.Fill(r)
	test.NoError(t, err)
	test.Equal(t, "defghi", string(c.Bytes()))

	test.Equal(t, "defghi", string(c.Next(100)))
	test.Equal(t, 0, c.Len())

	c.Fill(r)
	_, err = c.Fill(r)
	test.ErrorIs(t, err, io.EOF)
	test.Equal(t, "j", string(c.Bytes()))
}
