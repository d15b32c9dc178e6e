package http

import (
	"testing"
	"time"

	"github.com/freekieb7/formserve/test"
)

func TestConfigWithDefaults(t *testing.T) {
	test.Equal(t, DefaultConfig(), Config{}.withDefaults())

	c := Config{
		Workers:      2,
		MaxHeadSize:  128,
		ReadTimeout:  -1,
		WriteTimeout: time.Second,
	}.withDefaults()

	test.Equal(t, DefaultBacklog, c.Backlog)
	test.Equal(t, 2, c.Workers)
	test.Equal(t, 128, c.MaxHeadSize)
	test.Equal(t, int64(MaxRequestSize), c.MaxBodySize)
	test.Equal(t, time.Duration(-1), c.ReadTimeout)
	test.Equal(t, time.Second, c.WriteTimeout)
}
