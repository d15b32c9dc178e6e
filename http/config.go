package http

import "time"

// Config bounds the resources a Server uses. Zero fields take the defaults;
// a negative timeout disables that deadline.
type Config struct {
	Backlog      int
	Workers      int
	MaxHeadSize  int
	MaxBodySize  int64
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Backlog:      DefaultBacklog,
		Workers:      DefaultWorkers,
		MaxHeadSize:  DefaultMaxHeadSize,
		MaxBodySize:  MaxRequestSize,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Backlog <= 0 {
		c.Backlog = d.Backlog
	}
	if c.Workers <= 0 {
		c.Workers = d.Workers
	}
	if c.MaxHeadSize <= 0 {
		c.MaxHeadSize = d.MaxHeadSize
	}
	if c.MaxBodySize <= 0 {
		c.MaxBodySize = d.MaxBodySize
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = d.ReadTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	return c
}
