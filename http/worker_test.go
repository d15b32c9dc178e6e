package http

import (
	"context"
	"net"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/freekieb7/formserve/test"
)

func TestRingBuffer(t *testing.T) {
	rb := NewRingBuffer[int](3)
	test.Equal(t, 4, rb.Cap())

	for i := range 4 {
		test.NoError(t, rb.Enqueue(i))
	}
	test.ErrorIs(t, rb.Enqueue(4), ErrFull)

	for i := range 4 {
		v, err := rb.Dequeue()
		test.NoError(t, err)
		test.Equal(t, i, v)
	}
	_, err := rb.Dequeue()
	test.ErrorIs(t, err, ErrEmpty)

	// Slots are reusable after a full lap.
	test.NoError(t, rb.Enqueue(42))
	v, err := rb.Dequeue()
	test.NoError(t, err)
	test.Equal(t, 42, v)
}

func TestWorkerPoolBoundsConcurrency(t *testing.T) {
	const size = 3

	var (
		running, peak atomic.Int32
		release       = make(chan struct{})
		started       = make(chan struct{}, size+1)
	)
	wp := NewWorkerPool(size, 16, func(w *worker, conn net.Conn) {
		defer conn.Close()

		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		started <- struct{}{}
		<-release
		running.Add(-1)
	})
	test.Equal(t, size, wp.Size())

	var clients []net.Conn
	t.Cleanup(func() {
		for _, c := range clients {
			c.Close()
		}
	})
	newConn := func() net.Conn {
		server, client := net.Pipe()
		clients = append(clients, client)
		return server
	}

	for range size {
		test.NoError(t, wp.Serve(context.Background(), newConn()))
	}
	for range size {
		<-started
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	test.ErrorIs(t, wp.Serve(ctx, newConn()), context.DeadlineExceeded)

	waiting := newConn()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		test.NoError(t, wp.Serve(context.Background(), waiting))
	}()

	close(release)
	wg.Wait()
	test.NoError(t, wp.Wait(context.Background()))
	test.Equal(t, int32(size), peak.Load())
}

func TestWorkerPoolCloseConns(t *testing.T) {
	wp := NewWorkerPool(2, 16, func(w *worker, conn net.Conn) {
		buf := make([]byte, 1)
		conn.Read(buf)
	})

	server, client := net.Pipe()
	defer client.Close()
	test.NoError(t, wp.Serve(context.Background(), server))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	test.ErrorIs(t, wp.Wait(ctx), context.DeadlineExceeded)

	wp.CloseConns()
	test.NoError(t, wp.Wait(context.Background()))
}
