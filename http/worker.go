package http

import (
	"bufio"
	"context"
	"errors"
	"net"
	"runtime"
	"sync"
	"sync/atomic"
)

// worker owns everything one connection needs, so nothing is shared between
// connections served in parallel.
type worker struct {
	cur    cursor
	bw     *bufio.Writer
	reqCtx RequestCtx

	conn net.Conn // guarded by WorkerPool.mu
}

// WorkerPool bounds the number of connections served concurrently. Idle
// workers wait in a lock-free ring buffer; sem counts the free ones.
type WorkerPool struct {
	workers []worker
	ready   RingBuffer[*worker]
	sem     chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex

	serve func(w *worker, conn net.Conn)
}

func NewWorkerPool(size, maxHeadSize int, serve func(w *worker, conn net.Conn)) *WorkerPool {
	wp := &WorkerPool{
		workers: make([]worker, size),
		ready:   NewRingBuffer[*worker](size),
		sem:     make(chan struct{}, size),
		serve:   serve,
	}
	for i := range wp.workers {
		wp.workers[i].cur = newCursor(maxHeadSize)
		wp.workers[i].bw = bufio.NewWriterSize(nil, DefaultWriteBufferSize)
		wp.ready.Enqueue(&wp.workers[i])
	}
	return wp
}

func (wp *WorkerPool) Size() int {
	return len(wp.workers)
}

// Serve hands conn to an idle worker, waiting for one to become free. It
// returns ctx.Err() if ctx ends first; conn is then left to the caller.
func (wp *WorkerPool) Serve(ctx context.Context, conn net.Conn) error {
	select {
	case wp.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	// Holding a semaphore slot guarantees an idle worker; an enqueue may still
	// be finishing on another goroutine.
	w, err := wp.ready.Dequeue()
	for err != nil {
		runtime.Gosched()
		w, err = wp.ready.Dequeue()
	}

	wp.mu.Lock()
	w.conn = conn
	wp.mu.Unlock()

	wp.wg.Add(1)
	go func() {
		defer wp.release(w)
		wp.serve(w, conn)
	}()
	return nil
}

func (wp *WorkerPool) release(w *worker) {
	wp.mu.Lock()
	w.conn = nil
	wp.mu.Unlock()

	w.bw.Reset(nil)
	w.cur.Reset()
	wp.ready.Enqueue(w)
	<-wp.sem
	wp.wg.Done()
}

// Wait blocks until every busy worker is back in the pool or ctx ends.
func (wp *WorkerPool) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		wp.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// CloseConns closes every connection currently being served. Their workers
// return to the pool once their reads or writes fail.
func (wp *WorkerPool) CloseConns() {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	for i := range wp.workers {
		if conn := wp.workers[i].conn; conn != nil {
			conn.Close()
		}
	}
}

var (
	ErrFull  = errors.New("ring buffer is full")
	ErrEmpty = errors.New("ring buffer is empty")
)

type RingBuffer[T any] struct {
	buffer []slot[T]
	mask   uint64
	enqPos uint64
	deqPos uint64
}

type slot[T any] struct {
	sequence uint64
	value    T
}

// NewRingBuffer creates a ring buffer holding at least size items; the
// capacity is rounded up to a power of 2.
func NewRingBuffer[T any](size int) RingBuffer[T] {
	capacity := 1
	for capacity < size {
		capacity <<= 1
	}

	buf := make([]slot[T], capacity)
	for i := range buf {
		buf[i].sequence = uint64(i)
	}
	return RingBuffer[T]{
		buffer: buf,
		mask:   uint64(capacity - 1),
	}
}

func (q *RingBuffer[T]) Cap() int {
	return len(q.buffer)
}

// Enqueue adds an item to the ring buffer
func (q *RingBuffer[T]) Enqueue(val T) error {
	for {
		pos := atomic.LoadUint64(&q.enqPos)
		slot := &q.buffer[pos&q.mask]

		seq := atomic.LoadUint64(&slot.sequence)
		delta := int64(seq) - int64(pos)

		if delta == 0 {
			if atomic.CompareAndSwapUint64(&q.enqPos, pos, pos+1) {
				slot.value = val
				atomic.StoreUint64(&slot.sequence, pos+1)
				return nil
			}
		} else if delta < 0 {
			return ErrFull
		} else {
			runtime.Gosched()
		}
	}
}

// Dequeue removes and returns the oldest item
func (q *RingBuffer[T]) Dequeue() (T, error) {
	var zero T
	for {
		pos := atomic.LoadUint64(&q.deqPos)
		slot := &q.buffer[pos&q.mask]

		seq := atomic.LoadUint64(&slot.sequence)
		delta := int64(seq) - int64(pos+1)

		if delta == 0 {
			if atomic.CompareAndSwapUint64(&q.deqPos, pos, pos+1) {
				val := slot.value
				slot.value = zero
				atomic.StoreUint64(&slot.sequence, pos+q.mask+1)
				return val, nil
			}
		} else if delta < 0 {
			return zero, ErrEmpty
		} else {
			runtime.Gosched()
		}
	}
}
