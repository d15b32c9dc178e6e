package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type Server struct {
	Name      string
	Responder Responder
	Config    Config

	// Logger defaults to an OpenTelemetry bridged logger.
	Logger *slog.Logger
	// TracerProvider and MeterProvider default to the global providers.
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider

	initOnce sync.Once
	initErr  error
	metrics  *instruments
	pool     *WorkerPool

	// baseCtx ends on Shutdown and unblocks an acceptor waiting for a worker.
	baseCtx context.Context
	cancel  context.CancelFunc

	mu         sync.Mutex
	listener   net.Listener
	acceptDone chan struct{}
	closed     atomic.Bool
}

func NewServer(name string, responder Responder, config Config) *Server {
	return &Server{
		Name:      name,
		Responder: responder,
		Config:    config,
	}
}

func (s *Server) init() error {
	s.initOnce.Do(func() {
		s.Config = s.Config.withDefaults()
		if s.Responder == nil {
			s.Responder = PlaceholderHandler
		}
		if s.Logger == nil {
			s.Logger = otelslog.NewLogger(instrumentationName)
		}
		if s.TracerProvider == nil {
			s.TracerProvider = otel.GetTracerProvider()
		}
		if s.MeterProvider == nil {
			s.MeterProvider = otel.GetMeterProvider()
		}

		s.metrics, s.initErr = newInstruments(s.TracerProvider, s.MeterProvider)
		s.pool = NewWorkerPool(s.Config.Workers, s.Config.MaxHeadSize, s.serveConn)
		s.baseCtx, s.cancel = context.WithCancel(context.Background())
		s.acceptDone = make(chan struct{})
	})
	return s.initErr
}

// Listen binds port with the given listen backlog and serves it until
// Shutdown or a fatal accept error.
func (s *Server) Listen(port, backlog int) error {
	ln, err := ListenTCP(port, backlog)
	if err != nil {
		return fmt.Errorf("listen on port %d: %w", port, err)
	}
	return s.Serve(ln)
}

// ListenAndServe is Listen with the configured backlog.
func (s *Server) ListenAndServe(port int) error {
	return s.Listen(port, s.Config.withDefaults().Backlog)
}

// Serve accepts connections on ln and hands each one to the worker pool. It
// always returns a non-nil error; ErrServerClosed after Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	if err := s.init(); err != nil {
		ln.Close()
		return err
	}

	s.mu.Lock()
	if s.closed.Load() {
		s.mu.Unlock()
		ln.Close()
		return ErrServerClosed
	}
	if s.listener != nil {
		s.mu.Unlock()
		ln.Close()
		return errors.New("http: server already serving")
	}
	s.listener = ln
	s.mu.Unlock()

	defer func() {
		ln.Close()
		close(s.acceptDone)
		s.Logger.Info("server has stopped", "name", s.Name)
	}()

	s.Logger.Info("accepting connections",
		"name", s.Name,
		"addr", ln.Addr().String(),
		"workers", s.pool.Size(),
	)

	retry := newAcceptBackOff()
	for {
		conn, err := ln.Accept()
		if err != nil {
			if s.closed.Load() || errors.Is(err, net.ErrClosed) {
				return ErrServerClosed
			}
			if isTemporary(err) {
				delay := retry.NextBackOff()
				s.Logger.Warn("accept failed, retrying", "error", err, "delay", delay)
				select {
				case <-time.After(delay):
					continue
				case <-s.baseCtx.Done():
					return ErrServerClosed
				}
			}
			s.Logger.Error("accept failed", "error", err)
			return fmt.Errorf("accept: %w", err)
		}
		retry.Reset()

		s.metrics.accepted.Add(s.baseCtx, 1)
		if err := s.pool.Serve(s.baseCtx, conn); err != nil {
			conn.Close()
			return ErrServerClosed
		}
	}
}

// Shutdown stops accepting connections and waits for the busy workers. When
// ctx ends first the remaining connections are closed and ctx.Err() returned.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.init(); err != nil {
		return err
	}

	s.closed.Store(true)
	s.cancel()

	s.mu.Lock()
	ln := s.listener
	s.mu.Unlock()

	if ln == nil {
		return nil
	}

	var errs error
	if err := ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		errs = err
	}

	select {
	case <-s.acceptDone:
	case <-ctx.Done():
		s.pool.CloseConns()
		return errors.Join(errs, ctx.Err())
	}

	if err := s.pool.Wait(ctx); err != nil {
		s.pool.CloseConns()
		errs = errors.Join(errs, err)
	}
	return errs
}

func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

func newAcceptBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 5 * time.Millisecond
	b.MaxInterval = time.Second
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// isTemporary reports accept errors caused by one failed connection or by
// momentary resource exhaustion.
func isTemporary(err error) bool {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}

	return errors.Is(err, syscall.ECONNABORTED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EMFILE) ||
		errors.Is(err, syscall.ENFILE) ||
		errors.Is(err, syscall.ENOBUFS) ||
		errors.Is(err, syscall.ENOMEM)
}
