package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// serveConn reads requests off conn one at a time until the peer closes the
// stream, a request is rejected or an I/O error occurs. conn is always closed.
func (s *Server) serveConn(w *worker, conn net.Conn) {
	ctx := context.Background()
	connID := uuid.New()
	logger := s.Logger.With("conn_id", connID.String(), "remote_addr", conn.RemoteAddr().String())

	s.metrics.active.Add(ctx, 1)
	defer func() {
		conn.Close()
		s.metrics.active.Add(ctx, -1)
	}()

	w.cur.Reset()
	w.bw.Reset(conn)
	w.reqCtx.ConnID = connID
	w.reqCtx.RemoteAddr = conn.RemoteAddr()

	for {
		w.reqCtx.reset(ctx)

		if s.Config.ReadTimeout > 0 {
			conn.SetReadDeadline(time.Now().Add(s.Config.ReadTimeout))
		}

		err := s.readRequest(w, conn, &w.reqCtx.Request)
		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			logger.Debug("peer closed connection")
			return
		case IsMalformed(err):
			s.metrics.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", rejectReason(err))))
			logger.Debug("bad request", "error", err)
			if err := s.writeBadRequest(w, conn); err != nil {
				logger.Debug("write bad request response failed", "error", err)
			}
			return
		case errors.Is(err, os.ErrDeadlineExceeded):
			logger.Debug("read deadline exceeded")
			return
		default:
			logger.Warn("read request failed", "error", err)
			return
		}

		if err := s.respond(w, conn, logger); err != nil {
			logger.Warn("write response failed", "error", err)
			return
		}
	}
}

// readRequest frames the next request. It returns io.EOF only when the peer
// closed the stream between requests.
func (s *Server) readRequest(w *worker, r io.Reader, req *Request) error {
	for IndexOf(w.cur.Bytes(), headTerminator, 0, w.cur.Len()) == NotFound && !w.cur.Full() {
		_, err := w.cur.Fill(r)
		if err == nil {
			continue
		}
		if !errors.Is(err, io.EOF) {
			return err
		}
		if w.cur.Len() == 0 {
			return io.EOF
		}
		break
	}

	headLen, err := req.ParseHead(w.cur.Bytes())
	if err != nil {
		return err
	}
	w.cur.Next(headLen)

	if req.ContentLength < 0 {
		return nil
	}
	if req.ContentLength > s.Config.MaxBodySize {
		return fmt.Errorf("%w: %d bytes", ErrBodyTooLarge, req.ContentLength)
	}

	body := make([]byte, req.ContentLength)
	buffered := copy(body, w.cur.Next(len(body)))
	if _, err := io.ReadFull(r, body[buffered:]); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return fmt.Errorf("read body: %w", err)
	}
	req.Body = body

	return nil
}

func (s *Server) respond(w *worker, conn net.Conn, logger *slog.Logger) error {
	reqCtx := &w.reqCtx
	req := &reqCtx.Request
	start := time.Now()

	ctx, span := s.metrics.tracer.Start(reqCtx.Context(), "http.request",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("url.path", req.Path),
			attribute.String("formserve.conn_id", reqCtx.ConnID.String()),
		))
	defer span.End()
	reqCtx.ctx = ctx

	logger.DebugContext(ctx, "request parsed",
		"method", req.Method,
		"path", req.Path,
		"query", req.Query,
		"headers", req.Headers,
		"body_length", len(req.Body),
	)

	s.Responder.Respond(reqCtx)

	status := reqCtx.Response.Status
	if status == 0 {
		status = StatusOK
	}
	span.SetAttributes(attribute.Int("http.response.status_code", int(status)))
	if status >= StatusInternalServerError {
		span.SetStatus(codes.Error, StatusText(status))
	}

	if s.Config.WriteTimeout > 0 {
		conn.SetWriteDeadline(time.Now().Add(s.Config.WriteTimeout))
	}
	err := reqCtx.Response.WriteTo(w.bw)
	if err == nil {
		err = w.bw.Flush()
	}

	attrs := metric.WithAttributes(
		attribute.String("http.request.method", req.Method),
		attribute.Int("http.response.status_code", int(status)),
	)
	s.metrics.requests.Add(ctx, 1, attrs)
	s.metrics.duration.Record(ctx, time.Since(start).Seconds(), attrs)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "write response")
		return err
	}
	return nil
}

func (s *Server) writeBadRequest(w *worker, conn net.Conn) error {
	if s.Config.WriteTimeout > 0 {
		conn.SetWriteDeadline(time.Now().Add(s.Config.WriteTimeout))
	}
	if _, err := w.bw.Write(response400); err != nil {
		return err
	}
	return w.bw.Flush()
}
