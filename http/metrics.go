package http

import (
	"errors"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/freekieb7/formserve/http"

type instruments struct {
	tracer trace.Tracer

	accepted metric.Int64Counter
	active   metric.Int64UpDownCounter
	requests metric.Int64Counter
	rejected metric.Int64Counter
	duration metric.Float64Histogram
}

func newInstruments(tp trace.TracerProvider, mp metric.MeterProvider) (*instruments, error) {
	meter := mp.Meter(instrumentationName)
	inst := &instruments{
		tracer: tp.Tracer(instrumentationName),
	}

	var err, errs error
	inst.accepted, err = meter.Int64Counter("formserve.connections.accepted",
		metric.WithDescription("The number of accepted connections"),
		metric.WithUnit("{connection}"))
	errs = errors.Join(errs, err)

	inst.active, err = meter.Int64UpDownCounter("formserve.connections.active",
		metric.WithDescription("The number of connections being served"),
		metric.WithUnit("{connection}"))
	errs = errors.Join(errs, err)

	inst.requests, err = meter.Int64Counter("formserve.requests",
		metric.WithDescription("The number of requests answered by the responder"),
		metric.WithUnit("{request}"))
	errs = errors.Join(errs, err)

	inst.rejected, err = meter.Int64Counter("formserve.requests.rejected",
		metric.WithDescription("The number of requests rejected with 400 Bad Request"),
		metric.WithUnit("{request}"))
	errs = errors.Join(errs, err)

	inst.duration, err = meter.Float64Histogram("formserve.request.duration",
		metric.WithDescription("Time from parsed request to flushed response"),
		metric.WithUnit("s"))
	errs = errors.Join(errs, err)

	if errs != nil {
		return nil, errs
	}
	return inst, nil
}
