package telemetry_test

import (
	"context"
	"testing"

	"github.com/freekieb7/formserve/telemetry"
	"github.com/freekieb7/formserve/test"
	"go.opentelemetry.io/otel"
)

func TestSetupDisabled(t *testing.T) {
	shutdown, err := telemetry.Setup(context.Background(), telemetry.Config{
		ServiceName: "formserve-test",
		Disabled:    true,
	})
	test.NoError(t, err)

	fields := otel.GetTextMapPropagator().Fields()
	test.True(t, len(fields) > 0, "propagator installed")

	test.NoError(t, shutdown(context.Background()))
}
