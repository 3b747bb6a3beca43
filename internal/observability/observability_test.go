//go:build !gcloud

package observability

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"

	"github.com/KasumiMercury/primind-day-scheduler/internal/observability/logging"
)

func TestInitWithoutCollector(t *testing.T) {
	t.Setenv(otlpEndpointEnv, "")

	ctx := context.Background()
	res, err := Init(ctx, Config{
		ServiceInfo:   logging.ServiceInfo{Name: "day-scheduler", Version: "test"},
		Environment:   logging.EnvDev,
		SamplingRate:  5,
		DefaultModule: logging.Module("scheduler"),
	})
	if err != nil {
		t.Fatalf("Init() unexpected error: %v", err)
	}

	if res.Logger() == nil {
		t.Error("Logger() = nil")
	}

	_, span := otel.Tracer("test").Start(ctx, "check")
	if !span.SpanContext().IsValid() {
		t.Error("expected a recording tracer provider to be installed")
	}
	span.End()

	if err := res.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown() unexpected error: %v", err)
	}
}
