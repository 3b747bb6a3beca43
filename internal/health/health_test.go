package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-day-scheduler/internal/testutil"
)

func TestReadyHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		checker    *Checker
		wantStatus int
		wantHealth Status
	}{
		{
			name:       "no probes",
			checker:    NewChecker("test", "memory").WithRedis(nil),
			wantStatus: http.StatusOK,
			wantHealth: StatusHealthy,
		},
		{
			name: "failing probe",
			checker: NewChecker("test", "memory").
				AddProbe("store", func(context.Context) error { return nil }).
				AddProbe("calendar", func(context.Context) error { return errors.New("unreachable") }),
			wantStatus: http.StatusServiceUnavailable,
			wantHealth: StatusUnhealthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/health/ready", tt.checker.ReadyHandler())
			r.GET("/health/live", tt.checker.LiveHandler())

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			var got HealthStatus
			if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if got.Status != tt.wantHealth || got.Store != "memory" {
				t.Errorf("health = %+v", got)
			}

			w = httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))
			if w.Code != http.StatusOK {
				t.Errorf("live status = %d, want 200", w.Code)
			}
		})
	}
}

func TestCheckWithRedis(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	status := NewChecker("test", "redis").WithRedis(client).Check(ctx)
	if status.Status != StatusHealthy {
		t.Errorf("status = %+v, want healthy", status)
	}
	if status.Checks["redis"].Status != StatusHealthy {
		t.Errorf("redis check = %+v", status.Checks["redis"])
	}
}
