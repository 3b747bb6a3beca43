//go:build !gcloud

package schedulerecorder

import (
	"context"
	"log/slog"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/KasumiMercury/primind-day-scheduler/internal/domain"
)

const measurement = "schedule_recalculation"

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	bucket   string
	org      string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.ScheduleResultRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "schedule result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, schedule result recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)

	slog.InfoContext(ctx, "schedule result recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket),
		bucket:   cfg.InfluxDBBucket,
		org:      cfg.InfluxDBOrg,
	}, nil
}

func recalculationPoint(record domain.RecalculationRecord) *write.Point {
	runID := record.RunID
	if runID == "" {
		runID = "default"
	}

	recordedAt := record.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	return influxdb2.NewPoint(
		measurement,
		map[string]string{
			"run_id": runID,
			"day":    record.Day,
		},
		map[string]any{
			"anchor":        record.Anchor,
			"placed_count":  record.PlacedCount,
			"changed_count": record.ChangedCount,
			"shifted_count": record.ShiftedCount,
			"skipped_count": record.SkippedCount,
			"failed_count":  record.FailedCount,
			"duration_ms":   record.Duration.Milliseconds(),
		},
		recordedAt,
	)
}

func (r *influxDBRecorder) RecordRecalculation(ctx context.Context, record domain.RecalculationRecord) error {
	if err := r.writeAPI.WritePoint(ctx, recalculationPoint(record)); err != nil {
		slog.WarnContext(ctx, "failed to write recalculation result to InfluxDB",
			slog.String("error", err.Error()),
			slog.String("day", record.Day),
			slog.String("run_id", record.RunID),
		)
	}

	return nil
}

func (r *influxDBRecorder) Flush(ctx context.Context) error {
	return r.writeAPI.Flush(ctx)
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}
