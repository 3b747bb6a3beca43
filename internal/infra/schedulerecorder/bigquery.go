//go:build gcloud

package schedulerecorder

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/KasumiMercury/primind-day-scheduler/internal/domain"
)

type bigQueryRecord struct {
	RecordedAt   time.Time `bigquery:"recorded_at"`
	RunID        string    `bigquery:"run_id"`
	Day          string    `bigquery:"day"`
	Anchor       string    `bigquery:"anchor"`
	PlacedCount  int64     `bigquery:"placed_count"`
	ChangedCount int64     `bigquery:"changed_count"`
	ShiftedCount int64     `bigquery:"shifted_count"`
	SkippedCount int64     `bigquery:"skipped_count"`
	FailedCount  int64     `bigquery:"failed_count"`
	DurationMs   int64     `bigquery:"duration_ms"`
}

func toBigQueryRecord(record domain.RecalculationRecord) *bigQueryRecord {
	recordedAt := record.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	return &bigQueryRecord{
		RecordedAt:   recordedAt,
		RunID:        record.RunID,
		Day:          record.Day,
		Anchor:       record.Anchor,
		PlacedCount:  int64(record.PlacedCount),
		ChangedCount: int64(record.ChangedCount),
		ShiftedCount: int64(record.ShiftedCount),
		SkippedCount: int64(record.SkippedCount),
		FailedCount:  int64(record.FailedCount),
		DurationMs:   record.Duration.Milliseconds(),
	}
}

type bigQueryRecorder struct {
	client   *bigquery.Client
	inserter *bigquery.Inserter
	dataset  string
	table    string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.ScheduleResultRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "schedule result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, schedule result recording disabled")
		return NewNoopRecorder(), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, schedule result recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	inserter := client.Dataset(cfg.BigQueryDataset).Table(cfg.BigQueryTable).Inserter()

	slog.InfoContext(ctx, "schedule result recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("table", cfg.BigQueryTable),
	)

	return &bigQueryRecorder{
		client:   client,
		inserter: inserter,
		dataset:  cfg.BigQueryDataset,
		table:    cfg.BigQueryTable,
	}, nil
}

func (r *bigQueryRecorder) RecordRecalculation(ctx context.Context, record domain.RecalculationRecord) error {
	if err := r.inserter.Put(ctx, toBigQueryRecord(record)); err != nil {
		slog.WarnContext(ctx, "failed to insert recalculation result to BigQuery",
			slog.String("error", err.Error()),
			slog.String("day", record.Day),
		)
	}

	return nil
}

func (r *bigQueryRecorder) Flush(_ context.Context) error {
	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
