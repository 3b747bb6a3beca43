package domain

import (
	"context"
	"time"
)

type RecalculationRecord struct {
	RunID        string
	Day          string
	Anchor       string
	RecordedAt   time.Time
	PlacedCount  int
	ChangedCount int
	ShiftedCount int
	SkippedCount int
	FailedCount  int
	Duration     time.Duration
}

type ScheduleResultRecorder interface {
	RecordRecalculation(ctx context.Context, record RecalculationRecord) error
	Flush(ctx context.Context) error
	Close() error
}
