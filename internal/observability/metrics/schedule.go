package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	scheduleMeterName = "schedule.service"
)

type ScheduleMetrics struct {
	recalculations        metric.Int64Counter
	placements            metric.Int64Counter
	obstacleJumps         metric.Int64Counter
	slotChecks            metric.Int64Counter
	recalculationDuration metric.Float64Histogram
	calendarImports       metric.Int64Counter
}

func NewScheduleMetrics() (*ScheduleMetrics, error) {
	meter := otel.Meter(scheduleMeterName)

	recalculations, err := meter.Int64Counter(
		"schedule_recalculations_total",
		metric.WithDescription("Total number of day recalculations"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, err
	}

	placements, err := meter.Int64Counter(
		"schedule_placements_total",
		metric.WithDescription("Tasks visited by recalculation, by lane and outcome"),
		metric.WithUnit("{task}"),
	)
	if err != nil {
		return nil, err
	}

	obstacleJumps, err := meter.Int64Counter(
		"schedule_obstacle_jumps_total",
		metric.WithDescription("Times a movable task was pushed past a fixed task"),
		metric.WithUnit("{jump}"),
	)
	if err != nil {
		return nil, err
	}

	slotChecks, err := meter.Int64Counter(
		"schedule_slot_checks_total",
		metric.WithDescription("Manual slot checks, by result"),
		metric.WithUnit("{check}"),
	)
	if err != nil {
		return nil, err
	}

	recalculationDuration, err := meter.Float64Histogram(
		"schedule_recalculation_duration_seconds",
		metric.WithDescription("Time spent recalculating a day"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1,
		),
	)
	if err != nil {
		return nil, err
	}

	calendarImports, err := meter.Int64Counter(
		"schedule_calendar_imported_total",
		metric.WithDescription("Calendar events imported as fixed appointments"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, err
	}

	return &ScheduleMetrics{
		recalculations:        recalculations,
		placements:            placements,
		obstacleJumps:         obstacleJumps,
		slotChecks:            slotChecks,
		recalculationDuration: recalculationDuration,
		calendarImports:       calendarImports,
	}, nil
}

func (m *ScheduleMetrics) RecordRecalculation(ctx context.Context, outcome string, duration time.Duration) {
	m.recalculations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
	m.recalculationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

func (m *ScheduleMetrics) RecordPlacement(ctx context.Context, lane, outcome string) {
	m.placements.Add(ctx, 1, metric.WithAttributes(
		attribute.String("lane", lane),
		attribute.String("outcome", outcome),
	))
}

func (m *ScheduleMetrics) RecordObstacleJumps(ctx context.Context, jumps int) {
	if jumps <= 0 {
		return
	}
	m.obstacleJumps.Add(ctx, int64(jumps))
}

func (m *ScheduleMetrics) RecordSlotCheck(ctx context.Context, free bool) {
	result := "free"
	if !free {
		result = "occupied"
	}
	m.slotChecks.Add(ctx, 1, metric.WithAttributes(
		attribute.String("result", result),
	))
}

func (m *ScheduleMetrics) RecordCalendarImport(ctx context.Context, imported int) {
	m.calendarImports.Add(ctx, int64(imported))
}
