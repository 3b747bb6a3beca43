package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const scheduleTracerName = "github.com/KasumiMercury/primind-day-scheduler/internal/service/schedule"

func ScheduleTracer() trace.Tracer {
	return otel.Tracer(scheduleTracerName)
}

func StartRecalculationSpan(ctx context.Context, day, startingTaskID string, taskCount int) (context.Context, trace.Span) {
	return ScheduleTracer().Start(ctx, "schedule.recalculate",
		trace.WithAttributes(
			attribute.String("schedule.day", day),
			attribute.String("schedule.starting_task_id", startingTaskID),
			attribute.Int("schedule.ordered_count", taskCount),
		),
	)
}

func StartSlotCheckSpan(ctx context.Context, day, taskID, proposed string) (context.Context, trace.Span) {
	return ScheduleTracer().Start(ctx, "schedule.slot_check",
		trace.WithAttributes(
			attribute.String("schedule.day", day),
			attribute.String("task_id", taskID),
			attribute.String("slot.proposed_start", proposed),
		),
	)
}

func StartCalendarImportSpan(ctx context.Context, day, calendarID string) (context.Context, trace.Span) {
	return ScheduleTracer().Start(ctx, "schedule.calendar_import",
		trace.WithAttributes(
			attribute.String("schedule.day", day),
			attribute.String("calendar.id", calendarID),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordRecalculationResult(span trace.Span, placed, changed, shifted, skipped, failed int, err error) {
	span.SetAttributes(
		attribute.Int("recalculate.placed_count", placed),
		attribute.Int("recalculate.changed_count", changed),
		attribute.Int("recalculate.shifted_count", shifted),
		attribute.Int("recalculate.skipped_count", skipped),
		attribute.Int("recalculate.failed_count", failed),
	)
	RecordError(span, err)
}

func RecordSlotCheckResult(span trace.Span, free bool, conflictTaskID string) {
	span.SetAttributes(attribute.Bool("slot.free", free))
	if conflictTaskID != "" {
		span.SetAttributes(attribute.String("slot.conflict_task_id", conflictTaskID))
	}
}

func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
