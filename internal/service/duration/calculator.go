package duration

import (
	"github.com/KasumiMercury/primind-day-scheduler/internal/domain"
)

// DefaultAppointmentMinutes applies to fixed appointments without an end time.
const DefaultAppointmentMinutes = 60

// Minutes returns how long a task occupies the day.
// Fixed appointments without a pomodoro estimate span their own start/end; every other
// task takes max(estimation, 1) work+break cycles.
func Minutes(task *domain.Task, settings domain.Settings) int {
	if task == nil {
		return 0
	}

	if task.IsAppointment() {
		if task.EndTime == nil {
			return DefaultAppointmentMinutes
		}
		span := task.EndTime.Minutes() - task.StartTime.Minutes()
		if span < 0 {
			// ends after midnight
			span += domain.MinutesPerDay
		}
		return span
	}

	cycles := task.PomodoroEstimation
	if cycles < 1 {
		cycles = 1
	}

	return cycles * settings.CycleMinutes()
}

// Interval returns the occupied span of a task that has a start time.
func Interval(task *domain.Task, settings domain.Settings) (domain.Interval, bool) {
	if task == nil || task.StartTime == nil {
		return domain.Interval{}, false
	}
	return domain.NewInterval(task.StartTime.Minutes(), Minutes(task, settings)), true
}
