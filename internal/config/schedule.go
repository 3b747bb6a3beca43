package config

import (
	"os"
	"strconv"
	"time"
)

const (
	pomodoroWorkDurationEnv = "POMODORO_WORK_DURATION"
	pomodoroShortBreakEnv   = "POMODORO_SHORT_BREAK"
	fixedOverlapPolicyEnv   = "SCHEDULE_FIXED_OVERLAP_POLICY"
	scheduleTimezoneEnv     = "SCHEDULE_TIMEZONE"

	defaultPomodoroWorkDuration = 25
	defaultPomodoroShortBreak   = 5
	defaultFixedOverlapPolicy   = FixedOverlapReject
)

// FixedOverlapPolicy decides what recalculation does when fixed tasks overlap each other.
type FixedOverlapPolicy string

const (
	FixedOverlapReject   FixedOverlapPolicy = "reject"
	FixedOverlapTolerate FixedOverlapPolicy = "tolerate"
)

type ScheduleConfig struct {
	// Seed values for the settings record when none exists yet.
	PomodoroWorkDuration int
	PomodoroShortBreak   int
	FixedOverlapPolicy   FixedOverlapPolicy
	Location             *time.Location
}

func LoadScheduleConfig() (*ScheduleConfig, error) {
	workDuration := defaultPomodoroWorkDuration
	if v := os.Getenv(pomodoroWorkDurationEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			workDuration = parsed
		}
	}

	shortBreak := defaultPomodoroShortBreak
	if v := os.Getenv(pomodoroShortBreakEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			shortBreak = parsed
		}
	}

	policy := FixedOverlapPolicy(os.Getenv(fixedOverlapPolicyEnv))
	if policy != FixedOverlapReject && policy != FixedOverlapTolerate {
		policy = defaultFixedOverlapPolicy
	}

	location := time.Local
	if tz := os.Getenv(scheduleTimezoneEnv); tz != "" {
		loaded, err := time.LoadLocation(tz)
		if err != nil {
			return nil, ErrInvalidTimezone
		}
		location = loaded
	}

	return &ScheduleConfig{
		PomodoroWorkDuration: workDuration,
		PomodoroShortBreak:   shortBreak,
		FixedOverlapPolicy:   policy,
		Location:             location,
	}, nil
}
