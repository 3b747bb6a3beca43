package domain

import (
	"errors"
	"fmt"
)

const (
	DefaultPomodoroWorkDuration = 25
	DefaultPomodoroShortBreak   = 5
)

type Settings struct {
	PomodoroWorkDuration int `json:"pomodoro_work_duration"`
	PomodoroShortBreak   int `json:"pomodoro_short_break"`
}

func DefaultSettings() Settings {
	return Settings{
		PomodoroWorkDuration: DefaultPomodoroWorkDuration,
		PomodoroShortBreak:   DefaultPomodoroShortBreak,
	}
}

// CycleMinutes is one work interval plus its trailing short break.
func (s Settings) CycleMinutes() int {
	return s.PomodoroWorkDuration + s.PomodoroShortBreak
}

func (s Settings) Validate() error {
	var errs []error
	if s.PomodoroWorkDuration <= 0 {
		errs = append(errs, errors.New("pomodoro_work_duration must be positive"))
	}
	if s.PomodoroShortBreak < 0 {
		errs = append(errs, errors.New("pomodoro_short_break must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, errors.Join(errs...))
	}
	return nil
}
