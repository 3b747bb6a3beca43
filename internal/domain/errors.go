package domain

import "errors"

var (
	ErrTaskNotFound           = errors.New("task not found")
	ErrSettingsNotFound       = errors.New("settings not found")
	ErrProjectNotFound        = errors.New("project not found")
	ErrSlotOccupied           = errors.New("time slot collides with a fixed task")
	ErrOverlappingFixedTasks  = errors.New("fixed tasks overlap each other")
	ErrInvalidClock           = errors.New("invalid wall-clock time, expected HH:MM")
	ErrInvalidDay             = errors.New("invalid day, expected YYYY-MM-DD")
	ErrInvalidTask            = errors.New("invalid task")
	ErrInvalidSettings        = errors.New("invalid settings")
	ErrInvalidProject         = errors.New("invalid project")
	ErrCalendarImportDisabled = errors.New("calendar import is not configured")
)
