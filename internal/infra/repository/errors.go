package repository

import "errors"

var (
	ErrInvalidTaskData     = errors.New("invalid task data")
	ErrInvalidSettingsData = errors.New("invalid settings data")
	ErrInvalidProjectData  = errors.New("invalid project data")
	ErrTooManyConflicts    = errors.New("task changed concurrently too many times")
)
