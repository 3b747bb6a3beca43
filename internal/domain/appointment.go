package domain

import "context"

//go:generate mockgen -source=appointment.go -destination=appointment_mock.go -package=domain

// Appointment is an external calendar entry as seen on the local wall clock.
type Appointment struct {
	EventID   string
	Title     string
	Day       string
	Start     Clock
	End       Clock
	AllDay    bool
	Cancelled bool
}

type AppointmentSource interface {
	AppointmentsForDay(ctx context.Context, day string) ([]Appointment, error)
}
