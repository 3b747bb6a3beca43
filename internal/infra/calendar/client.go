package calendar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	gcalendar "google.golang.org/api/calendar/v3"

	"github.com/KasumiMercury/primind-day-scheduler/internal/config"
	"github.com/KasumiMercury/primind-day-scheduler/internal/domain"
)

const (
	statusCancelled = "cancelled"
	pageSize        = 250
)

var ErrCalendarDisabled = errors.New("calendar id not configured")

// Client reads one Google calendar and converts its events to wall-clock appointments.
type Client struct {
	srv        *gcalendar.Service
	calendarID string
	location   *time.Location
}

func NewClient(ctx context.Context, cfg *config.CalendarConfig, location *time.Location) (*Client, error) {
	if !cfg.Enabled() {
		return nil, ErrCalendarDisabled
	}

	opts, err := clientOptions(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build calendar credentials: %w", err)
	}

	srv, err := gcalendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	return newClientWithService(srv, cfg.CalendarID, location), nil
}

func newClientWithService(srv *gcalendar.Service, calendarID string, location *time.Location) *Client {
	if location == nil {
		location = time.Local
	}
	return &Client{
		srv:        srv,
		calendarID: calendarID,
		location:   location,
	}
}

func (c *Client) AppointmentsForDay(ctx context.Context, day string) ([]domain.Appointment, error) {
	dayStart, err := time.ParseInLocation("2006-01-02", day, c.location)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidDay, day)
	}
	dayEnd := dayStart.AddDate(0, 0, 1)

	slog.DebugContext(ctx, "listing calendar events",
		slog.String("calendar_id", c.calendarID),
		slog.String("day", day),
	)

	appointments := make([]domain.Appointment, 0)
	err = c.srv.Events.List(c.calendarID).
		TimeMin(dayStart.Format(time.RFC3339)).
		TimeMax(dayEnd.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(pageSize).
		Context(ctx).
		Pages(ctx, func(page *gcalendar.Events) error {
			for _, item := range page.Items {
				appointment, err := c.convert(item)
				if err != nil {
					slog.WarnContext(ctx, "skipping calendar event with unreadable times",
						slog.String("event_id", item.Id),
						slog.String("error", err.Error()),
					)
					continue
				}
				appointments = append(appointments, appointment)
			}
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve events from calendar: %w", err)
	}

	return appointments, nil
}

func (c *Client) convert(item *gcalendar.Event) (domain.Appointment, error) {
	appointment := domain.Appointment{
		EventID:   item.Id,
		Title:     item.Summary,
		Cancelled: item.Status == statusCancelled,
	}

	if item.Start == nil || item.Start.DateTime == "" {
		appointment.AllDay = true
		if item.Start != nil {
			appointment.Day = item.Start.Date
		}
		return appointment, nil
	}

	start, err := time.Parse(time.RFC3339, item.Start.DateTime)
	if err != nil {
		return domain.Appointment{}, fmt.Errorf("start: %w", err)
	}
	start = start.In(c.location)

	end := start
	if item.End != nil && item.End.DateTime != "" {
		end, err = time.Parse(time.RFC3339, item.End.DateTime)
		if err != nil {
			return domain.Appointment{}, fmt.Errorf("end: %w", err)
		}
		end = end.In(c.location)
	}

	length := int(end.Sub(start).Minutes())
	if length >= domain.MinutesPerDay {
		appointment.AllDay = true
	}

	appointment.Day = domain.DayOf(start)
	appointment.Start = domain.ClockOf(start)
	appointment.End = appointment.Start.Add(length)

	return appointment, nil
}
