package domain

import (
	"fmt"
	"strconv"
	"time"
)

const (
	MinutesPerDay = 24 * 60

	dayLayout = "2006-01-02"
)

// Clock is a local wall-clock time expressed as minutes since midnight.
// Its external form is always the zero-padded 24-hour "HH:MM".
type Clock int

func NewClock(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

// ParseClock parses a strict "HH:MM" string.
func ParseClock(s string) (Clock, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	hour, err := strconv.Atoi(s[:2])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	minute, err := strconv.Atoi(s[3:])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	return NewClock(hour, minute), nil
}

func MustParseClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Minutes returns the unbounded minute count. Values past midnight are kept as-is.
func (c Clock) Minutes() int {
	return int(c)
}

// Normalize wraps the clock into a single day.
func (c Clock) Normalize() Clock {
	m := int(c) % MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return Clock(m)
}

// Add returns the wall-clock time minutes later, wrapping past midnight.
func (c Clock) Add(minutes int) Clock {
	return Clock(int(c) + minutes).Normalize()
}

func (c Clock) String() string {
	n := c.Normalize()
	return fmt.Sprintf("%02d:%02d", int(n)/60, int(n)%60)
}

func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Clock) UnmarshalText(text []byte) error {
	parsed, err := ParseClock(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ClockPtr is a convenience for optional times.
func ClockPtr(c Clock) *Clock {
	return &c
}

// AddMinutes adds minutes to an "HH:MM" string. Overflow past 23:59 wraps to the next day.
func AddMinutes(hhmm string, minutes int) (string, error) {
	c, err := ParseClock(hhmm)
	if err != nil {
		return "", err
	}
	return c.Add(minutes).String(), nil
}

// Interval is a half-open span [Start, End) in unbounded minutes since midnight.
type Interval struct {
	Start int
	End   int
}

func NewInterval(start, length int) Interval {
	return Interval{Start: start, End: start + length}
}

// Overlaps uses the half-open test, so touching edges do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && i.End > o.Start
}

func (i Interval) Length() int {
	return i.End - i.Start
}

// ValidateDay checks the YYYY-MM-DD form used for scheduled_at.
func ValidateDay(day string) error {
	if _, err := time.Parse(dayLayout, day); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDay, day)
	}
	return nil
}

// DayOf formats t as a scheduled_at day in t's location.
func DayOf(t time.Time) string {
	return t.Format(dayLayout)
}

// ClockOf returns the wall-clock part of t in t's location.
func ClockOf(t time.Time) Clock {
	return NewClock(t.Hour(), t.Minute())
}
