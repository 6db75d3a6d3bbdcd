package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Clock is a naive time of day with second precision, stored as seconds
// since midnight.  Bookings only ever compare clocks that belong to the
// same calendar date, so no time zone is attached.
type Clock int

// ClockLayout is the canonical text form used in the database and the API.
const ClockLayout = "15:04:05"

var clockLayouts = []string{"15:04:05.999999999", "15:04:05", "15:04"}

// NewClock builds a Clock from its components.  Out-of-range components are
// not normalized; use ParseClock for user input.
func NewClock(hour, minute, second int) Clock {
	return Clock(hour*3600 + minute*60 + second)
}

// ParseClock accepts HH:MM, HH:MM:SS and HH:MM:SS with fractional seconds.
// Fractions are truncated.
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty time of day")
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewClock(t.Hour(), t.Minute(), t.Second()), nil
		}
	}
	return 0, fmt.Errorf("invalid time of day %q", s)
}

func (c Clock) Hour() int   { return int(c) / 3600 }
func (c Clock) Minute() int { return int(c) % 3600 / 60 }
func (c Clock) Second() int { return int(c) % 60 }

// String returns the canonical HH:MM:SS form.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour(), c.Minute(), c.Second())
}

// Short returns HH:MM, the form shown in booking lists.
func (c Clock) Short() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// On anchors the clock to the given date in the date's location.
func (c Clock) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, c.Hour(), c.Minute(), c.Second(), 0, date.Location())
}

// Scan implements sql.Scanner.  MySQL returns TIME columns as []byte,
// the pgx stdlib driver as string, and some drivers as time.Time.
func (c *Clock) Scan(src any) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParseClock(v)
		if err != nil {
			return err
		}
		*c = parsed
	case []byte:
		parsed, err := ParseClock(string(v))
		if err != nil {
			return err
		}
		*c = parsed
	case time.Time:
		*c = NewClock(v.Hour(), v.Minute(), v.Second())
	default:
		return fmt.Errorf("cannot scan %T into Clock", src)
	}
	return nil
}

// Value implements driver.Valuer.
func (c Clock) Value() (driver.Value, error) {
	return c.String(), nil
}

func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Clock) UnmarshalText(b []byte) error {
	parsed, err := ParseClock(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
