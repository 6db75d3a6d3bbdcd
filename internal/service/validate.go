package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/iliyamo/meeting-room-booking/internal/model"
)

var (
	nameRe     = regexp.MustCompile(`^\p{L}[\p{L}\p{M} ]*$`)
	nonDigitRe = regexp.MustCompile(`\D`)
)

const (
	nameMinLength  = 2
	phoneMinDigits = 10
	phoneMaxDigits = 15
)

// Window is a half-open [Open, Close) working-hours bound.
type Window struct {
	Open  model.Clock
	Close model.Clock
}

// ParseWindow parses "HH:MM-HH:MM".  An empty string yields a nil window,
// meaning no working-hours restriction.
func ParseWindow(s string) (*Window, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	open, closing, ok := strings.Cut(s, "-")
	if !ok {
		return nil, fmt.Errorf("working hours %q: expected HH:MM-HH:MM", s)
	}
	o, err := model.ParseClock(open)
	if err != nil {
		return nil, fmt.Errorf("working hours %q: %w", s, err)
	}
	c, err := model.ParseClock(closing)
	if err != nil {
		return nil, fmt.Errorf("working hours %q: %w", s, err)
	}
	if o >= c {
		return nil, fmt.Errorf("working hours %q: open must be before close", s)
	}
	return &Window{Open: o, Close: c}, nil
}

func (w Window) String() string { return w.Open.Short() + "-" + w.Close.Short() }

// ValidationMode selects whether validation reports every failure or stops
// at the first one.
type ValidationMode int

const (
	CollectAll ValidationMode = iota
	FirstFailure
)

// ParseValidationMode maps "collect_all" and "first_failure" (or the short
// forms "collect" and "first") to a mode.
func ParseValidationMode(s string) (ValidationMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "collect", "collect_all", "all":
		return CollectAll, nil
	case "first", "first_failure":
		return FirstFailure, nil
	}
	return CollectAll, fmt.Errorf("unknown validation mode %q", s)
}

// Policy holds the switches that differed between revisions of the booking
// form.
type Policy struct {
	Rooms           []string
	RoomColors      map[string]string
	Floors          []string
	WorkingHours    *Window
	Mode            ValidationMode
	RequirePhone    bool
	NoteMinLength   int
	RejectPastDates bool
}

// DefaultPolicy mirrors the floor 19 deployment.
func DefaultPolicy() Policy {
	return Policy{
		Rooms: []string{"Breakout Traction", "Cozy 19.2"},
		RoomColors: map[string]string{
			"Breakout Traction": "#FF6B6B",
			"Cozy 19.2":         "#4ECDC4",
		},
		Floors:          []string{"19"},
		WorkingHours:    &Window{Open: model.NewClock(8, 0, 0), Close: model.NewClock(18, 0, 0)},
		Mode:            CollectAll,
		RejectPastDates: true,
	}
}

// ValidateName requires at least two characters of Unicode letters and spaces.
// The name is compared in NFC form, so decomposed accents count as part of
// their letter.
func ValidateName(name string) *FieldError {
	name = norm.NFC.String(strings.TrimSpace(name))
	if utf8.RuneCountInString(name) < nameMinLength {
		return invalidField("name", fmt.Sprintf("name must be at least %d characters", nameMinLength))
	}
	if !nameRe.MatchString(name) {
		return invalidField("name", "name may only contain letters and spaces")
	}
	return nil
}

// ValidateRequiredText fails when the trimmed value is shorter than minLen.
func ValidateRequiredText(field, value string, minLen int) *FieldError {
	n := utf8.RuneCountInString(strings.TrimSpace(value))
	if n == 0 && minLen > 0 {
		return invalidField(field, field+" is required")
	}
	if n < minLen {
		return invalidField(field, fmt.Sprintf("%s must be at least %d characters", field, minLen))
	}
	return nil
}

// ValidateRoom fails unless room is one of allowed.
func ValidateRoom(room string, allowed []string) *FieldError {
	room = strings.TrimSpace(room)
	if room == "" {
		return invalidField("room", "room must be selected")
	}
	for _, r := range allowed {
		if r == room {
			return nil
		}
	}
	return invalidField("room", fmt.Sprintf("unknown room %q", room))
}

// ValidateTimeRange requires start < end and, when hours is given,
// hours.Open <= start and end <= hours.Close.
func ValidateTimeRange(start, end model.Clock, hours *Window) *FieldError {
	if start >= end {
		return invalidRange("end_time", "end time must be after start time")
	}
	if hours == nil {
		return nil
	}
	msg := fmt.Sprintf("booking must fall within working hours %s", hours)
	if start < hours.Open {
		return invalidRange("start_time", msg)
	}
	if end > hours.Close {
		return invalidRange("end_time", msg)
	}
	return nil
}

// ValidatePhone accepts 10 to 15 digits once separators are stripped.
func ValidatePhone(phone string) *FieldError {
	if strings.TrimSpace(phone) == "" {
		return invalidField("phone", "phone is required")
	}
	digits := nonDigitRe.ReplaceAllString(phone, "")
	if len(digits) < phoneMinDigits || len(digits) > phoneMaxDigits {
		return invalidField("phone", fmt.Sprintf("phone must have %d-%d digits", phoneMinDigits, phoneMaxDigits))
	}
	return nil
}

// ValidateFloor accepts an empty floor or one of allowed.  An empty allowed
// list accepts anything.
func ValidateFloor(floor string, allowed []string) *FieldError {
	floor = strings.TrimSpace(floor)
	if floor == "" || len(allowed) == 0 {
		return nil
	}
	for _, f := range allowed {
		if f == floor {
			return nil
		}
	}
	return invalidField("floor", fmt.Sprintf("unknown floor %q", floor))
}

// ValidateDate rejects dates before today.  Both are compared as calendar
// dates in their own locations.
func ValidateDate(date, today time.Time) *FieldError {
	if model.FormatDate(date) < model.FormatDate(today) {
		return invalidField("date", "date cannot be in the past")
	}
	return nil
}
