package service

import (
	"context"
	"errors"
	"time"

	"github.com/iliyamo/meeting-room-booking/internal/model"
)

// EventType names a booking state change.
type EventType string

const (
	EventCreated EventType = "booking.created"
	EventUpdated EventType = "booking.updated"
	EventDeleted EventType = "booking.deleted"
)

// BookingEvent is emitted after a booking was written successfully.
type BookingEvent struct {
	Type       EventType
	Booking    model.Booking
	OccurredAt time.Time
}

// Notifier receives booking events.  Errors are logged by the caller and
// never fail the originating request.
type Notifier interface {
	BookingChanged(ctx context.Context, ev BookingEvent) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, ev BookingEvent) error

func (f NotifierFunc) BookingChanged(ctx context.Context, ev BookingEvent) error { return f(ctx, ev) }

// MultiNotifier delivers each event to every notifier and joins the errors.
type MultiNotifier []Notifier

func (m MultiNotifier) BookingChanged(ctx context.Context, ev BookingEvent) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.BookingChanged(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
