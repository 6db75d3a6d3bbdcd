// Package queue carries booking change events over RabbitMQ: a publisher
// fed by the booking service and a consumer that keeps an audit log.
package queue

import (
    "time"

    "github.com/iliyamo/meeting-room-booking/internal/service"
)

// BookingQueue is the durable queue booking events are published to.
const BookingQueue = "booking.events"

// BookingEvent is the JSON payload of a booking change.  It carries enough
// for consumers to log or notify without reading the database.
type BookingEvent struct {
    Type       string `json:"type"`
    BookingID  uint64 `json:"booking_id"`
    Name       string `json:"name"`
    Contact    string `json:"contact"`
    Room       string `json:"room"`
    Date       string `json:"date"`
    Start      string `json:"start"`
    End        string `json:"end"`
    OccurredAt string `json:"occurred_at"`
}

// NewBookingEvent flattens a service event into its wire form.
func NewBookingEvent(ev service.BookingEvent) BookingEvent {
    b := ev.Booking
    return BookingEvent{
        Type:       string(ev.Type),
        BookingID:  b.ID,
        Name:       b.Name,
        Contact:    b.Contact,
        Room:       b.Room,
        Date:       b.DateString(),
        Start:      b.Start.String(),
        End:        b.End.String(),
        OccurredAt: ev.OccurredAt.UTC().Format(time.RFC3339),
    }
}
