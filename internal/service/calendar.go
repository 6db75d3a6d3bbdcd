package service

import (
	"context"

	"github.com/iliyamo/meeting-room-booking/internal/model"
)

const defaultEventColor = "#4ECDC4"

// CalendarEvent is the event shape consumed by FullCalendar-style widgets.
type CalendarEvent struct {
	ID            uint64             `json:"id"`
	Title         string             `json:"title"`
	Start         string             `json:"start"`
	End           string             `json:"end"`
	Color         string             `json:"color"`
	ExtendedProps CalendarEventProps `json:"extendedProps"`
}

type CalendarEventProps struct {
	Name    string `json:"name"`
	Contact string `json:"contact,omitempty"`
	Floor   string `json:"floor,omitempty"`
	Room    string `json:"room"`
	Note    string `json:"note,omitempty"`
}

// BuildCalendarEvents converts bookings to calendar events colored by room.
func BuildCalendarEvents(bookings []model.Booking, colors map[string]string) []CalendarEvent {
	events := make([]CalendarEvent, 0, len(bookings))
	for _, b := range bookings {
		color, ok := colors[b.Room]
		if !ok {
			color = defaultEventColor
		}
		props := CalendarEventProps{Name: b.Name, Contact: b.Contact, Room: b.Room, Note: b.Note}
		if b.Floor != nil {
			props.Floor = *b.Floor
		}
		date := b.DateString()
		events = append(events, CalendarEvent{
			ID:            b.ID,
			Title:         b.Name + " - " + b.Room,
			Start:         date + "T" + b.Start.String(),
			End:           date + "T" + b.End.String(),
			Color:         color,
			ExtendedProps: props,
		})
	}
	return events
}

// CalendarEvents lists bookings, optionally for one room, as calendar events.
func (s *BookingService) CalendarEvents(ctx context.Context, room string) ([]CalendarEvent, error) {
	bookings, err := s.List(ctx, model.BookingFilter{Room: room})
	if err != nil {
		return nil, err
	}
	return BuildCalendarEvents(bookings, s.policy.RoomColors), nil
}
