package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/meeting-room-booking/internal/model"
)

func TestBuildCalendarEvents(t *testing.T) {
	floor := "19"
	a := booking(1, "Rina", "Breakout Traction", "2024-01-10", "09:00", "10:30")
	a.Floor = &floor
	a.Note = "Sprint review"
	b := booking(2, "Tono", "Board Room", "2024-01-11", "13:00", "14:00")

	events := BuildCalendarEvents([]model.Booking{a, b}, DefaultPolicy().RoomColors)
	require.Len(t, events, 2)

	assert.Equal(t, uint64(1), events[0].ID)
	assert.Equal(t, "Rina - Breakout Traction", events[0].Title)
	assert.Equal(t, "2024-01-10T09:00:00", events[0].Start)
	assert.Equal(t, "2024-01-10T10:30:00", events[0].End)
	assert.Equal(t, "#FF6B6B", events[0].Color)
	assert.Equal(t, "19", events[0].ExtendedProps.Floor)
	assert.Equal(t, "Sprint review", events[0].ExtendedProps.Note)

	assert.Equal(t, "#4ECDC4", events[1].Color, "unknown rooms get the default color")
	assert.Empty(t, events[1].ExtendedProps.Floor)

	raw, err := json.Marshal(events[0])
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"extendedProps":{`)
	assert.Contains(t, string(raw), `"start":"2024-01-10T09:00:00"`)
}

func TestBuildCalendarEventsEmpty(t *testing.T) {
	events := BuildCalendarEvents(nil, nil)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestCalendarEventsFiltersRoom(t *testing.T) {
	store := newMemStore(
		booking(1, "Rina", "Breakout Traction", "2024-01-10", "09:00", "10:00"),
		booking(2, "Tono", "Cozy 19.2", "2024-01-10", "09:00", "10:00"),
	)
	svc := newTestService(store, DefaultPolicy(), nil)

	events, err := svc.CalendarEvents(context.Background(), "Cozy 19.2")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Tono - Cozy 19.2", events[0].Title)

	events, err = svc.CalendarEvents(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, events, 2)
}
