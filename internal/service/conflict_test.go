package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/meeting-room-booking/internal/model"
)

func TestOverlaps(t *testing.T) {
	s0, e0 := model.NewClock(9, 30, 0), model.NewClock(10, 30, 0)
	// exhaustive over a 15 minute grid against [09:30, 10:30)
	for s := 8 * 4; s < 12*4; s++ {
		for e := s + 1; e <= 12*4; e++ {
			start := model.NewClock(s/4, (s%4)*15, 0)
			end := model.NewClock(e/4, (e%4)*15, 0)
			want := start < e0 && end > s0
			assert.Equal(t, want, Overlaps(start, end, s0, e0), "%s-%s", start, end)
		}
	}
	assert.False(t, Overlaps(clock("08:30"), clock("09:30"), s0, e0), "touching end")
	assert.False(t, Overlaps(clock("10:30"), clock("11:30"), s0, e0), "touching start")
	assert.True(t, Overlaps(clock("09:00"), clock("11:00"), s0, e0), "containing")
	assert.True(t, Overlaps(clock("09:45"), clock("10:00"), s0, e0), "contained")
}

func TestConflictCheckerCheck(t *testing.T) {
	existing := booking(7, "Rina", "Cozy 19.2", "2024-01-10", "09:30", "10:30")
	other := booking(8, "Tono", "Breakout Traction", "2024-01-10", "09:00", "12:00")
	nextDay := booking(9, "Sari", "Cozy 19.2", "2024-01-11", "09:00", "12:00")
	store := newMemStore(existing, other, nextDay)
	c := NewConflictChecker(store)
	ctx := context.Background()

	err := c.Check(ctx, "Cozy 19.2", day("2024-01-10"), clock("09:00"), clock("10:00"), 0)
	var ce *ConflictError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, uint64(7), ce.Existing.ID)
	assert.True(t, errors.Is(err, ErrScheduleConflict))
	assert.Equal(t, "schedule conflicts with Rina (09:30:00-10:30:00)", err.Error())

	assert.NoError(t, c.Check(ctx, "Cozy 19.2", day("2024-01-10"), clock("10:30"), clock("11:00"), 0))
	assert.NoError(t, c.Check(ctx, "Cozy 19.2", day("2024-01-10"), clock("08:00"), clock("09:30"), 0))
	assert.NoError(t, c.Check(ctx, "Cozy 19.2", day("2024-01-12"), clock("09:00"), clock("10:00"), 0))
}

func TestConflictCheckerExcludesSelf(t *testing.T) {
	b := booking(3, "Rina", "Cozy 19.2", "2024-01-10", "09:30", "10:30")
	c := NewConflictChecker(newMemStore(b))

	assert.NoError(t, c.Check(context.Background(), b.Room, b.Date, b.Start, b.End, b.ID))
	assert.Error(t, c.Check(context.Background(), b.Room, b.Date, b.Start, b.End, 0))
}

func TestConflictCheckerReportsFirstOverlap(t *testing.T) {
	store := newMemStore(
		booking(1, "Early", "Cozy 19.2", "2024-01-10", "09:00", "10:00"),
		booking(2, "Late", "Cozy 19.2", "2024-01-10", "10:00", "11:00"),
	)
	err := NewConflictChecker(store).Check(context.Background(), "Cozy 19.2", day("2024-01-10"), clock("09:30"), clock("10:30"), 0)
	var ce *ConflictError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "Early", ce.Existing.Name)
}

func TestConflictCheckerStorageUnavailable(t *testing.T) {
	store := newMemStore()
	store.listErr = errors.New("connection refused")

	err := NewConflictChecker(store).Check(context.Background(), "Cozy 19.2", day("2024-01-10"), clock("09:00"), clock("10:00"), 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStorageUnavailable))
	assert.False(t, errors.Is(err, ErrScheduleConflict))
	assert.NotContains(t, err.Error(), "connection refused")
}
