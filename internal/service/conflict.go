package service

import (
	"context"
	"time"

	"github.com/iliyamo/meeting-room-booking/internal/model"
)

// BookingLister is the read accessor the conflict checker needs.
type BookingLister interface {
	ListByRoomAndDate(ctx context.Context, room string, date time.Time) ([]model.Booking, error)
}

// Overlaps reports whether [start, end) and [otherStart, otherEnd) intersect.
// Touching intervals do not overlap.
func Overlaps(start, end, otherStart, otherEnd model.Clock) bool {
	return start < otherEnd && end > otherStart
}

// ConflictChecker decides whether a candidate interval collides with a
// stored booking for the same room and date.  It never writes.
type ConflictChecker struct {
	store BookingLister
}

func NewConflictChecker(store BookingLister) *ConflictChecker {
	return &ConflictChecker{store: store}
}

// Check returns nil when [start, end) is free, a *ConflictError naming the
// first overlapping booking, or a *StorageError when the read fails.
// excludeID skips the booking being edited; zero excludes nothing.
func (c *ConflictChecker) Check(ctx context.Context, room string, date time.Time, start, end model.Clock, excludeID uint64) error {
	existing, err := c.store.ListByRoomAndDate(ctx, room, date)
	if err != nil {
		return unavailable("check", err)
	}
	for _, b := range existing {
		if excludeID != 0 && b.ID == excludeID {
			continue
		}
		if Overlaps(start, end, b.Start, b.End) {
			return &ConflictError{Existing: b}
		}
	}
	return nil
}
