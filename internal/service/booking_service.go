package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/iliyamo/meeting-room-booking/internal/model"
	"github.com/iliyamo/meeting-room-booking/internal/repository"
)

// BookingStore is the persistence collaborator of the booking service.
// Implementations return repository.ErrNotFound for unknown IDs.
type BookingStore interface {
	BookingLister
	Create(ctx context.Context, b *model.Booking) (uint64, error)
	GetByID(ctx context.Context, id uint64) (model.Booking, error)
	Update(ctx context.Context, id uint64, b *model.Booking) error
	Delete(ctx context.Context, id uint64) error
	ListAll(ctx context.Context, filter model.BookingFilter) ([]model.Booking, error)
}

// BookingInput is a submitted booking form.  All values are raw text; the
// service parses and normalizes them.
type BookingInput struct {
	Name      string
	Contact   string
	Phone     string
	Floor     string
	Room      string
	Date      string
	StartTime string
	EndTime   string
	Note      string
}

// BookingService sequences validation, conflict check and persistence.
// There is no locking between the conflict read and the write: two
// concurrent submissions for the same slot can both succeed.
type BookingService struct {
	store    BookingStore
	checker  *ConflictChecker
	policy   Policy
	notifier Notifier
	log      *zap.Logger
	now      func() time.Time
	loc      *time.Location
}

func NewBookingService(store BookingStore, policy Policy, notifier Notifier, log *zap.Logger) *BookingService {
	if store == nil {
		panic("nil store passed to NewBookingService")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &BookingService{
		store:    store,
		checker:  NewConflictChecker(store),
		policy:   policy,
		notifier: notifier,
		log:      log,
		now:      time.Now,
		loc:      time.Local,
	}
}

// Policy returns the active form policy.
func (s *BookingService) Policy() Policy { return s.policy }

// Location is the zone booking dates are read in.
func (s *BookingService) Location() *time.Location { return s.loc }

// SetLocation sets the zone used to read form dates and to decide which
// day is today.
func (s *BookingService) SetLocation(loc *time.Location) {
	if loc != nil {
		s.loc = loc
	}
}

// Submit validates a new booking, checks it against the room's schedule and
// stores it.  It returns the new booking ID, a *ValidationError, a
// *ConflictError or a *StorageError.
func (s *BookingService) Submit(ctx context.Context, in BookingInput) (uint64, error) {
	b, err := s.prepare(in, true)
	if err != nil {
		return 0, err
	}
	if err := s.checker.Check(ctx, b.Room, b.Date, b.Start, b.End, 0); err != nil {
		s.logRejected("submit", 0, b, err)
		return 0, err
	}
	b.CreatedAt = s.now()
	id, err := s.store.Create(ctx, &b)
	if err != nil {
		s.log.Error("Failed to create booking", zap.String("room", b.Room), zap.String("date", b.DateString()), zap.Error(err))
		return 0, failed("create", err)
	}
	b.ID = id
	s.log.Info("Booking created",
		zap.Uint64("booking_id", id),
		zap.String("room", b.Room),
		zap.String("date", b.DateString()),
		zap.String("start", b.Start.String()),
		zap.String("end", b.End.String()),
	)
	s.notify(ctx, EventCreated, b)
	return id, nil
}

// Edit replaces the fields of an existing booking.  The same validation as
// Submit applies except the past-date rule, and the booking never conflicts
// with itself.
func (s *BookingService) Edit(ctx context.Context, id uint64, in BookingInput) (model.Booking, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return model.Booking{}, err
	}
	b, err := s.prepare(in, false)
	if err != nil {
		return model.Booking{}, err
	}
	if err := s.checker.Check(ctx, b.Room, b.Date, b.Start, b.End, id); err != nil {
		s.logRejected("edit", id, b, err)
		return model.Booking{}, err
	}
	b.ID = id
	b.CreatedAt = existing.CreatedAt
	if err := s.store.Update(ctx, id, &b); err != nil {
		s.log.Error("Failed to update booking", zap.Uint64("booking_id", id), zap.Error(err))
		return model.Booking{}, failed("update", err)
	}
	s.log.Info("Booking updated", zap.Uint64("booking_id", id), zap.String("room", b.Room), zap.String("date", b.DateString()))
	s.notify(ctx, EventUpdated, b)
	return b, nil
}

// Delete removes a booking.  An unknown ID yields a *StorageError that also
// matches repository.ErrNotFound.
func (s *BookingService) Delete(ctx context.Context, id uint64) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete booking", zap.Uint64("booking_id", id), zap.Error(err))
		return failed("delete", err)
	}
	s.log.Info("Booking deleted", zap.Uint64("booking_id", id))
	s.notify(ctx, EventDeleted, existing)
	return nil
}

// Get loads a single booking.
func (s *BookingService) Get(ctx context.Context, id uint64) (model.Booking, error) {
	b, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Booking{}, failed("load", err)
		}
		return model.Booking{}, unavailable("load", err)
	}
	return b, nil
}

// List returns bookings ordered by date and start time.
func (s *BookingService) List(ctx context.Context, filter model.BookingFilter) ([]model.Booking, error) {
	bookings, err := s.store.ListAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to list bookings", zap.Error(err))
		return nil, unavailable("list", err)
	}
	return bookings, nil
}

// prepare parses and validates a form into a normalized booking.
func (s *BookingService) prepare(in BookingInput, creating bool) (model.Booking, error) {
	b := model.Booking{
		Name:    norm.NFC.String(strings.TrimSpace(in.Name)),
		Contact: strings.TrimSpace(in.Contact),
		Room:    strings.TrimSpace(in.Room),
		Note:    strings.TrimSpace(in.Note),
	}
	if p := strings.TrimSpace(in.Phone); p != "" {
		b.Phone = &p
	}
	if f := strings.TrimSpace(in.Floor); f != "" {
		b.Floor = &f
	}

	var startOK, endOK bool
	steps := []func() *FieldError{
		func() *FieldError { return ValidateName(b.Name) },
		func() *FieldError {
			if !s.policy.RequirePhone {
				return nil
			}
			return ValidatePhone(in.Phone)
		},
		func() *FieldError { return ValidateRoom(b.Room, s.policy.Rooms) },
		func() *FieldError { return ValidateFloor(in.Floor, s.policy.Floors) },
		func() *FieldError {
			d, err := model.ParseDate(in.Date, s.loc)
			if err != nil {
				return invalidField("date", "date must be formatted as YYYY-MM-DD")
			}
			b.Date = d
			if creating && s.policy.RejectPastDates {
				return ValidateDate(d, s.now().In(s.loc))
			}
			return nil
		},
		func() *FieldError {
			c, err := model.ParseClock(in.StartTime)
			if err != nil {
				return invalidField("start_time", "start time must be formatted as HH:MM")
			}
			b.Start, startOK = c, true
			return nil
		},
		func() *FieldError {
			c, err := model.ParseClock(in.EndTime)
			if err != nil {
				return invalidField("end_time", "end time must be formatted as HH:MM")
			}
			b.End, endOK = c, true
			return nil
		},
		func() *FieldError {
			if !startOK || !endOK {
				return nil
			}
			return ValidateTimeRange(b.Start, b.End, s.policy.WorkingHours)
		},
		func() *FieldError {
			if s.policy.NoteMinLength <= 0 {
				return nil
			}
			return ValidateRequiredText("note", b.Note, s.policy.NoteMinLength)
		},
	}

	var errs []*FieldError
	for _, step := range steps {
		fe := step()
		if fe == nil {
			continue
		}
		errs = append(errs, fe)
		if s.policy.Mode == FirstFailure {
			break
		}
	}
	if len(errs) > 0 {
		return model.Booking{}, &ValidationError{Errors: errs}
	}
	return b, nil
}

func (s *BookingService) logRejected(op string, id uint64, b model.Booking, err error) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		s.log.Info("Booking rejected: schedule conflict",
			zap.String("op", op),
			zap.Uint64("booking_id", id),
			zap.String("room", b.Room),
			zap.String("date", b.DateString()),
			zap.Uint64("conflict_id", ce.Existing.ID),
		)
		return
	}
	s.log.Error("Conflict check failed", zap.String("op", op), zap.String("room", b.Room), zap.Error(err))
}

func (s *BookingService) notify(ctx context.Context, t EventType, b model.Booking) {
	if s.notifier == nil {
		return
	}
	ev := BookingEvent{Type: t, Booking: b, OccurredAt: s.now().UTC()}
	if err := s.notifier.BookingChanged(ctx, ev); err != nil {
		s.log.Warn("Booking event delivery failed", zap.String("event", string(t)), zap.Uint64("booking_id", b.ID), zap.Error(err))
	}
}
