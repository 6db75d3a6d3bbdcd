package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/meeting-room-booking/internal/model"
	"github.com/iliyamo/meeting-room-booking/internal/repository"
)

// memStore is an in-memory BookingStore that records how it was used.
type memStore struct {
	mu     sync.Mutex
	nextID uint64
	rows   map[uint64]model.Booking

	listErr   error
	createErr error
	getErr    error
	updateErr error
	deleteErr error

	calls int
}

func newMemStore(bookings ...model.Booking) *memStore {
	s := &memStore{nextID: 1, rows: map[uint64]model.Booking{}}
	for _, b := range bookings {
		if b.ID == 0 {
			b.ID = s.nextID
		}
		if b.ID >= s.nextID {
			s.nextID = b.ID + 1
		}
		s.rows[b.ID] = b
	}
	return s
}

func (s *memStore) ListByRoomAndDate(_ context.Context, room string, date time.Time) ([]model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []model.Booking
	for _, b := range s.sorted() {
		if b.Room == room && b.DateString() == model.FormatDate(date) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *memStore) Create(_ context.Context, b *model.Booking) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.createErr != nil {
		return 0, s.createErr
	}
	id := s.nextID
	s.nextID++
	row := *b
	row.ID = id
	s.rows[id] = row
	return id, nil
}

func (s *memStore) GetByID(_ context.Context, id uint64) (model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.getErr != nil {
		return model.Booking{}, s.getErr
	}
	b, ok := s.rows[id]
	if !ok {
		return model.Booking{}, repository.ErrNotFound
	}
	return b, nil
}

func (s *memStore) Update(_ context.Context, id uint64, b *model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.updateErr != nil {
		return s.updateErr
	}
	if _, ok := s.rows[id]; !ok {
		return repository.ErrNotFound
	}
	row := *b
	row.ID = id
	s.rows[id] = row
	return nil
}

func (s *memStore) Delete(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.deleteErr != nil {
		return s.deleteErr
	}
	if _, ok := s.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

func (s *memStore) ListAll(_ context.Context, f model.BookingFilter) ([]model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := []model.Booking{}
	for _, b := range s.sorted() {
		if f.Room != "" && b.Room != f.Room {
			continue
		}
		if f.From != nil && b.DateString() < model.FormatDate(*f.From) {
			continue
		}
		if f.To != nil && b.DateString() > model.FormatDate(*f.To) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (s *memStore) sorted() []model.Booking {
	out := make([]model.Booking, 0, len(s.rows))
	for _, b := range s.rows {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DateString() != out[j].DateString() {
			return out[i].DateString() < out[j].DateString()
		}
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *memStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func day(s string) time.Time {
	d, err := model.ParseDate(s, time.UTC)
	if err != nil {
		panic(err)
	}
	return d
}

func clock(s string) model.Clock {
	c, err := model.ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

func booking(id uint64, name, room, date, start, end string) model.Booking {
	return model.Booking{
		ID:        id,
		Name:      name,
		Contact:   "Finance",
		Room:      room,
		Date:      day(date),
		Start:     clock(start),
		End:       clock(end),
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}
