package handler

import (
    "context"
    "errors"
    "net/http"
    "net/http/httptest"
    "sort"
    "strings"
    "sync"
    "testing"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/require"
    "golang.org/x/crypto/bcrypt"

    "github.com/iliyamo/meeting-room-booking/internal/config"
    "github.com/iliyamo/meeting-room-booking/internal/middleware"
    "github.com/iliyamo/meeting-room-booking/internal/model"
    "github.com/iliyamo/meeting-room-booking/internal/repository"
    "github.com/iliyamo/meeting-room-booking/internal/service"
    "github.com/iliyamo/meeting-room-booking/internal/utils"
)

const (
    testSecret   = "handler-secret"
    testPassword = "s3cret!"
)

type stubStore struct {
    mu     sync.Mutex
    nextID uint64
    rows   map[uint64]model.Booking
    err    error
}

func newStubStore() *stubStore {
    return &stubStore{nextID: 1, rows: map[uint64]model.Booking{}}
}

func (s *stubStore) ListByRoomAndDate(_ context.Context, room string, date time.Time) ([]model.Booking, error) {
    all, err := s.ListAll(context.Background(), model.BookingFilter{Room: room, From: &date, To: &date})
    return all, err
}

func (s *stubStore) Create(_ context.Context, b *model.Booking) (uint64, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.err != nil {
        return 0, s.err
    }
    id := s.nextID
    s.nextID++
    row := *b
    row.ID = id
    s.rows[id] = row
    return id, nil
}

func (s *stubStore) GetByID(_ context.Context, id uint64) (model.Booking, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.err != nil {
        return model.Booking{}, s.err
    }
    b, ok := s.rows[id]
    if !ok {
        return model.Booking{}, repository.ErrNotFound
    }
    return b, nil
}

func (s *stubStore) Update(_ context.Context, id uint64, b *model.Booking) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    if _, ok := s.rows[id]; !ok {
        return repository.ErrNotFound
    }
    row := *b
    row.ID = id
    s.rows[id] = row
    return nil
}

func (s *stubStore) Delete(_ context.Context, id uint64) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    if _, ok := s.rows[id]; !ok {
        return repository.ErrNotFound
    }
    delete(s.rows, id)
    return nil
}

func (s *stubStore) ListAll(_ context.Context, f model.BookingFilter) ([]model.Booking, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.err != nil {
        return nil, s.err
    }
    out := []model.Booking{}
    for _, b := range s.rows {
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
    sort.Slice(out, func(i, j int) bool {
        if out[i].DateString() != out[j].DateString() {
            return out[i].DateString() < out[j].DateString()
        }
        return out[i].Start < out[j].Start
    })
    return out, nil
}

type testApp struct {
    e     *echo.Echo
    store *stubStore
}

func newTestApp(t *testing.T) *testApp {
    t.Helper()
    store := newStubStore()
    svc := service.NewBookingService(store, service.DefaultPolicy(), nil, nil)
    svc.SetLocation(time.UTC)

    hash, err := utils.HashPassword(testPassword, bcrypt.MinCost)
    require.NoError(t, err)
    creds := config.AdminCredentials{Username: "admin", PasswordHash: hash}
    gate := service.NewAdminGate(creds, nil)

    e := echo.New()
    e.Validator = NewValidator()

    bh := NewBookingHandler(svc)
    e.GET("/v1/rooms", bh.Rooms)
    e.POST("/v1/bookings", bh.Create)
    e.GET("/v1/bookings", bh.List)
    e.GET("/v1/bookings/:id", bh.Get)
    e.GET("/v1/calendar/events", bh.Calendar)

    ah := NewAdminHandler(gate, svc, testSecret, time.Hour, false)
    e.POST("/v1/admin/login", ah.Login)
    e.POST("/v1/admin/logout", ah.Logout)
    g := e.Group("/v1/admin", middleware.AdminAuth(testSecret), middleware.RequireRole(utils.RoleAdmin))
    g.GET("/bookings", ah.List)
    g.PUT("/bookings/:id", ah.Update)
    g.DELETE("/bookings/:id", ah.Delete)

    return &testApp{e: e, store: store}
}

func (a *testApp) do(method, target, body string, headers ...string) *httptest.ResponseRecorder {
    var req *http.Request
    if body != "" {
        req = httptest.NewRequest(method, target, strings.NewReader(body))
        req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    } else {
        req = httptest.NewRequest(method, target, nil)
    }
    for i := 0; i+1 < len(headers); i += 2 {
        req.Header.Set(headers[i], headers[i+1])
    }
    rec := httptest.NewRecorder()
    a.e.ServeHTTP(rec, req)
    return rec
}

func (a *testApp) seed(name, room, date, start, end string) uint64 {
    d, _ := model.ParseDate(date, time.UTC)
    s, _ := model.ParseClock(start)
    en, _ := model.ParseClock(end)
    id, err := a.store.Create(context.Background(), &model.Booking{
        Name: name, Contact: "HR", Room: room, Date: d, Start: s, End: en,
        CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
    })
    if err != nil {
        panic(err)
    }
    return id
}

var errStorage = errors.New("connection refused")

func httptestCookieRequest(target, token string) *http.Request {
    req := httptest.NewRequest(http.MethodGet, target, nil)
    req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
    return req
}

func (a *testApp) serve(req *http.Request) *httptest.ResponseRecorder {
    rec := httptest.NewRecorder()
    a.e.ServeHTTP(rec, req)
    return rec
}
