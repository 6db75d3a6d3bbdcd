package handler

import (
    "context"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/meeting-room-booking/internal/model"
    "github.com/iliyamo/meeting-room-booking/internal/service"
)

const requestTimeout = 5 * time.Second

// BookingHandler serves the public booking form, list and calendar.
type BookingHandler struct {
    Svc *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
    if svc == nil {
        panic("nil service passed to NewBookingHandler")
    }
    return &BookingHandler{Svc: svc}
}

// ----- DTOs -----

// bookingReq limits only sizes; content rules are applied by the service
// so that every field failure is reported together.
type bookingReq struct {
    Name      string `json:"name" validate:"max=100"`
    Contact   string `json:"contact" validate:"max=100"`
    Phone     string `json:"phone" validate:"max=20"`
    Floor     string `json:"floor" validate:"max=20"`
    Room      string `json:"room" validate:"max=100"`
    Date      string `json:"date" validate:"max=10"`
    StartTime string `json:"start_time" validate:"max=15"`
    EndTime   string `json:"end_time" validate:"max=15"`
    Note      string `json:"note" validate:"max=2000"`
}

func (r bookingReq) input() service.BookingInput {
    return service.BookingInput{
        Name:      r.Name,
        Contact:   r.Contact,
        Phone:     r.Phone,
        Floor:     r.Floor,
        Room:      r.Room,
        Date:      r.Date,
        StartTime: r.StartTime,
        EndTime:   r.EndTime,
        Note:      r.Note,
    }
}

type bookingResp struct {
    ID        uint64    `json:"id"`
    Name      string    `json:"name"`
    Contact   string    `json:"contact"`
    Phone     *string   `json:"phone"`
    Floor     *string   `json:"floor"`
    Room      string    `json:"room"`
    Date      string    `json:"date"`
    StartTime string    `json:"start_time"`
    EndTime   string    `json:"end_time"`
    Note      string    `json:"note"`
    CreatedAt time.Time `json:"created_at"`
}

func newBookingResp(b model.Booking) bookingResp {
    return bookingResp{
        ID:        b.ID,
        Name:      b.Name,
        Contact:   b.Contact,
        Phone:     b.Phone,
        Floor:     b.Floor,
        Room:      b.Room,
        Date:      b.DateString(),
        StartTime: b.Start.String(),
        EndTime:   b.End.String(),
        Note:      b.Note,
        CreatedAt: b.CreatedAt,
    }
}

func newBookingList(bookings []model.Booking) []bookingResp {
    out := make([]bookingResp, 0, len(bookings))
    for _, b := range bookings {
        out = append(out, newBookingResp(b))
    }
    return out
}

type roomResp struct {
    Name  string `json:"name"`
    Color string `json:"color,omitempty"`
}

// Rooms describes the form options: bookable rooms with their calendar
// colors, floors and the working-hours window.
func (h *BookingHandler) Rooms(c echo.Context) error {
    p := h.Svc.Policy()
    rooms := make([]roomResp, 0, len(p.Rooms))
    for _, r := range p.Rooms {
        rooms = append(rooms, roomResp{Name: r, Color: p.RoomColors[r]})
    }
    resp := echo.Map{
        "rooms":         rooms,
        "floors":        p.Floors,
        "working_hours": nil,
        "slot_min":      "08:00:00",
        "slot_max":      "18:00:00",
    }
    if wh := p.WorkingHours; wh != nil {
        resp["working_hours"] = echo.Map{"open": wh.Open.Short(), "close": wh.Close.Short()}
        resp["slot_min"] = wh.Open.String()
        resp["slot_max"] = wh.Close.String()
    }
    return c.JSON(http.StatusOK, resp)
}

// Create handles POST /v1/bookings.
func (h *BookingHandler) Create(c echo.Context) error {
    var req bookingReq
    if ok, err := bindAndValidate(c, &req); !ok {
        return err
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
    defer cancel()

    id, err := h.Svc.Submit(ctx, req.input())
    if err != nil {
        return writeServiceError(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{"id": id, "message": "booking saved"})
}

// List handles GET /v1/bookings?room=&from=&to=.
func (h *BookingHandler) List(c echo.Context) error {
    filter, err := parseFilter(c, h.Svc.Location())
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
    defer cancel()

    bookings, err := h.Svc.List(ctx, filter)
    if err != nil {
        return writeServiceError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"bookings": newBookingList(bookings), "count": len(bookings)})
}

// Get handles GET /v1/bookings/:id.
func (h *BookingHandler) Get(c echo.Context) error {
    id, ok := parseID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
    defer cancel()

    b, err := h.Svc.Get(ctx, id)
    if err != nil {
        return writeServiceError(c, err)
    }
    return c.JSON(http.StatusOK, newBookingResp(b))
}

// Calendar handles GET /v1/calendar/events?room=.  The body is a bare
// array, the shape calendar widgets fetch directly.
func (h *BookingHandler) Calendar(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
    defer cancel()

    events, err := h.Svc.CalendarEvents(ctx, strings.TrimSpace(c.QueryParam("room")))
    if err != nil {
        return writeServiceError(c, err)
    }
    return c.JSON(http.StatusOK, events)
}

func parseID(c echo.Context) (uint64, bool) {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return 0, false
    }
    return id, true
}

type filterError string

func (e filterError) Error() string { return string(e) }

func parseFilter(c echo.Context, loc *time.Location) (model.BookingFilter, error) {
    f := model.BookingFilter{Room: strings.TrimSpace(c.QueryParam("room"))}
    if s := strings.TrimSpace(c.QueryParam("from")); s != "" {
        d, err := model.ParseDate(s, loc)
        if err != nil {
            return f, filterError("from must be formatted as YYYY-MM-DD")
        }
        f.From = &d
    }
    if s := strings.TrimSpace(c.QueryParam("to")); s != "" {
        d, err := model.ParseDate(s, loc)
        if err != nil {
            return f, filterError("to must be formatted as YYYY-MM-DD")
        }
        f.To = &d
    }
    if f.From != nil && f.To != nil && f.To.Before(*f.From) {
        return f, filterError("to must not be before from")
    }
    return f, nil
}
