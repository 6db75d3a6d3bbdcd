package router

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/meeting-room-booking/internal/config"
	"github.com/iliyamo/meeting-room-booking/internal/handler"
	"github.com/iliyamo/meeting-room-booking/internal/repository"
	"github.com/iliyamo/meeting-room-booking/internal/service"
)

func passThrough(next echo.HandlerFunc) echo.HandlerFunc { return next }

func newRouter(t *testing.T) *echo.Echo {
	t.Helper()
	svc := service.NewBookingService(repository.NewBookingRepo(nil, repository.DialectMySQL), service.DefaultPolicy(), nil, nil)
	gate := service.NewAdminGate(config.AdminCredentials{Username: "admin"}, nil)

	e := echo.New()
	RegisterRoutes(e, nil)
	RegisterPublic(e, handler.NewBookingHandler(svc), passThrough, passThrough)
	RegisterAdmin(e, handler.NewAdminHandler(gate, svc, "secret", time.Hour, false), "secret")
	return e
}

func TestRoutesRegistered(t *testing.T) {
	e := newRouter(t)

	var got []string
	for _, r := range e.Routes() {
		got = append(got, r.Method+" "+r.Path)
	}
	sort.Strings(got)

	want := []string{
		"DELETE /v1/admin/bookings/:id",
		"GET /healthz",
		"GET /v1/admin/bookings",
		"GET /v1/bookings",
		"GET /v1/bookings/:id",
		"GET /v1/calendar/events",
		"GET /v1/rooms",
		"POST /v1/admin/login",
		"POST /v1/admin/logout",
		"POST /v1/bookings",
		"PUT /v1/admin/bookings/:id",
	}
	for _, w := range want {
		assert.Contains(t, got, w)
	}
	assert.NotContains(t, got, "GET /readyz")
}

func TestAdminGroupRequiresSession(t *testing.T) {
	e := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/bookings", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
