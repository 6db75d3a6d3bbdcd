package router // package router defines how HTTP routes are registered for the API

import (
	"database/sql"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/meeting-room-booking/internal/handler"
)

// RegisterRoutes registers the unauthenticated probes.  /readyz is only
// mounted when a database handle is given.
func RegisterRoutes(e *echo.Echo, db *sql.DB) {
	e.GET("/healthz", handler.Health)
	if db != nil {
		e.GET("/readyz", handler.Ready(db))
	}
}

// RegisterPublic registers the booking form, list and calendar endpoints.
// limit guards every public route; cache wraps the read-only ones.  Either
// may be a pass-through when redis is not configured.
func RegisterPublic(e *echo.Echo, h *handler.BookingHandler, limit, cache echo.MiddlewareFunc) {
	g := e.Group("/v1", limit)

	g.GET("/rooms", h.Rooms)
	g.POST("/bookings", h.Create)
	g.GET("/bookings", h.List, cache)
	g.GET("/bookings/:id", h.Get)
	g.GET("/calendar/events", h.Calendar, cache)
}
