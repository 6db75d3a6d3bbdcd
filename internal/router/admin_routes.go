package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/meeting-room-booking/internal/handler"
	"github.com/iliyamo/meeting-room-booking/internal/middleware"
	"github.com/iliyamo/meeting-room-booking/internal/utils"
)

// RegisterAdmin registers the admin login under /v1/admin and the booking
// management endpoints behind AdminAuth and the ADMIN role.  Login is not
// rate limited.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	e.POST("/v1/admin/login", h.Login)
	e.POST("/v1/admin/logout", h.Logout)

	g := e.Group(
		"/v1/admin",
		middleware.AdminAuth(jwtSecret),
		middleware.RequireRole(utils.RoleAdmin),
	)
	g.GET("/bookings", h.List)
	g.PUT("/bookings/:id", h.Update)
	g.DELETE("/bookings/:id", h.Delete)
}
