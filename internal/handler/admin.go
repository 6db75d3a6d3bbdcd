package handler

import (
    "context"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/meeting-room-booking/internal/middleware"
    "github.com/iliyamo/meeting-room-booking/internal/service"
    "github.com/iliyamo/meeting-room-booking/internal/utils"
)

// AdminHandler bundles the admin login and booking management endpoints.
type AdminHandler struct {
    Gate         *service.AdminGate
    Svc          *service.BookingService
    Secret       string
    SessionTTL   time.Duration
    SecureCookie bool
}

func NewAdminHandler(gate *service.AdminGate, svc *service.BookingService, secret string, ttl time.Duration, secureCookie bool) *AdminHandler {
    if gate == nil || svc == nil {
        panic("nil dependency passed to NewAdminHandler")
    }
    return &AdminHandler{Gate: gate, Svc: svc, Secret: secret, SessionTTL: ttl, SecureCookie: secureCookie}
}

type adminLoginReq struct {
    Username string `json:"username" validate:"required,max=100"`
    Password string `json:"password" validate:"required,max=200"`
}

type adminSessionResp struct {
    Token    string    `json:"token"`
    Expires  time.Time `json:"expires"`
    Username string    `json:"username"`
}

// Login verifies the admin credentials and opens a session.  The token is
// returned in the body and set as an HttpOnly cookie.
func (h *AdminHandler) Login(c echo.Context) error {
    var req adminLoginReq
    if ok, err := bindAndValidate(c, &req); !ok {
        return err
    }
    req.Username = strings.TrimSpace(req.Username)

    ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
    defer cancel()

    ok, err := h.Gate.Authenticate(ctx, req.Username, req.Password)
    if err != nil {
        return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "credential store unavailable"})
    }
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
    }

    sess, err := utils.NewAdminSession(h.Secret, req.Username, h.SessionTTL)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue session failed"})
    }
    c.SetCookie(&http.Cookie{
        Name:     middleware.SessionCookie,
        Value:    sess.Token,
        Path:     "/",
        Expires:  sess.Exp,
        HttpOnly: true,
        Secure:   h.SecureCookie,
        SameSite: http.SameSiteStrictMode,
    })
    return c.JSON(http.StatusOK, adminSessionResp{Token: sess.Token, Expires: sess.Exp, Username: req.Username})
}

// Logout clears the session cookie.  Tokens are stateless, so a copied
// bearer token stays valid until it expires.
func (h *AdminHandler) Logout(c echo.Context) error {
    c.SetCookie(&http.Cookie{
        Name:     middleware.SessionCookie,
        Value:    "",
        Path:     "/",
        MaxAge:   -1,
        Expires:  time.Unix(0, 0),
        HttpOnly: true,
        Secure:   h.SecureCookie,
        SameSite: http.SameSiteStrictMode,
    })
    return c.NoContent(http.StatusNoContent)
}

// List handles GET /v1/admin/bookings with the same filters as the public
// list, bypassing the response cache.
func (h *AdminHandler) List(c echo.Context) error {
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

// Update handles PUT /v1/admin/bookings/:id.
func (h *AdminHandler) Update(c echo.Context) error {
    id, ok := parseID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    var req bookingReq
    if ok, err := bindAndValidate(c, &req); !ok {
        return err
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
    defer cancel()

    b, err := h.Svc.Edit(ctx, id, req.input())
    if err != nil {
        return writeServiceError(c, err)
    }
    return c.JSON(http.StatusOK, newBookingResp(b))
}

// Delete handles DELETE /v1/admin/bookings/:id.
func (h *AdminHandler) Delete(c echo.Context) error {
    id, ok := parseID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
    defer cancel()

    if err := h.Svc.Delete(ctx, id); err != nil {
        return writeServiceError(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}
