package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/iliyamo/meeting-room-booking/internal/utils"
)

// SessionCookie is the cookie that carries the admin session token for
// browser clients.
const SessionCookie = "admin_session"

// Context keys set by AdminAuth.
const (
    CtxAdmin     = "admin"
    CtxRole      = "role"
    CtxSessionID = "session_id"
)

// AdminAuth returns an Echo middleware that validates an admin session token
// taken from a Bearer Authorization header or, failing that, from the
// admin_session cookie.  On success the username, role and session ID are
// stored in the context.
func AdminAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            raw := bearerToken(c)
            if raw == "" {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing session token"})
            }
            claims, err := utils.ParseAdminSession(secret, raw)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid session token"})
            }
            c.Set(CtxAdmin, claims.Username)
            c.Set(CtxRole, claims.Role)
            c.Set(CtxSessionID, claims.SessionID)
            return next(c)
        }
    }
}

// bearerToken prefers the Authorization header over the cookie.
func bearerToken(c echo.Context) string {
    if auth := c.Request().Header.Get(echo.HeaderAuthorization); strings.HasPrefix(auth, "Bearer ") {
        return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
    }
    if ck, err := c.Cookie(SessionCookie); err == nil {
        return ck.Value
    }
    return ""
}
