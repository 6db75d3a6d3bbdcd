package middleware

import "github.com/labstack/echo/v4"

// actor names who is making the request: the admin username once AdminAuth
// has run, "guest" otherwise.
func actor(c echo.Context) string {
    if name, ok := c.Get(CtxAdmin).(string); ok && name != "" {
        return name
    }
    return "guest"
}

// RequestID returns the ID assigned by RequestLogger, or "".
func RequestID(c echo.Context) string {
    id, _ := c.Get(CtxRequestID).(string)
    return id
}
