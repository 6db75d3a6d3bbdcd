package middleware

import (
    "time"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"
    "go.uber.org/zap"
    "go.uber.org/zap/zapcore"
)

// CtxRequestID holds the per-request ID.
const CtxRequestID = "request_id"

// RequestLogger logs one line per request.  An incoming X-Request-ID is
// reused, otherwise a new UUID is generated; either way it is echoed back.
func RequestLogger(log *zap.Logger) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            start := time.Now()
            req := c.Request()

            id := req.Header.Get(echo.HeaderXRequestID)
            if id == "" {
                id = uuid.NewString()
            }
            c.Set(CtxRequestID, id)
            c.Response().Header().Set(echo.HeaderXRequestID, id)

            err := next(c)
            if err != nil {
                // let echo write the error response so the status below is final
                c.Error(err)
            }

            status := c.Response().Status
            level := zapcore.InfoLevel
            switch {
            case status >= 500:
                level = zapcore.ErrorLevel
            case status >= 400:
                level = zapcore.WarnLevel
            }
            fields := []zap.Field{
                zap.String("request_id", id),
                zap.String("method", req.Method),
                zap.String("route", c.Path()),
                zap.String("uri", req.RequestURI),
                zap.Int("status", status),
                zap.Duration("latency", time.Since(start)),
                zap.String("remote_ip", c.RealIP()),
                zap.String("actor", actor(c)),
            }
            if err != nil {
                fields = append(fields, zap.Error(err))
            }
            if ce := log.Check(level, "HTTP request"); ce != nil {
                ce.Write(fields...)
            }
            return nil
        }
    }
}
