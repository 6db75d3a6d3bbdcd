package middleware

import (
    "errors"
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "go.uber.org/zap"
    "go.uber.org/zap/zapcore"
    "go.uber.org/zap/zaptest/observer"
)

func TestRequestLogger(t *testing.T) {
    core, logs := observer.New(zapcore.InfoLevel)
    e := echo.New()
    e.Use(RequestLogger(zap.New(core)))
    e.GET("/ok/:id", func(c echo.Context) error {
        assert.NotEmpty(t, RequestID(c))
        return c.String(http.StatusOK, "ok")
    })
    e.GET("/boom", func(c echo.Context) error { return errors.New("boom") })

    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok/5", nil))
    id := rec.Header().Get(echo.HeaderXRequestID)
    _, err := uuid.Parse(id)
    require.NoError(t, err)

    req := httptest.NewRequest(http.MethodGet, "/ok/6", nil)
    req.Header.Set(echo.HeaderXRequestID, "abc-123")
    rec = httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    assert.Equal(t, "abc-123", rec.Header().Get(echo.HeaderXRequestID))

    rec = httptest.NewRecorder()
    e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
    assert.Equal(t, http.StatusInternalServerError, rec.Code)

    entries := logs.All()
    require.Len(t, entries, 3)
    first := entries[0].ContextMap()
    assert.Equal(t, "/ok/:id", first["route"])
    assert.Equal(t, int64(http.StatusOK), first["status"])
    assert.Equal(t, "guest", first["actor"])
    assert.Equal(t, "abc-123", entries[1].ContextMap()["request_id"])
    assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
}
