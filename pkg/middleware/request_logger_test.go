package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	e := echo.New()
	e.Use(RequestLogger(zap.New(core)))
	e.GET("/api/greenhouses", func(c echo.Context) error { return c.String(http.StatusOK, "[]") })
	e.GET("/api/broken", func(c echo.Context) error { return c.String(http.StatusInternalServerError, "x") })
	e.GET("/uploads/a.jpg", func(c echo.Context) error { return c.String(http.StatusOK, "img") })

	for _, path := range []string{"/api/greenhouses", "/api/broken", "/api/missing", "/uploads/a.jpg"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.All()
	require.Len(t, entries, 3, "static paths are not logged")
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "/api/greenhouses", entries[0].ContextMap()["uri"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, int64(http.StatusNotFound), entries[2].ContextMap()["status"])
}
