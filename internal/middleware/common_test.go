package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Skotchmaster/atlas_derslik/pkg/logging"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestCommon(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	e := echo.New()
	for _, m := range Common(logging.NewWithWriter(&buf, "info"), []string{"http://localhost:5173"}) {
		e.Use(m)
	}
	e.GET("/panic", func(c echo.Context) error { panic("boom") })
	e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:5173")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	assert.Equal(t, "http://localhost:5173", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Contains(t, buf.String(), rec.Header().Get(echo.HeaderXRequestID))

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
