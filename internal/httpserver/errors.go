package httpserver

import (
	"errors"
	"net/http"

	"github.com/Skotchmaster/atlas_derslik/internal/middleware/auth"
	"github.com/Skotchmaster/atlas_derslik/internal/service"
	"github.com/labstack/echo/v4"
)

const (
	msgValidation         = "Missing required fields"
	msgInvalidCredentials = "Invalid credentials"
	msgInvalidToken       = auth.MsgInvalidToken
	msgConflict           = "Account already exists"
	msgNotFound           = "Account not found"
	msgInternal           = "Internal server error"
)

// httpError maps a service error to the stable status/message pair callers see.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, msgValidation)
	case errors.Is(err, service.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, msgInvalidCredentials)
	case errors.Is(err, service.ErrInvalidToken):
		return echo.NewHTTPError(http.StatusUnauthorized, msgInvalidToken)
	case errors.Is(err, service.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, msgConflict)
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, msgNotFound)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, msgInternal)
	}
}

// ErrorHandler renders every error as {"error": "..."}. Only the message of
// an *echo.HTTPError is exposed; anything else becomes a generic 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := msgInternal

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, echo.Map{"error": msg})
}
