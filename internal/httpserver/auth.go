package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/atlas_derslik/internal/middleware/auth"
	"github.com/Skotchmaster/atlas_derslik/internal/service"
	"github.com/Skotchmaster/atlas_derslik/internal/transport"
	"github.com/Skotchmaster/atlas_derslik/pkg/logging"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, msgValidation)
	}

	res, err := h.Svc.Register(ctx, req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, res)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, msgValidation)
	}

	res, err := h.Svc.Authenticate(ctx, req.Identifier, req.Secret)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, res)
}

func (h *AuthHTTP) Me(c echo.Context) error {
	ctx := c.Request().Context()

	profile, err := h.Svc.CurrentIdentity(ctx, auth.BearerToken(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"account": profile,
	})
}

// LogOut never fails: there is no server-side session to drop.
func (h *AuthHTTP) LogOut(c echo.Context) error {
	ctx := c.Request().Context()

	_ = h.Svc.Logout(ctx, auth.BearerToken(c))

	return c.JSON(http.StatusOK, echo.Map{
		"acknowledged": true,
	})
}

func (h *AuthHTTP) Deactivate(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin_deactivate")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("deactivate_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, msgValidation)
	}

	if err := h.Svc.Deactivate(ctx, id); err != nil {
		return httpError(err)
	}

	if admin, ok := auth.ClaimsFrom(c); ok {
		l.Info("account_deactivated", "account_id", id, "by", admin.Subject)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":     id,
		"active": false,
	})
}
