package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/atlas_derslik/internal/middleware/auth"
	"github.com/Skotchmaster/atlas_derslik/internal/models"
	"github.com/labstack/echo/v4"
)

// Prefixes the auth routes are mounted under; the SPA calls /api/auth/*.
var Prefixes = []string{"", "/api/auth"}

type Deps struct {
	AuthHandler *AuthHTTP
	// Ready reports whether dependencies (the database) are reachable.
	Ready func(c echo.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.HTTPErrorHandler = ErrorHandler

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c); err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "not ready")
			}
		}
		return c.NoContent(http.StatusOK)
	})

	requireAuth := auth.RequireAuth(d.AuthHandler.Svc)

	for _, prefix := range Prefixes {
		g := e.Group(prefix)

		g.POST("/register", d.AuthHandler.Register)
		g.POST("/login", d.AuthHandler.Login)
		g.GET("/me", d.AuthHandler.Me)
		g.POST("/logout", d.AuthHandler.LogOut)

		admin := g.Group("/admin", requireAuth, auth.RequireRole(models.RoleAdmin))
		admin.POST("/accounts/:id/deactivate", d.AuthHandler.Deactivate)
	}
}
