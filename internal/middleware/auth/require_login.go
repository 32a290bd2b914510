package auth

import (
	"net/http"

	"github.com/Skotchmaster/atlas_derslik/pkg/logging"
	"github.com/labstack/echo/v4"
)

func RequireAuth(v ClaimVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			token := BearerToken(c)
			if token == "" {
				logging.FromContext(ctx).Warn("auth_rejected", "status", 401, "reason", "missing bearer token")
				return echo.NewHTTPError(http.StatusUnauthorized, MsgInvalidToken)
			}

			claims, err := v.VerifyClaim(ctx, token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, MsgInvalidToken)
			}

			setUserContext(c, claims)
			return next(c)
		}
	}
}
