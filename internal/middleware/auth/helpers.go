package auth

import (
	"context"
	"strings"

	"github.com/Skotchmaster/atlas_derslik/pkg/tokens"
	"github.com/labstack/echo/v4"
)

// MsgInvalidToken is the body message of every 401 caused by a missing or
// rejected bearer claim.
const MsgInvalidToken = "Invalid or expired token"

const (
	CtxUserID = "user_id"
	CtxRole   = "role"
	CtxClaims = "claims"
)

type ClaimVerifier interface {
	VerifyClaim(ctx context.Context, token string) (*tokens.AccessClaims, error)
}

// BearerToken returns the token from "Authorization: Bearer <token>", or "".
func BearerToken(c echo.Context) string {
	h := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func setUserContext(c echo.Context, claims *tokens.AccessClaims) {
	c.Set(CtxUserID, claims.Subject)
	c.Set(CtxRole, claims.Role)
	c.Set(CtxClaims, claims)
}

func ClaimsFrom(c echo.Context) (*tokens.AccessClaims, bool) {
	claims, ok := c.Get(CtxClaims).(*tokens.AccessClaims)
	return claims, ok && claims != nil
}
