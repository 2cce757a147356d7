package cms

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// This is shared-secret auth for a single admin identity: one configured
// username/password pair and one fixed bearer token. There are no sessions,
// no expiry, and no revocation short of redeploying with a new token.

// principalKey is the context key under which the authenticated admin
// username is stored by RequireToken.
const principalKey = "principal"

// VerifyCredentials reports whether username and password both match the
// configured admin values exactly.
func (c Config) VerifyCredentials(username, password string) bool {
	return username == c.AdminUsername && password == c.AdminPassword
}

// IssueToken returns the fixed admin token. It is not a function of the
// username and carries no signature or expiry.
func (c Config) IssueToken(username string) string {
	return c.AdminToken
}

// RequireToken is middleware guarding mutating endpoints. A missing or
// malformed Authorization header yields 401; a well-formed header with the
// wrong token yields 403. The scheme keyword is case-insensitive.
func (a *App) RequireToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		const prefix = "bearer "
		if header == "" || len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
			return echo.NewHTTPError(http.StatusUnauthorized, "No token")
		}
		token := strings.TrimSpace(header[len(prefix):])
		if token != a.cfg.AdminToken {
			return echo.NewHTTPError(http.StatusForbidden, "Bad token")
		}
		c.Set(principalKey, a.cfg.AdminUsername)
		return next(c)
	}
}

// Principal returns the authenticated admin username set by RequireToken,
// or the empty string on an unauthenticated request.
func Principal(c echo.Context) string {
	user, _ := c.Get(principalKey).(string)
	return user
}
