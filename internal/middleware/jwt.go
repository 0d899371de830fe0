package middleware // middleware provides shared request processing for handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/photo-gallery/internal/metrics"
	"github.com/iliyamo/photo-gallery/internal/model"
)

// Context keys set by the access guard.
const (
	ctxPrincipal = "principal"
	ctxUserID    = "user_id"
	ctxRole      = "role"
)

// TokenVerifier is the part of the token service the guard needs.
type TokenVerifier interface {
	VerifyUser(raw string) (model.Principal, error)
	VerifyAdmin(raw string) (model.Principal, error)
}

// bearerToken pulls the raw token out of "Authorization: Bearer <token>".
func bearerToken(c echo.Context) (string, bool) {
	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	return raw, raw != ""
}

// UserAuth admits requests carrying a valid user token and stores the
// resolved principal in the context. Admin tokens are signed with a
// different secret and are rejected here.
func UserAuth(v TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c)
			if !ok {
				metrics.RecordAuthFailure("user", "missing_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "No token provided"})
			}
			p, err := v.VerifyUser(raw)
			if err != nil {
				metrics.RecordAuthFailure("user", "invalid_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid token"})
			}
			setPrincipal(c, p)
			return next(c)
		}
	}
}

// AdminAuth admits requests carrying a valid admin token. A token that
// verifies but lacks the admin role gets 403, everything else 401.
func AdminAuth(v TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c)
			if !ok {
				metrics.RecordAuthFailure("admin", "missing_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "No token provided"})
			}
			p, err := v.VerifyAdmin(raw)
			if err != nil {
				metrics.RecordAuthFailure("admin", "invalid_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid token"})
			}
			setPrincipal(c, p)
			return RequireRole(model.RoleAdmin)(next)(c)
		}
	}
}

func setPrincipal(c echo.Context, p model.Principal) {
	c.Set(ctxPrincipal, p)
	c.Set(ctxRole, p.Role)
	if p.Kind == model.KindUser {
		c.Set(ctxUserID, p.UserID)
	}
}

// PrincipalFrom returns the principal stored by UserAuth or AdminAuth.
func PrincipalFrom(c echo.Context) (model.Principal, bool) {
	p, ok := c.Get(ctxPrincipal).(model.Principal)
	return p, ok
}

// UserIDFrom returns the id of the authenticated user. It is the only
// source handlers use to scope per-user data.
func UserIDFrom(c echo.Context) (int64, bool) {
	id, ok := c.Get(ctxUserID).(int64)
	return id, ok && id > 0
}
