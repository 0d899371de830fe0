package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/photo-gallery/internal/metrics"
)

// RequireRole returns a middleware that enforces that the authenticated
// principal has one of the given roles. It assumes a guard has already
// stored the role in the context; a missing or unlisted role is answered
// with 403 Forbidden.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(ctxRole).(string)
			if !ok || !allowed[role] {
				metrics.RecordAuthFailure("admin", "forbidden")
				return c.JSON(http.StatusForbidden, echo.Map{"error": "Not authorized"})
			}
			return next(c)
		}
	}
}
