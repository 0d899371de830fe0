package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const headerRequestID = echo.HeaderXRequestID

// RequestID echoes an incoming X-Request-Id or mints a UUID for the request.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(headerRequestID)
			if rid == "" || len(rid) > 128 {
				rid = uuid.NewString()
			}
			c.Response().Header().Set(headerRequestID, rid)
			c.Set("request_id", rid)
			return next(c)
		}
	}
}

// RequestIDFrom returns the id assigned by RequestID, or "".
func RequestIDFrom(c echo.Context) string {
	rid, _ := c.Get("request_id").(string)
	return rid
}
