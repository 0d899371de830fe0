package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/photo-gallery/internal/logging"
	"github.com/iliyamo/photo-gallery/internal/metrics"
)

// AccessLog logs one line per request and feeds the HTTP metrics. Errors
// returned by handlers are rendered first so the logged status is final.
func AccessLog(log logging.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}
			elapsed := time.Since(start)

			req := c.Request()
			status := c.Response().Status
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			metrics.RecordRequest(req.Method, route, strconv.Itoa(status), elapsed.Seconds())

			args := []any{
				"method", req.Method,
				"route", route,
				"status", status,
				"latency_ms", elapsed.Milliseconds(),
				"request_id", RequestIDFrom(c),
			}
			if status >= 500 {
				log.Error(req.Context(), "request", args...)
			} else {
				log.Info(req.Context(), "request", args...)
			}
			return nil
		}
	}
}
