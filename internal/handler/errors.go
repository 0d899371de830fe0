package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/photo-gallery/internal/apperr"
	"github.com/iliyamo/photo-gallery/internal/logging"
	"github.com/iliyamo/photo-gallery/internal/validation"
)

// NewHTTPErrorHandler renders every error that leaves a handler as
// {"error": "<message>"}, plus a "details" map of per-field messages for
// validation failures. Domain errors map through their code; Echo's own
// errors keep their status. Anything else is an internal error: it is
// logged with its cause and the client sees a generic message.
func NewHTTPErrorHandler(log logging.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		msg := "Internal server error"
		var details map[string]string

		var appErr *apperr.Error
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &appErr):
			status = appErr.Code.HTTPStatus()
			if appErr.Code != apperr.CodeInternal {
				msg = appErr.Message
				details = appErr.Details
			}
		case errors.As(err, &httpErr):
			status = httpErr.Code
			if m, ok := httpErr.Message.(string); ok {
				msg = m
			} else {
				msg = http.StatusText(status)
			}
		}

		if status >= http.StatusInternalServerError {
			log.Error(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			body := echo.Map{"error": msg}
			if len(details) > 0 {
				body["details"] = details
			}
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			log.Warn(c.Request().Context(), "write error response", "error", writeErr)
		}
	}
}

// bindAndValidate decodes the JSON body into req and runs the registered
// validator. A malformed body is a validation error.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return apperr.Validation("invalid body")
	}
	return c.Validate(req)
}

// missingFields swaps the summary of a validation error whose failures are
// all missing fields for msg. Other errors pass through unchanged.
func missingFields(err error, msg string) error {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Code != apperr.CodeValidation || len(appErr.Details) == 0 {
		return err
	}
	for _, m := range appErr.Details {
		if m != validation.MsgRequired {
			return err
		}
	}
	return apperr.ValidationWithDetails(msg, appErr.Details)
}
