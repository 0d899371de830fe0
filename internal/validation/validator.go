// Package validation checks request bodies with go-playground/validator and
// turns failures into VALIDATION domain errors. It plugs into Echo as
// e.Validator so handlers can call c.Validate.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/photo-gallery/internal/apperr"
)

// MsgRequired is the per-field message for a missing or blank value.
const MsgRequired = "is required"

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()
	// Report json field names ("photoId") rather than Go ones ("PhotoID").
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	// Whitespace-only input counts as missing.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return &Validator{v: v}
}

// Validate satisfies echo.Validator.
func (v *Validator) Validate(i any) error {
	if err := v.v.Struct(i); err != nil {
		return v.formatError(err)
	}
	return nil
}

func (v *Validator) formatError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Validation("invalid request")
	}
	fields := make(map[string]string, len(verrs))
	names := make([]string, 0, len(verrs))
	for _, e := range verrs {
		fields[e.Field()] = friendlyMessage(e)
		names = append(names, e.Field())
	}
	return apperr.ValidationWithDetails(summary(verrs, names), fields)
}

// summary keeps the short messages the browser scripts show in toasts.
func summary(verrs validator.ValidationErrors, names []string) string {
	allRequired := true
	for _, e := range verrs {
		if e.Tag() != "required" && e.Tag() != "notblank" {
			allRequired = false
			break
		}
	}
	if allRequired {
		return strings.Join(names, ", ") + " required"
	}
	return "invalid " + strings.Join(names, ", ")
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "notblank":
		return MsgRequired
	case "email":
		return "must be a valid email address"
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	default:
		return "is invalid"
	}
}
