// Package validation binds request bodies and turns validator failures into
// field errors the client can act on.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/leetcode-tracker/internal/errs"
)

// Validatable is implemented by request payloads that check themselves.
type Validatable interface {
	Validate() error
}

// BindAndValidate decodes the request into payload and validates it. Both a
// body that does not decode and a payload that fails its rules produce a 422.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, payload); err != nil {
		return errs.NewValidationError(bindMessage(err), nil)
	}
	if err := payload.Validate(); err != nil {
		return errs.NewValidationError("Validation failed", fieldErrors(err))
	}
	return nil
}

func bindMessage(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			return "Invalid request body: " + he.Internal.Error()
		}
		return "Invalid request body: " + fmt.Sprint(he.Message)
	}
	return "Invalid request body: " + err.Error()
}

func fieldErrors(err error) []errs.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []errs.FieldError{{Field: "body", Error: err.Error()}}
	}

	out := make([]errs.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		var msg string
		switch fe.Tag() {
		case "required":
			msg = "is required"
		case "max":
			if fe.Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", fe.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", fe.Param())
			}
		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", fe.Param())
		default:
			msg = fe.Tag()
		}
		out = append(out, errs.FieldError{Field: snake(fe.Field()), Error: msg})
	}
	return out
}

// snake turns DateSolved into date_solved to match the JSON field names.
func snake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
