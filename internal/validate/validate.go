// Package validate checks form structs before they are sent to the backend,
// producing the same field-to-messages error shape the backend's 422
// responses use so callers handle both identically.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sekolahdigital/tamuadmin/internal/domain"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	// Report fields under their wire names, matching backend error maps.
	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return val
}

// Struct validates a form. On failure it returns a validation domain.AppError
// whose message is the first failing field's message.
func Struct(form any) error {
	err := v.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.NewAppError(domain.CodeInternal, "validate form", err)
	}

	fields := domain.FieldErrors{}
	for _, fe := range verrs {
		fields[fe.Field()] = append(fields[fe.Field()], messageFor(fe))
	}
	return domain.NewAppError(domain.CodeValidation, fields.First(), &domain.ValidationError{Fields: fields})
}

// messageFor renders one rule failure in the backend's message style.
func messageFor(fe validator.FieldError) string {
	field := strings.ReplaceAll(fe.Field(), "_", " ")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", field)
	case "oneof":
		return fmt.Sprintf("The %s field must be one of: %s.", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		return fmt.Sprintf("The %s field must be at least %s characters.", field, fe.Param())
	case "max":
		return fmt.Sprintf("The %s field may not be greater than %s characters.", field, fe.Param())
	case "numeric":
		return fmt.Sprintf("The %s field must be a number.", field)
	case "datetime":
		return fmt.Sprintf("The %s field must be a valid date.", field)
	case "gt":
		return fmt.Sprintf("The %s field must be greater than %s.", field, fe.Param())
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}
