package sitesettings

import (
	"errors"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// FieldError is one failed form field.
type FieldError struct {
	Field string
	Tag   string
	Param string
}

// Message is the inline text shown next to the form.
func (e FieldError) Message() string {
	switch e.Tag {
	case "required":
		return e.Field + " is required"
	case "max":
		return e.Field + " must be at most " + e.Param + " characters"
	case "email":
		return e.Field + " must be an email address"
	case "url":
		return e.Field + " must be a URL"
	default:
		return e.Field + " is invalid"
	}
}

// formValidator reports failures by form field name.
type formValidator struct {
	v *validator.Validate
}

func newFormValidator() formValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})

	return formValidator{v: v}
}

// Validate checks data and returns one FieldError per failed field.
func (fv formValidator) Validate(data any) []FieldError {
	err := fv.v.Struct(data)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return []FieldError{{Field: "form", Tag: "invalid"}}
	}

	out := make([]FieldError, 0, len(errs))
	for _, fe := range errs {
		out = append(out, FieldError{Field: fe.Field(), Tag: fe.Tag(), Param: fe.Param()})
	}

	return out
}
