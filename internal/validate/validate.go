// Package validate checks request payloads against their struct tags and
// converts failures into repository.ValidationError so every layer reports
// field errors the same way.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/iliyamo/theatre-reservation/internal/repository"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	// Report JSON names so messages match the payload the client sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Struct validates every field of in. It is used for create and replace
// where all required fields must be present.
func Struct(in any) error {
	return convert(validate.Struct(in))
}

// Partial validates only the pointer fields of in that are set, which is
// the contract of a PATCH request.
func Partial(in any) error {
	return convert(validate.StructPartial(in, presentFields(in)...))
}

// presentFields returns the Go names of the non-nil pointer fields of in.
// The result is never nil so StructPartial validates nothing when the
// payload is empty.
func presentFields(in any) []string {
	fields := make([]string, 0)
	v := reflect.Indirect(reflect.ValueOf(in))
	if v.Kind() != reflect.Struct {
		return fields
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := v.Field(i)
		if f.Kind() == reflect.Ptr && !f.IsNil() {
			fields = append(fields, t.Field(i).Name)
		}
	}
	return fields
}

func convert(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &repository.ValidationError{}
	for _, fe := range verrs {
		out.Add(fe.Field(), message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "notblank":
		return "This field may not be blank."
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	case "max":
		if fe.Kind() != reflect.String {
			return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
		}
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "gt":
		return fmt.Sprintf("Ensure this value is greater than %s.", fe.Param())
	case "email":
		return "Enter a valid email address."
	}
	return fmt.Sprintf("Failed on the '%s' rule.", fe.Tag())
}
