// Package validation checks decoded request bodies against the
// validate:"..." rules declared on the input types and turns every
// violation into a FieldError keyed by the JSON field name.
//
// Two modes are supported:
//
//	Struct   full mode, used by create and PUT. Required fields must be present.
//	Partial  partial mode, used by PATCH. Only supplied fields are checked.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/aanand-mishra/campus-api/internal/types"
	"github.com/go-playground/validator/v10"
)

// studentIDPattern is "S" followed by exactly seven digits.
var studentIDPattern = regexp.MustCompile(`^S\d{7}$`)

// validate is shared by all requests. *validator.Validate is safe for
// concurrent use and caches struct metadata after the first call.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names ("student_id") instead of Go names ("StudentID").
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("student_id", func(fl validator.FieldLevel) bool {
		return studentIDPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	return v
}

// FieldError describes one field that violated its constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the full list of violations for one payload.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fmt.Sprintf("field %s %s", fe.Field, fe.Message))
	}
	return strings.Join(msgs, ", ")
}

// Struct validates v in full mode. It returns nil or an Errors value.
func Struct(v any) error {
	if err := validate.Struct(v); err != nil {
		return convert(err)
	}
	return nil
}

// Partial validates v in partial mode. Fields that were not supplied are
// skipped by their omitnil rule; supplied nulls are rejected unless the
// key is listed in nullable. Keys that are not fields of v are ignored.
func Partial(v any, fields types.Fields, nullable ...string) error {
	var errs Errors

	known := JSONNames(v)
	nulls := fields.Nulls()
	slices.Sort(nulls)
	for _, key := range nulls {
		if slices.Contains(known, key) && !slices.Contains(nullable, key) {
			errs = append(errs, FieldError{Field: key, Message: "must not be null"})
		}
	}

	if err := validate.Struct(v); err != nil {
		verrs, ok := convert(err).(Errors)
		if !ok {
			return err
		}
		errs = append(errs, verrs...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func convert(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	errs := make(Errors, 0, len(verrs))
	for _, e := range verrs {
		errs = append(errs, FieldError{Field: e.Field(), Message: message(e)})
	}
	return errs
}

func message(e validator.FieldError) string {
	switch e.ActualTag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "student_id":
		return "must be S followed by 7 digits"
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", e.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", e.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", e.Param())
	default:
		return "is invalid"
	}
}

// JSONNames lists the JSON keys of the struct v (or *v points to).
func JSONNames(v any) []string {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name := strings.SplitN(t.Field(i).Tag.Get("json"), ",", 2)[0]
		if name != "" && name != "-" {
			names = append(names, name)
		}
	}
	return names
}
