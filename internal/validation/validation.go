// Package validation holds the form-level format checks shared by the HTTP
// payload validator and the CLI.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9+._%\-]{1,256}@([a-zA-Z0-9][a-zA-Z0-9\-]{0,63}\.)+[a-zA-Z0-9][a-zA-Z0-9\-]{0,24}$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
	timePattern  = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

// Custom validator tags registered by Register.
const (
	TagEmail   = "studio_email"
	TagPhone   = "studio_phone"
	TagWeekday = "weekday"
	TagHHMM    = "hhmm"
)

var weekdays = map[string]struct{}{
	"Monday": {}, "Tuesday": {}, "Wednesday": {}, "Thursday": {}, "Friday": {}, "Saturday": {}, "Sunday": {},
}

// IsNotEmpty reports whether s has any non-space content.
func IsNotEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidEmail accepts local@domain.tld addresses.
func IsValidEmail(s string) bool {
	return IsNotEmpty(s) && emailPattern.MatchString(s)
}

// IsValidPhone accepts exactly ten digits with no separators.
func IsValidPhone(s string) bool {
	return IsNotEmpty(s) && phonePattern.MatchString(s)
}

// IsValidTime accepts 24-hour "HH:MM".
func IsValidTime(s string) bool {
	return timePattern.MatchString(s)
}

// IsWeekday accepts the canonical English weekday names stored on courses.
func IsWeekday(s string) bool {
	_, ok := weekdays[s]
	return ok
}

// Register installs the studio tags on v.
func Register(v *validator.Validate) error {
	tags := map[string]func(string) bool{
		TagEmail:   IsValidEmail,
		TagPhone:   IsValidPhone,
		TagWeekday: IsWeekday,
		TagHHMM:    IsValidTime,
	}
	for tag, check := range tags {
		check := check
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return check(fl.Field().String())
		}); err != nil {
			return err
		}
	}
	return nil
}

// New returns a validator with the studio tags registered.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonName)
	if err := Register(v); err != nil {
		panic(err)
	}
	return v
}

func jsonName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		name = strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
	}
	return name
}

// Describe appends the failing fields of a validator error to message, e.g.
// "invalid course payload: day_of_week (weekday), time (hhmm)". Errors that
// carry no field detail leave message unchanged.
func Describe(message string, err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return message
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fe.Field()+" ("+fe.Tag()+")")
	}
	return message + ": " + strings.Join(parts, ", ")
}
