package domain

import (
	"errors"
	"fmt"
	"html"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

// DateLayout is the storage and wire format of every calendar date.
const DateLayout = "2006-01-02"

var (
	ErrNotFound     = errors.New("record not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrRateLimited  = errors.New("too many requests")
)

// ValidationError is a single field failure, keyed by the JSON field name.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = e.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Get returns the first failure reported for field.
func (v ValidationErrors) Get(field string) (ValidationError, bool) {
	for _, e := range v {
		if e.Field == field {
			return e, true
		}
	}
	return ValidationError{}, false
}

// Map flattens failures to field -> message, first message wins.
func (v ValidationErrors) Map() map[string]string {
	out := make(map[string]string, len(v))
	for _, e := range v {
		if _, ok := out[e.Field]; !ok {
			out[e.Field] = e.Message
		}
	}
	return out
}

// AsValidation unwraps err into ValidationErrors when it carries any.
func AsValidation(err error) (ValidationErrors, bool) {
	var errs ValidationErrors
	if errors.As(err, &errs) {
		return errs, true
	}
	var single ValidationError
	if errors.As(err, &single) {
		return ValidationErrors{single}, true
	}
	return nil, false
}

func NewValidationError(field, message string) ValidationErrors {
	return ValidationErrors{{Field: field, Message: message}}
}

var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
)

func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInst = validator.New(validator.WithRequiredStructEnabled())
		validatorInst.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		validatorInst.RegisterStructValidation(certificationStructValidation, Certification{})
	})
	return validatorInst
}

// ValidateStruct runs the tag rules on model and maps failures into
// ValidationErrors.
func ValidateStruct(model any) error {
	err := getValidator().Struct(model)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	mapped := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		mapped = append(mapped, ValidationError{
			Field:   fe.Field(),
			Message: formatValidationMessage(fe),
		})
	}
	return mapped
}

func formatValidationMessage(fe validator.FieldError) string {
	label := humanize(fe.Field())
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be less than %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", label, fe.Param())
	case "email":
		return "Please enter a valid email address"
	case "url":
		return "Invalid URL"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must be a date (YYYY-MM-DD)", label)
	case "expiry_after_issue":
		return "Expiry date must be after issue date"
	default:
		return label + " is invalid"
	}
}

func humanize(field string) string {
	s := strings.ReplaceAll(field, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

var strictPolicy = bluemonday.StrictPolicy()

// CleanText strips markup and surrounding whitespace from user input.
// Entities are decoded again so the stored text is plain; templates escape
// on output.
func CleanText(s string) string {
	if s == "" {
		return s
	}
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

// cleanList cleans every item and splits comma-separated entries, so a
// single "Go, HTMX" form field becomes two items.
func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if cleaned := CleanText(part); cleaned != "" {
				out = append(out, cleaned)
			}
		}
	}
	return out
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	return t, err == nil
}

// dayOf truncates t to its calendar date, in UTC so it compares against
// parsed DateLayout values.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
