// Package validator holds the per-field checks applied to a configuration draft.
package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"cryosure/internal/models"
)

const (
	MinTempC    = -100.0
	MaxTempC    = 100.0
	MinHumidity = 0.0
	MaxHumidity = 100.0

	msgTemp     = "Temperature must be between -100°C and 100°C"
	msgHumidity = "Humidity must be between 0% and 100%"
	msgEmail    = "Please enter a valid email address"
	msgPhone    = "Please enter a valid phone number"
)

var (
	emailRe = regexp.MustCompile(`\S+@\S+\.\S+`)
	phoneRe = regexp.MustCompile(`^\+?[\d\s\-()]{10,}$`)
)

// ErrInvalidField is matched by every FieldError.
var ErrInvalidField = errors.New("invalid field")

// FieldError reports a single rejected field value.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Message }

func (e *FieldError) Is(target error) bool { return target == ErrInvalidField }

// ValidationError collects the field errors of a whole draft.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range models.DraftFields {
		if msg, ok := e.Fields[f]; ok {
			parts = append(parts, fmt.Sprintf("%s: %s", f, msg))
		}
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidField }

// ParseNumber reads a user-typed number. Surrounding whitespace is ignored.
func ParseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func inRange(raw string, lo, hi float64) bool {
	if raw == "" {
		return true
	}
	v, ok := ParseNumber(raw)
	return ok && v >= lo && v <= hi
}

// Validate checks one field. An empty value is always valid.
func Validate(field, raw string) error {
	ok := true
	var msg string
	switch field {
	case models.FieldMinTemp, models.FieldMaxTemp:
		ok, msg = inRange(raw, MinTempC, MaxTempC), msgTemp
	case models.FieldMaxHumidity:
		ok, msg = inRange(raw, MinHumidity, MaxHumidity), msgHumidity
	case models.FieldAlertEmail:
		ok, msg = raw == "" || emailRe.MatchString(raw), msgEmail
	case models.FieldAlertPhone:
		ok, msg = raw == "" || phoneRe.MatchString(raw), msgPhone
	}
	if ok {
		return nil
	}
	return &FieldError{Field: field, Message: msg}
}

// ValidateDraft runs Validate on every field and returns the failures keyed by field name.
func ValidateDraft(d models.ConfigDraft) map[string]string {
	out := make(map[string]string)
	for _, f := range models.DraftFields {
		v, _ := d.Get(f)
		if err := Validate(f, v); err != nil {
			out[f] = err.Error()
		}
	}
	return out
}

// Present reports whether raw is a non-empty value that passes Validate for field.
func Present(field, raw string) bool {
	return strings.TrimSpace(raw) != "" && Validate(field, raw) == nil
}
