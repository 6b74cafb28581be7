package model

import (
	"fmt"
	"strings"
)

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation failure on a named field.
type FieldError struct {
	Field   string
	Message string
}

// Error formats the validation error as a semicolon-separated list of field messages.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether the validation error contains any field errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// ValidateValue checks a custom field value against its paired config: the
// discriminants must match, range values must satisfy low <= high, and
// numeric values must fall inside the configured bounds.
// Returns a *ValidationError on failure, nil on success.
func ValidateValue(config FieldConfig, value FieldValue) error {
	var ve ValidationError

	if config == nil {
		ve.Errors = append(ve.Errors, FieldError{Field: "config", Message: "is required"})
	}
	if value == nil {
		ve.Errors = append(ve.Errors, FieldError{Field: "value", Message: "is required"})
	}
	if ve.HasErrors() {
		return &ve
	}

	if config.Kind() != value.Kind() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "value",
			Message: fmt.Sprintf("is %s but the field is %s", value.Kind(), config.Kind()),
		})
		return &ve
	}

	switch cfg := config.(type) {
	case IntegerConfig:
		v := value.(IntegerValue)
		checkIntBounds(&ve, "value", v.Value, cfg.Minimum, cfg.Maximum)
	case IntegerRangeConfig:
		v := value.(IntegerRangeValue)
		if v.Low > v.High {
			ve.Errors = append(ve.Errors, FieldError{
				Field:   "low",
				Message: fmt.Sprintf("must not exceed high (%d > %d)", v.Low, v.High),
			})
		}
		checkIntBounds(&ve, "low", v.Low, cfg.Minimum, cfg.Maximum)
		checkIntBounds(&ve, "high", v.High, cfg.Minimum, cfg.Maximum)
	case FloatConfig:
		v := value.(FloatValue)
		checkFloatBounds(&ve, "value", v.Value, cfg.Minimum, cfg.Maximum)
	case FloatRangeConfig:
		v := value.(FloatRangeValue)
		if v.Low > v.High {
			ve.Errors = append(ve.Errors, FieldError{
				Field:   "low",
				Message: fmt.Sprintf("must not exceed high (%g > %g)", v.Low, v.High),
			})
		}
		checkFloatBounds(&ve, "low", v.Low, cfg.Minimum, cfg.Maximum)
		checkFloatBounds(&ve, "high", v.High, cfg.Minimum, cfg.Maximum)
	case TimeConfig:
		v := value.(TimeValue)
		if v.Value.IsZero() {
			ve.Errors = append(ve.Errors, FieldError{Field: "value", Message: "is required"})
		}
	case TimeRangeConfig:
		v := value.(TimeRangeValue)
		if v.Low.IsZero() || v.High.IsZero() {
			ve.Errors = append(ve.Errors, FieldError{Field: "value", Message: "both instants are required"})
		} else if v.Low.After(v.High) {
			ve.Errors = append(ve.Errors, FieldError{Field: "low", Message: "must not be after high"})
		}
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}

func checkIntBounds(ve *ValidationError, field string, v int64, min, max *int64) {
	if min != nil && v < *min {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   field,
			Message: fmt.Sprintf("must be at least %d, got %d", *min, v),
		})
	}
	if max != nil && v > *max {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   field,
			Message: fmt.Sprintf("must be at most %d, got %d", *max, v),
		})
	}
}

func checkFloatBounds(ve *ValidationError, field string, v float64, min, max *float64) {
	if min != nil && v < *min {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   field,
			Message: fmt.Sprintf("must be at least %g, got %g", *min, v),
		})
	}
	if max != nil && v > *max {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   field,
			Message: fmt.Sprintf("must be at most %g, got %g", *max, v),
		})
	}
}
