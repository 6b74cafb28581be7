package model

import (
	"testing"
	"time"
)

func fieldErrors(t *testing.T, err error) []FieldError {
	t.Helper()
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	return ve.Errors
}

func hasFieldError(errs []FieldError, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}

func TestValidateValue_KindMismatch(t *testing.T) {
	err := ValidateValue(IntegerConfig{}, FloatValue{Value: 1.5})
	if err == nil {
		t.Fatal("expected error for mismatched kinds")
	}
	if !hasFieldError(fieldErrors(t, err), "value") {
		t.Error("expected error on 'value'")
	}
}

func TestValidateValue_NilArgs(t *testing.T) {
	if err := ValidateValue(nil, IntegerValue{}); err == nil {
		t.Fatal("expected error for nil config")
	}
	if err := ValidateValue(IntegerConfig{}, nil); err == nil {
		t.Fatal("expected error for nil value")
	}
}

func TestValidateValue_IntegerBounds(t *testing.T) {
	cfg := IntegerConfig{Minimum: i64(0), Maximum: i64(10)}
	if err := ValidateValue(cfg, IntegerValue{Value: 5}); err != nil {
		t.Fatalf("in-bounds value should pass, got %v", err)
	}
	if err := ValidateValue(cfg, IntegerValue{Value: -1}); err == nil {
		t.Fatal("expected error below minimum")
	}
	if err := ValidateValue(cfg, IntegerValue{Value: 11}); err == nil {
		t.Fatal("expected error above maximum")
	}
}

func TestValidateValue_IntegerRangeOrdering(t *testing.T) {
	cfg := IntegerRangeConfig{}
	if err := ValidateValue(cfg, IntegerRangeValue{Low: 1, High: 1}); err != nil {
		t.Fatalf("low == high should pass, got %v", err)
	}
	err := ValidateValue(cfg, IntegerRangeValue{Low: 5, High: 2})
	if err == nil {
		t.Fatal("expected error for low > high")
	}
	if !hasFieldError(fieldErrors(t, err), "low") {
		t.Error("expected error on 'low'")
	}
}

func TestValidateValue_FloatRange(t *testing.T) {
	cfg := FloatRangeConfig{Minimum: f64(0), Maximum: f64(1)}
	if err := ValidateValue(cfg, FloatRangeValue{Low: 0.25, High: 0.75}); err != nil {
		t.Fatalf("in-bounds range should pass, got %v", err)
	}
	err := ValidateValue(cfg, FloatRangeValue{Low: -0.5, High: 2})
	if err == nil {
		t.Fatal("expected errors outside bounds")
	}
	errs := fieldErrors(t, err)
	if !hasFieldError(errs, "low") || !hasFieldError(errs, "high") {
		t.Errorf("expected errors on both ends, got %v", errs)
	}
}

func TestValidateValue_TimeRange(t *testing.T) {
	now := time.Now()
	cfg := TimeRangeConfig{}
	if err := ValidateValue(cfg, TimeRangeValue{Low: now, High: now.Add(time.Minute)}); err != nil {
		t.Fatalf("ordered range should pass, got %v", err)
	}
	if err := ValidateValue(cfg, TimeRangeValue{Low: now.Add(time.Minute), High: now}); err == nil {
		t.Fatal("expected error for low after high")
	}
	if err := ValidateValue(cfg, TimeRangeValue{High: now}); err == nil {
		t.Fatal("expected error for zero instant")
	}
}

func TestValidateValue_Time(t *testing.T) {
	if err := ValidateValue(TimeConfig{}, TimeValue{Value: time.Now()}); err != nil {
		t.Fatalf("expected pass, got %v", err)
	}
	if err := ValidateValue(TimeConfig{}, TimeValue{}); err == nil {
		t.Fatal("expected error for zero time")
	}
}

func TestValidationError_Message(t *testing.T) {
	ve := &ValidationError{Errors: []FieldError{
		{Field: "low", Message: "must not exceed high"},
		{Field: "high", Message: "must be at most 10"},
	}}
	got := ve.Error()
	want := "validation failed: low: must not exceed high; high: must be at most 10"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
