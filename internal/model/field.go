package model

import (
	"fmt"
	"time"
)

// FieldKind identifies the variant of a custom field. The set is closed:
// the server rejects anything outside it, and so do we.
type FieldKind string

const (
	KindInteger      FieldKind = "Integer"
	KindIntegerRange FieldKind = "IntegerRange"
	KindFloat        FieldKind = "Float"
	KindFloatRange   FieldKind = "FloatRange"
	KindTime         FieldKind = "Time"
	KindTimeRange    FieldKind = "TimeRange"
)

// String returns the string representation of the kind.
func (k FieldKind) String() string {
	return string(k)
}

// IsValid checks whether the kind is a known value.
func (k FieldKind) IsValid() bool {
	switch k {
	case KindInteger, KindIntegerRange, KindFloat, KindFloatRange, KindTime, KindTimeRange:
		return true
	}
	return false
}

// Kinds lists every valid field kind, in display order.
func Kinds() []FieldKind {
	return []FieldKind{KindInteger, KindIntegerRange, KindFloat, KindFloatRange, KindTime, KindTimeRange}
}

// Float fields default to two decimal places stepped by 0.01.
const (
	DefaultFloatStep      = 0.01
	DefaultFloatPrecision = 2
)

// rangeWindow is the window derived around a single bound when a range
// config specifies only a minimum or only a maximum.
const rangeWindow = 10

// FieldConfig is the configuration side of a custom field variant.
// Exactly one concrete type exists per FieldKind.
type FieldConfig interface {
	Kind() FieldKind
	isFieldConfig()
}

// IntegerConfig configures a single-integer field. Nil bounds mean unbounded.
type IntegerConfig struct {
	Minimum *int64 `json:"minimum,omitempty"`
	Maximum *int64 `json:"maximum,omitempty"`
}

// IntegerRangeConfig configures a low/high integer pair.
type IntegerRangeConfig struct {
	Minimum *int64 `json:"minimum,omitempty"`
	Maximum *int64 `json:"maximum,omitempty"`
}

// FloatConfig configures a single-float field. Step and Precision are UI
// hints carried on the wire, not validation constraints.
type FloatConfig struct {
	Minimum   *float64 `json:"minimum,omitempty"`
	Maximum   *float64 `json:"maximum,omitempty"`
	Step      float64  `json:"step"`
	Precision int      `json:"precision"`
}

// FloatRangeConfig configures a low/high float pair.
type FloatRangeConfig struct {
	Minimum   *float64 `json:"minimum,omitempty"`
	Maximum   *float64 `json:"maximum,omitempty"`
	Step      float64  `json:"step"`
	Precision int      `json:"precision"`
}

// TimeConfig configures a single-timestamp field. It carries no options.
type TimeConfig struct{}

// TimeRangeConfig configures a low/high timestamp pair. ShowDiff asks
// clients to display the elapsed duration instead of the end instant.
type TimeRangeConfig struct {
	ShowDiff bool `json:"show_diff"`
}

func (IntegerConfig) Kind() FieldKind      { return KindInteger }
func (IntegerRangeConfig) Kind() FieldKind { return KindIntegerRange }
func (FloatConfig) Kind() FieldKind        { return KindFloat }
func (FloatRangeConfig) Kind() FieldKind   { return KindFloatRange }
func (TimeConfig) Kind() FieldKind         { return KindTime }
func (TimeRangeConfig) Kind() FieldKind    { return KindTimeRange }

func (IntegerConfig) isFieldConfig()      {}
func (IntegerRangeConfig) isFieldConfig() {}
func (FloatConfig) isFieldConfig()        {}
func (FloatRangeConfig) isFieldConfig()   {}
func (TimeConfig) isFieldConfig()         {}
func (TimeRangeConfig) isFieldConfig()    {}

// MakeType returns the default configuration for a kind.
// Unknown kinds are an error.
func MakeType(kind FieldKind) (FieldConfig, error) {
	switch kind {
	case KindInteger:
		return IntegerConfig{}, nil
	case KindIntegerRange:
		return IntegerRangeConfig{}, nil
	case KindFloat:
		return FloatConfig{Step: DefaultFloatStep, Precision: DefaultFloatPrecision}, nil
	case KindFloatRange:
		return FloatRangeConfig{Step: DefaultFloatStep, Precision: DefaultFloatPrecision}, nil
	case KindTime:
		return TimeConfig{}, nil
	case KindTimeRange:
		return TimeRangeConfig{}, nil
	}
	return nil, fmt.Errorf("unknown custom field kind %q", kind)
}

// FieldValue is the value side of a custom field variant. A value's Kind
// must always match the Kind of the config it is paired with.
type FieldValue interface {
	Kind() FieldKind
	isFieldValue()
}

// IntegerValue holds a single integer.
type IntegerValue struct {
	Value int64 `json:"value"`
}

// IntegerRangeValue holds an ordered integer pair.
type IntegerRangeValue struct {
	Low  int64 `json:"low"`
	High int64 `json:"high"`
}

// FloatValue holds a single float.
type FloatValue struct {
	Value float64 `json:"value"`
}

// FloatRangeValue holds an ordered float pair.
type FloatRangeValue struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// TimeValue holds a single timestamp.
type TimeValue struct {
	Value time.Time `json:"value"`
}

// TimeRangeValue holds an ordered timestamp pair.
type TimeRangeValue struct {
	Low  time.Time `json:"low"`
	High time.Time `json:"high"`
}

func (IntegerValue) Kind() FieldKind      { return KindInteger }
func (IntegerRangeValue) Kind() FieldKind { return KindIntegerRange }
func (FloatValue) Kind() FieldKind        { return KindFloat }
func (FloatRangeValue) Kind() FieldKind   { return KindFloatRange }
func (TimeValue) Kind() FieldKind         { return KindTime }
func (TimeRangeValue) Kind() FieldKind    { return KindTimeRange }

func (IntegerValue) isFieldValue()      {}
func (IntegerRangeValue) isFieldValue() {}
func (FloatValue) isFieldValue()        {}
func (FloatRangeValue) isFieldValue()   {}
func (TimeValue) isFieldValue()         {}
func (TimeRangeValue) isFieldValue()    {}

// MakeInteger returns the default value for an integer config: the minimum
// when set, otherwise zero clamped into the configured bounds.
func MakeInteger(c IntegerConfig) IntegerValue {
	switch {
	case c.Minimum != nil:
		return IntegerValue{Value: *c.Minimum}
	case c.Maximum != nil && *c.Maximum < 0:
		return IntegerValue{Value: *c.Maximum}
	}
	return IntegerValue{}
}

// MakeIntegerRange returns the default value for an integer range config.
// Both bounds set uses them as low/high; a single bound derives a 10-wide
// window from it; no bounds defaults to [0, 10].
func MakeIntegerRange(c IntegerRangeConfig) IntegerRangeValue {
	switch {
	case c.Minimum != nil && c.Maximum != nil:
		return IntegerRangeValue{Low: *c.Minimum, High: *c.Maximum}
	case c.Minimum != nil:
		return IntegerRangeValue{Low: *c.Minimum, High: *c.Minimum + rangeWindow}
	case c.Maximum != nil:
		return IntegerRangeValue{Low: *c.Maximum - rangeWindow, High: *c.Maximum}
	}
	return IntegerRangeValue{Low: 0, High: rangeWindow}
}

// MakeFloat mirrors MakeInteger for float configs.
func MakeFloat(c FloatConfig) FloatValue {
	switch {
	case c.Minimum != nil:
		return FloatValue{Value: *c.Minimum}
	case c.Maximum != nil && *c.Maximum < 0:
		return FloatValue{Value: *c.Maximum}
	}
	return FloatValue{}
}

// MakeFloatRange mirrors MakeIntegerRange for float configs.
func MakeFloatRange(c FloatRangeConfig) FloatRangeValue {
	switch {
	case c.Minimum != nil && c.Maximum != nil:
		return FloatRangeValue{Low: *c.Minimum, High: *c.Maximum}
	case c.Minimum != nil:
		return FloatRangeValue{Low: *c.Minimum, High: *c.Minimum + rangeWindow}
	case c.Maximum != nil:
		return FloatRangeValue{Low: *c.Maximum - rangeWindow, High: *c.Maximum}
	}
	return FloatRangeValue{Low: 0, High: rangeWindow}
}

// MakeTime returns "now" as the default timestamp value.
func MakeTime(TimeConfig) TimeValue {
	return TimeValue{Value: time.Now()}
}

// MakeTimeRange returns the hour surrounding "now".
func MakeTimeRange(TimeRangeConfig) TimeRangeValue {
	now := time.Now()
	return TimeRangeValue{Low: now.Add(-time.Hour), High: now.Add(time.Hour)}
}

// DefaultValue constructs the default value consistent with a config.
func DefaultValue(c FieldConfig) (FieldValue, error) {
	switch cfg := c.(type) {
	case IntegerConfig:
		return MakeInteger(cfg), nil
	case IntegerRangeConfig:
		return MakeIntegerRange(cfg), nil
	case FloatConfig:
		return MakeFloat(cfg), nil
	case FloatRangeConfig:
		return MakeFloatRange(cfg), nil
	case TimeConfig:
		return MakeTime(cfg), nil
	case TimeRangeConfig:
		return MakeTimeRange(cfg), nil
	case nil:
		return nil, fmt.Errorf("nil custom field config")
	}
	return nil, fmt.Errorf("unknown custom field config %T", c)
}
