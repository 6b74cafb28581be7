package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// The wire format for configs and values is flat: the variant payload plus
// a "type" discriminant, e.g. {"type":"Integer","value":5}. Decoding rejects
// unknown discriminants instead of skipping them.

// Config wraps a FieldConfig for use in wire structs, giving it a JSON
// codec keyed on the "type" discriminant.
type Config struct {
	FieldConfig
}

// NewConfig wraps a concrete config variant.
func NewConfig(c FieldConfig) Config {
	return Config{FieldConfig: c}
}

// MarshalJSON implements json.Marshaler.
func (c Config) MarshalJSON() ([]byte, error) {
	if c.FieldConfig == nil {
		return nil, fmt.Errorf("marshal custom field config: nil config")
	}
	return marshalTagged(c.FieldConfig.Kind(), c.FieldConfig)
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Config) UnmarshalJSON(data []byte) error {
	kind, err := peekKind(data)
	if err != nil {
		return err
	}
	var cfg FieldConfig
	switch kind {
	case KindInteger:
		var v IntegerConfig
		err = json.Unmarshal(data, &v)
		cfg = v
	case KindIntegerRange:
		var v IntegerRangeConfig
		err = json.Unmarshal(data, &v)
		cfg = v
	case KindFloat:
		var v FloatConfig
		err = json.Unmarshal(data, &v)
		cfg = v
	case KindFloatRange:
		var v FloatRangeConfig
		err = json.Unmarshal(data, &v)
		cfg = v
	case KindTime:
		cfg = TimeConfig{}
	case KindTimeRange:
		var v TimeRangeConfig
		err = json.Unmarshal(data, &v)
		cfg = v
	default:
		return fmt.Errorf("unknown custom field config type %q", kind)
	}
	if err != nil {
		return fmt.Errorf("decode %s config: %w", kind, err)
	}
	c.FieldConfig = cfg
	return nil
}

// Value wraps a FieldValue for use in wire structs, giving it a JSON codec
// keyed on the "type" discriminant.
type Value struct {
	FieldValue
}

// NewValue wraps a concrete value variant.
func NewValue(v FieldValue) Value {
	return Value{FieldValue: v}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.FieldValue == nil {
		return nil, fmt.Errorf("marshal custom field value: nil value")
	}
	return marshalTagged(v.FieldValue.Kind(), v.FieldValue)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	kind, err := peekKind(data)
	if err != nil {
		return err
	}
	var val FieldValue
	switch kind {
	case KindInteger:
		var x IntegerValue
		err = json.Unmarshal(data, &x)
		val = x
	case KindIntegerRange:
		var x IntegerRangeValue
		err = json.Unmarshal(data, &x)
		val = x
	case KindFloat:
		var x FloatValue
		err = json.Unmarshal(data, &x)
		val = x
	case KindFloatRange:
		var x FloatRangeValue
		err = json.Unmarshal(data, &x)
		val = x
	case KindTime:
		var x timeValueWire
		err = json.Unmarshal(data, &x)
		val = TimeValue{Value: x.Value}
	case KindTimeRange:
		var x timeRangeValueWire
		err = json.Unmarshal(data, &x)
		val = TimeRangeValue{Low: x.Low, High: x.High}
	default:
		return fmt.Errorf("unknown custom field value type %q", kind)
	}
	if err != nil {
		return fmt.Errorf("decode %s value: %w", kind, err)
	}
	v.FieldValue = val
	return nil
}

type timeValueWire struct {
	Value time.Time `json:"value"`
}

type timeRangeValueWire struct {
	Low  time.Time `json:"low"`
	High time.Time `json:"high"`
}

// marshalTagged flattens payload's JSON object and injects the "type" key.
func marshalTagged(kind FieldKind, payload any) ([]byte, error) {
	inner, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(inner, &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = map[string]json.RawMessage{}
	}
	m["type"] = json.RawMessage(fmt.Sprintf("%q", kind))
	return json.Marshal(m)
}

// peekKind extracts the "type" discriminant without decoding the payload.
func peekKind(data []byte) (FieldKind, error) {
	var probe struct {
		Type FieldKind `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return "", fmt.Errorf("decode custom field discriminant: %w", err)
	}
	if probe.Type == "" {
		return "", fmt.Errorf("custom field is missing a type discriminant")
	}
	return probe.Type, nil
}
