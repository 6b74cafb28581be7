package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/groblegark/journal/internal/form"
	"github.com/groblegark/journal/internal/model"
)

// splitField breaks a "key=value" pair at the first '='.
func splitField(s string) (key, value string, ok bool) {
	i := strings.Index(s, "=")
	if i <= 0 {
		return "", "", false
	}
	return s[:i], s[i+1:], true
}

// parseFieldValues converts --field name=value pairs into enabled custom
// field slots, typed against the journal's field definitions. Range values
// use "low..high"; times accept "YYYY-MM-DD HH:MM", RFC 3339, or "now".
func parseFieldValues(pairs []string, fields []model.CustomField) ([]form.CustomFieldForm, error) {
	defs := make(map[string]model.CustomField, len(fields))
	for _, def := range fields {
		defs[def.Name] = def
	}

	out := make([]form.CustomFieldForm, 0, len(pairs))
	for _, p := range pairs {
		name, raw, ok := splitField(p)
		if !ok {
			return nil, fmt.Errorf("invalid field %q: expected name=value", p)
		}
		def, ok := defs[name]
		if !ok {
			return nil, fmt.Errorf("no custom field named %q on this journal", name)
		}
		value, err := parseFieldValue(def.Config.FieldConfig, raw)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		out = append(out, form.CustomFieldForm{
			CustomFieldsID: def.ID,
			Enabled:        true,
			Value:          value,
		})
	}
	return out, nil
}

func parseFieldValue(cfg model.FieldConfig, raw string) (model.FieldValue, error) {
	switch cfg.Kind() {
	case model.KindInteger:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", raw)
		}
		return model.IntegerValue{Value: n}, nil

	case model.KindIntegerRange:
		lowRaw, highRaw, err := splitRange(raw)
		if err != nil {
			return nil, err
		}
		low, err1 := strconv.ParseInt(lowRaw, 10, 64)
		high, err2 := strconv.ParseInt(highRaw, 10, 64)
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("invalid integer range %q", raw)
		}
		return model.IntegerRangeValue{Low: low, High: high}, nil

	case model.KindFloat:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", raw)
		}
		return model.FloatValue{Value: n}, nil

	case model.KindFloatRange:
		lowRaw, highRaw, err := splitRange(raw)
		if err != nil {
			return nil, err
		}
		low, err1 := strconv.ParseFloat(lowRaw, 64)
		high, err2 := strconv.ParseFloat(highRaw, 64)
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("invalid number range %q", raw)
		}
		return model.FloatRangeValue{Low: low, High: high}, nil

	case model.KindTime:
		t, err := parseTimeValue(raw)
		if err != nil {
			return nil, err
		}
		return model.TimeValue{Value: t}, nil

	case model.KindTimeRange:
		lowRaw, highRaw, err := splitRange(raw)
		if err != nil {
			return nil, err
		}
		low, err1 := parseTimeValue(lowRaw)
		high, err2 := parseTimeValue(highRaw)
		if err1 != nil {
			return nil, err1
		}
		if err2 != nil {
			return nil, err2
		}
		return model.TimeRangeValue{Low: low, High: high}, nil
	}
	return nil, fmt.Errorf("unsupported field type %q", cfg.Kind())
}

func splitRange(raw string) (low, high string, err error) {
	parts := strings.SplitN(raw, "..", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid range %q: expected low..high", raw)
	}
	return parts[0], parts[1], nil
}

func parseTimeValue(raw string) (time.Time, error) {
	if raw == "now" {
		return time.Now(), nil
	}
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q", raw)
}

// buildFieldConfig assembles a field definition config from flag values.
// minRaw and maxRaw are decimal strings so unset flags stay distinguishable
// from zero.
func buildFieldConfig(kind model.FieldKind, minRaw, maxRaw string, step float64, precision int, showDiff bool) (model.FieldConfig, error) {
	switch kind {
	case model.KindInteger, model.KindIntegerRange:
		var min, max *int64
		if minRaw != "" {
			n, err := strconv.ParseInt(minRaw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid --min %q", minRaw)
			}
			min = &n
		}
		if maxRaw != "" {
			n, err := strconv.ParseInt(maxRaw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid --max %q", maxRaw)
			}
			max = &n
		}
		if kind == model.KindInteger {
			return model.IntegerConfig{Minimum: min, Maximum: max}, nil
		}
		return model.IntegerRangeConfig{Minimum: min, Maximum: max}, nil

	case model.KindFloat, model.KindFloatRange:
		var min, max *float64
		if minRaw != "" {
			n, err := strconv.ParseFloat(minRaw, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid --min %q", minRaw)
			}
			min = &n
		}
		if maxRaw != "" {
			n, err := strconv.ParseFloat(maxRaw, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid --max %q", maxRaw)
			}
			max = &n
		}
		if kind == model.KindFloat {
			return model.FloatConfig{Minimum: min, Maximum: max, Step: step, Precision: precision}, nil
		}
		return model.FloatRangeConfig{Minimum: min, Maximum: max, Step: step, Precision: precision}, nil

	case model.KindTime:
		return model.TimeConfig{}, nil
	case model.KindTimeRange:
		return model.TimeRangeConfig{ShowDiff: showDiff}, nil
	}
	return nil, fmt.Errorf("unknown field type %q (one of %s)", kind, strings.Join(kindNames(), ", "))
}

func kindNames() []string {
	kinds := model.Kinds()
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, k.String())
	}
	return names
}
