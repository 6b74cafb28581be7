package main

import (
	"strings"
	"testing"
	"time"

	"github.com/groblegark/journal/internal/model"
)

func i64(v int64) *int64 { return &v }

func sampleFields() []model.CustomField {
	return []model.CustomField{
		{ID: 1, UID: "cf-1", Name: "steps", Config: model.NewConfig(model.IntegerConfig{Minimum: i64(0)})},
		{ID: 2, UID: "cf-2", Name: "effort", Config: model.NewConfig(model.IntegerRangeConfig{})},
		{ID: 3, UID: "cf-3", Name: "weight", Config: model.NewConfig(model.FloatConfig{Step: 0.1, Precision: 1})},
		{ID: 4, UID: "cf-4", Name: "pace", Config: model.NewConfig(model.FloatRangeConfig{})},
		{ID: 5, UID: "cf-5", Name: "woke", Config: model.NewConfig(model.TimeConfig{})},
		{ID: 6, UID: "cf-6", Name: "slept", Config: model.NewConfig(model.TimeRangeConfig{ShowDiff: true})},
	}
}

func TestParseFieldValues(t *testing.T) {
	fields := sampleFields()

	slots, err := parseFieldValues([]string{
		"steps=5",
		"effort=2..8",
		"weight=71.3",
		"pace=4.5..5.5",
		"woke=2026-02-01 07:30",
		"slept=2026-01-31 23:00..2026-02-01 07:00",
	}, fields)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 6 {
		t.Fatalf("got %d slots, want 6", len(slots))
	}
	for _, slot := range slots {
		if !slot.Enabled {
			t.Errorf("slot %d not enabled", slot.CustomFieldsID)
		}
	}

	if v := slots[0].Value.(model.IntegerValue); v.Value != 5 {
		t.Errorf("steps = %d", v.Value)
	}
	if v := slots[1].Value.(model.IntegerRangeValue); v.Low != 2 || v.High != 8 {
		t.Errorf("effort = %+v", v)
	}
	if v := slots[2].Value.(model.FloatValue); v.Value != 71.3 {
		t.Errorf("weight = %v", v.Value)
	}
	if v := slots[3].Value.(model.FloatRangeValue); v.Low != 4.5 || v.High != 5.5 {
		t.Errorf("pace = %+v", v)
	}
	if v := slots[4].Value.(model.TimeValue); v.Value.Hour() != 7 || v.Value.Minute() != 30 {
		t.Errorf("woke = %v", v.Value)
	}
	if v := slots[5].Value.(model.TimeRangeValue); v.High.Sub(v.Low) != 8*time.Hour {
		t.Errorf("slept span = %v", v.High.Sub(v.Low))
	}
}

func TestParseFieldValuesErrors(t *testing.T) {
	fields := sampleFields()

	for _, tc := range []struct {
		name string
		pair string
		want string
	}{
		{"NoEquals", "steps", "expected name=value"},
		{"UnknownField", "mood=5", "no custom field named"},
		{"BadInteger", "steps=five", "invalid integer"},
		{"BadRange", "effort=5", "expected low..high"},
		{"HalfOpenRange", "effort=5..", "expected low..high"},
		{"BadFloat", "weight=heavy", "invalid number"},
		{"BadTime", "woke=morning", "invalid time"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseFieldValues([]string{tc.pair}, fields)
			if err == nil {
				t.Fatalf("parseFieldValues(%q) succeeded, want error", tc.pair)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error = %v, want substring %q", err, tc.want)
			}
		})
	}
}

func TestParseTimeValueNow(t *testing.T) {
	before := time.Now()
	got, err := parseTimeValue("now")
	if err != nil {
		t.Fatal(err)
	}
	if got.Before(before.Add(-time.Second)) || got.After(time.Now().Add(time.Second)) {
		t.Errorf("now = %v, out of range", got)
	}
}

func TestBuildFieldConfig(t *testing.T) {
	cfg, err := buildFieldConfig(model.KindInteger, "0", "10", 0, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	ic := cfg.(model.IntegerConfig)
	if ic.Minimum == nil || *ic.Minimum != 0 || ic.Maximum == nil || *ic.Maximum != 10 {
		t.Errorf("integer config = %+v", ic)
	}

	cfg, err = buildFieldConfig(model.KindFloat, "", "99.5", 0.5, 1, false)
	if err != nil {
		t.Fatal(err)
	}
	fc := cfg.(model.FloatConfig)
	if fc.Minimum != nil || fc.Maximum == nil || *fc.Maximum != 99.5 || fc.Step != 0.5 || fc.Precision != 1 {
		t.Errorf("float config = %+v", fc)
	}

	cfg, err = buildFieldConfig(model.KindTimeRange, "", "", 0, 0, true)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.(model.TimeRangeConfig).ShowDiff {
		t.Error("ShowDiff not carried")
	}

	if _, err := buildFieldConfig("Boolean", "", "", 0, 0, false); err == nil {
		t.Error("expected error for unknown kind")
	}
	if _, err := buildFieldConfig(model.KindInteger, "zero", "", 0, 0, false); err == nil {
		t.Error("expected error for bad --min")
	}
}

func TestFormatFieldValue(t *testing.T) {
	loc := time.Local
	for _, tc := range []struct {
		value model.FieldValue
		want  string
	}{
		{model.IntegerValue{Value: 5}, "5"},
		{model.IntegerRangeValue{Low: 2, High: 8}, "2..8"},
		{model.FloatValue{Value: 71.3}, "71.3"},
		{model.FloatRangeValue{Low: 4.5, High: 5.5}, "4.5..5.5"},
		{model.TimeValue{Value: time.Date(2026, 2, 1, 7, 30, 0, 0, loc)}, "2026-02-01 07:30:00"},
	} {
		if got := formatFieldValue(tc.value); got != tc.want {
			t.Errorf("formatFieldValue(%+v) = %q, want %q", tc.value, got, tc.want)
		}
	}

	got := formatFieldValue(model.TimeRangeValue{
		Low:  time.Date(2026, 1, 31, 23, 0, 0, 0, loc),
		High: time.Date(2026, 2, 1, 7, 0, 0, 0, loc),
	})
	if !strings.Contains(got, "8h0m0s") {
		t.Errorf("time range = %q, want duration included", got)
	}
}

func TestSplitField(t *testing.T) {
	if k, v, ok := splitField("steps=5"); !ok || k != "steps" || v != "5" {
		t.Errorf("splitField = %q, %q, %v", k, v, ok)
	}
	if k, v, ok := splitField("note=a=b"); !ok || k != "note" || v != "a=b" {
		t.Errorf("splitField kept only first '=': %q, %q, %v", k, v, ok)
	}
	if _, _, ok := splitField("bare"); ok {
		t.Error("splitField accepted a pair without '='")
	}
	if _, _, ok := splitField("=value"); ok {
		t.Error("splitField accepted an empty key")
	}
}
