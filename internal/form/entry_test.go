package form

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/groblegark/journal/internal/model"
)

func strptr(s string) *string { return &s }

func sampleEntry() *model.Entry {
	param := "charset=utf-8"
	return &model.Entry{
		ID:         41,
		UID:        "e-41",
		JournalsID: 7,
		Date:       "2024-02-29",
		Title:      strptr("Leap day"),
		Contents:   strptr("Checked the calendar twice."),
		Tags: []model.EntryTag{
			{Key: "mood", Value: strptr("good")},
			{Key: "flagged", Value: nil},
		},
		Files: []model.EntryFile{
			{ID: 9, UID: "f-9", Name: "notes.txt", MimeType: "text", MimeSubtype: "plain", MimeParam: &param, Size: 120},
		},
		CustomFields: []model.EntryCustomField{
			{CustomFieldsID: 3, Value: model.NewValue(model.IntegerValue{Value: 5})},
		},
	}
}

func TestEntryToForm_Basic(t *testing.T) {
	f, err := EntryToForm(sampleEntry())
	if err != nil {
		t.Fatalf("EntryToForm() error = %v", err)
	}
	if f.Title != "Leap day" {
		t.Errorf("Title = %q", f.Title)
	}
	if f.Contents != "Checked the calendar twice." {
		t.Errorf("Contents = %q", f.Contents)
	}
	if len(f.Tags) != 2 {
		t.Fatalf("len(Tags) = %d, want 2", len(f.Tags))
	}
	if f.Tags[1].Value != "" {
		t.Errorf("null tag value should become empty string, got %q", f.Tags[1].Value)
	}
	if len(f.CustomFields) != 1 || !f.CustomFields[0].Enabled {
		t.Errorf("persisted custom field should arrive enabled: %+v", f.CustomFields)
	}
}

func TestEntryToForm_LeapDayLocalMidnight(t *testing.T) {
	f, err := EntryToForm(sampleEntry())
	if err != nil {
		t.Fatalf("EntryToForm() error = %v", err)
	}
	want := time.Date(2024, 2, 29, 0, 0, 0, 0, time.Local)
	if !f.Date.Equal(want) {
		t.Errorf("Date = %v, want local midnight %v", f.Date, want)
	}
	if f.Date.Location() != time.Local {
		t.Errorf("Date location = %v, want Local", f.Date.Location())
	}
}

func TestEntryToForm_ServerFileVariant(t *testing.T) {
	f, err := EntryToForm(sampleEntry())
	if err != nil {
		t.Fatalf("EntryToForm() error = %v", err)
	}
	if len(f.Files) != 1 {
		t.Fatalf("len(Files) = %d, want 1", len(f.Files))
	}
	file := f.Files[0]
	if file.Variant != FileServer {
		t.Errorf("Variant = %q, want server", file.Variant)
	}
	if file.ID != 9 || file.UID != "f-9" {
		t.Errorf("server identity not preserved: %+v", file)
	}
	if file.Mime.Type != "text" || file.Mime.Subtype != "plain" || file.Mime.Param != "charset=utf-8" {
		t.Errorf("mime split not preserved: %+v", file.Mime)
	}
}

func TestEntryToForm_IndependentCopy(t *testing.T) {
	e := sampleEntry()
	f, err := EntryToForm(e)
	if err != nil {
		t.Fatalf("EntryToForm() error = %v", err)
	}
	f.Tags[0].Value = "altered"
	f.Files[0].Name = "altered"
	if *e.Tags[0].Value != "good" {
		t.Error("mutating the form changed the wire entry's tags")
	}
	if e.Files[0].Name != "notes.txt" {
		t.Error("mutating the form changed the wire entry's files")
	}
}

func TestEntryToForm_BadDate(t *testing.T) {
	for _, date := range []string{"2024-02-30", "not-a-date", "2024/02/01", ""} {
		e := sampleEntry()
		e.Date = date
		if _, err := EntryToForm(e); err == nil {
			t.Errorf("EntryToForm with date %q should fail", date)
		}
	}
}

func TestBlankEntryForm_SameCalendarDay(t *testing.T) {
	a := BlankEntryForm()
	b := BlankEntryForm()
	if FormatEntryDate(a.Date) != FormatEntryDate(b.Date) {
		t.Errorf("two blank forms disagree on today: %v vs %v", a.Date, b.Date)
	}
	if a.Title != "" || a.Contents != "" || len(a.Tags) != 0 || len(a.Files) != 0 || len(a.CustomFields) != 0 {
		t.Errorf("blank form not blank: %+v", a)
	}
}

func TestNewEntryPayload_ExcludesDisabledFields(t *testing.T) {
	f := BlankEntryForm()
	f.CustomFields = []CustomFieldForm{
		{CustomFieldsID: 1, Enabled: true, Value: model.IntegerValue{Value: 5}},
		{CustomFieldsID: 2, Enabled: false, Value: model.FloatValue{Value: 1.5}},
	}
	p := NewEntryPayload(f)
	if len(p.CustomFields) != 1 {
		t.Fatalf("len(CustomFields) = %d, want 1", len(p.CustomFields))
	}
	if p.CustomFields[0].CustomFieldsID != 1 {
		t.Errorf("wrong field survived: %+v", p.CustomFields[0])
	}
}

func TestNewEntryPayload_FileReduction(t *testing.T) {
	f := BlankEntryForm()
	f.Files = []FileForm{
		{Variant: FileServer, ID: 12, Name: "kept.png"},
		{Variant: FileLocal, Key: "jf-abc123", Name: "pending.wav"},
		{Variant: FileInMemory, Key: "jf-def456", Name: "clip.webm"},
	}
	p := NewEntryPayload(f)
	if len(p.Files) != 3 {
		t.Fatalf("len(Files) = %d, want 3", len(p.Files))
	}
	if p.Files[0].ID == nil || *p.Files[0].ID != 12 || p.Files[0].Key != nil {
		t.Errorf("server file should reduce to {id, name}: %+v", p.Files[0])
	}
	for _, fp := range p.Files[1:] {
		if fp.Key == nil || fp.ID != nil {
			t.Errorf("pending file should reduce to {key, name}: %+v", fp)
		}
	}
}

func TestNewEntryPayload_IntegerFieldWire(t *testing.T) {
	f := BlankEntryForm()
	f.CustomFields = []CustomFieldForm{
		{CustomFieldsID: 3, Enabled: true, Value: model.IntegerValue{Value: 5}},
	}
	data, err := json.Marshal(NewEntryPayload(f))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var body struct {
		CustomFields []struct {
			CustomFieldsID int64          `json:"custom_fields_id"`
			Value          map[string]any `json:"value"`
		} `json:"custom_fields"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(body.CustomFields) != 1 {
		t.Fatalf("len = %d, want 1", len(body.CustomFields))
	}
	cf := body.CustomFields[0]
	if cf.CustomFieldsID != 3 {
		t.Errorf("custom_fields_id = %d, want 3", cf.CustomFieldsID)
	}
	if cf.Value["type"] != "Integer" || cf.Value["value"] != float64(5) {
		t.Errorf("value = %v, want {type: Integer, value: 5}", cf.Value)
	}
}

// Round-trip: form -> payload -> (rebuilt wire entry) -> form preserves
// date, title, contents, tags, and enabled custom field values. Files are
// excluded because their persistence runs through the upload side channel.
func TestEntryRoundTrip(t *testing.T) {
	orig, err := EntryToForm(sampleEntry())
	if err != nil {
		t.Fatalf("EntryToForm() error = %v", err)
	}
	orig.Files = nil

	p := NewEntryPayload(orig)

	rebuilt := &model.Entry{
		ID:       41,
		Date:     p.Date,
		Title:    p.Title,
		Contents: p.Contents,
	}
	for _, tp := range p.Tags {
		rebuilt.Tags = append(rebuilt.Tags, model.EntryTag{Key: tp.Key, Value: tp.Value})
	}
	for _, cp := range p.CustomFields {
		rebuilt.CustomFields = append(rebuilt.CustomFields, model.EntryCustomField{
			CustomFieldsID: cp.CustomFieldsID,
			Value:          cp.Value,
		})
	}

	back, err := EntryToForm(rebuilt)
	if err != nil {
		t.Fatalf("EntryToForm(rebuilt) error = %v", err)
	}

	if !back.Date.Equal(orig.Date) {
		t.Errorf("date drifted: %v -> %v", orig.Date, back.Date)
	}
	if back.Title != orig.Title || back.Contents != orig.Contents {
		t.Errorf("text drifted: %q/%q -> %q/%q", orig.Title, orig.Contents, back.Title, back.Contents)
	}
	if len(back.Tags) != len(orig.Tags) {
		t.Fatalf("tag count drifted: %d -> %d", len(orig.Tags), len(back.Tags))
	}
	for i := range orig.Tags {
		if back.Tags[i] != orig.Tags[i] {
			t.Errorf("tag %d drifted: %+v -> %+v", i, orig.Tags[i], back.Tags[i])
		}
	}
	if len(back.CustomFields) != 1 {
		t.Fatalf("custom field count drifted: %d", len(back.CustomFields))
	}
	got, ok := back.CustomFields[0].Value.(model.IntegerValue)
	if !ok || got.Value != 5 {
		t.Errorf("custom field value drifted: %+v", back.CustomFields[0].Value)
	}
}

func TestAttachJournalFields(t *testing.T) {
	fields := []model.CustomField{
		{ID: 1, Name: "steps", Config: model.NewConfig(model.IntegerConfig{})},
		{ID: 2, Name: "sleep", Config: model.NewConfig(model.TimeRangeConfig{})},
	}
	f := BlankEntryForm()
	f.CustomFields = []CustomFieldForm{
		{CustomFieldsID: 1, Enabled: true, Value: model.IntegerValue{Value: 9000}},
	}
	if err := AttachJournalFields(&f, fields); err != nil {
		t.Fatalf("AttachJournalFields() error = %v", err)
	}
	if len(f.CustomFields) != 2 {
		t.Fatalf("len = %d, want 2", len(f.CustomFields))
	}
	// The existing enabled slot is untouched.
	if !f.CustomFields[0].Enabled {
		t.Error("existing slot lost its enabled flag")
	}
	// The appended slot is disabled with a default value of the right kind.
	added := f.CustomFields[1]
	if added.Enabled {
		t.Error("appended slot should start disabled")
	}
	if added.Value.Kind() != model.KindTimeRange {
		t.Errorf("appended value kind = %s, want TimeRange", added.Value.Kind())
	}
}

func TestValidateEntryForm(t *testing.T) {
	fields := []model.CustomField{
		{ID: 1, Name: "steps", Config: model.NewConfig(model.IntegerConfig{Minimum: i64t(0)})},
	}
	f := BlankEntryForm()
	f.CustomFields = []CustomFieldForm{
		{CustomFieldsID: 1, Enabled: true, Value: model.IntegerValue{Value: -5}},
	}
	if err := ValidateEntryForm(f, fields); err == nil {
		t.Fatal("expected bound violation")
	}

	// Disabled slots are not validated.
	f.CustomFields[0].Enabled = false
	if err := ValidateEntryForm(f, fields); err != nil {
		t.Fatalf("disabled slot should be skipped, got %v", err)
	}

	// Values for unknown definitions are rejected.
	f.CustomFields = []CustomFieldForm{
		{CustomFieldsID: 99, Enabled: true, Value: model.IntegerValue{Value: 1}},
	}
	if err := ValidateEntryForm(f, fields); err == nil {
		t.Fatal("expected unknown definition error")
	}
}

func i64t(v int64) *int64 { return &v }
