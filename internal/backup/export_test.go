package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/groblegark/journal/internal/client"
	"github.com/groblegark/journal/internal/model"
)

// mockSource is an in-memory Source for export tests.
type mockSource struct {
	journals []*model.Journal
	entries  map[int64][]*model.Entry
}

func (m *mockSource) ListJournals(_ context.Context) ([]*model.Journal, error) {
	return m.journals, nil
}

func (m *mockSource) ListEntries(_ context.Context, journalID int64, _ *client.ListEntriesRequest) ([]*model.Entry, error) {
	return m.entries[journalID], nil
}

func TestExportJSONL_Empty(t *testing.T) {
	ms := &mockSource{entries: map[int64][]*model.Entry{}}
	var buf bytes.Buffer
	if err := ExportJSONL(context.Background(), ms, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := nonEmptyLines(buf.String())
	if len(lines) != 1 {
		t.Fatalf("expected 1 line (header only), got %d", len(lines))
	}

	var h header
	if err := json.Unmarshal([]byte(lines[0]), &h); err != nil {
		t.Fatalf("unmarshal header: %v", err)
	}
	if h.Version != "1" || h.Type != "header" || h.JournalCount != 0 || h.EntryCount != 0 {
		t.Fatalf("unexpected header: %+v", h)
	}
}

func TestExportJSONL_JournalsAndEntries(t *testing.T) {
	now := time.Now().UTC()
	min := int64(0)
	ms := &mockSource{
		// Out of ID order to verify sorting.
		journals: []*model.Journal{
			{ID: 9, UID: "j-9", UsersID: 1, Name: "travel", CreatedAt: now},
			{ID: 2, UID: "j-2", UsersID: 1, Name: "health", CreatedAt: now,
				CustomFields: []model.CustomField{
					{ID: 3, UID: "cf-3", Name: "steps", Config: model.NewConfig(model.IntegerConfig{Minimum: &min})},
				}},
		},
		entries: map[int64][]*model.Entry{
			2: {
				{ID: 30, UID: "e-30", JournalsID: 2, Date: "2026-02-02", CreatedAt: now},
				{ID: 20, UID: "e-20", JournalsID: 2, Date: "2026-02-01", CreatedAt: now,
					CustomFields: []model.EntryCustomField{
						{CustomFieldsID: 3, Value: model.NewValue(model.IntegerValue{Value: 5})},
					}},
			},
		},
	}

	var buf bytes.Buffer
	if err := ExportJSONL(context.Background(), ms, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := nonEmptyLines(buf.String())
	// 1 header + 2 journals + 2 entries = 5 lines
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d:\n%s", len(lines), buf.String())
	}

	var h header
	if err := json.Unmarshal([]byte(lines[0]), &h); err != nil {
		t.Fatalf("unmarshal header: %v", err)
	}
	if h.JournalCount != 2 || h.EntryCount != 2 {
		t.Fatalf("header counts: journal=%d entry=%d", h.JournalCount, h.EntryCount)
	}

	// Journal 2 sorts first, followed by its entries in date order, then
	// journal 9 with no entries.
	wantTypes := []string{"journal", "entry", "entry", "journal"}
	var recs []record
	for i, line := range lines[1:] {
		var rec record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("unmarshal line %d: %v", i+1, err)
		}
		if rec.Type != wantTypes[i] {
			t.Fatalf("line %d type = %q, want %q", i+1, rec.Type, wantTypes[i])
		}
		recs = append(recs, rec)
	}

	data, _ := json.Marshal(recs[0].Data)
	var j model.Journal
	if err := json.Unmarshal(data, &j); err != nil {
		t.Fatalf("unmarshal journal: %v", err)
	}
	if j.ID != 2 {
		t.Fatalf("first journal ID = %d, want 2", j.ID)
	}

	data, _ = json.Marshal(recs[1].Data)
	var e model.Entry
	if err := json.Unmarshal(data, &e); err != nil {
		t.Fatalf("unmarshal entry: %v", err)
	}
	if e.ID != 20 {
		t.Fatalf("entries not sorted by date: first ID = %d, want 20", e.ID)
	}
	if len(e.CustomFields) != 1 {
		t.Fatalf("entry custom fields = %d", len(e.CustomFields))
	}
	v, ok := e.CustomFields[0].Value.FieldValue.(model.IntegerValue)
	if !ok || v.Value != 5 {
		t.Fatalf("custom field value did not round-trip: %+v", e.CustomFields[0].Value.FieldValue)
	}
}

func nonEmptyLines(s string) []string {
	var result []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			result = append(result, line)
		}
	}
	return result
}
