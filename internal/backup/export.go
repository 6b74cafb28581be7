package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/groblegark/journal/internal/client"
	"github.com/groblegark/journal/internal/model"
)

// Source is the slice of the API a backup needs to read.
type Source interface {
	ListJournals(ctx context.Context) ([]*model.Journal, error)
	ListEntries(ctx context.Context, journalID int64, req *client.ListEntriesRequest) ([]*model.Entry, error)
}

// header is the first JSONL record written by ExportJSONL.
type header struct {
	Version      string    `json:"version"`
	Type         string    `json:"type"`
	Timestamp    time.Time `json:"timestamp"`
	JournalCount int       `json:"journal_count"`
	EntryCount   int       `json:"entry_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// ExportJSONL writes every journal and its entries as JSONL to w. Journals
// are sorted by ID; each journal's entries follow it, sorted by date then ID.
// Custom field definitions and values keep their tagged wire form, so a
// backup line round-trips through the same decoders the client uses.
func ExportJSONL(ctx context.Context, src Source, w io.Writer) error {
	journals, err := src.ListJournals(ctx)
	if err != nil {
		return fmt.Errorf("list journals: %w", err)
	}
	sort.Slice(journals, func(i, j int) bool {
		return journals[i].ID < journals[j].ID
	})

	entries := make(map[int64][]*model.Entry, len(journals))
	total := 0
	for _, j := range journals {
		es, err := src.ListEntries(ctx, j.ID, nil)
		if err != nil {
			return fmt.Errorf("list entries for journal %d: %w", j.ID, err)
		}
		sort.Slice(es, func(a, b int) bool {
			if es[a].Date != es[b].Date {
				return es[a].Date < es[b].Date
			}
			return es[a].ID < es[b].ID
		})
		entries[j.ID] = es
		total += len(es)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:      "1",
		Type:         "header",
		Timestamp:    time.Now().UTC(),
		JournalCount: len(journals),
		EntryCount:   total,
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, j := range journals {
		if err := enc.Encode(record{Type: "journal", Data: j}); err != nil {
			return fmt.Errorf("encode journal %d: %w", j.ID, err)
		}
		for _, e := range entries[j.ID] {
			if err := enc.Encode(record{Type: "entry", Data: e}); err != nil {
				return fmt.Errorf("encode entry %d: %w", e.ID, err)
			}
		}
	}

	return nil
}
