package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/groblegark/journal/internal/model"
	"github.com/groblegark/journal/internal/ui"
)

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

const timestampFormat = "2006-01-02 15:04:05"

// --- Journals ---

func printJournalTable(j *model.Journal) {
	fmt.Printf("ID:          %d\n", j.ID)
	fmt.Printf("UID:         %s\n", j.UID)
	fmt.Printf("Name:        %s\n", j.Name)
	if d := deref(j.Description); d != "" {
		fmt.Printf("Description: %s\n", d)
	}
	fmt.Printf("Created:     %s\n", j.CreatedAt.Format(timestampFormat))
	if j.UpdatedAt != nil {
		fmt.Printf("Updated:     %s\n", j.UpdatedAt.Format(timestampFormat))
	}

	if len(j.CustomFields) > 0 {
		fmt.Println("\nCustom fields:")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  ID\tNAME\tTYPE")
		fields := append([]model.CustomField(nil), j.CustomFields...)
		model.SortCustomFields(fields)
		for _, f := range fields {
			fmt.Fprintf(w, "  %d\t%s\t%s\n", f.ID, f.Name, formatFieldConfig(f.Config.FieldConfig))
		}
		w.Flush()
	}

	if len(j.Peers) > 0 {
		fmt.Println("\nPeers:")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  ID\tNAME\tSYNCED")
		for _, p := range j.Peers {
			synced := "never"
			if p.Synced != nil {
				synced = p.Synced.Format(timestampFormat)
			}
			fmt.Fprintf(w, "  %d\t%s\t%s\n", p.PeersID, p.Name, synced)
		}
		w.Flush()
	}
}

func printJournalListTable(journals []*model.Journal) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tFIELDS\tPEERS\tCREATED")
	for _, j := range journals {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\n",
			j.ID, j.Name, len(j.CustomFields), len(j.Peers),
			j.CreatedAt.Format("2006-01-02"))
	}
	w.Flush()
	fmt.Printf("\n%d journals\n", len(journals))
}

// --- Entries ---

func printEntryTable(e *model.Entry, journal *model.Journal) {
	fmt.Printf("ID:      %d\n", e.ID)
	fmt.Printf("Date:    %s\n", ui.RenderAccent(e.Date))
	if t := deref(e.Title); t != "" {
		fmt.Printf("Title:   %s\n", t)
	}
	if len(e.Tags) > 0 {
		parts := make([]string, 0, len(e.Tags))
		for _, tag := range e.Tags {
			if tag.Value != nil {
				parts = append(parts, tag.Key+"="+*tag.Value)
			} else {
				parts = append(parts, tag.Key)
			}
		}
		fmt.Printf("Tags:    %s\n", ui.RenderMuted(strings.Join(parts, ", ")))
	}
	if c := deref(e.Contents); c != "" {
		fmt.Printf("\n%s\n", c)
	}

	if len(e.CustomFields) > 0 {
		fmt.Println("\nFields:")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, cf := range e.CustomFields {
			name := strconv.FormatInt(cf.CustomFieldsID, 10)
			if journal != nil {
				for _, def := range journal.CustomFields {
					if def.ID == cf.CustomFieldsID {
						name = def.Name
						break
					}
				}
			}
			fmt.Fprintf(w, "  %s\t%s\n", name, formatFieldValue(cf.Value.FieldValue))
		}
		w.Flush()
	}

	if len(e.Files) > 0 {
		fmt.Println("\nFiles:")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  ID\tNAME\tTYPE\tSIZE")
		for _, f := range e.Files {
			fmt.Fprintf(w, "  %d\t%s\t%s\t%d\n", f.ID, f.Name, f.Mime(), f.Size)
		}
		w.Flush()
	}
}

func printEntryListTable(entries []*model.Entry) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tTITLE\tTAGS\tFILES")
	for _, e := range entries {
		title := deref(e.Title)
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		tags := make([]string, 0, len(e.Tags))
		for _, tag := range e.Tags {
			tags = append(tags, tag.Key)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n",
			e.ID, e.Date, title, strings.Join(tags, ","), len(e.Files))
	}
	w.Flush()
	fmt.Printf("\n%d entries\n", len(entries))
}

// --- Field rendering ---

func formatFieldConfig(c model.FieldConfig) string {
	if c == nil {
		return ""
	}
	kind := c.Kind().String()
	var bounds []string
	switch cfg := c.(type) {
	case model.IntegerConfig:
		bounds = intBounds(cfg.Minimum, cfg.Maximum)
	case model.IntegerRangeConfig:
		bounds = intBounds(cfg.Minimum, cfg.Maximum)
	case model.FloatConfig:
		bounds = floatBounds(cfg.Minimum, cfg.Maximum)
	case model.FloatRangeConfig:
		bounds = floatBounds(cfg.Minimum, cfg.Maximum)
	}
	if len(bounds) == 0 {
		return kind
	}
	return fmt.Sprintf("%s (%s)", kind, strings.Join(bounds, ", "))
}

func intBounds(min, max *int64) []string {
	var out []string
	if min != nil {
		out = append(out, fmt.Sprintf("min %d", *min))
	}
	if max != nil {
		out = append(out, fmt.Sprintf("max %d", *max))
	}
	return out
}

func floatBounds(min, max *float64) []string {
	var out []string
	if min != nil {
		out = append(out, fmt.Sprintf("min %g", *min))
	}
	if max != nil {
		out = append(out, fmt.Sprintf("max %g", *max))
	}
	return out
}

func formatFieldValue(v model.FieldValue) string {
	switch val := v.(type) {
	case model.IntegerValue:
		return strconv.FormatInt(val.Value, 10)
	case model.IntegerRangeValue:
		return fmt.Sprintf("%d..%d", val.Low, val.High)
	case model.FloatValue:
		return strconv.FormatFloat(val.Value, 'f', -1, 64)
	case model.FloatRangeValue:
		return fmt.Sprintf("%s..%s",
			strconv.FormatFloat(val.Low, 'f', -1, 64),
			strconv.FormatFloat(val.High, 'f', -1, 64))
	case model.TimeValue:
		return val.Value.Format(timestampFormat)
	case model.TimeRangeValue:
		d := val.High.Sub(val.Low).Round(time.Second)
		return fmt.Sprintf("%s .. %s (%s)",
			val.Low.Format(timestampFormat), val.High.Format(timestampFormat), d)
	}
	return ""
}
