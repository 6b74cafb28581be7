package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/groblegark/journal/internal/client"
	"github.com/groblegark/journal/internal/form"
	"github.com/groblegark/journal/internal/model"
	"github.com/groblegark/journal/internal/ui"
)

var entryCmd = &cobra.Command{
	Use:     "entry",
	Short:   "Manage journal entries",
	GroupID: "journals",
}

var entryListCmd = &cobra.Command{
	Use:   "list <journal-id>",
	Short: "List entries in a journal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		journalID, err := parseID(args[0])
		if err != nil {
			return err
		}

		req := &client.ListEntriesRequest{}
		if s, _ := cmd.Flags().GetString("from"); s != "" {
			from, err := form.ParseEntryDate(s)
			if err != nil {
				return err
			}
			req.From = &from
		}
		if s, _ := cmd.Flags().GetString("to"); s != "" {
			to, err := form.ParseEntryDate(s)
			if err != nil {
				return err
			}
			req.To = &to
		}
		req.Tag, _ = cmd.Flags().GetString("tag")

		entries, err := api.ListEntries(cmd.Context(), journalID, req)
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(entries)
			return nil
		}
		printEntryListTable(entries)
		return nil
	},
}

var entryShowCmd = &cobra.Command{
	Use:   "show <journal-id> <entry-id>",
	Short: "Show an entry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		journalID, err := parseID(args[0])
		if err != nil {
			return err
		}
		entryID, err := parseID(args[1])
		if err != nil {
			return err
		}

		entry, err := api.GetEntry(cmd.Context(), journalID, entryID)
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(entry)
			return nil
		}
		// Field names come from the journal; tolerate it being gone.
		journal, err := api.GetJournal(cmd.Context(), journalID)
		if err != nil {
			journal = nil
		}
		printEntryTable(entry, journal)
		return nil
	},
}

var entryCreateCmd = &cobra.Command{
	Use:   "create <journal-id>",
	Short: "Create an entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		journalID, err := parseID(args[0])
		if err != nil {
			return err
		}
		journal, err := api.GetJournal(cmd.Context(), journalID)
		if err != nil {
			return err
		}

		f := form.BlankEntryForm()
		if err := applyEntryFlags(cmd, &f, journal); err != nil {
			return err
		}
		if err := form.ValidateEntryForm(f, journal.CustomFields); err != nil {
			return err
		}

		payload := form.NewEntryPayload(f)
		entry, err := api.CreateEntry(cmd.Context(), journalID, &payload)
		if err != nil {
			return err
		}

		if err := uploadPendingFiles(cmd.Context(), journalID, entry, f.Files, nil); err != nil {
			return err
		}

		if jsonOutput {
			printJSON(entry)
			return nil
		}
		printEntryTable(entry, journal)
		return nil
	},
}

var entryUpdateCmd = &cobra.Command{
	Use:   "update <journal-id> <entry-id>",
	Short: "Update an entry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		journalID, err := parseID(args[0])
		if err != nil {
			return err
		}
		entryID, err := parseID(args[1])
		if err != nil {
			return err
		}
		journal, err := api.GetJournal(cmd.Context(), journalID)
		if err != nil {
			return err
		}
		existing, err := api.GetEntry(cmd.Context(), journalID, entryID)
		if err != nil {
			return err
		}

		f, err := form.EntryToForm(existing)
		if err != nil {
			return err
		}
		existingIDs := make(map[int64]bool, len(existing.Files))
		for _, file := range existing.Files {
			existingIDs[file.ID] = true
		}

		if err := applyEntryFlags(cmd, &f, journal); err != nil {
			return err
		}
		if err := form.ValidateEntryForm(f, journal.CustomFields); err != nil {
			return err
		}

		payload := form.NewEntryPayload(f)
		entry, err := api.UpdateEntry(cmd.Context(), journalID, entryID, &payload)
		if err != nil {
			return err
		}

		if err := uploadPendingFiles(cmd.Context(), journalID, entry, f.Files, existingIDs); err != nil {
			return err
		}

		if jsonOutput {
			printJSON(entry)
			return nil
		}
		printEntryTable(entry, journal)
		return nil
	},
}

var entryDeleteCmd = &cobra.Command{
	Use:   "delete <journal-id> <entry-id>",
	Short: "Delete an entry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		journalID, err := parseID(args[0])
		if err != nil {
			return err
		}
		entryID, err := parseID(args[1])
		if err != nil {
			return err
		}
		if err := api.DeleteEntry(cmd.Context(), journalID, entryID); err != nil {
			return err
		}
		fmt.Printf("entry %d deleted\n", entryID)
		return nil
	},
}

// applyEntryFlags folds --date/--title/--contents/--tag/--field/--attach
// into the form. Field slots not named by a --field flag keep their state.
func applyEntryFlags(cmd *cobra.Command, f *form.EntryForm, journal *model.Journal) error {
	if cmd.Flags().Changed("date") {
		s, _ := cmd.Flags().GetString("date")
		date, err := form.ParseEntryDate(s)
		if err != nil {
			return err
		}
		f.Date = date
	}
	if cmd.Flags().Changed("title") {
		f.Title, _ = cmd.Flags().GetString("title")
	}
	if cmd.Flags().Changed("contents") {
		f.Contents, _ = cmd.Flags().GetString("contents")
	}

	tagPairs, _ := cmd.Flags().GetStringArray("tag")
	for _, p := range tagPairs {
		key, value, ok := splitField(p)
		if !ok {
			// A bare key is a valueless tag.
			key, value = p, ""
		}
		f.Tags = append(f.Tags, form.TagForm{Key: key, Value: value})
	}

	fieldPairs, _ := cmd.Flags().GetStringArray("field")
	slots, err := parseFieldValues(fieldPairs, journal.CustomFields)
	if err != nil {
		return err
	}
	for _, slot := range slots {
		replaced := false
		for i := range f.CustomFields {
			if f.CustomFields[i].CustomFieldsID == slot.CustomFieldsID {
				f.CustomFields[i] = slot
				replaced = true
				break
			}
		}
		if !replaced {
			f.CustomFields = append(f.CustomFields, slot)
		}
	}

	paths, _ := cmd.Flags().GetStringArray("attach")
	for _, path := range paths {
		mediaType := mime.TypeByExtension(filepath.Ext(path))
		file, err := form.LocalFileForm(path, mediaType)
		if err != nil {
			return err
		}
		f.Files = append(f.Files, file)
	}

	return nil
}

// uploadPendingFiles PUTs the binary for every pending file form after the
// entry was saved. The server's response lists each file it registered;
// fresh ones (not in existingIDs) are matched back to pending forms by name.
func uploadPendingFiles(ctx context.Context, journalID int64, entry *model.Entry, files []form.FileForm, existingIDs map[int64]bool) error {
	claimed := make(map[int64]bool, len(existingIDs))
	for id := range existingIDs {
		claimed[id] = true
	}

	for _, file := range files {
		if file.Variant == form.FileServer {
			continue
		}

		var target *model.EntryFile
		for i := range entry.Files {
			sf := &entry.Files[i]
			if claimed[sf.ID] || sf.Name != file.Name {
				continue
			}
			target = sf
			break
		}
		if target == nil {
			return fmt.Errorf("server did not register file %q", file.Name)
		}
		claimed[target.ID] = true

		var (
			data io.Reader
			size int64
		)
		switch file.Variant {
		case form.FileInMemory:
			data = bytes.NewReader(file.Data)
			size = int64(len(file.Data))
		case form.FileLocal:
			fh, err := os.Open(file.Path)
			if err != nil {
				return err
			}
			defer fh.Close()
			info, err := fh.Stat()
			if err != nil {
				return err
			}
			data = fh
			size = info.Size()
		}

		ok, err := api.UploadData(ctx, journalID, entry.ID, target.ID, data, size, file.ContentType())
		if err != nil {
			return fmt.Errorf("uploading %q: %w", file.Name, err)
		}
		if !ok {
			fmt.Fprintf(os.Stderr, "%s\n", ui.RenderWarning(
				fmt.Sprintf("warning: upload of %q was rejected; the entry was saved without its data", file.Name)))
			continue
		}
		fmt.Printf("uploaded %s\n", file.Name)
	}
	return nil
}

func init() {
	for _, c := range []*cobra.Command{entryCreateCmd, entryUpdateCmd} {
		c.Flags().String("date", "", "entry date (YYYY-MM-DD, defaults to today)")
		c.Flags().StringP("title", "t", "", "entry title")
		c.Flags().StringP("contents", "c", "", "entry text")
		c.Flags().StringArray("tag", nil, "tag (key or key=value, repeatable)")
		c.Flags().StringArrayP("field", "f", nil, "custom field value (name=value, repeatable)")
		c.Flags().StringArrayP("attach", "a", nil, "attach a local file (repeatable)")
	}

	entryListCmd.Flags().String("from", "", "earliest date (YYYY-MM-DD)")
	entryListCmd.Flags().String("to", "", "latest date (YYYY-MM-DD)")
	entryListCmd.Flags().String("tag", "", "filter by tag key")

	entryCmd.AddCommand(entryListCmd)
	entryCmd.AddCommand(entryShowCmd)
	entryCmd.AddCommand(entryCreateCmd)
	entryCmd.AddCommand(entryUpdateCmd)
	entryCmd.AddCommand(entryDeleteCmd)
}
