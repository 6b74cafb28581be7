package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/groblegark/journal/internal/form"
	"github.com/groblegark/journal/internal/model"
	"github.com/groblegark/journal/internal/ui"
)

var journalCmd = &cobra.Command{
	Use:     "journal",
	Short:   "Manage journals",
	GroupID: "journals",
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List journals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		journals, err := api.ListJournals(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(journals)
			return nil
		}
		printJournalListTable(journals)
		return nil
	},
}

var journalShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a journal and its field definitions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		j, err := api.GetJournal(cmd.Context(), id)
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(j)
			return nil
		}
		printJournalTable(j)
		return nil
	},
}

var journalCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new journal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")

		f := form.BlankJournalForm()
		f.Name = args[0]
		f.Description = description

		payload := form.NewJournalPayload(f)
		j, err := api.CreateJournal(cmd.Context(), &payload)
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(j)
			return nil
		}
		printJournalTable(j)
		return nil
	},
}

var journalUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a journal's name or description",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		j, err := api.GetJournal(cmd.Context(), id)
		if err != nil {
			return err
		}
		f := form.JournalToForm(j)
		if cmd.Flags().Changed("name") {
			f.Name, _ = cmd.Flags().GetString("name")
		}
		if cmd.Flags().Changed("description") {
			f.Description, _ = cmd.Flags().GetString("description")
		}

		payload := form.NewJournalPayload(f)
		updated, err := api.UpdateJournal(cmd.Context(), id, &payload)
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(updated)
			return nil
		}
		printJournalTable(updated)
		return nil
	},
}

var journalDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a journal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := api.DeleteJournal(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("journal %d deleted\n", id)
		return nil
	},
}

var journalSyncCmd = &cobra.Command{
	Use:   "sync <id>",
	Short: "Queue a sync of a journal to its peers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		res, err := api.SyncJournal(cmd.Context(), id)
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(res)
			return nil
		}
		if !res.Queued {
			fmt.Println("nothing to sync")
			return nil
		}
		fmt.Println(ui.RenderSuccess("sync queued"))
		for _, name := range res.Successful {
			fmt.Printf("  %s\n", name)
		}
		return nil
	},
}

// --- Field definitions ---

var journalFieldCmd = &cobra.Command{
	Use:   "field",
	Short: "Manage a journal's custom field definitions",
}

var journalFieldAddCmd = &cobra.Command{
	Use:   "add <journal-id> <name> <type>",
	Short: "Add a custom field definition",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		name := args[1]
		kind := model.FieldKind(args[2])
		if !kind.IsValid() {
			return fmt.Errorf("unknown field type %q", args[2])
		}

		minRaw, _ := cmd.Flags().GetString("min")
		maxRaw, _ := cmd.Flags().GetString("max")
		step, _ := cmd.Flags().GetFloat64("step")
		precision, _ := cmd.Flags().GetInt("precision")
		showDiff, _ := cmd.Flags().GetBool("show-diff")
		description, _ := cmd.Flags().GetString("description")

		cfg, err := buildFieldConfig(kind, minRaw, maxRaw, step, precision, showDiff)
		if err != nil {
			return err
		}

		j, err := api.GetJournal(cmd.Context(), id)
		if err != nil {
			return err
		}
		f := form.JournalToForm(j)
		if _, exists := f.FieldByName(name); exists {
			return fmt.Errorf("journal already has a field named %q", name)
		}
		if err := f.AddField(name, kind); err != nil {
			return err
		}
		added, _ := f.FieldByName(name)
		added.Config = cfg
		added.Description = description

		payload := form.NewJournalPayload(f)
		updated, err := api.UpdateJournal(cmd.Context(), id, &payload)
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(updated)
			return nil
		}
		printJournalTable(updated)
		return nil
	},
}

var journalFieldRemoveCmd = &cobra.Command{
	Use:   "remove <journal-id> <name>",
	Short: "Remove a custom field definition",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		j, err := api.GetJournal(cmd.Context(), id)
		if err != nil {
			return err
		}
		f := form.JournalToForm(j)
		if err := f.RemoveField(args[1]); err != nil {
			return err
		}

		payload := form.NewJournalPayload(f)
		if _, err := api.UpdateJournal(cmd.Context(), id, &payload); err != nil {
			return err
		}
		fmt.Printf("field %q removed\n", args[1])
		return nil
	},
}

var journalFieldUpdateCmd = &cobra.Command{
	Use:   "update <journal-id> <name>",
	Short: "Update a custom field definition's name or description",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		j, err := api.GetJournal(cmd.Context(), id)
		if err != nil {
			return err
		}
		f := form.JournalToForm(j)
		field, ok := f.FieldByName(args[1])
		if !ok {
			return fmt.Errorf("no custom field named %q", args[1])
		}
		if cmd.Flags().Changed("rename") {
			field.Name, _ = cmd.Flags().GetString("rename")
		}
		if cmd.Flags().Changed("description") {
			field.Description, _ = cmd.Flags().GetString("description")
		}
		if cmd.Flags().Changed("order") {
			order, _ := cmd.Flags().GetInt32("order")
			field.Order = order
		}

		payload := form.NewJournalPayload(f)
		updated, err := api.UpdateJournal(cmd.Context(), id, &payload)
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(updated)
			return nil
		}
		printJournalTable(updated)
		return nil
	},
}

func init() {
	journalCreateCmd.Flags().StringP("description", "d", "", "journal description")

	journalUpdateCmd.Flags().String("name", "", "new name")
	journalUpdateCmd.Flags().StringP("description", "d", "", "new description")

	journalFieldAddCmd.Flags().String("min", "", "minimum allowed value")
	journalFieldAddCmd.Flags().String("max", "", "maximum allowed value")
	journalFieldAddCmd.Flags().Float64("step", model.DefaultFloatStep, "input step for float fields")
	journalFieldAddCmd.Flags().Int("precision", model.DefaultFloatPrecision, "display precision for float fields")
	journalFieldAddCmd.Flags().Bool("show-diff", false, "show the elapsed duration for time range fields")
	journalFieldAddCmd.Flags().StringP("description", "d", "", "field description")

	journalFieldUpdateCmd.Flags().String("rename", "", "new field name")
	journalFieldUpdateCmd.Flags().StringP("description", "d", "", "new field description")
	journalFieldUpdateCmd.Flags().Int32("order", 0, "new display order")

	journalFieldCmd.AddCommand(journalFieldAddCmd)
	journalFieldCmd.AddCommand(journalFieldUpdateCmd)
	journalFieldCmd.AddCommand(journalFieldRemoveCmd)

	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalShowCmd)
	journalCmd.AddCommand(journalCreateCmd)
	journalCmd.AddCommand(journalUpdateCmd)
	journalCmd.AddCommand(journalDeleteCmd)
	journalCmd.AddCommand(journalSyncCmd)
	journalCmd.AddCommand(journalFieldCmd)
}
