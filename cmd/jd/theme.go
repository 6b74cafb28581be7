package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/groblegark/journal/internal/config"
	"github.com/groblegark/journal/internal/ui"
)

var themeCmd = &cobra.Command{
	Use:     "theme [name]",
	Short:   "Show or set the color theme for the active remote",
	GroupID: "system",
	Args:    cobra.MaximumNArgs(1),
	// Local file operation; no client needed.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadRemotes()
		if err != nil {
			return err
		}
		if cfg.Active == "" {
			return fmt.Errorf("no active remote; run 'jd remote use <name>' first")
		}
		r := cfg.Remotes[cfg.Active]

		if len(args) == 0 {
			theme := r.Theme
			if theme == "" {
				theme = "dark (default)"
			}
			fmt.Println(theme)
			return nil
		}

		name := args[0]
		if !ui.SetTheme(name) {
			return fmt.Errorf("unknown theme %q (one of %s)", name, strings.Join(ui.ThemeNames(), ", "))
		}
		r.Theme = name
		cfg.Remotes[cfg.Active] = r
		if err := config.SaveRemotes(cfg); err != nil {
			return err
		}
		fmt.Printf("theme set to %q\n", name)
		return nil
	},
}
