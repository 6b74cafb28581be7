package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/groblegark/journal/internal/client"
	"github.com/groblegark/journal/internal/config"
	"github.com/groblegark/journal/internal/ui"
)

var (
	serverURL  string
	jsonOutput bool
	noColor    bool

	api            *client.HTTPClient
	initialSession string
)

var rootCmd = &cobra.Command{
	Use:   "jd",
	Short: "CLI client for the journal service",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor || !ui.ShouldUseColor() {
			ui.ForceNoColor()
		}

		_, remote, err := config.ActiveRemote()
		if err != nil {
			return fmt.Errorf("loading remote config: %w", err)
		}
		if remote.Theme != "" {
			ui.SetTheme(remote.Theme)
		}

		url := serverURL
		if url == "" {
			url = remote.URL
		}
		if url == "" {
			return fmt.Errorf("no server configured; run 'jd remote add <name> <url>' and 'jd remote use <name>', or pass --server")
		}

		initialSession = remote.Session
		api = client.NewHTTPClient(url, remote.Session)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if api == nil {
			return
		}
		// Persist a rotated session so the next invocation stays logged in.
		if s := api.Session(); s != initialSession {
			if err := config.UpdateActiveSession(s); err != nil {
				fmt.Fprintf(os.Stderr, "warning: could not save session: %v\n", err)
			}
		}
		api.Close()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "server base URL (overrides the active remote)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddGroup(
		&cobra.Group{ID: "auth", Title: "Authentication Commands:"},
		&cobra.Group{ID: "journals", Title: "Journal Commands:"},
		&cobra.Group{ID: "admin", Title: "Administration Commands:"},
		&cobra.Group{ID: "system", Title: "System Commands:"},
	)

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(entryCmd)
	rootCmd.AddCommand(adminCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(remoteCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(backupCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
