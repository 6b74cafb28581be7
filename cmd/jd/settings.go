package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/groblegark/journal/internal/client"
	"github.com/groblegark/journal/internal/ui"
)

var settingsCmd = &cobra.Command{
	Use:     "settings",
	Short:   "Manage account settings",
	GroupID: "auth",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show authentication settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := api.GetAuthSettings(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(settings)
			return nil
		}
		totp := "disabled"
		if settings.HasTotp {
			totp = "enabled"
		}
		fmt.Printf("totp: %s\n", totp)
		return nil
	},
}

var settingsPasswordCmd = &cobra.Command{
	Use:   "password",
	Short: "Change the account password",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		current, err := ui.ReadPassword("Current password: ")
		if err != nil {
			return err
		}
		updated, err := ui.ReadPassword("New password: ")
		if err != nil {
			return err
		}
		confirm, err := ui.ReadPassword("Confirm new password: ")
		if err != nil {
			return err
		}
		if updated != confirm {
			return fmt.Errorf("passwords do not match")
		}

		if err := api.ChangePassword(cmd.Context(), current, updated); err != nil {
			if client.IsKind(err, client.KindInvalidPassword) {
				return fmt.Errorf("current password is incorrect")
			}
			return err
		}
		fmt.Println("password changed")
		return nil
	},
}

var settingsTotpCmd = &cobra.Command{
	Use:   "totp",
	Short: "Manage two-factor authentication",
}

var settingsTotpEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Start TOTP enrollment",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		enrollment, err := api.EnableTotp(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(enrollment)
			return nil
		}
		fmt.Printf("secret:    %s\n", ui.RenderAccent(enrollment.Secret))
		fmt.Printf("algorithm: %s\n", enrollment.Algo)
		fmt.Printf("digits:    %d\n", enrollment.Digits)
		fmt.Printf("step:      %ds\n", enrollment.Step)
		if enrollment.URL != "" {
			fmt.Printf("url:       %s\n", enrollment.URL)
		}
		fmt.Println("\nadd the secret to your authenticator, then run 'jd settings totp verify <code>'")
		return nil
	},
}

var settingsTotpVerifyCmd = &cobra.Command{
	Use:   "verify <code>",
	Short: "Confirm TOTP enrollment with a generated code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		codes, err := api.VerifyTotp(cmd.Context(), args[0])
		if err != nil {
			if client.IsKind(err, client.KindInvalidCode) {
				return fmt.Errorf("invalid code")
			}
			return err
		}
		if jsonOutput {
			printJSON(codes)
			return nil
		}
		fmt.Println("two-factor authentication enabled")
		fmt.Println("\nrecovery codes (store these somewhere safe):")
		for _, code := range codes.Codes {
			fmt.Printf("  %s\n", code)
		}
		return nil
	},
}

var settingsTotpDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Disable TOTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := api.DisableTotp(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("two-factor authentication disabled")
		return nil
	},
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage peer client keys",
}

var settingsKeysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered peer client keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		keys, err := api.ListClientKeys(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(keys)
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCREATED")
		for _, k := range keys {
			fmt.Fprintf(w, "%d\t%s\t%s\n", k.ID, k.Name, k.CreatedAt.Format("2006-01-02"))
		}
		w.Flush()
		return nil
	},
}

var settingsKeysAddCmd = &cobra.Command{
	Use:   "add <name> <public-key-file>",
	Short: "Register a peer client public key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[1])
		if err != nil {
			return err
		}
		key, err := api.CreateClientKey(cmd.Context(), args[0], string(data))
		if err != nil {
			return err
		}
		fmt.Printf("key %s registered (id %d)\n", key.Name, key.ID)
		return nil
	},
}

var settingsKeysRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a peer client key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := api.DeleteClientKey(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("key %d removed\n", id)
		return nil
	},
}

func init() {
	settingsTotpCmd.AddCommand(settingsTotpEnableCmd, settingsTotpVerifyCmd, settingsTotpDisableCmd)
	settingsKeysCmd.AddCommand(settingsKeysListCmd, settingsKeysAddCmd, settingsKeysRemoveCmd)

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsPasswordCmd)
	settingsCmd.AddCommand(settingsTotpCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
}
