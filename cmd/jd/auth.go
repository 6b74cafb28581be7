package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/groblegark/journal/internal/client"
	"github.com/groblegark/journal/internal/ui"
)

var loginCmd = &cobra.Command{
	Use:     "login <username>",
	Short:   "Authenticate against the server",
	GroupID: "auth",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username := args[0]
		password, _ := cmd.Flags().GetString("password")
		if password == "" {
			var err error
			password, err = ui.ReadPassword("Password: ")
			if err != nil {
				return err
			}
		}

		res, err := api.Login(cmd.Context(), username, password)
		if err != nil {
			if client.IsKind(err, client.KindUsernameNotFound) || client.IsKind(err, client.KindInvalidPassword) {
				return fmt.Errorf("invalid username or password")
			}
			return err
		}

		if res.Verify {
			fmt.Println("two-factor verification required; run 'jd verify <code>'")
			return nil
		}
		fmt.Printf("logged in as %s\n", ui.RenderAccent(res.User.Username))
		return nil
	},
}

var verifyCmd = &cobra.Command{
	Use:     "verify <code>",
	Short:   "Complete a pending two-factor login",
	GroupID: "auth",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		method := client.MFATotp
		if recovery, _ := cmd.Flags().GetBool("recovery"); recovery {
			method = client.MFARecovery
		}

		user, err := api.Verify(cmd.Context(), method, args[0])
		if err != nil {
			if client.IsKind(err, client.KindInvalidCode) {
				return fmt.Errorf("invalid code")
			}
			if client.IsKind(err, client.KindInvalidRecovery) {
				return fmt.Errorf("invalid recovery code")
			}
			return err
		}
		fmt.Printf("logged in as %s\n", ui.RenderAccent(user.Username))
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:     "register <token> <username>",
	Short:   "Register a new account with an invite token",
	GroupID: "auth",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		token, username := args[0], args[1]

		password, err := ui.ReadPassword("Password: ")
		if err != nil {
			return err
		}
		confirm, err := ui.ReadPassword("Confirm password: ")
		if err != nil {
			return err
		}
		if password != confirm {
			return fmt.Errorf("passwords do not match")
		}

		user, err := api.Register(cmd.Context(), &client.RegisterRequest{
			Token:    token,
			Username: username,
			Password: password,
			Confirm:  confirm,
		})
		if err != nil {
			switch {
			case client.IsKind(err, client.KindInviteNotFound):
				return fmt.Errorf("invite token not found")
			case client.IsKind(err, client.KindInviteUsed):
				return fmt.Errorf("invite token already used")
			case client.IsKind(err, client.KindInviteExpired):
				return fmt.Errorf("invite token expired")
			case client.IsKind(err, client.KindUsernameExists):
				return fmt.Errorf("username %q is taken", username)
			}
			return err
		}
		fmt.Printf("registered %s\n", ui.RenderAccent(user.Username))
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:     "logout",
	Short:   "End the current session",
	GroupID: "auth",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := api.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Short:   "Show the currently authenticated user",
	GroupID: "auth",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := api.Me(cmd.Context())
		if err != nil {
			if client.IsKind(err, client.KindInvalidSession) {
				fmt.Fprintln(os.Stderr, "not logged in")
				os.Exit(1)
			}
			return err
		}
		if jsonOutput {
			printJSON(user)
			return nil
		}
		fmt.Printf("%s (id %d)\n", user.Username, user.ID)
		return nil
	},
}

func init() {
	loginCmd.Flags().String("password", "", "password (prompted when omitted)")
	verifyCmd.Flags().Bool("recovery", false, "treat the code as a recovery code")
}
