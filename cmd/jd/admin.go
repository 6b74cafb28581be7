package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/groblegark/journal/internal/client"
	"github.com/groblegark/journal/internal/model"
	"github.com/groblegark/journal/internal/ui"
)

var adminCmd = &cobra.Command{
	Use:     "admin",
	Short:   "Administer users, groups, roles, and invites",
	GroupID: "admin",
}

// --- Users ---

var adminUserCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
}

var adminUserListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := api.ListUsers(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(users)
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tUSERNAME\tGROUPS\tROLES")
		for _, u := range users {
			groups := make([]string, 0, len(u.Groups))
			for _, g := range u.Groups {
				groups = append(groups, g.Name)
			}
			roles := make([]string, 0, len(u.Roles))
			for _, r := range u.Roles {
				roles = append(roles, r.Name)
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.Username,
				strings.Join(groups, ","), strings.Join(roles, ","))
		}
		w.Flush()
		return nil
	},
}

var adminUserCreateCmd = &cobra.Command{
	Use:   "create <username>",
	Short: "Create a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := ui.ReadPassword("Password: ")
		if err != nil {
			return err
		}

		req := &client.CreateUserRequest{Username: args[0], Password: password}
		if cmd.Flags().Changed("role") {
			id, _ := cmd.Flags().GetInt64("role")
			req.RoleID = &id
		}
		if cmd.Flags().Changed("group") {
			id, _ := cmd.Flags().GetInt64("group")
			req.GroupsID = &id
		}

		user, err := api.CreateUser(cmd.Context(), req)
		if err != nil {
			if client.IsKind(err, client.KindUsernameExists) {
				return fmt.Errorf("username %q is taken", args[0])
			}
			return err
		}
		fmt.Printf("user %s created (id %d)\n", user.Username, user.ID)
		return nil
	},
}

var adminUserDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := api.DeleteUser(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("user %d deleted\n", id)
		return nil
	},
}

// --- Groups ---

var adminGroupCmd = &cobra.Command{
	Use:   "group",
	Short: "Manage groups",
}

var adminGroupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List groups",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		groups, err := api.ListGroups(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(groups)
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tUSERS")
		for _, g := range groups {
			fmt.Fprintf(w, "%d\t%s\t%d\n", g.ID, g.Name, len(g.Users))
		}
		w.Flush()
		return nil
	},
}

var adminGroupCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		group, err := api.CreateGroup(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("group %s created (id %d)\n", group.Name, group.ID)
		return nil
	},
}

var adminGroupDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := api.DeleteGroup(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("group %d deleted\n", id)
		return nil
	},
}

// --- Roles ---

var adminRoleCmd = &cobra.Command{
	Use:   "role",
	Short: "Manage roles",
}

var adminRoleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List roles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		roles, err := api.ListRoles(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(roles)
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tPERMISSIONS")
		for _, r := range roles {
			perms := make([]string, 0, len(r.Permissions))
			for _, p := range r.Permissions {
				perms = append(perms, p.Scope+":"+p.Ability)
			}
			fmt.Fprintf(w, "%d\t%s\t%s\n", r.ID, r.Name, strings.Join(perms, ","))
		}
		w.Flush()
		return nil
	},
}

var adminRoleCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a role",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		permPairs, _ := cmd.Flags().GetStringArray("permission")
		perms := make([]model.Permission, 0, len(permPairs))
		for _, p := range permPairs {
			scope, ability, ok := strings.Cut(p, ":")
			if !ok {
				return fmt.Errorf("invalid permission %q: expected scope:ability", p)
			}
			perms = append(perms, model.Permission{Scope: scope, Ability: ability})
		}

		role, err := api.CreateRole(cmd.Context(), &client.CreateRoleRequest{
			Name:        args[0],
			Permissions: perms,
		})
		if err != nil {
			return err
		}
		fmt.Printf("role %s created (id %d)\n", role.Name, role.ID)
		return nil
	},
}

var adminRoleDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a role",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := api.DeleteRole(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("role %d deleted\n", id)
		return nil
	},
}

// --- Invites ---

var adminInviteCmd = &cobra.Command{
	Use:   "invite",
	Short: "Manage registration invites",
}

var adminInviteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List invites",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		invites, err := api.ListInvites(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(invites)
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TOKEN\tSTATUS\tEXPIRES\tISSUED")
		for _, inv := range invites {
			expires := ""
			if inv.ExpiresOn != nil {
				expires = inv.ExpiresOn.Format("2006-01-02")
			}
			status := string(inv.Status)
			switch inv.Status {
			case model.InvitePending:
				status = ui.RenderSuccess(status)
			case model.InviteExpired:
				status = ui.RenderError(status)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", inv.Token, status, expires,
				inv.IssuedOn.Format("2006-01-02"))
		}
		w.Flush()
		return nil
	},
}

var adminInviteCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create one or more invites",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, _ := cmd.Flags().GetInt("amount")
		if amount < 1 {
			return fmt.Errorf("--amount must be at least 1")
		}

		req := &client.CreateInvitesRequest{Amount: amount}
		if s, _ := cmd.Flags().GetString("expires"); s != "" {
			t, err := time.ParseInLocation("2006-01-02", s, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --expires %q: expected YYYY-MM-DD", s)
			}
			req.ExpiresOn = &t
		}
		if cmd.Flags().Changed("role") {
			id, _ := cmd.Flags().GetInt64("role")
			req.RoleID = &id
		}
		if cmd.Flags().Changed("group") {
			id, _ := cmd.Flags().GetInt64("group")
			req.GroupsID = &id
		}

		invites, err := api.CreateInvites(cmd.Context(), req)
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(invites)
			return nil
		}
		for _, inv := range invites {
			fmt.Println(inv.Token)
		}
		return nil
	},
}

var adminInviteDeleteCmd = &cobra.Command{
	Use:   "delete <token>",
	Short: "Revoke an invite",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := api.DeleteInvite(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("invite revoked")
		return nil
	},
}

func init() {
	adminUserCreateCmd.Flags().Int64("role", 0, "initial role id")
	adminUserCreateCmd.Flags().Int64("group", 0, "initial group id")

	adminRoleCreateCmd.Flags().StringArrayP("permission", "p", nil, "permission (scope:ability, repeatable)")

	adminInviteCreateCmd.Flags().IntP("amount", "n", 1, "number of invites to create")
	adminInviteCreateCmd.Flags().String("expires", "", "expiry date (YYYY-MM-DD)")
	adminInviteCreateCmd.Flags().Int64("role", 0, "role to pre-assign")
	adminInviteCreateCmd.Flags().Int64("group", 0, "group to pre-assign")

	adminUserCmd.AddCommand(adminUserListCmd, adminUserCreateCmd, adminUserDeleteCmd)
	adminGroupCmd.AddCommand(adminGroupListCmd, adminGroupCreateCmd, adminGroupDeleteCmd)
	adminRoleCmd.AddCommand(adminRoleListCmd, adminRoleCreateCmd, adminRoleDeleteCmd)
	adminInviteCmd.AddCommand(adminInviteListCmd, adminInviteCreateCmd, adminInviteDeleteCmd)

	adminCmd.AddCommand(adminUserCmd)
	adminCmd.AddCommand(adminGroupCmd)
	adminCmd.AddCommand(adminRoleCmd)
	adminCmd.AddCommand(adminInviteCmd)
}
