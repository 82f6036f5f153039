package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/s0up4200/zammadctl/zammad"
)

var usersCmd = &cobra.Command{
	Use:     "users",
	Aliases: []string{"user"},
	Short:   "Manage Zammad users",
}

var usersMeCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the authenticated user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := zammad.GetAuthenticatedUser(cmd.Context(), client)
		if err != nil {
			return fmt.Errorf("failed to get authenticated user: %w", err)
		}
		return printUser(cmd.OutOrStdout(), u)
	},
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	Long:  `List all users visible to the authenticated user. Without admin permission this is only your own account.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := zammad.ListUsers(cmd.Context(), client)
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}
		return printUsers(cmd.OutOrStdout(), users)
	},
}

var usersShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := zammad.GetUser(cmd.Context(), client, args[0])
		if err != nil {
			return fmt.Errorf("failed to get user %s: %w", args[0], err)
		}
		return printUser(cmd.OutOrStdout(), u)
	},
}

var usersSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search users",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := zammad.SearchUsers(cmd.Context(), client, args[0])
		if err != nil {
			return fmt.Errorf("failed to search users: %w", err)
		}
		return printUsers(cmd.OutOrStdout(), users)
	},
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user",
	Args:  cobra.NoArgs,
	RunE:  runUsersCreate,
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersDelete,
}

func init() {
	usersCreateCmd.Flags().String("firstname", "", "first name (required)")
	usersCreateCmd.Flags().String("lastname", "", "last name (required)")
	usersCreateCmd.Flags().String("email", "", "email address")
	usersCreateCmd.Flags().String("note", "", "note")
	usersCreateCmd.Flags().Int("organization-id", 0, "organization id, requires --organization")
	usersCreateCmd.Flags().String("organization", "", "organization name, requires --organization-id")
	usersCreateCmd.MarkFlagsRequiredTogether("organization-id", "organization")

	usersCmd.AddCommand(usersMeCmd, usersListCmd, usersShowCmd, usersSearchCmd, usersCreateCmd, usersDeleteCmd)
	rootCmd.AddCommand(usersCmd)
}

func runUsersCreate(cmd *cobra.Command, args []string) error {
	firstname, _ := cmd.Flags().GetString("firstname")
	lastname, _ := cmd.Flags().GetString("lastname")

	u, err := zammad.CreateUser(cmd.Context(), client, zammad.UserCreateOptions{
		Firstname:        firstname,
		Lastname:         lastname,
		Email:            optionalString(cmd, "email"),
		Note:             optionalString(cmd, "note"),
		OrganizationID:   optionalInt(cmd, "organization-id"),
		OrganizationName: optionalString(cmd, "organization"),
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info().Int("id", u.ID).Str("name", u.FullName()).Msg("User created")
	return printUser(cmd.OutOrStdout(), u)
}

func runUsersDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	u, err := zammad.GetUser(ctx, client, args[0])
	if err != nil {
		return fmt.Errorf("failed to get user %s: %w", args[0], err)
	}

	if !confirm(cmd, fmt.Sprintf("Delete user %s (ID: %d)?", u.FullName(), u.ID)) {
		logger.Info().Msg("Deletion cancelled")
		return nil
	}

	if err := u.Delete(ctx, client); err != nil {
		return fmt.Errorf("failed to delete user %d: %w", u.ID, err)
	}

	logger.Info().Int("id", u.ID).Msg("User deleted")
	return nil
}

func printUser(w io.Writer, u *zammad.User) error {
	if jsonOutput {
		return printJSON(w, u)
	}

	fmt.Fprintf(w, "%s (ID: %d)\n", u.FullName(), u.ID)
	fmt.Fprintf(w, "  Email: %s\n", deref(u.Email, "-"))
	if u.OrganizationName != nil {
		fmt.Fprintf(w, "  Organization: %s\n", *u.OrganizationName)
	}
	if u.Note != nil && *u.Note != "" {
		fmt.Fprintf(w, "  Note: %s\n", *u.Note)
	}
	fmt.Fprintf(w, "  Created: %s\n", u.CreatedAt)
	fmt.Fprintf(w, "  Updated: %s\n", u.UpdatedAt)
	return nil
}

func printUsers(w io.Writer, users []*zammad.User) error {
	if jsonOutput {
		return printJSON(w, users)
	}

	if len(users) == 0 {
		fmt.Fprintln(w, "No users found.")
		return nil
	}

	fmt.Fprintf(w, "\nFound %d users:\n", len(users))
	separator(w)
	for _, u := range users {
		fmt.Fprintf(w, "• %-6d %s <%s>\n", u.ID, u.FullName(), deref(u.Email, "no email"))
	}
	return nil
}
