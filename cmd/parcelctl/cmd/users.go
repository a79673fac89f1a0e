package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rowneywebster/joyful-cargoparcels/pkg/authapi"
	"github.com/rowneywebster/joyful-cargoparcels/pkg/backoffice"
	"github.com/rowneywebster/joyful-cargoparcels/pkg/clierror"
	"github.com/rowneywebster/joyful-cargoparcels/pkg/routeguard"
)

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersGetCmd)
	usersCmd.AddCommand(usersAddCmd)
	usersCmd.AddCommand(usersUpdateCmd)
	usersCmd.AddCommand(usersSetRoleCmd)
	usersCmd.AddCommand(usersDeleteCmd)

	addAccountInputFlags(usersAddCmd)
	usersAddCmd.Flags().String("password", "", "Initial password")
	addAccountInputFlags(usersUpdateCmd)
	usersUpdateCmd.Flags().String("password", "", "Reset the account password")
}

func addAccountInputFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Display name")
	cmd.Flags().String("email", "", "Email address")
	cmd.Flags().String("phone", "", "Phone number")
	cmd.Flags().String("role", "user", "Role: admin or user")
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage back-office accounts (admin only)",
	Long:  "Commands to create, update, and remove back-office user accounts.",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := cmdContext()
		defer cancel()
		if err := requireRoute(ctx, routeguard.RouteUsers); err != nil {
			return err
		}

		accounts, err := office.ListAccounts(ctx)
		if err != nil {
			return err
		}

		if outputFormat != "table" {
			return formatOutput(accounts)
		}
		if len(accounts) == 0 {
			fmt.Println("No accounts.")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE\tROLE\tCREATED AT")
		for _, a := range accounts {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
				a.ID, a.Name, a.Email, a.Phone, a.Role, a.CreatedAt)
		}
		w.Flush()
		return nil
	},
}

var usersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := cmdContext()
		defer cancel()
		if err := requireRoute(ctx, routeguard.RouteUsers); err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		account, err := office.GetAccount(ctx, id)
		if err != nil {
			return err
		}

		if outputFormat != "table" {
			return formatOutput(account)
		}
		fmt.Printf("ID:         %d\n", account.ID)
		fmt.Printf("Name:       %s\n", account.Name)
		fmt.Printf("Email:      %s\n", account.Email)
		if account.Phone != "" {
			fmt.Printf("Phone:      %s\n", account.Phone)
		}
		fmt.Printf("Role:       %s\n", account.Role)
		fmt.Printf("Created at: %s\n", account.CreatedAt)
		return nil
	},
}

func accountInputFromFlags(cmd *cobra.Command) (backoffice.AccountInput, error) {
	name, _ := cmd.Flags().GetString("name")
	email, _ := cmd.Flags().GetString("email")
	phone, _ := cmd.Flags().GetString("phone")
	role, _ := cmd.Flags().GetString("role")

	if name == "" || email == "" {
		return backoffice.AccountInput{}, clierror.Validation("name and email are required")
	}
	if !authapi.Role(role).Valid() {
		return backoffice.AccountInput{}, clierror.Validation(fmt.Sprintf("unknown role %q", role))
	}

	return backoffice.AccountInput{
		Name:  name,
		Email: email,
		Phone: phone,
		Role:  authapi.Role(role),
	}, nil
}

var usersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create an account",
	Long: `Create a new back-office account.

Examples:
  parcelctl users add --name "Amos Otieno" --email amos@example.com \
    --password 'changeme' --role user`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := cmdContext()
		defer cancel()
		if err := requireRoute(ctx, routeguard.RouteUsers); err != nil {
			return err
		}

		in, err := accountInputFromFlags(cmd)
		if err != nil {
			return err
		}
		in.Password, _ = cmd.Flags().GetString("password")
		if in.Password == "" {
			return clierror.Validation("--password is required")
		}

		account, err := office.CreateAccount(ctx, in)
		if err != nil {
			return err
		}

		if outputFormat != "table" {
			return formatOutput(account)
		}
		fmt.Printf("Created account %d for %s (%s)\n", account.ID, account.Name, account.Role)
		return nil
	},
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an account",
	Long: `Update an account's details. Passing --password resets the
account password.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := cmdContext()
		defer cancel()
		if err := requireRoute(ctx, routeguard.RouteUsers); err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		in, err := accountInputFromFlags(cmd)
		if err != nil {
			return err
		}
		in.Password, _ = cmd.Flags().GetString("password")
		account, err := office.UpdateAccount(ctx, id, in)
		if err != nil {
			return err
		}

		if outputFormat != "table" {
			return formatOutput(account)
		}
		fmt.Printf("Updated account %d\n", account.ID)
		return nil
	},
}

var usersSetRoleCmd = &cobra.Command{
	Use:   "set-role <id> <role>",
	Short: "Change an account's role",
	Long: `Change an account's role to admin or user.

Examples:
  parcelctl users set-role 5 admin`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := cmdContext()
		defer cancel()
		if err := requireRoute(ctx, routeguard.RouteUsers); err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		role := authapi.Role(args[1])
		if !role.Valid() {
			return clierror.Validation(fmt.Sprintf("unknown role %q", args[1]))
		}

		account, err := office.UpdateAccountRole(ctx, id, role)
		if err != nil {
			return err
		}

		if outputFormat != "table" {
			return formatOutput(account)
		}
		fmt.Printf("Account %d is now %s\n", account.ID, account.Role)
		return nil
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := cmdContext()
		defer cancel()
		if err := requireRoute(ctx, routeguard.RouteUsers); err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := office.DeleteAccount(ctx, id); err != nil {
			return err
		}
		fmt.Printf("Deleted account %d\n", id)
		return nil
	},
}
