package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringP("password", "p", "", "Password (prompted if omitted)")
}

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Sign in to the back office",
	Long: `Authenticate against the back-office API and store the session
locally. Subsequent commands reuse the stored session and refresh it
automatically.

Examples:
  parcelctl login dispatcher@example.com
  parcelctl login admin@example.com -p 'secret'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email := args[0]
		password, _ := cmd.Flags().GetString("password")
		if password == "" {
			fmt.Fprint(os.Stderr, "Password: ")
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			password = strings.TrimRight(line, "\r\n")
		}

		ctx, cancel := cmdContext()
		defer cancel()

		// Restore any prior session first so a re-login replaces it
		// cleanly. Initialization failures don't block a fresh login.
		_ = sessions.Initialize(ctx)

		if err := sessions.Login(ctx, email, password); err != nil {
			return err
		}

		sess := sessions.Current()
		if outputFormat != "table" {
			return formatOutput(map[string]any{
				"user":       sess.User,
				"expires_at": sess.ExpiresAt,
			})
		}
		fmt.Printf("Logged in as %s (%s)\n", sess.User.Name, sess.User.Role)
		return nil
	},
}
