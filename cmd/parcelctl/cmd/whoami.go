package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// WhoamiOutput represents the JSON/YAML output for whoami command.
type WhoamiOutput struct {
	ID        int64     `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Email     string    `json:"email" yaml:"email"`
	Role      string    `json:"role" yaml:"role"`
	ExpiresAt time.Time `json:"expires_at" yaml:"expires_at"`
	ServerURL string    `json:"server_url" yaml:"server_url"`
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Long: `Display the signed-in user from the current session.

Returns a non-zero exit code if not signed in.

Examples:
  parcelctl whoami
  parcelctl whoami -o json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := cmdContext()
		defer cancel()

		if err := requireSession(ctx); err != nil {
			return err
		}
		sess := sessions.Current()

		output := WhoamiOutput{
			ID:        sess.User.ID,
			Name:      sess.User.Name,
			Email:     sess.User.Email,
			Role:      string(sess.User.Role),
			ExpiresAt: sess.ExpiresAt,
			ServerURL: cfg.ServerURL,
		}

		if outputFormat != "table" {
			return formatOutput(output)
		}

		fmt.Printf("User:    %s <%s>\n", output.Name, output.Email)
		fmt.Printf("Role:    %s\n", output.Role)
		fmt.Printf("Expires: %s\n", output.ExpiresAt.Format(time.RFC3339))
		fmt.Printf("Server:  %s\n", output.ServerURL)
		return nil
	},
}
