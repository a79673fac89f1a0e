package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(logoutCmd)
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the stored session",
	Long: `Invalidate the session on the backend and remove the locally
stored credentials. Local state is cleared even when the backend
cannot be reached.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := cmdContext()
		defer cancel()

		_ = sessions.Initialize(ctx)

		if err := sessions.Logout(ctx); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: backend logout failed (%v), local session cleared\n", err)
			return nil
		}
		fmt.Println("Logged out")
		return nil
	},
}
