package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rowneywebster/joyful-cargoparcels/pkg/routeguard"
)

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsUpdateCmd)

	settingsUpdateCmd.Flags().String("name", "", "Business name")
	settingsUpdateCmd.Flags().String("contact", "", "Contact info")
	settingsUpdateCmd.Flags().String("address", "", "Business address")
	settingsUpdateCmd.Flags().String("logo-url", "", "Logo URL")
	settingsUpdateCmd.Flags().String("currency", "", "Display currency")
	settingsUpdateCmd.Flags().String("timezone", "", "Timezone")
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Business settings",
	Long:  "Commands to view and change company-wide presentation settings.",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show business settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := cmdContext()
		defer cancel()
		if err := requireRoute(ctx, routeguard.RouteSettings); err != nil {
			return err
		}

		settings, err := office.GetBusinessSettings(ctx)
		if err != nil {
			return err
		}

		if outputFormat != "table" {
			return formatOutput(settings)
		}
		fmt.Printf("Business: %s\n", settings.BusinessName)
		fmt.Printf("Contact:  %s\n", settings.ContactInfo)
		fmt.Printf("Address:  %s\n", settings.Address)
		if settings.LogoURL != "" {
			fmt.Printf("Logo:     %s\n", settings.LogoURL)
		}
		fmt.Printf("Currency: %s\n", settings.Currency)
		fmt.Printf("Timezone: %s\n", settings.Timezone)
		return nil
	},
}

var settingsUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update business settings (admin only)",
	Long: `Update company-wide settings. Only the provided flags change;
omitted fields keep their current value.

Examples:
  parcelctl settings update --name "Joyful Cargo" --currency KES`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := cmdContext()
		defer cancel()
		if err := requireRoute(ctx, routeguard.RouteAdminSettings); err != nil {
			return err
		}

		current, err := office.GetBusinessSettings(ctx)
		if err != nil {
			return err
		}

		in := *current
		applyStringFlag(cmd, "name", &in.BusinessName)
		applyStringFlag(cmd, "contact", &in.ContactInfo)
		applyStringFlag(cmd, "address", &in.Address)
		applyStringFlag(cmd, "logo-url", &in.LogoURL)
		applyStringFlag(cmd, "currency", &in.Currency)
		applyStringFlag(cmd, "timezone", &in.Timezone)

		settings, err := office.UpdateBusinessSettings(ctx, in)
		if err != nil {
			return err
		}

		if outputFormat != "table" {
			return formatOutput(settings)
		}
		fmt.Println("Settings updated")
		return nil
	},
}

func applyStringFlag(cmd *cobra.Command, flag string, target *string) {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetString(flag)
		*target = v
	}
}
