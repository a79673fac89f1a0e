package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rowneywebster/joyful-cargoparcels/pkg/backoffice"
	"github.com/rowneywebster/joyful-cargoparcels/pkg/routeguard"
)

func init() {
	rootCmd.AddCommand(postponedCmd)
	postponedCmd.AddCommand(postponedListCmd)
	postponedCmd.AddCommand(postponedGetCmd)
	postponedCmd.AddCommand(postponedUpdateCmd)
	postponedCmd.AddCommand(postponedResolveCmd)
	postponedCmd.AddCommand(postponedStatsCmd)

	postponedUpdateCmd.Flags().String("date", "", "New delivery date (YYYY-MM-DD)")
	postponedUpdateCmd.Flags().String("notes", "", "Replacement notes")
}

var postponedCmd = &cobra.Command{
	Use:   "postponed",
	Short: "Manage postponed orders",
	Long: `Commands for deferred deliveries. A postponed order is created
when a parcel is moved to postponed status; resolving it returns the
parcel to pending.`,
}

var postponedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List unresolved postponed orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := cmdContext()
		defer cancel()
		if err := requireRoute(ctx, routeguard.RoutePostponedOrders); err != nil {
			return err
		}

		orders, err := office.ListPostponedOrders(ctx)
		if err != nil {
			return err
		}

		if outputFormat != "table" {
			return formatOutput(orders)
		}
		if len(orders) == 0 {
			fmt.Println("No postponed orders.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tPARCEL\tCUSTOMER\tNEW DATE\tNOTES")
		for _, o := range orders {
			customer := ""
			if o.ParcelDetails != nil {
				customer = o.ParcelDetails.CustomerName
			}
			date := "unscheduled"
			if o.NewDeliveryDate != nil {
				date = *o.NewDeliveryDate
			}
			fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\n", o.ID, o.ParcelID, customer, date, o.Notes)
		}
		w.Flush()
		return nil
	},
}

var postponedGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a postponed order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := cmdContext()
		defer cancel()
		if err := requireRoute(ctx, routeguard.RoutePostponedOrders); err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		order, err := office.GetPostponedOrder(ctx, id)
		if err != nil {
			return err
		}

		if outputFormat != "table" {
			return formatOutput(order)
		}
		printPostponedOrder(order)
		return nil
	},
}

func printPostponedOrder(o *backoffice.PostponedOrder) {
	fmt.Printf("ID:         %d\n", o.ID)
	fmt.Printf("Parcel:     %d\n", o.ParcelID)
	if o.ParcelDetails != nil {
		fmt.Printf("Customer:   %s (%s)\n", o.ParcelDetails.CustomerName, o.ParcelDetails.Phone)
		fmt.Printf("Product:    %s\n", o.ParcelDetails.Product)
	}
	if o.NewDeliveryDate != nil {
		fmt.Printf("New date:   %s\n", *o.NewDeliveryDate)
	} else {
		fmt.Printf("New date:   unscheduled\n")
	}
	if o.Notes != "" {
		fmt.Printf("Notes:      %s\n", o.Notes)
	}
	fmt.Printf("Resolved:   %t\n", o.IsResolved)
	fmt.Printf("Created at: %s\n", o.CreatedAt)
}

var postponedUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Reschedule or annotate a postponed order",
	Long: `Change the new delivery date or notes of a postponed order.
Only the provided flags change; omitted fields are left as they are.

Examples:
  parcelctl postponed update 7 --date 2026-09-15
  parcelctl postponed update 7 --notes "confirmed by phone"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := cmdContext()
		defer cancel()
		if err := requireRoute(ctx, routeguard.RoutePostponedOrders); err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		var in backoffice.PostponedOrderUpdate
		if cmd.Flags().Changed("date") {
			date, _ := cmd.Flags().GetString("date")
			in.NewDeliveryDate = &date
		}
		if cmd.Flags().Changed("notes") {
			notes, _ := cmd.Flags().GetString("notes")
			in.Notes = &notes
		}

		order, err := office.UpdatePostponedOrder(ctx, id, in)
		if err != nil {
			return err
		}

		if outputFormat != "table" {
			return formatOutput(order)
		}
		fmt.Printf("Updated postponed order %d\n", order.ID)
		return nil
	},
}

var postponedResolveCmd = &cobra.Command{
	Use:   "resolve <id>",
	Short: "Resolve a postponed order",
	Long: `Mark a postponed order as resolved. Its parcel returns to
pending status for another delivery attempt.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := cmdContext()
		defer cancel()
		if err := requireRoute(ctx, routeguard.RoutePostponedOrders); err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		order, err := office.ResolvePostponedOrder(ctx, id)
		if err != nil {
			return err
		}

		if outputFormat != "table" {
			return formatOutput(order)
		}
		fmt.Printf("Resolved postponed order %d; parcel %d back to pending\n", order.ID, order.ParcelID)
		return nil
	},
}

var postponedStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the count of unresolved postponed orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := cmdContext()
		defer cancel()
		if err := requireRoute(ctx, routeguard.RoutePostponedOrders); err != nil {
			return err
		}

		stats, err := office.PostponedStats(ctx)
		if err != nil {
			return err
		}

		if outputFormat != "table" {
			return formatOutput(stats)
		}
		fmt.Printf("Active postponed: %d\n", stats.ActivePostponed)
		return nil
	},
}
