package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rowneywebster/joyful-cargoparcels/pkg/routeguard"
)

func init() {
	rootCmd.AddCommand(dashboardCmd)
	dashboardCmd.AddCommand(dashboardOverviewCmd)
	dashboardCmd.AddCommand(dashboardRevenueCmd)
	dashboardCmd.AddCommand(dashboardStatsCmd)
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Dashboard summaries",
	Long:  "Commands for revenue and parcel load summaries.",
}

var dashboardOverviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Show the headline summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := cmdContext()
		defer cancel()
		if err := requireRoute(ctx, routeguard.RouteDashboard); err != nil {
			return err
		}

		overview, err := office.DashboardOverview(ctx)
		if err != nil {
			return err
		}

		if outputFormat != "table" {
			return formatOutput(overview)
		}
		fmt.Printf("Total revenue:   %.2f\n", overview.TotalRevenue)
		fmt.Printf("Month revenue:   %.2f\n", overview.MonthRevenue)
		fmt.Printf("Active parcels:  %d\n", overview.ActiveParcels)
		fmt.Printf("Overdue parcels: %d\n", overview.OverdueParcels)
		return nil
	},
}

var dashboardRevenueCmd = &cobra.Command{
	Use:   "revenue",
	Short: "Show the monthly revenue trend",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := cmdContext()
		defer cancel()
		if err := requireRoute(ctx, routeguard.RouteDashboard); err != nil {
			return err
		}

		points, err := office.RevenueTrend(ctx)
		if err != nil {
			return err
		}

		if outputFormat != "table" {
			return formatOutput(points)
		}
		if len(points) == 0 {
			fmt.Println("No revenue recorded.")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "MONTH\tREVENUE")
		for _, p := range points {
			fmt.Fprintf(w, "%s\t%.2f\n", p.Month, p.Revenue)
		}
		w.Flush()
		return nil
	},
}

var dashboardStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := cmdContext()
		defer cancel()
		if err := requireRoute(ctx, routeguard.RouteDashboard); err != nil {
			return err
		}

		stats, err := office.DashboardStats(ctx)
		if err != nil {
			return err
		}

		if outputFormat != "table" {
			return formatOutput(stats)
		}
		fmt.Printf("Total parcels:   %d\n", stats.TotalParcels)
		fmt.Printf("Pending parcels: %d\n", stats.PendingParcels)
		fmt.Printf("Paid parcels:    %d\n", stats.PaidParcels)
		fmt.Printf("Overdue parcels: %d\n", stats.OverdueParcels)
		fmt.Printf("Total expenses:  %.2f\n", stats.TotalExpenses)
		return nil
	},
}
