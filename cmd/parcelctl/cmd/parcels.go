package cmd

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rowneywebster/joyful-cargoparcels/pkg/backoffice"
	"github.com/rowneywebster/joyful-cargoparcels/pkg/clierror"
	"github.com/rowneywebster/joyful-cargoparcels/pkg/routeguard"
)

func init() {
	rootCmd.AddCommand(parcelsCmd)
	parcelsCmd.AddCommand(parcelsListCmd)
	parcelsCmd.AddCommand(parcelsGetCmd)
	parcelsCmd.AddCommand(parcelsCreateCmd)
	parcelsCmd.AddCommand(parcelsUpdateCmd)
	parcelsCmd.AddCommand(parcelsStatusCmd)
	parcelsCmd.AddCommand(parcelsDeleteCmd)
	parcelsCmd.AddCommand(parcelsOverdueCmd)
	parcelsCmd.AddCommand(parcelsStatsCmd)

	parcelsListCmd.Flags().Int("page", 0, "Page number")
	parcelsListCmd.Flags().Int("limit", 0, "Page size")
	parcelsListCmd.Flags().String("status", "", "Filter by status: pending, paid, postponed, cancelled, overdue")
	parcelsListCmd.Flags().String("search", "", "Search customer name, phone, or product")

	addParcelInputFlags(parcelsCreateCmd)
	addParcelInputFlags(parcelsUpdateCmd)

	parcelsStatusCmd.Flags().String("notes", "", "Postponement notes (required when status is postponed)")
}

func addParcelInputFlags(cmd *cobra.Command) {
	cmd.Flags().String("customer", "", "Customer name")
	cmd.Flags().String("phone", "", "Customer phone")
	cmd.Flags().String("alt-phone", "", "Alternate phone")
	cmd.Flags().String("product", "", "Product description")
	cmd.Flags().String("destination", "", "Delivery destination")
	cmd.Flags().Float64("amount", 0, "Expected amount")
	cmd.Flags().String("courier", "", "Courier name")
}

var parcelsCmd = &cobra.Command{
	Use:   "parcels",
	Short: "Manage parcels",
	Long:  "Commands to list, create, update, and track delivery parcels.",
}

var statusColors = map[backoffice.ParcelStatus]*color.Color{
	backoffice.StatusPending:   color.New(color.FgYellow),
	backoffice.StatusPaid:      color.New(color.FgGreen),
	backoffice.StatusPostponed: color.New(color.FgCyan),
	backoffice.StatusCancelled: color.New(color.FgHiBlack),
	backoffice.StatusOverdue:   color.New(color.FgRed),
}

func colorStatus(s backoffice.ParcelStatus) string {
	if c, ok := statusColors[s]; ok {
		return c.Sprint(string(s))
	}
	return string(s)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, clierror.Validation(fmt.Sprintf("invalid id %q", arg))
	}
	return id, nil
}

var parcelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List parcels",
	Long: `List parcels with optional filtering and pagination.

Examples:
  parcelctl parcels list
  parcelctl parcels list --status pending --page 2 --limit 50
  parcelctl parcels list --search "mombasa"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := cmdContext()
		defer cancel()
		if err := requireRoute(ctx, routeguard.RouteParcels); err != nil {
			return err
		}

		page, _ := cmd.Flags().GetInt("page")
		limit, _ := cmd.Flags().GetInt("limit")
		status, _ := cmd.Flags().GetString("status")
		search, _ := cmd.Flags().GetString("search")

		if status != "" && !backoffice.ParcelStatus(status).Valid() {
			return clierror.Validation(fmt.Sprintf("unknown status %q", status))
		}

		parcels, meta, err := office.ListParcels(ctx, backoffice.ParcelListOptions{
			Page:   page,
			Limit:  limit,
			Status: backoffice.ParcelStatus(status),
			Search: search,
		})
		if err != nil {
			return err
		}

		if outputFormat != "table" {
			return formatOutput(map[string]any{"parcels": parcels, "meta": meta})
		}

		if len(parcels) == 0 {
			fmt.Println("No parcels found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCUSTOMER\tPHONE\tPRODUCT\tDESTINATION\tAMOUNT\tSTATUS\tCREATED BY")
		for _, p := range parcels {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%.2f\t%s\t%s\n",
				p.ID, p.CustomerName, p.Phone, p.Product, p.Destination,
				p.ExpectedAmount, colorStatus(p.Status), p.CreatorName)
		}
		w.Flush()
		if meta.Pages > 1 {
			fmt.Printf("\nPage %d of %d (%d total)\n", meta.Page, meta.Pages, meta.Total)
		}
		return nil
	},
}

var parcelsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a parcel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := cmdContext()
		defer cancel()
		if err := requireRoute(ctx, routeguard.RouteParcels); err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		parcel, err := office.GetParcel(ctx, id)
		if err != nil {
			return err
		}

		if outputFormat != "table" {
			return formatOutput(parcel)
		}
		printParcel(parcel)
		return nil
	},
}

func printParcel(p *backoffice.Parcel) {
	fmt.Printf("ID:          %d\n", p.ID)
	fmt.Printf("Customer:    %s\n", p.CustomerName)
	fmt.Printf("Phone:       %s\n", p.Phone)
	if p.AltPhone != "" {
		fmt.Printf("Alt phone:   %s\n", p.AltPhone)
	}
	fmt.Printf("Product:     %s\n", p.Product)
	fmt.Printf("Destination: %s\n", p.Destination)
	fmt.Printf("Amount:      %.2f\n", p.ExpectedAmount)
	if p.Courier != "" {
		fmt.Printf("Courier:     %s\n", p.Courier)
	}
	fmt.Printf("Status:      %s\n", colorStatus(p.Status))
	fmt.Printf("Created by:  %s\n", p.CreatorName)
	fmt.Printf("Created at:  %s\n", p.CreatedAt)
}

var parcelsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a parcel",
	Long: `Create a new parcel. New parcels start in pending status.

Examples:
  parcelctl parcels create --customer "Jane Wanjiru" --phone 0712345678 \
    --product "Shoes" --destination "Nakuru" --amount 2500`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := cmdContext()
		defer cancel()
		if err := requireRoute(ctx, routeguard.RouteParcels); err != nil {
			return err
		}

		in, err := parcelInputFromFlags(cmd)
		if err != nil {
			return err
		}
		parcel, err := office.CreateParcel(ctx, in)
		if err != nil {
			return err
		}

		if outputFormat != "table" {
			return formatOutput(parcel)
		}
		fmt.Printf("Created parcel %d for %s\n", parcel.ID, parcel.CustomerName)
		return nil
	},
}

func parcelInputFromFlags(cmd *cobra.Command) (backoffice.ParcelInput, error) {
	customer, _ := cmd.Flags().GetString("customer")
	phone, _ := cmd.Flags().GetString("phone")
	altPhone, _ := cmd.Flags().GetString("alt-phone")
	product, _ := cmd.Flags().GetString("product")
	destination, _ := cmd.Flags().GetString("destination")
	amount, _ := cmd.Flags().GetFloat64("amount")
	courier, _ := cmd.Flags().GetString("courier")

	if customer == "" || phone == "" || product == "" || destination == "" {
		return backoffice.ParcelInput{}, clierror.Validation("customer, phone, product, and destination are required")
	}
	if amount <= 0 {
		return backoffice.ParcelInput{}, clierror.Validation("amount must be positive")
	}

	return backoffice.ParcelInput{
		CustomerName:   customer,
		Phone:          phone,
		AltPhone:       altPhone,
		Product:        product,
		Destination:    destination,
		ExpectedAmount: amount,
		Courier:        courier,
	}, nil
}

var parcelsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a parcel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := cmdContext()
		defer cancel()
		if err := requireRoute(ctx, routeguard.RouteParcels); err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		in, err := parcelInputFromFlags(cmd)
		if err != nil {
			return err
		}
		parcel, err := office.UpdateParcel(ctx, id, in)
		if err != nil {
			return err
		}

		if outputFormat != "table" {
			return formatOutput(parcel)
		}
		fmt.Printf("Updated parcel %d\n", parcel.ID)
		return nil
	},
}

var parcelsStatusCmd = &cobra.Command{
	Use:   "status <id> <status>",
	Short: "Change a parcel's status",
	Long: `Move a parcel to a new delivery status.

Setting status to postponed creates a postponed order for the parcel;
notes are required. Resolving the postponed order later returns the
parcel to pending.

Examples:
  parcelctl parcels status 42 paid
  parcelctl parcels status 42 postponed --notes "customer traveling"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := cmdContext()
		defer cancel()
		if err := requireRoute(ctx, routeguard.RouteParcels); err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		status := backoffice.ParcelStatus(args[1])
		if !status.Valid() {
			return clierror.Validation(fmt.Sprintf("unknown status %q", args[1]))
		}
		notes, _ := cmd.Flags().GetString("notes")
		if status == backoffice.StatusPostponed && notes == "" {
			return clierror.Validation("--notes is required when postponing a parcel")
		}

		parcel, err := office.UpdateParcelStatus(ctx, id, status, notes)
		if err != nil {
			return err
		}

		if outputFormat != "table" {
			return formatOutput(parcel)
		}
		fmt.Printf("Parcel %d is now %s\n", parcel.ID, colorStatus(parcel.Status))
		return nil
	},
}

var parcelsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a parcel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := cmdContext()
		defer cancel()
		if err := requireRoute(ctx, routeguard.RouteParcels); err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := office.DeleteParcel(ctx, id); err != nil {
			return err
		}
		fmt.Printf("Deleted parcel %d\n", id)
		return nil
	},
}

var parcelsOverdueCmd = &cobra.Command{
	Use:   "overdue",
	Short: "List overdue parcels",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := cmdContext()
		defer cancel()
		if err := requireRoute(ctx, routeguard.RouteParcels); err != nil {
			return err
		}

		parcels, err := office.OverdueParcels(ctx)
		if err != nil {
			return err
		}

		if outputFormat != "table" {
			return formatOutput(parcels)
		}
		if len(parcels) == 0 {
			fmt.Println("No overdue parcels.")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCUSTOMER\tPHONE\tDESTINATION\tAMOUNT\tCREATED AT")
		for _, p := range parcels {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.2f\t%s\n",
				p.ID, p.CustomerName, p.Phone, p.Destination, p.ExpectedAmount, p.CreatedAt)
		}
		w.Flush()
		return nil
	},
}

var parcelsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-status parcel counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := cmdContext()
		defer cancel()
		if err := requireRoute(ctx, routeguard.RouteParcels); err != nil {
			return err
		}

		stats, err := office.ParcelStats(ctx)
		if err != nil {
			return err
		}

		if outputFormat != "table" {
			return formatOutput(stats)
		}
		fmt.Printf("Pending:   %d\n", stats.Pending)
		fmt.Printf("Paid:      %d\n", stats.Paid)
		fmt.Printf("Cancelled: %d\n", stats.Cancelled)
		return nil
	},
}
