package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rowneywebster/joyful-cargoparcels/pkg/backoffice"
	"github.com/rowneywebster/joyful-cargoparcels/pkg/clierror"
	"github.com/rowneywebster/joyful-cargoparcels/pkg/routeguard"
)

func init() {
	rootCmd.AddCommand(expensesCmd)
	expensesCmd.AddCommand(expensesListCmd)
	expensesCmd.AddCommand(expensesGetCmd)
	expensesCmd.AddCommand(expensesAddCmd)
	expensesCmd.AddCommand(expensesUpdateCmd)
	expensesCmd.AddCommand(expensesDeleteCmd)
	expensesCmd.AddCommand(expensesCategoriesCmd)

	addExpenseInputFlags(expensesAddCmd)
	addExpenseInputFlags(expensesUpdateCmd)
}

func addExpenseInputFlags(cmd *cobra.Command) {
	cmd.Flags().Int64("category", 0, "Expense category id")
	cmd.Flags().Float64("amount", 0, "Amount")
	cmd.Flags().String("description", "", "Description")
	cmd.Flags().String("date", "", "Date (YYYY-MM-DD, defaults to today)")
}

var expensesCmd = &cobra.Command{
	Use:   "expenses",
	Short: "Manage operating expenses",
	Long:  "Commands to record and review operating cost entries.",
}

var expensesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List expenses",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := cmdContext()
		defer cancel()
		if err := requireRoute(ctx, routeguard.RouteExpenses); err != nil {
			return err
		}

		expenses, err := office.ListExpenses(ctx)
		if err != nil {
			return err
		}

		if outputFormat != "table" {
			return formatOutput(expenses)
		}
		if len(expenses) == 0 {
			fmt.Println("No expenses recorded.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCATEGORY\tAMOUNT\tDESCRIPTION\tDATE\tRECORDED BY")
		var total float64
		for _, e := range expenses {
			fmt.Fprintf(w, "%d\t%s\t%.2f\t%s\t%s\t%s\n",
				e.ID, e.CategoryName, e.Amount, e.Description, e.Date, e.UserName)
			total += e.Amount
		}
		w.Flush()
		fmt.Printf("\nTotal: %.2f\n", total)
		return nil
	},
}

var expensesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show an expense",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := cmdContext()
		defer cancel()
		if err := requireRoute(ctx, routeguard.RouteExpenses); err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		expense, err := office.GetExpense(ctx, id)
		if err != nil {
			return err
		}

		if outputFormat != "table" {
			return formatOutput(expense)
		}
		fmt.Printf("ID:          %d\n", expense.ID)
		fmt.Printf("Category:    %s\n", expense.CategoryName)
		fmt.Printf("Amount:      %.2f\n", expense.Amount)
		if expense.Description != "" {
			fmt.Printf("Description: %s\n", expense.Description)
		}
		fmt.Printf("Date:        %s\n", expense.Date)
		fmt.Printf("Recorded by: %s\n", expense.UserName)
		return nil
	},
}

func expenseInputFromFlags(cmd *cobra.Command) (backoffice.ExpenseInput, error) {
	category, _ := cmd.Flags().GetInt64("category")
	amount, _ := cmd.Flags().GetFloat64("amount")
	description, _ := cmd.Flags().GetString("description")
	date, _ := cmd.Flags().GetString("date")

	if category <= 0 {
		return backoffice.ExpenseInput{}, clierror.Validation("--category is required")
	}
	if amount <= 0 {
		return backoffice.ExpenseInput{}, clierror.Validation("amount must be positive")
	}

	return backoffice.ExpenseInput{
		CategoryID:  category,
		Amount:      amount,
		Description: description,
		Date:        date,
	}, nil
}

var expensesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record an expense",
	Long: `Record a new operating expense.

Examples:
  parcelctl expenses add --category 3 --amount 1200 --description "fuel"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := cmdContext()
		defer cancel()
		if err := requireRoute(ctx, routeguard.RouteExpenses); err != nil {
			return err
		}

		in, err := expenseInputFromFlags(cmd)
		if err != nil {
			return err
		}
		expense, err := office.CreateExpense(ctx, in)
		if err != nil {
			return err
		}

		if outputFormat != "table" {
			return formatOutput(expense)
		}
		fmt.Printf("Recorded expense %d (%.2f, %s)\n", expense.ID, expense.Amount, expense.CategoryName)
		return nil
	},
}

var expensesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an expense",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := cmdContext()
		defer cancel()
		if err := requireRoute(ctx, routeguard.RouteExpenses); err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		in, err := expenseInputFromFlags(cmd)
		if err != nil {
			return err
		}
		expense, err := office.UpdateExpense(ctx, id, in)
		if err != nil {
			return err
		}

		if outputFormat != "table" {
			return formatOutput(expense)
		}
		fmt.Printf("Updated expense %d\n", expense.ID)
		return nil
	},
}

var expensesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an expense",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := cmdContext()
		defer cancel()
		if err := requireRoute(ctx, routeguard.RouteExpenses); err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := office.DeleteExpense(ctx, id); err != nil {
			return err
		}
		fmt.Printf("Deleted expense %d\n", id)
		return nil
	},
}

var expensesCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List expense categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := cmdContext()
		defer cancel()
		if err := requireRoute(ctx, routeguard.RouteExpenses); err != nil {
			return err
		}

		categories, err := office.ListExpenseCategories(ctx)
		if err != nil {
			return err
		}

		if outputFormat != "table" {
			return formatOutput(categories)
		}
		if len(categories) == 0 {
			fmt.Println("No expense categories.")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME")
		for _, c := range categories {
			fmt.Fprintf(w, "%d\t%s\n", c.ID, c.Name)
		}
		w.Flush()
		return nil
	},
}
