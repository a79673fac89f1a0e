package backoffice

import (
	"context"
	"fmt"
)

// Expense is an operating cost entry.
type Expense struct {
	ID           int64   `json:"id"`
	CategoryID   int64   `json:"category_id"`
	CategoryName string  `json:"category_name"`
	UserID       int64   `json:"user_id"`
	UserName     string  `json:"user_name"`
	Description  string  `json:"description,omitempty"`
	Amount       float64 `json:"amount"`
	Date         string  `json:"date"`
}

// ExpenseInput is the payload for creating or updating an expense.
// Date is ISO 8601; empty means "now" on create.
type ExpenseInput struct {
	CategoryID  int64   `json:"category_id"`
	Description string  `json:"description,omitempty"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date,omitempty"`
}

// ExpenseCategory is a named expense bucket.
type ExpenseCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ListExpenses returns all expenses.
func (c *Client) ListExpenses(ctx context.Context) ([]Expense, error) {
	var expenses []Expense
	if err := c.api.Get(ctx, "/expenses", nil, &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

// GetExpense fetches a single expense.
func (c *Client) GetExpense(ctx context.Context, id int64) (*Expense, error) {
	var expense Expense
	if err := c.api.Get(ctx, fmt.Sprintf("/expenses/%d", id), nil, &expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

// CreateExpense records a new expense.
func (c *Client) CreateExpense(ctx context.Context, in ExpenseInput) (*Expense, error) {
	var expense Expense
	if err := c.api.Post(ctx, "/expenses", in, &expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

// UpdateExpense updates an existing expense.
func (c *Client) UpdateExpense(ctx context.Context, id int64, in ExpenseInput) (*Expense, error) {
	var expense Expense
	if err := c.api.Put(ctx, fmt.Sprintf("/expenses/%d", id), in, &expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

// DeleteExpense removes an expense.
func (c *Client) DeleteExpense(ctx context.Context, id int64) error {
	return c.api.Delete(ctx, fmt.Sprintf("/expenses/%d", id))
}

// ListExpenseCategories returns the expense category catalogue.
func (c *Client) ListExpenseCategories(ctx context.Context) ([]ExpenseCategory, error) {
	var categories []ExpenseCategory
	if err := c.api.Get(ctx, "/expense-categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
