package backoffice

import (
	"context"
	"fmt"

	"github.com/rowneywebster/joyful-cargoparcels/pkg/authapi"
)

// Account is a back-office user as seen by the admin user-management
// surface.
type Account struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Phone     string       `json:"phone,omitempty"`
	Role      authapi.Role `json:"role"`
	CreatedAt string       `json:"created_at"`
}

// AccountInput is the payload for creating an account. Password is
// required on create and ignored on update unless set.
type AccountInput struct {
	Name     string       `json:"name"`
	Email    string       `json:"email"`
	Phone    string       `json:"phone,omitempty"`
	Role     authapi.Role `json:"role,omitempty"`
	Password string       `json:"password,omitempty"`
}

// ListAccounts returns all back-office accounts.
func (c *Client) ListAccounts(ctx context.Context) ([]Account, error) {
	var accounts []Account
	if err := c.api.Get(ctx, "/users", nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// GetAccount fetches a single account.
func (c *Client) GetAccount(ctx context.Context, id int64) (*Account, error) {
	var account Account
	if err := c.api.Get(ctx, fmt.Sprintf("/users/%d", id), nil, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// CreateAccount registers a new account. Admin only.
func (c *Client) CreateAccount(ctx context.Context, in AccountInput) (*Account, error) {
	var account Account
	if err := c.api.Post(ctx, "/users", in, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// UpdateAccount updates name, phone and optionally the password.
func (c *Client) UpdateAccount(ctx context.Context, id int64, in AccountInput) (*Account, error) {
	var account Account
	if err := c.api.Put(ctx, fmt.Sprintf("/users/%d", id), in, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

type roleUpdate struct {
	Role authapi.Role `json:"role"`
}

// UpdateAccountRole changes an account's role. Admin only.
func (c *Client) UpdateAccountRole(ctx context.Context, id int64, role authapi.Role) (*Account, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role %q", role)
	}
	var account Account
	if err := c.api.Patch(ctx, fmt.Sprintf("/users/%d/role", id), roleUpdate{Role: role}, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// DeleteAccount removes an account. The backend refuses when the
// account still owns expenses. Admin only.
func (c *Client) DeleteAccount(ctx context.Context, id int64) error {
	return c.api.Delete(ctx, fmt.Sprintf("/users/%d", id))
}
