package backoffice

import (
	"context"
	"fmt"
)

// PostponedOrder is a deferred delivery linked one-to-one with a
// parcel. Unresolved orders are the working set; resolving one puts
// its parcel back to pending.
type PostponedOrder struct {
	ID              int64   `json:"id"`
	ParcelID        int64   `json:"parcel_id"`
	ParcelDetails   *Parcel `json:"parcel_details,omitempty"`
	NewDeliveryDate *string `json:"new_delivery_date"`
	Notes           string  `json:"notes,omitempty"`
	IsResolved      bool    `json:"is_resolved"`
	CreatedAt       string  `json:"created_at"`
}

// PostponedOrderUpdate reschedules or annotates a postponed order.
// Nil fields are left unchanged.
type PostponedOrderUpdate struct {
	NewDeliveryDate *string `json:"new_delivery_date,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// PostponedStats is the count of unresolved postponed orders.
type PostponedStats struct {
	ActivePostponed int `json:"active_postponed"`
}

// ListPostponedOrders returns every unresolved postponed order.
func (c *Client) ListPostponedOrders(ctx context.Context) ([]PostponedOrder, error) {
	var orders []PostponedOrder
	if err := c.api.Get(ctx, "/postponed", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetPostponedOrder fetches a single postponed order.
func (c *Client) GetPostponedOrder(ctx context.Context, id int64) (*PostponedOrder, error) {
	var order PostponedOrder
	if err := c.api.Get(ctx, fmt.Sprintf("/postponed/%d", id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdatePostponedOrder reschedules or annotates a postponed order.
func (c *Client) UpdatePostponedOrder(ctx context.Context, id int64, in PostponedOrderUpdate) (*PostponedOrder, error) {
	var order PostponedOrder
	if err := c.api.Put(ctx, fmt.Sprintf("/postponed/%d", id), in, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ResolvePostponedOrder marks the order resolved; the backend returns
// its parcel to pending.
func (c *Client) ResolvePostponedOrder(ctx context.Context, id int64) (*PostponedOrder, error) {
	var order PostponedOrder
	if err := c.api.Patch(ctx, fmt.Sprintf("/postponed/%d/resolve", id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// PostponedStats returns the unresolved-order count.
func (c *Client) PostponedStats(ctx context.Context) (*PostponedStats, error) {
	var stats PostponedStats
	if err := c.api.Get(ctx, "/postponed/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
