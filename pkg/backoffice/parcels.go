package backoffice

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/rowneywebster/joyful-cargoparcels/pkg/apiclient"
)

// ParcelStatus is the delivery lifecycle state of a parcel.
type ParcelStatus string

const (
	StatusPending   ParcelStatus = "pending"
	StatusPaid      ParcelStatus = "paid"
	StatusPostponed ParcelStatus = "postponed"
	StatusCancelled ParcelStatus = "cancelled"
	StatusOverdue   ParcelStatus = "overdue"
)

// Valid reports whether the status is one the backend accepts.
func (s ParcelStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusPostponed, StatusCancelled, StatusOverdue:
		return true
	}
	return false
}

// Parcel is a delivery record as returned by the backend.
type Parcel struct {
	ID             int64        `json:"id"`
	CustomerName   string       `json:"customer_name"`
	Phone          string       `json:"phone"`
	AltPhone       string       `json:"alt_phone,omitempty"`
	Product        string       `json:"product"`
	Destination    string       `json:"destination"`
	ExpectedAmount float64      `json:"expected_amount"`
	Courier        string       `json:"courier,omitempty"`
	Status         ParcelStatus `json:"status"`
	UserID         int64        `json:"user_id"`
	CreatorName    string       `json:"creator_name"`
	CreatedAt      string       `json:"created_at"`
	UpdatedAt      string       `json:"updated_at"`
}

// ParcelInput is the payload for creating or updating a parcel.
type ParcelInput struct {
	CustomerName   string       `json:"customer_name"`
	Phone          string       `json:"phone"`
	AltPhone       string       `json:"alt_phone,omitempty"`
	Product        string       `json:"product"`
	Destination    string       `json:"destination"`
	ExpectedAmount float64      `json:"expected_amount"`
	Courier        string       `json:"courier,omitempty"`
	Status         ParcelStatus `json:"status,omitempty"`
}

// ParcelListOptions are the list filters. Zero values are omitted.
type ParcelListOptions struct {
	Page   int
	Limit  int
	Status ParcelStatus
	Search string
}

// ParcelStats are the per-status parcel counts.
type ParcelStats struct {
	Pending   int `json:"pending"`
	Paid      int `json:"paid"`
	Cancelled int `json:"cancelled"`
}

// ListParcels returns one page of parcels with pagination meta.
func (c *Client) ListParcels(ctx context.Context, opts ParcelListOptions) ([]Parcel, apiclient.Meta, error) {
	query := url.Values{}
	if opts.Page > 0 {
		query.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Status != "" {
		query.Set("status", string(opts.Status))
	}
	if opts.Search != "" {
		query.Set("search", opts.Search)
	}

	var parcels []Parcel
	meta, err := c.api.GetWithMeta(ctx, "/parcels", query, &parcels)
	if err != nil {
		return nil, apiclient.Meta{}, err
	}
	return parcels, meta, nil
}

// GetParcel fetches a single parcel.
func (c *Client) GetParcel(ctx context.Context, id int64) (*Parcel, error) {
	var parcel Parcel
	if err := c.api.Get(ctx, fmt.Sprintf("/parcels/%d", id), nil, &parcel); err != nil {
		return nil, err
	}
	return &parcel, nil
}

// CreateParcel registers a new parcel.
func (c *Client) CreateParcel(ctx context.Context, in ParcelInput) (*Parcel, error) {
	var parcel Parcel
	if err := c.api.Post(ctx, "/parcels", in, &parcel); err != nil {
		return nil, err
	}
	return &parcel, nil
}

// UpdateParcel updates an existing parcel. Setting Status to
// StatusPostponed makes the backend materialize a postponed order for
// the parcel if one does not exist yet.
func (c *Client) UpdateParcel(ctx context.Context, id int64, in ParcelInput) (*Parcel, error) {
	var parcel Parcel
	if err := c.api.Put(ctx, fmt.Sprintf("/parcels/%d", id), in, &parcel); err != nil {
		return nil, err
	}
	return &parcel, nil
}

type statusUpdate struct {
	Status ParcelStatus `json:"status"`
	Notes  string       `json:"notes,omitempty"`
}

// UpdateParcelStatus transitions a parcel's status. Notes are attached
// to the postponed order the backend creates when the new status is
// StatusPostponed.
func (c *Client) UpdateParcelStatus(ctx context.Context, id int64, status ParcelStatus, notes string) (*Parcel, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid parcel status %q", status)
	}
	var parcel Parcel
	if err := c.api.Patch(ctx, fmt.Sprintf("/parcels/%d/status", id), statusUpdate{Status: status, Notes: notes}, &parcel); err != nil {
		return nil, err
	}
	return &parcel, nil
}

// DeleteParcel removes a parcel and its postponed order, if any.
func (c *Client) DeleteParcel(ctx context.Context, id int64) error {
	return c.api.Delete(ctx, fmt.Sprintf("/parcels/%d", id))
}

// OverdueParcels returns every parcel currently overdue.
func (c *Client) OverdueParcels(ctx context.Context) ([]Parcel, error) {
	var parcels []Parcel
	if err := c.api.Get(ctx, "/parcels/overdue", nil, &parcels); err != nil {
		return nil, err
	}
	return parcels, nil
}

// ParcelStats returns the per-status counts.
func (c *Client) ParcelStats(ctx context.Context) (*ParcelStats, error) {
	var stats ParcelStats
	if err := c.api.Get(ctx, "/parcels/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
