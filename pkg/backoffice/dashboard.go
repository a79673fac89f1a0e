package backoffice

import "context"

// DashboardOverview is the headline revenue and parcel load summary.
type DashboardOverview struct {
	TotalRevenue   float64 `json:"total_revenue"`
	MonthRevenue   float64 `json:"month_revenue"`
	ActiveParcels  int     `json:"active_parcels"`
	OverdueParcels int     `json:"overdue_parcels"`
}

// RevenuePoint is one month of paid-parcel revenue.
type RevenuePoint struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// DashboardStats are the aggregate counters shown on the dashboard.
type DashboardStats struct {
	TotalParcels   int     `json:"total_parcels"`
	PendingParcels int     `json:"pending_parcels"`
	PaidParcels    int     `json:"paid_parcels"`
	OverdueParcels int     `json:"overdue_parcels"`
	TotalExpenses  float64 `json:"total_expenses"`
}

// DashboardOverview fetches the headline summary.
func (c *Client) DashboardOverview(ctx context.Context) (*DashboardOverview, error) {
	var overview DashboardOverview
	if err := c.api.Get(ctx, "/dashboard/overview", nil, &overview); err != nil {
		return nil, err
	}
	return &overview, nil
}

// RevenueTrend fetches the last six months of revenue.
func (c *Client) RevenueTrend(ctx context.Context) ([]RevenuePoint, error) {
	var points []RevenuePoint
	if err := c.api.Get(ctx, "/dashboard/revenue-trend", nil, &points); err != nil {
		return nil, err
	}
	return points, nil
}

// DashboardStats fetches the aggregate counters.
func (c *Client) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := c.api.Get(ctx, "/dashboard/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
