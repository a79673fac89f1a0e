package backoffice_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowneywebster/joyful-cargoparcels/internal/testutil/mockhttp"
	"github.com/rowneywebster/joyful-cargoparcels/pkg/apiclient"
	"github.com/rowneywebster/joyful-cargoparcels/pkg/authapi"
	"github.com/rowneywebster/joyful-cargoparcels/pkg/backoffice"
)

func newClient(t *testing.T, b *mockhttp.ServerBuilder) (*backoffice.Client, *mockhttp.Capture, func()) {
	t.Helper()
	capture := b.Capture()
	server := b.Build()
	api := apiclient.New(server.URL)
	return backoffice.NewClient(api), capture, server.Close
}

func TestListParcels(t *testing.T) {
	client, capture, closeFn := newClient(t, mockhttp.New().
		EnvelopeWithMeta("/parcels",
			[]map[string]any{
				{"id": 1, "customer_name": "Jane Wanjiru", "status": "pending", "expected_amount": 2500},
				{"id": 2, "customer_name": "Amos Otieno", "status": "paid", "expected_amount": 900},
			},
			map[string]any{"page": 1, "pages": 3, "total": 41, "limit": 20},
		))
	defer closeFn()

	parcels, meta, err := client.ListParcels(context.Background(), backoffice.ParcelListOptions{
		Page:   1,
		Limit:  20,
		Status: backoffice.StatusPending,
		Search: "jane",
	})
	require.NoError(t, err)

	require.Len(t, parcels, 2)
	assert.Equal(t, "Jane Wanjiru", parcels[0].CustomerName)
	assert.Equal(t, backoffice.StatusPaid, parcels[1].Status)
	assert.Equal(t, 41, meta.Total)

	query := capture.Last().Query
	assert.Equal(t, []string{"1"}, query["page"])
	assert.Equal(t, []string{"20"}, query["limit"])
	assert.Equal(t, []string{"pending"}, query["status"])
	assert.Equal(t, []string{"jane"}, query["search"])
}

func TestListParcels_ZeroOptionsOmitted(t *testing.T) {
	client, capture, closeFn := newClient(t, mockhttp.New().
		Envelope("/parcels", []map[string]any{}))
	defer closeFn()

	_, _, err := client.ListParcels(context.Background(), backoffice.ParcelListOptions{})
	require.NoError(t, err)
	assert.Empty(t, capture.Last().Query)
}

func TestCreateParcel(t *testing.T) {
	client, capture, closeFn := newClient(t, mockhttp.New().
		Envelope("/parcels", map[string]any{
			"id": 9, "customer_name": "Jane Wanjiru", "status": "pending",
		}))
	defer closeFn()

	parcel, err := client.CreateParcel(context.Background(), backoffice.ParcelInput{
		CustomerName:   "Jane Wanjiru",
		Phone:          "0712345678",
		Product:        "Shoes",
		Destination:    "Nakuru",
		ExpectedAmount: 2500,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 9, parcel.ID)
	assert.Equal(t, backoffice.StatusPending, parcel.Status)

	req := capture.Last()
	assert.Equal(t, http.MethodPost, req.Method)
	var body map[string]any
	require.NoError(t, req.BodyJSON(&body))
	assert.Equal(t, "Nakuru", body["destination"])
	assert.EqualValues(t, 2500, body["expected_amount"])
}

func TestUpdateParcelStatus(t *testing.T) {
	client, capture, closeFn := newClient(t, mockhttp.New().
		Envelope("/parcels/42/status", map[string]any{"id": 42, "status": "postponed"}))
	defer closeFn()

	parcel, err := client.UpdateParcelStatus(context.Background(), 42, backoffice.StatusPostponed, "customer traveling")
	require.NoError(t, err)
	assert.Equal(t, backoffice.StatusPostponed, parcel.Status)

	req := capture.Last()
	assert.Equal(t, http.MethodPatch, req.Method)
	assert.Equal(t, "/parcels/42/status", req.Path)
	var body map[string]string
	require.NoError(t, req.BodyJSON(&body))
	assert.Equal(t, "postponed", body["status"])
	assert.Equal(t, "customer traveling", body["notes"])
}

func TestUpdateParcelStatus_RejectsUnknownStatus(t *testing.T) {
	client := backoffice.NewClient(apiclient.New("http://unused.invalid"))
	_, err := client.UpdateParcelStatus(context.Background(), 42, "vanished", "")
	assert.Error(t, err)
}

func TestGetParcel_NotFound(t *testing.T) {
	client, _, closeFn := newClient(t, mockhttp.New().
		EnvelopeError("/parcels/99", http.StatusNotFound, "NOT_FOUND", "parcel not found"))
	defer closeFn()

	_, err := client.GetParcel(context.Background(), 99)
	assert.ErrorIs(t, err, apiclient.ErrNotFound)
}

func TestParcelStats(t *testing.T) {
	client, _, closeFn := newClient(t, mockhttp.New().
		Envelope("/parcels/stats", map[string]int{"pending": 12, "paid": 30, "cancelled": 4}))
	defer closeFn()

	stats, err := client.ParcelStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, stats.Pending)
	assert.Equal(t, 30, stats.Paid)
	assert.Equal(t, 4, stats.Cancelled)
}

func TestResolvePostponedOrder(t *testing.T) {
	client, capture, closeFn := newClient(t, mockhttp.New().
		Envelope("/postponed/7/resolve", map[string]any{
			"id": 7, "parcel_id": 42, "is_resolved": true,
		}))
	defer closeFn()

	order, err := client.ResolvePostponedOrder(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, order.IsResolved)
	assert.EqualValues(t, 42, order.ParcelID)

	req := capture.Last()
	assert.Equal(t, http.MethodPatch, req.Method)
	assert.Equal(t, "/postponed/7/resolve", req.Path)
}

func TestUpdatePostponedOrder_PartialFields(t *testing.T) {
	client, capture, closeFn := newClient(t, mockhttp.New().
		Envelope("/postponed/7", map[string]any{"id": 7, "parcel_id": 42}))
	defer closeFn()

	date := "2026-09-15"
	_, err := client.UpdatePostponedOrder(context.Background(), 7, backoffice.PostponedOrderUpdate{
		NewDeliveryDate: &date,
	})
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, capture.Last().BodyJSON(&body))
	assert.Equal(t, "2026-09-15", body["new_delivery_date"])
	_, hasNotes := body["notes"]
	assert.False(t, hasNotes, "omitted fields stay out of the payload")
}

func TestUpdateAccountRole(t *testing.T) {
	client, capture, closeFn := newClient(t, mockhttp.New().
		Envelope("/users/5/role", map[string]any{"id": 5, "role": "admin"}))
	defer closeFn()

	account, err := client.UpdateAccountRole(context.Background(), 5, authapi.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, authapi.RoleAdmin, account.Role)

	req := capture.Last()
	assert.Equal(t, "/users/5/role", req.Path)
	var body map[string]string
	require.NoError(t, req.BodyJSON(&body))
	assert.Equal(t, "admin", body["role"])
}

func TestUpdateAccountRole_RejectsUnknownRole(t *testing.T) {
	client := backoffice.NewClient(apiclient.New("http://unused.invalid"))
	_, err := client.UpdateAccountRole(context.Background(), 5, "root")
	assert.Error(t, err)
}

func TestListExpenses(t *testing.T) {
	client, _, closeFn := newClient(t, mockhttp.New().
		Envelope("/expenses", []map[string]any{
			{"id": 1, "category_name": "Fuel", "amount": 1200.5},
		}))
	defer closeFn()

	expenses, err := client.ListExpenses(context.Background())
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "Fuel", expenses[0].CategoryName)
	assert.Equal(t, 1200.5, expenses[0].Amount)
}

func TestBusinessSettingsRoundTrip(t *testing.T) {
	client, capture, closeFn := newClient(t, mockhttp.New().
		Envelope("/settings", map[string]any{
			"business_name": "Joyful Cargo",
			"currency":      "KES",
			"timezone":      "Africa/Nairobi",
		}))
	defer closeFn()

	settings, err := client.GetBusinessSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Joyful Cargo", settings.BusinessName)

	settings.Currency = "USD"
	_, err = client.UpdateBusinessSettings(context.Background(), *settings)
	require.NoError(t, err)

	req := capture.Last()
	assert.Equal(t, http.MethodPut, req.Method)
	var body map[string]any
	require.NoError(t, req.BodyJSON(&body))
	assert.Equal(t, "USD", body["currency"])
}

func TestDashboardOverview(t *testing.T) {
	client, _, closeFn := newClient(t, mockhttp.New().
		Envelope("/dashboard/overview", map[string]any{
			"total_revenue":   150000.0,
			"month_revenue":   12000.0,
			"active_parcels":  34,
			"overdue_parcels": 3,
		}))
	defer closeFn()

	overview, err := client.DashboardOverview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 150000.0, overview.TotalRevenue)
	assert.Equal(t, 34, overview.ActiveParcels)
	assert.Equal(t, 3, overview.OverdueParcels)
}
