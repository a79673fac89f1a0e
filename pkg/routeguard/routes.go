package routeguard

import "github.com/rowneywebster/joyful-cargoparcels/pkg/authapi"

// Back-office screen names.
const (
	RouteDashboard       = "dashboard"
	RouteParcels         = "parcels"
	RoutePostponedOrders = "postponed-orders"
	RouteExpenses        = "expenses"
	RouteSettings        = "settings"
	RouteUsers           = "users"
	RouteAdminSettings   = "admin-settings"
)

// DefaultRoutes is the back-office route table. User management and
// business settings administration are admin-only; everything else is
// open to any signed-in user.
func DefaultRoutes() []Route {
	return []Route{
		{Name: RouteDashboard},
		{Name: RouteParcels},
		{Name: RoutePostponedOrders},
		{Name: RouteExpenses},
		{Name: RouteSettings},
		{Name: RouteUsers, AllowedRoles: []authapi.Role{authapi.RoleAdmin}},
		{Name: RouteAdminSettings, AllowedRoles: []authapi.Role{authapi.RoleAdmin}},
	}
}
