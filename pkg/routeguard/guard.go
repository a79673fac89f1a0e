package routeguard

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/cedar-policy/cedar-go"

	"github.com/rowneywebster/joyful-cargoparcels/pkg/authapi"
	"github.com/rowneywebster/joyful-cargoparcels/pkg/session"
)

// Decision is the guard's answer for a navigation attempt.
type Decision string

const (
	// DecisionPending means the session is still loading; render a
	// placeholder and decide nothing yet.
	DecisionPending Decision = "pending"

	// DecisionAdmit lets the navigation through.
	DecisionAdmit Decision = "admit"

	// DecisionLogin redirects to the login entry point.
	DecisionLogin Decision = "login"

	// DecisionForbidden redirects to the forbidden destination. The
	// session itself is untouched.
	DecisionForbidden Decision = "forbidden"
)

// Route declares a screen and the roles allowed to enter it. An empty
// AllowedRoles admits any authenticated user.
type Route struct {
	Name         string
	AllowedRoles []authapi.Role
}

// navigateAction is the single Cedar action the guard evaluates.
const navigateAction = "navigate"

// Guard evaluates navigation attempts against Cedar policies compiled
// from the route table. It is immutable after construction and safe
// for concurrent use.
type Guard struct {
	policies *cedar.PolicySet
	logger   *slog.Logger
}

// Option configures a Guard.
type Option func(*Guard)

// WithLogger sets the logger for decision logging.
func WithLogger(l *slog.Logger) Option {
	return func(g *Guard) {
		g.logger = l
	}
}

// New compiles the route table into a policy set. Route names must be
// non-empty and unique.
func New(routes []Route, opts ...Option) (*Guard, error) {
	src, err := compilePolicies(routes)
	if err != nil {
		return nil, err
	}

	ps, err := cedar.NewPolicySetFromBytes("routes.cedar", []byte(src))
	if err != nil {
		return nil, fmt.Errorf("compile route policies: %w", err)
	}

	g := &Guard{
		policies: ps,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Evaluate decides whether the session may enter the named route.
// Routes absent from the table deny by default and come back
// forbidden.
func (g *Guard) Evaluate(sess session.Session, routeName string) Decision {
	if sess.IsLoading() {
		return DecisionPending
	}
	if !sess.IsAuthenticated() {
		return DecisionLogin
	}

	user := sess.User
	principal := cedar.NewEntityUID("User", cedar.String(strconv.FormatInt(user.ID, 10)))
	resource := cedar.NewEntityUID("Route", cedar.String(routeName))

	entities := cedar.EntityMap{
		principal: cedar.Entity{
			UID:     principal,
			Parents: cedar.NewEntityUIDSet(),
			Attributes: cedar.NewRecord(cedar.RecordMap{
				"role": cedar.String(string(user.Role)),
			}),
		},
		resource: cedar.Entity{
			UID:        resource,
			Parents:    cedar.NewEntityUIDSet(),
			Attributes: cedar.NewRecord(cedar.RecordMap{}),
		},
	}

	req := cedar.Request{
		Principal: principal,
		Action:    cedar.NewEntityUID("Action", cedar.String(navigateAction)),
		Resource:  resource,
		Context:   cedar.NewRecord(cedar.RecordMap{}),
	}

	decision, diag := cedar.Authorize(g.policies, entities, req)
	if decision != cedar.Allow {
		g.logger.Debug("navigation denied",
			"route", routeName,
			"user", user.ID,
			"role", user.Role,
		)
		return DecisionForbidden
	}

	policyID := ""
	if len(diag.Reasons) > 0 {
		policyID = string(diag.Reasons[0].PolicyID)
	}
	g.logger.Debug("navigation admitted",
		"route", routeName,
		"user", user.ID,
		"policy", policyID,
	)
	return DecisionAdmit
}

// compilePolicies renders one permit policy per route. Roles are
// checked against the principal's role attribute; a route with no
// declared roles permits any authenticated principal.
func compilePolicies(routes []Route) (string, error) {
	seen := make(map[string]bool, len(routes))
	var b strings.Builder

	for _, route := range routes {
		if route.Name == "" {
			return "", fmt.Errorf("route with empty name")
		}
		if strings.ContainsAny(route.Name, `"\`) {
			return "", fmt.Errorf("route name %q contains invalid characters", route.Name)
		}
		if seen[route.Name] {
			return "", fmt.Errorf("duplicate route %q", route.Name)
		}
		seen[route.Name] = true

		if len(route.AllowedRoles) == 0 {
			fmt.Fprintf(&b, "permit (principal, action == Action::%q, resource == Route::%q);\n",
				navigateAction, route.Name)
			continue
		}

		roles := make([]string, 0, len(route.AllowedRoles))
		for _, role := range route.AllowedRoles {
			if !role.Valid() {
				return "", fmt.Errorf("route %q: unknown role %q", route.Name, role)
			}
			roles = append(roles, strconv.Quote(string(role)))
		}
		fmt.Fprintf(&b, "permit (principal, action == Action::%q, resource == Route::%q) when { [%s].contains(principal.role) };\n",
			navigateAction, route.Name, strings.Join(roles, ", "))
	}

	return b.String(), nil
}
