// Package authapi provides stateless wrappers over the back-office
// authentication endpoints: login, token refresh, logout, and the
// current-user lookup.
//
// The package holds no state and applies no retry policy. Callers pass
// tokens explicitly; deciding what a failure means for the session
// (forced logout, backend unreachable, bad credentials) belongs to the
// session manager.
//
// # Usage
//
//	svc := authapi.NewService("https://api.joyfulcargo.com")
//	res, err := svc.Login(ctx, "admin", "password")
//	if errors.Is(err, authapi.ErrInvalidCredentials) {
//	    // show err.Error() on the login form
//	}
package authapi
