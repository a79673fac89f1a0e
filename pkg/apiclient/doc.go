// Package apiclient is the single point of outbound HTTP for the
// back-office API.
//
// Every request carries the bearer token supplied by the configured
// TokenProvider plus a fresh X-Request-ID. When the backend answers
// 401 and a Refresher is configured, the client asks for exactly one
// token refresh and replays the original request with the new token.
// A second 401 on the replay is returned as-is; retry accounting lives
// on the wrapped request value, never as hidden state on shared
// objects, so a persistently rejecting backend can never cause a
// retry loop.
//
// Responses use the backend envelope ({success, data, message, meta});
// failures are surfaced as *APIError values that match the package
// sentinels with errors.Is.
//
// # Usage
//
//	client := apiclient.New(cfg.ServerURL,
//	    apiclient.WithTokenProvider(session),
//	    apiclient.WithRefresher(session),
//	)
//	var parcels []backoffice.Parcel
//	meta, err := client.GetWithMeta(ctx, "/parcels", query, &parcels)
package apiclient
