// Package session owns the authenticated-session lifecycle for the
// back-office client.
//
// A single Manager orchestrates the token store, the auth endpoints
// and the API client: it is the only component that decides whether a
// failure demotes the session to anonymous. Authentication failures
// (rejected credentials, dead refresh token, unrecoverable 401) tear
// the session down completely. An unreachable backend never does; it
// surfaces as a distinct unavailable state with tokens kept.
//
// The manager moves through
//
//	Uninitialized → Initializing → {Authenticated, Anonymous, Unavailable}
//
// with refreshes running transiently while authenticated. Concurrent
// refresh calls collapse into one in-flight backend request; every
// waiter observes the same outcome.
//
// The manager implements the apiclient TokenProvider and Refresher
// interfaces, so wiring it into the API client gives every request
// the bearer header and the single refresh-and-replay on 401.
package session
