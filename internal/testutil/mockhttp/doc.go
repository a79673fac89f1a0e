// Package mockhttp provides a builder pattern for creating mock HTTP servers in tests.
//
// The builder mirrors the back-office API's response shapes: every
// endpoint wraps its payload in a success or error envelope, so the
// helpers here produce those envelopes directly instead of raw JSON.
//
// # Basic Usage
//
// Serve a success envelope:
//
//	server := mockhttp.New().
//		Envelope("/parcels", []Parcel{{ID: "p1"}}).
//		Build()
//	defer server.Close()
//
// Serve an error envelope:
//
//	server := mockhttp.New().
//		EnvelopeError("/parcels/p9", 404, "NOT_FOUND", "parcel not found").
//		Build()
//
// # Scripted Sequences
//
// Script successive responses to the same path, e.g. a 401 followed
// by a 200 after the client refreshes its token:
//
//	server := mockhttp.New().
//		Sequence("/parcels",
//			mockhttp.Err(401, "UNAUTHORIZED", "token expired"),
//			mockhttp.Ok([]Parcel{{ID: "p1"}}),
//		).
//		Build()
//
// # Authentication
//
// Require a bearer token on everything except the auth endpoints:
//
//	server := mockhttp.New().
//		RequireBearer("access-token", "/auth/*").
//		Envelope("/parcels", parcels).
//		Build()
//
// # Request Capture
//
// Capture requests for assertion in tests:
//
//	b := mockhttp.New()
//	capture := b.Capture()
//	server := b.Envelope("/expenses", expenses).Build()
//	defer server.Close()
//
//	// ... make requests ...
//
//	req := capture.Last()
//	if req.Method != "POST" {
//		t.Errorf("expected POST, got %s", req.Method)
//	}
//
// # Path Matching
//
// Paths support exact match and prefix match with "*" suffix:
//
//	server := mockhttp.New().
//		Envelope("/exact/path", data1). // Matches only /exact/path
//		Envelope("/prefix/*", data2).   // Matches /prefix/anything
//		Build()
package mockhttp
