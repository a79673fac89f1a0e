// Package tokenstore persists the signed-in user's bearer token pair
// and cached user summary between CLI invocations.
//
// Credentials survive process restarts but carry no guarantee beyond
// that; losing the file simply means signing in again. Tokens are
// opaque strings and are never inspected or validated here.
//
// The file store keeps everything in a single JSON document so the
// four persisted fields (access token, refresh token, expiry, user)
// are always written and cleared together. A partial clear is a bug,
// not a feature.
//
// # Usage
//
//	store, err := tokenstore.NewFileStore("")
//	creds, err := store.Load()
//	if errors.Is(err, tokenstore.ErrNotFound) {
//	    // nobody is signed in
//	}
package tokenstore
