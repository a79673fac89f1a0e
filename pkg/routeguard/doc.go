// Package routeguard decides whether the current session may enter a
// back-office screen.
//
// The guard is a pure function of the session snapshot and the
// screen's declared role requirements. It distinguishes three refusal
// shapes: a session still loading gets a pending placeholder (no
// redirect decision yet), an unauthenticated session is sent to the
// login entry point, and an authenticated session whose role is not
// allowed is sent to the forbidden destination; unauthenticated and
// unauthorized are never conflated.
//
// Role requirements compile into Cedar policies evaluated per
// navigation; routes nobody has declared deny by default. This is a
// UX convenience only: the backend enforces authorization on every
// request regardless of what the guard admits.
package routeguard
