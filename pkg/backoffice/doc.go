// Package backoffice provides typed clients for the back-office CRUD
// resources: parcels, postponed orders, expenses, users, business
// settings and the dashboard aggregates.
//
// All calls go through the apiclient, so every request carries the
// bearer header and benefits from the single refresh-and-replay on
// 401. The package adds no business rules of its own; pagination,
// filtering and status transitions are backend semantics surfaced
// as-is.
package backoffice
