// Package store defines the persistence contracts used by the service layer.
//
// The growth engine consumes plain domain values; the interfaces here describe
// how those values are fetched and recorded. Implementations live under
// internal/platform (PostgreSQL and SQLite).
package store
