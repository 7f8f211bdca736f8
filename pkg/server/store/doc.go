// Package store defines the storage interfaces the server depends on.
//
// The interfaces abstract PostgreSQL access behind small contracts so the
// endpoints and the authorization engine can be tested with mocks. The GORM
// implementations live in the gorm subpackage.
package store
