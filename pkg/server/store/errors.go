package store

import "errors"

var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateMembership indicates a membership already exists for the
	// (user, project) pair. It is raised from the database unique constraint,
	// not only from the application-level existence check, so concurrent
	// provisioning attempts cannot both succeed.
	ErrDuplicateMembership = errors.New("membership already exists")
)
