package store

import "github.com/google/uuid"

// PermissionRow is one permission bit joined with its operation's natural
// key for display.
type PermissionRow struct {
	ID          uuid.UUID `json:"id"`
	OperationID uuid.UUID `json:"operation_id"`
	Controller  string    `json:"controller"`
	Action      string    `json:"action"`
	Access      bool      `json:"access"`
}

// RuleAssignment is the caller-supplied shape for ReplaceAll.
type RuleAssignment struct {
	OperationID uuid.UUID `json:"operation_id"`
	Access      bool      `json:"access"`
}

// PermissionsStore reads and rewrites the permission matrix of a membership.
type PermissionsStore interface {
	// Get returns all permission rows for a membership.
	Get(membershipID uuid.UUID) ([]PermissionRow, error)

	// ReplaceAll deletes every permission row of the membership and inserts
	// one row per distinct operation id in rows (last write wins on
	// duplicates). Runs in a single transaction; on failure the matrix is
	// left unchanged. Operations absent from rows lose their row entirely,
	// which the engine reads as deny.
	ReplaceAll(membershipID uuid.UUID, rows []RuleAssignment) error

	// Lookup reports the access bit for (membership, operation).
	// found is false when no row exists.
	Lookup(membershipID, operationID uuid.UUID) (access bool, found bool)
}
