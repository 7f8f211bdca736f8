// Package authz decides whether a user may perform an operation on a
// project. Every decision is computed from the membership's stored
// permission matrix on each request; nothing is cached, so a revoked
// rule takes effect on the very next check.
package authz

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taskgate/taskgate/pkg/audit"
	"github.com/taskgate/taskgate/pkg/catalog"
	"github.com/taskgate/taskgate/pkg/identity"
	"github.com/taskgate/taskgate/pkg/server/store"
)

// Engine evaluates authorization checks against the permission store.
// It fails closed: any missing row, uncataloged operation, absent
// membership, or storage error yields DecisionDeny.
type Engine struct {
	memberships store.MembershipsStore
	operations  store.OperationsStore
	permissions store.PermissionsStore
	logger      *zap.Logger
	auditLog    func(audit.Event)
}

// NewEngine creates an engine over the given stores. A nil logger is
// replaced with a no-op logger.
func NewEngine(memberships store.MembershipsStore, operations store.OperationsStore, permissions store.PermissionsStore, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		memberships: memberships,
		operations:  operations,
		permissions: permissions,
		logger:      logger,
		auditLog:    audit.Log,
	}
}

// SetAuditSink replaces the audit destination. Intended for tests.
func (e *Engine) SetAuditSink(fn func(audit.Event)) {
	e.auditLog = fn
}

// Authorize reports whether userID may perform op on projectID.
//
// The check resolves the user's membership in the project, the cataloged
// operation for op's key, and the membership's permission row for that
// operation. The row's access bit must be true; a missing row at any
// step is a deny, never an error.
func (e *Engine) Authorize(ctx context.Context, userID, projectID uuid.UUID, op catalog.Key) Decision {
	decision := e.evaluate(userID, projectID, op)

	clientIP := ""
	if id, ok := identity.Get(ctx); ok && id.RemoteIP != nil {
		clientIP = id.RemoteIP.String()
	}
	e.auditLog(audit.CheckEvent{
		UserID:     userID.String(),
		ProjectID:  projectID.String(),
		Controller: op.Controller,
		Action:     op.Action,
		ClientIP:   clientIP,
		Allowed:    decision == DecisionAllow,
	})

	e.logger.Debug("authorization check",
		zap.String("user_id", userID.String()),
		zap.String("project_id", projectID.String()),
		zap.String("operation", op.String()),
		zap.String("decision", decision.String()),
	)

	return decision
}

func (e *Engine) evaluate(userID, projectID uuid.UUID, op catalog.Key) Decision {
	membership, err := e.memberships.Find(userID, projectID)
	if err != nil {
		e.logger.Warn("membership lookup failed, denying",
			zap.String("user_id", userID.String()),
			zap.String("project_id", projectID.String()),
			zap.Error(err),
		)
		return DecisionDeny
	}
	if membership == nil {
		return DecisionDeny
	}

	operation, err := e.operations.FindByKey(op.Controller, op.Action)
	if err != nil {
		e.logger.Warn("operation lookup failed, denying",
			zap.String("operation", op.String()),
			zap.Error(err),
		)
		return DecisionDeny
	}
	if operation == nil {
		// Uncataloged operation. Nothing can ever be granted for it.
		return DecisionDeny
	}

	access, found := e.permissions.Lookup(membership.ID, operation.ID)
	if !found || !access {
		return DecisionDeny
	}
	return DecisionAllow
}
