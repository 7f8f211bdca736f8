// Package provision seeds memberships with a complete permission matrix.
// A membership is never created without one rule per cataloged operation,
// so the authorization engine's deny-on-missing-row rule only ever fires
// for operations added to the catalog after the membership existed.
package provision

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taskgate/taskgate/pkg/model"
	"github.com/taskgate/taskgate/pkg/server/store"
)

// Error wraps a provisioning failure that is not a duplicate membership.
type Error struct {
	UserID    uuid.UUID
	ProjectID uuid.UUID
	Err       error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to provision membership for user %s on project %s: %v", e.UserID, e.ProjectID, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Provisioner creates memberships and their seed rules in one transaction.
type Provisioner struct {
	memberships store.MembershipsStore
	operations  store.OperationsStore
	logger      *zap.Logger
}

// NewProvisioner creates a provisioner. A nil logger is replaced with a
// no-op logger.
func NewProvisioner(memberships store.MembershipsStore, operations store.OperationsStore, logger *zap.Logger) *Provisioner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provisioner{
		memberships: memberships,
		operations:  operations,
		logger:      logger,
	}
}

// CreateOwnerMembership creates the project creator's membership with
// every cataloged operation allowed.
func (p *Provisioner) CreateOwnerMembership(userID, projectID uuid.UUID) (*model.UsersProjects, error) {
	return p.create(userID, projectID, true)
}

// CreateJoinerMembership creates an invited user's membership with every
// cataloged operation denied. Rules exist from the start so an owner can
// grant access by flipping bits rather than inventing rows.
func (p *Provisioner) CreateJoinerMembership(userID, projectID uuid.UUID) (*model.UsersProjects, error) {
	return p.create(userID, projectID, false)
}

func (p *Provisioner) create(userID, projectID uuid.UUID, access bool) (*model.UsersProjects, error) {
	existing, err := p.memberships.Find(userID, projectID)
	if err != nil {
		return nil, &Error{UserID: userID, ProjectID: projectID, Err: err}
	}
	if existing != nil {
		return nil, store.ErrDuplicateMembership
	}

	membership := &model.UsersProjects{
		UserID:    userID,
		ProjectID: projectID,
	}

	err = p.memberships.Transaction(func(tx store.MembershipsStore) error {
		if err := tx.Create(membership); err != nil {
			return err
		}

		ops, err := p.operations.List()
		if err != nil {
			return fmt.Errorf("failed to list operations: %w", err)
		}
		if len(ops) == 0 {
			return errors.New("operation catalog is empty")
		}

		rules := make([]model.Rule, 0, len(ops))
		for _, op := range ops {
			rules = append(rules, model.Rule{
				UsersProjectsID: membership.ID,
				OperationID:     op.ID,
				Access:          access,
			})
		}
		return tx.CreateRules(rules)
	})
	if err != nil {
		// The unique constraint fired inside the transaction: another
		// request provisioned this membership first.
		if errors.Is(err, store.ErrDuplicateMembership) {
			return nil, store.ErrDuplicateMembership
		}
		return nil, &Error{UserID: userID, ProjectID: projectID, Err: err}
	}

	p.logger.Info("membership provisioned",
		zap.String("user_id", userID.String()),
		zap.String("project_id", projectID.String()),
		zap.Bool("access", access),
	)
	return membership, nil
}
