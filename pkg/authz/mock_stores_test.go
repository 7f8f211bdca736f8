package authz

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/taskgate/taskgate/pkg/model"
	"github.com/taskgate/taskgate/pkg/server/store"
)

// MockMembershipsStore implements store.MembershipsStore for testing using testify/mock
type MockMembershipsStore struct {
	mock.Mock
}

func NewMockMembershipsStore() *MockMembershipsStore {
	return &MockMembershipsStore{}
}

func (m *MockMembershipsStore) Transaction(fn func(store.MembershipsStore) error) error {
	args := m.Called(fn)
	return args.Error(0)
}

func (m *MockMembershipsStore) Find(userID, projectID uuid.UUID) (*model.UsersProjects, error) {
	args := m.Called(userID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UsersProjects), args.Error(1)
}

func (m *MockMembershipsStore) FindByID(id uuid.UUID) (*model.UsersProjects, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UsersProjects), args.Error(1)
}

func (m *MockMembershipsStore) Create(membership *model.UsersProjects) error {
	args := m.Called(membership)
	return args.Error(0)
}

func (m *MockMembershipsStore) CreateRules(rules []model.Rule) error {
	args := m.Called(rules)
	return args.Error(0)
}

// MockOperationsStore implements store.OperationsStore for testing using testify/mock
type MockOperationsStore struct {
	mock.Mock
}

func NewMockOperationsStore() *MockOperationsStore {
	return &MockOperationsStore{}
}

func (m *MockOperationsStore) List() ([]model.Operation, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Operation), args.Error(1)
}

func (m *MockOperationsStore) FindByKey(controller, action string) (*model.Operation, error) {
	args := m.Called(controller, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Operation), args.Error(1)
}

func (m *MockOperationsStore) Find(id uuid.UUID) (*model.Operation, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Operation), args.Error(1)
}

// MockPermissionsStore implements store.PermissionsStore for testing using testify/mock
type MockPermissionsStore struct {
	mock.Mock
}

func NewMockPermissionsStore() *MockPermissionsStore {
	return &MockPermissionsStore{}
}

func (m *MockPermissionsStore) Get(membershipID uuid.UUID) ([]store.PermissionRow, error) {
	args := m.Called(membershipID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.PermissionRow), args.Error(1)
}

func (m *MockPermissionsStore) ReplaceAll(membershipID uuid.UUID, rows []store.RuleAssignment) error {
	args := m.Called(membershipID, rows)
	return args.Error(0)
}

func (m *MockPermissionsStore) Lookup(membershipID, operationID uuid.UUID) (bool, bool) {
	args := m.Called(membershipID, operationID)
	return args.Bool(0), args.Bool(1)
}
