package endpoints

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/taskgate/taskgate/pkg/model"
	"github.com/taskgate/taskgate/pkg/server/store"
)

// MockUsersStore implements store.UsersStore for testing using testify/mock
type MockUsersStore struct {
	mock.Mock
}

func (m *MockUsersStore) Create(u *model.User) error {
	args := m.Called(u)
	return args.Error(0)
}

func (m *MockUsersStore) Find(id uuid.UUID) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUsersStore) FindByEmail(email string) (*model.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockProjectsStore implements store.ProjectsStore for testing using testify/mock
type MockProjectsStore struct {
	mock.Mock
}

func (m *MockProjectsStore) Create(p *model.Project) error {
	args := m.Called(p)
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockProjectsStore) Find(id uuid.UUID) (*model.Project, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectsStore) Update(p *model.Project) error {
	args := m.Called(p)
	return args.Error(0)
}

func (m *MockProjectsStore) Archive(id uuid.UUID) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockProjectsStore) List(req store.ProjectListRequest) ([]model.Project, int64, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Project), args.Get(1).(int64), args.Error(2)
}

// MockTasksStore implements store.TasksStore for testing using testify/mock
type MockTasksStore struct {
	mock.Mock
}

func (m *MockTasksStore) Create(t *model.Task) error {
	args := m.Called(t)
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockTasksStore) Find(id uuid.UUID) (*model.Task, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTasksStore) Update(t *model.Task) error {
	args := m.Called(t)
	return args.Error(0)
}

func (m *MockTasksStore) Archive(id uuid.UUID) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockTasksStore) List(projectID uuid.UUID, limit, offset int) ([]model.Task, int64, error) {
	args := m.Called(projectID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Task), args.Get(1).(int64), args.Error(2)
}

func (m *MockTasksStore) Statuses() ([]model.TaskStatus, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TaskStatus), args.Error(1)
}

func (m *MockTasksStore) FindStatusByName(name string) (*model.TaskStatus, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TaskStatus), args.Error(1)
}

// MockOperationsStore implements store.OperationsStore for testing using testify/mock
type MockOperationsStore struct {
	mock.Mock
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

// MockMembershipsStore implements store.MembershipsStore for testing using testify/mock
type MockMembershipsStore struct {
	mock.Mock
}

func (m *MockMembershipsStore) Transaction(fn func(store.MembershipsStore) error) error {
	// Run the callback against the same mock so expectations apply.
	if err := fn(m); err != nil {
		return err
	}
	return nil
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
	if membership.ID == uuid.Nil {
		membership.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockMembershipsStore) CreateRules(rules []model.Rule) error {
	args := m.Called(rules)
	return args.Error(0)
}

// MockPermissionsStore implements store.PermissionsStore for testing using testify/mock
type MockPermissionsStore struct {
	mock.Mock
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

// MockHealthStore implements store.HealthStore for testing using testify/mock
type MockHealthStore struct {
	mock.Mock
}

func (m *MockHealthStore) CheckConnectivity() error {
	args := m.Called()
	return args.Error(0)
}
