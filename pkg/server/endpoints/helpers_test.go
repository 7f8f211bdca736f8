package endpoints

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/taskgate/taskgate/pkg/audit"
	"github.com/taskgate/taskgate/pkg/authz"
	"github.com/taskgate/taskgate/pkg/config"
	"github.com/taskgate/taskgate/pkg/idempotency"
	"github.com/taskgate/taskgate/pkg/invite"
	"github.com/taskgate/taskgate/pkg/model"
	"github.com/taskgate/taskgate/pkg/provision"
	"github.com/taskgate/taskgate/pkg/server"
	"github.com/taskgate/taskgate/pkg/server/middleware"
	"github.com/taskgate/taskgate/pkg/token"
)

// testServer bundles a wired server.Server with the mock stores behind it.
type testServer struct {
	srv *server.Server

	users       *MockUsersStore
	projects    *MockProjectsStore
	tasks       *MockTasksStore
	operations  *MockOperationsStore
	memberships *MockMembershipsStore
	permissions *MockPermissionsStore
	health      *MockHealthStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	// Keep handler-level audit events out of test output.
	audit.SetEnabled(false)

	cfg := &config.TaskGateConfig{
		AuthTokenSecret:   "test-auth-secret",
		InviteTokenSecret: "test-invite-secret",
		AuthTokenTTL:      60,
		InviteTokenTTL:    15,
		IdempotencyTTL:    5,
		APIListLimitMax:   1000,
	}

	ts := &testServer{
		users:       &MockUsersStore{},
		projects:    &MockProjectsStore{},
		tasks:       &MockTasksStore{},
		operations:  &MockOperationsStore{},
		memberships: &MockMembershipsStore{},
		permissions: &MockPermissionsStore{},
		health:      &MockHealthStore{},
	}

	tokens := token.NewService([]byte(cfg.AuthTokenSecret), cfg.AuthTTL())
	engine := authz.NewEngine(ts.memberships, ts.operations, ts.permissions, nil)
	engine.SetAuditSink(func(audit.Event) {})

	ts.srv = &server.Server{
		Router:           mux.NewRouter().UseEncodedPath(),
		Config:           cfg,
		UsersStore:       ts.users,
		ProjectsStore:    ts.projects,
		TasksStore:       ts.tasks,
		OperationsStore:  ts.operations,
		MembershipsStore: ts.memberships,
		PermissionsStore: ts.permissions,
		HealthStore:      ts.health,
		Engine:           engine,
		Provisioner:      provision.NewProvisioner(ts.memberships, ts.operations, nil),
		Invites:          invite.NewService([]byte(cfg.InviteTokenSecret), cfg.InviteTTL()),
		Tokens:           tokens,
		Guard:            idempotency.NewGuard(cfg.IdempotencyWindow()),
		AuthMiddleware:   middleware.NewAuthenticator(tokens, cfg),
	}
	return ts
}

// bearerFor issues a valid access token for the given user id.
func (ts *testServer) bearerFor(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	signed, _, err := ts.srv.Tokens.Issue(userID, "user@example.com")
	require.NoError(t, err)
	return "Bearer " + signed
}

// allowOperation wires the engine mocks so userID may perform
// (controller, action) on projectID, and returns the membership id.
func (ts *testServer) allowOperation(userID, projectID uuid.UUID, controller, action string) uuid.UUID {
	membershipID := uuid.New()
	operationID := uuid.New()
	ts.memberships.On("Find", userID, projectID).Return(&model.UsersProjects{
		ID: membershipID, UserID: userID, ProjectID: projectID,
	}, nil)
	ts.operations.On("FindByKey", controller, action).Return(&model.Operation{
		ID: operationID, Controller: controller, Action: action,
	}, nil)
	ts.permissions.On("Lookup", membershipID, operationID).Return(true, true)
	return membershipID
}

// denyOperation wires the engine mocks so the check resolves but the
// access bit is false.
func (ts *testServer) denyOperation(userID, projectID uuid.UUID, controller, action string) {
	membershipID := uuid.New()
	operationID := uuid.New()
	ts.memberships.On("Find", userID, projectID).Return(&model.UsersProjects{
		ID: membershipID, UserID: userID, ProjectID: projectID,
	}, nil)
	ts.operations.On("FindByKey", controller, action).Return(&model.Operation{
		ID: operationID, Controller: controller, Action: action,
	}, nil)
	ts.permissions.On("Lookup", membershipID, operationID).Return(false, true)
}

func doJSON(t *testing.T, router http.Handler, method, path, bearer string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = "203.0.113.7:51234"
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}
