package endpoints

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOK(t *testing.T) {
	ts := newTestServer(t)
	RegisterStatusEndpoints(ts.srv)

	ts.health.On("CheckConnectivity").Return(nil)

	rec := doJSON(t, ts.srv.Router, http.MethodGet, "/status", "", nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp StatusResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "ok", resp.Database)
}

func TestStatusDatabaseDown(t *testing.T) {
	ts := newTestServer(t)
	RegisterStatusEndpoints(ts.srv)

	ts.health.On("CheckConnectivity").Return(errors.New("connection refused"))

	rec := doJSON(t, ts.srv.Router, http.MethodGet, "/status", "", nil, nil)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp StatusResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "unreachable", resp.Database)
}

func TestWhoami(t *testing.T) {
	ts := newTestServer(t)
	RegisterWhoamiEndpoint(ts.srv)

	userID := uuid.New()
	rec := doJSON(t, ts.srv.Router, http.MethodGet, "/whoami", ts.bearerFor(t, userID), nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp WhoamiResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, userID.String(), resp.UserID)
	assert.Equal(t, "user@example.com", resp.Email)
}

func TestWhoamiUnauthenticated(t *testing.T) {
	ts := newTestServer(t)
	RegisterWhoamiEndpoint(ts.srv)

	rec := doJSON(t, ts.srv.Router, http.MethodGet, "/whoami", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
