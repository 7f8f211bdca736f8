package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskgate/taskgate/pkg/identity"
	"github.com/taskgate/taskgate/pkg/token"
)

type allowAllProxies struct{}

func (allowAllProxies) IsTrustedProxy(string) bool { return true }

type noProxies struct{}

func (noProxies) IsTrustedProxy(string) bool { return false }

func newAuthHandler(t *testing.T, trust TrustChecker) (*token.Service, http.Handler, *identity.Identity) {
	t.Helper()

	tokens := token.NewService([]byte("test-auth-secret"), time.Hour)
	var captured identity.Identity

	auth := NewAuthenticator(tokens, trust)
	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		require.True(t, ok, "identity missing from context")
		captured = *id
		w.WriteHeader(http.StatusOK)
	}))

	return tokens, handler, &captured
}

func TestMiddlewareValidToken(t *testing.T) {
	tokens, handler, captured := newAuthHandler(t, noProxies{})

	userID := uuid.New()
	signed, _, err := tokens.Issue(userID, "owner@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	req.RemoteAddr = "203.0.113.7:51234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, captured.UserID)
	assert.Equal(t, "owner@example.com", captured.Email)
	assert.Equal(t, "203.0.113.7", captured.RemoteIP.String())
}

func TestMiddlewareMissingHeader(t *testing.T) {
	_, handler, _ := newAuthHandler(t, noProxies{})

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewareMalformedHeader(t *testing.T) {
	_, handler, _ := newAuthHandler(t, noProxies{})

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	req.Header.Set("Authorization", "Token abcdef")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewareInvalidToken(t *testing.T) {
	_, handler, _ := newAuthHandler(t, noProxies{})

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewareForwardedForTrustedProxy(t *testing.T) {
	tokens, handler, captured := newAuthHandler(t, allowAllProxies{})

	signed, _, err := tokens.Issue(uuid.New(), "owner@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	req.Header.Set("X-Forwarded-For", "198.51.100.9, 10.0.0.1")
	req.RemoteAddr = "10.0.0.2:443"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "198.51.100.9", captured.RemoteIP.String())
}

func TestMiddlewareForwardedForUntrustedPeer(t *testing.T) {
	tokens, handler, captured := newAuthHandler(t, noProxies{})

	signed, _, err := tokens.Issue(uuid.New(), "owner@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	req.Header.Set("X-Forwarded-For", "198.51.100.9")
	req.RemoteAddr = "203.0.113.7:51234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "203.0.113.7", captured.RemoteIP.String())
}
