package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/taskgate/taskgate/pkg/identity"
	"github.com/taskgate/taskgate/pkg/token"
)

// TrustChecker reports whether a peer address belongs to a trusted
// reverse proxy, in which case X-Forwarded-For is honored.
type TrustChecker interface {
	IsTrustedProxy(ip string) bool
}

// Authenticator is middleware that validates bearer access tokens and
// attaches the caller's identity to the request context.
type Authenticator struct {
	tokens *token.Service
	trust  TrustChecker
}

// NewAuthenticator creates a new authenticator middleware.
func NewAuthenticator(tokens *token.Service, trust TrustChecker) *Authenticator {
	return &Authenticator{tokens: tokens, trust: trust}
}

// Middleware returns an HTTP middleware that validates access tokens
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")

		if authHeader == "" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Authorization missing"))
			return
		}

		const prefix = "Bearer "
		if !strings.HasPrefix(authHeader, prefix) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Malformed authorization header"))
			return
		}

		id, err := a.tokens.Verify(strings.TrimPrefix(authHeader, prefix))
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Invalid or expired token"))
			return
		}

		id.WithRemoteIP(a.clientIP(r))

		next.ServeHTTP(w, r.WithContext(identity.Set(r.Context(), id)))
	})
}

// clientIP resolves the originating client address. X-Forwarded-For is
// only believed when the direct peer is a trusted proxy.
func (a *Authenticator) clientIP(r *http.Request) net.IP {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	peer := net.ParseIP(host)

	if a.trust != nil && peer != nil && a.trust.IsTrustedProxy(host) {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			first := strings.TrimSpace(strings.Split(fwd, ",")[0])
			if ip := net.ParseIP(first); ip != nil {
				return ip
			}
		}
	}
	return peer
}
