package endpoints

import (
	"net/http"
	"time"

	"github.com/taskgate/taskgate/pkg/audit"
	"github.com/taskgate/taskgate/pkg/server"
	"github.com/taskgate/taskgate/pkg/server/store"
	"github.com/taskgate/taskgate/pkg/token"
)

// LoginRequest represents the body of POST /authn/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// RegisterAuthnEndpoints registers the authentication endpoints
func RegisterAuthnEndpoints(s *server.Server) {
	s.Router.HandleFunc("/authn/login", handleLogin(s.UsersStore, s.Tokens)).Methods("POST")
}

func handleLogin(users store.UsersStore, tokens *token.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Email == "" || req.Password == "" {
			respondWithError(w, http.StatusBadRequest, "email and password are required")
			return
		}

		clientIP := r.RemoteAddr

		user, err := users.FindByEmail(req.Email)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "authentication failed")
			return
		}
		// Same response for unknown email and wrong password.
		if user == nil || !user.CheckPassword(req.Password) {
			audit.Log(audit.AuthenticateEvent{
				Email:        req.Email,
				ClientIP:     clientIP,
				Success:      false,
				ErrorMessage: "invalid credentials",
			})
			respondWithError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		signed, expiresAt, err := tokens.Issue(user.ID, user.Email)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "authentication failed")
			return
		}

		audit.Log(audit.AuthenticateEvent{
			Email:    user.Email,
			ClientIP: clientIP,
			Success:  true,
		})

		respondWithJSON(w, http.StatusOK, LoginResponse{
			AccessToken: signed,
			TokenType:   "Bearer",
			ExpiresAt:   expiresAt,
		})
	}
}
