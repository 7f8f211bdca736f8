package endpoints

import (
	"net/http"
	"time"

	"github.com/taskgate/taskgate/pkg/identity"
	"github.com/taskgate/taskgate/pkg/server"
)

// WhoamiResponse represents the response from the /whoami endpoint
type WhoamiResponse struct {
	UserID   string    `json:"user_id"`
	Email    string    `json:"email"`
	ClientIP string    `json:"client_ip,omitempty"`
	TokenIAT time.Time `json:"token_iat"`
	TokenEXP time.Time `json:"token_exp"`
}

// RegisterWhoamiEndpoint registers the /whoami endpoint
func RegisterWhoamiEndpoint(s *server.Server) {
	r := s.Router.PathPrefix("/whoami").Subrouter()
	r.Use(s.AuthMiddleware.Middleware)

	r.HandleFunc("", handleWhoami()).Methods("GET")
}

func handleWhoami() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "unable to determine identity")
			return
		}

		resp := WhoamiResponse{
			UserID:   id.UserID.String(),
			Email:    id.Email,
			TokenIAT: id.IssuedAt,
			TokenEXP: id.ExpiresAt,
		}
		if id.RemoteIP != nil {
			resp.ClientIP = id.RemoteIP.String()
		}
		respondWithJSON(w, http.StatusOK, resp)
	}
}
