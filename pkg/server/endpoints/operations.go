package endpoints

import (
	"net/http"

	"github.com/taskgate/taskgate/pkg/server"
)

// OperationResponse represents a cataloged operation
type OperationResponse struct {
	ID          string `json:"id"`
	Controller  string `json:"controller"`
	Action      string `json:"action"`
	Description string `json:"description"`
}

// RegisterOperationsEndpoints registers the operation catalog endpoint
func RegisterOperationsEndpoints(s *server.Server) {
	r := s.Router.PathPrefix("/operations").Subrouter()
	r.Use(s.AuthMiddleware.Middleware)

	r.Handle("", handleListOperations(s)).Methods("GET")
}

func handleListOperations(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := callerID(w, r); !ok {
			return
		}

		ops, err := s.OperationsStore.List()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to list operations")
			return
		}

		resp := make([]OperationResponse, 0, len(ops))
		for _, op := range ops {
			resp = append(resp, OperationResponse{
				ID:          op.ID.String(),
				Controller:  op.Controller,
				Action:      op.Action,
				Description: op.Description,
			})
		}
		respondWithJSON(w, http.StatusOK, resp)
	}
}
