package endpoints

import (
	"net/http"
	"os"

	"github.com/taskgate/taskgate/pkg/server"
	"github.com/taskgate/taskgate/pkg/server/store"
)

// StatusResponse represents the response from the /status endpoint
type StatusResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Database string `json:"database"`
}

// RegisterStatusEndpoints registers the status endpoint. No auth: load
// balancers probe it.
func RegisterStatusEndpoints(s *server.Server) {
	s.Router.HandleFunc("/status", handleStatus(s.HealthStore)).Methods("GET")
}

func handleStatus(health store.HealthStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		version := os.Getenv("TASKGATE_VERSION_DISPLAY")
		if version == "" {
			version = "0.1.0"
		}

		resp := StatusResponse{Status: "ok", Version: version, Database: "ok"}
		code := http.StatusOK
		if err := health.CheckConnectivity(); err != nil {
			resp.Status = "error"
			resp.Database = "unreachable"
			code = http.StatusServiceUnavailable
		}
		respondWithJSON(w, code, resp)
	}
}
