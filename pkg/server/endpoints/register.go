package endpoints

import (
	"github.com/taskgate/taskgate/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterAuthnEndpoints(srv)
	RegisterStatusEndpoints(srv)
	RegisterWhoamiEndpoint(srv)
	RegisterOperationsEndpoints(srv)
	RegisterProjectsEndpoints(srv)
	RegisterTasksEndpoints(srv)
	RegisterRulesEndpoints(srv)
}
