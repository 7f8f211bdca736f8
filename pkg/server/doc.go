// Package server provides the HTTP server for the TaskGate API.
//
// It uses gorilla/mux for routing and wires the stores, the
// authorization engine, the membership provisioner, and the token
// services into a single Server struct that handlers draw from.
//
// # Server Setup
//
//	srv := server.NewServer(db, cfg, logger, host, port)
//	endpoints.RegisterAll(srv)
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Endpoints
//
// API endpoints are registered via the endpoints subpackage:
//
//   - /authn/login - email and password authentication
//   - /projects - project CRUD, invites, joins
//   - /projects/{id}/tasks - task CRUD
//   - /projects/{id}/members/{userId}/rules - permission matrix
//   - /operations - operation catalog
//   - /whoami - token introspection
//   - /status - liveness and database connectivity
package server
