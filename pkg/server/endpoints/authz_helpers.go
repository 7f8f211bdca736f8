package endpoints

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/taskgate/taskgate/pkg/authz"
	"github.com/taskgate/taskgate/pkg/catalog"
	"github.com/taskgate/taskgate/pkg/identity"
)

// callerID pulls the authenticated user id from the request context.
// Writes a 401 and returns false when the auth middleware did not run.
func callerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := identity.Get(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unable to determine identity")
		return uuid.Nil, false
	}
	return id.UserID, true
}

// requireOperation runs the engine for the caller against (project, op).
// A deny writes a 403 and returns false; handlers simply return.
func requireOperation(engine *authz.Engine, w http.ResponseWriter, r *http.Request, projectID uuid.UUID, op catalog.Key) bool {
	userID, ok := callerID(w, r)
	if !ok {
		return false
	}
	if engine.Authorize(r.Context(), userID, projectID, op) != authz.DecisionAllow {
		respondWithError(w, http.StatusForbidden, "forbidden")
		return false
	}
	return true
}
