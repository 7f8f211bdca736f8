package endpoints

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/taskgate/taskgate/pkg/audit"
	"github.com/taskgate/taskgate/pkg/catalog"
	"github.com/taskgate/taskgate/pkg/server"
	"github.com/taskgate/taskgate/pkg/server/store"
)

// RuleItem represents one permission bit in API requests and responses
type RuleItem struct {
	OperationID string `json:"operation_id"`
	Controller  string `json:"controller,omitempty"`
	Action      string `json:"action,omitempty"`
	Access      bool   `json:"access"`
}

// RulesResponse represents a member's permission matrix
type RulesResponse struct {
	MembershipID string     `json:"membership_id"`
	Rules        []RuleItem `json:"rules"`
}

// ReplaceRulesRequest represents the body of the rule replacement endpoint
type ReplaceRulesRequest struct {
	Rules []RuleItem `json:"rules"`
}

// RegisterRulesEndpoints registers the permission matrix endpoints
func RegisterRulesEndpoints(s *server.Server) {
	r := s.Router.PathPrefix("/projects/{projectId}/members/{userId}/rules").Subrouter()
	r.Use(s.AuthMiddleware.Middleware)

	r.Handle("", handleListRules(s)).Methods("GET")
	r.Handle("", handleReplaceRules(s)).Methods("PUT")
}

// memberMembership resolves the membership for the member named in the
// path. Writes a 404 when that user is not in the project.
func memberMembership(s *server.Server, w http.ResponseWriter, memberID, projectID uuid.UUID) (uuid.UUID, bool) {
	membership, err := s.MembershipsStore.Find(memberID, projectID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to resolve membership")
		return uuid.Nil, false
	}
	if membership == nil {
		respondWithError(w, http.StatusNotFound, "membership not found")
		return uuid.Nil, false
	}
	return membership.ID, true
}

func handleListRules(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := uuidVar(w, r, "projectId")
		if !ok {
			return
		}
		memberID, ok := uuidVar(w, r, "userId")
		if !ok {
			return
		}
		if !requireOperation(s.Engine, w, r, projectID, catalog.RuleList) {
			return
		}

		membershipID, ok := memberMembership(s, w, memberID, projectID)
		if !ok {
			return
		}

		rows, err := s.PermissionsStore.Get(membershipID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to fetch rules")
			return
		}

		resp := RulesResponse{MembershipID: membershipID.String(), Rules: make([]RuleItem, 0, len(rows))}
		for _, row := range rows {
			resp.Rules = append(resp.Rules, RuleItem{
				OperationID: row.OperationID.String(),
				Controller:  row.Controller,
				Action:      row.Action,
				Access:      row.Access,
			})
		}
		respondWithJSON(w, http.StatusOK, resp)
	}
}

func handleReplaceRules(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := uuidVar(w, r, "projectId")
		if !ok {
			return
		}
		memberID, ok := uuidVar(w, r, "userId")
		if !ok {
			return
		}
		if !requireOperation(s.Engine, w, r, projectID, catalog.RuleReplace) {
			return
		}

		var req ReplaceRulesRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		assignments := make([]store.RuleAssignment, 0, len(req.Rules))
		for _, item := range req.Rules {
			opID, err := uuid.Parse(item.OperationID)
			if err != nil {
				respondWithError(w, http.StatusBadRequest, "invalid operation_id")
				return
			}
			assignments = append(assignments, store.RuleAssignment{
				OperationID: opID,
				Access:      item.Access,
			})
		}

		membershipID, ok := memberMembership(s, w, memberID, projectID)
		if !ok {
			return
		}

		actorID, _ := callerID(w, r)

		// Full replace: operations absent from the request lose their
		// rows, which the engine reads as deny.
		if err := s.PermissionsStore.ReplaceAll(membershipID, assignments); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "membership not found")
				return
			}
			audit.Log(audit.ReplaceRulesEvent{
				ActorID:      actorID.String(),
				MemberID:     memberID.String(),
				ProjectID:    projectID.String(),
				ClientIP:     remoteIP(r),
				Rules:        len(assignments),
				Success:      false,
				ErrorMessage: err.Error(),
			})
			respondWithError(w, http.StatusInternalServerError, "failed to replace rules")
			return
		}

		audit.Log(audit.ReplaceRulesEvent{
			ActorID:   actorID.String(),
			MemberID:  memberID.String(),
			ProjectID: projectID.String(),
			ClientIP:  remoteIP(r),
			Rules:     len(assignments),
			Success:   true,
		})

		rows, err := s.PermissionsStore.Get(membershipID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to fetch rules")
			return
		}
		resp := RulesResponse{MembershipID: membershipID.String(), Rules: make([]RuleItem, 0, len(rows))}
		for _, row := range rows {
			resp.Rules = append(resp.Rules, RuleItem{
				OperationID: row.OperationID.String(),
				Controller:  row.Controller,
				Action:      row.Action,
				Access:      row.Access,
			})
		}
		respondWithJSON(w, http.StatusOK, resp)
	}
}
