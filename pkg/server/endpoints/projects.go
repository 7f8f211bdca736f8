package endpoints

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/taskgate/taskgate/pkg/audit"
	"github.com/taskgate/taskgate/pkg/catalog"
	"github.com/taskgate/taskgate/pkg/idempotency"
	"github.com/taskgate/taskgate/pkg/model"
	"github.com/taskgate/taskgate/pkg/server"
	"github.com/taskgate/taskgate/pkg/server/store"
)

// ProjectRequest represents the body of project create and patch requests
type ProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// ProjectResponse represents a project in API responses
type ProjectResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	ArchivedAt  *time.Time `json:"archived_at,omitempty"`
}

// ProjectListResponse represents the response of GET /projects
type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
	Count    int64             `json:"count"`
}

// InviteResponse represents a freshly issued invite token
type InviteResponse struct {
	Token string `json:"token"`
}

// JoinRequest represents the body of POST /projects/join
type JoinRequest struct {
	Token string `json:"token"`
}

// JoinResponse represents a successful join
type JoinResponse struct {
	MembershipID string `json:"membership_id"`
	ProjectID    string `json:"project_id"`
}

func projectResponse(p *model.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		ArchivedAt:  p.ArchivedAt,
	}
}

// RegisterProjectsEndpoints registers the project endpoints
func RegisterProjectsEndpoints(s *server.Server) {
	idem := idempotency.Middleware(s.Guard)

	r := s.Router.PathPrefix("/projects").Subrouter()
	r.Use(s.AuthMiddleware.Middleware)

	// Literal routes before {projectId}; mux matches in registration order.
	r.Handle("/join", handleJoinProject(s)).Methods("POST")

	r.Handle("", idem(handleCreateProject(s))).Methods("POST")
	r.Handle("", handleListProjects(s)).Methods("GET")
	r.Handle("/{projectId}", handleGetProject(s)).Methods("GET")
	r.Handle("/{projectId}", handlePatchProject(s)).Methods("PATCH")
	r.Handle("/{projectId}", handleArchiveProject(s)).Methods("DELETE")
	r.Handle("/{projectId}/invite", handleInviteToProject(s)).Methods("POST")
}

func handleCreateProject(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(w, r)
		if !ok {
			return
		}

		var req ProjectRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Name == nil || *req.Name == "" {
			respondWithError(w, http.StatusBadRequest, "name is required")
			return
		}

		project := &model.Project{Name: *req.Name}
		if req.Description != nil {
			project.Description = *req.Description
		}
		if err := s.ProjectsStore.Create(project); err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to create project")
			return
		}

		// The creator becomes the owner with every operation allowed.
		if _, err := s.Provisioner.CreateOwnerMembership(userID, project.ID); err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to provision owner membership")
			return
		}

		ops, _ := s.OperationsStore.List()
		audit.Log(audit.ProvisionEvent{
			UserID:    userID.String(),
			ProjectID: project.ID.String(),
			ClientIP:  remoteIP(r),
			Rules:     len(ops),
		})

		respondWithJSON(w, http.StatusCreated, projectResponse(project))
	}
}

func handleListProjects(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(w, r)
		if !ok {
			return
		}

		query := r.URL.Query()
		limit, _ := strconv.Atoi(query.Get("limit"))
		if limit <= 0 || limit > s.Config.APIListLimitMax {
			limit = s.Config.APIListLimitMax
		}
		offset, _ := strconv.Atoi(query.Get("offset"))

		projects, count, err := s.ProjectsStore.List(store.ProjectListRequest{
			UserID:       userID,
			Name:         query.Get("name"),
			ShowArchived: query.Get("show_archived") == "true",
			Limit:        limit,
			Offset:       offset,
		})
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to list projects")
			return
		}

		resp := ProjectListResponse{Projects: make([]ProjectResponse, 0, len(projects)), Count: count}
		for i := range projects {
			resp.Projects = append(resp.Projects, projectResponse(&projects[i]))
		}
		respondWithJSON(w, http.StatusOK, resp)
	}
}

func handleGetProject(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := uuidVar(w, r, "projectId")
		if !ok {
			return
		}
		if !requireOperation(s.Engine, w, r, projectID, catalog.ProjectGet) {
			return
		}

		project, err := s.ProjectsStore.Find(projectID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to fetch project")
			return
		}
		if project == nil {
			respondWithError(w, http.StatusNotFound, "project not found")
			return
		}
		respondWithJSON(w, http.StatusOK, projectResponse(project))
	}
}

func handlePatchProject(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := uuidVar(w, r, "projectId")
		if !ok {
			return
		}
		if !requireOperation(s.Engine, w, r, projectID, catalog.ProjectPatch) {
			return
		}

		var req ProjectRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		project, err := s.ProjectsStore.Find(projectID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to fetch project")
			return
		}
		if project == nil || project.IsArchived() {
			respondWithError(w, http.StatusNotFound, "project not found")
			return
		}

		if req.Name != nil {
			if *req.Name == "" {
				respondWithError(w, http.StatusBadRequest, "name must not be empty")
				return
			}
			project.Name = *req.Name
		}
		if req.Description != nil {
			project.Description = *req.Description
		}

		if err := s.ProjectsStore.Update(project); err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to update project")
			return
		}
		respondWithJSON(w, http.StatusOK, projectResponse(project))
	}
}

func handleArchiveProject(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := uuidVar(w, r, "projectId")
		if !ok {
			return
		}
		if !requireOperation(s.Engine, w, r, projectID, catalog.ProjectArchive) {
			return
		}

		if err := s.ProjectsStore.Archive(projectID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "project not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "failed to archive project")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleInviteToProject(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := uuidVar(w, r, "projectId")
		if !ok {
			return
		}
		if !requireOperation(s.Engine, w, r, projectID, catalog.ProjectInvite) {
			return
		}

		project, err := s.ProjectsStore.Find(projectID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to fetch project")
			return
		}
		if project == nil || project.IsArchived() {
			respondWithError(w, http.StatusNotFound, "project not found")
			return
		}

		signed, err := s.Invites.Issue(projectID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to issue invite token")
			return
		}

		userID, _ := callerID(w, r)
		audit.Log(audit.InviteEvent{
			UserID:    userID.String(),
			ProjectID: projectID.String(),
			ClientIP:  remoteIP(r),
		})

		respondWithJSON(w, http.StatusCreated, InviteResponse{Token: signed})
	}
}

func handleJoinProject(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(w, r)
		if !ok {
			return
		}

		var req JoinRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		projectID, err := s.Invites.Verify(req.Token)
		if err != nil {
			audit.Log(audit.JoinEvent{
				UserID:       userID.String(),
				ClientIP:     remoteIP(r),
				Success:      false,
				ErrorMessage: "invalid invite token",
			})
			respondWithError(w, http.StatusBadRequest, "invalid invite token")
			return
		}

		project, err := s.ProjectsStore.Find(projectID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to fetch project")
			return
		}
		if project == nil || project.IsArchived() {
			respondWithError(w, http.StatusBadRequest, "invalid invite token")
			return
		}

		// Joiners start with an all-deny rule set; an owner grants access
		// afterwards via the rules endpoint.
		membership, err := s.Provisioner.CreateJoinerMembership(userID, projectID)
		if err != nil {
			if errors.Is(err, store.ErrDuplicateMembership) {
				audit.Log(audit.JoinEvent{
					UserID:       userID.String(),
					ProjectID:    projectID.String(),
					ClientIP:     remoteIP(r),
					Success:      false,
					ErrorMessage: "already a member",
				})
				respondWithError(w, http.StatusBadRequest, "already a member of this project")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "failed to join project")
			return
		}

		audit.Log(audit.JoinEvent{
			UserID:    userID.String(),
			ProjectID: projectID.String(),
			ClientIP:  remoteIP(r),
			Success:   true,
		})

		respondWithJSON(w, http.StatusCreated, JoinResponse{
			MembershipID: membership.ID.String(),
			ProjectID:    projectID.String(),
		})
	}
}
