package endpoints

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/taskgate/taskgate/pkg/catalog"
	"github.com/taskgate/taskgate/pkg/idempotency"
	"github.com/taskgate/taskgate/pkg/model"
	"github.com/taskgate/taskgate/pkg/server"
	"github.com/taskgate/taskgate/pkg/server/store"
)

// TaskRequest represents the body of task create, update, and patch requests
type TaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// TaskResponse represents a task in API responses. DescriptionHTML is
// the rendered, sanitized form of the markdown description.
type TaskResponse struct {
	ID              string     `json:"id"`
	ProjectID       string     `json:"project_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	DescriptionHTML string     `json:"description_html"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	ArchivedAt      *time.Time `json:"archived_at,omitempty"`
}

// TaskListResponse represents the response of the task list endpoint
type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Count int64          `json:"count"`
}

// RegisterTasksEndpoints registers the task endpoints
func RegisterTasksEndpoints(s *server.Server) {
	idem := idempotency.Middleware(s.Guard)

	r := s.Router.PathPrefix("/projects/{projectId}/tasks").Subrouter()
	r.Use(s.AuthMiddleware.Middleware)

	r.Handle("", idem(handleCreateTask(s))).Methods("POST")
	r.Handle("", handleListTasks(s)).Methods("GET")
	r.Handle("/{taskId}", handleGetTask(s)).Methods("GET")
	r.Handle("/{taskId}", handleUpdateTask(s)).Methods("PUT")
	r.Handle("/{taskId}", idem(handlePatchTask(s))).Methods("PATCH")
	r.Handle("/{taskId}", handleArchiveTask(s)).Methods("DELETE")
}

// statusNames loads the status id to name mapping once per request.
func statusNames(s *server.Server) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string)
	if statuses, err := s.TasksStore.Statuses(); err == nil {
		for _, st := range statuses {
			names[st.ID] = st.Name
		}
	}
	return names
}

func taskResponse(t *model.Task, statuses map[uuid.UUID]string) TaskResponse {
	return TaskResponse{
		ID:              t.ID.String(),
		ProjectID:       t.ProjectID.String(),
		Title:           t.Title,
		Description:     t.Description,
		DescriptionHTML: renderMarkdown(t.Description),
		Status:          statuses[t.StatusID],
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
		ArchivedAt:      t.ArchivedAt,
	}
}

// resolveStatus maps a status name to its id. Empty name falls back to
// "open".
func resolveStatus(s *server.Server, w http.ResponseWriter, name string) (uuid.UUID, bool) {
	if name == "" {
		name = "open"
	}
	status, err := s.TasksStore.FindStatusByName(name)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to resolve task status")
		return uuid.Nil, false
	}
	if status == nil {
		respondWithError(w, http.StatusBadRequest, "unknown task status")
		return uuid.Nil, false
	}
	return status.ID, true
}

// projectTask loads a task and confirms it belongs to the project in the
// path. A task from another project is a 404, not a 403, so task ids
// cannot be probed across projects.
func projectTask(s *server.Server, w http.ResponseWriter, projectID, taskID uuid.UUID) (*model.Task, bool) {
	task, err := s.TasksStore.Find(taskID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to fetch task")
		return nil, false
	}
	if task == nil || task.ProjectID != projectID {
		respondWithError(w, http.StatusNotFound, "task not found")
		return nil, false
	}
	return task, true
}

func handleCreateTask(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := uuidVar(w, r, "projectId")
		if !ok {
			return
		}
		if !requireOperation(s.Engine, w, r, projectID, catalog.TaskCreate) {
			return
		}

		var req TaskRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Title == nil || *req.Title == "" {
			respondWithError(w, http.StatusBadRequest, "title is required")
			return
		}

		statusName := ""
		if req.Status != nil {
			statusName = *req.Status
		}
		statusID, ok := resolveStatus(s, w, statusName)
		if !ok {
			return
		}

		task := &model.Task{
			ProjectID: projectID,
			Title:     *req.Title,
			StatusID:  statusID,
		}
		if req.Description != nil {
			task.Description = *req.Description
		}

		if err := s.TasksStore.Create(task); err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to create task")
			return
		}
		respondWithJSON(w, http.StatusCreated, taskResponse(task, statusNames(s)))
	}
}

func handleListTasks(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := uuidVar(w, r, "projectId")
		if !ok {
			return
		}
		if !requireOperation(s.Engine, w, r, projectID, catalog.TaskList) {
			return
		}

		query := r.URL.Query()
		limit, _ := strconv.Atoi(query.Get("limit"))
		if limit <= 0 || limit > s.Config.APIListLimitMax {
			limit = s.Config.APIListLimitMax
		}
		offset, _ := strconv.Atoi(query.Get("offset"))

		tasks, count, err := s.TasksStore.List(projectID, limit, offset)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to list tasks")
			return
		}

		statuses := statusNames(s)
		resp := TaskListResponse{Tasks: make([]TaskResponse, 0, len(tasks)), Count: count}
		for i := range tasks {
			resp.Tasks = append(resp.Tasks, taskResponse(&tasks[i], statuses))
		}
		respondWithJSON(w, http.StatusOK, resp)
	}
}

func handleGetTask(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := uuidVar(w, r, "projectId")
		if !ok {
			return
		}
		taskID, ok := uuidVar(w, r, "taskId")
		if !ok {
			return
		}
		if !requireOperation(s.Engine, w, r, projectID, catalog.TaskGet) {
			return
		}

		task, ok := projectTask(s, w, projectID, taskID)
		if !ok {
			return
		}
		respondWithJSON(w, http.StatusOK, taskResponse(task, statusNames(s)))
	}
}

func handleUpdateTask(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := uuidVar(w, r, "projectId")
		if !ok {
			return
		}
		taskID, ok := uuidVar(w, r, "taskId")
		if !ok {
			return
		}
		if !requireOperation(s.Engine, w, r, projectID, catalog.TaskUpdate) {
			return
		}

		var req TaskRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Title == nil || *req.Title == "" {
			respondWithError(w, http.StatusBadRequest, "title is required")
			return
		}

		task, ok := projectTask(s, w, projectID, taskID)
		if !ok {
			return
		}

		statusName := ""
		if req.Status != nil {
			statusName = *req.Status
		}
		statusID, ok := resolveStatus(s, w, statusName)
		if !ok {
			return
		}

		// PUT replaces the whole mutable surface.
		task.Title = *req.Title
		task.Description = ""
		if req.Description != nil {
			task.Description = *req.Description
		}
		task.StatusID = statusID

		if err := s.TasksStore.Update(task); err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to update task")
			return
		}
		respondWithJSON(w, http.StatusOK, taskResponse(task, statusNames(s)))
	}
}

func handlePatchTask(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := uuidVar(w, r, "projectId")
		if !ok {
			return
		}
		taskID, ok := uuidVar(w, r, "taskId")
		if !ok {
			return
		}
		if !requireOperation(s.Engine, w, r, projectID, catalog.TaskPatch) {
			return
		}

		var req TaskRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		task, ok := projectTask(s, w, projectID, taskID)
		if !ok {
			return
		}

		if req.Title != nil {
			if *req.Title == "" {
				respondWithError(w, http.StatusBadRequest, "title must not be empty")
				return
			}
			task.Title = *req.Title
		}
		if req.Description != nil {
			task.Description = *req.Description
		}
		if req.Status != nil {
			statusID, ok := resolveStatus(s, w, *req.Status)
			if !ok {
				return
			}
			task.StatusID = statusID
		}

		if err := s.TasksStore.Update(task); err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to update task")
			return
		}
		respondWithJSON(w, http.StatusOK, taskResponse(task, statusNames(s)))
	}
}

func handleArchiveTask(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := uuidVar(w, r, "projectId")
		if !ok {
			return
		}
		taskID, ok := uuidVar(w, r, "taskId")
		if !ok {
			return
		}
		if !requireOperation(s.Engine, w, r, projectID, catalog.TaskArchive) {
			return
		}

		if _, ok := projectTask(s, w, projectID, taskID); !ok {
			return
		}

		if err := s.TasksStore.Archive(taskID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "task not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "failed to archive task")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
