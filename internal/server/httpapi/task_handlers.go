package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// TaskService performs ownership-checked task operations. Task ids are passed
// as the raw path segment; the owner check comes before the id is parsed.
type TaskService interface {
	List(ctx context.Context, p models.Principal, pathUserID string) ([]*models.Task, error)
	Create(ctx context.Context, p models.Principal, pathUserID string, in models.TaskCreate) (*models.Task, error)
	Get(ctx context.Context, p models.Principal, pathUserID, id string) (*models.Task, error)
	Update(ctx context.Context, p models.Principal, pathUserID, id string, in models.TaskUpdate) (*models.Task, error)
	Delete(ctx context.Context, p models.Principal, pathUserID, id string) error
	ToggleCompletion(ctx context.Context, p models.Principal, pathUserID, id string) (*models.Task, error)
}

type TaskHandler struct {
	tasks  TaskService
	logger logging.Logger
}

func (h *TaskHandler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.tasks.List(r.Context(), principalFrom(r.Context()), r.PathValue("user_id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *TaskHandler) create(w http.ResponseWriter, r *http.Request) {
	var in models.TaskCreate
	if err := readJSON(w, r, &in); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	t, err := h.tasks.Create(r.Context(), principalFrom(r.Context()), r.PathValue("user_id"), in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *TaskHandler) get(w http.ResponseWriter, r *http.Request) {
	t, err := h.tasks.Get(r.Context(), principalFrom(r.Context()), r.PathValue("user_id"), r.PathValue("id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *TaskHandler) update(w http.ResponseWriter, r *http.Request) {
	var in models.TaskUpdate
	if err := readJSON(w, r, &in); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	t, err := h.tasks.Update(r.Context(), principalFrom(r.Context()), r.PathValue("user_id"), r.PathValue("id"), in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *TaskHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.tasks.Delete(r.Context(), principalFrom(r.Context()), r.PathValue("user_id"), r.PathValue("id")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}

func (h *TaskHandler) toggle(w http.ResponseWriter, r *http.Request) {
	t, err := h.tasks.ToggleCompletion(r.Context(), principalFrom(r.Context()), r.PathValue("user_id"), r.PathValue("id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}
