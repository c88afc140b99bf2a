package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
)

// Actions named in forbidden messages.
const (
	actionAccess = "access"
	actionCreate = "create"
	actionUpdate = "update"
	actionDelete = "delete"
)

// TaskService performs task CRUD on behalf of a verified principal. Every
// method first checks that the principal owns the user_id in the path.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

func (s *TaskService) repo() tasks.Repository {
	return s.repomanager.Tasks(s.db)
}

func authorize(p models.Principal, pathUserID, action string) error {
	if p.ID == "" || p.ID != pathUserID {
		return common.WithDetail(common.ErrorForbidden,
			fmt.Sprintf("Not authorized to %s tasks for this user", action))
	}
	return nil
}

// parseTaskID turns the {id} path segment into a task id. Anything that is
// not a positive int64 is reported as a missing task. It runs after
// authorize so a foreign owner always gets 403.
func parseTaskID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, common.WithDetail(common.ErrorNotFound, "Task not found")
	}
	return id, nil
}

// storeError keeps ErrorNotFound recognisable and turns everything else
// into ErrorInternal.
func storeError(err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.WithDetail(common.ErrorNotFound, "Task not found")
	}
	return fmt.Errorf("%w: %v", common.ErrorInternal, err)
}

func (s *TaskService) List(ctx context.Context, p models.Principal, pathUserID string) ([]*models.Task, error) {
	if err := authorize(p, pathUserID, actionAccess); err != nil {
		return nil, err
	}
	list, err := s.repo().ListByUser(ctx, p.ID)
	if err != nil {
		return nil, storeError(err)
	}
	return list, nil
}

// Create stores a new task owned by the principal. The body's user_id must
// name the same user as the path.
func (s *TaskService) Create(ctx context.Context, p models.Principal, pathUserID string, in models.TaskCreate) (*models.Task, error) {
	if err := authorize(p, pathUserID, actionCreate); err != nil {
		return nil, err
	}
	if in.UserID != pathUserID {
		return nil, common.WithDetail(common.ErrorValidation, "User ID in request does not match authenticated user")
	}
	if err := validateTitle(in.Title); err != nil {
		return nil, err
	}
	if err := validateDescription(in.Description); err != nil {
		return nil, err
	}

	t, err := s.repo().Create(ctx, &models.Task{
		UserID:      p.ID,
		Title:       in.Title,
		Description: in.Description,
		Completed:   in.Completed,
	})
	if err != nil {
		return nil, storeError(err)
	}
	return t, nil
}

func (s *TaskService) Get(ctx context.Context, p models.Principal, pathUserID, rawID string) (*models.Task, error) {
	if err := authorize(p, pathUserID, actionAccess); err != nil {
		return nil, err
	}
	id, err := parseTaskID(rawID)
	if err != nil {
		return nil, err
	}
	t, err := s.repo().Get(ctx, p.ID, id)
	if err != nil {
		return nil, storeError(err)
	}
	return t, nil
}

// Update applies the non-nil fields of in.
func (s *TaskService) Update(ctx context.Context, p models.Principal, pathUserID, rawID string, in models.TaskUpdate) (*models.Task, error) {
	if err := authorize(p, pathUserID, actionUpdate); err != nil {
		return nil, err
	}
	id, err := parseTaskID(rawID)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		if err := validateTitle(*in.Title); err != nil {
			return nil, err
		}
	}
	if err := validateDescription(in.Description); err != nil {
		return nil, err
	}

	repo := s.repo()
	t, err := repo.Get(ctx, p.ID, id)
	if err != nil {
		return nil, storeError(err)
	}

	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = in.Description
	}
	if in.Completed != nil {
		t.Completed = *in.Completed
	}

	updated, err := repo.Update(ctx, t)
	if err != nil {
		return nil, storeError(err)
	}
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, p models.Principal, pathUserID, rawID string) error {
	if err := authorize(p, pathUserID, actionDelete); err != nil {
		return err
	}
	id, err := parseTaskID(rawID)
	if err != nil {
		return err
	}
	if err := s.repo().Delete(ctx, p.ID, id); err != nil {
		return storeError(err)
	}
	return nil
}

// ToggleCompletion flips the completed flag and returns the updated task.
func (s *TaskService) ToggleCompletion(ctx context.Context, p models.Principal, pathUserID, rawID string) (*models.Task, error) {
	if err := authorize(p, pathUserID, actionUpdate); err != nil {
		return nil, err
	}
	id, err := parseTaskID(rawID)
	if err != nil {
		return nil, err
	}
	t, err := s.repo().ToggleCompletion(ctx, p.ID, id)
	if err != nil {
		return nil, storeError(err)
	}
	return t, nil
}
