// Package tasks is the resource store for tasks. Every query is scoped by
// owner: a task that exists but belongs to someone else is reported as
// common.ErrorNotFound, exactly like a missing one.
package tasks

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]*models.Task, error)
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	Get(ctx context.Context, userID string, id int64) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) (*models.Task, error)
	Delete(ctx context.Context, userID string, id int64) error
	ToggleCompletion(ctx context.Context, userID string, id int64) (*models.Task, error)
}
