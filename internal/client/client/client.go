package client

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
)

// Client is the API surface the CLI needs.
type Client interface {
	Register(ctx context.Context, email, password string, name *string) (*models.AuthResult, error)
	Login(ctx context.Context, email, password string) (*models.AuthResult, error)
	Logout()
	ListTasks(ctx context.Context, userID string) ([]models.Task, error)
	CreateTask(ctx context.Context, userID string, in models.NewTask) (*models.Task, error)
	ToggleTask(ctx context.Context, userID string, id int64) (*models.Task, error)
	DeleteTask(ctx context.Context, userID string, id int64) error
}
