package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

const taskColumns = `id, user_id, title, description, completed, created_at, updated_at`

// PostgresRepository implements task storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (*models.Task, error) {
	var t models.Task
	if err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// scanOne maps sql.ErrNoRows to common.ErrorNotFound.
func scanOne(row *sql.Row) (*models.Task, error) {
	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

// ListByUser returns the user's tasks ordered by id.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE user_id = $1
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	query := `INSERT INTO tasks (user_id, title, description, completed)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + taskColumns

	return scanOne(r.db.QueryRowContext(ctx, query, task.UserID, task.Title, task.Description, task.Completed))
}

func (r *PostgresRepository) Get(ctx context.Context, userID string, id int64) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE id = $1 AND user_id = $2`

	return scanOne(r.db.QueryRowContext(ctx, query, id, userID))
}

// Update writes title, description and completed of an existing task and
// bumps updated_at.
func (r *PostgresRepository) Update(ctx context.Context, task *models.Task) (*models.Task, error) {
	query := `UPDATE tasks
		SET title = $1, description = $2, completed = $3, updated_at = now()
		WHERE id = $4 AND user_id = $5
		RETURNING ` + taskColumns

	return scanOne(r.db.QueryRowContext(ctx, query, task.Title, task.Description, task.Completed, task.ID, task.UserID))
}

func (r *PostgresRepository) Delete(ctx context.Context, userID string, id int64) error {
	query := `DELETE FROM tasks WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// ToggleCompletion flips completed in a single statement.
func (r *PostgresRepository) ToggleCompletion(ctx context.Context, userID string, id int64) (*models.Task, error) {
	query := `UPDATE tasks
		SET completed = NOT completed, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + taskColumns

	return scanOne(r.db.QueryRowContext(ctx, query, id, userID))
}
