package tasks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// MemoryRepository stores tasks in a map with a sequential id counter.
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	tasks  map[int64]models.Task
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{tasks: make(map[int64]models.Task)}
}

func (r *MemoryRepository) ListByUser(ctx context.Context, userID string) ([]*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Task, 0)
	for _, t := range r.tasks {
		if t.UserID == userID {
			result = append(result, &t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *MemoryRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := time.Now().UTC()
	t := *task
	t.ID = r.nextID
	t.CreatedAt = now
	t.UpdatedAt = now
	r.tasks[t.ID] = t

	return &t, nil
}

func (r *MemoryRepository) Get(ctx context.Context, userID string, id int64) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id]
	if !ok || t.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return &t, nil
}

func (r *MemoryRepository) Update(ctx context.Context, task *models.Task) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[task.ID]
	if !ok || t.UserID != task.UserID {
		return nil, common.ErrorNotFound
	}
	t.Title = task.Title
	t.Description = task.Description
	t.Completed = task.Completed
	t.UpdatedAt = time.Now().UTC()
	r.tasks[t.ID] = t

	return &t, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, userID string, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok || t.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *MemoryRepository) ToggleCompletion(ctx context.Context, userID string, id int64) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok || t.UserID != userID {
		return nil, common.ErrorNotFound
	}
	t.Completed = !t.Completed
	t.UpdatedAt = time.Now().UTC()
	r.tasks[id] = t

	return &t, nil
}
