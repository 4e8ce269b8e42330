package repository

import (
	"context"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
)

// TaskRepository stores tasks. Every *ForUser method is scoped to the owner
// and returns ErrNotFound both for missing tasks and for tasks of other users.
type TaskRepository interface {
	Create(ctx context.Context, t *entity.Task) error
	// ListByUser orders FilterAll by due date ascending; filtered views keep
	// store order.
	ListByUser(ctx context.Context, userID string, filter entity.TaskFilter) ([]*entity.Task, error)
	GetForUser(ctx context.Context, userID, id string) (*entity.Task, error)
	UpdateForUser(ctx context.Context, t *entity.Task) error
	SetCompleted(ctx context.Context, userID, id string, completed bool) error
	DeleteForUser(ctx context.Context, userID, id string) error
}
