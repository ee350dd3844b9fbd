package repository

import (
	"context"
	"time"

	"github.com/planora/backend/domain"
)

// TaskRepository provides durable storage for active and archived tasks.
// Archive and Restore move a record between the two collections inside a
// single store transaction so callers never observe a half-moved state.
type TaskRepository interface {
	List(ctx context.Context) ([]domain.Task, error)
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	Put(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id int64) error

	ListArchived(ctx context.Context) ([]domain.ArchivedTask, error)
	PutArchived(ctx context.Context, task *domain.ArchivedTask) error
	Archive(ctx context.Context, task *domain.Task, at time.Time) error
	Restore(ctx context.Context, id int64) (*domain.Task, error)
	DeleteArchived(ctx context.Context, id int64) error
}
