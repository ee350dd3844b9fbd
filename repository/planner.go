package repository

import (
	"context"

	"github.com/planora/backend/domain"
)

// BlockRepository provides durable storage for planner blocks.
type BlockRepository interface {
	List(ctx context.Context) ([]domain.PlannerBlock, error)
	GetByID(ctx context.Context, id int64) (*domain.PlannerBlock, error)
	Put(ctx context.Context, block *domain.PlannerBlock) error
	Delete(ctx context.Context, id int64) error
}

// PlannerSettingsRepository stores the pomodoro work/break configuration.
type PlannerSettingsRepository interface {
	WorkSettings(ctx context.Context) (domain.WorkSettings, error)
	SetWorkSettings(ctx context.Context, settings domain.WorkSettings) error
}
