package repository

import (
	"context"

	"github.com/planora/backend/domain"
)

// SettingsRepository stores {id, value} rows keyed by setting name.
type SettingsRepository interface {
	All(ctx context.Context) ([]domain.Setting, error)
	Get(ctx context.Context, id string) (*domain.Setting, error)
	Set(ctx context.Context, setting domain.Setting) error
	// SeedDefaults writes every default setting that is not yet present.
	SeedDefaults(ctx context.Context) error
}
