package bolt

import (
	"context"
	"encoding/json"

	bolt "go.etcd.io/bbolt"

	"github.com/planora/backend/domain"
)

var workSettingsKey = []byte("workSettings")

// PlannerSettingsRepository persists the pomodoro work/break durations.
type PlannerSettingsRepository struct {
	store *Store
}

func NewPlannerSettingsRepository(store *Store) *PlannerSettingsRepository {
	return &PlannerSettingsRepository{store: store}
}

// WorkSettings returns the stored configuration, falling back to the
// 25/5 default when nothing has been saved yet.
func (r *PlannerSettingsRepository) WorkSettings(ctx context.Context) (domain.WorkSettings, error) {
	settings := domain.DefaultWorkSettings()
	if err := r.store.ready(); err != nil {
		return settings, err
	}
	err := r.store.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketPlannerSettings).Get(workSettingsKey)
		if raw == nil {
			return nil
		}
		return json.Unmarshal(raw, &settings)
	})
	return settings, err
}

func (r *PlannerSettingsRepository) SetWorkSettings(ctx context.Context, settings domain.WorkSettings) error {
	if err := r.store.ready(); err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	payload, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return r.store.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPlannerSettings).Put(workSettingsKey, payload)
	})
}
