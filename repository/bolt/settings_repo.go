package bolt

import (
	"context"
	"encoding/json"

	bolt "go.etcd.io/bbolt"

	"github.com/planora/backend/domain"
)

// SettingsRepository persists {id, value} setting rows keyed by name.
type SettingsRepository struct {
	store *Store
}

func NewSettingsRepository(store *Store) *SettingsRepository {
	return &SettingsRepository{store: store}
}

func (r *SettingsRepository) All(ctx context.Context) ([]domain.Setting, error) {
	if err := r.store.ready(); err != nil {
		return nil, err
	}
	var settings []domain.Setting
	err := r.store.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketSettings).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var setting domain.Setting
			if err := json.Unmarshal(v, &setting); err != nil {
				continue
			}
			settings = append(settings, setting)
		}
		return nil
	})
	return settings, err
}

func (r *SettingsRepository) Get(ctx context.Context, id string) (*domain.Setting, error) {
	if err := r.store.ready(); err != nil {
		return nil, err
	}
	var setting *domain.Setting
	err := r.store.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketSettings).Get([]byte(id))
		if raw == nil {
			return domain.ErrSettingNotFound
		}
		setting = new(domain.Setting)
		return json.Unmarshal(raw, setting)
	})
	if err != nil {
		return nil, err
	}
	return setting, nil
}

func (r *SettingsRepository) Set(ctx context.Context, setting domain.Setting) error {
	if err := r.store.ready(); err != nil {
		return err
	}
	if setting.ID == "" {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(setting)
	if err != nil {
		return err
	}
	return r.store.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSettings).Put([]byte(setting.ID), payload)
	})
}

// SeedDefaults writes every default setting that is not yet present, so
// a fresh database boots with a usable configuration.
func (r *SettingsRepository) SeedDefaults(ctx context.Context) error {
	if err := r.store.ready(); err != nil {
		return err
	}
	return r.store.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSettings)
		for _, setting := range domain.DefaultSettings() {
			if b.Get([]byte(setting.ID)) != nil {
				continue
			}
			payload, err := json.Marshal(setting)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(setting.ID), payload); err != nil {
				return err
			}
		}
		return nil
	})
}
