package bolt

import (
	"context"
	"encoding/json"

	bolt "go.etcd.io/bbolt"

	"github.com/planora/backend/domain"
)

// BlockRepository persists planner blocks.
type BlockRepository struct {
	store *Store
}

func NewBlockRepository(store *Store) *BlockRepository {
	return &BlockRepository{store: store}
}

func (r *BlockRepository) List(ctx context.Context) ([]domain.PlannerBlock, error) {
	if err := r.store.ready(); err != nil {
		return nil, err
	}
	var blocks []domain.PlannerBlock
	err := r.store.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketPlannerBlocks).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var block domain.PlannerBlock
			if err := json.Unmarshal(v, &block); err != nil {
				continue
			}
			blocks = append(blocks, block)
		}
		return nil
	})
	return blocks, err
}

func (r *BlockRepository) GetByID(ctx context.Context, id int64) (*domain.PlannerBlock, error) {
	if err := r.store.ready(); err != nil {
		return nil, err
	}
	var block *domain.PlannerBlock
	err := r.store.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketPlannerBlocks).Get(itob(id))
		if raw == nil {
			return domain.ErrBlockNotFound
		}
		block = new(domain.PlannerBlock)
		return json.Unmarshal(raw, block)
	})
	if err != nil {
		return nil, err
	}
	return block, nil
}

func (r *BlockRepository) Put(ctx context.Context, block *domain.PlannerBlock) error {
	if err := r.store.ready(); err != nil {
		return err
	}
	payload, err := json.Marshal(block)
	if err != nil {
		return err
	}
	return r.store.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPlannerBlocks).Put(itob(block.ID), payload)
	})
}

func (r *BlockRepository) Delete(ctx context.Context, id int64) error {
	if err := r.store.ready(); err != nil {
		return err
	}
	return r.store.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPlannerBlocks)
		if b.Get(itob(id)) == nil {
			return domain.ErrBlockNotFound
		}
		return b.Delete(itob(id))
	})
}
