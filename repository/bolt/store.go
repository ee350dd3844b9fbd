// Package bolt implements the repository interfaces on top of an
// embedded bbolt database. Every collection is a bucket holding
// JSON-encoded records keyed by big-endian id.
package bolt

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/planora/backend/domain"
)

// Bucket names, one per collection from the store contract.
var (
	bucketTasks           = []byte("tasks")
	bucketArchived        = []byte("archived")
	bucketSettings        = []byte("settings")
	bucketPlannerBlocks   = []byte("plannerBlocks")
	bucketPlannerSettings = []byte("plannerSettings")
)

func buckets() [][]byte {
	return [][]byte{
		bucketTasks,
		bucketArchived,
		bucketSettings,
		bucketPlannerBlocks,
		bucketPlannerSettings,
	}
}

// Store wraps the bbolt database handle shared by all repositories.
type Store struct {
	db *bolt.DB
}

// Open initializes the database file and ensures every bucket exists.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		for _, name := range buckets() {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Reset drops and recreates every bucket. Used by the destructive
// clear-all operation; callers are expected to have confirmed.
func (s *Store) Reset() error {
	if s == nil || s.db == nil {
		return domain.ErrStoreUnavailable
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range buckets() {
			if err := tx.DeleteBucket(name); err != nil {
				return err
			}
			if _, err := tx.CreateBucket(name); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Stats exposes bbolt statistics for the health endpoint.
func (s *Store) Stats() bolt.Stats {
	if s == nil || s.db == nil {
		return bolt.Stats{}
	}
	return s.db.Stats()
}

func (s *Store) ready() error {
	if s == nil || s.db == nil {
		return domain.ErrStoreUnavailable
	}
	return nil
}

func itob(id int64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(id))
	return key
}
