package bolt

import (
	"context"
	"encoding/json"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/planora/backend/domain"
)

// TaskRepository persists active and archived tasks in the shared store.
type TaskRepository struct {
	store *Store
}

func NewTaskRepository(store *Store) *TaskRepository {
	return &TaskRepository{store: store}
}

func (r *TaskRepository) List(ctx context.Context) ([]domain.Task, error) {
	if err := r.store.ready(); err != nil {
		return nil, err
	}
	var tasks []domain.Task
	err := r.store.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketTasks).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var task domain.Task
			if err := json.Unmarshal(v, &task); err != nil {
				continue
			}
			tasks = append(tasks, task)
		}
		return nil
	})
	return tasks, err
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	if err := r.store.ready(); err != nil {
		return nil, err
	}
	var task *domain.Task
	err := r.store.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketTasks).Get(itob(id))
		if raw == nil {
			return domain.ErrTaskNotFound
		}
		task = new(domain.Task)
		return json.Unmarshal(raw, task)
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (r *TaskRepository) Put(ctx context.Context, task *domain.Task) error {
	if err := r.store.ready(); err != nil {
		return err
	}
	payload, err := json.Marshal(task)
	if err != nil {
		return err
	}
	return r.store.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketTasks).Put(itob(task.ID), payload)
	})
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	if err := r.store.ready(); err != nil {
		return err
	}
	return r.store.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketTasks)
		if b.Get(itob(id)) == nil {
			return domain.ErrTaskNotFound
		}
		return b.Delete(itob(id))
	})
}

func (r *TaskRepository) ListArchived(ctx context.Context) ([]domain.ArchivedTask, error) {
	if err := r.store.ready(); err != nil {
		return nil, err
	}
	var archived []domain.ArchivedTask
	err := r.store.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketArchived).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var task domain.ArchivedTask
			if err := json.Unmarshal(v, &task); err != nil {
				continue
			}
			archived = append(archived, task)
		}
		return nil
	})
	return archived, err
}

// Archive moves a task from the active bucket to the archive bucket in
// one transaction, stamping ArchivedAt.
func (r *TaskRepository) Archive(ctx context.Context, task *domain.Task, at time.Time) error {
	if err := r.store.ready(); err != nil {
		return err
	}
	snapshot := domain.ArchivedTask{Task: *task, ArchivedAt: at}
	snapshot.Completed = true
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return r.store.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketTasks).Delete(itob(task.ID)); err != nil {
			return err
		}
		return tx.Bucket(bucketArchived).Put(itob(task.ID), payload)
	})
}

// Restore moves an archived task back to the active bucket, clearing
// Completed and ArchivedAt, again in one transaction.
func (r *TaskRepository) Restore(ctx context.Context, id int64) (*domain.Task, error) {
	if err := r.store.ready(); err != nil {
		return nil, err
	}
	var restored *domain.Task
	err := r.store.db.Update(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketArchived).Get(itob(id))
		if raw == nil {
			return domain.ErrArchivedNotFound
		}
		var snapshot domain.ArchivedTask
		if err := json.Unmarshal(raw, &snapshot); err != nil {
			return err
		}
		task := snapshot.Task
		task.Completed = false
		payload, err := json.Marshal(&task)
		if err != nil {
			return err
		}
		if err := tx.Bucket(bucketArchived).Delete(itob(id)); err != nil {
			return err
		}
		if err := tx.Bucket(bucketTasks).Put(itob(id), payload); err != nil {
			return err
		}
		restored = &task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return restored, nil
}

func (r *TaskRepository) DeleteArchived(ctx context.Context, id int64) error {
	if err := r.store.ready(); err != nil {
		return err
	}
	return r.store.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketArchived)
		if b.Get(itob(id)) == nil {
			return domain.ErrArchivedNotFound
		}
		return b.Delete(itob(id))
	})
}

// PutArchived upserts an archived record directly. Used by the import
// path, which restores archive snapshots verbatim.
func (r *TaskRepository) PutArchived(ctx context.Context, task *domain.ArchivedTask) error {
	if err := r.store.ready(); err != nil {
		return err
	}
	payload, err := json.Marshal(task)
	if err != nil {
		return err
	}
	return r.store.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketArchived).Put(itob(task.ID), payload)
	})
}
