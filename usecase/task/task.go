package task

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/planora/backend/domain"
	applog "github.com/planora/backend/pkg/logger"
	"github.com/planora/backend/repository"
)

// Service owns the task lifecycle: creation, completion with recurrence
// expansion, archive moves, field edits and deletion. Every mutation
// goes through the repository and reports its outcome; there is no
// optimistic in-memory copy to diverge from the store.
type Service struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
	now    func() time.Time

	mu     sync.Mutex
	lastID int64
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		tasks:  tasks,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the wall clock, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// NextID hands out time-based ids that stay strictly increasing even
// when several tasks are created within the same millisecond.
func (s *Service) NextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// Draft carries the user-supplied fields of a new task.
type Draft struct {
	Text       string
	Pinned     domain.PinMode
	Importance bool
	Urgency    bool
	Recurrence domain.Recurrence
	DueDate    string
	Value      *int
	Effort     *int
}

// Create validates the draft, fills defaults and persists the new task.
func (s *Service) Create(ctx context.Context, draft Draft) (*domain.Task, error) {
	if draft.Pinned == "" {
		draft.Pinned = domain.PinNone
	}
	if draft.Recurrence == "" {
		draft.Recurrence = domain.RecurNone
	}
	task := &domain.Task{
		ID:         s.NextID(),
		Text:       draft.Text,
		Completed:  false,
		Pinned:     draft.Pinned,
		Importance: draft.Importance,
		Urgency:    draft.Urgency,
		Recurrence: draft.Recurrence,
		CreatedAt:  s.now(),
		DueDate:    draft.DueDate,
		Value:      draft.Value,
		Effort:     draft.Effort,
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}
	if err := s.tasks.Put(ctx, task); err != nil {
		return nil, err
	}
	applog.WithRequestID(ctx, s.logger).Info("task created", zap.Int64("task_id", task.ID))
	return task, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Task, error) {
	return s.tasks.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

// ListFiltered runs the filter/sort pipeline over the active collection.
// Completed tasks never survive; the archive holds them.
func (s *Service) ListFiltered(ctx context.Context, q Query) ([]domain.Task, error) {
	all, err := s.tasks.List(ctx)
	if err != nil {
		return nil, err
	}
	filtered := SortByPin(Filter(all, q))
	active := filtered[:0:0]
	for _, t := range filtered {
		if !t.Completed {
			active = append(active, t)
		}
	}
	return active, nil
}

// MatrixView partitions the filtered active tasks into the four
// Eisenhower quadrants.
func (s *Service) MatrixView(ctx context.Context, q Query) (Matrix, error) {
	active, err := s.ListFiltered(ctx, q)
	if err != nil {
		return Matrix{}, err
	}
	return Partition(active), nil
}

// Complete marks a task done: the record moves to the archive in one
// store transaction, and a recurring task additionally spawns its next
// occurrence with a fresh id and advanced due date. The spawned task
// is returned, nil for non-recurring ones; the completed original now
// lives in the archive.
func (s *Service) Complete(ctx context.Context, id int64) (*domain.Task, error) {
	current, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.tasks.Archive(ctx, current, now); err != nil {
		return nil, err
	}
	applog.WithRequestID(ctx, s.logger).Info("task archived", zap.Int64("task_id", id))

	if current.Recurrence == domain.RecurNone {
		return nil, nil
	}

	base := now
	if due, ok := current.Due(); ok {
		base = due
	}
	next := *current
	next.ID = s.NextID()
	next.Completed = false
	next.CreatedAt = now
	next.DueDate = NextOccurrence(base, current.Recurrence).Format(domain.DueDateLayout)
	if err := s.tasks.Put(ctx, &next); err != nil {
		return nil, err
	}
	applog.WithRequestID(ctx, s.logger).Info("recurring task expanded",
		zap.Int64("task_id", id),
		zap.Int64("next_id", next.ID),
		zap.String("due", next.DueDate))
	return &next, nil
}

// Restore moves an archived task back into the active collection.
func (s *Service) Restore(ctx context.Context, id int64) (*domain.Task, error) {
	restored, err := s.tasks.Restore(ctx, id)
	if err != nil {
		return nil, err
	}
	applog.WithRequestID(ctx, s.logger).Info("task restored", zap.Int64("task_id", id))
	return restored, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.tasks.Delete(ctx, id)
}

func (s *Service) ListArchived(ctx context.Context) ([]domain.ArchivedTask, error) {
	return s.tasks.ListArchived(ctx)
}

func (s *Service) DeleteArchived(ctx context.Context, id int64) error {
	return s.tasks.DeleteArchived(ctx, id)
}

// Field edits. Each one re-reads the current record, applies a single
// change and persists the merge, so edits to different fields never
// clobber each other.

func (s *Service) UpdateText(ctx context.Context, id int64, text string) (*domain.Task, error) {
	return s.patch(ctx, id, func(t *domain.Task) { t.Text = text })
}

func (s *Service) ToggleImportance(ctx context.Context, id int64) (*domain.Task, error) {
	return s.patch(ctx, id, func(t *domain.Task) { t.Importance = !t.Importance })
}

func (s *Service) ToggleUrgency(ctx context.Context, id int64) (*domain.Task, error) {
	return s.patch(ctx, id, func(t *domain.Task) { t.Urgency = !t.Urgency })
}

func (s *Service) SetPinMode(ctx context.Context, id int64, mode domain.PinMode) (*domain.Task, error) {
	return s.patch(ctx, id, func(t *domain.Task) { t.Pinned = mode })
}

func (s *Service) SetRecurrence(ctx context.Context, id int64, r domain.Recurrence) (*domain.Task, error) {
	return s.patch(ctx, id, func(t *domain.Task) { t.Recurrence = r })
}

func (s *Service) SetDueDate(ctx context.Context, id int64, due string) (*domain.Task, error) {
	return s.patch(ctx, id, func(t *domain.Task) { t.DueDate = due })
}

func (s *Service) SetScores(ctx context.Context, id int64, value, effort *int) (*domain.Task, error) {
	return s.patch(ctx, id, func(t *domain.Task) {
		t.Value = value
		t.Effort = effort
	})
}

func (s *Service) patch(ctx context.Context, id int64, apply func(*domain.Task)) (*domain.Task, error) {
	current, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(current)
	if err := current.Validate(); err != nil {
		return nil, err
	}
	if err := s.tasks.Put(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}
