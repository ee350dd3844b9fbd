package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planora/backend/domain"
	"github.com/planora/backend/usecase/planner"
)

// memBlockRepo is a mutex-guarded in-memory block store; the runner's
// tick goroutine reads it concurrently with the test.
type memBlockRepo struct {
	mu     sync.Mutex
	blocks map[int64]domain.PlannerBlock
}

func newMemBlockRepo(blocks ...domain.PlannerBlock) *memBlockRepo {
	repo := &memBlockRepo{blocks: make(map[int64]domain.PlannerBlock)}
	for _, b := range blocks {
		repo.blocks[b.ID] = b
	}
	return repo
}

func (r *memBlockRepo) List(ctx context.Context) ([]domain.PlannerBlock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.PlannerBlock, 0, len(r.blocks))
	for _, b := range r.blocks {
		out = append(out, b)
	}
	return out, nil
}

func (r *memBlockRepo) GetByID(ctx context.Context, id int64) (*domain.PlannerBlock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.blocks[id]
	if !ok {
		return nil, domain.ErrBlockNotFound
	}
	return &b, nil
}

func (r *memBlockRepo) Put(ctx context.Context, block *domain.PlannerBlock) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blocks[block.ID] = *block
	return nil
}

func (r *memBlockRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.blocks, id)
	return nil
}

type memWorkSettings struct {
	settings domain.WorkSettings
}

func (r *memWorkSettings) WorkSettings(ctx context.Context) (domain.WorkSettings, error) {
	return r.settings, nil
}

func (r *memWorkSettings) SetWorkSettings(ctx context.Context, s domain.WorkSettings) error {
	r.settings = s
	return nil
}

func allDayBlock(id int64) domain.PlannerBlock {
	return domain.PlannerBlock{ID: id, Title: "focus", StartTime: "00:00", EndTime: "23:59"}
}

func newTestRunner(repo *memBlockRepo) *PomodoroRunner {
	ctrl := planner.NewController(repo, &memWorkSettings{settings: domain.DefaultWorkSettings()}, nil, nil)
	return NewPomodoroRunner(ctrl, time.Millisecond, nil)
}

func TestRunner_StartCountsDown(t *testing.T) {
	repo := newMemBlockRepo(allDayBlock(1))
	r := newTestRunner(repo)
	defer r.Reset()

	session, err := r.Start(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, session.IsActive)

	assert.Eventually(t, func() bool {
		return r.Session().TimeLeft < session.TimeLeft
	}, 2*time.Second, 5*time.Millisecond)
}

func TestRunner_StartReplacesRetiredLoop(t *testing.T) {
	repo := newMemBlockRepo(allDayBlock(1))
	r := newTestRunner(repo)
	defer r.Reset()

	// A loop that has just taken its terminal tick: the controller has
	// already cleared the session, but the goroutine still holds its
	// channels. Start must retire it, not assume a live ticker.
	staleStop := make(chan struct{})
	staleDone := make(chan struct{})
	r.stop, r.done = staleStop, staleDone
	go func() {
		<-staleStop
		close(staleDone)
	}()

	session, err := r.Start(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, session.IsActive)

	select {
	case <-staleDone:
	case <-time.After(time.Second):
		t.Fatal("stale loop was not stopped before relaunch")
	}

	assert.Eventually(t, func() bool {
		return r.Session().TimeLeft < session.TimeLeft
	}, 2*time.Second, 5*time.Millisecond)
}

func TestRunner_RestartAfterBlockInvalidation(t *testing.T) {
	ctx := context.Background()
	repo := newMemBlockRepo(allDayBlock(1))
	r := newTestRunner(repo)
	defer r.Reset()

	_, err := r.Start(ctx, 1)
	require.NoError(t, err)

	// Deleting the block invalidates the session on the next tick.
	require.NoError(t, repo.Delete(ctx, 1))
	require.Eventually(t, func() bool {
		return !r.Active()
	}, 2*time.Second, time.Millisecond)

	// An immediate restart lands while the old goroutine may still be
	// winding down; the new session must keep ticking regardless.
	block := allDayBlock(1)
	require.NoError(t, repo.Put(ctx, &block))
	session, err := r.Start(ctx, 1)
	require.NoError(t, err)
	require.True(t, session.IsActive)

	assert.Eventually(t, func() bool {
		return r.Session().TimeLeft < session.TimeLeft
	}, 2*time.Second, 5*time.Millisecond)
}

func TestRunner_ResetStopsTicker(t *testing.T) {
	repo := newMemBlockRepo(allDayBlock(1))
	r := newTestRunner(repo)

	_, err := r.Start(context.Background(), 1)
	require.NoError(t, err)

	cleared := r.Reset()
	assert.False(t, cleared.IsActive)
	assert.False(t, r.Active())

	// Idempotent: a second reset with no live loop must not block.
	r.Reset()
}
