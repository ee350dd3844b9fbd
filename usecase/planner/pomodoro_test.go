package planner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planora/backend/domain"
)

type fakeBlockRepo struct {
	blocks map[int64]domain.PlannerBlock
}

func newFakeBlockRepo(blocks ...domain.PlannerBlock) *fakeBlockRepo {
	repo := &fakeBlockRepo{blocks: make(map[int64]domain.PlannerBlock)}
	for _, b := range blocks {
		repo.blocks[b.ID] = b
	}
	return repo
}

func (r *fakeBlockRepo) List(ctx context.Context) ([]domain.PlannerBlock, error) {
	var out []domain.PlannerBlock
	for _, b := range r.blocks {
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBlockRepo) GetByID(ctx context.Context, id int64) (*domain.PlannerBlock, error) {
	b, ok := r.blocks[id]
	if !ok {
		return nil, domain.ErrBlockNotFound
	}
	return &b, nil
}

func (r *fakeBlockRepo) Put(ctx context.Context, block *domain.PlannerBlock) error {
	r.blocks[block.ID] = *block
	return nil
}

func (r *fakeBlockRepo) Delete(ctx context.Context, id int64) error {
	delete(r.blocks, id)
	return nil
}

type fakeWorkSettings struct {
	settings domain.WorkSettings
}

func (r *fakeWorkSettings) WorkSettings(ctx context.Context) (domain.WorkSettings, error) {
	return r.settings, nil
}

func (r *fakeWorkSettings) SetWorkSettings(ctx context.Context, s domain.WorkSettings) error {
	r.settings = s
	return nil
}

type recordingNotifier struct {
	cues    []string
	notices []string
}

func (n *recordingNotifier) Cue(sound string)      { n.cues = append(n.cues, sound) }
func (n *recordingNotifier) Notify(message string) { n.notices = append(n.notices, message) }

func at(hour, minute, second int) time.Time {
	return time.Date(2024, time.March, 1, hour, minute, second, 0, time.UTC)
}

func newTestController(work, brk int, blocks ...domain.PlannerBlock) (*Controller, *fakeBlockRepo, *recordingNotifier) {
	repo := newFakeBlockRepo(blocks...)
	notifier := &recordingNotifier{}
	ctrl := NewController(repo, &fakeWorkSettings{settings: domain.WorkSettings{WorkSeconds: work, BreakSeconds: brk}}, notifier, nil)
	return ctrl, repo, notifier
}

func TestBuildQueue_AlternatesWorkAndBreak(t *testing.T) {
	// 1 hour, 25 min work / 5 min break.
	queue := BuildQueue(3600, 1500, 300)
	require.Len(t, queue, 4)
	assert.Equal(t, domain.Slice{Mode: domain.SliceWork, Duration: 1500}, queue[0])
	assert.Equal(t, domain.Slice{Mode: domain.SliceBreak, Duration: 300}, queue[1])
	assert.Equal(t, domain.Slice{Mode: domain.SliceWork, Duration: 1500}, queue[2])
	assert.Equal(t, domain.Slice{Mode: domain.SliceBreak, Duration: 300}, queue[3])
}

func TestBuildQueue_TotalMatchesRemaining(t *testing.T) {
	for _, remaining := range []int{3600, 3000, 1501, 1800, 7200, 5000} {
		queue := BuildQueue(remaining, 1500, 300)
		total := 0
		for _, s := range queue {
			total += s.Duration
		}
		// The tail under a minute may be dropped; nothing else is lost.
		assert.LessOrEqual(t, remaining-total, MinStartSeconds, "remaining=%d", remaining)
		assert.GreaterOrEqual(t, total, remaining-MinStartSeconds, "remaining=%d", remaining)
	}
}

func TestBuildQueue_LeftoverBecomesFinalWorkSlice(t *testing.T) {
	// 25 min work leaves a 10 min tail after one work+break round.
	queue := BuildQueue(1500+300+600, 1500, 300)
	require.Len(t, queue, 3)
	last := queue[len(queue)-1]
	assert.Equal(t, domain.SliceWork, last.Mode)
	assert.Equal(t, 600, last.Duration)
}

func TestBuildQueue_ShortWindowFallsBackToSingleSlice(t *testing.T) {
	queue := BuildQueue(900, 1500, 300)
	require.Len(t, queue, 1)
	assert.Equal(t, domain.Slice{Mode: domain.SliceWork, Duration: 900}, queue[0])
}

func TestStart_InsufficientTime(t *testing.T) {
	ctrl, _, _ := newTestController(1500, 300, domain.PlannerBlock{
		ID: 7, Title: "standup", StartTime: "09:00", EndTime: "10:00",
	})
	_, err := ctrl.Start(context.Background(), 7, at(9, 59, 30))
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInsufficientTime))
	assert.False(t, ctrl.Active())
}

func TestStart_UnknownBlock(t *testing.T) {
	ctrl, _, _ := newTestController(1500, 300)
	_, err := ctrl.Start(context.Background(), 42, at(9, 0, 0))
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}

func TestStart_InvalidDurationsRejected(t *testing.T) {
	ctrl, _, _ := newTestController(0, 300, domain.PlannerBlock{
		ID: 7, Title: "deep work", StartTime: "09:00", EndTime: "11:00",
	})
	_, err := ctrl.Start(context.Background(), 7, at(9, 0, 0))
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestStart_AlreadyActive(t *testing.T) {
	ctrl, _, _ := newTestController(1500, 300, domain.PlannerBlock{
		ID: 7, Title: "deep work", StartTime: "09:00", EndTime: "11:00",
	})
	_, err := ctrl.Start(context.Background(), 7, at(9, 0, 0))
	require.NoError(t, err)
	_, err = ctrl.Start(context.Background(), 7, at(9, 0, 1))
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeConflict))
}

func TestStart_InitialState(t *testing.T) {
	ctrl, _, notifier := newTestController(1500, 300, domain.PlannerBlock{
		ID: 7, Title: "deep work", StartTime: "09:00", EndTime: "10:00",
	})
	session, err := ctrl.Start(context.Background(), 7, at(9, 0, 0))
	require.NoError(t, err)

	assert.True(t, session.IsActive)
	assert.False(t, session.IsPaused)
	assert.Equal(t, int64(7), session.BlockID)
	assert.Equal(t, domain.SliceWork, session.Mode)
	assert.Equal(t, 0, session.CurrentSlice)
	assert.Equal(t, 1500, session.TimeLeft)
	assert.Equal(t, []string{CueWorkStart}, notifier.cues)
}

func TestTick_Countdown(t *testing.T) {
	ctrl, _, _ := newTestController(1500, 300, domain.PlannerBlock{
		ID: 7, Title: "deep work", StartTime: "09:00", EndTime: "10:00",
	})
	_, err := ctrl.Start(context.Background(), 7, at(9, 0, 0))
	require.NoError(t, err)

	alive, err := ctrl.Tick(context.Background(), at(9, 0, 1))
	require.NoError(t, err)
	assert.True(t, alive)
	assert.Equal(t, 1499, ctrl.Session().TimeLeft)
}

func TestTick_AdvancesToBreak(t *testing.T) {
	ctrl, _, notifier := newTestController(120, 60, domain.PlannerBlock{
		ID: 7, Title: "sprint", StartTime: "09:00", EndTime: "09:10",
	})
	_, err := ctrl.Start(context.Background(), 7, at(9, 0, 0))
	require.NoError(t, err)

	// Run the first work slice down.
	now := at(9, 0, 0)
	for i := 0; i < 120; i++ {
		now = now.Add(time.Second)
		alive, err := ctrl.Tick(context.Background(), now)
		require.NoError(t, err)
		require.True(t, alive)
	}

	session := ctrl.Session()
	assert.Equal(t, domain.SliceBreak, session.Mode)
	assert.Equal(t, 1, session.CurrentSlice)
	assert.Equal(t, 60, session.Duration)
	assert.Contains(t, notifier.cues, CueBreakStart)
}

func TestTick_CompletesAfterLastSlice(t *testing.T) {
	ctrl, _, notifier := newTestController(120, 60, domain.PlannerBlock{
		ID: 7, Title: "sprint", StartTime: "09:00", EndTime: "09:10",
	})
	_, err := ctrl.Start(context.Background(), 7, at(9, 0, 0))
	require.NoError(t, err)
	queueLen := len(ctrl.Session().Queue)
	total := 0
	for _, s := range ctrl.Session().Queue {
		total += s.Duration
	}

	now := at(9, 0, 0)
	alive := true
	ticks := 0
	for alive {
		now = now.Add(time.Second)
		var err error
		alive, err = ctrl.Tick(context.Background(), now)
		require.NoError(t, err)
		ticks++
		require.LessOrEqual(t, ticks, total+queueLen)
	}

	session := ctrl.Session()
	assert.False(t, session.IsActive)
	assert.Equal(t, -1, session.CurrentSlice)
	assert.Contains(t, notifier.cues, CueSessionEnd)
	assert.NotEmpty(t, session.LastNotice)
}

func TestTick_BlockDeletionInvalidatesSession(t *testing.T) {
	ctrl, repo, notifier := newTestController(1500, 300, domain.PlannerBlock{
		ID: 7, Title: "deep work", StartTime: "09:00", EndTime: "10:00",
	})
	_, err := ctrl.Start(context.Background(), 7, at(9, 0, 0))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(context.Background(), 7))

	alive, err := ctrl.Tick(context.Background(), at(9, 0, 1))
	require.NoError(t, err)
	assert.False(t, alive)
	assert.False(t, ctrl.Session().IsActive)
	assert.NotEmpty(t, notifier.notices)
	// Invalidation is not normal completion: no end-of-session cue.
	assert.NotContains(t, notifier.cues, CueSessionEnd)
}

func TestTick_BlockEndTimeInvalidatesSession(t *testing.T) {
	ctrl, _, _ := newTestController(1500, 300, domain.PlannerBlock{
		ID: 7, Title: "deep work", StartTime: "09:00", EndTime: "10:00",
	})
	_, err := ctrl.Start(context.Background(), 7, at(9, 0, 0))
	require.NoError(t, err)

	// Wall clock reaches the block end regardless of internal countdown.
	alive, err := ctrl.Tick(context.Background(), at(10, 0, 0))
	require.NoError(t, err)
	assert.False(t, alive)
	assert.False(t, ctrl.Session().IsActive)
}

func TestPauseResume(t *testing.T) {
	ctrl, _, _ := newTestController(1500, 300, domain.PlannerBlock{
		ID: 7, Title: "deep work", StartTime: "09:00", EndTime: "10:00",
	})
	_, err := ctrl.Start(context.Background(), 7, at(9, 0, 0))
	require.NoError(t, err)

	session, err := ctrl.PauseResume()
	require.NoError(t, err)
	assert.True(t, session.IsPaused)

	// Ticks are ignored while paused: countdown and queue untouched.
	before := ctrl.Session().TimeLeft
	alive, err := ctrl.Tick(context.Background(), at(9, 0, 1))
	require.NoError(t, err)
	assert.True(t, alive)
	assert.Equal(t, before, ctrl.Session().TimeLeft)

	session, err = ctrl.PauseResume()
	require.NoError(t, err)
	assert.False(t, session.IsPaused)
}

func TestPauseResume_NoSession(t *testing.T) {
	ctrl, _, _ := newTestController(1500, 300)
	_, err := ctrl.PauseResume()
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeConflict))
}

func TestReset_ClearsUnconditionally(t *testing.T) {
	ctrl, _, _ := newTestController(1500, 300, domain.PlannerBlock{
		ID: 7, Title: "deep work", StartTime: "09:00", EndTime: "10:00",
	})
	_, err := ctrl.Start(context.Background(), 7, at(9, 0, 0))
	require.NoError(t, err)

	session := ctrl.Reset()
	assert.False(t, session.IsActive)
	assert.Equal(t, -1, session.CurrentSlice)
	assert.Empty(t, session.Queue)
}
