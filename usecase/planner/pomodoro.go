package planner

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/planora/backend/domain"
	"github.com/planora/backend/pkg/timeutil"
	"github.com/planora/backend/repository"
)

// Audio cue identifiers handed to the Notifier.
const (
	CueWorkStart  = "work-start"
	CueBreakStart = "break-start"
	CueSessionEnd = "session-end"
)

// Notifier receives the scheduler's side effects: audio cues and
// one-time user notices. Implementations must not block.
type Notifier interface {
	Cue(sound string)
	Notify(message string)
}

// MinStartSeconds is the smallest remaining block time a session can
// start with. Leftover tails at or under this threshold are dropped
// during queue construction.
const MinStartSeconds = 60

// Controller is the pomodoro session state machine. It deliberately
// re-reads the owning block on every tick instead of capturing an
// immutable plan, so a session never outlives a deleted or shortened
// block.
type Controller struct {
	blocks   repository.BlockRepository
	settings repository.PlannerSettingsRepository
	notifier Notifier
	logger   *zap.Logger

	mu      sync.Mutex
	session domain.Session
}

func NewController(
	blocks repository.BlockRepository,
	settings repository.PlannerSettingsRepository,
	notifier Notifier,
	logger *zap.Logger,
) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		blocks:   blocks,
		settings: settings,
		notifier: notifier,
		logger:   logger,
		session:  domain.InactiveSession(),
	}
}

// BuildQueue slices the remaining seconds into alternating work/break
// intervals. Whole work slices are taken while they fit, each followed
// by a break capped at the remaining time; a leftover tail longer than
// MinStartSeconds becomes one final work slice. An empty result falls
// back to a single work slice covering everything.
func BuildQueue(remaining, workSeconds, breakSeconds int) []domain.Slice {
	total := remaining
	var queue []domain.Slice
	for remaining >= workSeconds {
		queue = append(queue, domain.Slice{Mode: domain.SliceWork, Duration: workSeconds})
		remaining -= workSeconds
		if remaining > 0 {
			pause := breakSeconds
			if remaining < pause {
				pause = remaining
			}
			queue = append(queue, domain.Slice{Mode: domain.SliceBreak, Duration: pause})
			remaining -= pause
		}
	}
	if remaining > MinStartSeconds {
		queue = append(queue, domain.Slice{Mode: domain.SliceWork, Duration: remaining})
	}
	if len(queue) == 0 {
		queue = []domain.Slice{{Mode: domain.SliceWork, Duration: total}}
	}
	return queue
}

// Start begins a session against the given block. It fails when a
// session is already running, the block is missing, the configured
// durations are invalid, or less than MinStartSeconds remain before the
// block ends.
func (c *Controller) Start(ctx context.Context, blockID int64, now time.Time) (domain.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session.IsActive {
		return c.session, domain.ErrSessionActive
	}

	block, err := c.blocks.GetByID(ctx, blockID)
	if err != nil {
		return c.session, err
	}

	work, err := c.settings.WorkSettings(ctx)
	if err != nil {
		return c.session, err
	}
	if err := work.Validate(); err != nil {
		return c.session, err
	}

	remaining, err := secondsUntilEnd(block, now)
	if err != nil {
		return c.session, err
	}
	if remaining <= MinStartSeconds {
		return c.session, domain.ErrInsufficientTime
	}

	queue := BuildQueue(remaining, work.WorkSeconds, work.BreakSeconds)
	first := queue[0]
	c.session = domain.Session{
		IsActive:     true,
		BlockID:      blockID,
		Mode:         first.Mode,
		TimeLeft:     first.Duration,
		Duration:     first.Duration,
		Queue:        queue,
		CurrentSlice: 0,
	}
	c.cue(CueWorkStart)
	c.logger.Info("focus session started",
		zap.Int64("block_id", blockID),
		zap.Int("slices", len(queue)),
		zap.Int("total_seconds", remaining))
	return c.session, nil
}

// Tick advances the session by one second. It returns false once the
// session has reached a terminal state and no further ticks are needed.
func (c *Controller) Tick(ctx context.Context, now time.Time) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.session.IsActive {
		return false, nil
	}
	if c.session.IsPaused {
		return true, nil
	}

	// External invalidation comes first and is independent of the
	// internal countdown: the block may be gone or already over.
	expired, err := c.blockExpired(ctx, now)
	if err != nil {
		return true, err
	}
	if expired {
		c.terminate("focus session stopped: the block is gone or its time is up", "")
		return false, nil
	}

	if c.session.TimeLeft > 1 {
		c.session.TimeLeft--
		return true, nil
	}

	next := c.session.CurrentSlice + 1
	if next >= len(c.session.Queue) {
		c.terminate("focus session complete", CueSessionEnd)
		return false, nil
	}

	slice := c.session.Queue[next]
	c.session.CurrentSlice = next
	c.session.Mode = slice.Mode
	c.session.Duration = slice.Duration
	c.session.TimeLeft = slice.Duration
	if slice.Mode == domain.SliceBreak {
		c.cue(CueBreakStart)
	} else {
		c.cue(CueWorkStart)
	}
	return true, nil
}

// PauseResume toggles the paused flag. Queue and countdown are untouched.
func (c *Controller) PauseResume() (domain.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.session.IsActive {
		return c.session, domain.ErrNoActiveSession
	}
	c.session.IsPaused = !c.session.IsPaused
	return c.session, nil
}

// Reset unconditionally clears the session. No resumable state remains;
// confirmation prompting is the caller's concern.
func (c *Controller) Reset() domain.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session.IsActive {
		c.logger.Info("focus session reset", zap.Int64("block_id", c.session.BlockID))
	}
	c.session = domain.InactiveSession()
	return c.session
}

// Session returns a snapshot of the current state.
func (c *Controller) Session() domain.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Active reports whether a session is currently running.
func (c *Controller) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.IsActive
}

func (c *Controller) blockExpired(ctx context.Context, now time.Time) (bool, error) {
	block, err := c.blocks.GetByID(ctx, c.session.BlockID)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return true, nil
		}
		return false, err
	}
	endSeconds, err := timeutil.ClockToSeconds(block.EndTime)
	if err != nil {
		// A block rewritten into an unparsable state cannot host a
		// session any longer.
		return true, nil
	}
	return secondsOfDay(now) >= endSeconds, nil
}

func (c *Controller) terminate(notice, cueSound string) {
	blockID := c.session.BlockID
	c.session = domain.InactiveSession()
	c.session.LastNotice = notice
	if cueSound != "" {
		c.cue(cueSound)
	}
	if c.notifier != nil {
		c.notifier.Notify(notice)
	}
	c.logger.Info("focus session ended", zap.Int64("block_id", blockID), zap.String("notice", notice))
}

func (c *Controller) cue(sound string) {
	if c.notifier != nil {
		c.notifier.Cue(sound)
	}
}

func secondsUntilEnd(block *domain.PlannerBlock, now time.Time) (int, error) {
	endSeconds, err := timeutil.ClockToSeconds(block.EndTime)
	if err != nil {
		return 0, domain.WrapError(domain.ErrCodeInvalid, "block end time", err)
	}
	return endSeconds - secondsOfDay(now), nil
}

func secondsOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}
