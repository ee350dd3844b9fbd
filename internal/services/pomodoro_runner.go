package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/planora/backend/domain"
	"github.com/planora/backend/usecase/planner"
)

// PomodoroRunner drives the session controller with a one-second tick.
// The ticker goroutine exists only while a session is live: it is
// started on Start and cancelled on reset, completion or invalidation.
type PomodoroRunner struct {
	controller *planner.Controller
	interval   time.Duration
	logger     *zap.Logger

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

func NewPomodoroRunner(controller *planner.Controller, interval time.Duration, logger *zap.Logger) *PomodoroRunner {
	if interval <= 0 {
		interval = time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PomodoroRunner{
		controller: controller,
		interval:   interval,
		logger:     logger,
	}
}

// Start begins a session and launches the tick loop.
func (r *PomodoroRunner) Start(ctx context.Context, blockID int64) (domain.Session, error) {
	session, err := r.controller.Start(ctx, blockID, time.Now())
	if err != nil {
		return session, err
	}
	r.launch()
	return session, nil
}

// PauseResume toggles the pause flag; the ticker keeps running and the
// controller ignores ticks while paused.
func (r *PomodoroRunner) PauseResume() (domain.Session, error) {
	return r.controller.PauseResume()
}

// Reset clears the session and cancels the ticker.
func (r *PomodoroRunner) Reset() domain.Session {
	session := r.controller.Reset()
	r.halt()
	return session
}

// Session snapshots the current state.
func (r *PomodoroRunner) Session() domain.Session {
	return r.controller.Session()
}

// Active reports whether a session is running.
func (r *PomodoroRunner) Active() bool {
	return r.controller.Active()
}

// Close cancels any live ticker. Registered as a shutdown hook.
func (r *PomodoroRunner) Close(ctx context.Context) error {
	r.halt()
	return nil
}

func (r *PomodoroRunner) launch() {
	// A previous loop may still be winding down after a terminal tick:
	// the controller clears the session before the goroutine detaches,
	// so a fresh Start can land in that window. Retire it first; a
	// stale ticker must never be mistaken for the new session's.
	r.halt()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stop = make(chan struct{})
	r.done = make(chan struct{})
	go r.loop(r.stop, r.done)
}

func (r *PomodoroRunner) halt() {
	r.mu.Lock()
	stop, done := r.stop, r.done
	r.stop, r.done = nil, nil
	r.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
}

func (r *PomodoroRunner) loop(stop, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), r.interval)
			alive, err := r.controller.Tick(ctx, now)
			cancel()
			if err != nil {
				r.logger.Error("pomodoro tick failed", zap.Error(err))
				continue
			}
			if !alive {
				// Terminal transition; detach without waiting on halt
				// since this goroutine is the one being cancelled.
				r.mu.Lock()
				if r.done == done {
					r.stop, r.done = nil, nil
				}
				r.mu.Unlock()
				return
			}
		}
	}
}
