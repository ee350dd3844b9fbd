package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/planora/backend/usecase/planner"
)

// PlannerClock refreshes the cached planner day view once a minute so
// the current-time marker and layout snapshot stay warm between
// mutations. It runs for the whole process lifetime and is stopped only
// at shutdown.
type PlannerClock struct {
	planner *planner.Service
	logger  *zap.Logger
	cron    *cron.Cron

	mu   sync.RWMutex
	view *planner.DayView
}

func NewPlannerClock(svc *planner.Service, refresh time.Duration, logger *zap.Logger) *PlannerClock {
	if refresh <= 0 {
		refresh = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	pc := &PlannerClock{
		planner: svc,
		logger:  logger,
		cron:    cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(refresh.Seconds()))
	_, _ = pc.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), refresh)
		defer cancel()
		pc.Refresh(ctx)
	})

	return pc
}

// Start primes the cache and launches the scheduler.
func (pc *PlannerClock) Start() {
	if pc == nil || pc.cron == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	pc.Refresh(ctx)
	cancel()
	pc.cron.Start()
	pc.logger.Info("planner clock started")
}

// Stop halts the scheduler and waits for an in-flight refresh.
func (pc *PlannerClock) Stop(ctx context.Context) {
	if pc == nil || pc.cron == nil {
		return
	}
	stopCtx := pc.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	pc.logger.Info("planner clock stopped")
}

// Refresh recomputes the day view. Called on the schedule and after
// every block mutation.
func (pc *PlannerClock) Refresh(ctx context.Context) {
	view, err := pc.planner.Day(ctx)
	if err != nil {
		pc.logger.Error("planner refresh failed", zap.Error(err))
		return
	}
	pc.mu.Lock()
	pc.view = view
	pc.mu.Unlock()
}

// View returns the cached day view, recomputing once if the cache is
// still cold.
func (pc *PlannerClock) View(ctx context.Context) (*planner.DayView, error) {
	pc.mu.RLock()
	view := pc.view
	pc.mu.RUnlock()
	if view != nil {
		return view, nil
	}
	fresh, err := pc.planner.Day(ctx)
	if err != nil {
		return nil, err
	}
	pc.mu.Lock()
	pc.view = fresh
	pc.mu.Unlock()
	return fresh, nil
}
