package planner

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/planora/backend/domain"
	"github.com/planora/backend/repository"
)

// Service owns planner block CRUD and the layout view. Deleting a block
// that currently hosts a focus session needs no special handling here:
// the pomodoro controller notices on its next tick and shuts the
// session down.
type Service struct {
	blocks   repository.BlockRepository
	settings repository.PlannerSettingsRepository
	logger   *zap.Logger
	now      func() time.Time

	mu     sync.Mutex
	lastID int64
}

func NewService(blocks repository.BlockRepository, settings repository.PlannerSettingsRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		blocks:   blocks,
		settings: settings,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock overrides the wall clock, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) nextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// BlockDraft carries the user-supplied fields of a block.
type BlockDraft struct {
	Title     string `json:"title"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Color     string `json:"color"`
}

func (s *Service) CreateBlock(ctx context.Context, draft BlockDraft) (*domain.PlannerBlock, error) {
	block := &domain.PlannerBlock{
		ID:        s.nextID(),
		Title:     draft.Title,
		StartTime: draft.StartTime,
		EndTime:   draft.EndTime,
		Color:     draft.Color,
	}
	if err := block.Validate(); err != nil {
		return nil, err
	}
	if err := s.blocks.Put(ctx, block); err != nil {
		return nil, err
	}
	s.logger.Info("planner block created", zap.Int64("block_id", block.ID))
	return block, nil
}

func (s *Service) UpdateBlock(ctx context.Context, id int64, draft BlockDraft) (*domain.PlannerBlock, error) {
	current, err := s.blocks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	current.Title = draft.Title
	current.StartTime = draft.StartTime
	current.EndTime = draft.EndTime
	current.Color = draft.Color
	if err := current.Validate(); err != nil {
		return nil, err
	}
	if err := s.blocks.Put(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

func (s *Service) DeleteBlock(ctx context.Context, id int64) error {
	if err := s.blocks.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("planner block deleted", zap.Int64("block_id", id))
	return nil
}

func (s *Service) ListBlocks(ctx context.Context) ([]domain.PlannerBlock, error) {
	return s.blocks.List(ctx)
}

// DayView is the planner day response: resolved block geometry plus the
// current-time marker the UI draws across the grid.
type DayView struct {
	Layouts   []domain.BlockLayout `json:"layouts"`
	NowMinute int                  `json:"nowMinute"`
}

// Day computes the collision layout for the stored blocks.
func (s *Service) Day(ctx context.Context) (*DayView, error) {
	blocks, err := s.blocks.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	return &DayView{
		Layouts:   Layout(blocks),
		NowMinute: now.Hour()*60 + now.Minute(),
	}, nil
}

// WorkSettings exposes the configured pomodoro durations.
func (s *Service) WorkSettings(ctx context.Context) (domain.WorkSettings, error) {
	return s.settings.WorkSettings(ctx)
}

// SetWorkSettings validates and stores new pomodoro durations.
func (s *Service) SetWorkSettings(ctx context.Context, settings domain.WorkSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	return s.settings.SetWorkSettings(ctx, settings)
}
