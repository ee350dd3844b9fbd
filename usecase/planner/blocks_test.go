package planner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planora/backend/domain"
)

func newTestBlockService(blocks ...domain.PlannerBlock) (*Service, *fakeBlockRepo) {
	repo := newFakeBlockRepo(blocks...)
	svc := NewService(repo, &fakeWorkSettings{settings: domain.DefaultWorkSettings()}, nil)
	return svc, repo
}

func TestBlockService_CreateValidatesAndPersists(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestBlockService()

	block, err := svc.CreateBlock(ctx, BlockDraft{Title: "deep work", StartTime: "09:00", EndTime: "11:00", Color: "#336699"})
	require.NoError(t, err)
	assert.NotZero(t, block.ID)

	stored, err := repo.GetByID(ctx, block.ID)
	require.NoError(t, err)
	assert.Equal(t, "deep work", stored.Title)

	_, err = svc.CreateBlock(ctx, BlockDraft{Title: "inverted", StartTime: "11:00", EndTime: "09:00"})
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	_, err = svc.CreateBlock(ctx, BlockDraft{Title: "", StartTime: "09:00", EndTime: "10:00"})
	require.Error(t, err)
}

func TestBlockService_NextIDsIncrease(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestBlockService()

	first, err := svc.CreateBlock(ctx, BlockDraft{Title: "a", StartTime: "08:00", EndTime: "09:00"})
	require.NoError(t, err)
	second, err := svc.CreateBlock(ctx, BlockDraft{Title: "b", StartTime: "09:00", EndTime: "10:00"})
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)
}

func TestBlockService_UpdateRejectsInvalidAndKeepsRecord(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestBlockService()

	block, err := svc.CreateBlock(ctx, BlockDraft{Title: "before", StartTime: "09:00", EndTime: "10:00"})
	require.NoError(t, err)

	updated, err := svc.UpdateBlock(ctx, block.ID, BlockDraft{Title: "after", StartTime: "10:00", EndTime: "12:00", Color: "#fff"})
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Title)

	_, err = svc.UpdateBlock(ctx, block.ID, BlockDraft{Title: "broken", StartTime: "nope", EndTime: "12:00"})
	require.Error(t, err)

	stored, err := repo.GetByID(ctx, block.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", stored.Title, "failed update must not touch the record")

	_, err = svc.UpdateBlock(ctx, 404, BlockDraft{Title: "x", StartTime: "09:00", EndTime: "10:00"})
	assert.ErrorIs(t, err, domain.ErrBlockNotFound)
}

func TestBlockService_DayView(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestBlockService(
		domain.PlannerBlock{ID: 1, Title: "a", StartTime: "09:00", EndTime: "10:00"},
		domain.PlannerBlock{ID: 2, Title: "b", StartTime: "09:30", EndTime: "10:30"},
	)
	svc.WithClock(func() time.Time { return at(14, 45, 0) })

	view, err := svc.Day(ctx)
	require.NoError(t, err)
	require.Len(t, view.Layouts, 2)
	assert.Equal(t, 2, view.Layouts[0].Columns)
	assert.Equal(t, 14*60+45, view.NowMinute)
}

func TestBlockService_WorkSettingsRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestBlockService()

	got, err := svc.WorkSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultWorkSettings(), got)

	custom := domain.WorkSettings{WorkSeconds: 3000, BreakSeconds: 600}
	require.NoError(t, svc.SetWorkSettings(ctx, custom))
	got, err = svc.WorkSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, custom, got)

	err = svc.SetWorkSettings(ctx, domain.WorkSettings{WorkSeconds: -1, BreakSeconds: 300})
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}
