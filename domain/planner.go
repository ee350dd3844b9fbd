package domain

import (
	"strings"

	"github.com/planora/backend/pkg/timeutil"
)

// PlannerBlock is a titled time range inside a single day. Blocks never
// span midnight.
type PlannerBlock struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Color     string `json:"color,omitempty"`
}

// Minutes returns the block's start and end as minute offsets from
// midnight. ok is false when either bound is malformed or the range is
// empty or inverted; such blocks are skipped by the layout engine.
func (b *PlannerBlock) Minutes() (start, end int, ok bool) {
	if b == nil {
		return 0, 0, false
	}
	start, err := timeutil.ParseClock(b.StartTime)
	if err != nil {
		return 0, 0, false
	}
	end, err = timeutil.ParseClock(b.EndTime)
	if err != nil {
		return 0, 0, false
	}
	if start >= end {
		return 0, 0, false
	}
	return start, end, true
}

// Validate checks the block before it is persisted.
func (b *PlannerBlock) Validate() error {
	if b == nil {
		return ErrInvalidPayload
	}
	if strings.TrimSpace(b.Title) == "" {
		return NewError(ErrCodeInvalid, "block title must not be empty")
	}
	start, err := timeutil.ParseClock(b.StartTime)
	if err != nil {
		return WrapError(ErrCodeInvalid, "start time", err)
	}
	end, err := timeutil.ParseClock(b.EndTime)
	if err != nil {
		return WrapError(ErrCodeInvalid, "end time", err)
	}
	if start >= end {
		return NewError(ErrCodeInvalid, "block must start before it ends")
	}
	return nil
}

// BlockLayout annotates a block with its resolved column geometry.
// Blocks that overlap in time never share a column.
type BlockLayout struct {
	Block        PlannerBlock `json:"block"`
	Column       int          `json:"column"`
	Columns      int          `json:"columns"`
	WidthPercent float64      `json:"widthPercent"`
	LeftPercent  float64      `json:"leftPercent"`
}
