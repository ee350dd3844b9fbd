package task

import (
	"context"
	"sort"
	"time"

	"github.com/planora/backend/domain"
)

// TagCount pairs a tag with how many tasks carry it.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// TagCloud counts every #tag across the active collection, most used
// first; ties break alphabetically so the cloud is stable.
func (s *Service) TagCloud(ctx context.Context) ([]TagCount, error) {
	all, err := s.tasks.List(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, t := range all {
		for _, tag := range domain.ExtractTags(t.Text) {
			counts[tag]++
		}
	}
	cloud := make([]TagCount, 0, len(counts))
	for tag, n := range counts {
		cloud = append(cloud, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(cloud, func(i, j int) bool {
		if cloud[i].Count != cloud[j].Count {
			return cloud[i].Count > cloud[j].Count
		}
		return cloud[i].Tag < cloud[j].Tag
	})
	return cloud, nil
}

// DueCounts returns how many tasks fall due on each day of the given
// month, keyed by day-of-month. The calendar widget badges come from
// here.
func (s *Service) DueCounts(ctx context.Context, year int, month time.Month) (map[int]int, error) {
	all, err := s.tasks.List(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[int]int)
	for _, t := range all {
		due, ok := t.Due()
		if !ok || due.Year() != year || due.Month() != month {
			continue
		}
		counts[due.Day()]++
	}
	return counts, nil
}

// MonthGrid describes the calendar geometry for one month under a
// configurable first day of week (0 = Sunday).
type MonthGrid struct {
	Year          int `json:"year"`
	Month         int `json:"month"`
	Days          int `json:"days"`
	LeadingOffset int `json:"leadingOffset"`
}

// GridFor computes the month grid: number of days and how many blank
// cells precede day 1 given the week start.
func GridFor(year int, month time.Month, weekStart int) MonthGrid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	offset := (int(first.Weekday()) - weekStart + 7) % 7
	return MonthGrid{
		Year:          year,
		Month:         int(month),
		Days:          days,
		LeadingOffset: offset,
	}
}
