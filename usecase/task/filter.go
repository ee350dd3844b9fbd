package task

import (
	"sort"
	"strings"
	"time"

	"github.com/planora/backend/domain"
)

// TimeFilterMode selects the calendar period tasks are matched against.
type TimeFilterMode string

const (
	FilterDay     TimeFilterMode = "day"
	FilterMonth   TimeFilterMode = "month"
	FilterQuarter TimeFilterMode = "quarter"
	FilterYear    TimeFilterMode = "year"
	FilterAll     TimeFilterMode = "all"
)

func (m TimeFilterMode) Valid() bool {
	switch m {
	case FilterDay, FilterMonth, FilterQuarter, FilterYear, FilterAll:
		return true
	}
	return false
}

// Query is one pass of the filter pipeline. Zero values disable the
// corresponding stage.
type Query struct {
	Search     string
	Tag        string
	Mode       TimeFilterMode
	Reference  time.Time
	HideGlobal bool
	HideLocal  bool
}

// Filter applies the pipeline stages in their fixed order: text search,
// visibility toggles, tag filter, global-pin short-circuit, then the
// date/period filter for everything that is not globally pinned.
func Filter(tasks []domain.Task, q Query) []domain.Task {
	search := strings.ToLower(q.Search)
	var out []domain.Task
	for _, t := range tasks {
		if search != "" && !strings.Contains(strings.ToLower(t.Text), search) {
			continue
		}
		if q.HideGlobal && t.Pinned == domain.PinGlobal {
			continue
		}
		if q.HideLocal && t.Pinned == domain.PinLocal {
			continue
		}
		if q.Tag != "" && !domain.HasTag(t.Text, q.Tag) {
			continue
		}
		// Globally pinned tasks ignore the date filter entirely.
		if t.Pinned == domain.PinGlobal {
			out = append(out, t)
			continue
		}
		if !matchesPeriod(t, q.Mode, q.Reference) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchesPeriod(t domain.Task, mode TimeFilterMode, ref time.Time) bool {
	due, ok := t.Due()
	if !ok {
		return mode == FilterAll
	}
	switch mode {
	case FilterDay:
		return sameDay(due, ref)
	case FilterMonth:
		return due.Year() == ref.Year() && due.Month() == ref.Month()
	case FilterQuarter:
		return due.Year() == ref.Year() && quarterOf(due) == quarterOf(ref)
	case FilterYear:
		return due.Year() == ref.Year()
	case FilterAll:
		return true
	}
	return false
}

func quarterOf(t time.Time) int {
	return (int(t.Month()) - 1) / 3
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// SortByPin orders pinned tasks before unpinned and global pins before
// local ones. The sort is stable and imposes nothing else: equally
// ranked tasks keep their input order.
func SortByPin(tasks []domain.Task) []domain.Task {
	sorted := make([]domain.Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return pinRank(sorted[i].Pinned) < pinRank(sorted[j].Pinned)
	})
	return sorted
}

func pinRank(p domain.PinMode) int {
	switch p {
	case domain.PinGlobal:
		return 0
	case domain.PinLocal:
		return 1
	default:
		return 2
	}
}
