package task

import (
	"sort"

	"github.com/planora/backend/domain"
)

// Matrix is the Eisenhower partition of an active task list.
type Matrix struct {
	Do        []domain.Task `json:"do"`        // important and urgent
	Schedule  []domain.Task `json:"schedule"`  // important, not urgent
	Delegate  []domain.Task `json:"delegate"`  // urgent, not important
	Eliminate []domain.Task `json:"eliminate"` // neither
}

// Partition splits tasks into the four quadrants by importance and
// urgency. Within a quadrant, tasks carrying both value and effort come
// first ordered by descending value/effort ratio; unscored tasks keep
// their relative input order behind them.
func Partition(tasks []domain.Task) Matrix {
	var m Matrix
	for _, t := range tasks {
		switch {
		case t.Importance && t.Urgency:
			m.Do = append(m.Do, t)
		case t.Importance:
			m.Schedule = append(m.Schedule, t)
		case t.Urgency:
			m.Delegate = append(m.Delegate, t)
		default:
			m.Eliminate = append(m.Eliminate, t)
		}
	}
	sortByPriorityIndex(m.Do)
	sortByPriorityIndex(m.Schedule)
	sortByPriorityIndex(m.Delegate)
	sortByPriorityIndex(m.Eliminate)
	return m
}

func sortByPriorityIndex(tasks []domain.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if a.HasScores() != b.HasScores() {
			return a.HasScores()
		}
		if a.HasScores() && b.HasScores() {
			return a.PriorityIndex() > b.PriorityIndex()
		}
		return false
	})
}
