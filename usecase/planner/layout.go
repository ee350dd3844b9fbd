package planner

import (
	"sort"

	"github.com/planora/backend/domain"
)

// Layout assigns every block a column inside its collision group so that
// overlapping blocks never share a column and each group uses the
// minimum number of columns the greedy first-fit order allows.
//
// Blocks with malformed times or an empty range are dropped from the
// result. The assignment is deterministic for a fixed input order.
func Layout(blocks []domain.PlannerBlock) []domain.BlockLayout {
	type timed struct {
		block      domain.PlannerBlock
		start, end int
	}

	var valid []timed
	for _, b := range blocks {
		start, end, ok := b.Minutes()
		if !ok {
			continue
		}
		valid = append(valid, timed{block: b, start: start, end: end})
	}
	if len(valid) == 0 {
		return nil
	}

	// Half-open overlap: blocks that merely touch do not collide.
	overlaps := func(a, b timed) bool {
		return a.start < b.end && a.end > b.start
	}

	// Collision groups are connected components over the overlap
	// relation, so chained overlaps land in one group.
	visited := make([]bool, len(valid))
	var groups [][]int
	for i := range valid {
		if visited[i] {
			continue
		}
		group := []int{i}
		visited[i] = true
		for cursor := 0; cursor < len(group); cursor++ {
			current := group[cursor]
			for j := range valid {
				if visited[j] || !overlaps(valid[current], valid[j]) {
					continue
				}
				visited[j] = true
				group = append(group, j)
			}
		}
		groups = append(groups, group)
	}

	layouts := make([]domain.BlockLayout, 0, len(valid))
	for _, group := range groups {
		// Earliest start first; on a tie the longer block leads.
		sort.SliceStable(group, func(a, b int) bool {
			ba, bb := valid[group[a]], valid[group[b]]
			if ba.start != bb.start {
				return ba.start < bb.start
			}
			return ba.end > bb.end
		})

		// First-fit: reuse the first column whose last block has ended.
		var columnEnds []int
		columns := make([]int, len(group))
		for i, idx := range group {
			placed := false
			for col, endsAt := range columnEnds {
				if endsAt <= valid[idx].start {
					columnEnds[col] = valid[idx].end
					columns[i] = col
					placed = true
					break
				}
			}
			if !placed {
				columns[i] = len(columnEnds)
				columnEnds = append(columnEnds, valid[idx].end)
			}
		}

		width := 100.0 / float64(len(columnEnds))
		for i, idx := range group {
			layouts = append(layouts, domain.BlockLayout{
				Block:        valid[idx].block,
				Column:       columns[i],
				Columns:      len(columnEnds),
				WidthPercent: width,
				LeftPercent:  float64(columns[i]) * width,
			})
		}
	}
	return layouts
}
