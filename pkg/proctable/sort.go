package proctable

import (
	"sort"
	"strings"
)

// SortColumn identifies the user-selected sort key. Some columns only mean
// anything in one shaping mode; applying one in the wrong mode is a no-op
// and the name baseline alone decides the order.
type SortColumn int

const (
	SortCPU SortColumn = iota
	SortMem
	SortPID
	SortName
	SortCount
)

// String returns the column's display label.
func (c SortColumn) String() string {
	switch c {
	case SortCPU:
		return "CPU%"
	case SortMem:
		return "MEM%"
	case SortPID:
		return "PID"
	case SortName:
		return "Name"
	case SortCount:
		return "Count"
	default:
		return "?"
	}
}

// Next cycles to the following column, wrapping after Count.
func (c SortColumn) Next() SortColumn {
	if c >= SortCount {
		return SortCPU
	}
	return c + 1
}

// sortRows orders rows in place: first the stable case-insensitive
// name-ascending baseline, then the configured column on top. The second
// stable pass dominates while equal keys keep their baseline order, which
// is what makes same-valued rows come out name-sorted.
func sortRows(rows []Row, opts Options) {
	sort.SliceStable(rows, func(i, j int) bool {
		return lowerName(rows[i]) < lowerName(rows[j])
	})
	if cmp := columnLess(opts); cmp != nil {
		sort.SliceStable(rows, func(i, j int) bool {
			return cmp(rows[i], rows[j])
		})
	}
}

// sortSiblings applies the same two-pass ordering to one sibling group of a
// tree, expressed as indices into rows.
func sortSiblings(rows []Row, group []int, opts Options) {
	if len(group) < 2 {
		return
	}
	sort.SliceStable(group, func(i, j int) bool {
		return lowerName(rows[group[i]]) < lowerName(rows[group[j]])
	})
	if cmp := columnLess(opts); cmp != nil {
		sort.SliceStable(group, func(i, j int) bool {
			return cmp(rows[group[i]], rows[group[j]])
		})
	}
}

// columnLess returns the strict comparator for the configured column, or
// nil when the column does not apply: pid is meaningless on grouped
// aggregates, count is meaningless without grouping (tree rows are never
// grouped). Equal keys return false from either direction so the stable
// baseline order survives.
func columnLess(opts Options) func(a, b Row) bool {
	desc := opts.SortDescending
	grouped := opts.Grouped && !opts.Tree

	switch opts.SortColumn {
	case SortCPU:
		return func(a, b Row) bool {
			if desc {
				return a.CPUPercent > b.CPUPercent
			}
			return a.CPUPercent < b.CPUPercent
		}
	case SortMem:
		return func(a, b Row) bool {
			if desc {
				return a.MemPercent > b.MemPercent
			}
			return a.MemPercent < b.MemPercent
		}
	case SortPID:
		if grouped {
			return nil
		}
		return func(a, b Row) bool {
			if desc {
				return a.PID > b.PID
			}
			return a.PID < b.PID
		}
	case SortName:
		return func(a, b Row) bool {
			if desc {
				return lowerName(a) > lowerName(b)
			}
			return lowerName(a) < lowerName(b)
		}
	case SortCount:
		if !grouped {
			return nil
		}
		return func(a, b Row) bool {
			if desc {
				return a.Count() > b.Count()
			}
			return a.Count() < b.Count()
		}
	}
	return nil
}

func lowerName(r Row) string {
	return strings.ToLower(r.Name)
}
