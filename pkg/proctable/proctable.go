// Package proctable turns raw process records into the finalized row list a
// process table renders: filter by the widget's search query, shape into a
// grouped or tree view, sort with a stable name baseline, and clamp the
// widget's scroll state. Everything here is pure computation over slices;
// the update loop recomputes per widget and caches the result, so this
// package holds no state of its own.
package proctable

import "gitlab.com/tinyland/lab/procpulse/pkg/harvest"

// Row is one display row of a finalized process list. Exactly one shaping
// applies per build: GroupPIDs is non-nil for grouped aggregates, Depth and
// Disabled are meaningful for tree rows, and a plain row carries neither.
type Row struct {
	harvest.ProcessRecord

	// GroupPIDs lists every pid merged into a grouped aggregate. Nil for
	// ungrouped rows.
	GroupPIDs []int32

	// Depth is the indentation level in tree mode.
	Depth int

	// Disabled marks a tree row that failed the filter but is kept so its
	// ancestors and descendants stay connected. Disabled rows render dimmed
	// and are skipped by selection-dependent commands.
	Disabled bool
}

// Count returns the number of processes behind the row.
func (r Row) Count() int {
	if r.GroupPIDs == nil {
		return 1
	}
	return len(r.GroupPIDs)
}

// Options selects the shaping and ordering for one build. Tree takes
// precedence over Grouped when both are set.
type Options struct {
	// Matcher filters records; nil matches everything.
	Matcher *Matcher

	Grouped bool
	Tree    bool

	SortColumn     SortColumn
	SortDescending bool
}

// Build runs filter, shape, and sort in that fixed order and returns the
// display rows. Tree mode shapes and sorts in one pass because sibling
// groups sort independently, never the flattened list.
func Build(records []harvest.ProcessRecord, opts Options) []Row {
	if opts.Tree {
		return buildTree(records, opts)
	}

	rows := filterRows(records, opts.Matcher)
	if opts.Grouped {
		rows = groupRows(rows)
	}
	sortRows(rows, opts)
	return rows
}

// Finalize runs the full pipeline for one widget and clamps its scroll
// state against the result length.
func Finalize(records []harvest.ProcessRecord, opts Options, scroll *Scroll) []Row {
	rows := Build(records, opts)
	scroll.Clamp(len(rows))
	return rows
}

// filterRows wraps matching records into rows. A nil matcher (blank or
// invalid query) passes every record through unchanged.
func filterRows(records []harvest.ProcessRecord, m *Matcher) []Row {
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		if !m.Matches(rec) {
			continue
		}
		rows = append(rows, Row{ProcessRecord: rec})
	}
	return rows
}
