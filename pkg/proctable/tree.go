package proctable

import "gitlab.com/tinyland/lab/procpulse/pkg/harvest"

// buildTree shapes records into a forest following ParentPID links and
// flattens it depth-first, so a child always appears after its parent.
// Records that fail the filter are disabled rather than removed, keeping
// ancestor and descendant context intact. A record whose parent pid is
// absent from the snapshot (or is itself) becomes a root; a parent cycle is
// broken by promoting its first-seen member to a root.
func buildTree(records []harvest.ProcessRecord, opts Options) []Row {
	rows := make([]Row, len(records))
	byPID := make(map[int32]int, len(records))
	for i, rec := range records {
		rows[i] = Row{
			ProcessRecord: rec,
			Disabled:      !opts.Matcher.Matches(rec),
		}
		byPID[rec.PID] = i
	}

	children := make(map[int32][]int)
	var roots []int
	for i := range rows {
		ppid := rows[i].ParentPID
		if _, ok := byPID[ppid]; !ok || ppid == rows[i].PID {
			roots = append(roots, i)
			continue
		}
		children[ppid] = append(children[ppid], i)
	}

	out := make([]Row, 0, len(rows))
	visited := make([]bool, len(rows))

	var walk func(idx, depth int)
	walk = func(idx, depth int) {
		if visited[idx] {
			return
		}
		visited[idx] = true

		r := rows[idx]
		r.Depth = depth
		out = append(out, r)

		kids := children[rows[idx].PID]
		sortSiblings(rows, kids, opts)
		for _, k := range kids {
			walk(k, depth+1)
		}
	}

	sortSiblings(rows, roots, opts)
	for _, r := range roots {
		walk(r, 0)
	}

	// Anything still unvisited sits on a parent cycle; promote its
	// first-seen member to a root so no record is dropped.
	for i := range rows {
		if !visited[i] {
			walk(i, 0)
		}
	}

	return out
}
