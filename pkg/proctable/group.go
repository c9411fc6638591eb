package proctable

// groupRows merges same-name rows into one aggregate each, summing CPU,
// memory, and byte-rate fields and collecting the contributing pids. The
// aggregate keeps the smallest pid as its own so its identity is stable
// across recomputes. Input order decides which row seeds an aggregate;
// output order is one aggregate per name in first-seen order (sorting
// happens afterwards).
//
// Grouping an already-grouped slice is the identity: names are unique after
// a pass, and existing GroupPIDs sets are preserved, not rebuilt.
func groupRows(rows []Row) []Row {
	index := make(map[string]int, len(rows))
	out := make([]Row, 0, len(rows))

	for _, r := range rows {
		pids := r.GroupPIDs
		if pids == nil {
			pids = []int32{r.PID}
		}

		i, ok := index[r.Name]
		if !ok {
			index[r.Name] = len(out)
			g := r
			g.GroupPIDs = pids
			out = append(out, g)
			continue
		}

		agg := &out[i]
		agg.CPUPercent += r.CPUPercent
		agg.MemPercent += r.MemPercent
		agg.MemBytes += r.MemBytes
		agg.ReadPerSec += r.ReadPerSec
		agg.WritePerSec += r.WritePerSec
		agg.TotalRead += r.TotalRead
		agg.TotalWrite += r.TotalWrite
		agg.GroupPIDs = append(agg.GroupPIDs, pids...)
		if r.PID < agg.PID {
			agg.PID = r.PID
		}
	}

	return out
}
