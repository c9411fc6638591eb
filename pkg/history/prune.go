package history

import (
	"sort"
	"time"
)

// PruneStats holds metrics from the most recent prune cycle.
type PruneStats struct {
	PointsRemoved int
	SeriesPruned  int
	Duration      time.Duration
}

// Prune removes data points older than the retention window, measured back
// from now. Binary search on the sorted time axis finds the cutoff per
// series; when more than half a series is removed the backing arrays are
// compacted to release memory, otherwise a reslice suffices.
func (h *History) Prune(now time.Time) PruneStats {
	start := time.Now()
	cutoff := now.Add(-h.cfg.Retention)

	var stats PruneStats
	for _, ser := range h.series {
		idx := sort.Search(len(ser.Times), func(i int) bool {
			return ser.Times[i].After(cutoff)
		})
		if idx == 0 {
			continue
		}

		stats.PointsRemoved += idx
		stats.SeriesPruned++

		if idx > len(ser.Times)/2 {
			newTimes := make([]time.Time, len(ser.Times)-idx)
			copy(newTimes, ser.Times[idx:])
			ser.Times = newTimes

			newValues := make([]float64, len(ser.Values)-idx)
			copy(newValues, ser.Values[idx:])
			ser.Values = newValues
		} else {
			ser.Times = ser.Times[idx:]
			ser.Values = ser.Values[idx:]
		}
	}

	stats.Duration = time.Since(start)
	return stats
}
