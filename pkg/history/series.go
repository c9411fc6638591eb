// Package history is a Structure-of-Arrays time-series store for harvested
// metrics: each named series keeps timestamps and values in parallel slices
// sharing one time axis, which renders cheaply (iterate one metric at a time)
// and prunes cheaply (one binary search per series). Unlike a shared cache it
// is owned by exactly one goroutine, the update loop; snapshots arrive by
// channel ownership transfer, so no locking is needed or provided.
package history

import "time"

// Series is a single named time-series with timestamps and corresponding
// values stored in parallel slices. The time axis is append-only and sorted.
type Series struct {
	Name   string
	Times  []time.Time
	Values []float64
}

// Len returns the number of data points.
func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Values)
}

// Last returns the most recent value. Returns 0 for empty series.
func (s *Series) Last() float64 {
	if s == nil || len(s.Values) == 0 {
		return 0
	}
	return s.Values[len(s.Values)-1]
}

// Min returns the minimum value. Returns 0 for empty series.
func (s *Series) Min() float64 {
	if s == nil || len(s.Values) == 0 {
		return 0
	}
	m := s.Values[0]
	for _, v := range s.Values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// Max returns the maximum value. Returns 0 for empty series.
func (s *Series) Max() float64 {
	if s == nil || len(s.Values) == 0 {
		return 0
	}
	m := s.Values[0]
	for _, v := range s.Values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// Avg returns the arithmetic mean. Returns 0 for empty series.
func (s *Series) Avg() float64 {
	if s == nil || len(s.Values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range s.Values {
		sum += v
	}
	return sum / float64(len(s.Values))
}

// LastN returns up to n of the most recent values, oldest first. The
// returned slice aliases internal storage and must not be retained across
// the next Ingest or Prune.
func (s *Series) LastN(n int) []float64 {
	if s == nil || n <= 0 {
		return nil
	}
	if n > len(s.Values) {
		n = len(s.Values)
	}
	return s.Values[len(s.Values)-n:]
}

func (s *Series) append(t time.Time, v float64) {
	s.Times = append(s.Times, t)
	s.Values = append(s.Values, v)
}
