// Package layout resolves the configured widget grid into terminal-cell
// rectangles. A Spec is a list of rows with relative heights, each row a
// list of widgets with relative widths; Compute partitions the screen
// proportionally, spreading integer remainders so the grid always fills the
// area exactly. The resulting placements drive rendering, mouse hit-testing,
// and the directional focus graph.
package layout

import "fmt"

// Rect is a rectangular area in terminal cells.
type Rect struct {
	X, Y, Width, Height int
}

// Empty reports whether the rectangle has zero area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Right returns the X coordinate of the right edge (exclusive).
func (r Rect) Right() int {
	return r.X + r.Width
}

// Bottom returns the Y coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Contains reports whether the point (px, py) lies within the rectangle.
func (r Rect) Contains(px, py int) bool {
	return px >= r.X && px < r.Right() && py >= r.Y && py < r.Bottom()
}

// CenterX returns the horizontal midpoint.
func (r Rect) CenterX() int {
	return r.X + r.Width/2
}

// CenterY returns the vertical midpoint.
func (r Rect) CenterY() int {
	return r.Y + r.Height/2
}

// Kind identifies a widget type placeable in the grid.
type Kind string

const (
	KindCPU         Kind = "cpu"
	KindMemory      Kind = "memory"
	KindNetwork     Kind = "network"
	KindDisk        Kind = "disk"
	KindTemperature Kind = "temperature"
	KindBattery     Kind = "battery"
	KindProcess     Kind = "process"
)

// ValidKind reports whether s names a known widget kind.
func ValidKind(s string) bool {
	switch Kind(s) {
	case KindCPU, KindMemory, KindNetwork, KindDisk, KindTemperature,
		KindBattery, KindProcess:
		return true
	}
	return false
}

// Child is one widget slot in a row. Ratio is its share of the row width
// relative to its siblings; zero or negative ratios count as 1.
type Child struct {
	Kind  Kind
	Ratio int
}

// Row is one horizontal band of the grid. Ratio is its share of the screen
// height relative to the other rows.
type Row struct {
	Ratio    int
	Children []Child
}

// Spec is a complete named grid.
type Spec struct {
	Name string
	Rows []Row
}

// Placement binds a widget instance to its screen rectangle. ID is unique
// within one Compute result: the kind plus a per-kind ordinal ("process0",
// "cpu0"), stable across recomputes of the same spec.
type Placement struct {
	ID   string
	Kind Kind
	Rect Rect
}

// Compute partitions a width x height screen according to the spec. Rows
// split the height by ratio, children split each row's width by ratio;
// integer remainders go to the last element of each split so the cells
// always sum to the full extent. An empty spec or degenerate screen yields
// no placements.
//
// Ordinals are consumed in spec order even by children too starved to
// place, so a widget keeps its id at every screen size.
func Compute(spec Spec, width, height int) []Placement {
	if len(spec.Rows) == 0 || width <= 0 || height <= 0 {
		return nil
	}

	rowRatios := make([]int, len(spec.Rows))
	for i, row := range spec.Rows {
		rowRatios[i] = row.Ratio
	}
	heights := splitByRatio(height, rowRatios)

	counts := make(map[Kind]int)
	var out []Placement

	y := 0
	for i, row := range spec.Rows {
		h := heights[i]
		if len(row.Children) == 0 || h <= 0 {
			for _, c := range row.Children {
				counts[c.Kind]++
			}
			y += h
			continue
		}

		childRatios := make([]int, len(row.Children))
		for j, c := range row.Children {
			childRatios[j] = c.Ratio
		}
		widths := splitByRatio(width, childRatios)

		x := 0
		for j, c := range row.Children {
			w := widths[j]
			id := fmt.Sprintf("%s%d", c.Kind, counts[c.Kind])
			counts[c.Kind]++
			if w > 0 {
				out = append(out, Placement{
					ID:   id,
					Kind: c.Kind,
					Rect: Rect{X: x, Y: y, Width: w, Height: h},
				})
			}
			x += w
		}
		y += h
	}

	return out
}

// WidgetID pairs a placement id with its kind, independent of geometry.
type WidgetID struct {
	ID   string
	Kind Kind
}

// WidgetIDs enumerates the widget instances a spec produces, in row-major
// order. The ids match what Compute assigns at any screen size, so the
// widget set can be built before the first terminal size is known.
func WidgetIDs(spec Spec) []WidgetID {
	counts := make(map[Kind]int)
	out := make([]WidgetID, 0, 8)
	for _, row := range spec.Rows {
		for _, c := range row.Children {
			out = append(out, WidgetID{
				ID:   fmt.Sprintf("%s%d", c.Kind, counts[c.Kind]),
				Kind: c.Kind,
			})
			counts[c.Kind]++
		}
	}
	return out
}

// splitByRatio divides total into len(ratios) parts proportional to the
// ratios, giving the integer remainder to the last part. Non-positive
// ratios count as 1 so a sloppy spec still renders.
func splitByRatio(total int, ratios []int) []int {
	n := len(ratios)
	out := make([]int, n)
	if n == 0 || total <= 0 {
		return out
	}

	sum := 0
	norm := make([]int, n)
	for i, r := range ratios {
		if r <= 0 {
			r = 1
		}
		norm[i] = r
		sum += r
	}

	used := 0
	for i := 0; i < n-1; i++ {
		out[i] = total * norm[i] / sum
		used += out[i]
	}
	out[n-1] = total - used
	return out
}
