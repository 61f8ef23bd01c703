// Package grid implements the broad-phase spatial index used to prune
// which hitbox pairs are worth checking with the exact solvers: a
// sparse map from (cell coordinate, group) to the set of hitbox ids
// currently touching that cell.
package grid

// Coord is an integer grid cell coordinate.
type Coord struct {
	X, Y int
}

// IndexRect is a non-empty, half-open rectangular range of grid cell
// coordinates: [Start.X, End.X) x [Start.Y, End.Y).
type IndexRect struct {
	Start, End Coord
}

// NewIndexRect builds an IndexRect. Panics if the range is empty on
// either axis.
func NewIndexRect(start, end Coord) IndexRect {
	if start.X >= end.X || start.Y >= end.Y {
		panic("grid: IndexRect contains no elements")
	}

	return IndexRect{Start: start, End: end}
}

// Contains reports whether val lies within the half-open range.
func (r IndexRect) Contains(val Coord) bool {
	return val.X >= r.Start.X && val.X < r.End.X && val.Y >= r.Start.Y && val.Y < r.End.Y
}

// Cells returns every coordinate in the range, in row-major order
// (y varies fastest within a fixed x), matching the iteration order
// the original index walks its cells in.
func (r IndexRect) Cells() []Coord {
	cells := make([]Coord, 0, (r.End.X-r.Start.X)*(r.End.Y-r.Start.Y))
	for x := r.Start.X; x < r.End.X; x++ {
		for y := r.Start.Y; y < r.End.Y; y++ {
			cells = append(cells, Coord{X: x, Y: y})
		}
	}

	return cells
}

// ForEach invokes fn for every coordinate in the range, in the same
// row-major order as Cells, without the intermediate allocation.
func (r IndexRect) ForEach(fn func(Coord)) {
	for x := r.Start.X; x < r.End.X; x++ {
		for y := r.Start.Y; y < r.End.Y; y++ {
			fn(Coord{X: x, Y: y})
		}
	}
}
