package core

// Grid stores a 2D matrix of cell values in row-major order.
type Grid[T any] struct {
	W, H int
	data []T
}

// NewGrid allocates a grid with the given dimensions.
func NewGrid[T any](w, h int) *Grid[T] {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid[T]{W: w, H: h, data: make([]T, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid[T]) Cells() []T { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid[T]) Index(x, y int) int { return y*g.W + x }

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid[T]) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Offset applies (dx, dy) to (x, y). Targets outside the grid are reported
// as invalid rather than wrapped.
func (g *Grid[T]) Offset(x, y, dx, dy int) (int, int, bool) {
	nx, ny := x+dx, y+dy
	if nx < 0 || nx >= g.W {
		return 0, 0, false
	}
	if ny < 0 || ny >= g.H {
		return 0, 0, false
	}
	return nx, ny, true
}

// At returns the value at (x, y). The caller must check bounds.
func (g *Grid[T]) At(x, y int) T { return g.data[y*g.W+x] }

// Set stores v at (x, y). The caller must check bounds.
func (g *Grid[T]) Set(x, y int, v T) { g.data[y*g.W+x] = v }

// Clear resets every cell to the zero value.
func (g *Grid[T]) Clear() {
	clear(g.data)
}
