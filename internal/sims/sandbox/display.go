package sandbox

import "image/color"

// Background is the colour of empty cells.
var Background = color.RGBA{A: 255}

// Cells returns one byte per cell: 0 for empty, material id + 1 otherwise.
func (w *World) Cells() []uint8 {
	for i, t := range w.grid.Cells() {
		if t == nil {
			w.display[i] = 0
			continue
		}
		w.display[i] = uint8(t.mat.id + 1)
	}
	return w.display
}

// Palette maps Cells values to material swatches, index 0 being empty.
func (w *World) Palette() []color.RGBA {
	palette := make([]color.RGBA, w.reg.Len()+1)
	palette[0] = Background
	for i, m := range w.reg.Materials() {
		palette[i+1] = m.Swatch()
	}
	return palette
}

// Colors fills dst with the colour of every cell in row-major order, using
// background for empty cells, and returns it. dst is reallocated when it is
// too small.
func (w *World) Colors(dst []color.RGBA, background color.RGBA) []color.RGBA {
	cells := w.grid.Cells()
	if cap(dst) < len(cells) {
		dst = make([]color.RGBA, len(cells))
	}
	dst = dst[:len(cells)]
	for i, t := range cells {
		if t == nil {
			dst[i] = background
			continue
		}
		dst[i] = t.Color
	}
	return dst
}

// HeatAt returns the heat of the tile at (x, y). The second result is false
// when the cell is empty or the tile does not conduct heat.
func (w *World) HeatAt(x, y int) (int, bool) {
	t := w.TileAt(x, y)
	if t == nil || !t.ConductsHeat() {
		return 0, false
	}
	return t.Heat, true
}

// HeatField fills dst with per-cell heat and a parallel mask of cells that
// carry heat, for overlays.
func (w *World) HeatField(dst []int, mask []bool) ([]int, []bool) {
	cells := w.grid.Cells()
	if cap(dst) < len(cells) {
		dst = make([]int, len(cells))
	}
	if cap(mask) < len(cells) {
		mask = make([]bool, len(cells))
	}
	dst, mask = dst[:len(cells)], mask[:len(cells)]
	for i, t := range cells {
		if t == nil || !t.ConductsHeat() {
			dst[i], mask[i] = 0, false
			continue
		}
		dst[i], mask[i] = t.Heat, true
	}
	return dst, mask
}
