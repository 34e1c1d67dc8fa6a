package sandbox

import (
	perlin "github.com/aquilax/go-perlin"
)

// SeedTerrain lays a perlin heightmap of rock topped with sand, then floods
// every valley below the water line. Materials missing from the registry are
// skipped. Tiles go through AddTile, so occupied cells are left alone.
func (w *World) SeedTerrain(seed int64) {
	p := w.cfg.TerrainParams
	rock, _ := w.reg.Lookup("Rock")
	sand, _ := w.reg.Lookup("Sand")
	water, _ := w.reg.Lookup("Water")

	noise := perlin.NewPerlin(p.Alpha, p.Beta, p.Octave, seed)
	h := w.grid.H
	waterLine := int(float64(h) * p.WaterLine)
	for x := 0; x < w.grid.W; x++ {
		n := noise.Noise1D(float64(x) * p.Scale)
		surface := int(float64(h)*p.Surface - n*float64(h)*p.Amplitude)
		surface = min(max(surface, 1), h-1)
		for y := surface; y < h; y++ {
			m := rock
			if y < surface+p.SandDepth {
				m = sand
			}
			if m != nil {
				w.AddTile(m, x, y)
			}
		}
		if water == nil {
			continue
		}
		for y := max(waterLine, 0); y < surface; y++ {
			w.AddTile(water, x, y)
		}
	}
}

// SurfaceAt returns the y of the topmost tile in column x, or Height when
// the column is empty.
func (w *World) SurfaceAt(x int) int {
	for y := 0; y < w.grid.H; y++ {
		if w.TileAt(x, y) != nil {
			return y
		}
	}
	return w.grid.H
}
