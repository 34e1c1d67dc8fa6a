package render

import (
	"image/color"
	"math"
)

// FillRGBA copies per-cell colours into buf as packed RGBA bytes. buf must
// hold at least 4*len(colors) bytes.
func FillRGBA(buf []byte, colors []color.RGBA) {
	for i, col := range colors {
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// FillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func FillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// FillHeatRGBA writes a translucent heat tint for every masked cell and
// clears the rest.
func FillHeatRGBA(buf []byte, heat []int, mask []bool) {
	for i, h := range heat {
		base := i * 4
		if i >= len(mask) || !mask[i] {
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
			continue
		}
		col := HeatColor(h)
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

var heatStops = []struct {
	heat int
	col  color.RGBA
}{
	{-2000, color.RGBA{R: 200, G: 240, B: 255, A: 200}},
	{-40, color.RGBA{R: 60, G: 120, B: 255, A: 170}},
	{25, color.RGBA{R: 40, G: 40, B: 60, A: 40}},
	{100, color.RGBA{R: 220, G: 200, B: 60, A: 150}},
	{600, color.RGBA{R: 255, G: 110, B: 20, A: 190}},
	{2000, color.RGBA{R: 255, G: 255, B: 230, A: 220}},
}

// HeatColor maps a heat value onto the overlay ramp. Values past either end
// clamp to the end colour.
func HeatColor(heat int) color.RGBA {
	if heat <= heatStops[0].heat {
		return heatStops[0].col
	}
	for i := 1; i < len(heatStops); i++ {
		curr := heatStops[i]
		if heat <= curr.heat {
			prev := heatStops[i-1]
			t := float64(heat-prev.heat) / float64(curr.heat-prev.heat)
			return lerpRGBA(prev.col, curr.col, t)
		}
	}
	return heatStops[len(heatStops)-1].col
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: lerpComponent(a.R, b.R, t),
		G: lerpComponent(a.G, b.G, t),
		B: lerpComponent(a.B, b.B, t),
		A: lerpComponent(a.A, b.A, t),
	}
}

func lerpComponent(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}
