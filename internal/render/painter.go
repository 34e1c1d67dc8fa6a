//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter keeps a single RGBA image in sync with per-cell colours.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// Blit uploads the provided colours into the painter image and draws it.
func (gp *GridPainter) Blit(dst *ebiten.Image, colors []color.RGBA, scale int) {
	if len(colors) != gp.w*gp.h {
		return
	}
	FillRGBA(gp.buf, colors)
	gp.draw(dst, scale)
}

// BlitHeat draws the heat overlay for the masked cells.
func (gp *GridPainter) BlitHeat(dst *ebiten.Image, heat []int, mask []bool, scale int) {
	if len(heat) != gp.w*gp.h {
		return
	}
	FillHeatRGBA(gp.buf, heat, mask)
	gp.draw(dst, scale)
}

func (gp *GridPainter) draw(dst *ebiten.Image, scale int) {
	gp.img.WritePixels(gp.buf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
