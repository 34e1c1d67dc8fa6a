//go:build ebiten

package ui

import (
	"image/color"

	"ombrobox/internal/core"
	"ombrobox/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type heatFieldProvider interface {
	HeatField(dst []int, mask []bool) ([]int, []bool)
}

// Overlay draws optional debugging visuals on top of the base simulation:
// the heat field (H) and the brush outline under the cursor.
type Overlay struct {
	sim      core.Sim
	scale    int
	showHeat bool

	painter *render.GridPainter
	heat    []int
	mask    []bool

	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	size := sim.Size()
	o := &Overlay{sim: sim, scale: scale, painter: render.NewGridPainter(size.W, size.H)}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// ShowingHeat reports whether the heat layer is visible.
func (o *Overlay) ShowingHeat() bool { return o.showHeat }

// Update toggles layers from the keyboard.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		o.showHeat = !o.showHeat
	}
}

// Draw renders the enabled layers and outlines the brush centred on cell
// (cx, cy) with the given radius. A negative radius hides the outline.
func (o *Overlay) Draw(screen *ebiten.Image, cx, cy, radius int) {
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	if o.showHeat {
		if provider, ok := o.sim.(heatFieldProvider); ok {
			o.heat, o.mask = provider.HeatField(o.heat, o.mask)
			o.painter.BlitHeat(screen, o.heat, o.mask, scale)
		}
	}
	if radius >= 0 {
		o.drawBrush(screen, cx, cy, radius, scale)
	}
}

func (o *Overlay) drawBrush(screen *ebiten.Image, cx, cy, radius, scale int) {
	size := o.sim.Size()
	if cx < 0 || cy < 0 || cx >= size.W || cy >= size.H {
		return
	}
	col := color.RGBA{R: 255, G: 255, B: 255, A: 90}
	x0 := float64((cx - radius) * scale)
	y0 := float64((cy - radius) * scale)
	side := float64((2*radius + 1) * scale)
	o.drawRect(screen, x0, y0, side, 1, col)
	o.drawRect(screen, x0, y0+side-1, side, 1, col)
	o.drawRect(screen, x0, y0, 1, side, col)
	o.drawRect(screen, x0+side-1, y0, 1, side, col)
}

func (o *Overlay) drawRect(screen *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	if o.pixel == nil || w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
