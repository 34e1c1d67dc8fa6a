//go:build ebiten

package app

import (
	"image/color"
	"time"

	"ombrobox/internal/render"
	"ombrobox/internal/sims/sandbox"
	"ombrobox/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 220

// Game adapts a sandbox session to the ebiten.Game interface.
type Game struct {
	session *Session
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD

	colors []color.RGBA
	scale  int

	cursorX, cursorY int
}

// New constructs a Game for the provided session.
func New(s *Session, scale int) *Game {
	if scale <= 0 {
		scale = 1
	}
	w := s.World()
	return &Game{
		session: s,
		painter: render.NewGridPainter(w.Width(), w.Height()),
		overlay: ui.NewOverlay(w, scale),
		hud:     ui.NewHUD(w, hudWidth, s.Status),
		scale:   scale,
		cursorX: -1,
		cursorY: -1,
	}
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	s := g.session
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		s.Resume()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		s.StepOnce()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.Reset(s.Seed())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		s.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		s.SetBrush(s.Brush() - 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		s.SetBrush(s.Brush() + 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		s.Cycle(1)
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		if dy > 0 {
			s.Cycle(-1)
		} else {
			s.Cycle(1)
		}
	}
	g.handleMouse()

	g.overlay.Update()
	g.hud.Update(g.viewWidth())

	s.Frame()
	return nil
}

func (g *Game) handleMouse() {
	mx, my := ebiten.CursorPosition()
	g.cursorX, g.cursorY = -1, -1
	if mx < 0 || my < 0 || mx >= g.viewWidth() {
		return
	}
	w := g.session.World()
	x, y := mx/g.scale, my/g.scale
	if x >= w.Width() || y >= w.Height() {
		return
	}
	g.cursorX, g.cursorY = x, y
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		g.session.Paint(x, y)
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		g.session.Erase(x, y)
	}
}

func (g *Game) viewWidth() int { return g.session.World().Width() * g.scale }

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	w := g.session.World()
	g.colors = w.Colors(g.colors, sandbox.Background)
	g.painter.Blit(screen, g.colors, g.scale)
	radius := -1
	if g.cursorX >= 0 {
		radius = g.session.Brush()
	}
	g.overlay.Draw(screen, g.cursorX, g.cursorY, radius)
	g.hud.Draw(screen, g.viewWidth(), g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w := g.session.World()
	return g.viewWidth() + g.hud.Width(), w.Height() * g.scale
}
