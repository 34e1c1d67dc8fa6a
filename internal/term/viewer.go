package term

import (
	"context"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"

	"ombrobox/internal/app"
	"ombrobox/internal/render"
	"ombrobox/internal/sims/sandbox"
)

const frameInterval = 16 * time.Millisecond

// Viewer draws a session into a terminal, one tile per character cell, and
// maps keys and mouse clicks onto session actions.
type Viewer struct {
	screen  tcell.Screen
	session *app.Session

	cursorX, cursorY int
	heat             bool

	colors []color.RGBA
	heatV  []int
	mask   []bool
}

// New returns a viewer for an initialised screen.
func New(screen tcell.Screen, s *app.Session) *Viewer {
	w := s.World()
	return &Viewer{
		screen:  screen,
		session: s,
		cursorX: w.Width() / 2,
		cursorY: w.Height() / 4,
	}
}

// Run polls input and redraws until the context ends or the user quits.
func (v *Viewer) Run(ctx context.Context) error {
	v.screen.EnableMouse()
	defer v.screen.DisableMouse()

	events := make(chan tcell.Event, 64)
	go v.forward(ctx, events)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || !v.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			v.session.Advance()
			v.Draw()
		}
	}
}

// forward feeds screen events into events until the screen shuts down or
// ctx ends. events is closed only when the screen stops.
func (v *Viewer) forward(ctx context.Context, events chan<- tcell.Event) {
	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

func (v *Viewer) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.HandleKey(ev.Key(), ev.Rune())
	case *tcell.EventMouse:
		x, y := ev.Position()
		v.HandleMouse(x, y, ev.Buttons())
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

// HandleKey applies a key press. It returns false when the user asked to quit.
func (v *Viewer) HandleKey(key tcell.Key, ch rune) bool {
	s := v.session
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		v.moveCursor(0, -1)
	case tcell.KeyDown:
		v.moveCursor(0, 1)
	case tcell.KeyLeft:
		v.moveCursor(-1, 0)
	case tcell.KeyRight:
		v.moveCursor(1, 0)
	case tcell.KeyTab:
		s.Cycle(1)
	case tcell.KeyBacktab:
		s.Cycle(-1)
	case tcell.KeyEnter:
		s.Resume()
	case tcell.KeyRune:
		switch ch {
		case 'q':
			return false
		case ' ':
			s.TogglePause()
		case 'n':
			s.StepOnce()
		case 'p':
			s.Paint(v.cursorX, v.cursorY)
		case 'x':
			s.Erase(v.cursorX, v.cursorY)
		case 'h':
			v.heat = !v.heat
		case '[':
			s.SetBrush(s.Brush() - 1)
		case ']':
			s.SetBrush(s.Brush() + 1)
		case 'r':
			s.Reset(s.Seed())
		case 's':
			s.Reset(time.Now().UnixNano())
		}
	}
	return true
}

// HandleMouse paints with the primary button and erases with the others.
func (v *Viewer) HandleMouse(x, y int, buttons tcell.ButtonMask) {
	w := v.session.World()
	if x < 0 || y < 0 || x >= w.Width() || y >= w.Height() {
		return
	}
	v.cursorX, v.cursorY = x, y
	switch {
	case buttons&tcell.Button1 != 0:
		v.session.Paint(x, y)
	case buttons&(tcell.Button2|tcell.Button3) != 0:
		v.session.Erase(x, y)
	}
}

func (v *Viewer) moveCursor(dx, dy int) {
	w := v.session.World()
	v.cursorX = min(max(v.cursorX+dx, 0), w.Width()-1)
	v.cursorY = min(max(v.cursorY+dy, 0), w.Height()-1)
}

// Cursor returns the cursor cell.
func (v *Viewer) Cursor() (int, int) { return v.cursorX, v.cursorY }

// Draw paints the world, the cursor and a status line below the world when
// the terminal has room for it.
func (v *Viewer) Draw() {
	w := v.session.World()
	sw, sh := v.screen.Size()
	v.screen.Clear()

	v.colors = w.Colors(v.colors, sandbox.Background)
	if v.heat {
		v.heatV, v.mask = w.HeatField(v.heatV, v.mask)
	}
	for y := 0; y < w.Height() && y < sh; y++ {
		for x := 0; x < w.Width() && x < sw; x++ {
			i := y*w.Width() + x
			col := v.colors[i]
			if v.heat && v.mask[i] {
				col = render.HeatColor(v.heatV[i])
			}
			style := tcell.StyleDefault.Background(rgb(col))
			if x == v.cursorX && y == v.cursorY {
				style = style.Reverse(true)
			}
			v.screen.SetContent(x, y, ' ', nil, style)
		}
	}

	if w.Height() < sh {
		status := v.session.Status()
		if v.heat {
			status += "  heat"
		}
		for i, r := range status {
			if i >= sw {
				break
			}
			v.screen.SetContent(i, w.Height(), r, nil, tcell.StyleDefault)
		}
	}
	v.screen.Show()
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
