package app

import (
	"fmt"

	"ombrobox/internal/core"
	"ombrobox/internal/sims/sandbox"
)

const maxBrush = 16

// Session holds the interactive state shared by the front ends: the world,
// the selected material, the brush and the pause state.
type Session struct {
	world    *sandbox.World
	selected int
	brush    int
	paused   bool
	tickOnce bool
	seed     int64

	clock *core.FixedStep

	// OnDetonate is called after a tick in which explosions went off.
	OnDetonate func(n int)
}

// NewSession wraps a world for interactive use.
func NewSession(w *sandbox.World, cfg *Config) *Session {
	s := &Session{world: w, brush: 1, seed: 42, clock: core.NewFixedStep(sandbox.SimulationFrequency)}
	if cfg != nil {
		s.seed = cfg.Seed
		s.SetBrush(cfg.Brush)
		s.clock.SetTPS(cfg.TPS)
	}
	return s
}

// World returns the simulated world.
func (s *Session) World() *sandbox.World { return s.world }

// Selected returns the material the brush paints with.
func (s *Session) Selected() *sandbox.Material { return s.world.Registry().At(s.selected) }

// Select picks a material by menu index.
func (s *Session) Select(i int) bool {
	if s.world.Registry().At(i) == nil {
		return false
	}
	s.selected = i
	return true
}

// Cycle moves the selection through the material menu, wrapping at both ends.
func (s *Session) Cycle(delta int) {
	n := s.world.Registry().Len()
	if n == 0 {
		return
	}
	s.selected = ((s.selected+delta)%n + n) % n
}

// Brush returns the brush radius.
func (s *Session) Brush() int { return s.brush }

// SetBrush sets the brush radius, clamped to [0, maxBrush].
func (s *Session) SetBrush(r int) {
	s.brush = min(max(r, 0), maxBrush)
}

// Paint places the selected material in every empty cell within the brush
// around (cx, cy) and returns the number of tiles placed.
func (s *Session) Paint(cx, cy int) int {
	m := s.Selected()
	placed := 0
	s.eachBrushCell(cx, cy, func(x, y int) {
		if s.world.TileAt(x, y) != nil {
			return
		}
		if t := s.world.AddTile(m, x, y); t != nil && t.Active() {
			placed++
		}
	})
	return placed
}

// Erase deletes every tile within the brush around (cx, cy) and returns the
// number removed.
func (s *Session) Erase(cx, cy int) int {
	removed := 0
	s.eachBrushCell(cx, cy, func(x, y int) {
		if s.world.DeleteTile(x, y) != nil {
			removed++
		}
	})
	return removed
}

func (s *Session) eachBrushCell(cx, cy int, fn func(x, y int)) {
	r := s.brush
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy > r*r {
				continue
			}
			if x < 0 || y < 0 || x >= s.world.Width() || y >= s.world.Height() {
				continue
			}
			fn(x, y)
		}
	}
}

// Paused reports whether automatic ticking is suspended.
func (s *Session) Paused() bool { return s.paused }

// TogglePause flips the pause state.
func (s *Session) TogglePause() { s.paused = !s.paused }

// Resume clears the pause state.
func (s *Session) Resume() { s.paused = false }

// StepOnce requests a single tick while paused.
func (s *Session) StepOnce() { s.tickOnce = true }

// Reset clears the world with the given seed and remembers it.
func (s *Session) Reset(seed int64) {
	s.seed = seed
	s.world.Reset(seed)
	s.tickOnce = false
}

// Seed returns the seed of the last reset.
func (s *Session) Seed() int64 { return s.seed }

// Step runs one tick unconditionally.
func (s *Session) Step() {
	s.world.Update()
	if n := s.world.Stats().Detonations; n > 0 && s.OnDetonate != nil {
		s.OnDetonate(n)
	}
}

// Frame is called once per display frame by front ends that run their own
// timing. It advances one tick unless paused.
func (s *Session) Frame() bool {
	if s.paused && !s.tickOnce {
		return false
	}
	s.tickOnce = false
	s.Step()
	return true
}

// Advance runs the ticks that are due on the session clock, or a single
// requested tick while paused. It returns the number of ticks run.
func (s *Session) Advance() int {
	if s.paused {
		if !s.tickOnce {
			return 0
		}
		s.tickOnce = false
		s.Step()
		return 1
	}
	n := s.clock.Due()
	for i := 0; i < n; i++ {
		s.Step()
	}
	return n
}

// Status is a one-line summary for status bars and window titles.
func (s *Session) Status() string {
	name := "-"
	if m := s.Selected(); m != nil {
		name = m.Name
	}
	state := "running"
	if s.paused {
		state = "paused"
	}
	return fmt.Sprintf("%s  brush %d  tick %d  tiles %d  %s",
		name, s.brush, s.world.Tick(), len(s.world.Tiles()), state)
}
