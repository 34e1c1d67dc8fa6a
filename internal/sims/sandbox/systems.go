package sandbox

// System is one pass of the tick pipeline over a tile partition.
type System struct {
	Name string

	frameSkip    int
	framesToSkip int
	phase        int
	run          func(w *World)
}

func newSystem(name string, s Schedule, run func(w *World)) *System {
	return &System{
		Name:         name,
		frameSkip:    SimulationFrequency/s.Hz - 1,
		framesToSkip: s.Phase,
		phase:        s.Phase,
		run:          run,
	}
}

// FrameSkip reports how many ticks the system sits out between runs.
func (s *System) FrameSkip() int { return s.frameSkip }

func (s *System) due() bool {
	if s.framesToSkip == 0 {
		s.framesToSkip = s.frameSkip
		return true
	}
	s.framesToSkip--
	return false
}

func (s *System) rewind() { s.framesToSkip = s.phase }

func buildSystems(cfg Config) []*System {
	return []*System{
		newSystem("movement", cfg.Movement, movementSystem),
		newSystem("heat", cfg.Heat, heatSystem),
		newSystem("custom", cfg.Custom, customSystem),
	}
}

func movementSystem(w *World) {
	for _, t := range w.movers {
		t.updatePosition()
	}
}

func heatSystem(w *World) {
	for _, t := range w.heaters {
		t.updateTemperature()
	}
}

func customSystem(w *World) {
	for _, t := range w.customs {
		t.runBehavior()
	}
}
