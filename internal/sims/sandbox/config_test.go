package sandbox

import (
	"flag"
	"testing"

	"github.com/rotisserie/eris"

	"ombrobox/internal/core"
)

func TestFromMapDefaults(t *testing.T) {
	cfg, err := FromMap(nil)
	if err != nil {
		t.Fatalf("FromMap(nil): %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("nil map should give the defaults, got %+v", cfg)
	}
}

func TestFromMapParsesValues(t *testing.T) {
	cfg, err := FromMap(map[string]string{
		"w":             "32",
		"h":             "24",
		"seed":          "-7",
		"move_cooldown": "0",
		"heat_hz":       "20",
		"heat_phase":    "2",
		"terrain":       "true",
		"terrain_scale": "0.1",
		"terrain_sand":  "5",
	})
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	if cfg.Width != 32 || cfg.Height != 24 || cfg.Seed != -7 {
		t.Fatalf("size/seed = %dx%d/%d", cfg.Width, cfg.Height, cfg.Seed)
	}
	if cfg.MoveCooldownCap != 0 {
		t.Fatalf("move cooldown = %d, want 0", cfg.MoveCooldownCap)
	}
	if cfg.Heat != (Schedule{Hz: 20, Phase: 2}) {
		t.Fatalf("heat schedule = %+v", cfg.Heat)
	}
	if !cfg.Terrain || cfg.TerrainParams.Scale != 0.1 || cfg.TerrainParams.SandDepth != 5 {
		t.Fatalf("terrain = %v %+v", cfg.Terrain, cfg.TerrainParams)
	}
}

func TestFromMapOriginalScheduleIsOverridable(t *testing.T) {
	cfg, err := FromMap(map[string]string{"schedule": "original", "heat_phase": "0"})
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	if cfg.Movement.Hz != 30 || cfg.Heat.Hz != 30 || cfg.Custom.Hz != SimulationFrequency {
		t.Fatalf("schedule = %+v %+v %+v", cfg.Movement, cfg.Heat, cfg.Custom)
	}
	if cfg.Heat.Phase != 0 {
		t.Fatalf("explicit heat_phase should win over the preset, got %d", cfg.Heat.Phase)
	}
}

func TestFromMapErrors(t *testing.T) {
	cases := []struct {
		name string
		in   map[string]string
		want error
	}{
		{"bad int", map[string]string{"w": "wide"}, ErrInvalidConfig},
		{"bad seed", map[string]string{"seed": "x"}, ErrInvalidConfig},
		{"bad bool", map[string]string{"terrain": "maybe"}, ErrInvalidConfig},
		{"bad float", map[string]string{"terrain_surface": "high"}, ErrInvalidConfig},
		{"zero width", map[string]string{"w": "0"}, ErrInvalidConfig},
		{"negative cooldown", map[string]string{"move_cooldown": "-1"}, ErrInvalidConfig},
		{"zero hz", map[string]string{"movement_hz": "0"}, ErrInvalidFrequency},
		{"too fast", map[string]string{"custom_hz": "61"}, ErrInvalidFrequency},
		{"negative phase", map[string]string{"heat_phase": "-1"}, ErrInvalidFrequency},
		{"flat terrain", map[string]string{"terrain": "1", "terrain_surface": "1.5"}, ErrInvalidConfig},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := FromMap(tc.in); !eris.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestBindFlags(t *testing.T) {
	cfg := DefaultConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-w", "64", "-heat-hz", "15", "-heat-phase", "1", "-terrain"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Width != 64 || cfg.Heat.Hz != 15 || cfg.Heat.Phase != 1 || !cfg.Terrain {
		t.Fatalf("bound config = %+v", cfg)
	}
	if cfg.Height != DefaultConfig().Height {
		t.Fatal("unset flags should keep their defaults")
	}
}

func TestSystemFrameSkip(t *testing.T) {
	cases := map[int]int{60: 0, 30: 1, 20: 2, 15: 3, 1: 59}
	for hz, want := range cases {
		if got := newSystem("x", Schedule{Hz: hz}, nil).FrameSkip(); got != want {
			t.Fatalf("%d Hz frame skip = %d, want %d", hz, got, want)
		}
	}
}

func TestSystemPhaseDelaysFirstRun(t *testing.T) {
	s := newSystem("x", Schedule{Hz: 20, Phase: 1}, nil)
	var runs []int
	for tick := 1; tick <= 9; tick++ {
		if s.due() {
			runs = append(runs, tick)
		}
	}
	want := []int{2, 5, 8}
	if len(runs) != len(want) {
		t.Fatalf("runs = %v, want %v", runs, want)
	}
	for i := range want {
		if runs[i] != want[i] {
			t.Fatalf("runs = %v, want %v", runs, want)
		}
	}
	s.rewind()
	if s.due() {
		t.Fatal("rewind should restore the phase delay")
	}
}

func TestFactoryBuildsSandbox(t *testing.T) {
	factory, ok := core.Sims()["sandbox"]
	if !ok {
		t.Fatal("sandbox is not registered")
	}
	sim, err := factory(map[string]string{"w": "12", "h": "8"})
	if err != nil {
		t.Fatalf("factory: %v", err)
	}
	if sim.Name() != "sandbox" || sim.Size() != (core.Size{W: 12, H: 8}) {
		t.Fatalf("sim = %s %+v", sim.Name(), sim.Size())
	}
	if len(sim.Cells()) != 12*8 {
		t.Fatalf("cells = %d", len(sim.Cells()))
	}
	if _, err := factory(map[string]string{"w": "-1"}); err == nil {
		t.Fatal("invalid options should fail")
	}
}
