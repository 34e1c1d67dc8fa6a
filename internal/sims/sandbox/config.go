package sandbox

import (
	"flag"
	"log"
	"strconv"

	"github.com/rotisserie/eris"

	"ombrobox/pkg/core"
)

// SimulationFrequency is the tick rate every system frequency divides.
const SimulationFrequency = 60

var (
	ErrInvalidConfig    = eris.New("invalid config")
	ErrInvalidFrequency = eris.New("invalid system frequency")
)

// Schedule sets how often a system runs. Hz must divide into the simulation
// frequency; Phase delays the first run by that many ticks.
type Schedule struct {
	Hz    int
	Phase int
}

// TerrainParams controls the perlin scenery laid down by Reset.
type TerrainParams struct {
	Alpha  float64
	Beta   float64
	Octave int32
	// Scale is the noise frequency per column.
	Scale float64
	// Surface is the mean ground level as a fraction of the height.
	Surface float64
	// Amplitude is the height variation as a fraction of the height.
	Amplitude float64
	SandDepth int
	// WaterLine is the fraction of the height below which valleys flood.
	WaterLine float64
}

// Config controls the sandbox world.
type Config struct {
	Width  int
	Height int

	Seed int64

	// MoveCooldownCap bounds how many movement passes a settled tile sits
	// out after repeated failed scans. Zero rescans every tick.
	MoveCooldownCap int

	Movement Schedule
	Heat     Schedule
	Custom   Schedule

	Terrain       bool
	TerrainParams TerrainParams

	// Random is the shared random table. Nil uses core.Shared.
	Random *core.Table
	Logger *log.Logger
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:           160,
		Height:          90,
		Seed:            42,
		MoveCooldownCap: 3,
		Movement:        Schedule{Hz: SimulationFrequency},
		Heat:            Schedule{Hz: SimulationFrequency},
		Custom:          Schedule{Hz: SimulationFrequency},
		TerrainParams: TerrainParams{
			Alpha:     2,
			Beta:      2,
			Octave:    3,
			Scale:     0.035,
			Surface:   0.7,
			Amplitude: 0.18,
			SandDepth: 3,
			WaterLine: 0.68,
		},
	}
}

// OriginalSchedule staggers the systems the way the first release did:
// movement and heat at half rate on alternating ticks, behaviours every tick.
func OriginalSchedule(c Config) Config {
	c.Movement = Schedule{Hz: 30}
	c.Heat = Schedule{Hz: 30, Phase: 1}
	c.Custom = Schedule{Hz: SimulationFrequency}
	return c
}

// Validate reports configuration errors. They are fatal at startup.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return eris.Wrapf(ErrInvalidConfig, "world size %dx%d", c.Width, c.Height)
	}
	if c.MoveCooldownCap < 0 {
		return eris.Wrapf(ErrInvalidConfig, "move cooldown cap %d", c.MoveCooldownCap)
	}
	for _, s := range []struct {
		name string
		s    Schedule
	}{{"movement", c.Movement}, {"heat", c.Heat}, {"custom", c.Custom}} {
		if s.s.Hz <= 0 || s.s.Hz > SimulationFrequency {
			return eris.Wrapf(ErrInvalidFrequency, "%s system at %d Hz (max %d)", s.name, s.s.Hz, SimulationFrequency)
		}
		if s.s.Phase < 0 {
			return eris.Wrapf(ErrInvalidFrequency, "%s system phase %d", s.name, s.s.Phase)
		}
	}
	if c.Terrain {
		p := c.TerrainParams
		if p.Octave <= 0 || p.Scale <= 0 {
			return eris.Wrapf(ErrInvalidConfig, "terrain octave %d scale %g", p.Octave, p.Scale)
		}
		if p.Surface <= 0 || p.Surface >= 1 || p.WaterLine < 0 || p.WaterLine >= 1 {
			return eris.Wrapf(ErrInvalidConfig, "terrain surface %g water line %g", p.Surface, p.WaterLine)
		}
	}
	return nil
}

// Bind attaches the world options to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "w", c.Width, "world width in tiles")
	fs.IntVar(&c.Height, "h", c.Height, "world height in tiles")
	fs.IntVar(&c.MoveCooldownCap, "move-cooldown", c.MoveCooldownCap, "max ticks a settled tile skips movement (0 disables)")
	fs.IntVar(&c.Movement.Hz, "movement-hz", c.Movement.Hz, "movement system frequency")
	fs.IntVar(&c.Heat.Hz, "heat-hz", c.Heat.Hz, "heat system frequency")
	fs.IntVar(&c.Heat.Phase, "heat-phase", c.Heat.Phase, "heat system phase offset in ticks")
	fs.IntVar(&c.Custom.Hz, "custom-hz", c.Custom.Hz, "custom behaviour system frequency")
	fs.BoolVar(&c.Terrain, "terrain", c.Terrain, "seed perlin terrain on reset")
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	if cfg == nil {
		return c, nil
	}
	if v, ok := cfg["schedule"]; ok && v == "original" {
		c = OriginalSchedule(c)
	}
	ints := map[string]*int{
		"w":              &c.Width,
		"h":              &c.Height,
		"move_cooldown":  &c.MoveCooldownCap,
		"movement_hz":    &c.Movement.Hz,
		"movement_phase": &c.Movement.Phase,
		"heat_hz":        &c.Heat.Hz,
		"heat_phase":     &c.Heat.Phase,
		"custom_hz":      &c.Custom.Hz,
		"custom_phase":   &c.Custom.Phase,
		"terrain_sand":   &c.TerrainParams.SandDepth,
	}
	for key, dst := range ints {
		v, ok := cfg[key]
		if !ok {
			continue
		}
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return c, eris.Wrapf(ErrInvalidConfig, "%s=%q", key, v)
		}
		*dst = parsed
	}
	floats := map[string]*float64{
		"terrain_scale":      &c.TerrainParams.Scale,
		"terrain_surface":    &c.TerrainParams.Surface,
		"terrain_amplitude":  &c.TerrainParams.Amplitude,
		"terrain_water_line": &c.TerrainParams.WaterLine,
	}
	for key, dst := range floats {
		v, ok := cfg[key]
		if !ok {
			continue
		}
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c, eris.Wrapf(ErrInvalidConfig, "%s=%q", key, v)
		}
		*dst = parsed
	}
	if v, ok := cfg["seed"]; ok {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c, eris.Wrapf(ErrInvalidConfig, "seed=%q", v)
		}
		c.Seed = parsed
	}
	if v, ok := cfg["terrain"]; ok {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return c, eris.Wrapf(ErrInvalidConfig, "terrain=%q", v)
		}
		c.Terrain = parsed
	}
	return c, c.Validate()
}
