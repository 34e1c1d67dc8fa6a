package app

import (
	"flag"
	"log"
	"maps"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"ombrobox/internal/core"
	"ombrobox/internal/sims/sandbox"
)

var (
	// ErrBadOption reports a malformed -opt flag.
	ErrBadOption = eris.New("option must be key=value")
	// ErrUnknownSim reports a -sim name missing from the registry.
	ErrUnknownSim = eris.New("unknown sim")
)

// Config represents the command-line parameters shared by the front ends.
type Config struct {
	Sim   string
	Scale int
	TPS   int
	Seed  int64
	Brush int
	Mute  bool

	// Options are forwarded to sandbox.FromMap.
	Options map[string]string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "sandbox", Scale: 4, TPS: sandbox.SimulationFrequency, Seed: 42, Brush: 2, Options: map[string]string{}}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run ("+strings.Join(core.SimNames(), ", ")+")")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.Brush, "brush", c.Brush, "paint brush radius in tiles")
	fs.BoolVar(&c.Mute, "mute", c.Mute, "disable audio cues")
	fs.Func("opt", "sandbox option as key=value (repeatable, e.g. -opt terrain=true)", c.setOption)
}

func (c *Config) setOption(v string) error {
	key, value, ok := strings.Cut(v, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return eris.Wrapf(ErrBadOption, "%q", v)
	}
	if c.Options == nil {
		c.Options = map[string]string{}
	}
	c.Options[key] = strings.TrimSpace(value)
	return nil
}

// NewWorld builds the registered sim named by -sim from the options. The
// -seed flag is used unless a seed option overrides it. A nil logger keeps
// the world quiet.
func (c *Config) NewWorld(logger *log.Logger) (*sandbox.World, error) {
	factory, ok := core.Sims()[c.Sim]
	if !ok {
		return nil, eris.Wrapf(ErrUnknownSim, "%q (have %s)", c.Sim, strings.Join(core.SimNames(), ", "))
	}
	opts := maps.Clone(c.Options)
	if opts == nil {
		opts = map[string]string{}
	}
	if _, ok := opts["seed"]; !ok {
		opts["seed"] = strconv.FormatInt(c.Seed, 10)
	}
	sim, err := factory(opts)
	if err != nil {
		return nil, err
	}
	w, ok := sim.(*sandbox.World)
	if !ok {
		return nil, eris.Wrapf(ErrUnknownSim, "%q is not a material sandbox", c.Sim)
	}
	w.SetLogger(logger)
	w.Reset(0)
	return w, nil
}
