package sandbox

import (
	"log"
	"slices"

	"ombrobox/internal/core"
	rnd "ombrobox/pkg/core"
)

// Stats counts what happened during the last tick.
type Stats struct {
	Systems    int
	Scanned    int
	Moves      int
	Swaps      int
	Transforms int
	Added      int
	Removed    int
	Dropped    int

	// Detonations counts blasts that released power this tick.
	Detonations int
}

// World owns the cell matrix, the live tile partitions and the deferred
// add/remove queues. It is not safe for concurrent use. AddTile and
// DeleteTile called from inside a tick are queued until its commit phase.
type World struct {
	cfg Config
	reg *Registry
	rng *rnd.Table

	grid *core.Grid[*Tile]

	tiles   []*Tile
	movers  []*Tile
	heaters []*Tile
	customs []*Tile

	toAdd    []*Tile
	toDelete []*Tile

	systems []*System
	inTick  bool
	stale   bool
	tick    int
	stats   Stats

	display []uint8
	logger  *log.Logger
}

// New returns a sandbox world of the given size using the default config and
// material table.
func New(w, h int) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	world, err := NewWithConfig(cfg, MustDefaultRegistry())
	if err != nil {
		panic(err)
	}
	return world
}

// NewWithConfig returns a world configured from the provided options. The
// registry is resolved if it has not been already.
func NewWithConfig(cfg Config, reg *Registry) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := reg.Resolve(); err != nil {
		return nil, err
	}
	table := cfg.Random
	if table == nil {
		table = rnd.Shared
	}
	w := &World{
		cfg:     cfg,
		reg:     reg,
		rng:     table,
		grid:    core.NewGrid[*Tile](cfg.Width, cfg.Height),
		systems: buildSystems(cfg),
		display: make([]uint8, cfg.Width*cfg.Height),
		logger:  cfg.Logger,
	}
	w.logSystems()
	return w, nil
}

// SetLogger attaches a logger and reports the system schedule to it. A nil
// logger silences the world.
func (w *World) SetLogger(l *log.Logger) {
	w.logger = l
	w.reg.logger = l
	w.logSystems()
}

func (w *World) logSystems() {
	for _, s := range w.systems {
		w.logf("system %q initialized (frame skip: %d)", s.Name, s.FrameSkip())
	}
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "sandbox" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.grid.W, H: w.grid.H} }

// Width returns the number of columns.
func (w *World) Width() int { return w.grid.W }

// Height returns the number of rows.
func (w *World) Height() int { return w.grid.H }

// Registry exposes the material table the world was built with.
func (w *World) Registry() *Registry { return w.reg }

// Random exposes the random table shared by the world's tiles.
func (w *World) Random() *rnd.Table { return w.rng }

// Tiles returns the committed live tiles in insertion order. The slice is
// owned by the world and must not be modified.
func (w *World) Tiles() []*Tile {
	if w.stale {
		w.prune()
	}
	return w.tiles
}

// TileAt returns the tile occupying (x, y), nil when empty or out of bounds.
func (w *World) TileAt(x, y int) *Tile {
	if !w.grid.InBounds(x, y) {
		return nil
	}
	return w.grid.At(x, y)
}

// Systems returns the tick pipeline in execution order.
func (w *World) Systems() []*System { return w.systems }

// Tick returns the number of completed updates.
func (w *World) Tick() int { return w.tick }

// Stats reports the counters of the last completed update.
func (w *World) Stats() Stats { return w.stats }

// AddTile builds a tile of m at (x, y) and places it. The tile is always
// constructed, so colour and heat jitter consume the random table, but when
// the cell is already taken it is discarded: never placed, never tracked,
// and marked inactive. Out of bounds positions return nil. Called during a
// tick the placement is deferred to the commit phase.
func (w *World) AddTile(m *Material, x, y int) *Tile {
	if m == nil || !w.grid.InBounds(x, y) {
		return nil
	}
	if w.inTick {
		return w.Spawn(m, x, y)
	}
	t := newTile(w, m, x, y)
	if w.grid.At(x, y) != nil {
		t.active = false
		return t
	}
	w.place(t)
	return t
}

// Spawn builds a tile of m and queues it for placement at the end of the
// tick. It never runs in the tick that created it. Out of bounds positions
// return nil.
func (w *World) Spawn(m *Material, x, y int) *Tile {
	if m == nil || !w.grid.InBounds(x, y) {
		return nil
	}
	t := newTile(w, m, x, y)
	w.toAdd = append(w.toAdd, t)
	return t
}

// DeleteTile removes the tile at (x, y) and returns it, or returns nil when
// the cell is empty, out of bounds, or already inactive. Between ticks the
// cell is freed at once and the partitions are pruned on the next read;
// during a tick the removal is queued.
func (w *World) DeleteTile(x, y int) *Tile {
	t := w.TileAt(x, y)
	if t == nil || !t.active {
		return nil
	}
	if w.inTick {
		t.Remove()
		return t
	}
	t.active = false
	w.grid.Set(x, y, nil)
	w.stale = true
	return t
}

// Update runs one tick: movement, heat exchange and custom behaviours in
// that order, then commits queued removals followed by queued additions.
func (w *World) Update() {
	w.stats = Stats{}
	if w.stale {
		w.prune()
	}
	w.inTick = true
	for _, s := range w.systems {
		if s.due() {
			s.run(w)
			w.stats.Systems++
		}
	}
	w.inTick = false
	w.commit()
	w.tick++
}

// Step advances the simulation by one tick.
func (w *World) Step() { w.Update() }

// Reset clears every tile, reseeds the random table, rewinds the system
// schedule and, when configured, lays down fresh terrain. A zero seed uses
// the configured one.
func (w *World) Reset(seed int64) {
	if seed == 0 {
		seed = w.cfg.Seed
	}
	for _, t := range w.tiles {
		t.active = false
	}
	w.grid.Clear()
	for _, list := range []*[]*Tile{&w.tiles, &w.movers, &w.heaters, &w.customs, &w.toAdd, &w.toDelete} {
		clear(*list)
		*list = (*list)[:0]
	}
	for _, s := range w.systems {
		s.rewind()
	}
	w.stale = false
	w.tick = 0
	w.stats = Stats{}
	w.rng.Reseed(seed)
	if w.cfg.Terrain {
		w.SeedTerrain(seed)
	}
}

func (w *World) commit() {
	if len(w.toDelete) > 0 {
		for _, t := range w.toDelete {
			if w.grid.At(t.X, t.Y) == t {
				w.grid.Set(t.X, t.Y, nil)
			}
		}
		w.stats.Removed += len(w.toDelete)
		clear(w.toDelete)
		w.toDelete = w.toDelete[:0]
		w.prune()
	}
	if len(w.toAdd) > 0 {
		for _, t := range w.toAdd {
			if !t.active || w.grid.At(t.X, t.Y) != nil {
				t.active = false
				w.stats.Dropped++
				continue
			}
			w.place(t)
			w.stats.Added++
		}
		clear(w.toAdd)
		w.toAdd = w.toAdd[:0]
	}
}

func (w *World) place(t *Tile) {
	w.grid.Set(t.X, t.Y, t)
	w.tiles = append(w.tiles, t)
	if t.Moves() {
		w.movers = append(w.movers, t)
	}
	if t.ConductsHeat() {
		w.heaters = append(w.heaters, t)
	}
	if t.HasBehavior() {
		w.customs = append(w.customs, t)
	}
}

// prune drops inactive tiles from every partition, keeping order.
func (w *World) prune() {
	inactive := func(t *Tile) bool { return !t.active }
	w.tiles = slices.DeleteFunc(w.tiles, inactive)
	w.movers = slices.DeleteFunc(w.movers, inactive)
	w.heaters = slices.DeleteFunc(w.heaters, inactive)
	w.customs = slices.DeleteFunc(w.customs, inactive)
	w.stale = false
}

func (w *World) logf(format string, args ...any) {
	if w.logger != nil {
		w.logger.Printf(format, args...)
	}
}

func init() {
	core.Register("sandbox", func(cfg map[string]string) (core.Sim, error) {
		c, err := FromMap(cfg)
		if err != nil {
			return nil, err
		}
		reg, err := DefaultRegistry(c.Logger)
		if err != nil {
			return nil, err
		}
		w, err := NewWithConfig(c, reg)
		if err != nil {
			return nil, err
		}
		return w, nil
	})
}
