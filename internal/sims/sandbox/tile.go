package sandbox

import (
	"image/color"
	"math"
)

// Tile is the occupant of a single grid cell. X and Y always match the
// tile's slot in the grid while it is committed.
type Tile struct {
	X, Y  int
	Color color.RGBA

	Density         int
	Heat            int
	HeatTransfer    float64
	PassiveHeatLoss int

	// Fuse and Power are scratch counters for behaviours such as explosions.
	Fuse  int
	Power int

	mat    *Material
	world  *World
	active bool

	cooldown int
	skip     int
}

func newTile(w *World, m *Material, x, y int) *Tile {
	t := &Tile{
		X:       x,
		Y:       y,
		Density: m.Density,
		Fuse:    m.Fuse,
		Power:   m.Power,
		mat:     m,
		world:   w,
		active:  true,
	}
	t.Color = m.Color(w.rng)
	if th := m.Thermal; th != nil {
		t.Heat = th.BaseHeat
		if th.HeatSpread > 0 {
			t.Heat += w.rng.Between(0, th.HeatSpread)
		}
		t.HeatTransfer = th.Transfer
		t.PassiveHeatLoss = th.PassiveLoss
	}
	return t
}

// Material returns the template the tile was built from.
func (t *Tile) Material() *Material { return t.mat }

// Name returns the material name.
func (t *Tile) Name() string { return t.mat.Name }

// Mobility returns the movement class of the tile's material.
func (t *Tile) Mobility() Mobility { return t.mat.Mobility }

// Active reports whether the tile is live. It turns false once the tile is
// queued for removal, deleted, or dropped because its cell was taken.
func (t *Tile) Active() bool { return t.active }

// Moves reports whether the tile takes part in the movement pass.
func (t *Tile) Moves() bool { return t.mat.Moves() }

// ConductsHeat reports whether the tile takes part in heat exchange.
func (t *Tile) ConductsHeat() bool { return t.mat.ConductsHeat() }

// HasBehavior reports whether the tile runs the custom behaviour pass.
func (t *Tile) HasBehavior() bool { return t.mat.HasBehavior() }

// Neighbor returns the tile one step away in d, or nil when the cell is
// empty or outside the world. Tiles queued for removal are still returned.
func (t *Tile) Neighbor(d Direction) *Tile {
	x, y, ok := t.world.grid.Offset(t.X, t.Y, d.DX, d.DY)
	if !ok {
		return nil
	}
	return t.world.grid.At(x, y)
}

// Remove queues the tile for removal at the end of the tick. It reports
// false when the tile was already inactive.
func (t *Tile) Remove() bool {
	if !t.active {
		return false
	}
	t.active = false
	t.world.toDelete = append(t.world.toDelete, t)
	return true
}

// Transform queues removal of the tile and the creation of a target tile in
// the same cell. The new tile starts with this tile's heat. It returns nil
// when the tile was already inactive. A nil target only removes the tile.
func (t *Tile) Transform(target *Material) *Tile {
	if !t.Remove() || target == nil {
		return nil
	}
	next := t.world.Spawn(target, t.X, t.Y)
	next.Heat = t.Heat
	t.world.stats.Transforms++
	return next
}

func (t *Tile) tryMove(d Direction) bool {
	g := t.world.grid
	x, y, ok := g.Offset(t.X, t.Y, d.DX, d.DY)
	if !ok {
		return false
	}
	other := g.At(x, y)
	if other == nil {
		g.Set(t.X, t.Y, nil)
		t.X, t.Y = x, y
		g.Set(x, y, t)
		t.world.stats.Moves++
		return true
	}
	if other.Density < t.Density {
		other.X, other.Y = t.X, t.Y
		g.Set(t.X, t.Y, other)
		t.X, t.Y = x, y
		g.Set(x, y, t)
		t.world.stats.Swaps++
		return true
	}
	return false
}

func (t *Tile) updatePosition() {
	if !t.active {
		return
	}
	if t.skip > 0 {
		t.skip--
		return
	}
	w := t.world
	orders := t.mat.movement
	order := orders[0]
	if len(orders) > 1 {
		order = orders[w.rng.Intn(len(orders))]
	}
	w.stats.Scanned++
	for _, d := range order {
		if t.tryMove(d) {
			t.cooldown = 0
			return
		}
	}
	if limit := w.cfg.MoveCooldownCap; limit > 0 {
		if t.cooldown < limit {
			t.cooldown++
		}
		t.skip = t.cooldown
	}
}

// heatDelta is the amount moved from other to self in one exchange. The
// right shift divides by four rounding toward negative infinity.
func heatDelta(self, other int, coefficient float64) int {
	return int(math.Floor(float64(other-self)*coefficient)) >> 2
}

func (t *Tile) exchangeHeat(other *Tile) {
	delta := heatDelta(t.Heat, other.Heat, t.HeatTransfer+other.HeatTransfer)
	t.Heat += delta
	other.Heat -= delta
}

func (t *Tile) updateTemperature() {
	if !t.active {
		return
	}
	t.Heat -= t.PassiveHeatLoss
	for _, d := range NeighborScan {
		n := t.Neighbor(d)
		if n == nil || !n.ConductsHeat() {
			continue
		}
		t.exchangeHeat(n)
	}
	t.checkThresholds()
}

// checkThresholds applies at most one threshold, upper first.
func (t *Tile) checkThresholds() bool {
	th := t.mat.Thermal
	if up := th.Upper; up != nil && t.Heat >= up.Value {
		t.cross(up)
		return true
	}
	if lo := th.Lower; lo != nil && t.Heat <= lo.Value {
		t.cross(lo)
		return true
	}
	return false
}

func (t *Tile) cross(th *Threshold) {
	if th.target == nil {
		t.Remove()
		return
	}
	t.Transform(th.target)
}

func (t *Tile) runBehavior() {
	if !t.active {
		return
	}
	if len(t.mat.interactions) > 0 && t.interact() {
		return
	}
	if b := t.mat.Behavior; b != nil {
		b(t.world, t)
	}
}

// interact converts the first touching neighbour listed in the material's
// interaction map.
func (t *Tile) interact() bool {
	for _, d := range NeighborScan {
		n := t.Neighbor(d)
		if n == nil || !n.active {
			continue
		}
		if result, ok := t.mat.interactions[n.mat]; ok {
			return n.Transform(result) != nil
		}
	}
	return false
}
