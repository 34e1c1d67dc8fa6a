package sandbox

import (
	"image/color"

	"ombrobox/pkg/core"
)

// ColorFunc produces the colour of a freshly built tile. It may draw from
// the random table to jitter the base colour.
type ColorFunc func(r *core.Table) color.RGBA

// Behavior is a per-tick hook for tiles that need logic beyond movement and
// heat. It may read and write its own tile and immediate neighbours and
// queue removals or spawns on the world.
type Behavior func(w *World, t *Tile)

// Threshold transforms a tile once its heat crosses Value. An empty Target
// removes the tile instead.
type Threshold struct {
	Value  int
	Target string

	target *Material
}

// Thermal describes how a material takes part in heat exchange. Materials
// without one never exchange heat.
type Thermal struct {
	BaseHeat int
	// HeatSpread widens the starting heat to [BaseHeat, BaseHeat+HeatSpread].
	HeatSpread  int
	Transfer    float64
	PassiveLoss int

	Upper *Threshold
	Lower *Threshold
}

// Material is the static template every tile of a kind is built from.
type Material struct {
	Name     string
	Color    ColorFunc
	Density  int
	Mobility Mobility
	// Movement overrides the scan orders implied by Mobility.
	Movement [][]Direction
	Thermal  *Thermal

	// Interactions maps a neighbour material name to the material that
	// neighbour becomes on contact.
	Interactions map[string]string
	Behavior     Behavior
	// Residue names what a Behavior leaves behind when the tile expires.
	Residue string

	// Fuse and Power seed the matching tile counters.
	Fuse  int
	Power int

	id           int
	movement     [][]Direction
	interactions map[*Material]*Material
	residue      *Material
	swatch       color.RGBA
}

// ID returns the registry index of the material.
func (m *Material) ID() int { return m.id }

// Swatch returns a representative colour for menus and palettes.
func (m *Material) Swatch() color.RGBA { return m.swatch }

// ConductsHeat reports whether tiles of this material join heat exchange.
func (m *Material) ConductsHeat() bool { return m.Thermal != nil }

// Moves reports whether tiles of this material run the movement pass.
func (m *Material) Moves() bool { return len(m.movement) > 0 }

// HasBehavior reports whether tiles of this material run the custom pass.
func (m *Material) HasBehavior() bool {
	return m.Behavior != nil || len(m.interactions) > 0
}

// UpperTarget returns the resolved upper threshold target, nil for removal
// or when no upper threshold exists.
func (m *Material) UpperTarget() *Material {
	if m.Thermal == nil || m.Thermal.Upper == nil {
		return nil
	}
	return m.Thermal.Upper.target
}

// LowerTarget mirrors UpperTarget for the lower threshold.
func (m *Material) LowerTarget() *Material {
	if m.Thermal == nil || m.Thermal.Lower == nil {
		return nil
	}
	return m.Thermal.Lower.target
}

// Jitter builds a ColorFunc that subtracts a random amount in [0, spread]
// from each channel, drawing red, green and blue in that order. A zero
// spread leaves the channel fixed and does not touch the table.
func Jitter(base color.RGBA, spreadR, spreadG, spreadB int) ColorFunc {
	return func(r *core.Table) color.RGBA {
		return color.RGBA{
			R: channel(int(base.R), spreadR, r),
			G: channel(int(base.G), spreadG, r),
			B: channel(int(base.B), spreadB, r),
			A: 255,
		}
	}
}

// Around builds a ColorFunc that offsets each channel by a random amount in
// [-spread, spread].
func Around(base color.RGBA, spread int) ColorFunc {
	return func(r *core.Table) color.RGBA {
		return color.RGBA{
			R: clampByte(int(base.R) + r.Between(-spread, spread)),
			G: clampByte(int(base.G) + r.Between(-spread, spread)),
			B: clampByte(int(base.B) + r.Between(-spread, spread)),
			A: 255,
		}
	}
}

// Solid builds a ColorFunc returning a fixed colour.
func Solid(c color.RGBA) ColorFunc {
	return func(*core.Table) color.RGBA { return c }
}

func channel(base, spread int, r *core.Table) uint8 {
	if spread <= 0 {
		return clampByte(base)
	}
	return clampByte(base - r.Between(0, spread))
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
