package sandbox

import (
	"ombrobox/pkg/core"
)

// BoilTelemetry captures a deterministic lava-under-water run used to tune
// heat transfer coefficients.
type BoilTelemetry struct {
	// FirstVaporTick is the tick the first vapor tile was committed, -1 if never.
	FirstVaporTick int
	// PeakVapor is the largest vapor population seen at any tick.
	PeakVapor int
	// FinalVapor, FinalWater and RockFormed count tiles after the last tick.
	FinalVapor int
	FinalWater int
	RockFormed int
	Steps      int
}

// BoilResult runs a pool of water resting on a lava floor with the lava's
// heat transfer coefficient replaced by lavaTransfer. Each run owns its
// registry and random table, so calls may proceed concurrently.
func BoilResult(cfg Config, lavaTransfer float64, steps int) (BoilTelemetry, error) {
	res := BoilTelemetry{FirstVaporTick: -1}
	reg := NewRegistry(nil)
	for _, m := range DefaultMaterials() {
		if m.Name == "Lava" {
			m.Thermal.Transfer = lavaTransfer
		}
		if err := reg.Register(m); err != nil {
			return res, err
		}
	}
	cfg.Random = core.NewTable(cfg.Seed)
	cfg.Terrain = false
	cfg.Logger = nil
	w, err := NewWithConfig(cfg, reg)
	if err != nil {
		return res, err
	}
	lava := reg.MustLookup("Lava")
	water := reg.MustLookup("Water")
	vapor := reg.MustLookup("Vapor")
	rock := reg.MustLookup("Rock")

	floor := w.Height() - 1
	for x := 0; x < w.Width(); x++ {
		w.AddTile(lava, x, floor)
		for y := floor - 1; y >= floor/2; y-- {
			w.AddTile(water, x, y)
		}
	}

	for step := 0; step < steps; step++ {
		w.Update()
		res.Steps++
		counts := w.countByMaterial()
		v := counts[vapor.id]
		if v > 0 && res.FirstVaporTick < 0 {
			res.FirstVaporTick = w.Tick()
		}
		res.PeakVapor = max(res.PeakVapor, v)
	}
	counts := w.countByMaterial()
	res.FinalVapor = counts[vapor.id]
	res.FinalWater = counts[water.id]
	res.RockFormed = counts[rock.id]
	return res, nil
}

func (w *World) countByMaterial() []int {
	counts := make([]int, w.reg.Len())
	for _, t := range w.Tiles() {
		counts[t.mat.id]++
	}
	return counts
}
