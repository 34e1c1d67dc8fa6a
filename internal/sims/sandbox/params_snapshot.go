package sandbox

import (
	"strconv"

	"ombrobox/internal/core"
)

// Parameters reports the world, schedule and population state.
func (w *World) Parameters() core.ParameterSnapshot {
	counts := w.countByMaterial()
	population := make([]core.Parameter, 0, len(counts)+1)
	population = append(population, intParam("tiles", "Tiles", len(w.Tiles())))
	for i, m := range w.reg.Materials() {
		if counts[i] == 0 {
			continue
		}
		population = append(population, intParam("count_"+m.Name, m.Name, counts[i]))
	}

	stats := w.stats
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", w.grid.W),
				intParam("h", "Height", w.grid.H),
				int64Param("seed", "Seed", w.cfg.Seed),
				intParam("tick", "Tick", w.tick),
			},
		},
		{
			Name: "Schedule",
			Params: []core.Parameter{
				intParam("movement_hz", "Movement Hz", w.cfg.Movement.Hz),
				intParam("heat_hz", "Heat Hz", w.cfg.Heat.Hz),
				intParam("custom_hz", "Custom Hz", w.cfg.Custom.Hz),
				intParam("move_cooldown", "Move cooldown cap", w.cfg.MoveCooldownCap),
			},
		},
		{
			Name: "Last tick",
			Params: []core.Parameter{
				intParam("updates", "Tiles scanned", stats.Scanned),
				intParam("moves", "Moves", stats.Moves),
				intParam("swaps", "Swaps", stats.Swaps),
				intParam("transforms", "Transforms", stats.Transforms),
				intParam("added", "Added", stats.Added),
				intParam("removed", "Removed", stats.Removed),
				intParam("detonations", "Detonations", stats.Detonations),
			},
		},
		{Name: "Population", Params: population},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the HUD-adjustable values.
func (w *World) ParameterControls() []core.ParameterControl {
	hz := func(key, label string) core.ParameterControl {
		return core.ParameterControl{
			Key: key, Label: label, Type: core.ParamTypeInt, Step: 1,
			Min: 1, Max: SimulationFrequency, HasMin: true, HasMax: true,
		}
	}
	return []core.ParameterControl{
		hz("movement_hz", "Movement Hz"),
		hz("heat_hz", "Heat Hz"),
		hz("custom_hz", "Custom Hz"),
		{Key: "move_cooldown", Label: "Move cooldown cap", Type: core.ParamTypeInt, Step: 1, Min: 0, HasMin: true},
	}
}

// SetIntParameter updates a schedule frequency or the cooldown cap. Values
// outside the valid range are clamped. Schedule changes restart the system's
// phase.
func (w *World) SetIntParameter(key string, value int) bool {
	switch key {
	case "movement_hz":
		w.cfg.Movement.Hz = clampHz(value)
		w.systems[0] = newSystem("movement", w.cfg.Movement, movementSystem)
	case "heat_hz":
		w.cfg.Heat.Hz = clampHz(value)
		w.systems[1] = newSystem("heat", w.cfg.Heat, heatSystem)
	case "custom_hz":
		w.cfg.Custom.Hz = clampHz(value)
		w.systems[2] = newSystem("custom", w.cfg.Custom, customSystem)
	case "move_cooldown":
		if value < 0 {
			value = 0
		}
		w.cfg.MoveCooldownCap = value
	default:
		return false
	}
	return true
}

func clampHz(v int) int {
	if v < 1 {
		return 1
	}
	if v > SimulationFrequency {
		return SimulationFrequency
	}
	return v
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}
