package sandbox

import (
	"image/color"
	"log"
)

// DefaultMaterials builds a fresh copy of the built-in material table in menu
// order. Each call returns new values, so callers may tune them freely.
func DefaultMaterials() []*Material {
	return []*Material{
		{
			Name:     "Concrete",
			Color:    Around(rgb(160, 160, 160), 20),
			Density:  100000,
			Mobility: Stationary,
			Thermal:  &Thermal{BaseHeat: 25, Transfer: 1},
		},
		{
			Name:     "Sand",
			Color:    Jitter(rgb(255, 255, 0), 50, 50, 0),
			Density:  10,
			Mobility: SemiSolid,
			Thermal:  &Thermal{BaseHeat: 25, Transfer: 0.05},
		},
		{
			Name:     "Rock",
			Color:    Jitter(rgb(50, 50, 50), 10, 10, 10),
			Density:  800,
			Mobility: SemiSolid,
			Thermal: &Thermal{
				BaseHeat: 25,
				Transfer: 1,
				Upper:    &Threshold{Value: 1000, Target: "Lava"},
			},
		},
		{
			Name:     "Ice",
			Color:    Jitter(rgb(200, 200, 255), 20, 20, 20),
			Density:  1,
			Mobility: SemiSolid,
			Thermal: &Thermal{
				BaseHeat: -40,
				Transfer: 1,
				Upper:    &Threshold{Value: 0, Target: "Water"},
			},
		},
		{
			Name:     "Ash",
			Color:    Jitter(rgb(140, 140, 140), 20, 20, 20),
			Density:  1,
			Mobility: SemiSolid,
			Thermal: &Thermal{
				BaseHeat: 100,
				Transfer: 1,
				Upper:    &Threshold{Value: 500, Target: "Fire"},
			},
		},
		{
			Name:     "Plant",
			Color:    Jitter(rgb(60, 180, 60), 30, 40, 30),
			Density:  50,
			Mobility: Stationary,
			Thermal: &Thermal{
				BaseHeat: 25,
				Transfer: 0.5,
				Upper:    &Threshold{Value: 150, Target: "Fire"},
			},
			Interactions: map[string]string{"Water": "Plant"},
		},
		{
			Name:     "Water",
			Color:    Jitter(rgb(0, 0, 255), 0, 0, 100),
			Density:  2,
			Mobility: Liquid,
			Thermal: &Thermal{
				BaseHeat: 25,
				Transfer: 1,
				Upper:    &Threshold{Value: 100, Target: "Vapor"},
				Lower:    &Threshold{Value: 0, Target: "Ice"},
			},
		},
		{
			Name:     "Oil",
			Color:    Jitter(rgb(193, 193, 69), 20, 20, 10),
			Density:  1,
			Mobility: Liquid,
			Thermal: &Thermal{
				BaseHeat: 25,
				Transfer: 2,
				Upper:    &Threshold{Value: 300, Target: "Fire"},
			},
		},
		{
			Name:     "Lava",
			Color:    Jitter(rgb(255, 0, 0), 20, 0, 0),
			Density:  1000,
			Mobility: Liquid,
			Thermal: &Thermal{
				BaseHeat: 2000,
				Transfer: 0.1,
				Lower:    &Threshold{Value: 100, Target: "Rock"},
			},
		},
		{
			Name:     "Liquid Nitrogen",
			Color:    Solid(rgb(255, 255, 255)),
			Density:  1000,
			Mobility: Liquid,
			Thermal:  &Thermal{BaseHeat: -2000, Transfer: 0},
		},
		{
			Name:     "Acid",
			Color:    Jitter(rgb(150, 255, 60), 30, 30, 20),
			Density:  3,
			Mobility: Liquid,
			Thermal:  &Thermal{BaseHeat: 25, Transfer: 0.5},
			Behavior: Dissolve,
		},
		{
			Name:     "Vapor",
			Color:    Jitter(rgb(255, 255, 255), 20, 20, 20),
			Density:  0,
			Mobility: Gas,
			Thermal: &Thermal{
				BaseHeat:    220,
				HeatSpread:  120,
				Transfer:    1,
				PassiveLoss: 1,
				Lower:       &Threshold{Value: 60, Target: "Water"},
			},
		},
		{
			Name:     "Smoke",
			Color:    Jitter(rgb(50, 50, 50), 20, 20, 20),
			Density:  0,
			Mobility: Gas,
			Thermal: &Thermal{
				BaseHeat:   220,
				HeatSpread: 120,
				Transfer:   1,
				Lower:      &Threshold{Value: 100, Target: "Ash"},
			},
		},
		{
			Name:     "Fire",
			Color:    Jitter(rgb(242, 141, 0), 20, 20, 0),
			Density:  0,
			Mobility: Gas,
			Thermal: &Thermal{
				BaseHeat:    600,
				Transfer:    1,
				PassiveLoss: 1,
				Lower:       &Threshold{Value: 100, Target: "Smoke"},
			},
		},
		{
			Name:     "Ember",
			Color:    Jitter(rgb(255, 180, 40), 30, 60, 20),
			Density:  5,
			Mobility: Chaotic,
			Thermal: &Thermal{
				BaseHeat:    800,
				Transfer:    0.5,
				PassiveLoss: 2,
				Lower:       &Threshold{Value: 200, Target: "Ash"},
			},
		},
		{
			Name:     "Virus",
			Color:    Jitter(rgb(200, 0, 230), 40, 0, 40),
			Density:  5,
			Mobility: SemiSolid,
			Thermal: &Thermal{
				BaseHeat: 25,
				Transfer: 1,
				Upper:    &Threshold{Value: 200},
			},
			Behavior: Infect,
		},
		{
			Name:     "Bomb",
			Color:    Jitter(rgb(90, 90, 70), 20, 20, 20),
			Density:  20,
			Mobility: SemiSolid,
			Thermal: &Thermal{
				BaseHeat: 25,
				Transfer: 1,
				Upper:    &Threshold{Value: 150, Target: "Explosion"},
			},
		},
		{
			Name:     "Explosion",
			Color:    Jitter(rgb(255, 240, 120), 0, 60, 80),
			Density:  100000,
			Mobility: Stationary,
			Thermal:  &Thermal{BaseHeat: 1500, Transfer: 0.2},
			Behavior: Detonate,
			Residue:  "Fire",
			Fuse:     2,
			Power:    6,
		},
	}
}

// DefaultRegistry registers and resolves the built-in material table.
func DefaultRegistry(logger *log.Logger) (*Registry, error) {
	reg := NewRegistry(logger)
	for _, m := range DefaultMaterials() {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	if err := reg.Resolve(); err != nil {
		return nil, err
	}
	return reg, nil
}

// MustDefaultRegistry is DefaultRegistry for callers that treat a broken
// built-in table as a programming error.
func MustDefaultRegistry() *Registry {
	reg, err := DefaultRegistry(nil)
	if err != nil {
		panic(err)
	}
	return reg
}

func rgb(r, g, b uint8) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: 255} }
