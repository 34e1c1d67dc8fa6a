package sandbox

import "testing"

func TestHeatDeltaRoundsDown(t *testing.T) {
	cases := []struct {
		self, other int
		c           float64
		want        int
	}{
		{0, 10, 1, 2},
		{10, 0, 1, -3},
		{0, -5, 0.3, -1},
		{0, 7, 0.5, 0},
		{5, 5, 2, 0},
	}
	for _, tc := range cases {
		if got := heatDelta(tc.self, tc.other, tc.c); got != tc.want {
			t.Fatalf("heatDelta(%d, %d, %g) = %d, want %d", tc.self, tc.other, tc.c, got, tc.want)
		}
	}
}

func conductor(name string, transfer float64) *Material {
	return &Material{Name: name, Mobility: Stationary, Thermal: &Thermal{Transfer: transfer}}
}

func TestHeatExchangeInScanOrder(t *testing.T) {
	w := newCustomWorld(t, 2, 1, conductor("A", 0.25), conductor("B", 0.5))
	a := mustAdd(t, w, "A", 0, 0)
	b := mustAdd(t, w, "B", 1, 0)
	a.Heat = 100

	w.Update()

	// A gives floor(-75)>>2 = -19, then B gives floor(46.5)>>2 = 11 back.
	if a.Heat != 70 || b.Heat != 30 {
		t.Fatalf("heat A=%d B=%d, want 70 and 30", a.Heat, b.Heat)
	}
}

func TestHeatExchangeFloorBias(t *testing.T) {
	w := newCustomWorld(t, 2, 1, conductor("A", 0.25), conductor("B", 0.5))
	a := mustAdd(t, w, "A", 0, 0)
	b := mustAdd(t, w, "B", 1, 0)
	a.Heat = 1

	w.Update()

	if a.Heat != 1 || b.Heat != 0 {
		t.Fatalf("heat A=%d B=%d, want 1 and 0", a.Heat, b.Heat)
	}
}

func TestNonConductorsAreIgnored(t *testing.T) {
	inert := &Material{Name: "Inert", Mobility: Stationary}
	w := newCustomWorld(t, 2, 1, conductor("A", 1), inert)
	a := mustAdd(t, w, "A", 0, 0)
	mustAdd(t, w, "Inert", 1, 0)
	a.Heat = 400

	w.Update()

	if a.Heat != 400 {
		t.Fatalf("heat leaked into a non-conductor: %d", a.Heat)
	}
	if len(w.heaters) != 1 {
		t.Fatalf("heaters = %d, want 1", len(w.heaters))
	}
}

func TestPassiveHeatLoss(t *testing.T) {
	m := conductor("A", 0)
	m.Thermal.PassiveLoss = 3
	w := newCustomWorld(t, 1, 1, m)
	a := mustAdd(t, w, "A", 0, 0)
	a.Heat = 10
	for i := 0; i < 4; i++ {
		w.Update()
	}
	if a.Heat != -2 {
		t.Fatalf("heat = %d, want -2", a.Heat)
	}
}

func TestWaterBoilsOnLava(t *testing.T) {
	w := newTestWorld(t, 1, 2)
	mustAdd(t, w, "Water", 0, 0)
	lava := mustAdd(t, w, "Lava", 0, 1)

	w.Update()

	vapor := w.TileAt(0, 0)
	if vapor == nil || vapor.Name() != "Vapor" {
		t.Fatalf("top cell holds %v, want Vapor", vapor)
	}
	if vapor.Heat != 568 {
		t.Fatalf("vapor heat = %d, want 568", vapor.Heat)
	}
	if lava.Heat != 1212 {
		t.Fatalf("lava heat = %d, want 1212", lava.Heat)
	}
	if s := w.Stats(); s.Transforms != 1 || s.Added != 1 || s.Removed != 1 {
		t.Fatalf("stats = %+v", s)
	}
}

func TestTransformedTileWaitsForNextTick(t *testing.T) {
	mats := DefaultMaterials()
	for _, m := range mats {
		if m.Name == "Lava" {
			m.Thermal.BaseHeat = 200
		}
	}
	w := newCustomWorld(t, 1, 2, mats...)
	water := mustAdd(t, w, "Water", 0, 0)
	lava := mustAdd(t, w, "Lava", 0, 1)

	w.Update()
	if water.Heat != 95 || lava.Heat != 130 {
		t.Fatalf("after tick 1 water=%d lava=%d, want 95 and 130", water.Heat, lava.Heat)
	}
	if water.Name() != "Water" || !water.Active() {
		t.Fatal("water below the boiling point transformed")
	}

	w.Update()
	vapor := w.TileAt(0, 0)
	if vapor == nil || vapor.Name() != "Vapor" {
		t.Fatalf("top cell holds %v, want Vapor", vapor)
	}
	// Vapor loses heat passively, so an untouched 104 proves it did not run.
	if vapor.Heat != 104 {
		t.Fatalf("vapor heat = %d, want 104", vapor.Heat)
	}
	if w.Stats().Transforms != 1 {
		t.Fatalf("transforms = %d, want 1", w.Stats().Transforms)
	}
}

func TestThresholdWithoutTargetRemoves(t *testing.T) {
	m := conductor("Fuel", 0)
	m.Thermal.BaseHeat = 50
	m.Thermal.Upper = &Threshold{Value: 10}
	w := newCustomWorld(t, 1, 1, m)
	mustAdd(t, w, "Fuel", 0, 0)

	w.Update()

	if len(w.Tiles()) != 0 || w.TileAt(0, 0) != nil {
		t.Fatal("tile past a target-less threshold should be removed")
	}
	if w.Stats().Transforms != 0 || w.Stats().Removed != 1 {
		t.Fatalf("stats = %+v", w.Stats())
	}
}

func TestUpperThresholdWins(t *testing.T) {
	m := conductor("Odd", 0)
	m.Thermal.BaseHeat = 50
	m.Thermal.Upper = &Threshold{Value: 0, Target: "Hot"}
	m.Thermal.Lower = &Threshold{Value: 100, Target: "Cold"}
	hot := &Material{Name: "Hot", Mobility: Stationary}
	cold := &Material{Name: "Cold", Mobility: Stationary}
	w := newCustomWorld(t, 1, 1, m, hot, cold)
	mustAdd(t, w, "Odd", 0, 0)

	w.Update()

	if got := w.TileAt(0, 0); got == nil || got.Name() != "Hot" {
		t.Fatalf("cell holds %v, want Hot", got)
	}
	if w.Stats().Transforms != 1 {
		t.Fatal("only one threshold may fire per tick")
	}
}

func TestTransformCarriesHeat(t *testing.T) {
	m := conductor("Ice", 0)
	m.Thermal.BaseHeat = -10
	m.Thermal.Upper = &Threshold{Value: 0, Target: "Melt"}
	melt := conductor("Melt", 0)
	melt.Thermal.BaseHeat = 999
	w := newCustomWorld(t, 1, 1, m, melt)
	ice := mustAdd(t, w, "Ice", 0, 0)
	ice.Heat = 7

	w.Update()

	got := w.TileAt(0, 0)
	if got == nil || got.Name() != "Melt" || got.Heat != 7 {
		t.Fatalf("transformed tile = %+v, want Melt at heat 7", got)
	}
}

func TestTransformWithoutTargetRemoves(t *testing.T) {
	w := newCustomWorld(t, 1, 1, conductor("Ice", 0))
	ice := mustAdd(t, w, "Ice", 0, 0)
	if got := ice.Transform(nil); got != nil {
		t.Fatalf("Transform(nil) = %v, want nil", got)
	}
	if ice.Active() {
		t.Fatal("Transform(nil) should remove the tile")
	}
	w.Update()
	if w.TileAt(0, 0) != nil {
		t.Fatal("cell still occupied after Transform(nil)")
	}
	checkInvariants(t, w)
}
