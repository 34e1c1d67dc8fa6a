package sandbox

import (
	"image/color"
	"testing"

	"github.com/zyedidia/generic/mapset"

	"ombrobox/pkg/core"
)

func newTestWorld(t *testing.T, w, h int) *World {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.Random = core.NewTable(1)
	reg, err := DefaultRegistry(nil)
	if err != nil {
		t.Fatalf("default registry: %v", err)
	}
	world, err := NewWithConfig(cfg, reg)
	if err != nil {
		t.Fatalf("new world: %v", err)
	}
	return world
}

func newCustomWorld(t *testing.T, w, h int, mats ...*Material) *World {
	t.Helper()
	reg := NewRegistry(nil)
	for _, m := range mats {
		if m.Color == nil {
			m.Color = Solid(color.RGBA{A: 255})
		}
		if err := reg.Register(m); err != nil {
			t.Fatalf("register %s: %v", m.Name, err)
		}
	}
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.Random = core.NewTable(1)
	world, err := NewWithConfig(cfg, reg)
	if err != nil {
		t.Fatalf("new world: %v", err)
	}
	return world
}

func mustAdd(t *testing.T, w *World, name string, x, y int) *Tile {
	t.Helper()
	m, ok := w.Registry().Lookup(name)
	if !ok {
		t.Fatalf("material %q not registered", name)
	}
	tile := w.AddTile(m, x, y)
	if tile == nil || !tile.Active() {
		t.Fatalf("AddTile(%s, %d, %d) did not place a tile", name, x, y)
	}
	return tile
}

// checkInvariants verifies occupancy, position agreement and containment.
func checkInvariants(t *testing.T, w *World) {
	t.Helper()
	occupied := 0
	for y := 0; y < w.Height(); y++ {
		for x := 0; x < w.Width(); x++ {
			tile := w.grid.At(x, y)
			if tile == nil {
				continue
			}
			occupied++
			if tile.X != x || tile.Y != y {
				t.Fatalf("tile in cell (%d,%d) believes it is at (%d,%d)", x, y, tile.X, tile.Y)
			}
			if !tile.Active() {
				t.Fatalf("inactive %s left in cell (%d,%d) after commit", tile.Name(), x, y)
			}
		}
	}
	seen := mapset.New[[2]int]()
	for _, tile := range w.Tiles() {
		if tile.X < 0 || tile.X >= w.Width() || tile.Y < 0 || tile.Y >= w.Height() {
			t.Fatalf("%s escaped to (%d,%d)", tile.Name(), tile.X, tile.Y)
		}
		pos := [2]int{tile.X, tile.Y}
		if seen.Has(pos) {
			t.Fatalf("two live tiles share (%d,%d)", tile.X, tile.Y)
		}
		seen.Put(pos)
		if w.grid.At(tile.X, tile.Y) != tile {
			t.Fatalf("live %s at (%d,%d) missing from its cell", tile.Name(), tile.X, tile.Y)
		}
	}
	if occupied != len(w.Tiles()) {
		t.Fatalf("grid holds %d tiles but %d are tracked", occupied, len(w.Tiles()))
	}
	for _, part := range [][]*Tile{w.movers, w.heaters, w.customs} {
		for _, tile := range part {
			if !tile.Active() {
				t.Fatalf("inactive %s still tracked in a partition", tile.Name())
			}
		}
	}
}

func TestSandFallsStraightDown(t *testing.T) {
	w := newTestWorld(t, 10, 10)
	sand := mustAdd(t, w, "Sand", 5, 0)

	for tick := 1; tick <= 15; tick++ {
		w.Update()
		wantY := min(tick, 9)
		if sand.X != 5 || sand.Y != wantY {
			t.Fatalf("tick %d: sand at (%d,%d), want (5,%d)", tick, sand.X, sand.Y, wantY)
		}
		if w.TileAt(5, wantY) != sand {
			t.Fatalf("tick %d: grid does not hold sand at (5,%d)", tick, wantY)
		}
	}
}

func TestSandSinksThroughWater(t *testing.T) {
	w := newTestWorld(t, 1, 2)
	sand := mustAdd(t, w, "Sand", 0, 0)
	water := mustAdd(t, w, "Water", 0, 1)

	w.Update()

	if sand.Y != 1 || water.Y != 0 {
		t.Fatalf("sand at y=%d water at y=%d, want sand below water", sand.Y, water.Y)
	}
	if s := w.Stats(); s.Swaps != 1 {
		t.Fatalf("swaps = %d, want 1", s.Swaps)
	}
	checkInvariants(t, w)
}

func TestEqualDensityNeverSwaps(t *testing.T) {
	w := newTestWorld(t, 1, 2)
	top := mustAdd(t, w, "Sand", 0, 0)
	bottom := mustAdd(t, w, "Sand", 0, 1)

	for i := 0; i < 5; i++ {
		w.Update()
	}
	if top.Y != 0 || bottom.Y != 1 {
		t.Fatalf("equal density tiles swapped: top y=%d bottom y=%d", top.Y, bottom.Y)
	}
}

func TestLighterTileNeverDisplacesDenser(t *testing.T) {
	w := newTestWorld(t, 1, 2)
	oil := mustAdd(t, w, "Oil", 0, 0)
	water := mustAdd(t, w, "Water", 0, 1)

	for i := 0; i < 5; i++ {
		w.Update()
	}
	if oil.Y != 0 || water.Y != 1 {
		t.Fatalf("oil at y=%d water at y=%d, want oil floating on water", oil.Y, water.Y)
	}
	if s := w.Stats(); s.Swaps != 0 || s.Moves != 0 {
		t.Fatalf("stats = %+v, want no movement", s)
	}
}

func TestAddTileOnOccupiedCellStillConsumesRandom(t *testing.T) {
	w := newTestWorld(t, 6, 6)
	first := mustAdd(t, w, "Sand", 3, 3)
	water, _ := w.Registry().Lookup("Water")

	before := w.Random().Cursor()
	dropped := w.AddTile(water, 3, 3)
	if dropped == nil {
		t.Fatal("AddTile on an occupied cell should still build the tile")
	}
	if w.Random().Cursor() == before {
		t.Fatal("constructing the discarded tile should draw its colour jitter")
	}
	if dropped.Active() {
		t.Fatal("discarded tile must not be active")
	}
	if w.TileAt(3, 3) != first {
		t.Fatal("occupant was replaced")
	}
	for _, tile := range w.Tiles() {
		if tile == dropped {
			t.Fatal("discarded tile appears in the live list")
		}
	}
	if len(w.Tiles()) != 1 {
		t.Fatalf("live tiles = %d, want 1", len(w.Tiles()))
	}
	if w.AddTile(water, -1, 0) != nil || w.AddTile(water, 0, 6) != nil {
		t.Fatal("out of bounds AddTile should return nil")
	}
}

func TestDeleteTile(t *testing.T) {
	w := newTestWorld(t, 4, 4)
	if got := w.DeleteTile(1, 1); got != nil {
		t.Fatalf("DeleteTile on empty cell returned %v", got)
	}
	if got := w.DeleteTile(9, 9); got != nil {
		t.Fatal("DeleteTile out of bounds should return nil")
	}
	if len(w.Tiles()) != 0 {
		t.Fatal("deleting from an empty world changed it")
	}

	concrete := mustAdd(t, w, "Concrete", 1, 1)
	water := mustAdd(t, w, "Water", 2, 3)
	got := w.DeleteTile(1, 1)
	if got != concrete {
		t.Fatal("DeleteTile should return the removed tile")
	}
	if concrete.Active() {
		t.Fatal("deleted tile still active")
	}
	if w.TileAt(1, 1) != nil {
		t.Fatal("cell still occupied after delete")
	}
	if w.DeleteTile(1, 1) != nil {
		t.Fatal("second delete should be a no-op")
	}
	if len(w.Tiles()) != 1 || w.Tiles()[0] != water {
		t.Fatalf("live tiles after delete = %d", len(w.Tiles()))
	}
	if len(w.heaters) != 1 || len(w.movers) != 1 {
		t.Fatalf("partitions not pruned: heaters=%d movers=%d", len(w.heaters), len(w.movers))
	}
	if tile := mustAdd(t, w, "Sand", 1, 1); tile == nil {
		t.Fatal("freed cell should accept a new tile")
	}
}

func TestSpawnRejectsOutOfBounds(t *testing.T) {
	w := newTestWorld(t, 4, 4)
	sand := w.Registry().MustLookup("Sand")
	for _, pos := range [][2]int{{4, 0}, {-1, 0}, {0, 4}, {0, -1}} {
		if got := w.Spawn(sand, pos[0], pos[1]); got != nil {
			t.Fatalf("Spawn at (%d,%d) = %v, want nil", pos[0], pos[1], got)
		}
	}
	if w.Spawn(nil, 1, 1) != nil {
		t.Fatal("Spawn without a material should return nil")
	}
	w.Update()
	if len(w.Tiles()) != 0 || w.TileAt(0, 1) != nil {
		t.Fatalf("out of bounds spawn landed in the grid: %d tiles", len(w.Tiles()))
	}
	checkInvariants(t, w)
}

func TestDeleteTilePrunesOnNextRead(t *testing.T) {
	w := newTestWorld(t, 8, 8)
	concrete := w.Registry().MustLookup("Concrete")
	for y := 0; y < w.Height(); y++ {
		for x := 0; x < w.Width(); x++ {
			w.AddTile(concrete, x, y)
		}
	}
	for y := 0; y < w.Height(); y++ {
		for x := 0; x < w.Width(); x++ {
			if w.DeleteTile(x, y) == nil {
				t.Fatalf("DeleteTile(%d,%d) found nothing", x, y)
			}
		}
	}
	if len(w.tiles) != 64 {
		t.Fatalf("tiles pruned per delete: %d left, want 64 until the next read", len(w.tiles))
	}
	if len(w.Tiles()) != 0 || len(w.heaters) != 0 {
		t.Fatalf("after read: tiles=%d heaters=%d, want 0", len(w.tiles), len(w.heaters))
	}

	mustAdd(t, w, "Concrete", 0, 0)
	w.DeleteTile(0, 0)
	mustAdd(t, w, "Sand", 1, 0)
	w.Update()
	if len(w.movers) != 1 || len(w.heaters) != 1 {
		t.Fatalf("partitions before tick not pruned: movers=%d heaters=%d", len(w.movers), len(w.heaters))
	}
	checkInvariants(t, w)
}

func TestRemoveIsIdempotent(t *testing.T) {
	w := newTestWorld(t, 2, 2)
	tile := mustAdd(t, w, "Concrete", 0, 0)
	if !tile.Remove() {
		t.Fatal("first Remove should queue the tile")
	}
	if tile.Remove() {
		t.Fatal("second Remove should be a no-op")
	}
	if len(w.toDelete) != 1 {
		t.Fatalf("queued %d removals, want 1", len(w.toDelete))
	}
	if tile.Transform(w.Registry().MustLookup("Sand")) != nil {
		t.Fatal("Transform on an inactive tile should do nothing")
	}
	w.Update()
	if w.TileAt(0, 0) != nil || len(w.Tiles()) != 0 {
		t.Fatal("queued removal not committed")
	}
	if s := w.Stats(); s.Removed != 1 {
		t.Fatalf("removed = %d, want 1", s.Removed)
	}
}

func TestInvariantsHoldUnderMixedLoad(t *testing.T) {
	w := newTestWorld(t, 24, 16)
	reg := w.Registry()
	pick := core.NewTable(5)
	for i := 0; i < 240; i++ {
		m := reg.At(pick.Intn(reg.Len()))
		w.AddTile(m, pick.Intn(w.Width()), pick.Intn(w.Height()))
	}
	checkInvariants(t, w)
	for tick := 0; tick < 300; tick++ {
		w.Update()
		checkInvariants(t, w)
		if tick%50 == 0 {
			w.DeleteTile(pick.Intn(w.Width()), pick.Intn(w.Height()))
			w.AddTile(reg.At(pick.Intn(reg.Len())), pick.Intn(w.Width()), 0)
			checkInvariants(t, w)
		}
	}
}

func TestMovementCooldownSkipsSettledTiles(t *testing.T) {
	w := newTestWorld(t, 3, 3)
	mustAdd(t, w, "Sand", 1, 2)

	want := []int{1, 0, 1, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1}
	for tick, scanned := range want {
		w.Update()
		if got := w.Stats().Scanned; got != scanned {
			t.Fatalf("tick %d scanned %d tiles, want %d", tick+1, got, scanned)
		}
	}

	w.SetIntParameter("move_cooldown", 0)
	// The skip already granted still runs out.
	for i := 0; i < 3; i++ {
		w.Update()
	}
	for tick := 0; tick < 3; tick++ {
		w.Update()
		if got := w.Stats().Scanned; got != 1 {
			t.Fatalf("without cooldown tick %d scanned %d tiles", tick, got)
		}
	}
}

func TestMovementCooldownResetsOnMove(t *testing.T) {
	w := newTestWorld(t, 1, 4)
	sand := mustAdd(t, w, "Sand", 0, 0)
	floor := mustAdd(t, w, "Concrete", 0, 1)

	for i := 0; i < 4; i++ {
		w.Update()
	}
	if sand.cooldown == 0 {
		t.Fatal("blocked sand should have built up a cooldown")
	}
	w.DeleteTile(floor.X, floor.Y)
	for i := 0; i < 8 && sand.Y != 3; i++ {
		w.Update()
	}
	if sand.Y != 3 {
		t.Fatalf("sand stuck at y=%d after its support was removed", sand.Y)
	}
	if sand.cooldown > 1 {
		t.Fatalf("cooldown after moving = %d", sand.cooldown)
	}
}

func TestOriginalScheduleAlternatesSystems(t *testing.T) {
	cfg := OriginalSchedule(DefaultConfig())
	cfg.Width = 1
	cfg.Height = 10
	cfg.Random = core.NewTable(1)
	w, err := NewWithConfig(cfg, MustDefaultRegistry())
	if err != nil {
		t.Fatalf("new world: %v", err)
	}
	if got := w.Systems()[0].FrameSkip(); got != 1 {
		t.Fatalf("movement frame skip = %d, want 1", got)
	}
	sand := w.AddTile(w.Registry().MustLookup("Sand"), 0, 0)

	wantY := []int{1, 1, 2, 2, 3}
	for i, y := range wantY {
		w.Update()
		if sand.Y != y {
			t.Fatalf("update %d: sand y=%d, want %d", i+1, sand.Y, y)
		}
		if got := w.Stats().Systems; got != 2 {
			t.Fatalf("update %d ran %d systems, want 2", i+1, got)
		}
	}
	w.Reset(1)
	if w.Tick() != 0 || len(w.Tiles()) != 0 {
		t.Fatal("Reset should clear tiles and the tick counter")
	}
}

func TestCellsAndColors(t *testing.T) {
	w := newTestWorld(t, 3, 1)
	sand := mustAdd(t, w, "Sand", 0, 0)
	cells := w.Cells()
	if cells[0] != uint8(sand.Material().ID()+1) || cells[1] != 0 {
		t.Fatalf("cells = %v", cells)
	}
	bg := color.RGBA{R: 1, G: 2, B: 3, A: 255}
	colors := w.Colors(nil, bg)
	if colors[0] != sand.Color || colors[2] != bg {
		t.Fatalf("colors = %v", colors)
	}
	if len(w.Palette()) != w.Registry().Len()+1 {
		t.Fatal("palette should have one entry per material plus empty")
	}
	if heat, ok := w.HeatAt(0, 0); !ok || heat != sand.Heat {
		t.Fatalf("HeatAt = %d, %v", heat, ok)
	}
	if _, ok := w.HeatAt(2, 0); ok {
		t.Fatal("empty cell reported heat")
	}
}

func TestParametersSnapshot(t *testing.T) {
	w := newTestWorld(t, 8, 8)
	mustAdd(t, w, "Sand", 1, 1)
	mustAdd(t, w, "Sand", 2, 1)
	mustAdd(t, w, "Water", 3, 1)

	snap := w.Parameters()
	if p, ok := snap.Lookup("tiles"); !ok || p.Value != "3" {
		t.Fatalf("tiles parameter = %+v, %v", p, ok)
	}
	if p, ok := snap.Lookup("count_Sand"); !ok || p.Value != "2" {
		t.Fatalf("sand count = %+v, %v", p, ok)
	}
	if !w.SetIntParameter("heat_hz", 500) {
		t.Fatal("heat_hz should be adjustable")
	}
	if p, _ := w.Parameters().Lookup("heat_hz"); p.Value != "60" {
		t.Fatalf("heat_hz should clamp to 60, got %s", p.Value)
	}
	if w.SetIntParameter("unknown", 1) {
		t.Fatal("unknown keys should be rejected")
	}
}
