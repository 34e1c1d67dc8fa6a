package sandbox

// acidChance is the 1-in-N gate for acid reacting with a touching tile.
const acidChance = 8

// Infect converts every touching tile of another material into the
// infecting material.
func Infect(w *World, t *Tile) {
	for _, d := range NeighborScan {
		n := t.Neighbor(d)
		if n == nil || !n.active || n.mat == t.mat {
			continue
		}
		n.Transform(t.mat)
	}
}

// Dissolve rolls once per tick while the tile touches a different material;
// on success it removes that neighbour and itself.
func Dissolve(w *World, t *Tile) {
	for _, d := range NeighborScan {
		n := t.Neighbor(d)
		if n == nil || !n.active || n.mat == t.mat {
			continue
		}
		if w.rng.Intn(acidChance) != 0 {
			return
		}
		n.Remove()
		t.Remove()
		return
	}
}

// Detonate counts the fuse down, then blasts outward: every cardinal cell
// is cleared and receives a new blast one power weaker, and the tile itself
// turns into its residue with its heat. Cells already holding a blast of
// the same material are left alone.
func Detonate(w *World, t *Tile) {
	if t.Fuse > 0 {
		t.Fuse--
		return
	}
	if t.Power > 0 {
		w.stats.Detonations++
		for _, d := range Cardinal {
			x, y, ok := w.grid.Offset(t.X, t.Y, d.DX, d.DY)
			if !ok {
				continue
			}
			if n := w.grid.At(x, y); n != nil {
				if n.mat == t.mat {
					continue
				}
				n.Remove()
			}
			child := w.Spawn(t.mat, x, y)
			child.Power = t.Power - 1
			child.Heat = t.Heat
		}
	}
	if t.mat.residue == nil {
		t.Remove()
		return
	}
	t.Transform(t.mat.residue)
}
