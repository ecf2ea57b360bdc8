package bwem

import "testing"

// corridorData returns a 64x32 tile map made of two rooms joined by a
// 4-minitile-wide corridor through a 2-tile-thick wall. The raw gap is 6
// minitiles wide; walkability suppression shrinks it to 4 (walk rows
// 59..62).
func corridorData() *MapData {
	data := NewMapData(64, 32)
	// left room: tiles 0..30, right room: tiles 33..63
	data.FillBuildable(TilePosition{0, 0}, TilePosition{31, 32}, true)
	data.FillWalkable(TilePosition{0, 0}, TilePosition{31, 32}, true)
	data.FillBuildable(TilePosition{33, 0}, TilePosition{31, 32}, true)
	data.FillWalkable(TilePosition{33, 0}, TilePosition{31, 32}, true)
	// the corridor: raw walkable minitiles across the wall (tiles 31..32)
	for y := int32(58); y <= 63; y++ {
		for x := int32(124); x <= 131; x++ {
			data.SetWalkable(WalkPosition{x, y}, true)
		}
	}
	return data
}

func TestTwoRoomsOneChokePoint(t *testing.T) {
	m := analyze(t, corridorData())
	checkInvariants(t, m)

	if len(m.Areas()) != 2 {
		t.Fatalf("areas = %d, want 2", len(m.Areas()))
	}
	cps := m.ChokePoints()
	if len(cps) != 1 {
		t.Fatalf("chokepoints = %d, want 1", len(cps))
	}
	cp := cps[0]

	areas := cp.Areas()
	if areas[0] == areas[1] {
		t.Fatal("chokepoint joins an area with itself")
	}
	if cp.Blocked() || cp.IsPseudo() {
		t.Error("a plain corridor chokepoint should be neither blocked nor pseudo")
	}

	// the geometry spans the corridor width
	if len(cp.Geometry()) != 4 {
		t.Errorf("geometry length = %d, want 4", len(cp.Geometry()))
	}
	for _, w := range cp.Geometry() {
		if w.X < 120 || w.X > 135 || w.Y < 56 || w.Y > 66 {
			t.Errorf("geometry position (%d, %d) outside the corridor", w.X, w.Y)
		}
	}

	// the middle node carries the highest altitude of the geometry
	middle := m.MiniTile(cp.Pos(NodeMiddle)).Altitude()
	for _, w := range cp.Geometry() {
		if a := m.MiniTile(w).Altitude(); a > middle {
			t.Errorf("geometry altitude %d exceeds middle altitude %d", a, middle)
		}
	}

	// both areas are mutually accessible, in the same group
	if !areas[0].AccessibleFrom(areas[1]) {
		t.Error("rooms should be mutually accessible")
	}
	if len(areas[0].AccessibleNeighbours()) != 1 || areas[0].AccessibleNeighbours()[0] != areas[1] {
		t.Error("wrong accessible neighbours")
	}

	// a ground path between the two rooms goes through the chokepoint
	path, length, err := m.Path(Position{15 * 32, 16 * 32}, Position{48 * 32, 16 * 32})
	check(t, err)
	if len(path) != 1 || path[0] != cp {
		t.Fatalf("path = %d chokepoints, want the corridor chokepoint only", len(path))
	}
	if length <= 0 {
		t.Errorf("path length = %d, want > 0", length)
	}

	// the per-area representatives of each node belong to their area
	for _, n := range []Node{NodeEnd1, NodeMiddle, NodeEnd2} {
		for _, a := range areas {
			w := cp.PosInArea(n, a)
			if m.MiniTile(w).AreaID() != a.ID() {
				t.Errorf("PosInArea(%d): minitile (%d, %d) not in area %d", n, w.X, w.Y, a.ID())
			}
		}
	}
}

func TestChokePointDistanceSelf(t *testing.T) {
	m := analyze(t, corridorData())
	for _, cp := range m.ChokePoints() {
		if d := m.Distance(cp, cp); d != 0 {
			t.Errorf("distance(cp, cp) = %d, want 0", d)
		}
		p := m.ChokePointPath(cp, cp)
		if len(p) != 1 || p[0] != cp {
			t.Errorf("path(cp, cp) should be [cp]")
		}
	}
}
