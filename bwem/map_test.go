package bwem

import "testing"

func check(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

// openPlain returns a fully walkable, fully buildable map.
func openPlain(tileW, tileH int32) *MapData {
	d := NewMapData(tileW, tileH)
	d.FillBuildable(TilePosition{0, 0}, TilePosition{tileW, tileH}, true)
	d.FillWalkable(TilePosition{0, 0}, TilePosition{tileW, tileH}, true)
	return d
}

func analyze(t *testing.T, data *MapData) *Map {
	t.Helper()
	m := NewMap(nil)
	check(t, m.Initialize(data))
	return m
}

// checkInvariants verifies the universal post-Initialize invariants.
func checkInvariants(t *testing.T, m *Map) {
	t.Helper()

	for y := int32(0); y < m.WalkSize().Y; y++ {
		for x := int32(0); x < m.WalkSize().X; x++ {
			mini := m.MiniTile(WalkPosition{x, y})
			if mini.Walkable() {
				if mini.AreaID() == 0 {
					t.Fatalf("walkable minitile (%d, %d) has no area id", x, y)
				}
				if mini.Altitude() <= 0 {
					t.Fatalf("walkable minitile (%d, %d) has altitude %d", x, y, mini.Altitude())
				}
			} else if mini.Sea() && mini.Altitude() != 0 {
				t.Fatalf("sea minitile (%d, %d) has altitude %d", x, y, mini.Altitude())
			}
		}
	}

	areas := m.Areas()
	for i := range areas {
		a := &areas[i]
		top := m.MiniTile(a.Top())
		if top.Altitude() != a.MaxAltitude() {
			t.Errorf("area %d: top altitude %d != max altitude %d", a.ID(), top.Altitude(), a.MaxAltitude())
		}
		if top.AreaID() != a.ID() {
			t.Errorf("area %d: top has area id %d", a.ID(), top.AreaID())
		}
		if a.GroupID() <= 0 {
			t.Errorf("area %d: group id %d", a.ID(), a.GroupID())
		}
	}

	for _, cpA := range m.ChokePoints() {
		if len(cpA.Geometry()) == 0 {
			t.Fatalf("chokepoint %d: empty geometry", cpA.Index())
		}
		if !cpA.IsPseudo() {
			areas := cpA.Areas()
			for _, w := range cpA.Geometry() {
				id := m.MiniTile(w).AreaID()
				if id != areas[0].ID() && id != areas[1].ID() {
					t.Errorf("chokepoint %d: geometry position (%d, %d) has area id %d, want %d or %d",
						cpA.Index(), w.X, w.Y, id, areas[0].ID(), areas[1].ID())
				}
			}
		}
		for _, cpB := range m.ChokePoints() {
			dAB, dBA := m.Distance(cpA, cpB), m.Distance(cpB, cpA)
			if dAB != dBA {
				t.Errorf("distance(%d, %d) = %d but distance(%d, %d) = %d",
					cpA.Index(), cpB.Index(), dAB, cpB.Index(), cpA.Index(), dBA)
			}
			if cpA == cpB && dAB != 0 {
				t.Errorf("distance(%d, %d) = %d, want 0", cpA.Index(), cpB.Index(), dAB)
			}
			pAB, pBA := m.ChokePointPath(cpA, cpB), m.ChokePointPath(cpB, cpA)
			if len(pAB) != len(pBA) {
				t.Errorf("path(%d, %d) and its reverse have different lengths", cpA.Index(), cpB.Index())
				continue
			}
			for i := range pAB {
				if pAB[i] != pBA[len(pBA)-1-i] {
					t.Errorf("path(%d, %d) is not the reverse of path(%d, %d)",
						cpA.Index(), cpB.Index(), cpB.Index(), cpA.Index())
					break
				}
			}
		}
	}

	// every resource belongs to at most one base
	seen := make(map[*Neutral]int)
	for _, b := range m.Bases() {
		for _, r := range b.Minerals() {
			seen[r]++
		}
		for _, r := range b.Geysers() {
			seen[r]++
		}
	}
	for r, count := range seen {
		if count != 1 {
			t.Errorf("resource %d assigned to %d bases", r.ID(), count)
		}
	}
}

func TestSingleOpenPlain(t *testing.T) {
	m := analyze(t, openPlain(64, 64))
	checkInvariants(t, m)

	if len(m.Areas()) != 1 {
		t.Fatalf("areas = %d, want 1", len(m.Areas()))
	}
	if len(m.ChokePoints()) != 0 {
		t.Errorf("chokepoints = %d, want 0", len(m.ChokePoints()))
	}
	if len(m.Bases()) != 0 {
		t.Errorf("bases = %d, want 0", len(m.Bases()))
	}
	if m.MaxAltitude() <= 0 {
		t.Errorf("max altitude = %d, want > 0", m.MaxAltitude())
	}

	for y := int32(0); y < m.WalkSize().Y; y++ {
		for x := int32(0); x < m.WalkSize().X; x++ {
			mini := m.MiniTile(WalkPosition{x, y})
			if mini.Walkable() && mini.AreaID() != 1 {
				t.Fatalf("minitile (%d, %d): area id %d, want 1", x, y, mini.AreaID())
			}
		}
	}
}

func TestLakeAndSea(t *testing.T) {
	data := openPlain(64, 64)

	// a strip along the top edge: sea
	data.FillBuildable(TilePosition{0, 0}, TilePosition{32, 8}, false)
	data.FillWalkable(TilePosition{0, 0}, TilePosition{32, 8}, false)

	// a small enclosed pocket in the middle: lake (its covering tiles must
	// not be buildable, or walkability would be forced back)
	data.FillBuildable(TilePosition{25, 25}, TilePosition{2, 2}, false)
	for y := int32(100); y <= 104; y++ {
		for x := int32(100); x <= 104; x++ {
			data.SetWalkable(WalkPosition{x, y}, false)
		}
	}

	m := analyze(t, data)
	checkInvariants(t, m)

	// strip minitiles are sea, altitude 0
	if mini := m.MiniTile(WalkPosition{10, 4}); !mini.Sea() || mini.Altitude() != 0 {
		t.Errorf("strip minitile: sea=%t altitude=%d, want sea at altitude 0", mini.Sea(), mini.Altitude())
	}
	// pocket minitiles are lake: unwalkable but with a positive altitude
	// and no area
	if mini := m.MiniTile(WalkPosition{102, 102}); !mini.Lake() || mini.Altitude() <= 0 || mini.AreaID() != 0 {
		t.Errorf("pocket minitile: lake=%t altitude=%d areaID=%d, want lake at positive altitude",
			mini.Lake(), mini.Altitude(), mini.AreaID())
	}

	// lakes do not seed the altitude field: terrain next to the lake is
	// far from any sea, terrain next to the sea is not
	nextToSea := m.MiniTile(WalkPosition{64, 32})
	nextToLake := m.MiniTile(WalkPosition{98, 102})
	if !nextToSea.Walkable() || !nextToLake.Walkable() {
		t.Fatal("sample minitiles should be walkable")
	}
	if nextToSea.Altitude() != 8 {
		t.Errorf("minitile next to sea: altitude %d, want 8", nextToSea.Altitude())
	}
	if nextToLake.Altitude() <= nextToSea.Altitude() {
		t.Errorf("altitude next to lake (%d) should exceed altitude next to sea (%d)",
			nextToLake.Altitude(), nextToSea.Altitude())
	}
}

func TestDisconnectedIslands(t *testing.T) {
	data := NewMapData(64, 32)
	data.FillBuildable(TilePosition{0, 0}, TilePosition{28, 32}, true)
	data.FillWalkable(TilePosition{0, 0}, TilePosition{28, 32}, true)
	data.FillBuildable(TilePosition{36, 0}, TilePosition{28, 32}, true)
	data.FillWalkable(TilePosition{36, 0}, TilePosition{28, 32}, true)

	m := analyze(t, data)
	checkInvariants(t, m)

	if len(m.Areas()) != 2 {
		t.Fatalf("areas = %d, want 2", len(m.Areas()))
	}
	left := m.NearestArea(WalkPosition{56, 64})
	right := m.NearestArea(WalkPosition{200, 64})
	if left == nil || right == nil || left == right {
		t.Fatal("expected two distinct island areas")
	}
	if left.GroupID() == right.GroupID() {
		t.Errorf("both islands have group id %d", left.GroupID())
	}
	if left.AccessibleFrom(right) {
		t.Error("islands should not be mutually accessible")
	}

	path, length, err := m.Path(Position{14 * 32, 16 * 32}, Position{50 * 32, 16 * 32})
	check(t, err)
	if len(path) != 0 || length != -1 {
		t.Errorf("path between islands: %d chokepoints, length %d, want empty and -1", len(path), length)
	}

	// two points of the same island: empty path, straight-line distance
	path, length, err = m.Path(Position{10 * 32, 16 * 32}, Position{20 * 32, 16 * 32})
	check(t, err)
	if len(path) != 0 || length != 320 {
		t.Errorf("path inside an island: %d chokepoints, length %d, want empty and 320", len(path), length)
	}
}

func TestUninitializedQueries(t *testing.T) {
	m := NewMap(nil)
	if _, _, err := m.Path(Position{0, 0}, Position{1, 1}); err != ErrUninitialized {
		t.Errorf("Path: err = %v, want ErrUninitialized", err)
	}
	if _, err := m.FindBasesForStartingLocations(); err != ErrUninitialized {
		t.Errorf("FindBasesForStartingLocations: err = %v, want ErrUninitialized", err)
	}
	if err := m.OnMineralDestroyed(1); err != ErrUninitialized {
		t.Errorf("OnMineralDestroyed: err = %v, want ErrUninitialized", err)
	}
	if err := m.OnStaticBuildingDestroyed(1); err != ErrUninitialized {
		t.Errorf("OnStaticBuildingDestroyed: err = %v, want ErrUninitialized", err)
	}
}

func TestInvalidMapData(t *testing.T) {
	m := NewMap(nil)
	if err := m.Initialize(&MapData{MapSize: TilePosition{0, 5}}); err != ErrInvalidMapData {
		t.Errorf("zero width: err = %v, want ErrInvalidMapData", err)
	}

	data := openPlain(8, 8)
	data.StartLocations = []TilePosition{{20, 2}}
	if err := NewMap(nil).Initialize(data); err != ErrInvalidMapData {
		t.Errorf("out of map starting location: err = %v, want ErrInvalidMapData", err)
	}

	data = openPlain(8, 8)
	data.SetGroundHeight(TilePosition{1, 1}, 9)
	if err := NewMap(nil).Initialize(data); err != ErrInvalidMapData {
		t.Errorf("invalid ground height: err = %v, want ErrInvalidMapData", err)
	}
}

func TestAlreadyInitialized(t *testing.T) {
	data := openPlain(8, 8)
	m := analyze(t, data)
	if err := m.Initialize(data); err != ErrAlreadyInitialized {
		t.Errorf("err = %v, want ErrAlreadyInitialized", err)
	}
}

func TestInitializeIdempotence(t *testing.T) {
	m1 := analyze(t, corridorData())
	m2 := analyze(t, corridorData())

	if len(m1.Areas()) != len(m2.Areas()) {
		t.Fatalf("area counts differ: %d vs %d", len(m1.Areas()), len(m2.Areas()))
	}
	for y := int32(0); y < m1.WalkSize().Y; y++ {
		for x := int32(0); x < m1.WalkSize().X; x++ {
			w := WalkPosition{x, y}
			if m1.MiniTile(w).AreaID() != m2.MiniTile(w).AreaID() {
				t.Fatalf("minitile (%d, %d): area ids differ", x, y)
			}
			if m1.MiniTile(w).Altitude() != m2.MiniTile(w).Altitude() {
				t.Fatalf("minitile (%d, %d): altitudes differ", x, y)
			}
		}
	}

	cps1, cps2 := m1.ChokePoints(), m2.ChokePoints()
	if len(cps1) != len(cps2) {
		t.Fatalf("chokepoint counts differ: %d vs %d", len(cps1), len(cps2))
	}
	for i := range cps1 {
		g1, g2 := cps1[i].Geometry(), cps2[i].Geometry()
		if len(g1) != len(g2) {
			t.Fatalf("chokepoint %d: geometry lengths differ", i)
		}
		for j := range g1 {
			if g1[j] != g2[j] {
				t.Fatalf("chokepoint %d: geometries differ at %d", i, j)
			}
		}
		for j := range cps1 {
			if m1.Distance(cps1[i], cps1[j]) != m2.Distance(cps2[i], cps2[j]) {
				t.Fatalf("distance matrices differ at (%d, %d)", i, j)
			}
		}
	}
}
