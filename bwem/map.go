package bwem

import (
	"errors"
	"fmt"

	assert "github.com/arl/assertgo"
)

var (
	// ErrUninitialized is returned by queries issued before Initialize.
	ErrUninitialized = errors.New("bwem: map not initialized")

	// ErrInvalidMapData is returned by Initialize when the input snapshot
	// is inconsistent (non-positive dimensions, out of range ground
	// heights, out of map starting locations).
	ErrInvalidMapData = errors.New("bwem: inconsistent map data")

	// ErrAlreadyInitialized is returned by a second call to Initialize.
	ErrAlreadyInitialized = errors.New("bwem: map already initialized")
)

// rawFrontierEntry records one minitile at which two temporary areas
// touched during the area sweep.
type rawFrontierEntry struct {
	areas [2]AreaID
	pos   WalkPosition
}

// Map owns the whole analysis: the grids, the neutral registry and the
// area/chokepoint/base graph. A Map is created empty with NewMap and
// filled by a single Initialize pass; apart from the destruction hooks,
// everything is read-only afterwards.
//
// Map is not safe for concurrent mutation; if queries must overlap with
// the destruction hooks, the caller serializes them externally.
type Map struct {
	ctx *BuildContext

	size     TilePosition
	walkSize WalkPosition
	center   Position

	tiles     []Tile
	miniTiles []MiniTile

	maxAltitude Altitude

	neutrals        []*Neutral
	minerals        []*Neutral
	geysers         []*Neutral
	staticBuildings []*Neutral

	startingLocations []TilePosition

	rawFrontier []rawFrontierEntry

	// areaPairCounter backs the deterministic alternation used when a
	// frontier minitile may join either of two areas.
	areaPairCounter map[[2]AreaID]int32

	graph *Graph

	initialized         bool
	automaticPathUpdate bool
}

// NewMap returns an empty map logging to ctx. ctx may be nil.
func NewMap(ctx *BuildContext) *Map {
	return &Map{ctx: ctx}
}

// Initialized reports whether Initialize has completed on this map.
func (m *Map) Initialized() bool { return m.initialized }

// Size returns the map size in tiles.
func (m *Map) Size() TilePosition { return m.size }

// WalkSize returns the map size in minitiles.
func (m *Map) WalkSize() WalkPosition { return m.walkSize }

// Center returns the center of the map, in pixels.
func (m *Map) Center() Position { return m.center }

// MaxAltitude returns the highest altitude of the map.
func (m *Map) MaxAltitude() Altitude { return m.maxAltitude }

// Valid reports whether t lies inside the map.
func (m *Map) Valid(t TilePosition) bool {
	return t.X >= 0 && t.X < m.size.X && t.Y >= 0 && t.Y < m.size.Y
}

// ValidWalk reports whether w lies inside the map.
func (m *Map) ValidWalk(w WalkPosition) bool {
	return w.X >= 0 && w.X < m.walkSize.X && w.Y >= 0 && w.Y < m.walkSize.Y
}

// ValidPixel reports whether p lies inside the map.
func (m *Map) ValidPixel(p Position) bool {
	return p.X >= 0 && p.X < m.size.X*pixelsPerTile && p.Y >= 0 && p.Y < m.size.Y*pixelsPerTile
}

// crop clamps p inside the map.
func (m *Map) crop(p Position) Position {
	return Position{
		iMin32(iMax32(p.X, 0), m.size.X*pixelsPerTile-1),
		iMin32(iMax32(p.Y, 0), m.size.Y*pixelsPerTile-1),
	}
}

func (m *Map) tileIndex(t TilePosition) int32 { return t.Y*m.size.X + t.X }
func (m *Map) walkIndex(w WalkPosition) int32 { return w.Y*m.walkSize.X + w.X }

func (m *Map) tile(t TilePosition) *Tile         { return &m.tiles[m.tileIndex(t)] }
func (m *Map) miniTile(w WalkPosition) *MiniTile { return &m.miniTiles[m.walkIndex(w)] }

// Tile returns the tile at t, which must be valid.
func (m *Map) Tile(t TilePosition) *Tile {
	assert.True(m.Valid(t), "Tile: invalid position (%d, %d)", t.X, t.Y)
	return m.tile(t)
}

// MiniTile returns the minitile at w, which must be valid.
func (m *Map) MiniTile(w WalkPosition) *MiniTile {
	assert.True(m.ValidWalk(w), "MiniTile: invalid position (%d, %d)", w.X, w.Y)
	return m.miniTile(w)
}

// StartingLocations returns the starting locations of the map.
func (m *Map) StartingLocations() []TilePosition { return m.startingLocations }

// Neutrals returns every registered neutral, in registration order.
func (m *Map) Neutrals() []*Neutral { return m.neutrals }

// Minerals returns the registered mineral patches.
func (m *Map) Minerals() []*Neutral { return m.minerals }

// Geysers returns the registered vespene geysers.
func (m *Map) Geysers() []*Neutral { return m.geysers }

// StaticBuildings returns the registered static buildings.
func (m *Map) StaticBuildings() []*Neutral { return m.staticBuildings }

// EnableAutomaticPathUpdate makes the destruction of a blocking neutral
// trigger a recomputation of the chokepoint distance and path matrices.
func (m *Map) EnableAutomaticPathUpdate() { m.automaticPathUpdate = true }

// AutomaticPathUpdate reports whether automatic path updates are enabled.
func (m *Map) AutomaticPathUpdate() bool { return m.automaticPathUpdate }

// Initialize runs the whole analysis on the given snapshot. It must be
// called exactly once, before any query.
func (m *Map) Initialize(data TerrainData) error {
	if m.initialized {
		return ErrAlreadyInitialized
	}

	size := data.Size()
	if size.X <= 0 || size.Y <= 0 {
		return ErrInvalidMapData
	}
	m.size = size
	m.walkSize = WalkPosition{size.X * walkTilesPerTile, size.Y * walkTilesPerTile}
	m.center = Position{size.X * pixelsPerTile / 2, size.Y * pixelsPerTile / 2}
	m.tiles = make([]Tile, size.X*size.Y)
	m.miniTiles = make([]MiniTile, m.walkSize.X*m.walkSize.Y)
	m.areaPairCounter = make(map[[2]AreaID]int32)
	m.graph = newGraph(m)

	for _, loc := range data.StartingLocations() {
		if !m.Valid(loc) {
			return ErrInvalidMapData
		}
		m.startingLocations = append(m.startingLocations, loc)
	}

	m.ctx.ResetTimers()
	m.ctx.StartTimer(TimerTotal)
	m.ctx.Progressf("Analyzing map:")
	m.ctx.Progressf(" - %d x %d tiles (%d x %d minitiles)",
		m.size.X, m.size.Y, m.walkSize.X, m.walkSize.Y)

	m.ctx.StartTimer(TimerTerrain)
	if err := m.loadData(data); err != nil {
		m.ctx.StopTimer(TimerTerrain)
		return err
	}
	m.decideSeasOrLakes()
	m.ctx.StopTimer(TimerTerrain)

	m.ctx.StartTimer(TimerNeutrals)
	m.initializeNeutrals(data)
	m.ctx.Progressf(" - %d minerals, %d geysers, %d static buildings",
		len(m.minerals), len(m.geysers), len(m.staticBuildings))
	m.ctx.StopTimer(TimerNeutrals)

	m.ctx.StartTimer(TimerAltitudes)
	m.computeAltitude()
	m.ctx.Progressf(" - max altitude %d", m.maxAltitude)
	m.ctx.StopTimer(TimerAltitudes)

	m.ctx.StartTimer(TimerBlockingNeutrals)
	m.processBlockingNeutrals()
	m.ctx.StopTimer(TimerBlockingNeutrals)

	m.ctx.StartTimer(TimerAreas)
	m.computeAreas()
	m.ctx.Progressf(" - %d areas", len(m.graph.areas))
	m.ctx.StopTimer(TimerAreas)

	m.ctx.StartTimer(TimerChokePoints)
	m.graph.createChokePoints()
	m.ctx.Progressf(" - %d chokepoints", len(m.graph.chokePointList))
	m.ctx.StopTimer(TimerChokePoints)

	m.ctx.StartTimer(TimerPaths)
	m.graph.computeChokePointDistanceMatrix()
	m.ctx.StopTimer(TimerPaths)

	m.ctx.StartTimer(TimerBases)
	m.graph.collectInformation()
	m.graph.createBases()
	m.ctx.Progressf(" - %d bases", m.graph.baseCount)
	m.ctx.StopTimer(TimerBases)

	m.ctx.StopTimer(TimerTotal)
	m.initialized = true
	return nil
}

// Areas returns the Areas of the map, indexed by id-1.
func (m *Map) Areas() []Area { return m.graph.areas }

// Area returns the area of the given id, or nil if no such area exists.
func (m *Map) Area(id AreaID) *Area {
	if m.graph == nil || id < 1 || int(id) > len(m.graph.areas) {
		return nil
	}
	return &m.graph.areas[id-1]
}

// AreaAt returns the area of the minitile at w, or nil if it belongs to
// none (sea, lake, fragment or blocked minitile).
func (m *Map) AreaAt(w WalkPosition) *Area {
	assert.True(m.ValidWalk(w), "AreaAt: invalid position (%d, %d)", w.X, w.Y)
	return m.Area(m.miniTile(w).AreaID())
}

// AreaAtTile returns the area of the tile at t, or nil if the tile
// belongs to none or to several areas.
func (m *Map) AreaAtTile(t TilePosition) *Area {
	assert.True(m.Valid(t), "AreaAtTile: invalid position (%d, %d)", t.X, t.Y)
	return m.Area(m.tile(t).AreaID())
}

// NearestArea returns the area nearest to w, looking outwards with a
// breadth-first search. Returns nil on maps without areas.
func (m *Map) NearestArea(w WalkPosition) *Area {
	if a := m.AreaAt(w); a != nil {
		return a
	}
	pos := m.breadthFirstSearch(w,
		func(mini *MiniTile, _ WalkPosition) bool { return mini.AreaID() > 0 },
		func(_ *MiniTile, _ WalkPosition) bool { return true })
	return m.Area(m.miniTile(pos).AreaID())
}

// NearestAreaTile is the tile-level variant of NearestArea.
func (m *Map) NearestAreaTile(t TilePosition) *Area {
	if a := m.AreaAtTile(t); a != nil {
		return a
	}
	pos := m.breadthFirstSearchTiles(t,
		func(tile *Tile, _ TilePosition) bool { return tile.AreaID() > 0 },
		func(_ *Tile, _ TilePosition) bool { return true })
	return m.Area(m.tile(pos).AreaID())
}

// ChokePoints returns every chokepoint of the map, indexed by their
// global index.
func (m *Map) ChokePoints() []*ChokePoint { return m.graph.chokePointList }

// Distance returns the precomputed pixel distance between two
// chokepoints, or -1 if they are not connected.
func (m *Map) Distance(a, b *ChokePoint) int32 { return m.graph.distance(a, b) }

// ChokePointPath returns the precomputed shortest chokepoint path between
// a and b. The returned slice is shared: callers must not modify it.
func (m *Map) ChokePointPath(a, b *ChokePoint) CPPath { return m.graph.path(a, b) }

// Bases returns every base of the map, area by area.
func (m *Map) Bases() []*Base {
	var bases []*Base
	for i := range m.graph.areas {
		a := &m.graph.areas[i]
		for j := range a.bases {
			bases = append(bases, &a.bases[j])
		}
	}
	return bases
}

// Path returns the precomputed chokepoint path to follow from a to b,
// along with an approximate pixel length of the whole path.
//
// If a and b lie in (or nearest to) the same area, the path is empty and
// the length is the approximate straight-line distance. If no connection
// exists, the path is empty and the length is -1.
func (m *Map) Path(a, b Position) (CPPath, int32, error) {
	if !m.initialized {
		return nil, -1, ErrUninitialized
	}
	a, b = m.crop(a), m.crop(b)

	areaA := m.NearestArea(a.Walk())
	areaB := m.NearestArea(b.Walk())
	if areaA == nil || areaB == nil {
		return nil, -1, nil
	}
	if areaA == areaB {
		return nil, approxDist(a, b), nil
	}
	if !areaA.AccessibleFrom(areaB) {
		return nil, -1, nil
	}

	minDist := maxInt32
	var bestCpA, bestCpB *ChokePoint
	for _, cpA := range areaA.ChokePoints() {
		if cpA.Blocked() {
			continue
		}
		distACpA := approxDist(a, cpA.Center().Center())
		for _, cpB := range areaB.ChokePoints() {
			if cpB.Blocked() {
				continue
			}
			dAB := m.graph.distance(cpA, cpB)
			if dAB < 0 {
				continue
			}
			d := distACpA + approxDist(b, cpB.Center().Center()) + dAB
			if d < minDist {
				minDist = d
				bestCpA, bestCpB = cpA, cpB
			}
		}
	}
	if bestCpA == nil {
		return nil, -1, nil
	}

	path := m.graph.path(bestCpA, bestCpB)
	assert.True(len(path) >= 1, "Path: empty stored path")

	length := minDist
	if len(path) == 1 {
		assert.True(bestCpA == bestCpB, "Path: single-element path between distinct chokepoints")
		cp := bestCpA
		end1 := cp.Pos(NodeEnd1).Center()
		end2 := cp.Pos(NodeEnd2).Center()
		if segmentsIntersect(a, b, end1, end2) {
			length = approxDist(a, b)
		} else {
			for _, node := range []Node{NodeEnd1, NodeEnd2} {
				c := cp.Pos(node).Center()
				if d := approxDist(a, c) + approxDist(b, c); d < length {
					length = d
				}
			}
		}
	}
	return path, length, nil
}

// FindBasesForStartingLocations attaches each starting location of the
// map to the base lying within queen-wise distance 3 (in tiles) of it, if
// any: the base is promoted to a starting base and relocated onto the
// starting location. It returns false if at least one starting location
// could not be attached.
func (m *Map) FindBasesForStartingLocations() (bool, error) {
	if !m.initialized {
		return false, ErrUninitialized
	}
	atLeastOneFailed := false
	for _, location := range m.startingLocations {
		found := false
		for i := range m.graph.areas {
			area := &m.graph.areas[i]
			for j := range area.bases {
				base := &area.bases[j]
				if found {
					break
				}
				if queenWiseDist(base.location.X-location.X, base.location.Y-location.Y) <=
					maxTilesBetweenStartingLocationAndBase {
					base.setStartingLocation(location)
					found = true
				}
			}
			if found {
				break
			}
		}
		if !found {
			atLeastOneFailed = true
		}
	}
	return !atLeastOneFailed, nil
}

func (m *Map) findNeutral(id int32, kind NeutralKind) *Neutral {
	for _, n := range m.neutrals {
		if n.id == id && n.kind == kind {
			return n
		}
	}
	return nil
}

func removeNeutralFrom(list []*Neutral, n *Neutral) []*Neutral {
	for i, e := range list {
		if e == n {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// OnMineralDestroyed informs the map that the mineral patch created from
// unit id has been destroyed: it is detached from its area and bases, and
// if it was blocking, the blocking update of the chokepoints runs.
func (m *Map) OnMineralDestroyed(id int32) error {
	if !m.initialized {
		return ErrUninitialized
	}
	n := m.findNeutral(id, KindMineral)
	if n == nil {
		return fmt.Errorf("bwem: no such mineral: %d", id)
	}
	m.graph.onMineralDestroyed(n)
	m.onNeutralDestroyed(n)
	m.minerals = removeNeutralFrom(m.minerals, n)
	m.neutrals = removeNeutralFrom(m.neutrals, n)
	return nil
}

// OnStaticBuildingDestroyed informs the map that the static building
// created from unit id has been destroyed.
func (m *Map) OnStaticBuildingDestroyed(id int32) error {
	if !m.initialized {
		return ErrUninitialized
	}
	n := m.findNeutral(id, KindStaticBuilding)
	if n == nil {
		return fmt.Errorf("bwem: no such static building: %d", id)
	}
	m.onNeutralDestroyed(n)
	m.staticBuildings = removeNeutralFrom(m.staticBuildings, n)
	m.neutrals = removeNeutralFrom(m.neutrals, n)
	return nil
}

func (m *Map) onNeutralDestroyed(n *Neutral) {
	n.removeFromTiles()
	if n.Blocking() {
		m.onBlockingNeutralDestroyed(n)
	}
}

// onBlockingNeutralDestroyed lets every chokepoint of the blocked areas
// re-examine its blocking neutral; once the last stacked blocking neutral
// of the footprint is gone, the footprint minitiles are released to the
// first blocked area and the tile area ids above them are recomputed.
func (m *Map) onBlockingNeutralDestroyed(n *Neutral) {
	assert.True(n.Blocking(), "onBlockingNeutralDestroyed: neutral not blocking")

	blockedAreas := n.BlockedAreas()
	for _, area := range blockedAreas {
		for _, cp := range area.ChokePoints() {
			cp.onBlockingNeutralDestroyed(n)
		}
	}

	if m.tile(n.topLeft).Neutral() != nil {
		return // there remain blocking neutrals stacked at this location
	}
	if len(blockedAreas) == 0 {
		return
	}

	newID := blockedAreas[0].ID()
	for y := n.topLeft.Y * walkTilesPerTile; y < (n.topLeft.Y+n.size.Y)*walkTilesPerTile; y++ {
		for x := n.topLeft.X * walkTilesPerTile; x < (n.topLeft.X+n.size.X)*walkTilesPerTile; x++ {
			mini := m.miniTile(WalkPosition{x, y})
			if mini.Walkable() && mini.Blocked() {
				mini.replaceBlockedAreaID(newID)
			}
		}
	}
	for y := n.topLeft.Y; y <= n.BottomRight().Y; y++ {
		for x := n.topLeft.X; x <= n.BottomRight().X; x++ {
			t := TilePosition{x, y}
			m.tile(t).resetAreaID()
			m.setAreaIDInTile(t)
		}
	}

	if m.automaticPathUpdate {
		m.graph.computeChokePointDistanceMatrix()
	}
}
