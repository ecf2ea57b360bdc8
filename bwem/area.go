package bwem

import assert "github.com/arl/assertgo"

// Area is a maximal 4-connected component of walkable minitiles bounded
// by seas, the map edge or other areas. Areas are created once by the
// analysis and never move: they live in a contiguous slice owned by the
// graph and are referenced by pointer or id.
type Area struct {
	graph *Graph

	id      AreaID
	groupID GroupID

	// top is the walk position of the highest minitile of the area.
	top         WalkPosition
	maxAltitude Altitude

	miniTileCount           int32
	tileCount               int32
	buildableTileCount      int32
	highGroundTileCount     int32
	veryHighGroundTileCount int32

	topLeft     TilePosition // bounding box
	bottomRight TilePosition

	chokePointsByArea    map[*Area][]*ChokePoint
	chokePoints          []*ChokePoint
	accessibleNeighbours []*Area

	minerals []*Neutral
	geysers  []*Neutral
	bases    []Base
}

func newArea(g *Graph, id AreaID, top WalkPosition, miniTileCount int32) Area {
	a := Area{
		graph:             g,
		id:                id,
		top:               top,
		miniTileCount:     miniTileCount,
		topLeft:           TilePosition{maxInt32, maxInt32},
		bottomRight:       TilePosition{minInt32, minInt32},
		chokePointsByArea: make(map[*Area][]*ChokePoint),
	}
	a.maxAltitude = g.m.miniTile(top).Altitude()
	return a
}

// ID returns the id of the area (1..AreaCount).
func (a *Area) ID() AreaID { return a.id }

// GroupID identifies the set of areas mutually accessible from this one.
func (a *Area) GroupID() GroupID { return a.groupID }

// Top returns the walk position of the highest minitile of the area.
func (a *Area) Top() WalkPosition { return a.top }

// MaxAltitude returns the altitude of Top.
func (a *Area) MaxAltitude() Altitude { return a.maxAltitude }

// MiniTileCount returns the number of minitiles composing the area.
func (a *Area) MiniTileCount() int32 { return a.miniTileCount }

// TileCount returns the number of tiles whose area id aggregate is this
// area.
func (a *Area) TileCount() int32 { return a.tileCount }

// BuildableTileCount returns the number of buildable tiles of the area.
func (a *Area) BuildableTileCount() int32 { return a.buildableTileCount }

// HighGroundTileCount returns the number of high-ground tiles of the area.
func (a *Area) HighGroundTileCount() int32 { return a.highGroundTileCount }

// VeryHighGroundTileCount returns the number of very-high-ground tiles of
// the area.
func (a *Area) VeryHighGroundTileCount() int32 { return a.veryHighGroundTileCount }

// TopLeft returns the top left tile of the bounding box of the area.
func (a *Area) TopLeft() TilePosition { return a.topLeft }

// BottomRight returns the bottom right tile of the bounding box
// (inclusive).
func (a *Area) BottomRight() TilePosition { return a.bottomRight }

// ChokePoints returns every chokepoint of the area, one sub-slice per
// neighbouring area, flattened.
func (a *Area) ChokePoints() []*ChokePoint { return a.chokePoints }

// ChokePointsWith returns the chokepoints between this area and other,
// or nil if the two areas are not neighbours.
func (a *Area) ChokePointsWith(other *Area) []*ChokePoint {
	return a.chokePointsByArea[other]
}

// Neighbours returns the areas sharing at least one chokepoint with this
// one.
func (a *Area) Neighbours() []*Area {
	neighbours := make([]*Area, 0, len(a.chokePointsByArea))
	for other := range a.chokePointsByArea {
		neighbours = append(neighbours, other)
	}
	return neighbours
}

// AccessibleNeighbours returns the neighbours reachable through at least
// one non-blocked chokepoint.
func (a *Area) AccessibleNeighbours() []*Area { return a.accessibleNeighbours }

// AccessibleFrom reports whether other can be reached from this area:
// both areas carry the same group id.
func (a *Area) AccessibleFrom(other *Area) bool { return a.groupID == other.groupID }

// Minerals returns the mineral patches of the area.
func (a *Area) Minerals() []*Neutral { return a.minerals }

// Geysers returns the vespene geysers of the area.
func (a *Area) Geysers() []*Neutral { return a.geysers }

// Bases returns the bases of the area.
func (a *Area) Bases() []*Base {
	bases := make([]*Base, len(a.bases))
	for i := range a.bases {
		bases[i] = &a.bases[i]
	}
	return bases
}

func (a *Area) addChokePoints(other *Area, cps []*ChokePoint) {
	assert.True(a.chokePointsByArea[other] == nil && len(cps) > 0, "addChokePoints: invalid chokepoint list")
	a.chokePointsByArea[other] = cps
	a.chokePoints = append(a.chokePoints, cps...)
}

func (a *Area) addMineral(n *Neutral) { a.minerals = append(a.minerals, n) }
func (a *Area) addGeyser(n *Neutral)  { a.geysers = append(a.geysers, n) }

func (a *Area) onMineralDestroyed(n *Neutral) {
	a.minerals = removeNeutralFrom(a.minerals, n)
	for i := range a.bases {
		a.bases[i].onMineralDestroyed(n)
	}
}

func (a *Area) addTileInformation(t TilePosition, tile *Tile) {
	a.tileCount++
	if tile.Buildable() {
		a.buildableTileCount++
	}
	switch tile.GroundHeight() {
	case HighGround:
		a.highGroundTileCount++
	case VeryHighGround:
		a.veryHighGroundTileCount++
	}
	a.topLeft.X = iMin32(a.topLeft.X, t.X)
	a.topLeft.Y = iMin32(a.topLeft.Y, t.Y)
	a.bottomRight.X = iMax32(a.bottomRight.X, t.X)
	a.bottomRight.Y = iMax32(a.bottomRight.Y, t.Y)
}

func (a *Area) updateAccessibleNeighbours() {
	a.accessibleNeighbours = a.accessibleNeighbours[:0]
	for other, cps := range a.chokePointsByArea {
		for _, cp := range cps {
			if !cp.Blocked() {
				a.accessibleNeighbours = append(a.accessibleNeighbours, other)
				break
			}
		}
	}
}

// computeChokePointDistances returns, for each target chokepoint, the
// pixel length of the shortest walk inside the area between the middle
// node of start and the middle node of the target.
func (a *Area) computeChokePointDistances(start *ChokePoint, targets []*ChokePoint) []int32 {
	targetTiles := make([]TilePosition, len(targets))
	for i, cp := range targets {
		targetTiles[i] = cp.PosInArea(NodeMiddle, a).Tile()
	}
	return a.computeDistances(start.PosInArea(NodeMiddle, a).Tile(), targetTiles)
}

// computeDistances runs a weighted 8-neighbour Dijkstra over the tiles of
// the area (tiles of this area's id, plus the -1 tiles covering several
// areas) and returns the rounded pixel distance from start to each
// target. Unreached targets keep a 0 distance.
//
// Tile.internalData holds the tentative distance of the open tiles; it is
// reset to 0 before returning. Stale heap entries are skipped with a
// marked mask instead of a decrease-key.
func (a *Area) computeDistances(start TilePosition, targets []TilePosition) []int32 {
	m := a.graph.m
	distances := make([]int32, len(targets))

	marked := newBitset(m.size.X * m.size.Y)
	touched := []TilePosition{start}
	remaining := len(targets)

	q := newNodeQueue(64)
	q.push(&pathNode{Total: 0, Index: m.tileIndex(start)})

	for !q.empty() {
		n := q.pop()
		if marked.get(n.Index) {
			continue // stale duplicate
		}
		current := TilePosition{n.Index % m.size.X, n.Index / m.size.X}
		currentTile := &m.tiles[n.Index]
		assert.True(currentTile.internalData == n.Total, "computeDistances: open list out of sync")
		marked.set(n.Index)

		for i, t := range targets {
			if current == t && distances[i] == 0 {
				distances[i] = int32(0.5 + float64(n.Total)*float64(pixelsPerTile)/float64(orthogonalWeight))
				remaining--
			}
		}
		if remaining == 0 {
			break
		}

		for _, delta := range tileSearchDeltas {
			next := current.Add(delta)
			if !m.Valid(next) {
				continue
			}
			nextIdx := m.tileIndex(next)
			if marked.get(nextIdx) {
				continue
			}
			nextTile := &m.tiles[nextIdx]
			if nextTile.AreaID() != a.id && nextTile.AreaID() != -1 {
				continue
			}

			weight := int32(orthogonalWeight)
			if delta.X != 0 && delta.Y != 0 {
				weight = diagonalWeight
			}
			newDist := n.Total + weight
			oldDist := nextTile.internalData
			if oldDist == 0 || newDist < oldDist {
				if oldDist == 0 {
					touched = append(touched, next)
				}
				nextTile.internalData = newDist
				q.push(&pathNode{Total: newDist, Index: nextIdx})
			}
		}
	}

	for _, t := range touched {
		m.tile(t).internalData = 0
	}
	return distances
}
