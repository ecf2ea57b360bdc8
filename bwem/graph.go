package bwem

import (
	"sort"

	assert "github.com/arl/assertgo"
)

// Graph owns the areas, the chokepoints and the precomputed distance and
// path matrices. Areas live in one contiguous slice indexed by id-1,
// chokepoints in one list indexed by their global index; cross references
// are pointers into those arenas, which never move after creation.
type Graph struct {
	m *Map

	areas          []Area
	chokePointList []*ChokePoint

	// chokePointsMatrix[a][b], with b < a, lists the chokepoints between
	// areas a and b.
	chokePointsMatrix [][][]*ChokePoint

	chokePointDistanceMatrix [][]int32
	pathsBetweenChokePoints  [][]CPPath

	baseCount int
}

func newGraph(m *Map) *Graph {
	return &Graph{m: m}
}

func (g *Graph) area(id AreaID) *Area {
	assert.True(id >= 1 && int(id) <= len(g.areas), "area: invalid id %d", id)
	return &g.areas[id-1]
}

func (g *Graph) chokePointsBetween(a, b AreaID) []*ChokePoint {
	if a < b {
		a, b = b, a
	}
	return g.chokePointsMatrix[a][b]
}

// mainArea returns the area of the first tile with a positive area id in
// the row-major scan of the given tile rectangle, or nil. No majority
// rule: first seen wins.
func (g *Graph) mainArea(topLeft, size TilePosition) *Area {
	for dy := int32(0); dy < size.Y; dy++ {
		for dx := int32(0); dx < size.X; dx++ {
			t := TilePosition{topLeft.X + dx, topLeft.Y + dy}
			if !g.m.Valid(t) {
				continue
			}
			if id := g.m.tile(t).AreaID(); id > 0 {
				return g.area(id)
			}
		}
	}
	return nil
}

// createChokePoints builds one chokepoint per cluster of raw frontier
// positions of each area pair, plus one pseudo chokepoint per pair of
// areas blocked by each blocking neutral.
func (g *Graph) createChokePoints() {
	m := g.m
	newIndex := int32(0)
	areasCount := AreaID(len(g.areas))

	g.chokePointsMatrix = make([][][]*ChokePoint, areasCount+1)
	for id := AreaID(1); id <= areasCount; id++ {
		g.chokePointsMatrix[id] = make([][]*ChokePoint, id) // triangular matrix
	}

	// Dispatch the global raw frontier in accordance to the area pairs.
	// The dispatch preserves the sweep order, so each bucket is ordered
	// by decreasing altitude.
	frontierByPair := make(map[[2]AreaID][]WalkPosition)
	var pairs [][2]AreaID
	for _, raw := range m.rawFrontier {
		a, b := raw.areas[0], raw.areas[1]
		if a > b {
			a, b = b, a
		}
		assert.True(a >= 1 && b <= areasCount, "createChokePoints: stale frontier ids %d/%d", a, b)
		key := [2]AreaID{a, b}
		if _, ok := frontierByPair[key]; !ok {
			pairs = append(pairs, key)
		}
		frontierByPair[key] = append(frontierByPair[key], raw.pos)
	}
	// maps iterate in random order: restore determinism
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})

	for _, pair := range pairs {
		a, b := pair[0], pair[1]
		frontier := frontierByPair[pair]

		// Cluster the bucket in one pass: a position joins a cluster if
		// it is close enough to its front or back endpoint (whichever is
		// closer, back on ties), otherwise it starts a new cluster.
		var clusters [][]WalkPosition
		for _, w := range frontier {
			added := false
			for i := range clusters {
				cluster := clusters[i]
				distToFront := queenWiseDist(cluster[0].X-w.X, cluster[0].Y-w.Y)
				distToBack := queenWiseDist(cluster[len(cluster)-1].X-w.X, cluster[len(cluster)-1].Y-w.Y)
				if iMin32(distToFront, distToBack) <= clusterMinDist {
					if distToFront < distToBack {
						clusters[i] = append([]WalkPosition{w}, cluster...)
					} else {
						clusters[i] = append(cluster, w)
					}
					added = true
					break
				}
			}
			if !added {
				clusters = append(clusters, []WalkPosition{w})
			}
		}

		cps := make([]*ChokePoint, 0, len(clusters))
		for _, cluster := range clusters {
			cps = append(cps, newChokePoint(g, newIndex, g.area(a), g.area(b), cluster, nil))
			newIndex++
		}
		g.chokePointsMatrix[b][a] = cps
	}

	// One pseudo chokepoint per pair of areas blocked by each blocking
	// neutral (stack bottoms only: the whole stack shares its doors).
	blockingNeutrals := make([]*Neutral, 0)
	for _, n := range m.staticBuildings {
		if n.Blocking() {
			blockingNeutrals = append(blockingNeutrals, n)
		}
	}
	for _, n := range m.minerals {
		if n.Blocking() {
			blockingNeutrals = append(blockingNeutrals, n)
		}
	}
	for _, n := range blockingNeutrals {
		if m.tile(n.topLeft).Neutral() != n {
			continue
		}
		blockedAreas := n.BlockedAreas()
		for i, areaA := range blockedAreas {
			for _, areaB := range blockedAreas[:i] {
				center := m.breadthFirstSearch(n.Pos().Walk(),
					func(mini *MiniTile, _ WalkPosition) bool { return mini.Walkable() },
					func(_ *MiniTile, _ WalkPosition) bool { return true })

				hi, lo := areaA.ID(), areaB.ID()
				if hi < lo {
					hi, lo = lo, hi
				}
				g.chokePointsMatrix[hi][lo] = append(g.chokePointsMatrix[hi][lo],
					newChokePoint(g, newIndex, areaA, areaB, []WalkPosition{center}, n))
				newIndex++
			}
		}
	}

	// Set the references to the freshly created chokepoints.
	for a := AreaID(1); a <= areasCount; a++ {
		for b := AreaID(1); b < a; b++ {
			cps := g.chokePointsMatrix[a][b]
			if len(cps) == 0 {
				continue
			}
			g.area(a).addChokePoints(g.area(b), cps)
			g.area(b).addChokePoints(g.area(a), cps)
			g.chokePointList = append(g.chokePointList, cps...)
		}
	}
	// the matrix order differs from the creation order: restore the
	// indexing of the list by global index
	sort.Slice(g.chokePointList, func(i, j int) bool {
		return g.chokePointList[i].index < g.chokePointList[j].index
	})
}

func (g *Graph) distance(a, b *ChokePoint) int32 {
	return g.chokePointDistanceMatrix[a.index][b.index]
}

func (g *Graph) setDistance(a, b *ChokePoint, d int32) {
	g.chokePointDistanceMatrix[a.index][b.index] = d
	g.chokePointDistanceMatrix[b.index][a.index] = d
}

func (g *Graph) path(a, b *ChokePoint) CPPath {
	return g.pathsBetweenChokePoints[a.index][b.index]
}

func (g *Graph) setPath(a, b *ChokePoint, pathAB CPPath) {
	g.pathsBetweenChokePoints[a.index][b.index] = pathAB
	reversed := make(CPPath, len(pathAB))
	for i, cp := range pathAB {
		reversed[len(pathAB)-1-i] = cp
	}
	g.pathsBetweenChokePoints[b.index][a.index] = reversed
}

// cpContext abstracts the two passes of computeChokePointDistanceMatrix:
// inside one area (no intermediate chokepoints) and through the whole
// chokepoint graph.
type cpContext interface {
	chokePoints() []*ChokePoint
	computeDistances(start *ChokePoint, targets []*ChokePoint) []int32
	intermediates() bool
}

type areaContext struct{ a *Area }

func (c areaContext) chokePoints() []*ChokePoint { return c.a.ChokePoints() }
func (c areaContext) computeDistances(start *ChokePoint, targets []*ChokePoint) []int32 {
	return c.a.computeChokePointDistances(start, targets)
}
func (c areaContext) intermediates() bool { return false }

type graphContext struct{ g *Graph }

func (c graphContext) chokePoints() []*ChokePoint { return c.g.chokePointList }
func (c graphContext) computeDistances(start *ChokePoint, targets []*ChokePoint) []int32 {
	return c.g.computeDistances(start, targets)
}
func (c graphContext) intermediates() bool { return true }

// computeChokePointDistanceMatrix fills the distance and path matrices:
// first the distances inside each area, then the distances through
// connected areas; finally the accessibility and group information is
// refreshed. Called once by Initialize, and again by the blocking-neutral
// destruction hook when automatic path updates are enabled.
func (g *Graph) computeChokePointDistanceMatrix() {
	n := len(g.chokePointList)
	g.chokePointDistanceMatrix = make([][]int32, n)
	g.pathsBetweenChokePoints = make([][]CPPath, n)
	for i := 0; i < n; i++ {
		row := make([]int32, n)
		for j := range row {
			row[j] = -1
		}
		g.chokePointDistanceMatrix[i] = row
		g.pathsBetweenChokePoints[i] = make([]CPPath, n)
	}

	for i := range g.areas {
		g.computeChokePointDistances(areaContext{&g.areas[i]})
	}
	g.computeChokePointDistances(graphContext{g})

	for _, cp := range g.chokePointList {
		g.setDistance(cp, cp, 0)
		g.setPath(cp, cp, CPPath{cp})
	}

	for i := range g.areas {
		g.areas[i].updateAccessibleNeighbours()
	}
	g.updateGroupIDs()
}

// computeChokePointDistances runs one Dijkstra per chokepoint of the
// context against the chokepoints before it (the matrices are symmetric)
// and records every strict improvement, with its path.
func (g *Graph) computeChokePointDistances(ctx cpContext) {
	for _, start := range ctx.chokePoints() {
		var targets []*ChokePoint
		for _, cp := range ctx.chokePoints() {
			if cp == start {
				break // breaks symmetry
			}
			targets = append(targets, cp)
		}
		if len(targets) == 0 {
			continue
		}

		distToTargets := ctx.computeDistances(start, targets)
		for i, target := range targets {
			newDist := distToTargets[i]
			existingDist := g.distance(start, target)
			if newDist <= 0 || (existingDist != -1 && newDist >= existingDist) {
				continue
			}
			g.setDistance(start, target, newDist)

			path := CPPath{start, target}
			if ctx.intermediates() {
				// the intermediate chokepoints were set by
				// computeDistances through pathBackTrace; collect them in
				// reverse order
				for prev := target.pathBackTrace; prev != start; prev = prev.pathBackTrace {
					path = append(path, nil)
					copy(path[2:], path[1:])
					path[1] = prev
				}
			}
			g.setPath(start, target, path)
		}
	}
}

// computeDistances runs a Dijkstra over the chokepoint graph, where the
// edges are the intra-area distances. Blocked chokepoints relax their
// neighbours only as the start node. Unreached targets get distance 0.
func (g *Graph) computeDistances(start *ChokePoint, targets []*ChokePoint) []int32 {
	distances := make([]int32, len(targets))
	n := int32(len(g.chokePointList))

	marked := newBitset(n)
	best := make([]int32, n)
	for i := range best {
		best[i] = -1
	}
	best[start.index] = 0

	q := newNodeQueue(n + 1)
	q.push(&pathNode{Total: 0, Index: start.index})

	remaining := len(targets)
	for !q.empty() {
		nd := q.pop()
		if marked.get(nd.Index) {
			continue // stale duplicate
		}
		marked.set(nd.Index)
		current := g.chokePointList[nd.Index]

		for i, target := range targets {
			if target == current {
				distances[i] = nd.Total
				remaining--
			}
		}
		if remaining == 0 {
			break
		}

		// a blocked chokepoint is not a transit hub
		if current.blocked && current != start {
			continue
		}

		for _, area := range current.areas {
			for _, next := range area.ChokePoints() {
				if next == current || marked.get(next.index) {
					continue
				}
				edge := g.distance(current, next)
				if edge < 0 {
					continue
				}
				newDist := nd.Total + edge
				if best[next.index] == -1 || newDist < best[next.index] {
					best[next.index] = newDist
					next.pathBackTrace = current
					q.push(&pathNode{Total: newDist, Index: next.index})
				}
			}
		}
	}
	return distances
}

// updateGroupIDs assigns one group id per connected component of the
// accessible-neighbours relation.
func (g *Graph) updateGroupIDs() {
	for i := range g.areas {
		g.areas[i].groupID = 0
	}
	nextGroupID := GroupID(1)
	for i := range g.areas {
		if g.areas[i].groupID != 0 {
			continue
		}
		toVisit := []*Area{&g.areas[i]}
		for len(toVisit) > 0 {
			current := toVisit[len(toVisit)-1]
			toVisit = toVisit[:len(toVisit)-1]
			current.groupID = nextGroupID
			for _, next := range current.accessibleNeighbours {
				if next.groupID == 0 {
					toVisit = append(toVisit, next)
				}
			}
		}
		nextGroupID++
	}
}

// collectInformation assigns the resources to their main area and the
// tile aggregates to the areas.
func (g *Graph) collectInformation() {
	m := g.m
	for _, n := range m.minerals {
		if a := g.mainArea(n.topLeft, n.size); a != nil {
			a.addMineral(n)
		}
	}
	for _, n := range m.geysers {
		if a := g.mainArea(n.topLeft, n.size); a != nil {
			a.addGeyser(n)
		}
	}
	for y := int32(0); y < m.size.Y; y++ {
		for x := int32(0); x < m.size.X; x++ {
			t := TilePosition{x, y}
			tile := m.tile(t)
			if id := tile.AreaID(); id >= 1 && int(id) <= len(g.areas) {
				g.area(id).addTileInformation(t, tile)
			}
		}
	}
}

// createBases runs the base placement of every area.
func (g *Graph) createBases() {
	g.baseCount = 0
	for i := range g.areas {
		g.areas[i].createBases()
		g.baseCount += len(g.areas[i].bases)
	}
}

func (g *Graph) onMineralDestroyed(n *Neutral) {
	// blocking minerals of a base may come from a neighbouring area:
	// inspect them all
	for i := range g.areas {
		g.areas[i].onMineralDestroyed(n)
	}
}
