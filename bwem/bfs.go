package bwem

import assert "github.com/arl/assertgo"

// bitset is a dense bit-per-cell visited mask, reallocated per search.
type bitset []uint64

func newBitset(n int32) bitset { return make(bitset, (n+63)/64) }

func (b bitset) set(i int32)      { b[i/64] |= 1 << uint(i%64) }
func (b bitset) get(i int32) bool { return b[i/64]&(1<<uint(i%64)) != 0 }

// Neighbour visit order of the breadth-first searches. The order matters:
// it decides which of several equally near minitiles is found first.
var walkSearchDeltas = [...]WalkPosition{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

var tileSearchDeltas = [...]TilePosition{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// breadthFirstSearch returns the nearest minitile from start satisfying
// findCond, expanding only through minitiles satisfying visitCond. start
// itself is checked first. Not finding any minitile is a bug in the
// caller; the search then returns start.
func (m *Map) breadthFirstSearch(start WalkPosition, findCond, visitCond func(*MiniTile, WalkPosition) bool) WalkPosition {
	if findCond(m.miniTile(start), start) {
		return start
	}

	visited := newBitset(m.walkSize.X * m.walkSize.Y)
	visited.set(m.walkIndex(start))
	toVisit := []WalkPosition{start}

	for head := 0; head < len(toVisit); head++ {
		current := toVisit[head]
		for _, delta := range walkSearchDeltas {
			next := current.Add(delta)
			if !m.ValidWalk(next) {
				continue
			}
			idx := m.walkIndex(next)
			if visited.get(idx) {
				continue
			}
			nextMini := m.miniTile(next)
			if findCond(nextMini, next) {
				return next
			}
			if visitCond(nextMini, next) {
				visited.set(idx)
				toVisit = append(toVisit, next)
			}
		}
	}
	assert.True(false, "breadthFirstSearch: no minitile found from (%d, %d)", start.X, start.Y)
	return start
}

// breadthFirstSearchTiles is the tile-level twin of breadthFirstSearch.
func (m *Map) breadthFirstSearchTiles(start TilePosition, findCond, visitCond func(*Tile, TilePosition) bool) TilePosition {
	if findCond(m.tile(start), start) {
		return start
	}

	visited := newBitset(m.size.X * m.size.Y)
	visited.set(m.tileIndex(start))
	toVisit := []TilePosition{start}

	for head := 0; head < len(toVisit); head++ {
		current := toVisit[head]
		for _, delta := range tileSearchDeltas {
			next := current.Add(delta)
			if !m.Valid(next) {
				continue
			}
			idx := m.tileIndex(next)
			if visited.get(idx) {
				continue
			}
			nextTile := m.tile(next)
			if findCond(nextTile, next) {
				return next
			}
			if visitCond(nextTile, next) {
				visited.set(idx)
				toVisit = append(toVisit, next)
			}
		}
	}
	assert.True(false, "breadthFirstSearchTiles: no tile found from (%d, %d)", start.X, start.Y)
	return start
}
