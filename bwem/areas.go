package bwem

import (
	"sort"

	assert "github.com/arl/assertgo"
)

// tempAreaInfo is the record of one growing area during the sweep.
// Index 0 of the temporary area list is unused, so that ids equal list
// indices.
type tempAreaInfo struct {
	id              AreaID
	top             WalkPosition
	highestAltitude Altitude
	size            int32
	valid           bool
}

func (t *tempAreaInfo) add(mini *MiniTile) {
	t.size++
	mini.setAreaID(t.id)
}

func (t *tempAreaInfo) merge(absorbed *tempAreaInfo) {
	assert.True(t.valid && absorbed.valid && t.size >= absorbed.size, "merge: invalid temp areas")
	t.size += absorbed.size
	absorbed.valid = false
}

// findNeighboringAreas returns up to two distinct positive area ids among
// the 4-neighbours of p: first is the first one encountered, second the
// smallest of the other distinct ones.
func (m *Map) findNeighboringAreas(p WalkPosition) (first, second AreaID) {
	for _, delta := range walkDeltas4 {
		w := p.Add(delta)
		if !m.ValidWalk(w) {
			continue
		}
		id := m.miniTile(w).AreaID()
		if id <= 0 {
			continue
		}
		if first == 0 {
			first = id
		} else if first != id {
			if second == 0 || id < second {
				second = id
			}
		}
	}
	return first, second
}

// chooseNeighboringArea alternates deterministically, per unordered area
// pair, between the two areas a frontier minitile may join.
func (m *Map) chooseNeighboringArea(a, b AreaID) AreaID {
	if a > b {
		a, b = b, a
	}
	count := m.areaPairCounter[[2]AreaID{a, b}]
	m.areaPairCounter[[2]AreaID{a, b}] = count + 1
	if count%2 == 0 {
		return a
	}
	return b
}

// replaceAreaIDs floods from p, replacing the area id of p with newID on
// the whole connected component, and rewrites the raw frontier entries
// accordingly (real ids only).
func (m *Map) replaceAreaIDs(p WalkPosition, newID AreaID) {
	origin := m.miniTile(p)
	oldID := origin.AreaID()
	origin.replaceAreaID(newID)

	toSearch := []WalkPosition{p}
	for len(toSearch) > 0 {
		current := toSearch[len(toSearch)-1]
		toSearch = toSearch[:len(toSearch)-1]
		for _, delta := range walkDeltas4 {
			next := current.Add(delta)
			if !m.ValidWalk(next) {
				continue
			}
			nextMini := m.miniTile(next)
			if nextMini.AreaID() == oldID {
				nextMini.replaceAreaID(newID)
				toSearch = append(toSearch, next)
			}
		}
	}

	if newID > 0 {
		for i := range m.rawFrontier {
			if m.rawFrontier[i].areas[0] == oldID {
				m.rawFrontier[i].areas[0] = newID
			}
			if m.rawFrontier[i].areas[1] == oldID {
				m.rawFrontier[i].areas[1] = newID
			}
		}
	}
}

// mergeCondition decides whether the two areas meeting at pos merge into
// one.
func (m *Map) mergeCondition(cur *MiniTile, pos WalkPosition, smaller, bigger *tempAreaInfo) bool {
	if smaller.size < 80 || smaller.highestAltitude < 80 {
		return true
	}
	if int32(cur.Altitude())*10 >= int32(bigger.highestAltitude)*9 {
		return true
	}
	if int32(cur.Altitude())*10 >= int32(smaller.highestAltitude)*9 {
		return true
	}
	// around the starting locations, the areas merge more eagerly
	t := pos.Tile()
	for _, start := range m.startingLocations {
		if norm32(t.X-(start.X+2), t.Y-(start.Y+1)) <= 3 {
			return true
		}
	}
	return false
}

// computeAreas grows the areas by sweeping the walkable minitiles in
// decreasing altitude (watershed style), merging under mergeCondition and
// recording the raw frontier where two areas touch, then renumbers the
// surviving areas and aggregates the tile area ids.
func (m *Map) computeAreas() {
	type miniTileAlt struct {
		pos  WalkPosition
		mini *MiniTile
	}
	miniTiles := make([]miniTileAlt, 0, len(m.miniTiles))
	for y := int32(0); y < m.walkSize.Y; y++ {
		for x := int32(0); x < m.walkSize.X; x++ {
			w := WalkPosition{x, y}
			if mini := m.miniTile(w); mini.areaIDMissing() {
				miniTiles = append(miniTiles, miniTileAlt{w, mini})
			}
		}
	}
	// the stability fixes the processing order of equal altitudes, which
	// fixes the area frontiers
	sort.SliceStable(miniTiles, func(i, j int) bool {
		return miniTiles[i].mini.Altitude() > miniTiles[j].mini.Altitude()
	})

	tempAreas := make([]tempAreaInfo, 1) // index 0 unused, ids are > 0
	for _, cur := range miniTiles {
		first, second := m.findNeighboringAreas(cur.pos)
		switch {
		case first == 0:
			// no neighbouring area: cur starts a new area
			id := AreaID(len(tempAreas))
			tempAreas = append(tempAreas, tempAreaInfo{
				id:              id,
				top:             cur.pos,
				highestAltitude: cur.mini.Altitude(),
				valid:           true,
			})
			tempAreas[id].add(cur.mini)

		case second == 0:
			// one neighbouring area: cur extends it
			tempAreas[first].add(cur.mini)

		default:
			smaller, bigger := first, second
			if tempAreas[smaller].size > tempAreas[bigger].size {
				smaller, bigger = bigger, smaller
			}

			if m.mergeCondition(cur.mini, cur.pos, &tempAreas[smaller], &tempAreas[bigger]) {
				tempAreas[bigger].add(cur.mini)
				m.replaceAreaIDs(tempAreas[smaller].top, bigger)
				tempAreas[bigger].merge(&tempAreas[smaller])
			} else {
				// no merge: cur starts or continues the frontier
				tempAreas[m.chooseNeighboringArea(smaller, bigger)].add(cur.mini)
				m.rawFrontier = append(m.rawFrontier, rawFrontierEntry{[2]AreaID{first, second}, cur.pos})
			}
		}
	}

	// frontier entries whose two sides later merged are no frontier
	kept := m.rawFrontier[:0]
	for _, f := range m.rawFrontier {
		if f.areas[0] != f.areas[1] {
			kept = append(kept, f)
		}
	}
	m.rawFrontier = kept

	m.createAreas(tempAreas)

	for y := int32(0); y < m.size.Y; y++ {
		for x := int32(0); x < m.size.X; x++ {
			m.setAreaIDInTile(TilePosition{x, y})
		}
	}
}

// createAreas renumbers the surviving temporary areas: areas of at least
// areaMinMiniTiles minitiles get contiguous ids from 1, smaller ones get
// distinct negative fragment ids from -2 downwards.
func (m *Map) createAreas(tempAreas []tempAreaInfo) {
	type areaSeed struct {
		top  WalkPosition
		size int32
	}
	var seeds []areaSeed

	newAreaID := AreaID(1)
	newTinyAreaID := AreaID(-2)
	for i := 1; i < len(tempAreas); i++ {
		ta := &tempAreas[i]
		if !ta.valid {
			continue
		}
		if ta.size >= areaMinMiniTiles {
			assert.True(newAreaID <= ta.id, "createAreas: id compaction went wrong")
			if newAreaID != ta.id {
				m.replaceAreaIDs(ta.top, newAreaID)
			}
			seeds = append(seeds, areaSeed{ta.top, ta.size})
			newAreaID++
		} else {
			m.replaceAreaIDs(ta.top, newTinyAreaID)
			newTinyAreaID--
		}
	}

	m.graph.areas = make([]Area, 0, len(seeds))
	for i, seed := range seeds {
		m.graph.areas = append(m.graph.areas, newArea(m.graph, AreaID(i+1), seed.top, seed.size))
	}
}
