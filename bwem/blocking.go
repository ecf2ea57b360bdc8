package bwem

// outerMiniTileBorder returns the ring of minitile positions surrounding
// the given walk rectangle. Positions may lie outside the map.
func outerMiniTileBorder(topLeft, size WalkPosition) []WalkPosition {
	tl := WalkPosition{topLeft.X - 1, topLeft.Y - 1}
	br := WalkPosition{topLeft.X + size.X, topLeft.Y + size.Y}

	border := make([]WalkPosition, 0, 2*(br.X-tl.X+1)+2*(br.Y-tl.Y-1))
	for x := tl.X; x <= br.X; x++ {
		border = append(border, WalkPosition{x, tl.Y})
	}
	for y := tl.Y + 1; y <= br.Y; y++ {
		border = append(border, WalkPosition{br.X, y})
	}
	for x := br.X - 1; x >= tl.X; x-- {
		border = append(border, WalkPosition{x, br.Y})
	}
	for y := br.Y - 1; y >= tl.Y+1; y-- {
		border = append(border, WalkPosition{tl.X, y})
	}
	return border
}

// adjoins8SomeLakeOrNeutral reports whether the 8-neighbourhood of w
// touches a lake minitile or a tile occupied by a neutral.
func (m *Map) adjoins8SomeLakeOrNeutral(w WalkPosition) bool {
	for _, delta := range walkDeltas8 {
		next := w.Add(delta)
		if !m.ValidWalk(next) {
			continue
		}
		if m.tile(next.Tile()).Neutral() != nil {
			return true
		}
		if m.miniTile(next).Lake() {
			return true
		}
	}
	return false
}

// processBlockingNeutrals decides, for every static building and mineral,
// whether it blocks the path between at least two walkable pockets of its
// neighbourhood ("true doors"). Blocking neutrals get their minitiles
// stamped with the blocked sentinel so the area sweep will not merge
// across them.
func (m *Map) processBlockingNeutrals() {
	candidates := make([]*Neutral, 0, len(m.staticBuildings)+len(m.minerals))
	candidates = append(candidates, m.staticBuildings...)
	candidates = append(candidates, m.minerals...)

	for _, candidate := range candidates {
		// only the bottom of each stack is examined: stacked neutrals
		// share their footprint
		if m.tile(candidate.topLeft).Neutral() != candidate {
			continue
		}

		// 1) the outer border of the footprint, less the positions that
		// are invalid, unwalkable or occupied by another neutral
		border := outerMiniTileBorder(
			candidate.topLeft.Walk(),
			WalkPosition{candidate.size.X * walkTilesPerTile, candidate.size.Y * walkTilesPerTile})
		kept := border[:0]
		for _, w := range border {
			if m.ValidWalk(w) && m.miniTile(w).Walkable() && m.tile(w.Tile()).Neutral() == nil {
				kept = append(kept, w)
			}
		}
		border = kept

		// 2) one door per set of border positions connected along the
		// surroundings of the candidate (through minitiles adjoining a
		// lake or a neutral)
		var doors []WalkPosition
		for len(border) > 0 {
			door := border[len(border)-1]
			border = border[:len(border)-1]
			doors = append(doors, door)

			visited := newBitset(m.walkSize.X * m.walkSize.Y)
			visited.set(m.walkIndex(door))
			toVisit := []WalkPosition{door}
			for len(toVisit) > 0 {
				current := toVisit[len(toVisit)-1]
				toVisit = toVisit[:len(toVisit)-1]
				for _, delta := range walkDeltas4 {
					next := current.Add(delta)
					if !m.ValidWalk(next) || visited.get(m.walkIndex(next)) {
						continue
					}
					if !m.miniTile(next).Walkable() {
						continue
					}
					if m.tile(next.Tile()).Neutral() != nil {
						continue
					}
					if !m.adjoins8SomeLakeOrNeutral(next) {
						continue
					}
					visited.set(m.walkIndex(next))
					toVisit = append(toVisit, next)
				}
			}
			kept := border[:0]
			for _, w := range border {
				if !visited.get(m.walkIndex(w)) {
					kept = append(kept, w)
				}
			}
			border = kept
		}

		// 3) a door is a true door if a flood from it through free
		// walkable minitiles reaches the size limit
		var trueDoors []WalkPosition
		for _, door := range doors {
			limit := int32(trueDoorFloodLimitMineral)
			if candidate.IsStaticBuilding() {
				limit = trueDoorFloodLimitStaticBuilding
			}

			visited := newBitset(m.walkSize.X * m.walkSize.Y)
			visited.set(m.walkIndex(door))
			visitedCount := int32(1)
			toVisit := []WalkPosition{door}
			for len(toVisit) > 0 && visitedCount < limit {
				current := toVisit[len(toVisit)-1]
				toVisit = toVisit[:len(toVisit)-1]
				for _, delta := range walkDeltas4 {
					next := current.Add(delta)
					if !m.ValidWalk(next) || visited.get(m.walkIndex(next)) {
						continue
					}
					if !m.miniTile(next).Walkable() {
						continue
					}
					if m.tile(next.Tile()).Neutral() != nil {
						continue
					}
					visited.set(m.walkIndex(next))
					visitedCount++
					toVisit = append(toVisit, next)
				}
			}
			if visitedCount >= limit {
				trueDoors = append(trueDoors, door)
			}
		}

		// 4) at least two true doors: the candidate (and everything
		// stacked on it) blocks
		if len(trueDoors) >= 2 {
			for n := m.tile(candidate.topLeft).Neutral(); n != nil; n = n.NextStacked() {
				n.setBlocking(trueDoors)
			}
			for y := candidate.topLeft.Y * walkTilesPerTile; y < (candidate.topLeft.Y+candidate.size.Y)*walkTilesPerTile; y++ {
				for x := candidate.topLeft.X * walkTilesPerTile; x < (candidate.topLeft.X+candidate.size.X)*walkTilesPerTile; x++ {
					mini := m.miniTile(WalkPosition{x, y})
					if mini.Walkable() {
						mini.setBlocked()
					}
				}
			}
		}
	}
}
