package bwem

import assert "github.com/arl/assertgo"

var walkDeltas4 = [...]WalkPosition{{0, -1}, {-1, 0}, {1, 0}, {0, 1}}

var walkDeltas8 = [...]WalkPosition{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// loadData ingests the raw grids.
//
// A minitile is walkable iff it is walkable in the raw data and none of
// its in-map 8-neighbours is raw-unwalkable (thin paths are suppressed),
// unless some covering tile is buildable, which forces walkability back.
func (m *Map) loadData(data TerrainData) error {
	raw := make([]bool, len(m.miniTiles))
	for y := int32(0); y < m.walkSize.Y; y++ {
		for x := int32(0); x < m.walkSize.X; x++ {
			w := WalkPosition{x, y}
			raw[m.walkIndex(w)] = data.Walkable(w)
		}
	}

	for y := int32(0); y < m.walkSize.Y; y++ {
		for x := int32(0); x < m.walkSize.X; x++ {
			w := WalkPosition{x, y}
			walkable := raw[m.walkIndex(w)]
			if walkable {
				for _, delta := range walkDeltas8 {
					n := w.Add(delta)
					if m.ValidWalk(n) && !raw[m.walkIndex(n)] {
						walkable = false
						break
					}
				}
			}
			m.miniTile(w).setWalkable(walkable)
		}
	}

	for y := int32(0); y < m.size.Y; y++ {
		for x := int32(0); x < m.size.X; x++ {
			t := TilePosition{x, y}
			tile := m.tile(t)

			h := data.GroundHeight(t)
			if h < 0 || h > 4 {
				return ErrInvalidMapData
			}
			tile.setGroundHeight(GroundHeight(h / 2))
			if h&1 != 0 {
				tile.setDoodad()
			}

			if data.Buildable(t) {
				tile.setBuildable()
				// buildable tiles imply walkability of their minitiles
				for dy := int32(0); dy < walkTilesPerTile; dy++ {
					for dx := int32(0); dx < walkTilesPerTile; dx++ {
						w := WalkPosition{t.X*walkTilesPerTile + dx, t.Y*walkTilesPerTile + dy}
						mini := m.miniTile(w)
						if !mini.Walkable() {
							mini.setWalkable(true)
						}
					}
				}
			}
		}
	}
	return nil
}

// decideSeasOrLakes resolves every unwalkable component into a sea or a
// lake. A component is a lake when it is small in size and span and does
// not come close to the map edge.
func (m *Map) decideSeasOrLakes() {
	for y := int32(0); y < m.walkSize.Y; y++ {
		for x := int32(0); x < m.walkSize.X; x++ {
			origin := WalkPosition{x, y}
			if !m.miniTile(origin).seaOrLake() {
				continue
			}

			toSearch := []WalkPosition{origin}
			seaExtent := []WalkPosition{origin}
			m.miniTile(origin).setSea()
			topLeft := origin
			bottomRight := origin
			for len(toSearch) > 0 {
				current := toSearch[len(toSearch)-1]
				toSearch = toSearch[:len(toSearch)-1]
				topLeft.X = iMin32(topLeft.X, current.X)
				topLeft.Y = iMin32(topLeft.Y, current.Y)
				bottomRight.X = iMax32(bottomRight.X, current.X)
				bottomRight.Y = iMax32(bottomRight.Y, current.Y)

				for _, delta := range walkDeltas4 {
					next := current.Add(delta)
					if !m.ValidWalk(next) {
						continue
					}
					nextMini := m.miniTile(next)
					if nextMini.seaOrLake() {
						toSearch = append(toSearch, next)
						nextMini.setSea()
						seaExtent = append(seaExtent, next)
					}
				}
			}

			if len(seaExtent) <= lakeMaxMiniTiles &&
				bottomRight.X-topLeft.X <= lakeMaxWidthInMiniTiles &&
				bottomRight.Y-topLeft.Y <= lakeMaxWidthInMiniTiles &&
				topLeft.X >= 2 && topLeft.Y >= 2 &&
				bottomRight.X < m.walkSize.X-2 && bottomRight.Y < m.walkSize.Y-2 {
				for _, w := range seaExtent {
					m.miniTile(w).setLake()
				}
			}
		}
	}
}

// initializeNeutrals registers the neutral units of the snapshot. Invalid
// candidates (out of map footprint, stacking mismatch, stacking above a
// geyser) are diagnosed and ignored.
func (m *Map) initializeNeutrals(data TerrainData) {
	for _, u := range data.Neutrals() {
		if u.Type == UnitZergEgg {
			// eggs matter only when they wrap a pit-door special building
			if u.WrappedType != UnitSpecialPitDoor && u.WrappedType != UnitSpecialRightPitDoor {
				continue
			}
			u.Type = u.WrappedType
		}
		if u.Type == UnitSpecialRightPitDoor {
			u.TopLeft.X++
		}

		var kind NeutralKind
		switch u.Type {
		case UnitMineralField:
			kind = KindMineral
		case UnitVespeneGeyser:
			kind = KindGeyser
		default:
			kind = KindStaticBuilding
		}

		if u.Size.X <= 0 || u.Size.Y <= 0 ||
			!m.Valid(u.TopLeft) ||
			!m.Valid(TilePosition{u.TopLeft.X + u.Size.X - 1, u.TopLeft.Y + u.Size.Y - 1}) {
			m.ctx.Warningf("ignoring neutral %d: footprint outside the map", u.ID)
			continue
		}

		n := newNeutral(m, kind, u)
		if err := n.putOnTiles(); err != nil {
			m.ctx.Warningf("ignoring %v", err)
			continue
		}
		m.neutrals = append(m.neutrals, n)
		switch kind {
		case KindMineral:
			m.minerals = append(m.minerals, n)
		case KindGeyser:
			m.geysers = append(m.geysers, n)
		case KindStaticBuilding:
			m.staticBuildings = append(m.staticBuildings, n)
		}
	}
}

// setAreaIDInTile computes the area id aggregate of the tile at t from
// its 16 minitiles: 0 when none of them has an id, the common id when all
// the tagged ones agree, -1 otherwise.
func (m *Map) setAreaIDInTile(t TilePosition) {
	tile := m.tile(t)
	assert.True(tile.AreaID() == 0, "setAreaIDInTile: tile area id already set")

	for dy := int32(0); dy < walkTilesPerTile; dy++ {
		for dx := int32(0); dx < walkTilesPerTile; dx++ {
			w := WalkPosition{t.X*walkTilesPerTile + dx, t.Y*walkTilesPerTile + dy}
			if id := m.miniTile(w).AreaID(); id != 0 {
				if tile.AreaID() == 0 {
					tile.setAreaID(id)
				} else if tile.AreaID() != id {
					tile.setAreaID(-1)
					return
				}
			}
		}
	}
}

// setMinAltitudeInTiles computes the tile minimum-altitude aggregates.
func (m *Map) setMinAltitudeInTiles() {
	for y := int32(0); y < m.size.Y; y++ {
		for x := int32(0); x < m.size.X; x++ {
			minAltitude := Altitude(32767)
			for dy := int32(0); dy < walkTilesPerTile; dy++ {
				for dx := int32(0); dx < walkTilesPerTile; dx++ {
					w := WalkPosition{x*walkTilesPerTile + dx, y*walkTilesPerTile + dy}
					if a := m.miniTile(w).Altitude(); a < minAltitude {
						minAltitude = a
					}
				}
			}
			m.tile(TilePosition{x, y}).setMinAltitude(minAltitude)
		}
	}
}
