package bwem

// Base is a suggested command center location in an area, with the
// resources assigned to it. Each resource of the map belongs to at most
// one base.
type Base struct {
	area *Area

	location TilePosition // top left tile of the command center
	center   Position

	minerals []*Neutral
	geysers  []*Neutral

	// blockingMinerals are the low-amount mineral patches overlapping the
	// command center surroundings: they must be cleared before building.
	blockingMinerals []*Neutral

	starting bool
}

func newBase(a *Area, location TilePosition, assigned, blockingMinerals []*Neutral) Base {
	b := Base{
		area:             a,
		location:         location,
		center:           baseCenter(location),
		blockingMinerals: blockingMinerals,
	}
	for _, r := range assigned {
		if r.IsMineral() {
			b.minerals = append(b.minerals, r)
		} else {
			b.geysers = append(b.geysers, r)
		}
	}
	return b
}

func baseCenter(location TilePosition) Position {
	return Position{
		location.X*pixelsPerTile + commandCenterSize.X*pixelsPerTile/2,
		location.Y*pixelsPerTile + commandCenterSize.Y*pixelsPerTile/2,
	}
}

// Area returns the area owning this base.
func (b *Base) Area() *Area { return b.area }

// Location returns the tile position of the command center.
func (b *Base) Location() TilePosition { return b.location }

// Center returns the center of the command center, in pixels.
func (b *Base) Center() Position { return b.center }

// Minerals returns the mineral patches assigned to this base.
func (b *Base) Minerals() []*Neutral { return b.minerals }

// Geysers returns the geysers assigned to this base.
func (b *Base) Geysers() []*Neutral { return b.geysers }

// BlockingMinerals returns the low-amount minerals overlapping the
// location.
func (b *Base) BlockingMinerals() []*Neutral { return b.blockingMinerals }

// Starting reports whether this base sits on a starting location.
func (b *Base) Starting() bool { return b.starting }

func (b *Base) setStartingLocation(location TilePosition) {
	b.starting = true
	b.location = location
	b.center = baseCenter(location)
}

func (b *Base) onMineralDestroyed(n *Neutral) {
	b.minerals = removeNeutralFrom(b.minerals, n)
	b.blockingMinerals = removeNeutralFrom(b.blockingMinerals, n)
}

// computeBaseLocationScore sums the potential field over the command
// center footprint at location, or returns -1 when the footprint covers a
// non-buildable tile, a forbidden tile, a tile of another area or a
// static building.
func (a *Area) computeBaseLocationScore(location TilePosition) int32 {
	m := a.graph.m
	sum := int32(0)
	for dy := int32(0); dy < commandCenterSize.Y; dy++ {
		for dx := int32(0); dx < commandCenterSize.X; dx++ {
			tile := m.tile(TilePosition{location.X + dx, location.Y + dy})
			if !tile.Buildable() {
				return -1
			}
			if tile.internalData == -1 {
				return -1 // too close to a resource
			}
			if tile.AreaID() != a.id {
				return -1
			}
			if n := tile.Neutral(); n != nil && n.IsStaticBuilding() {
				return -1
			}
			sum += tile.internalData
		}
	}
	return sum
}

// validateBaseLocation rejects locations with a geyser or a real mineral
// patch in the surroundings of the command center, and locations too
// close to an existing base of the area. Low-amount minerals in the
// surroundings are returned as blocking minerals.
func (a *Area) validateBaseLocation(location TilePosition) ([]*Neutral, bool) {
	m := a.graph.m
	var blockingMinerals []*Neutral

	for dy := int32(-3); dy < commandCenterSize.Y+3; dy++ {
		for dx := int32(-3); dx < commandCenterSize.X+3; dx++ {
			t := TilePosition{location.X + dx, location.Y + dy}
			if !m.Valid(t) {
				continue
			}
			n := m.tile(t).Neutral()
			if n == nil {
				continue
			}
			if n.IsGeyser() {
				return nil, false
			}
			if n.IsMineral() {
				if n.InitialAmount() <= 8 {
					blockingMinerals = append(blockingMinerals, n)
				} else {
					return nil, false
				}
			}
		}
	}

	for i := range a.bases {
		other := a.bases[i].location
		if roundedDist(other.X-location.X, other.Y-location.Y) < minTilesBetweenBases {
			return nil, false
		}
	}
	return blockingMinerals, true
}

// createBases repeatedly places the best-scored valid command center
// location among the remaining resources of the area, assigns the nearby
// resources to it exclusively, and stops when no valid positive-score
// location remains.
func (a *Area) createBases() {
	m := a.graph.m
	dimCC := commandCenterSize

	var remaining []*Neutral
	for _, n := range a.minerals {
		if n.InitialAmount() >= mineralMinInitialAmountForBase && !n.Blocking() {
			remaining = append(remaining, n)
		}
	}
	for _, n := range a.geysers {
		if n.InitialAmount() >= geyserMinInitialAmountForBase && !n.Blocking() {
			remaining = append(remaining, n)
		}
	}

	for len(remaining) > 0 {
		// 1) the search bounding box: no need to search far from the
		// remaining resources
		topLeftResources := TilePosition{maxInt32, maxInt32}
		bottomRightResources := TilePosition{minInt32, minInt32}
		for _, r := range remaining {
			topLeftResources.X = iMin32(topLeftResources.X, r.TopLeft().X)
			topLeftResources.Y = iMin32(topLeftResources.Y, r.TopLeft().Y)
			bottomRightResources.X = iMax32(bottomRightResources.X, r.BottomRight().X)
			bottomRightResources.Y = iMax32(bottomRightResources.Y, r.BottomRight().Y)
		}
		topLeftSearch := TilePosition{
			iMax32(topLeftResources.X-dimCC.X-maxTilesBetweenCommandCenterAndResources, 0),
			iMax32(topLeftResources.Y-dimCC.Y-maxTilesBetweenCommandCenterAndResources, 0),
		}
		bottomRightSearch := TilePosition{
			iMin32(bottomRightResources.X+1+maxTilesBetweenCommandCenterAndResources, m.size.X-dimCC.X),
			iMin32(bottomRightResources.Y+1+maxTilesBetweenCommandCenterAndResources, m.size.Y-dimCC.Y),
		}

		// 2) mark the tiles with their distance from each remaining
		// resource (the potential field, additive)
		for _, r := range remaining {
			for dy := -dimCC.Y - maxTilesBetweenCommandCenterAndResources; dy < r.Size().Y+dimCC.Y+maxTilesBetweenCommandCenterAndResources; dy++ {
				for dx := -dimCC.X - maxTilesBetweenCommandCenterAndResources; dx < r.Size().X+dimCC.X+maxTilesBetweenCommandCenterAndResources; dx++ {
					t := TilePosition{r.TopLeft().X + dx, r.TopLeft().Y + dy}
					if !m.Valid(t) {
						continue
					}
					tile := m.tile(t)
					dist := (distToRectangle(t.Center(), r.TopLeft(), r.Size()) + pixelsPerTile/2) / pixelsPerTile
					score := iMax32(maxTilesBetweenCommandCenterAndResources+3-dist, 0)
					if r.IsGeyser() {
						score *= 3 // a geyser is worth several minerals
					}
					if tile.AreaID() == a.id {
						tile.internalData += score
					}
				}
			}
		}

		// 3) invalidate the 7x7 tiles around each remaining resource
		for _, r := range remaining {
			for dy := int32(-3); dy < r.Size().Y+3; dy++ {
				for dx := int32(-3); dx < r.Size().X+3; dx++ {
					t := TilePosition{r.TopLeft().X + dx, r.TopLeft().Y + dy}
					if m.Valid(t) {
						m.tile(t).internalData = -1
					}
				}
			}
		}

		// 4) search the best valid location inside the bounding box
		var bestLocation TilePosition
		bestScore := int32(0)
		var blockingMinerals []*Neutral
		for y := topLeftSearch.Y; y <= bottomRightSearch.Y; y++ {
			for x := topLeftSearch.X; x <= bottomRightSearch.X; x++ {
				location := TilePosition{x, y}
				if score := a.computeBaseLocationScore(location); score > bestScore {
					if bm, ok := a.validateBaseLocation(location); ok {
						bestScore = score
						bestLocation = location
						blockingMinerals = bm
					}
				}
			}
		}

		// 5) reset the potential field
		for _, r := range remaining {
			for dy := -dimCC.Y - maxTilesBetweenCommandCenterAndResources; dy < r.Size().Y+dimCC.Y+maxTilesBetweenCommandCenterAndResources; dy++ {
				for dx := -dimCC.X - maxTilesBetweenCommandCenterAndResources; dx < r.Size().X+dimCC.X+maxTilesBetweenCommandCenterAndResources; dx++ {
					t := TilePosition{r.TopLeft().X + dx, r.TopLeft().Y + dy}
					if m.Valid(t) {
						m.tile(t).internalData = 0
					}
				}
			}
		}

		if bestScore == 0 {
			break
		}

		// 6) create the base and assign it the nearby remaining resources
		// exclusively
		var assigned []*Neutral
		for _, r := range remaining {
			if distToRectangle(r.Pos(), bestLocation, dimCC)+2 <=
				maxTilesBetweenCommandCenterAndResources*pixelsPerTile {
				assigned = append(assigned, r)
			}
		}
		if len(assigned) == 0 {
			break // should not happen, given the scoring
		}
		kept := remaining[:0]
		for _, r := range remaining {
			isAssigned := false
			for _, ar := range assigned {
				if ar == r {
					isAssigned = true
					break
				}
			}
			if !isAssigned {
				kept = append(kept, r)
			}
		}
		remaining = kept

		a.bases = append(a.bases, newBase(a, bestLocation, assigned, blockingMinerals))
	}
}
