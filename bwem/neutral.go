package bwem

import (
	"fmt"

	assert "github.com/arl/assertgo"
)

// NeutralKind discriminates the three variants of Neutral.
type NeutralKind int8

const (
	KindMineral NeutralKind = iota
	KindGeyser
	KindStaticBuilding
)

// Neutral is a static neutral unit of the map: a mineral patch, a vespene
// geyser or a static building. Neutrals sharing the exact same footprint
// form a stack, a singly linked list rooted at the bottom element, which
// is the one the tiles reference.
type Neutral struct {
	m *Map

	kind     NeutralKind
	id       int32
	unitType UnitType

	topLeft TilePosition
	size    TilePosition
	pos     Position // center, in pixels

	// initialAmount is meaningful for minerals and geysers only.
	initialAmount int32

	nextStacked *Neutral

	// blockedDoors is non-empty iff this neutral is blocking: one walk
	// position per "true door" found by the blocking analysis.
	blockedDoors []WalkPosition
}

func newNeutral(m *Map, kind NeutralKind, u UnitData) *Neutral {
	center := Position{
		u.TopLeft.X*pixelsPerTile + u.Size.X*pixelsPerTile/2,
		u.TopLeft.Y*pixelsPerTile + u.Size.Y*pixelsPerTile/2,
	}
	return &Neutral{
		m:             m,
		kind:          kind,
		id:            u.ID,
		unitType:      u.Type,
		topLeft:       u.TopLeft,
		size:          u.Size,
		pos:           center,
		initialAmount: u.Resources,
	}
}

// Kind returns the variant of this neutral.
func (n *Neutral) Kind() NeutralKind { return n.kind }

// ID returns the unit id this neutral was created from.
func (n *Neutral) ID() int32 { return n.id }

// Type returns the unit type this neutral was created from.
func (n *Neutral) Type() UnitType { return n.unitType }

// TopLeft returns the top left tile of the footprint.
func (n *Neutral) TopLeft() TilePosition { return n.topLeft }

// BottomRight returns the bottom right tile of the footprint (inclusive).
func (n *Neutral) BottomRight() TilePosition {
	return TilePosition{n.topLeft.X + n.size.X - 1, n.topLeft.Y + n.size.Y - 1}
}

// Size returns the tile size of the footprint.
func (n *Neutral) Size() TilePosition { return n.size }

// Pos returns the center of the footprint, in pixels.
func (n *Neutral) Pos() Position { return n.pos }

// InitialAmount returns the initial resource amount. Zero for static
// buildings.
func (n *Neutral) InitialAmount() int32 { return n.initialAmount }

func (n *Neutral) IsMineral() bool        { return n.kind == KindMineral }
func (n *Neutral) IsGeyser() bool         { return n.kind == KindGeyser }
func (n *Neutral) IsStaticBuilding() bool { return n.kind == KindStaticBuilding }

// NextStacked returns the next neutral stacked above this one, or nil.
func (n *Neutral) NextStacked() *Neutral { return n.nextStacked }

// LastStacked returns the top element of the stack this neutral belongs
// to (possibly n itself).
func (n *Neutral) LastStacked() *Neutral {
	top := n
	for top.nextStacked != nil {
		top = top.nextStacked
	}
	return top
}

// Blocking reports whether this neutral partitions its local
// neighbourhood in at least two walkable pockets ("true doors").
func (n *Neutral) Blocking() bool { return len(n.blockedDoors) > 0 }

// BlockedAreas returns the Areas reachable from the true doors of this
// blocking neutral. Empty unless Blocking.
func (n *Neutral) BlockedAreas() []*Area {
	var areas []*Area
	for _, w := range n.blockedDoors {
		a := n.m.NearestArea(w)
		if a == nil {
			continue
		}
		dup := false
		for _, b := range areas {
			if b == a {
				dup = true
				break
			}
		}
		if !dup {
			areas = append(areas, a)
		}
	}
	return areas
}

func (n *Neutral) setBlocking(trueDoors []WalkPosition) {
	assert.True(len(n.blockedDoors) == 0 && len(trueDoors) > 0, "setBlocking: invalid door list")
	n.blockedDoors = append([]WalkPosition(nil), trueDoors...)
}

// putOnTiles registers n on the tiles of its footprint, or stacks it on a
// neutral with the exact same footprint. A candidate whose footprint
// partially overlaps another neutral, whose type differs from the stack's,
// or which would stack above a geyser, is rejected.
func (n *Neutral) putOnTiles() error {
	assert.True(n.nextStacked == nil, "putOnTiles: already placed")

	if bottom := n.m.tile(n.topLeft).Neutral(); bottom != nil {
		if bottom.topLeft != n.topLeft || bottom.size != n.size {
			return fmt.Errorf("neutral %d: footprint mismatch with stacked neutral %d", n.id, bottom.id)
		}
		top := bottom.LastStacked()
		if top.IsGeyser() {
			return fmt.Errorf("neutral %d: cannot stack above geyser %d", n.id, top.id)
		}
		if top.unitType != n.unitType {
			return fmt.Errorf("neutral %d: type mismatch with stacked neutral %d", n.id, top.id)
		}
		top.nextStacked = n
		return nil
	}

	for y := n.topLeft.Y; y <= n.BottomRight().Y; y++ {
		for x := n.topLeft.X; x <= n.BottomRight().X; x++ {
			if occ := n.m.tile(TilePosition{x, y}).Neutral(); occ != nil {
				return fmt.Errorf("neutral %d: partial overlap with neutral %d", n.id, occ.id)
			}
		}
	}
	for y := n.topLeft.Y; y <= n.BottomRight().Y; y++ {
		for x := n.topLeft.X; x <= n.BottomRight().X; x++ {
			n.m.tile(TilePosition{x, y}).addNeutral(n)
		}
	}
	return nil
}

// removeFromTiles unregisters n: the tiles of the footprint reference the
// next stacked neutral (if any), or become free.
func (n *Neutral) removeFromTiles() {
	bottom := n.m.tile(n.topLeft).Neutral()
	assert.True(bottom != nil, "removeFromTiles: footprint not occupied")

	if bottom == n {
		for y := n.topLeft.Y; y <= n.BottomRight().Y; y++ {
			for x := n.topLeft.X; x <= n.BottomRight().X; x++ {
				tile := n.m.tile(TilePosition{x, y})
				tile.removeNeutral(n)
				if n.nextStacked != nil {
					tile.addNeutral(n.nextStacked)
				}
			}
		}
	} else {
		prev := bottom
		for prev != nil && prev.nextStacked != n {
			prev = prev.nextStacked
		}
		assert.True(prev != nil, "removeFromTiles: neutral not in its stack")
		if prev != nil {
			prev.nextStacked = n.nextStacked
		}
	}
	n.nextStacked = nil
}
