package bwem

import assert "github.com/arl/assertgo"

// GroundHeight is the game-level ground height of a tile.
type GroundHeight int8

const (
	LowGround GroundHeight = iota
	HighGround
	VeryHighGround
)

// Tile is a 32x32 pixel cell of the map, the unit used for buildability
// and most placement queries. A Tile covers 4x4 MiniTiles.
type Tile struct {
	neutral *Neutral // bottom of the stack of neutrals on this tile, if any

	// internalData is scratch storage shared by the Dijkstra runs and the
	// base-placement potential field. It is always 0 outside of those
	// computations.
	internalData int32

	minAltitude  Altitude
	areaID       AreaID
	groundHeight GroundHeight
	buildable    bool
	doodad       bool
}

// Buildable reports whether the tile is buildable. Buildable implies that
// all 16 minitiles of the tile are walkable.
func (t *Tile) Buildable() bool { return t.buildable }

// Doodad reports whether the ground height of this tile comes with a
// doodad (the parity bit of the raw ground height).
func (t *Tile) Doodad() bool { return t.doodad }

// GroundHeight returns the ground height of this tile.
func (t *Tile) GroundHeight() GroundHeight { return t.groundHeight }

// AreaID returns 0 if none of the minitiles of this tile has an area id,
// the common id if all the minitiles with an id agree (a negative fragment
// or blocked id included), and -1 if they disagree.
func (t *Tile) AreaID() AreaID { return t.areaID }

// MinAltitude returns the minimum altitude among the 16 minitiles of this
// tile.
func (t *Tile) MinAltitude() Altitude { return t.minAltitude }

// Neutral returns the bottom element of the stack of neutrals occupying
// this tile, or nil.
func (t *Tile) Neutral() *Neutral { return t.neutral }

func (t *Tile) setBuildable()                    { t.buildable = true }
func (t *Tile) setGroundHeight(h GroundHeight)   { t.groundHeight = h }
func (t *Tile) setDoodad()                       { t.doodad = true }
func (t *Tile) setMinAltitude(a Altitude)        { t.minAltitude = a }
func (t *Tile) setAreaID(id AreaID)              { t.areaID = id }
func (t *Tile) resetAreaID()                     { t.areaID = 0 }

func (t *Tile) addNeutral(n *Neutral) {
	assert.True(t.neutral == nil && n != nil, "addNeutral: tile already occupied")
	t.neutral = n
}

func (t *Tile) removeNeutral(n *Neutral) {
	assert.True(t.neutral == n, "removeNeutral: not the bottom neutral of this tile")
	t.neutral = nil
}
