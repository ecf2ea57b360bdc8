package bwem

import assert "github.com/arl/assertgo"

// Altitude is the pixel distance from a minitile to the nearest sea
// minitile, in the sense of the altitude field of the analysis. Sea
// minitiles have altitude 0; every non-sea minitile (terrain or lake) gets
// a positive altitude during computeAltitude.
type Altitude = int16

// AreaID identifies an Area of the map.
//
//  id > 0            a real Area (1..AreaCount)
//  id == 0           none: sea, lake, or unassigned yet
//  id < 0            a too-small walkable fragment (one distinct negative
//                    id per fragment, starting at -2)
//  id == blockedAreaID  walkable minitile covered by a blocking neutral
type AreaID = int16

// GroupID partitions the Areas into maximal mutually-accessible sets.
type GroupID = int16

const blockedAreaID AreaID = -32768

const (
	altitudeUnset     Altitude = -1 // not assigned yet
	altitudeSea       Altitude = 0
	altitudeSeaOrLake Altitude = 1 // transient, resolved by the sea/lake pass
)

// MiniTile is an 8x8 pixel cell of the map, the unit used for walkability,
// altitude and area segmentation. 4x4 MiniTiles form a Tile.
type MiniTile struct {
	altitude Altitude
	areaID   AreaID
	walkable bool
}

// Walkable reports whether this minitile is walkable. Unwalkability is
// contagious: the 8 neighbours of an originally-unwalkable minitile are
// unwalkable too, unless covered by a buildable tile.
func (m *MiniTile) Walkable() bool { return m.walkable }

// Altitude returns the altitude of this minitile. Callers should not use
// it before computeAltitude has run.
func (m *MiniTile) Altitude() Altitude { return m.altitude }

// AreaID returns the id of the Area this minitile belongs to, or one of
// the sentinel values documented on the AreaID type.
func (m *MiniTile) AreaID() AreaID { return m.areaID }

// Sea reports whether this minitile belongs to a sea: an unwalkable
// component large enough (or close enough to the map edge) not to be a
// lake.
func (m *MiniTile) Sea() bool { return m.altitude == altitudeSea }

// Lake reports whether this minitile belongs to a lake: a small unwalkable
// component fully enclosed in terrain. Lakes have a positive altitude but
// no Area.
func (m *MiniTile) Lake() bool { return m.altitude != altitudeSea && !m.walkable }

// Terrain reports whether this minitile is walkable terrain.
func (m *MiniTile) Terrain() bool { return m.walkable }

// Blocked reports whether this minitile is covered by a blocking neutral.
func (m *MiniTile) Blocked() bool { return m.areaID == blockedAreaID }

func (m *MiniTile) setWalkable(walkable bool) {
	m.walkable = walkable
	if walkable {
		m.altitude = altitudeUnset
	} else {
		m.altitude = altitudeSeaOrLake
	}
	m.areaID = 0
}

func (m *MiniTile) seaOrLake() bool { return m.altitude == altitudeSeaOrLake }

func (m *MiniTile) setSea() {
	assert.True(!m.walkable && m.seaOrLake(), "setSea: not a sea-or-lake minitile")
	m.altitude = altitudeSea
}

func (m *MiniTile) setLake() {
	assert.True(!m.walkable && m.Sea(), "setLake: must be tagged sea first")
	m.altitude = altitudeUnset
}

func (m *MiniTile) altitudeMissing() bool { return m.altitude == altitudeUnset }

func (m *MiniTile) setAltitude(a Altitude) {
	assert.True(m.altitudeMissing() && a > 0, "setAltitude: invalid altitude")
	m.altitude = a
}

func (m *MiniTile) areaIDMissing() bool { return m.walkable && m.areaID == 0 }

func (m *MiniTile) setAreaID(id AreaID) {
	assert.True(id > 0 && m.areaIDMissing(), "setAreaID: invalid id or already assigned")
	m.areaID = id
}

func (m *MiniTile) replaceAreaID(id AreaID) {
	assert.True(m.areaID > 0 && (id >= 1 || id <= -2), "replaceAreaID: invalid replacement")
	m.areaID = id
}

func (m *MiniTile) setBlocked() {
	assert.True(m.areaIDMissing(), "setBlocked: area id already assigned")
	m.areaID = blockedAreaID
}

func (m *MiniTile) replaceBlockedAreaID(id AreaID) {
	assert.True(m.areaID == blockedAreaID && id > 0, "replaceBlockedAreaID: not blocked")
	m.areaID = id
}
