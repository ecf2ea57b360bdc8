package bwem

// UnitType classifies the static neutral units the analyzer cares about.
// Anything that is neither a mineral field nor a vespene geyser is treated
// as a static building.
type UnitType int8

const (
	UnitUnknown UnitType = iota
	UnitMineralField
	UnitVespeneGeyser
	UnitStaticBuilding
	UnitSpecialPitDoor
	UnitSpecialRightPitDoor
	UnitZergEgg
)

// UnitData describes one static neutral unit of the input snapshot.
type UnitData struct {
	ID   int32
	Type UnitType

	// WrappedType is only meaningful for Zerg eggs: some maps wrap their
	// pit-door special buildings in an egg. Eggs are ignored unless they
	// wrap one of the two pit-door types.
	WrappedType UnitType

	TopLeft TilePosition
	Size    TilePosition

	// Resources is the initial resource amount, for mineral fields and
	// geysers only.
	Resources int32
}

// TerrainData is the raw map snapshot consumed by Map.Initialize. It is
// read once; the analyzer never calls back into it afterwards.
type TerrainData interface {
	// Size returns the map size in tiles. The minitile grid is 4x as
	// large in both axes.
	Size() TilePosition

	// Walkable returns the raw walkability of the minitile at w.
	Walkable(w WalkPosition) bool

	// Buildable returns the buildability of the tile at t.
	Buildable(t TilePosition) bool

	// GroundHeight returns the raw ground height (0..4) of the tile at t.
	GroundHeight(t TilePosition) int32

	// StartingLocations returns the player starting locations.
	StartingLocations() []TilePosition

	// Neutrals returns the static neutral unit descriptors.
	Neutrals() []UnitData
}

// MapData is an in-memory TerrainData, used by the text map loader, the
// command line tool and the tests.
type MapData struct {
	MapSize        TilePosition
	Walk           []bool
	Build          []bool
	Height         []int32
	StartLocations []TilePosition
	Units          []UnitData
}

// NewMapData returns a MapData of the given tile size, fully unwalkable
// and unbuildable, at ground height 0.
func NewMapData(tileW, tileH int32) *MapData {
	return &MapData{
		MapSize: TilePosition{tileW, tileH},
		Walk:    make([]bool, tileW*walkTilesPerTile*tileH*walkTilesPerTile),
		Build:   make([]bool, tileW*tileH),
		Height:  make([]int32, tileW*tileH),
	}
}

func (d *MapData) walkIndex(w WalkPosition) int32 {
	return w.Y*d.MapSize.X*walkTilesPerTile + w.X
}

func (d *MapData) tileIndex(t TilePosition) int32 {
	return t.Y*d.MapSize.X + t.X
}

// SetWalkable sets the raw walkability of the minitile at w.
func (d *MapData) SetWalkable(w WalkPosition, walkable bool) {
	d.Walk[d.walkIndex(w)] = walkable
}

// SetBuildable sets the buildability of the tile at t.
func (d *MapData) SetBuildable(t TilePosition, buildable bool) {
	d.Build[d.tileIndex(t)] = buildable
}

// SetGroundHeight sets the raw ground height (0..4) of the tile at t.
func (d *MapData) SetGroundHeight(t TilePosition, h int32) {
	d.Height[d.tileIndex(t)] = h
}

// FillWalkable sets the raw walkability of every minitile in the tile
// rectangle at topLeft of the given size.
func (d *MapData) FillWalkable(topLeft, size TilePosition, walkable bool) {
	for y := topLeft.Y * walkTilesPerTile; y < (topLeft.Y+size.Y)*walkTilesPerTile; y++ {
		for x := topLeft.X * walkTilesPerTile; x < (topLeft.X+size.X)*walkTilesPerTile; x++ {
			d.SetWalkable(WalkPosition{x, y}, walkable)
		}
	}
}

// FillBuildable sets the buildability of every tile in the rectangle at
// topLeft of the given size.
func (d *MapData) FillBuildable(topLeft, size TilePosition, buildable bool) {
	for y := topLeft.Y; y < topLeft.Y+size.Y; y++ {
		for x := topLeft.X; x < topLeft.X+size.X; x++ {
			d.SetBuildable(TilePosition{x, y}, buildable)
		}
	}
}

func (d *MapData) Size() TilePosition { return d.MapSize }

func (d *MapData) Walkable(w WalkPosition) bool { return d.Walk[d.walkIndex(w)] }

func (d *MapData) Buildable(t TilePosition) bool { return d.Build[d.tileIndex(t)] }

func (d *MapData) GroundHeight(t TilePosition) int32 { return d.Height[d.tileIndex(t)] }

func (d *MapData) StartingLocations() []TilePosition { return d.StartLocations }

func (d *MapData) Neutrals() []UnitData { return d.Units }
