package bwem

// Analyzer policy constants. These are not tunables: downstream
// connectivity (lakes vs seas, area frontiers, base spacing) depends on
// their exact values.
const (
	// Unit of altitude, in pixels: the side of a minitile.
	altitudeScale = 8

	// Minimum number of minitiles a temporary area needs to become a real
	// Area; smaller ones become negatively-numbered fragments.
	areaMinMiniTiles = 64

	// An unwalkable component becomes a lake only if it holds at most this
	// many minitiles...
	lakeMaxMiniTiles = 300

	// ...spans at most this many minitiles in both axes, and keeps at least
	// two minitiles between its bounding box and every map edge.
	lakeMaxWidthInMiniTiles = 8 * walkTilesPerTile

	// Queen-wise clustering threshold for the raw frontier positions of an
	// area pair: floor(sqrt(lakeMaxMiniTiles)).
	clusterMinDist = 17

	// Flood limits used to qualify a door as a true door.
	trueDoorFloodLimitStaticBuilding = 10
	trueDoorFloodLimitMineral        = 400

	// Base placement.
	maxTilesBetweenCommandCenterAndResources = 10
	minTilesBetweenBases                     = 10
	mineralMinInitialAmountForBase           = 40
	geyserMinInitialAmountForBase            = 300

	// FindBasesForStartingLocations assignment radius (queen-wise, tiles).
	maxTilesBetweenStartingLocationAndBase = 3
)

// Dijkstra edge weights over the tile grid (~1e4 per tile side).
const (
	orthogonalWeight = 10000
	diagonalWeight   = 14142
)

// commandCenterSize is the tile footprint of a command center.
var commandCenterSize = TilePosition{X: 3, Y: 2}
