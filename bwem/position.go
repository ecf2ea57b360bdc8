package bwem

import "github.com/arl/math32"

// The map is seen at three scales, each with its own vector type:
// positions (1 pixel), walk positions (8x8 pixel minitiles) and tile
// positions (32x32 pixel tiles). A tile covers 4x4 minitiles. Conversions
// between scales are always explicit.
const (
	pixelsPerWalkTile = 8
	pixelsPerTile     = 32
	walkTilesPerTile  = 4
)

// Position is a point expressed in pixels.
type Position struct {
	X, Y int32
}

// WalkPosition is a point expressed in minitiles (8x8 pixels).
type WalkPosition struct {
	X, Y int32
}

// TilePosition is a point expressed in tiles (32x32 pixels).
type TilePosition struct {
	X, Y int32
}

// Walk returns the walk position of the minitile containing p.
func (p Position) Walk() WalkPosition {
	return WalkPosition{p.X / pixelsPerWalkTile, p.Y / pixelsPerWalkTile}
}

// Tile returns the tile position of the tile containing p.
func (p Position) Tile() TilePosition {
	return TilePosition{p.X / pixelsPerTile, p.Y / pixelsPerTile}
}

func (p Position) Add(o Position) Position {
	return Position{p.X + o.X, p.Y + o.Y}
}

// Pixel returns the top-left pixel of the minitile w.
func (w WalkPosition) Pixel() Position {
	return Position{w.X * pixelsPerWalkTile, w.Y * pixelsPerWalkTile}
}

// Center returns the center pixel of the minitile w.
func (w WalkPosition) Center() Position {
	return Position{w.X*pixelsPerWalkTile + pixelsPerWalkTile/2, w.Y*pixelsPerWalkTile + pixelsPerWalkTile/2}
}

// Tile returns the tile position of the tile containing w.
func (w WalkPosition) Tile() TilePosition {
	return TilePosition{w.X / walkTilesPerTile, w.Y / walkTilesPerTile}
}

func (w WalkPosition) Add(o WalkPosition) WalkPosition {
	return WalkPosition{w.X + o.X, w.Y + o.Y}
}

// Pixel returns the top-left pixel of the tile t.
func (t TilePosition) Pixel() Position {
	return Position{t.X * pixelsPerTile, t.Y * pixelsPerTile}
}

// Center returns the center pixel of the tile t.
func (t TilePosition) Center() Position {
	return Position{t.X*pixelsPerTile + pixelsPerTile/2, t.Y*pixelsPerTile + pixelsPerTile/2}
}

// Walk returns the walk position of the top-left minitile of the tile t.
func (t TilePosition) Walk() WalkPosition {
	return WalkPosition{t.X * walkTilesPerTile, t.Y * walkTilesPerTile}
}

func (t TilePosition) Add(o TilePosition) TilePosition {
	return TilePosition{t.X + o.X, t.Y + o.Y}
}

func (t TilePosition) Sub(o TilePosition) TilePosition {
	return TilePosition{t.X - o.X, t.Y - o.Y}
}

const (
	maxInt32 = int32(^uint32(0) >> 1)
	minInt32 = -maxInt32 - 1
)

func iMin32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func iMax32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func iAbs32(a int32) int32 {
	if a < 0 {
		return -a
	}
	return a
}

// queenWiseDist is the Chebyshev distance between two points expressed by
// their deltas: max(|dx|, |dy|).
func queenWiseDist(dx, dy int32) int32 {
	return iMax32(iAbs32(dx), iAbs32(dy))
}

// norm32 is the euclidean norm of (dx, dy) as a float32.
func norm32(dx, dy int32) float32 {
	return math32.Sqrt(math32.Sqr(float32(dx)) + math32.Sqr(float32(dy)))
}

// roundedDist is the euclidean norm of (dx, dy) rounded with the 0.5 + x
// truncation (round half toward positive infinity). Callers must not switch
// it to a symmetric rounding: small rounding changes shift area frontiers
// by one minitile.
func roundedDist(dx, dy int32) int32 {
	return int32(0.5 + norm32(dx, dy))
}

// approxDist is the approximate pixel distance between a and b.
func approxDist(a, b Position) int32 {
	return roundedDist(a.X-b.X, a.Y-b.Y)
}

// distToRectangle returns the approximate pixel distance between a and the
// rectangle of tiles at topLeft of the given size. Returns 0 if a lies
// inside the rectangle.
func distToRectangle(a Position, topLeft, size TilePosition) int32 {
	tl := topLeft.Pixel()
	br := Position{(topLeft.X+size.X)*pixelsPerTile - 1, (topLeft.Y+size.Y)*pixelsPerTile - 1}

	if a.X >= tl.X && a.X <= br.X {
		if a.Y > br.Y {
			return a.Y - br.Y
		}
		if a.Y < tl.Y {
			return tl.Y - a.Y
		}
		return 0
	}
	if a.Y >= tl.Y && a.Y <= br.Y {
		if a.X > br.X {
			return a.X - br.X
		}
		return tl.X - a.X
	}
	if a.X < tl.X {
		if a.Y < tl.Y {
			return roundedDist(tl.X-a.X, tl.Y-a.Y)
		}
		return roundedDist(tl.X-a.X, a.Y-br.Y)
	}
	if a.Y < tl.Y {
		return roundedDist(a.X-br.X, tl.Y-a.Y)
	}
	return roundedDist(a.X-br.X, a.Y-br.Y)
}

func cross64(o, a, b Position) int64 {
	return int64(a.X-o.X)*int64(b.Y-o.Y) - int64(a.Y-o.Y)*int64(b.X-o.X)
}

func onSegment(o, a, b Position) bool {
	return iMin32(o.X, b.X) <= a.X && a.X <= iMax32(o.X, b.X) &&
		iMin32(o.Y, b.Y) <= a.Y && a.Y <= iMax32(o.Y, b.Y)
}

// segmentsIntersect reports whether segments [a, b] and [c, d] intersect,
// endpoints included.
func segmentsIntersect(a, b, c, d Position) bool {
	d1 := cross64(c, d, a)
	d2 := cross64(c, d, b)
	d3 := cross64(a, b, c)
	d4 := cross64(a, b, d)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	switch {
	case d1 == 0 && onSegment(c, a, d):
		return true
	case d2 == 0 && onSegment(c, b, d):
		return true
	case d3 == 0 && onSegment(a, c, b):
		return true
	case d4 == 0 && onSegment(a, d, b):
		return true
	}
	return false
}
