package bwem

import "testing"

func TestPositionConversions(t *testing.T) {
	p := Position{100, 39}
	if got := p.Walk(); got != (WalkPosition{12, 4}) {
		t.Errorf("Walk() = %v, want {12 4}", got)
	}
	if got := p.Tile(); got != (TilePosition{3, 1}) {
		t.Errorf("Tile() = %v, want {3 1}", got)
	}

	w := WalkPosition{12, 4}
	if got := w.Pixel(); got != (Position{96, 32}) {
		t.Errorf("WalkPosition.Pixel() = %v, want {96 32}", got)
	}
	if got := w.Center(); got != (Position{100, 36}) {
		t.Errorf("WalkPosition.Center() = %v, want {100 36}", got)
	}
	if got := w.Tile(); got != (TilePosition{3, 1}) {
		t.Errorf("WalkPosition.Tile() = %v, want {3 1}", got)
	}

	tp := TilePosition{3, 1}
	if got := tp.Pixel(); got != (Position{96, 32}) {
		t.Errorf("TilePosition.Pixel() = %v, want {96 32}", got)
	}
	if got := tp.Walk(); got != (WalkPosition{12, 4}) {
		t.Errorf("TilePosition.Walk() = %v, want {12 4}", got)
	}
	if got := tp.Center(); got != (Position{112, 48}) {
		t.Errorf("TilePosition.Center() = %v, want {112 48}", got)
	}
}

func TestQueenWiseDist(t *testing.T) {
	tests := []struct {
		dx, dy, want int32
	}{
		{0, 0, 0},
		{3, 2, 3},
		{-3, 2, 3},
		{1, -7, 7},
		{-5, -5, 5},
	}
	for _, tt := range tests {
		if got := queenWiseDist(tt.dx, tt.dy); got != tt.want {
			t.Errorf("queenWiseDist(%d, %d) = %d, want %d", tt.dx, tt.dy, got, tt.want)
		}
	}
}

func TestRoundedDist(t *testing.T) {
	tests := []struct {
		dx, dy, want int32
	}{
		{0, 0, 0},
		{3, 4, 5},
		{-3, -4, 5},
		{1, 0, 1},
		{1, 1, 1},  // sqrt(2) = 1.41.. rounds to 1
		{2, 2, 3},  // 2*sqrt(2) = 2.82.. rounds to 3
		{10, 0, 10},
	}
	for _, tt := range tests {
		if got := roundedDist(tt.dx, tt.dy); got != tt.want {
			t.Errorf("roundedDist(%d, %d) = %d, want %d", tt.dx, tt.dy, got, tt.want)
		}
	}
}

func TestDistToRectangle(t *testing.T) {
	// tile rectangle (2, 2)..(3, 3): pixels (64, 64)..(127, 127)
	topLeft, size := TilePosition{2, 2}, TilePosition{2, 2}

	tests := []struct {
		a    Position
		want int32
	}{
		{Position{100, 100}, 0},  // inside
		{Position{100, 40}, 24},  // straight above
		{Position{100, 130}, 3},  // straight below
		{Position{40, 100}, 24},  // straight left
		{Position{150, 100}, 23}, // straight right
		{Position{61, 60}, 5},    // top left corner: sqrt(3*3+4*4)
	}
	for _, tt := range tests {
		if got := distToRectangle(tt.a, topLeft, size); got != tt.want {
			t.Errorf("distToRectangle(%v) = %d, want %d", tt.a, got, tt.want)
		}
	}
}

func TestSegmentsIntersect(t *testing.T) {
	tests := []struct {
		a, b, c, d Position
		want       bool
	}{
		{Position{0, 0}, Position{10, 10}, Position{0, 10}, Position{10, 0}, true},
		{Position{0, 0}, Position{10, 0}, Position{0, 1}, Position{10, 1}, false},
		{Position{0, 0}, Position{10, 0}, Position{5, 0}, Position{5, 5}, true},  // endpoint on segment
		{Position{0, 0}, Position{2, 2}, Position{3, 3}, Position{5, 5}, false},  // collinear, disjoint
		{Position{0, 0}, Position{4, 4}, Position{2, 2}, Position{6, 6}, true},   // collinear, overlapping
	}
	for i, tt := range tests {
		if got := segmentsIntersect(tt.a, tt.b, tt.c, tt.d); got != tt.want {
			t.Errorf("test %d: segmentsIntersect = %t, want %t", i, got, tt.want)
		}
	}
}
