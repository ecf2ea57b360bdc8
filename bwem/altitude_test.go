package bwem

import "testing"

func TestAltitudeField(t *testing.T) {
	// a sea column along the left edge of a 16x16 tile map
	data := openPlain(16, 16)
	data.FillBuildable(TilePosition{0, 0}, TilePosition{1, 16}, false)
	data.FillWalkable(TilePosition{0, 0}, TilePosition{1, 16}, false)

	m := analyze(t, data)

	if !m.MiniTile(WalkPosition{1, 32}).Sea() {
		t.Fatal("left column should be sea")
	}

	// altitude is the pixel distance to the nearest sea minitile: far
	// from the other borders, it grows by 8 per minitile away from the
	// sea column
	tests := []struct {
		w    WalkPosition
		want Altitude
	}{
		{WalkPosition{4, 32}, 8},
		{WalkPosition{5, 32}, 16},
		{WalkPosition{8, 32}, 40},
		{WalkPosition{13, 32}, 80},
	}
	for _, tt := range tests {
		if got := m.MiniTile(tt.w).Altitude(); got != tt.want {
			t.Errorf("altitude(%d, %d) = %d, want %d", tt.w.X, tt.w.Y, got, tt.want)
		}
	}

	// the maximum altitude is reached on the map
	var maxSeen Altitude
	for y := int32(0); y < m.WalkSize().Y; y++ {
		for x := int32(0); x < m.WalkSize().X; x++ {
			if a := m.MiniTile(WalkPosition{x, y}).Altitude(); a > maxSeen {
				maxSeen = a
			}
		}
	}
	if maxSeen != m.MaxAltitude() {
		t.Errorf("max altitude = %d but the highest minitile has %d", m.MaxAltitude(), maxSeen)
	}

	// tile aggregates carry the minimum altitude of their minitiles
	if got := m.Tile(TilePosition{1, 8}).MinAltitude(); got != 8 {
		t.Errorf("tile (1, 8) min altitude = %d, want 8", got)
	}
}
