package bwem

import (
	"os"
	"strings"
	"testing"
)

func TestLoadMapData(t *testing.T) {
	const src = `# tiny test map
size 4 3
start 1 1
mineral 0 0 1500
geyser 0 1 5000
building 2 2 1 1
grid
~~..
..,.
...#
`
	data, err := LoadMapData(strings.NewReader(src), DefaultLoaderSettings())
	if err != nil {
		t.Fatal(err)
	}
	if data.MapSize != (TilePosition{4, 3}) {
		t.Errorf("size = %v, want {4 3}", data.MapSize)
	}
	if len(data.StartLocations) != 1 || data.StartLocations[0] != (TilePosition{1, 1}) {
		t.Errorf("start locations = %v, want [{1 1}]", data.StartLocations)
	}
	if len(data.Units) != 3 {
		t.Fatalf("units = %d, want 3", len(data.Units))
	}
	if u := data.Units[0]; u.Type != UnitMineralField || u.Resources != 1500 || u.Size != (TilePosition{2, 1}) {
		t.Errorf("unexpected mineral: %+v", u)
	}
	if u := data.Units[1]; u.Type != UnitVespeneGeyser || u.Resources != 5000 || u.Size != (TilePosition{4, 2}) {
		t.Errorf("unexpected geyser: %+v", u)
	}
	if u := data.Units[2]; u.Type != UnitStaticBuilding || u.Size != (TilePosition{1, 1}) {
		t.Errorf("unexpected building: %+v", u)
	}

	// tile (0, 0) is sea ('~'): unwalkable, unbuildable
	if data.Buildable(TilePosition{0, 0}) {
		t.Error("tile (0, 0) should not be buildable")
	}
	if data.Walkable(WalkPosition{0, 0}) {
		t.Error("minitile (0, 0) should not be walkable")
	}
	// tile (2, 0) is ground ('.'): walkable, buildable
	if !data.Buildable(TilePosition{2, 0}) {
		t.Error("tile (2, 0) should be buildable")
	}
	if !data.Walkable(WalkPosition{8, 0}) {
		t.Error("minitile (8, 0) should be walkable")
	}
	// tile (2, 1) is rough ground (','): walkable, not buildable
	if data.Buildable(TilePosition{2, 1}) {
		t.Error("tile (2, 1) should not be buildable")
	}
	if !data.Walkable(WalkPosition{8, 4}) {
		t.Error("minitile (8, 4) should be walkable")
	}
}

func TestLoadMapDataErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"no size", "grid\n"},
		{"bad glyph", "size 2 1\ngrid\n.?\n"},
		{"short row", "size 3 1\ngrid\n..\n"},
		{"missing rows", "size 2 2\ngrid\n..\n"},
		{"start before size", "start 1 1\n"},
		{"unknown directive", "size 2 1\nfoo\ngrid\n..\n"},
	}
	for _, tt := range tests {
		if _, err := LoadMapData(strings.NewReader(tt.src), DefaultLoaderSettings()); err == nil {
			t.Errorf("%s: expected an error", tt.name)
		}
	}
}

func TestLoadMapDataFile(t *testing.T) {
	f, err := os.Open("../testdata/maps/corridor.map")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	data, err := LoadMapData(f, DefaultLoaderSettings())
	if err != nil {
		t.Fatal(err)
	}
	if data.MapSize != (TilePosition{64, 32}) {
		t.Errorf("size = %v, want {64 32}", data.MapSize)
	}
}
