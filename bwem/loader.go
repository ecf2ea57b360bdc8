package bwem

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// LoaderSettings maps the glyphs of the textual map format to tile
// attributes. One glyph describes one tile; the walkability it implies is
// applied to the 16 minitiles of the tile.
type LoaderSettings struct {
	// Buildable tiles (walkable too, height 0).
	Buildable string `yaml:"buildable"`
	// Walkable but not buildable tiles.
	Walkable string `yaml:"walkable"`
	// Buildable high-ground tiles (raw ground height 2).
	HighGround string `yaml:"highGround"`
	// Unwalkable tiles.
	Unwalkable string `yaml:"unwalkable"`
}

// DefaultLoaderSettings returns the default glyph mapping of the textual
// map format.
func DefaultLoaderSettings() LoaderSettings {
	return LoaderSettings{
		Buildable:  ".",
		Walkable:   ",o",
		HighGround: "^",
		Unwalkable: "#~",
	}
}

// LoadMapData reads a textual map description:
//
//  # comment
//  size 64 32
//  start 15 14
//  mineral 10 10 1500
//  geyser 10 23 5000
//  building 5 5 2 2
//  grid
//  ...one row of glyphs per tile row...
//
// Minerals are 2x1 tiles, geysers 4x2, buildings carry their own size.
// The grid section must be last and hold exactly size rows of size
// columns.
func LoadMapData(r io.Reader, settings LoaderSettings) (*MapData, error) {
	scanner := bufio.NewScanner(r)

	var (
		data   *MapData
		nextID int32 = 1
		gridY  int32
		inGrid bool
	)

	addUnit := func(u UnitData) {
		u.ID = nextID
		nextID++
		data.Units = append(data.Units, u)
	}

	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()

		if inGrid {
			if data == nil || gridY >= data.MapSize.Y {
				break
			}
			if int32(len(line)) != data.MapSize.X {
				return nil, fmt.Errorf("line %d: grid row of %d glyphs, want %d", lineno, len(line), data.MapSize.X)
			}
			for x, glyph := range line {
				t := TilePosition{int32(x), gridY}
				switch {
				case strings.ContainsRune(settings.Buildable, glyph):
					data.FillBuildable(t, TilePosition{1, 1}, true)
					data.FillWalkable(t, TilePosition{1, 1}, true)
				case strings.ContainsRune(settings.HighGround, glyph):
					data.FillBuildable(t, TilePosition{1, 1}, true)
					data.FillWalkable(t, TilePosition{1, 1}, true)
					data.SetGroundHeight(t, 2)
				case strings.ContainsRune(settings.Walkable, glyph):
					data.FillWalkable(t, TilePosition{1, 1}, true)
				case strings.ContainsRune(settings.Unwalkable, glyph):
					// stays unwalkable
				default:
					return nil, fmt.Errorf("line %d: unknown glyph %q", lineno, glyph)
				}
			}
			gridY++
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "size":
			var w, h int32
			if _, err := fmt.Sscanf(line, "size %d %d", &w, &h); err != nil {
				return nil, fmt.Errorf("line %d: %v", lineno, err)
			}
			if w <= 0 || h <= 0 {
				return nil, fmt.Errorf("line %d: invalid size %d x %d", lineno, w, h)
			}
			data = NewMapData(w, h)

		case "start":
			var x, y int32
			if _, err := fmt.Sscanf(line, "start %d %d", &x, &y); err != nil {
				return nil, fmt.Errorf("line %d: %v", lineno, err)
			}
			if data == nil {
				return nil, fmt.Errorf("line %d: start before size", lineno)
			}
			data.StartLocations = append(data.StartLocations, TilePosition{x, y})

		case "mineral":
			var x, y, amount int32
			if _, err := fmt.Sscanf(line, "mineral %d %d %d", &x, &y, &amount); err != nil {
				return nil, fmt.Errorf("line %d: %v", lineno, err)
			}
			if data == nil {
				return nil, fmt.Errorf("line %d: mineral before size", lineno)
			}
			addUnit(UnitData{
				Type:      UnitMineralField,
				TopLeft:   TilePosition{x, y},
				Size:      TilePosition{2, 1},
				Resources: amount,
			})

		case "geyser":
			var x, y, amount int32
			if _, err := fmt.Sscanf(line, "geyser %d %d %d", &x, &y, &amount); err != nil {
				return nil, fmt.Errorf("line %d: %v", lineno, err)
			}
			if data == nil {
				return nil, fmt.Errorf("line %d: geyser before size", lineno)
			}
			addUnit(UnitData{
				Type:      UnitVespeneGeyser,
				TopLeft:   TilePosition{x, y},
				Size:      TilePosition{4, 2},
				Resources: amount,
			})

		case "building":
			var x, y, w, h int32
			if _, err := fmt.Sscanf(line, "building %d %d %d %d", &x, &y, &w, &h); err != nil {
				return nil, fmt.Errorf("line %d: %v", lineno, err)
			}
			if data == nil {
				return nil, fmt.Errorf("line %d: building before size", lineno)
			}
			addUnit(UnitData{
				Type:    UnitStaticBuilding,
				TopLeft: TilePosition{x, y},
				Size:    TilePosition{w, h},
			})

		case "grid":
			if data == nil {
				return nil, fmt.Errorf("line %d: grid before size", lineno)
			}
			inGrid = true

		default:
			return nil, fmt.Errorf("line %d: unknown directive %q", lineno, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("missing size directive")
	}
	if !inGrid || gridY != data.MapSize.Y {
		return nil, fmt.Errorf("grid section incomplete: %d rows, want %d", gridY, data.MapSize.Y)
	}
	return data, nil
}
