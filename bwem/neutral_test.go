package bwem

import "testing"

func TestNeutralStackingRejections(t *testing.T) {
	data := openPlain(16, 16)
	data.Units = []UnitData{
		// a valid mineral and a valid stack on it
		{ID: 1, Type: UnitMineralField, TopLeft: TilePosition{2, 2}, Size: TilePosition{2, 1}, Resources: 100},
		{ID: 2, Type: UnitMineralField, TopLeft: TilePosition{2, 2}, Size: TilePosition{2, 1}, Resources: 100},
		// partial overlap with the stack: rejected
		{ID: 3, Type: UnitMineralField, TopLeft: TilePosition{3, 2}, Size: TilePosition{2, 1}, Resources: 100},
		// type mismatch with the stack top: rejected
		{ID: 4, Type: UnitStaticBuilding, TopLeft: TilePosition{2, 2}, Size: TilePosition{2, 1}},
		// a geyser, and a candidate stacking above it: rejected
		{ID: 5, Type: UnitVespeneGeyser, TopLeft: TilePosition{8, 8}, Size: TilePosition{4, 2}, Resources: 5000},
		{ID: 6, Type: UnitVespeneGeyser, TopLeft: TilePosition{8, 8}, Size: TilePosition{4, 2}, Resources: 5000},
		// out of map footprint: rejected
		{ID: 7, Type: UnitMineralField, TopLeft: TilePosition{15, 15}, Size: TilePosition{2, 1}, Resources: 100},
	}

	ctx := NewBuildContext(true)
	m := NewMap(ctx)
	check(t, m.Initialize(data))

	if len(m.Minerals()) != 2 {
		t.Errorf("minerals = %d, want 2", len(m.Minerals()))
	}
	if len(m.Geysers()) != 1 {
		t.Errorf("geysers = %d, want 1", len(m.Geysers()))
	}
	if len(m.StaticBuildings()) != 0 {
		t.Errorf("static buildings = %d, want 0", len(m.StaticBuildings()))
	}
	if len(m.Neutrals()) != 3 {
		t.Errorf("neutrals = %d, want 3", len(m.Neutrals()))
	}

	// the rejections were diagnosed
	warnings := 0
	for i := 0; i < ctx.LogCount(); i++ {
		if len(ctx.LogText(i)) >= 4 && ctx.LogText(i)[:4] == "WARN" {
			warnings++
		}
	}
	if warnings != 4 {
		t.Errorf("warnings = %d, want 4", warnings)
	}

	bottom := m.Tile(TilePosition{2, 2}).Neutral()
	if bottom == nil || bottom.ID() != 1 {
		t.Fatal("bottom of the stack should be mineral 1")
	}
	if bottom.NextStacked() == nil || bottom.NextStacked().ID() != 2 {
		t.Fatal("mineral 2 should be stacked on mineral 1")
	}
	if bottom.LastStacked().ID() != 2 {
		t.Error("last stacked should be mineral 2")
	}
}

func TestSpecialNeutralIngestion(t *testing.T) {
	data := openPlain(16, 16)
	data.Units = []UnitData{
		// right pit doors shift one tile right at ingestion
		{ID: 1, Type: UnitSpecialRightPitDoor, TopLeft: TilePosition{4, 4}, Size: TilePosition{1, 1}},
		// a plain egg is ignored
		{ID: 2, Type: UnitZergEgg, TopLeft: TilePosition{8, 8}, Size: TilePosition{1, 1}},
		// an egg wrapping a pit door is kept as the wrapped building
		{ID: 3, Type: UnitZergEgg, WrappedType: UnitSpecialPitDoor, TopLeft: TilePosition{10, 10}, Size: TilePosition{1, 1}},
	}

	m := analyze(t, data)

	if len(m.StaticBuildings()) != 2 {
		t.Fatalf("static buildings = %d, want 2", len(m.StaticBuildings()))
	}
	door := m.StaticBuildings()[0]
	if door.TopLeft() != (TilePosition{5, 4}) {
		t.Errorf("right pit door top left = %v, want the shifted {5 4}", door.TopLeft())
	}
	if egg := m.StaticBuildings()[1]; egg.Type() != UnitSpecialPitDoor {
		t.Errorf("wrapped egg type = %v, want UnitSpecialPitDoor", egg.Type())
	}
	if m.Tile(TilePosition{8, 8}).Neutral() != nil {
		t.Error("the plain egg should have been ignored")
	}
}
