package systems

import "testing"

func TestCellCoordRounding(t *testing.T) {
	tests := []struct {
		name string
		c    int32
		want int
	}{
		{"origin", 0, 0},
		{"just below half cell", HalfCell - 1, 0},
		{"exactly half cell", HalfCell, 1},
		{"one cell", CellSize, 1},
		{"negative rounds down", -HalfCell - 1, -1},
		{"negative rounds up", -HalfCell + 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CellCoord(tt.c); got != tt.want {
				t.Errorf("CellCoord(%d) = %d, want %d", tt.c, got, tt.want)
			}
		})
	}
}

func TestCellCenterRoundTrip(t *testing.T) {
	g := NewGrid(16, 16)
	for cy := 0; cy < 14; cy += 3 {
		for cx := 0; cx < 14; cx += 3 {
			x, y := CellCenter(cx, cy)
			bx, by := g.BlockOrigin(x, y)
			if bx != cx || by != cy {
				t.Fatalf("BlockOrigin(CellCenter(%d,%d)) = (%d,%d)", cx, cy, bx, by)
			}
		}
	}
}

func TestSetOccupantWritesBlock(t *testing.T) {
	g := NewGrid(16, 16)
	x, y := CellCenter(5, 7)
	g.SetOccupant(x, y, 42)

	occ := g.Occupants(x, y)
	for i, v := range occ {
		if v != 42 {
			t.Errorf("block cell %d = %d, want 42", i, v)
		}
	}
	if g.CellAt(5, 7) != 42 || g.CellAt(6, 8) != 42 {
		t.Error("corner cells of the block not written")
	}
	if g.CellAt(4, 7) != CellEmpty || g.CellAt(7, 8) != CellEmpty {
		t.Error("cells outside the block were written")
	}

	g.SetOccupant(x, y, CellEmpty)
	if !g.IsEmpty(x, y) {
		t.Error("block not empty after clearing")
	}
}

func TestPaddingStaysWall(t *testing.T) {
	g := NewGrid(8, 8)

	// An occupant write clamped against the edge must not erase the border.
	x, y := CellCenter(-GridPad, -GridPad)
	g.SetOccupant(x, y, 7)
	if g.CellAt(-1, -1) != CellWall || g.CellAt(-2, -2) != CellWall {
		t.Error("padding cell overwritten by SetOccupant")
	}

	g.SetCell(-1, 3, CellEmpty)
	if g.CellAt(-1, 3) != CellWall {
		t.Error("padding cell overwritten by SetCell")
	}

	// Reads beyond the padded array behave as wall.
	if g.CellAt(-100, 0) != CellWall || g.CellAt(0, 1000) != CellWall {
		t.Error("out-of-array read did not return wall")
	}
}

func TestResetRestoresBorderAndClearsPlayable(t *testing.T) {
	g := NewGrid(8, 8)
	g.SetCell(3, 3, CellWall)
	g.SetCell(4, 4, 9)
	g.Reset()

	for cy := 0; cy < 8; cy++ {
		for cx := 0; cx < 8; cx++ {
			if g.CellAt(cx, cy) != CellEmpty {
				t.Fatalf("playable cell (%d,%d) = %d after Reset", cx, cy, g.CellAt(cx, cy))
			}
		}
	}
	for i := -GridPad; i < 8+GridPad; i++ {
		if g.CellAt(i, -1) != CellWall || g.CellAt(-1, i) != CellWall {
			t.Fatalf("border missing at index %d after Reset", i)
		}
	}
}

func TestClassify(t *testing.T) {
	if k, _ := Classify(CellEmpty); k != CellKindEmpty {
		t.Error("empty misclassified")
	}
	if k, _ := Classify(CellWall); k != CellKindWall {
		t.Error("wall misclassified")
	}
	k, slot := Classify(5)
	if k != CellKindAgent || slot != 4 {
		t.Errorf("Classify(5) = %v, %d", k, slot)
	}
}

func TestIsEmptyIsPureRead(t *testing.T) {
	g := NewGrid(8, 8)
	x, y := CellCenter(2, 2)
	for i := 0; i < 3; i++ {
		if !g.IsEmpty(x, y) {
			t.Fatal("IsEmpty changed answer without mutation")
		}
	}
	g.SetOccupant(x, y, 1)
	for i := 0; i < 3; i++ {
		if g.IsEmpty(x, y) {
			t.Fatal("IsEmpty true on occupied block")
		}
	}
}
