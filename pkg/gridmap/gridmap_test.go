package gridmap

import "testing"

func TestCellBoundaries(t *testing.T) {
	expectCell(t, 0, 0)
	expectCell(t, 11.99, 0)
	expectCell(t, 12.0, 1)
	expectCell(t, 107.9, 8)
	expectCell(t, 108.0, 8)
	expectCell(t, 500, 8)
	expectCell(t, -0.01, 0)
	expectCell(t, -1000, 0)
}

func expectCell(t *testing.T, pos float64, want int) {
	t.Helper()
	if got := Cell(pos); got != want {
		t.Errorf("Cell(%v) = %v, expected %v", pos, got, want)
	}
}

func TestCellMonotone(t *testing.T) {
	prev := Cell(-20)
	for pos := -20.0; pos < 140; pos += 0.5 {
		c := Cell(pos)
		if c < prev {
			t.Fatalf("Cell not monotone: Cell(%v) = %v < previous %v", pos, c, prev)
		}
		prev = c
	}
}

func TestCellIdempotentOnCellCentres(t *testing.T) {
	for c := 0; c <= MaxCell; c++ {
		pos := (float64(c) + 0.5) * CellSizeIn
		if got := Cell(pos); got != c {
			t.Errorf("centre of cell %d mapped to %d", c, got)
		}
	}
}

func TestCellXY(t *testing.T) {
	gx, gy := CellXY(25, 99)
	if gx != 2 || gy != 8 {
		t.Errorf("CellXY(25, 99) = (%d, %d), expected (2, 8)", gx, gy)
	}
}
