// Package gridmap quantises continuous arena positions into the coarse
// reporting grid.  The arena is divided into fixed-size square cells;
// positions outside the arena clamp to the edge cells.
package gridmap

import "math"

const (
	// CellSizeIn is the side of one grid cell in inches.
	CellSizeIn = 12.0

	// MaxCell is the highest valid cell index on either axis.
	MaxCell = 8
)

// Cell maps a position (inches) on one axis to its grid cell index.
func Cell(positionIn float64) int {
	c := int(math.Floor(positionIn / CellSizeIn))
	if c < 0 {
		return 0
	}
	if c > MaxCell {
		return MaxCell
	}
	return c
}

// CellXY maps a 2-D position to its grid coordinates.
func CellXY(xIn, yIn float64) (gridX, gridY int) {
	return Cell(xIn), Cell(yIn)
}
