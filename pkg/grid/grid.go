// Package grid maps linear character indices onto a fixed-width text grid.
package grid

import "image"

// GetGridCoords returns the column and row of index in a grid cols wide.
func GetGridCoords(index, cols int) (x, y int) {
	return index % cols, index / cols
}

// CellBounds is the pixel rectangle of the cell at index when every cell is
// cellW by cellH pixels.
func CellBounds(index, cols, cellW, cellH int) image.Rectangle {
	x, y := GetGridCoords(index, cols)
	origin := image.Pt(x*cellW, y*cellH)
	return image.Rectangle{Min: origin, Max: origin.Add(image.Pt(cellW, cellH))}
}

// Rows is the number of rows needed to hold n cells.
func Rows(n, cols int) int {
	if n <= 0 {
		return 0
	}
	return (n + cols - 1) / cols
}
