package world

import "fmt"

// Position locates a cell on a gridSize x gridSize board.
// Cell is the row-major index: Cell = Row*gridSize + Column.
type Position struct {
	Cell   int
	Row    int
	Column int
}

// RowOf returns the row of a cell index.
func RowOf(cell, gridSize int) int {
	return cell / gridSize
}

// ColumnOf returns the column of a cell index.
func ColumnOf(cell, gridSize int) int {
	return cell % gridSize
}

// CellIndex converts a row and column back to a cell index.
func CellIndex(row, column, gridSize int) int {
	return row*gridSize + column
}

// NewPosition decomposes a cell index into a Position.
func NewPosition(cell, gridSize int) Position {
	return Position{
		Cell:   cell,
		Row:    RowOf(cell, gridSize),
		Column: ColumnOf(cell, gridSize),
	}
}

// InGrid reports whether (row, column) lies on the board.
func InGrid(row, column, gridSize int) bool {
	return row >= 0 && row < gridSize && column >= 0 && column < gridSize
}

// StepsToEdge returns how many steps a roundy at p takes in direction d
// before it leaves the board. A roundy on the edge facing out needs one.
func StepsToEdge(p Position, d Direction, gridSize int) int {
	dRow, dCol := d.Delta()
	if dRow == 0 && dCol == 0 {
		return 0
	}
	steps := 0
	row, col := p.Row, p.Column
	for InGrid(row, col, gridSize) {
		row += dRow
		col += dCol
		steps++
	}
	return steps
}

// String returns a compact representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("#%d(%d,%d)", p.Cell, p.Row, p.Column)
}
