// Package world provides the rules of Flatworld: roundies on a square grid,
// line-of-sight collision detection between them, and the chain reaction
// that follows a flick. This package is UI-agnostic and deterministic for a
// given seed.
package world

// Direction is one of the eight compass headings a roundy can roll along.
// Values are ordered clockwise starting from North.
type Direction uint8

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

const directionCount = 8

// Directions lists every heading in clockwise order from North.
var Directions = [directionCount]Direction{
	North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest,
}

// Valid reports whether d is one of the eight headings.
func (d Direction) Valid() bool {
	return d < directionCount
}

// String returns the upper-case name of the direction.
func (d Direction) String() string {
	switch d {
	case North:
		return "NORTH"
	case NorthEast:
		return "NORTH_EAST"
	case East:
		return "EAST"
	case SouthEast:
		return "SOUTH_EAST"
	case South:
		return "SOUTH"
	case SouthWest:
		return "SOUTH_WEST"
	case West:
		return "WEST"
	case NorthWest:
		return "NORTH_WEST"
	default:
		return "UNKNOWN"
	}
}

// Opposite returns the heading pointing the other way.
// Invalid directions are returned unchanged.
func (d Direction) Opposite() Direction {
	if !d.Valid() {
		return d
	}
	return (d + directionCount/2) % directionCount
}

// Delta returns the (row, column) offset of one step in this direction.
// Row 0 is the northern edge, column 0 the western edge.
func (d Direction) Delta() (dRow, dCol int) {
	switch d {
	case North:
		return -1, 0
	case NorthEast:
		return -1, 1
	case East:
		return 0, 1
	case SouthEast:
		return 1, 1
	case South:
		return 1, 0
	case SouthWest:
		return 1, -1
	case West:
		return 0, -1
	case NorthWest:
		return -1, -1
	default:
		return 0, 0
	}
}

// Diagonal reports whether the direction moves along both axes.
func (d Direction) Diagonal() bool {
	dRow, dCol := d.Delta()
	return dRow != 0 && dCol != 0
}
