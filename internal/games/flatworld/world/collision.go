package world

import (
	"io"

	"github.com/charmbracelet/log"
)

// markOrder is the order in which MarkCollisions probes a pair. One
// direction of each opposite pair is enough: the reverse is recorded on the
// other roundy.
var markOrder = [...]Direction{North, West, NorthWest, NorthEast}

// Detector answers line-of-sight questions on a gridSize x gridSize board.
// Other roundies never block a ray; only the board edge does.
type Detector struct {
	gridSize int
	logger   *log.Logger
}

// NewDetector creates a detector. A nil logger discards output.
func NewDetector(gridSize int, logger *log.Logger) *Detector {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Detector{
		gridSize: gridSize,
		logger:   logger,
	}
}

// GridSize returns the board size the detector walks.
func (d *Detector) GridSize() int { return d.gridSize }

// Collides reports whether a, rolling in dir, reaches b before leaving the board.
func (d *Detector) Collides(a, b *Token, dir Direction) bool {
	var hit bool
	switch dir {
	case North:
		hit = a.Column() == b.Column() && a.Row() > b.Row()
	case South:
		hit = a.Column() == b.Column() && a.Row() < b.Row()
	case East:
		hit = a.Row() == b.Row() && a.Column() < b.Column()
	case West:
		hit = a.Row() == b.Row() && a.Column() > b.Column()
	case NorthWest, SouthEast, NorthEast, SouthWest:
		hit = d.walkDiagonal(a, b, dir)
	default:
		d.logger.Warn("collision test with invalid direction", "direction", uint8(dir))
		return false
	}

	if hit {
		d.logger.Debug("collides", "from", a.ID(), "to", b.ID(), "direction", dir)
	}
	return hit
}

// walkDiagonal steps from a one cell at a time and checks each cell for b.
// The loop guards are checked before stepping, so the last step may land
// one past the edge on the growing axis; no roundy lives there.
func (d *Detector) walkDiagonal(a, b *Token, dir Direction) bool {
	row, col := a.Row(), a.Column()
	n := d.gridSize

	switch dir {
	case NorthWest:
		for row > 0 && col > 0 {
			row--
			col--
			if row == b.Row() && col == b.Column() {
				return true
			}
		}
	case SouthEast:
		for row < n && col < n {
			row++
			col++
			if row == b.Row() && col == b.Column() {
				return true
			}
		}
	case NorthEast:
		for row > 0 && col < n {
			row--
			col++
			if row == b.Row() && col == b.Column() {
				return true
			}
		}
	case SouthWest:
		for row < n && col > 0 {
			row++
			col--
			if row == b.Row() && col == b.Column() {
				return true
			}
		}
	}
	return false
}

// FindClosest returns the candidate nearest to a along dir. Candidates are
// expected to be reachable from a in dir. Distance is the row gap for every
// direction except East and West, which use the column gap. Ties go to the
// lower id.
func (d *Detector) FindClosest(a *Token, candidates []*Token, dir Direction) (*Token, error) {
	if !dir.Valid() {
		return nil, ErrInvalidDirection
	}
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	closest := candidates[0]
	for _, found := range candidates[1:] {
		closest = closer(a, closest, found, dir)
	}
	return closest, nil
}

// closer picks whichever of b and c is nearer to a along dir.
func closer(a, b, c *Token, dir Direction) *Token {
	var deltaB, deltaC int
	switch dir {
	case East, West:
		deltaB = abs(a.Column() - b.Column())
		deltaC = abs(a.Column() - c.Column())
	default:
		deltaB = abs(a.Row() - b.Row())
		deltaC = abs(a.Row() - c.Row())
	}

	switch {
	case deltaB == deltaC:
		if b.ID() < c.ID() {
			return b
		}
		return c
	case deltaB < deltaC:
		return b
	default:
		return c
	}
}

// MarkCollisions records every line-of-sight pair among tokens in both
// roundies' maps, with opposite directions. Nil entries are skipped.
// onFound, if set, is called once per newly recorded pair.
//
// Maps are not reset here; callers clear them first.
func (d *Detector) MarkCollisions(tokens []*Token, onFound func(a, b *Token)) {
	for _, a := range tokens {
		if a == nil {
			continue
		}
		for _, b := range tokens {
			if b == nil || a == b || a.HasCollisionWith(b.ID()) {
				continue
			}
			for _, dir := range markOrder {
				if !d.Collides(a, b, dir) {
					continue
				}
				if onFound != nil {
					onFound(a, b)
				}
				a.AddCollision(b.ID(), dir)
				b.AddCollision(a.ID(), dir.Opposite())
				break
			}
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
