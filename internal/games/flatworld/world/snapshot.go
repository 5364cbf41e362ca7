package world

import "strings"

// TokenView is a read-only copy of a roundy's state.
type TokenView struct {
	ID         int
	Position
	Happy      bool
	Added      bool
	Collisions []Collision
}

func viewOf(t *Token) TokenView {
	return TokenView{
		ID:         t.ID(),
		Position:   t.Position(),
		Happy:      t.Happy(),
		Added:      t.Added(),
		Collisions: t.Collisions(),
	}
}

// Snapshot captures the board for rendering and determinism checks.
type Snapshot struct {
	GridSize int
	State    State
	Tokens   []TokenView // ordered by id
}

// Snapshot returns the current board state.
func (e *Engine) Snapshot() Snapshot {
	live := e.board.Live()
	views := make([]TokenView, len(live))
	for i, t := range live {
		views[i] = viewOf(t)
	}
	return Snapshot{
		GridSize: e.cfg.GridSize,
		State:    e.state,
		Tokens:   views,
	}
}

// Unhappy returns the number of roundies with a collision partner.
func (s Snapshot) Unhappy() int {
	n := 0
	for _, t := range s.Tokens {
		if !t.Happy {
			n++
		}
	}
	return n
}

// String draws the board as text: '.' empty, 'o' happy, 'x' unhappy.
// While a chain runs, a cell shared by two roundies shows the higher id's mark.
func (s Snapshot) String() string {
	cells := make([]byte, s.GridSize*s.GridSize)
	for i := range cells {
		cells[i] = '.'
	}
	for _, t := range s.Tokens {
		mark := byte('o')
		if !t.Happy {
			mark = 'x'
		}
		cells[t.Cell] = mark
	}

	var sb strings.Builder
	sb.Grow(len(cells) + s.GridSize)
	for row := 0; row < s.GridSize; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		sb.Write(cells[row*s.GridSize : (row+1)*s.GridSize])
	}
	return sb.String()
}
