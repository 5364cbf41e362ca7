package world

import "fmt"

// noOwner marks a free cell in the ownership table.
const noOwner = -1

// slot holds a roundy or nothing. A slot becomes empty when its roundy
// falls off the board and may be refilled by AddToken.
type slot struct {
	token *Token
	live  bool
}

// Board is a fixed-capacity arena of roundy slots indexed by id, plus a
// cell ownership table used to place new roundies on free cells.
type Board struct {
	gridSize int
	slots    []slot
	owners   []int // cell index -> owning roundy id, or noOwner
}

// NewBoard creates an empty board with capacity slots.
func NewBoard(gridSize, capacity int) *Board {
	owners := make([]int, gridSize*gridSize)
	for i := range owners {
		owners[i] = noOwner
	}
	return &Board{
		gridSize: gridSize,
		slots:    make([]slot, capacity),
		owners:   owners,
	}
}

// GridSize returns the side length of the board.
func (b *Board) GridSize() int { return b.gridSize }

// Capacity returns the number of slots.
func (b *Board) Capacity() int { return len(b.slots) }

// Token returns the live roundy in slot id.
func (b *Board) Token(id int) (*Token, bool) {
	if id < 0 || id >= len(b.slots) || !b.slots[id].live {
		return nil, false
	}
	return b.slots[id].token, true
}

// Live returns the live roundies ordered by id.
func (b *Board) Live() []*Token {
	out := make([]*Token, 0, len(b.slots))
	for _, s := range b.slots {
		if s.live {
			out = append(out, s.token)
		}
	}
	return out
}

// LiveCount returns the number of roundies on the board.
func (b *Board) LiveCount() int {
	n := 0
	for _, s := range b.slots {
		if s.live {
			n++
		}
	}
	return n
}

// Owner returns the id of the roundy owning cell.
func (b *Board) Owner(cell int) (int, bool) {
	if cell < 0 || cell >= len(b.owners) || b.owners[cell] == noOwner {
		return 0, false
	}
	return b.owners[cell], true
}

// FreeCells returns every unowned cell in ascending order.
func (b *Board) FreeCells() []int {
	free := make([]int, 0, len(b.owners))
	for cell, owner := range b.owners {
		if owner == noOwner {
			free = append(free, cell)
		}
	}
	return free
}

// place creates a roundy in slot id on a free cell.
func (b *Board) place(id, cell int) (*Token, error) {
	if id < 0 || id >= len(b.slots) {
		return nil, fmt.Errorf("%w: id %d outside %d slots", ErrTokenNotFound, id, len(b.slots))
	}
	if b.slots[id].live {
		return nil, fmt.Errorf("%w: id %d", ErrSlotTaken, id)
	}
	if cell < 0 || cell >= len(b.owners) || b.owners[cell] != noOwner {
		return nil, fmt.Errorf("%w: cell %d", ErrBoardFull, cell)
	}

	t := NewToken(id, NewPosition(cell, b.gridSize))
	b.slots[id] = slot{token: t, live: true}
	b.owners[cell] = id
	return t, nil
}

// relocate moves t onto pos. The cell t leaves is freed only if t still
// owns it; the destination is handed to t.
func (b *Board) relocate(t *Token, pos Position) {
	if b.owners[t.Cell()] == t.ID() {
		b.owners[t.Cell()] = noOwner
	}
	b.owners[pos.Cell] = t.ID()
	t.moveTo(pos)
}

// remove empties slot id. The roundy's cell is freed only if it still owns
// it: a roundy knocked off the board leaves its striker behind on that cell.
func (b *Board) remove(id int) (*Token, error) {
	t, ok := b.Token(id)
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrTokenNotFound, id)
	}
	if b.owners[t.Cell()] == id {
		b.owners[t.Cell()] = noOwner
	}
	b.slots[id] = slot{}
	return t, nil
}

// slotTokens returns one entry per slot, nil for empty slots.
func (b *Board) slotTokens() []*Token {
	out := make([]*Token, len(b.slots))
	for i, s := range b.slots {
		if s.live {
			out[i] = s.token
		}
	}
	return out
}
