package world

import (
	"fmt"
	"sort"

	"github.com/kamstrup/intmap"
)

// Collision records that a roundy can reach another one by rolling in Direction.
type Collision struct {
	With      int
	Direction Direction
}

// Token is a roundy on the board.
//
// The collision map and the happy flag are maintained by the engine:
// the map is rebuilt wholesale after every structural change and happy is
// set explicitly, never derived on mutation.
type Token struct {
	id    int
	pos   Position
	happy bool
	added bool // placed by AddToken rather than at initialization

	collisions *intmap.Map[int, Direction]
}

// NewToken creates a roundy with an empty collision map.
func NewToken(id int, pos Position) *Token {
	return &Token{
		id:         id,
		pos:        pos,
		happy:      true,
		collisions: intmap.New[int, Direction](8),
	}
}

// ID returns the roundy's slot id.
func (t *Token) ID() int { return t.id }

// Position returns the cell the roundy occupies.
func (t *Token) Position() Position { return t.pos }

// Cell returns the cell index.
func (t *Token) Cell() int { return t.pos.Cell }

// Row returns the row index.
func (t *Token) Row() int { return t.pos.Row }

// Column returns the column index.
func (t *Token) Column() int { return t.pos.Column }

// Happy reports the last value set by SetHappy.
func (t *Token) Happy() bool { return t.happy }

// SetHappy sets the happy flag.
func (t *Token) SetHappy(happy bool) { t.happy = happy }

// Added reports whether the roundy joined after initialization.
func (t *Token) Added() bool { return t.added }

// AddCollision records that this roundy reaches other by rolling in dir.
func (t *Token) AddCollision(other int, dir Direction) {
	t.collisions.Put(other, dir)
}

// HasCollisionWith reports whether a collision with other is recorded.
func (t *Token) HasCollisionWith(other int) bool {
	return t.collisions.Has(other)
}

// CollisionWith returns the direction towards other, if recorded.
func (t *Token) CollisionWith(other int) (Direction, bool) {
	return t.collisions.Get(other)
}

// CollisionCount returns the number of recorded collisions.
func (t *Token) CollisionCount() int {
	return t.collisions.Len()
}

// Collisions returns the recorded collisions ordered by the other roundy's id.
func (t *Token) Collisions() []Collision {
	out := make([]Collision, 0, t.collisions.Len())
	t.collisions.ForEach(func(other int, dir Direction) bool {
		out = append(out, Collision{With: other, Direction: dir})
		return true
	})
	sort.Slice(out, func(i, j int) bool {
		return out[i].With < out[j].With
	})
	return out
}

// ResetCollisions clears the collision map.
func (t *Token) ResetCollisions() {
	t.collisions.Clear()
}

// moveTo updates the roundy's position. Cell ownership is the board's concern.
func (t *Token) moveTo(pos Position) {
	t.pos = pos
}

// String returns a debug representation.
func (t *Token) String() string {
	return fmt.Sprintf("Roundy{id=%d, cell=%d, row=%d, column=%d, happy=%t}",
		t.id, t.pos.Cell, t.pos.Row, t.pos.Column, t.happy)
}
