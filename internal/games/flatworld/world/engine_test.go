package world

import (
	"io"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestEngine builds an engine whose roundies sit on the given cells,
// keyed by id, instead of random ones.
func newTestEngine(t *testing.T, gridSize, capacity int, cells map[int]int) *Engine {
	t.Helper()

	e, err := NewEngine(Config{GridSize: gridSize, TokenCount: capacity, Seed: 1})
	require.NoError(t, err)
	for id, cell := range cells {
		_, err := e.board.place(id, cell)
		require.NoError(t, err)
	}
	e.recompute()
	return e
}

// requireRestInvariants checks everything that must hold while idle.
func requireRestInvariants(t *testing.T, e *Engine) {
	t.Helper()

	require.Equal(t, StateIdle, e.State())

	live := e.board.Live()
	cells := map[int]bool{}
	for _, tok := range live {
		require.False(t, cells[tok.Cell()], "two roundies on cell %d", tok.Cell())
		cells[tok.Cell()] = true

		owner, ok := e.TokenAt(tok.Cell())
		require.True(t, ok)
		require.Equal(t, tok.ID(), owner)

		require.Equal(t, tok.CollisionCount() == 0, tok.Happy(), "%s", tok)
	}
	require.Equal(t, e.GridSize()*e.GridSize()-len(live), e.FreeCellCount())

	for _, a := range live {
		for _, b := range live {
			if a == b {
				continue
			}
			dir, recorded := a.CollisionWith(b.ID())
			aligned := false
			for _, d := range Directions {
				if e.detector.Collides(a, b, d) {
					aligned = true
				}
			}
			require.Equal(t, aligned, recorded, "%s vs %s", a, b)
			if recorded {
				require.True(t, e.detector.Collides(a, b, dir))
				back, ok := b.CollisionWith(a.ID())
				require.True(t, ok)
				require.Equal(t, dir.Opposite(), back)
			}
		}
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"default board", Config{GridSize: 8, TokenCount: 10}, true},
		{"full board", Config{GridSize: 2, TokenCount: 4}, true},
		{"zero grid", Config{GridSize: 0, TokenCount: 1}, false},
		{"no roundies", Config{GridSize: 4, TokenCount: 0}, false},
		{"too many roundies", Config{GridSize: 2, TokenCount: 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidConfig)

			_, err = NewEngine(tt.cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestInitializeReservesLastSlot(t *testing.T) {
	e, err := NewEngine(Config{GridSize: 8, TokenCount: 10, Seed: 7, ReserveLast: true})
	require.NoError(t, err)

	placements, err := e.Initialize()
	require.NoError(t, err)
	require.Len(t, placements, 9)

	seen := map[int]bool{}
	for i, p := range placements {
		assert.Equal(t, i, p.ID)
		assert.False(t, seen[p.Cell], "cell %d used twice", p.Cell)
		seen[p.Cell] = true
	}

	assert.Equal(t, []int{9}, e.EmptySlots())
	assert.Equal(t, 9, e.LiveCount())
	requireRestInvariants(t, e)

	p, err := e.AddToken(9)
	require.NoError(t, err)
	assert.Equal(t, 9, p.ID)
	assert.False(t, seen[p.Cell])
	assert.Empty(t, e.EmptySlots())

	view, ok := e.Token(9)
	require.True(t, ok)
	assert.True(t, view.Added)
	requireRestInvariants(t, e)

	_, err = e.AddToken(9)
	assert.ErrorIs(t, err, ErrSlotTaken)
	_, err = e.AddToken(10)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestInitializeWithoutReserve(t *testing.T) {
	e, err := NewEngine(Config{GridSize: 2, TokenCount: 4, Seed: 3})
	require.NoError(t, err)

	placements, err := e.Initialize()
	require.NoError(t, err)
	assert.Len(t, placements, 4)
	assert.Equal(t, 0, e.FreeCellCount())
	assert.Empty(t, e.EmptySlots())

	// On a 2x2 board every pair is aligned.
	assert.Equal(t, 4, e.Snapshot().Unhappy())
	requireRestInvariants(t, e)
}

func TestInitializeIsDeterministic(t *testing.T) {
	cfg := Config{GridSize: 8, TokenCount: 10, Seed: 42, ReserveLast: true}

	a, err := NewEngine(cfg)
	require.NoError(t, err)
	b, err := NewEngine(cfg)
	require.NoError(t, err)

	pa, err := a.Initialize()
	require.NoError(t, err)
	pb, err := b.Initialize()
	require.NoError(t, err)
	assert.Equal(t, pa, pb)
	assert.Equal(t, a.Snapshot(), b.Snapshot())

	for a.LiveCount() > 0 && len(a.Movable()) > 0 {
		id := a.Movable()[0]
		ra, err := a.Play(id)
		require.NoError(t, err)
		rb, err := b.Play(id)
		require.NoError(t, err)
		assert.Equal(t, ra, rb)
		assert.Equal(t, a.Snapshot(), b.Snapshot())
	}
}

func TestWithRandOverridesSeed(t *testing.T) {
	cfg := Config{GridSize: 8, TokenCount: 10, Seed: 1}

	a, err := NewEngine(cfg, WithRand(rand.New(rand.NewSource(99))), WithLogger(log.New(io.Discard)))
	require.NoError(t, err)
	b, err := NewEngine(Config{GridSize: 8, TokenCount: 10, Seed: 99})
	require.NoError(t, err)

	pa, err := a.Initialize()
	require.NoError(t, err)
	pb, err := b.Initialize()
	require.NoError(t, err)
	assert.Equal(t, pa, pb)
}

func TestSelectTokenNoCollisions(t *testing.T) {
	e := newTestEngine(t, 8, 3, map[int]int{0: 0, 1: 14})

	sel, err := e.SelectToken(1)
	require.NoError(t, err)
	assert.Equal(t, SelectionNoCollisions, sel.Kind)
	assert.Equal(t, StateIdle, e.State())

	_, pending := e.Pending()
	assert.False(t, pending)
}

func TestSelectTokenUnknown(t *testing.T) {
	e := newTestEngine(t, 8, 3, map[int]int{0: 0})

	_, err := e.SelectToken(2)
	assert.ErrorIs(t, err, ErrTokenNotFound)
	_, err = e.SelectToken(-1)
	assert.ErrorIs(t, err, ErrTokenNotFound)
	assert.Equal(t, StateIdle, e.State())
}

func TestChainReactionHorizontal(t *testing.T) {
	// Row 4, columns 2, 4, 6 and 7.
	e := newTestEngine(t, 8, 4, map[int]int{0: 34, 1: 36, 2: 38, 3: 39})

	sel, err := e.SelectToken(0)
	require.NoError(t, err)
	require.Equal(t, SelectionMove, sel.Kind)
	assert.Equal(t, MovePlan{From: 0, To: 1, Direction: East}, sel.Move)
	assert.Equal(t, StateAnimating, e.State())

	step, err := e.CompleteMove(sel.Move)
	require.NoError(t, err)
	assert.Equal(t, Step{Kind: StepMove, Move: MovePlan{From: 1, To: 2, Direction: East}}, step)

	step, err = e.CompleteMove(step.Move)
	require.NoError(t, err)
	assert.Equal(t, Step{Kind: StepMove, Move: MovePlan{From: 2, To: 3, Direction: East}}, step)

	step, err = e.CompleteMove(step.Move)
	require.NoError(t, err)
	assert.Equal(t, Step{Kind: StepExit, Exit: MoveOut{Token: 3, Direction: East}}, step)

	report, err := e.CompleteExit(step.Exit)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Token)
	assert.Equal(t, East, report.Direction)
	assert.Equal(t, 39, report.From.Cell)
	assert.Equal(t, 3, report.Remaining)

	for id, cell := range map[int]int{0: 36, 1: 38, 2: 39} {
		view, ok := e.Token(id)
		require.True(t, ok)
		assert.Equal(t, cell, view.Cell, "roundy %d", id)
		assert.False(t, view.Happy, "roundy %d", id)
	}
	_, ok := e.Token(3)
	assert.False(t, ok)
	_, ok = e.TokenAt(34)
	assert.False(t, ok)
	assert.Equal(t, []int{3}, e.EmptySlots())

	requireRestInvariants(t, e)
}

func TestChainReactionVertical(t *testing.T) {
	// Column 4, rows 4, 2, 1 and 6.
	e := newTestEngine(t, 8, 4, map[int]int{0: 36, 1: 20, 2: 12, 3: 52})

	res, err := e.Play(3)
	require.NoError(t, err)
	assert.Equal(t, MovePlan{From: 3, To: 0, Direction: North}, res.Selection.Move)
	assert.Equal(t, []Step{
		{Kind: StepMove, Move: MovePlan{From: 0, To: 1, Direction: North}},
		{Kind: StepMove, Move: MovePlan{From: 1, To: 2, Direction: North}},
		{Kind: StepExit, Exit: MoveOut{Token: 2, Direction: North}},
	}, res.Steps)
	assert.Equal(t, 2, res.Exit.Token)
	assert.Equal(t, 12, res.Exit.From.Cell)

	owner, ok := e.TokenAt(12)
	require.True(t, ok)
	assert.Equal(t, 1, owner)
	_, ok = e.TokenAt(52)
	assert.False(t, ok)

	requireRestInvariants(t, e)
}

func TestDiagonalExitLeavesStrikerOnCell(t *testing.T) {
	// Roundy 1 on cell 36 has an empty north-west diagonal.
	e := newTestEngine(t, 8, 2, map[int]int{0: 54, 1: 36})

	sel, err := e.SelectToken(0)
	require.NoError(t, err)
	assert.Equal(t, MovePlan{From: 0, To: 1, Direction: NorthWest}, sel.Move)

	step, err := e.CompleteMove(sel.Move)
	require.NoError(t, err)
	require.Equal(t, StepExit, step.Kind)
	assert.Equal(t, MoveOut{Token: 1, Direction: NorthWest}, step.Exit)

	report, err := e.CompleteExit(step.Exit)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Remaining)
	assert.Equal(t, 36, report.From.Cell)

	owner, ok := e.TokenAt(36)
	require.True(t, ok)
	assert.Equal(t, 0, owner)
	_, ok = e.TokenAt(54)
	assert.False(t, ok)

	view, ok := e.Token(0)
	require.True(t, ok)
	assert.True(t, view.Happy)
	assert.Empty(t, view.Collisions)
	assert.Empty(t, e.Movable())

	requireRestInvariants(t, e)
}

func TestBusyWhileAnimating(t *testing.T) {
	e := newTestEngine(t, 8, 3, map[int]int{0: 54, 1: 36})

	sel, err := e.SelectToken(0)
	require.NoError(t, err)

	step, pending := e.Pending()
	require.True(t, pending)
	assert.Equal(t, Step{Kind: StepMove, Move: sel.Move}, step)

	_, err = e.SelectToken(1)
	assert.ErrorIs(t, err, ErrBusy)
	_, err = e.AddToken(2)
	assert.ErrorIs(t, err, ErrBusy)
	_, err = e.Restart()
	assert.ErrorIs(t, err, ErrBusy)

	// Nothing moved.
	view, _ := e.Token(0)
	assert.Equal(t, 54, view.Cell)
	assert.Equal(t, StateAnimating, e.State())
}

func TestUnexpectedTransitions(t *testing.T) {
	e := newTestEngine(t, 8, 4, map[int]int{0: 34, 1: 36, 2: 38, 3: 39})

	_, err := e.CompleteMove(MovePlan{From: 0, To: 1, Direction: East})
	assert.ErrorIs(t, err, ErrUnexpectedTransition)
	_, err = e.CompleteExit(MoveOut{Token: 3, Direction: East})
	assert.ErrorIs(t, err, ErrUnexpectedTransition)

	sel, err := e.SelectToken(0)
	require.NoError(t, err)

	_, err = e.CompleteMove(MovePlan{From: 0, To: 2, Direction: East})
	assert.ErrorIs(t, err, ErrUnexpectedTransition)
	_, err = e.CompleteExit(MoveOut{Token: 0, Direction: East})
	assert.ErrorIs(t, err, ErrUnexpectedTransition)

	// Continuing from the current carrier repeats the pending step.
	again, err := e.ContinueChain(0, East)
	require.NoError(t, err)
	assert.Equal(t, Step{Kind: StepMove, Move: sel.Move}, again)

	_, err = e.ContinueChain(1, East)
	assert.ErrorIs(t, err, ErrUnexpectedTransition)
	_, err = e.ContinueChain(0, West)
	assert.ErrorIs(t, err, ErrUnexpectedTransition)
	_, err = e.ContinueChain(0, Direction(9))
	assert.ErrorIs(t, err, ErrInvalidDirection)

	res, err := e.Play(0)
	assert.ErrorIs(t, err, ErrBusy)
	assert.Empty(t, res.Steps)
}

func TestPlayUntilStuck(t *testing.T) {
	for seed := int64(1); seed <= 40; seed++ {
		cfg := Config{GridSize: 8, TokenCount: 10, Seed: seed}
		e, err := NewEngine(cfg)
		require.NoError(t, err)
		_, err = e.Initialize()
		require.NoError(t, err)
		requireRestInvariants(t, e)

		pick := rand.New(rand.NewSource(seed))
		for {
			movable := e.Movable()
			if len(movable) == 0 {
				break
			}
			before := e.LiveCount()

			res, err := e.Play(movable[pick.Intn(len(movable))])
			require.NoError(t, err, "seed %d", seed)
			require.Equal(t, SelectionMove, res.Selection.Kind)
			require.LessOrEqual(t, len(res.Steps), cfg.TokenCount)
			require.Equal(t, StepExit, res.Steps[len(res.Steps)-1].Kind)
			require.Equal(t, before-1, e.LiveCount())
			require.Equal(t, e.LiveCount(), res.Exit.Remaining)

			requireRestInvariants(t, e)
		}

		// Every roundy left is happy.
		assert.Equal(t, 0, e.Snapshot().Unhappy(), "seed %d", seed)
	}
}

func TestRestartRepopulates(t *testing.T) {
	e, err := NewEngine(Config{GridSize: 6, TokenCount: 8, Seed: 5, ReserveLast: true})
	require.NoError(t, err)
	_, err = e.Initialize()
	require.NoError(t, err)

	if movable := e.Movable(); len(movable) > 0 {
		_, err = e.Play(movable[0])
		require.NoError(t, err)
	}

	placements, err := e.Restart()
	require.NoError(t, err)
	assert.Len(t, placements, 7)
	assert.Equal(t, 7, e.LiveCount())
	assert.Equal(t, []int{7}, e.EmptySlots())
	requireRestInvariants(t, e)
}

func TestBoardOwnership(t *testing.T) {
	b := NewBoard(4, 3)

	a, err := b.place(0, 5)
	require.NoError(t, err)
	_, err = b.place(1, 5)
	assert.ErrorIs(t, err, ErrBoardFull)
	_, err = b.place(0, 6)
	assert.ErrorIs(t, err, ErrSlotTaken)
	_, err = b.place(3, 6)
	assert.ErrorIs(t, err, ErrTokenNotFound)

	c, err := b.place(1, 6)
	require.NoError(t, err)

	// Striker takes the struck roundy's cell, then the struck one leaves.
	b.relocate(a, c.Position())
	owner, ok := b.Owner(5)
	assert.False(t, ok, "cell 5 still owned by %d", owner)
	owner, ok = b.Owner(6)
	require.True(t, ok)
	assert.Equal(t, 0, owner)

	_, err = b.remove(1)
	require.NoError(t, err)
	owner, ok = b.Owner(6)
	require.True(t, ok)
	assert.Equal(t, 0, owner)

	_, err = b.remove(1)
	assert.ErrorIs(t, err, ErrTokenNotFound)
	assert.Equal(t, 1, b.LiveCount())
	assert.Len(t, b.FreeCells(), 15)
	assert.Equal(t, []*Token{a, nil, nil}, b.slotTokens())
}

func TestSnapshot(t *testing.T) {
	e := newTestEngine(t, 4, 3, map[int]int{0: 0, 1: 5, 2: 11})

	snap := e.Snapshot()
	assert.Equal(t, 4, snap.GridSize)
	assert.Equal(t, StateIdle, snap.State)
	require.Len(t, snap.Tokens, 3)
	assert.Equal(t, 2, snap.Unhappy())
	assert.Equal(t, []Collision{{With: 1, Direction: SouthEast}}, snap.Tokens[0].Collisions)
	assert.Equal(t, []Collision{{With: 0, Direction: NorthWest}}, snap.Tokens[1].Collisions)
	assert.Empty(t, snap.Tokens[2].Collisions)

	want := "x...\n" +
		".x..\n" +
		"...o\n" +
		"...."
	assert.Equal(t, want, snap.String())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "animating", StateAnimating.String())
	assert.Equal(t, "unknown", State(7).String())
}
