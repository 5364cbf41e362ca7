package flatworld

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/flatworld/internal/config"
)

func classicBoard() config.BoardConfig {
	return config.DefaultFlatworldConfig().Board
}

func TestSimulateSettles(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		res, err := Simulate(SimOptions{Board: classicBoard(), Seed: seed})
		require.NoError(t, err, "seed %d", seed)

		assert.True(t, res.Settled, "seed %d", seed)
		assert.Equal(t, 0, res.Final.Unhappy(), "seed %d: settled board has an unhappy roundy", seed)
		assert.Equal(t, res.Moves, res.Lost, "seed %d: every flick knocks one roundy off", seed)

		placed := classicBoard().TokenCount - 1
		if res.Added {
			placed++
		}
		assert.Len(t, res.Final.Tokens, placed-res.Lost, "seed %d", seed)
	}
}

func TestSimulateDeterministic(t *testing.T) {
	a, err := Simulate(SimOptions{Board: classicBoard(), Seed: 42})
	require.NoError(t, err)
	b, err := Simulate(SimOptions{Board: classicBoard(), Seed: 42})
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestSimulateMaxMoves(t *testing.T) {
	board := config.BoardConfig{GridSize: 8, TokenCount: 20}

	full, err := Simulate(SimOptions{Board: board, Seed: 3})
	require.NoError(t, err)
	require.Greater(t, full.Moves, 1, "need a board with more than one move")

	capped, err := Simulate(SimOptions{Board: board, Seed: 3, MaxMoves: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, capped.Moves)
	assert.False(t, capped.Settled)
	assert.Len(t, capped.Final.Tokens, board.TokenCount-1)
}

func TestSimulateWithoutReserve(t *testing.T) {
	board := config.BoardConfig{GridSize: 6, TokenCount: 7}

	res, err := Simulate(SimOptions{Board: board, Seed: 9})
	require.NoError(t, err)
	assert.False(t, res.Added)
	assert.True(t, res.Settled)
	assert.Len(t, res.Final.Tokens, board.TokenCount-res.Lost)
}

func TestSimulateRejectsBadBoard(t *testing.T) {
	bad := []config.BoardConfig{
		{GridSize: 1, TokenCount: 1},
		{GridSize: 0, TokenCount: 1},
		{GridSize: 3, TokenCount: 0},
		{GridSize: 3, TokenCount: 10},
	}
	for _, board := range bad {
		res, err := Simulate(SimOptions{Board: board, Seed: 1})
		require.Error(t, err, "%+v", board)
		assert.Contains(t, err.Error(), "flatworld: config:", "%+v", board)
		assert.Zero(t, res.Moves, "%+v", board)
		assert.Empty(t, res.Final.Tokens, "%+v", board)
	}
}
