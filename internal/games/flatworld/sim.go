package flatworld

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flatworld/internal/config"
	"github.com/vovakirdan/flatworld/internal/games/flatworld/world"
)

// SimOptions configures a headless run.
type SimOptions struct {
	Board    config.BoardConfig
	Seed     int64
	MaxMoves int // 0 means play until the board settles
	Logger   *log.Logger
}

// SimResult is the outcome of a headless run.
type SimResult struct {
	Moves   int
	Lost    int
	Added   bool
	Settled bool // false when MaxMoves stopped the run early
	Final   world.Snapshot
}

// Simulate plays a board without rendering: it flicks a random unhappy
// roundy, drives its chain reaction to the end and repeats until nothing
// can move. The reserved roundy is added the first time the board settles.
func Simulate(opts SimOptions) (SimResult, error) {
	if err := opts.Board.Validate(); err != nil {
		return SimResult{}, fmt.Errorf("flatworld: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	engine, err := world.NewEngine(world.Config{
		GridSize:    opts.Board.GridSize,
		TokenCount:  opts.Board.TokenCount,
		Seed:        opts.Seed,
		ReserveLast: opts.Board.ReserveLast,
	}, world.WithLogger(logger))
	if err != nil {
		return SimResult{}, fmt.Errorf("flatworld: %w", err)
	}
	if _, err := engine.Initialize(); err != nil {
		return SimResult{}, fmt.Errorf("flatworld: initialize: %w", err)
	}

	// The picker has its own stream so the engine's choices match an interactive run
	picker := rand.New(rand.NewSource(opts.Seed))
	reserved := opts.Board.ReserveLast

	var res SimResult
	for opts.MaxMoves <= 0 || res.Moves < opts.MaxMoves {
		movable := engine.Movable()
		if len(movable) == 0 {
			if !reserved || engine.FreeCellCount() == 0 {
				res.Settled = true
				break
			}
			p, err := engine.AddToken(opts.Board.TokenCount - 1)
			if err != nil {
				return res, fmt.Errorf("flatworld: add reserved roundy: %w", err)
			}
			reserved = false
			res.Added = true
			logger.Info("added reserved roundy", "id", p.ID, "cell", p.Position.Cell)
			continue
		}

		id := movable[picker.Intn(len(movable))]
		chain, err := engine.Play(id)
		if err != nil {
			return res, fmt.Errorf("flatworld: play %d: %w", id, err)
		}
		res.Moves++
		if chain.Selection.Kind == world.SelectionMove {
			res.Lost++
			logger.Info("move",
				"n", res.Moves,
				"flicked", id,
				"steps", len(chain.Steps),
				"lost", chain.Exit.Token,
				"direction", chain.Exit.Direction,
				"remaining", chain.Exit.Remaining,
			)
		}
	}

	res.Final = engine.Snapshot()
	return res, nil
}
