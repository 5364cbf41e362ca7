package flatworld

import "github.com/vovakirdan/flatworld/internal/games/flatworld/world"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateAnimating   GameStateType = "animating"
	StateGameOver    GameStateType = "game_over"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Tick      uint64
	Variant   string
	Score     int
	Moves     int
	CursorRow int
	CursorCol int
	Reserved  bool // The reserved roundy can still be added
	Toast     string
	Board     world.Snapshot
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.paused:
		state = StatePaused
	case g.gameOver:
		state = StateGameOver
	case g.motion != nil:
		state = StateAnimating
	}

	return Snapshot{
		Tick:      g.tick,
		Variant:   g.ID(),
		Score:     g.score,
		Moves:     g.moves,
		CursorRow: g.cursorRow,
		CursorCol: g.cursorCol,
		Reserved:  g.reserved,
		Toast:     g.toast.text,
		Board:     g.engine.Snapshot(),
		State:     state,
	}
}
