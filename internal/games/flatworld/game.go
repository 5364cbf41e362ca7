// Package flatworld adapts the Flatworld board to the game platform:
// a cursor to pick roundies, tweened slides and exits, and status toasts.
package flatworld

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flatworld/internal/config"
	"github.com/vovakirdan/flatworld/internal/core"
	"github.com/vovakirdan/flatworld/internal/games/flatworld/world"
	"github.com/vovakirdan/flatworld/internal/registry"
)

// Variant identifiers as registered with the platform.
const (
	IDClassic = "flatworld"
	IDSmall   = "flatworld_small"
	IDLarge   = "flatworld_large"
)

// Toast messages.
const (
	toastBusy         = "Busy, wait for the roundies to settle"
	toastNoCollisions = "This roundy has nobody to hit"
	toastEmptyCell    = "No roundy here"
	toastDied         = "Roundy %d fell off the world"
	toastAdded        = "Roundy %d joined the world"
	toastNoReserve    = "No roundy left to add"
	toastBoardFull    = "No free cell for a new roundy"
	toastRedealt      = "The chain got lost, dealt a new board"
)

// configPath stores the custom config path set via CLI
var configPath string

// logger receives engine logs; silent unless SetLogger is called.
var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetLogger routes engine logs of games created afterwards to l.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

func init() {
	registry.Register(IDClassic, func() registry.Game { return New() })
	registry.Register(IDSmall, func() registry.Game { return NewVariant("small") })
	registry.Register(IDLarge, func() registry.Game { return NewVariant("large") })
}

// VariantOf returns the config variant behind a registered id,
// e.g. "small" for flatworld_small.
func VariantOf(id string) (string, bool) {
	if id == IDClassic {
		return config.ClassicVariant, true
	}
	variant, ok := strings.CutPrefix(id, IDClassic+"_")
	return variant, ok && variant != ""
}

// Game implements the Flatworld puzzle on top of world.Engine.
type Game struct {
	variant string

	engine *world.Engine
	board  config.BoardConfig
	anim   config.AnimationConfig
	dt     float32 // Seconds per tick
	tick   uint64

	cursorRow int
	cursorCol int

	motion *motion // Transition being shown, nil when the board is at rest
	toast  toast

	score    int  // Roundies knocked off the board
	moves    int  // Flicks that started a chain reaction
	reserved bool // The reserved roundy is still waiting to be added

	screenW  int
	screenH  int
	gameOver bool
	paused   bool
	tooSmall bool
}

// New creates a classic 8x8 Flatworld game.
func New() *Game {
	return &Game{variant: config.ClassicVariant}
}

// NewVariant creates a game for a named board variant from the config.
func NewVariant(variant string) *Game {
	return &Game{variant: variant}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	switch g.variant {
	case config.ClassicVariant, "":
		return IDClassic
	default:
		return IDClassic + "_" + g.variant
	}
}

// Title returns the display name.
func (g *Game) Title() string {
	switch g.variant {
	case config.ClassicVariant, "":
		return "Flatworld"
	case "small":
		return "Flatworld (Small)"
	case "large":
		return "Flatworld (Large)"
	default:
		return fmt.Sprintf("Flatworld (%s)", g.variant)
	}
}

// Reset loads the configuration and deals a new board.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadFlatworld(configPath)
	if err != nil {
		logger.Warn("falling back to default config", "err", err)
		cfg = config.DefaultFlatworldConfig()
	}
	board, err := cfg.BoardFor(g.variant)
	if err != nil {
		logger.Warn("falling back to classic board", "variant", g.variant, "err", err)
		board = cfg.Board
	}

	g.board = board
	g.anim = cfg.Animation
	g.screenW = runtime.ScreenW
	g.screenH = runtime.ScreenH

	g.dt = runtime.Dt()

	engine, err := world.NewEngine(world.Config{
		GridSize:    board.GridSize,
		TokenCount:  board.TokenCount,
		Seed:        runtime.Seed,
		ReserveLast: board.ReserveLast,
	}, world.WithLogger(logger))
	if err != nil {
		// Board configs are validated on load, so this is a programming error.
		panic(fmt.Sprintf("flatworld: %v", err))
	}
	g.engine = engine

	g.tick = 0
	g.paused = false
	g.checkScreenSize()
	g.deal()
}

// deal puts a fresh board in place and clears the session counters.
func (g *Game) deal() {
	if _, err := g.engine.Initialize(); err != nil {
		panic(fmt.Sprintf("flatworld: initialize: %v", err))
	}
	g.newSession()
}

// newSession clears everything but the board.
func (g *Game) newSession() {
	g.score = 0
	g.moves = 0
	g.reserved = g.board.ReserveLast
	g.motion = nil
	g.toast = toast{}
	g.cursorRow = g.board.GridSize / 2
	g.cursorCol = g.board.GridSize / 2
	g.gameOver = false
	g.checkGameOver()
}

// Resize adapts the layout to a new terminal size without dealing a new board.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	w, h := g.layoutSize()
	g.tooSmall = g.screenW < w || g.screenH < h
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	// Handle window size check
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	// Handle pause
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.toast.step()

	// The platform deals a new board on restart after game over
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	g.moveCursor(in)

	switch {
	case in.Has(core.ActionRestart):
		g.restart()
	case in.Has(core.ActionConfirm):
		g.flick()
	case in.Has(core.ActionAdd):
		g.add()
	}

	if g.motion != nil && g.motion.update(g.dt) {
		g.finishMotion()
	}

	return core.StepResult{State: g.State()}
}

// moveCursor handles cursor movement, clamped to the grid.
func (g *Game) moveCursor(in core.InputFrame) {
	n := g.board.GridSize
	switch {
	case in.Has(core.ActionUp):
		g.cursorRow--
	case in.Has(core.ActionDown):
		g.cursorRow++
	case in.Has(core.ActionLeft):
		g.cursorCol--
	case in.Has(core.ActionRight):
		g.cursorCol++
	}
	g.cursorRow = core.Clamp(g.cursorRow, 0, n-1)
	g.cursorCol = core.Clamp(g.cursorCol, 0, n-1)
}

// restart deals a new board unless a chain reaction is running.
func (g *Game) restart() {
	if _, err := g.engine.Restart(); err != nil {
		g.showError(err)
		return
	}
	g.newSession()
}

// flick selects the roundy under the cursor.
func (g *Game) flick() {
	cell := world.CellIndex(g.cursorRow, g.cursorCol, g.board.GridSize)
	id, ok := g.engine.TokenAt(cell)
	if !ok {
		g.showToast(toastEmptyCell)
		return
	}

	sel, err := g.engine.SelectToken(id)
	if err != nil {
		g.showError(err)
		return
	}
	if sel.Kind == world.SelectionNoCollisions {
		g.showToast(toastNoCollisions)
		return
	}

	g.moves++
	g.startMotion(world.Step{Kind: world.StepMove, Move: sel.Move})
}

// add places the reserved roundy once.
func (g *Game) add() {
	if !g.reserved {
		g.showToast(toastNoReserve)
		return
	}

	id := g.board.TokenCount - 1
	p, err := g.engine.AddToken(id)
	if err != nil {
		g.showError(err)
		return
	}
	g.reserved = false
	g.showToast(fmt.Sprintf(toastAdded, p.ID))
	g.checkGameOver()
}

// startMotion begins showing step.
func (g *Game) startMotion(step world.Step) {
	n := g.board.GridSize
	switch step.Kind {
	case world.StepMove:
		from, _ := g.engine.Token(step.Move.From)
		to, _ := g.engine.Token(step.Move.To)
		g.motion = newSlide(step, from.Position, to.Position, float32(g.anim.SlideSeconds), easingFor(g.anim.Easing))
	case world.StepExit:
		from, _ := g.engine.Token(step.Exit.Token)
		steps := world.StepsToEdge(from.Position, step.Exit.Direction, n)
		g.motion = newExit(step, from.Position, steps, float32(g.anim.ExitSeconds), easingFor(g.anim.Easing))
	}
}

// finishMotion reports the shown transition to the engine and starts the next one.
func (g *Game) finishMotion() {
	step := g.motion.step
	g.motion = nil

	switch step.Kind {
	case world.StepMove:
		next, err := g.engine.CompleteMove(step.Move)
		if err != nil {
			g.redeal("complete move", err)
			return
		}
		g.startMotion(next)
	case world.StepExit:
		report, err := g.engine.CompleteExit(step.Exit)
		if err != nil {
			g.redeal("complete exit", err)
			return
		}
		g.score++
		g.showToast(fmt.Sprintf(toastDied, report.Token))
		g.checkGameOver()
	}
}

// redeal replaces a board whose chain reaction the engine no longer accepts.
// The engine would otherwise stay busy for the rest of the session.
func (g *Game) redeal(op string, err error) {
	logger.Error(op, "err", err)
	g.deal()
	g.showToast(toastRedealt)
}

// checkGameOver ends the session when no roundy can move and none can be added.
func (g *Game) checkGameOver() {
	if g.engine.State() != world.StateIdle {
		return
	}
	canAdd := g.reserved && g.engine.FreeCellCount() > 0
	g.gameOver = len(g.engine.Movable()) == 0 && !canAdd
}

// showError turns an engine rejection into a toast.
func (g *Game) showError(err error) {
	switch {
	case errors.Is(err, world.ErrBusy):
		g.showToast(toastBusy)
	case errors.Is(err, world.ErrBoardFull):
		g.showToast(toastBoardFull)
	default:
		logger.Warn("rejected", "err", err)
		g.showToast(err.Error())
	}
}

// showToast displays text in the status line.
func (g *Game) showToast(text string) {
	tickRate := 1 / g.dt
	g.toast = toast{text: text, ticks: int(float32(g.anim.ToastSeconds) * tickRate)}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Moves:    g.moves,
		GameOver: g.gameOver,
		Paused:   g.paused || g.tooSmall,
	}
}

// toast is a status message that disappears after a number of ticks.
type toast struct {
	text  string
	ticks int
}

func (t *toast) step() {
	if t.ticks > 0 {
		t.ticks--
		if t.ticks == 0 {
			t.text = ""
		}
	}
}

func (t toast) visible() bool { return t.text != "" }
