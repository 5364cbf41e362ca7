package world

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
)

// State is the engine's position in the move cycle.
type State int

const (
	// StateIdle accepts moves.
	StateIdle State = iota
	// StateAnimating runs a chain reaction; moves are rejected with ErrBusy.
	StateAnimating
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAnimating:
		return "animating"
	default:
		return "unknown"
	}
}

// Config describes a board.
type Config struct {
	GridSize   int   // Side length of the square grid
	TokenCount int   // Number of roundy slots
	Seed       int64 // Seed for placement and partner choice
	// ReserveLast leaves the last slot empty at initialization so the
	// player can add that roundy later.
	ReserveLast bool
}

// Validate checks that the board can hold the requested roundies.
func (c Config) Validate() error {
	if c.GridSize < 1 {
		return fmt.Errorf("%w: grid size %d", ErrInvalidConfig, c.GridSize)
	}
	if c.TokenCount < 1 || c.TokenCount > c.GridSize*c.GridSize {
		return fmt.Errorf("%w: %d roundies on a %dx%d grid",
			ErrInvalidConfig, c.TokenCount, c.GridSize, c.GridSize)
	}
	return nil
}

// Placement reports where a roundy was put.
type Placement struct {
	ID int
	Position
}

// MovePlan tells the presentation layer to roll From onto To's cell.
type MovePlan struct {
	From      int
	To        int
	Direction Direction
}

// MoveOut tells the presentation layer that Token rolls off the board.
type MoveOut struct {
	Token     int
	Direction Direction
}

// SelectionKind tells whether selecting a roundy started a move.
type SelectionKind int

const (
	// SelectionNoCollisions means the roundy has nobody to hit.
	SelectionNoCollisions SelectionKind = iota
	// SelectionMove means a chain reaction started with Move.
	SelectionMove
)

// Selection is the outcome of SelectToken.
type Selection struct {
	Kind SelectionKind
	Move MovePlan
}

// StepKind distinguishes the two kinds of chain step.
type StepKind int

const (
	// StepMove means the moving roundy strikes another one.
	StepMove StepKind = iota
	// StepExit means the moving roundy leaves the board.
	StepExit
)

// Step is the next visual transition of a chain reaction.
// Exactly one of Move and Exit is meaningful, according to Kind.
type Step struct {
	Kind StepKind
	Move MovePlan
	Exit MoveOut
}

// ExitReport describes a roundy that fell off the board.
type ExitReport struct {
	Token     int
	Direction Direction
	From      Position // Last cell the roundy occupied
	Remaining int      // Roundies left on the board
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger routes engine and detector logs to logger.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithRand replaces the seeded random source.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// Engine runs a Flatworld board.
//
// The engine never animates anything. SelectToken and every completion hand
// back the next transition as a value; the caller renders it and reports
// back with CompleteMove or CompleteExit. Between the two the board is not
// touched. An Engine is not safe for concurrent use.
type Engine struct {
	cfg      Config
	rng      *rand.Rand
	logger   *log.Logger
	detector *Detector
	board    *Board
	state    State

	// Chain bookkeeping while animating.
	pending Step      // transition handed out and not yet completed
	carrier int       // roundy currently carrying the impulse
	heading Direction // direction of the impulse
}

// NewEngine creates an engine for cfg. Call Initialize to populate the board.
func NewEngine(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.detector = NewDetector(cfg.GridSize, e.logger)
	e.board = NewBoard(cfg.GridSize, cfg.TokenCount)
	return e, nil
}

// Initialize clears the board and places the initial roundies on random
// free cells, then computes collisions. With ReserveLast the last slot is
// left for AddToken.
func (e *Engine) Initialize() ([]Placement, error) {
	e.board = NewBoard(e.cfg.GridSize, e.cfg.TokenCount)
	e.state = StateIdle
	e.pending = Step{}

	count := e.cfg.TokenCount
	if e.cfg.ReserveLast {
		count--
	}

	placements := make([]Placement, 0, count)
	for id := 0; id < count; id++ {
		t, err := e.placeOnFreeCell(id)
		if err != nil {
			return nil, err
		}
		placements = append(placements, Placement{ID: id, Position: t.Position()})
	}

	e.recompute()
	e.logger.Info("board initialized",
		"grid", e.cfg.GridSize, "roundies", len(placements), "slots", e.cfg.TokenCount)
	return placements, nil
}

// Restart re-initializes the board unless a chain reaction is running.
func (e *Engine) Restart() ([]Placement, error) {
	if e.state == StateAnimating {
		return nil, ErrBusy
	}
	return e.Initialize()
}

// AddToken places a new roundy in slot id on a random free cell and
// recomputes collisions. The engine stays in its current state; adding
// during a chain reaction is rejected with ErrBusy.
func (e *Engine) AddToken(id int) (Placement, error) {
	if e.state == StateAnimating {
		return Placement{}, ErrBusy
	}

	t, err := e.placeOnFreeCell(id)
	if err != nil {
		return Placement{}, err
	}
	t.added = true

	e.recompute()
	e.logger.Debug("roundy added", "id", id, "cell", t.Cell())
	return Placement{ID: id, Position: t.Position()}, nil
}

// placeOnFreeCell puts slot id on a uniformly chosen free cell.
func (e *Engine) placeOnFreeCell(id int) (*Token, error) {
	if id < 0 || id >= e.board.Capacity() {
		return nil, fmt.Errorf("%w: id %d outside %d slots", ErrTokenNotFound, id, e.board.Capacity())
	}
	if _, live := e.board.Token(id); live {
		return nil, fmt.Errorf("%w: id %d", ErrSlotTaken, id)
	}

	free := e.board.FreeCells()
	if len(free) == 0 {
		return nil, ErrBoardFull
	}
	cell := free[e.rng.Intn(len(free))]
	return e.board.place(id, cell)
}

// SelectToken starts a chain reaction from roundy id.
//
// A partner is drawn uniformly from the roundy's collisions. If other
// partners lie in the same direction, the nearest of them is struck
// instead, so no roundy jumps over another.
func (e *Engine) SelectToken(id int) (Selection, error) {
	if e.state == StateAnimating {
		return Selection{}, ErrBusy
	}

	mover, ok := e.board.Token(id)
	if !ok {
		return Selection{}, fmt.Errorf("%w: id %d", ErrTokenNotFound, id)
	}

	collisions := mover.Collisions()
	if len(collisions) == 0 {
		e.logger.Debug("nothing to hit", "id", id)
		return Selection{Kind: SelectionNoCollisions}, nil
	}

	pick := collisions[e.rng.Intn(len(collisions))]
	e.logger.Debug("random partner", "id", id, "partner", pick.With, "direction", pick.Direction)

	sameDirection := make([]*Token, 0, len(collisions))
	for _, c := range collisions {
		if c.Direction != pick.Direction {
			continue
		}
		if other, live := e.board.Token(c.With); live {
			sameDirection = append(sameDirection, other)
		}
	}

	target, live := e.board.Token(pick.With)
	if !live {
		return Selection{}, fmt.Errorf("%w: partner %d of %d", ErrTokenNotFound, pick.With, id)
	}
	if len(sameDirection) > 1 {
		closest, err := e.detector.FindClosest(mover, sameDirection, pick.Direction)
		if err != nil {
			panic(fmt.Sprintf("world: closest partner of %d: %v", id, err))
		}
		target = closest
	}

	plan := MovePlan{From: id, To: target.ID(), Direction: pick.Direction}
	e.state = StateAnimating
	e.pending = Step{Kind: StepMove, Move: plan}
	e.carrier = id
	e.heading = pick.Direction

	e.logger.Info("roundy flicked", "id", id, "direction", plan.Direction, "target", plan.To)
	return Selection{Kind: SelectionMove, Move: plan}, nil
}

// CompleteMove is called once the presentation layer has shown plan.
// The mover takes the struck roundy's cell and the impulse passes to the
// struck roundy; the returned step is the next transition to show.
func (e *Engine) CompleteMove(plan MovePlan) (Step, error) {
	if e.state != StateAnimating || e.pending.Kind != StepMove || e.pending.Move != plan {
		return Step{}, fmt.Errorf("%w: move %d->%d", ErrUnexpectedTransition, plan.From, plan.To)
	}

	mover, ok := e.board.Token(plan.From)
	if !ok {
		return Step{}, fmt.Errorf("%w: id %d", ErrTokenNotFound, plan.From)
	}
	struck, ok := e.board.Token(plan.To)
	if !ok {
		return Step{}, fmt.Errorf("%w: id %d", ErrTokenNotFound, plan.To)
	}

	e.board.relocate(mover, struck.Position())
	e.carrier = struck.ID()
	e.logger.Debug("transfer movement", "from", mover.ID(), "to", struck.ID(), "direction", plan.Direction)

	return e.ContinueChain(struck.ID(), plan.Direction)
}

// ContinueChain computes where the roundy carrying the impulse goes next:
// onto the first partner it meets rolling in dir, or off the board.
// It may only be called for the current carrier and is idempotent.
func (e *Engine) ContinueChain(id int, dir Direction) (Step, error) {
	if !dir.Valid() {
		return Step{}, fmt.Errorf("%w: %d", ErrInvalidDirection, uint8(dir))
	}
	if e.state != StateAnimating || id != e.carrier || dir != e.heading {
		return Step{}, fmt.Errorf("%w: continue %d towards %s", ErrUnexpectedTransition, id, dir)
	}

	t, ok := e.board.Token(id)
	if !ok {
		return Step{}, fmt.Errorf("%w: id %d", ErrTokenNotFound, id)
	}

	var next *Token
	for _, c := range t.Collisions() {
		if c.Direction != dir {
			continue
		}
		found, live := e.board.Token(c.With)
		if !live {
			continue
		}
		if next == nil || reachedFirst(found, next, dir) {
			next = found
		}
	}

	var step Step
	if next == nil {
		step = Step{Kind: StepExit, Exit: MoveOut{Token: id, Direction: dir}}
		e.logger.Debug("falls off the world", "id", id, "direction", dir)
	} else {
		step = Step{Kind: StepMove, Move: MovePlan{From: id, To: next.ID(), Direction: dir}}
		e.logger.Debug("closest partner", "id", id, "partner", next.ID(), "direction", dir)
	}
	e.pending = step
	return step, nil
}

// reachedFirst reports whether found lies before current when rolling in dir.
func reachedFirst(found, current *Token, dir Direction) bool {
	switch dir {
	case North, NorthEast, NorthWest:
		return found.Row() > current.Row()
	case South, SouthEast, SouthWest:
		return found.Row() < current.Row()
	case East:
		return found.Column() < current.Column()
	case West:
		return found.Column() > current.Column()
	default:
		return false
	}
}

// CompleteExit is called once the presentation layer has shown out. The
// roundy is removed, collisions and happiness are recomputed for everyone
// left and the engine returns to idle.
func (e *Engine) CompleteExit(out MoveOut) (ExitReport, error) {
	if e.state != StateAnimating || e.pending.Kind != StepExit || e.pending.Exit != out {
		return ExitReport{}, fmt.Errorf("%w: exit of %d", ErrUnexpectedTransition, out.Token)
	}

	t, err := e.board.remove(out.Token)
	if err != nil {
		return ExitReport{}, err
	}

	e.recompute()
	e.state = StateIdle
	e.pending = Step{}

	report := ExitReport{
		Token:     out.Token,
		Direction: out.Direction,
		From:      t.Position(),
		Remaining: e.board.LiveCount(),
	}
	e.logger.Info("roundy died", "id", out.Token, "direction", out.Direction, "remaining", report.Remaining)
	return report, nil
}

// recompute rebuilds every collision map and derives happiness from it.
func (e *Engine) recompute() {
	live := e.board.Live()
	for _, t := range live {
		t.ResetCollisions()
		t.SetHappy(true)
	}

	e.detector.MarkCollisions(e.board.slotTokens(), func(a, b *Token) {
		a.SetHappy(false)
		b.SetHappy(false)
	})

	if e.logger.GetLevel() <= log.DebugLevel {
		for _, t := range live {
			e.logger.Debug("collisions", "roundy", t.String(), "with", t.Collisions())
		}
	}
}

// State returns the engine state.
func (e *Engine) State() State { return e.state }

// Pending returns the transition awaiting completion, if animating.
func (e *Engine) Pending() (Step, bool) {
	if e.state != StateAnimating {
		return Step{}, false
	}
	return e.pending, true
}

// GridSize returns the board side length.
func (e *Engine) GridSize() int { return e.cfg.GridSize }

// Capacity returns the number of roundy slots.
func (e *Engine) Capacity() int { return e.cfg.TokenCount }

// LiveCount returns the number of roundies on the board.
func (e *Engine) LiveCount() int { return e.board.LiveCount() }

// FreeCellCount returns the number of unowned cells.
func (e *Engine) FreeCellCount() int { return len(e.board.FreeCells()) }

// TokenAt returns the id of the roundy owning cell.
func (e *Engine) TokenAt(cell int) (int, bool) { return e.board.Owner(cell) }

// Token returns a read-only view of roundy id.
func (e *Engine) Token(id int) (TokenView, bool) {
	t, ok := e.board.Token(id)
	if !ok {
		return TokenView{}, false
	}
	return viewOf(t), true
}

// Movable returns the ids of roundies with at least one collision, ascending.
func (e *Engine) Movable() []int {
	var ids []int
	for _, t := range e.board.Live() {
		if t.CollisionCount() > 0 {
			ids = append(ids, t.ID())
		}
	}
	return ids
}

// EmptySlots returns the ids of empty slots, ascending.
func (e *Engine) EmptySlots() []int {
	var ids []int
	for id := 0; id < e.board.Capacity(); id++ {
		if _, live := e.board.Token(id); !live {
			ids = append(ids, id)
		}
	}
	return ids
}
