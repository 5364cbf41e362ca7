package flatworld

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/flatworld/internal/games/flatworld/world"
)

// motion is a single transition on screen: one roundy sliding onto
// another's cell, or rolling off the board.
type motion struct {
	step  world.Step
	id    int
	tween *gween.Tween

	fromRow, fromCol float32
	dRow, dCol       float32 // Total displacement in cells
	progress         float32 // 0 at the start, 1 at the end
}

// newSlide creates the motion of step.Move from one cell to another.
func newSlide(step world.Step, from, to world.Position, seconds float32, easing ease.TweenFunc) *motion {
	return &motion{
		step:    step,
		id:      step.Move.From,
		tween:   gween.New(0, 1, seconds, easing),
		fromRow: float32(from.Row),
		fromCol: float32(from.Column),
		dRow:    float32(to.Row - from.Row),
		dCol:    float32(to.Column - from.Column),
	}
}

// newExit creates the motion of step.Exit over steps cells, ending just
// past the board edge.
func newExit(step world.Step, from world.Position, steps int, seconds float32, easing ease.TweenFunc) *motion {
	dRow, dCol := step.Exit.Direction.Delta()
	return &motion{
		step:    step,
		id:      step.Exit.Token,
		tween:   gween.New(0, 1, seconds, easing),
		fromRow: float32(from.Row),
		fromCol: float32(from.Column),
		dRow:    float32(dRow * steps),
		dCol:    float32(dCol * steps),
	}
}

// update advances the tween by dt seconds and reports whether it finished.
func (m *motion) update(dt float32) bool {
	v, done := m.tween.Update(dt)
	m.progress = v
	return done
}

// at returns the cell the moving roundy is drawn in.
func (m *motion) at() (row, col int) {
	r := m.fromRow + m.dRow*m.progress
	c := m.fromCol + m.dCol*m.progress
	return int(math.Round(float64(r))), int(math.Round(float64(c)))
}

// easingFor maps a config easing name to a tween function.
func easingFor(name string) ease.TweenFunc {
	switch name {
	case "linear":
		return ease.Linear
	case "in_out_quad":
		return ease.InOutQuad
	case "out_cubic":
		return ease.OutCubic
	default:
		return ease.OutQuad
	}
}
