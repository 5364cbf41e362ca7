package flatworld

import (
	"fmt"

	"github.com/vovakirdan/flatworld/internal/core"
	"github.com/vovakirdan/flatworld/internal/games/flatworld/world"
)

const (
	cellWidth  = 3 // Characters per grid cell: cursor, roundy, cursor
	hudHeight  = 2 // Title and counters above the board
	statusRows = 2 // Toast line and key hints below the board

	roundyGlyph = '●'
	emptyGlyph  = '·'
)

const hintText = "arrows/hjkl move  enter flick  a add  r restart  p pause  q quit"

// layoutSize returns the smallest screen that fits the board.
func (g *Game) layoutSize() (w, h int) {
	boardW := g.board.GridSize*cellWidth + 2
	boardH := g.board.GridSize + 2
	return core.Max(boardW, 24), hudHeight + boardH + statusRows
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Check screen size
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	n := g.board.GridSize
	board := core.NewRect((g.screenW-(n*cellWidth+2))/2, hudHeight, n*cellWidth+2, n+2)

	g.renderHUD(dst, board)
	dst.DrawBox(board)
	g.renderCells(dst, board)
	g.renderStatus(dst, board)
	g.renderOverlays(dst, board)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	w, h := g.layoutSize()
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", w, h))
}

// renderHUD draws the title and counters.
func (g *Game) renderHUD(dst *core.Screen, board core.Rect) {
	dst.DrawTextCentered(0, g.Title())

	left := fmt.Sprintf("Lost: %d", g.score)
	dst.DrawText(board.X, 1, left)

	right := fmt.Sprintf("Moves: %d  Left: %d", g.moves, g.engine.LiveCount())
	x := board.Right() - len(right)
	if x < board.X+len(left)+1 {
		x = board.X + len(left) + 1
	}
	dst.DrawText(x, 1, right)
}

// cellOrigin returns the screen column of a grid cell's left cursor slot.
func cellOrigin(board core.Rect, row, col int) (x, y int) {
	inner := board.Inner()
	return inner.X + col*cellWidth, inner.Y + row
}

// renderCells draws empty cells, roundies, the moving roundy and the cursor.
func (g *Game) renderCells(dst *core.Screen, board core.Rect) {
	n := g.board.GridSize
	for row := range n {
		for col := range n {
			x, y := cellOrigin(board, row, col)
			dst.SetColored(x+1, y, emptyGlyph, core.ColorGray)
		}
	}

	moving := -1
	if g.motion != nil {
		moving = g.motion.id
	}

	for _, t := range g.engine.Snapshot().Tokens {
		if t.ID == moving {
			continue
		}
		x, y := cellOrigin(board, t.Row, t.Column)
		dst.SetColored(x+1, y, roundyGlyph, roundyColor(t))
	}

	if g.motion != nil {
		row, col := g.motion.at()
		if world.InGrid(row, col, n) {
			x, y := cellOrigin(board, row, col)
			dst.SetColored(x+1, y, roundyGlyph, core.ColorBrightWhite)
		}
	}

	x, y := cellOrigin(board, g.cursorRow, g.cursorCol)
	dst.SetColored(x, y, '[', core.ColorCyan)
	dst.SetColored(x+2, y, ']', core.ColorCyan)
}

// roundyColor picks green for happy roundies and red for unhappy ones.
// The added roundy is yellow while happy and orange while not.
func roundyColor(t world.TokenView) core.Color {
	switch {
	case t.Added && t.Happy:
		return core.ColorYellow
	case t.Added:
		return core.ColorOrange
	case t.Happy:
		return core.ColorGreen
	default:
		return core.ColorRed
	}
}

// renderStatus draws the toast line and the key hints.
func (g *Game) renderStatus(dst *core.Screen, board core.Rect) {
	y := board.Bottom()
	if g.toast.visible() {
		dst.DrawTextCenteredColored(y, g.toast.text, core.ColorBrightYellow)
	} else if g.reserved {
		dst.DrawTextCenteredColored(y, "Press A to add the last roundy", core.ColorGray)
	}
	dst.DrawTextCenteredColored(y+1, hintText, core.ColorGray)
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, board core.Rect) {
	centerX, centerY := board.Center()

	if g.paused {
		drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}

	if g.gameOver {
		lost := fmt.Sprintf("Roundies lost: %d", g.score)
		drawOverlay(dst, centerX, centerY, "ALL SETTLED", lost, "Press R to restart")
	}
}

// drawOverlay draws a boxed, centered text overlay.
func drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = core.Max(maxLen, len(line))
	}

	w := maxLen + 4
	h := len(lines) + 2
	r := core.NewRect(centerX-w/2, centerY-h/2, w, h)
	dst.DrawRect(r, ' ')
	dst.DrawBox(r)
	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, r.Y+1+i, line)
	}
}
