package terminal

import (
	"fmt"

	"github.com/battlesnakeio/duel/rules"
	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"
)

const (
	// cellWidth is the number of columns per board cell. Terminal cells are
	// roughly twice as tall as wide.
	cellWidth = 2
	boardLeft = 1
	boardTop  = 2

	borderColor = rules.ColorWhite
)

// Renderer draws frames and results on a canvas.
type Renderer struct {
	canvas Canvas
}

// NewRenderer returns a renderer drawing on c.
func NewRenderer(c Canvas) *Renderer {
	return &Renderer{canvas: c}
}

// Render draws the scores, the board, the fruit and both snakes.
func (r *Renderer) Render(frame *rules.Frame) error {
	if frame == nil {
		return errors.New("terminal: received nil frame")
	}
	if err := r.canvas.Clear(); err != nil {
		return err
	}

	cols, rows := frame.Grid.Columns(), frame.Grid.Rows()
	needW, needH := BoardSize(frame.Grid)
	if w, h := r.canvas.Size(); w < needW || h < needH {
		r.print(0, 0, borderColor, "", fmt.Sprintf("enlarge the terminal to %dx%d", needW, needH))
		return r.canvas.Flush()
	}
	r.renderHUD(frame, cols)
	r.renderBoard(cols, rows)
	for _, f := range frame.Fruits {
		x, y := r.cellOrigin(frame.Grid, f.Position)
		r.canvas.SetCell(x, y, '●', f.Color(), "")
	}
	for _, s := range frame.Snakes {
		r.renderSnake(frame.Grid, s)
	}
	return r.canvas.Flush()
}

// BoardSize is the number of terminal columns and rows needed to draw grid
// with its scores and border.
func BoardSize(grid rules.Grid) (width, height int) {
	return boardLeft + grid.Columns()*cellWidth + 1, boardTop + grid.Rows() + 1
}

func (r *Renderer) renderHUD(frame *rules.Frame, cols int) {
	x := boardLeft
	for _, s := range frame.Snakes {
		text := fmt.Sprintf("%s %d", s.Name, s.Score)
		if s.Boosted {
			text += " »"
		}
		x = r.print(x, 0, s.Color, "", text) + 3
	}
	turn := fmt.Sprintf("turn %d", frame.Turn)
	right := boardLeft + cols*cellWidth - runewidth.StringWidth(turn)
	if right > x {
		r.print(right, 0, borderColor, "", turn)
	}
}

func (r *Renderer) renderBoard(cols, rows int) {
	left, right := boardLeft-1, boardLeft+cols*cellWidth
	top, bottom := boardTop-1, boardTop+rows
	for y := top + 1; y < bottom; y++ {
		r.canvas.SetCell(left, y, '│', borderColor, "")
		r.canvas.SetCell(right, y, '│', borderColor, "")
	}
	for x := left + 1; x < right; x++ {
		r.canvas.SetCell(x, top, '─', borderColor, "")
		r.canvas.SetCell(x, bottom, '─', borderColor, "")
	}
	r.canvas.SetCell(left, top, '┌', borderColor, "")
	r.canvas.SetCell(right, top, '┐', borderColor, "")
	r.canvas.SetCell(left, bottom, '└', borderColor, "")
	r.canvas.SetCell(right, bottom, '┘', borderColor, "")
}

func (r *Renderer) renderSnake(grid rules.Grid, s rules.SnakeView) {
	for i := len(s.Body) - 1; i >= 0; i-- {
		x, y := r.cellOrigin(grid, s.Body[i])
		left, right := ' ', ' '
		fg := s.Color
		if i == 0 {
			left, right = '[', ']'
			fg = rules.ColorBlack
		}
		r.canvas.SetCell(x, y, left, fg, s.Color)
		r.canvas.SetCell(x+1, y, right, fg, s.Color)
	}
}

func (r *Renderer) cellOrigin(grid rules.Grid, c rules.Cell) (int, int) {
	return boardLeft + c.X/grid.BlockSize*cellWidth, boardTop + c.Y/grid.BlockSize
}

// RenderResult draws the winner screen.
func (r *Renderer) RenderResult(result rules.MatchResult) error {
	if err := r.canvas.Clear(); err != nil {
		return err
	}
	_, h := r.canvas.Size()
	y := h/2 - 3
	if y < 0 {
		y = 0
	}

	winnerColor := rules.PlayerColor(result.WinnerSlot)
	loserColor := rules.PlayerColor(1 - result.WinnerSlot)
	r.center(y, winnerColor, fmt.Sprintf("%s WINS!", result.Winner))
	r.center(y+2, winnerColor, fmt.Sprintf("%s: %d", result.Winner, result.WinnerScore))
	r.center(y+3, loserColor, fmt.Sprintf("%s: %d", result.Loser, result.LoserScore))
	r.center(y+4, borderColor, fmt.Sprintf("%s %s on turn %d", result.Loser, describeCause(result.Cause), result.Turn))
	r.center(y+6, borderColor, "press enter to exit")
	return r.canvas.Flush()
}

func describeCause(cause string) string {
	switch cause {
	case rules.DeathCauseSnakeSelfCollision:
		return "ran into itself"
	case rules.DeathCauseHeadToHeadCollision:
		return "lost a head-on collision"
	case rules.DeathCauseSnakeCollision:
		return "ran into the other snake"
	}
	return "died"
}

func (r *Renderer) center(y int, fg rules.Color, msg string) {
	w, _ := r.canvas.Size()
	x := (w - runewidth.StringWidth(msg)) / 2
	if x < 0 {
		x = 0
	}
	r.print(x, y, fg, "", msg)
}

// print writes msg from x and returns the column after it.
func (r *Renderer) print(x, y int, fg, bg rules.Color, msg string) int {
	for _, c := range msg {
		r.canvas.SetCell(x, y, c, fg, bg)
		x += runewidth.RuneWidth(c)
	}
	return x
}
