package ui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/diegok/pong/internal/game"
)

const (
	BlockChar = '\u2588' // █
	LineChar  = '|'
)

// Renderer draws match snapshots onto the screen
type Renderer struct {
	screen      *Screen
	ballStyle   tcell.Style
	paddleStyle tcell.Style
	numbers     *message.Printer
}

// NewRenderer creates a new renderer with the given screen and colors
func NewRenderer(screen *Screen, ball, paddle colorful.Color) *Renderer {
	return &Renderer{
		screen:      screen,
		ballStyle:   tcell.StyleDefault.Foreground(ColorFrom(ball)).Background(tcell.ColorBlack),
		paddleStyle: tcell.StyleDefault.Foreground(ColorFrom(paddle)).Background(tcell.ColorBlack),
		numbers:     message.NewPrinter(language.English),
	}
}

// court maps world coordinates onto the rows between the scoreboard and the status bar
type court struct {
	size          game.Size
	width, height int
}

// span returns the cell span covering [start, end) in world units,
// clipped to [0, cells) and at least one cell wide when visible
func span(start, end, world float64, cells int) (int, int) {
	first := int(math.Floor(start * float64(cells) / world))
	last := int(math.Ceil(end*float64(cells)/world)) - 1
	if last < first {
		last = first
	}
	if first < 0 {
		first = 0
	}
	if last > cells-1 {
		last = cells - 1
	}
	return first, last
}

func (c court) fill(s *Screen, r game.Rect, style tcell.Style) {
	x0, x1 := span(r.X, r.X+r.W, c.size.W, c.width)
	y0, y1 := span(r.Y, r.Y+r.H, c.size.H, c.height)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			s.SetCell(x, y+1, style, BlockChar) // +1 for the scoreboard row
		}
	}
}

// RenderGame displays the court, paddles, ball, score and status bar
func (r *Renderer) RenderGame(state game.State) {
	r.screen.Clear()
	screenW, screenH := r.screen.Size()

	c := court{size: state.Court, width: screenW, height: screenH - 2}

	// Draw court background (black)
	courtStyle := tcell.StyleDefault.Background(tcell.ColorBlack)
	r.screen.FillRect(0, 1, screenW, c.height, courtStyle, ' ')

	// Draw center dashed line
	centerX := screenW / 2
	lineStyle := tcell.StyleDefault.Foreground(tcell.ColorDarkGray).Background(tcell.ColorBlack)
	for y := 1; y < screenH-1; y += 2 {
		r.screen.SetCell(centerX, y, lineStyle, LineChar)
	}

	r.renderScoreboard(state)

	c.fill(r.screen, state.Left, r.paddleStyle)
	c.fill(r.screen, state.Right, r.paddleStyle)

	// A ball fully past a wall is off the court
	ball := state.Ball
	if ball.X+ball.W >= 0 && ball.X <= state.Court.W {
		c.fill(r.screen, ball, r.ballStyle)
	}

	r.renderStatusBar(state, screenW, screenH-1)

	r.screen.Show()
}

// renderScoreboard draws "[ LEFT 3 - 2 RIGHT ]" at top center
func (r *Renderer) renderScoreboard(state game.State) {
	text := fmt.Sprintf("[ LEFT %d - %d RIGHT ]", state.LeftScore, state.RightScore)
	style := tcell.StyleDefault.Background(tcell.ColorDarkGray).Foreground(tcell.ColorWhite).Bold(true)
	r.screen.DrawCentered(0, text, style)
}

func (r *Renderer) renderStatusBar(state game.State, screenW, y int) {
	style := tcell.StyleDefault.Background(tcell.ColorDarkGray).Foreground(tcell.ColorWhite)
	for x := 0; x < screenW; x++ {
		r.screen.SetCell(x, y, style, ' ')
	}

	goal := "endless"
	if state.PointsToWin > 0 {
		goal = r.numbers.Sprintf("first to %d", state.PointsToWin)
	}
	text := r.numbers.Sprintf(" Tick: %d | Rally: %d | %s | W/S Up/Down move, P pause, R restart, Q quit",
		state.Tick, state.Rally, goal)
	r.screen.DrawText(0, y, text, style)
}

// RenderPause draws the game with a paused banner on top
func (r *Renderer) RenderPause(state game.State) {
	r.RenderGame(state)
	r.renderBanner("PAUSED", "Press P to resume", tcell.ColorYellow)
}

// RenderGameOver draws the final court with the winner on top
func (r *Renderer) RenderGameOver(state game.State) {
	r.RenderGame(state)

	winner := "LEFT WINS!"
	color := tcell.ColorRed
	if state.Winner == game.SideRight {
		winner = "RIGHT WINS!"
		color = tcell.ColorBlue
	}
	r.renderBanner(winner, "Press R for a new match | Q to quit", color)
}

// renderBanner draws a centered message box
func (r *Renderer) renderBanner(title, hint string, color tcell.Color) {
	screenW, screenH := r.screen.Size()

	boxW := TextWidth(hint) + 6
	if boxW > screenW {
		boxW = screenW
	}
	boxH := 7
	boxX := (screenW - boxW) / 2
	boxY := (screenH - boxH) / 2

	fillStyle := tcell.StyleDefault.Background(tcell.ColorDarkGray)
	r.screen.FillRect(boxX+1, boxY+1, boxW-2, boxH-2, fillStyle, ' ')
	r.screen.DrawBox(boxX, boxY, boxW, boxH, tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkGray))

	titleStyle := fillStyle.Foreground(color).Bold(true)
	r.screen.DrawCentered(boxY+2, title, titleStyle)
	r.screen.DrawCentered(boxY+4, hint, fillStyle.Foreground(tcell.ColorGreen))

	r.screen.Show()
}
