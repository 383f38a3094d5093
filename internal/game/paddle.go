package game

import (
	"math"

	"github.com/pkg/errors"
)

const (
	PaddleWidth  = 20.0
	PaddleHeight = 100.0
	PaddleSpeed  = 4.0  // Human paddle speed per tick
	BotReaction  = 0.75 // Fraction of the ball's vertical speed the bot follows at
)

// ErrInvalidSide is returned when a paddle is built for a side other than left or right
var ErrInvalidSide = errors.New("invalid paddle side")

// Paddle is a player's paddle. X is fixed for the paddle's lifetime, only Y moves.
type Paddle struct {
	X, Y   float64
	Width  float64
	Height float64
	Side   Side
	Bot    bool
}

// NewPaddle places a paddle against its wall, vertically centered
func NewPaddle(side Side, size Size, bot bool) (*Paddle, error) {
	var x float64
	switch side {
	case SideLeft:
		x = 0
	case SideRight:
		x = size.W - PaddleWidth
	default:
		return nil, errors.Wrapf(ErrInvalidSide, "side %d", int(side))
	}

	return &Paddle{
		X:      x,
		Y:      size.H/2 - PaddleHeight/2,
		Width:  PaddleWidth,
		Height: PaddleHeight,
		Side:   side,
		Bot:    bot,
	}, nil
}

// Move shifts the paddle by speed, keeping it inside [0, courtHeight-Height]
func (p *Paddle) Move(dir Direction, speed, courtHeight float64) {
	switch dir {
	case DirUp:
		p.moveUp(speed)
	case DirDown:
		p.moveDown(speed, courtHeight)
	}
}

func (p *Paddle) moveUp(speed float64) {
	if p.Y > speed {
		p.Y -= speed
	} else {
		p.Y = 0
	}
}

func (p *Paddle) moveDown(speed, courtHeight float64) {
	if p.Y+p.Height+speed > courtHeight {
		p.Y = courtHeight - p.Height
	} else {
		p.Y += speed
	}
}

// BotMove chases the ball's current vertical direction. Human paddles are left alone.
func (p *Paddle) BotMove(ball *Ball, courtHeight float64) {
	if !p.Bot {
		return
	}

	speed := math.Abs(ball.VY) * BotReaction
	if ball.VY == math.Abs(ball.VY) {
		p.moveDown(speed, courtHeight)
	} else {
		p.moveUp(speed)
	}
}

// Collide resolves a hit between the paddle and the ball, reflecting the
// ball's velocity. Corners are checked before the facing edge.
func (p *Paddle) Collide(ball *Ball) bool {
	if p.cornerCollision(ball) {
		return true
	}
	return p.directCollision(ball)
}

// directCollision handles a ball fully inside the paddle's vertical span
// reaching its facing edge
func (p *Paddle) directCollision(ball *Ball) bool {
	reached := (p.Side == SideLeft && p.X+p.Width > ball.X) ||
		(p.Side == SideRight && p.X < ball.X+ball.R)
	inside := p.Y < ball.Y && p.Y+p.Height > ball.Y+ball.R

	if reached && inside {
		ball.VX = -ball.VX
		return true
	}
	return false
}

// cornerCollision handles a ball overlapping the paddle's top or bottom edge.
// The approach angle of the ball is compared with the angle from the ball to
// the paddle corner to decide which velocity component to reflect. Left and
// right use mirrored formulas and are kept as separate cases.
func (p *Paddle) cornerCollision(ball *Ball) bool {
	bottom := p.Y+p.Height > ball.Y && p.Y+p.Height < ball.Y+ball.R
	top := p.Y < ball.Y+ball.R && p.Y > ball.Y

	prevX := ball.X - ball.VX
	prevY := ball.Y - ball.VY

	switch p.Side {
	case SideLeft:
		if p.X+p.Width > ball.X && p.X < ball.X && bottom {
			approach := math.Atan((prevY - ball.Y) / (prevX - ball.X))
			incidence := math.Atan((p.Y + p.Height - ball.Y) / (p.X + p.Width - ball.X))
			reflect(ball, approach, incidence)
			return true
		}

		if p.X+p.Width > ball.X && p.X < ball.X && top {
			approach := math.Atan((ball.Y - prevY) / (prevX - ball.X))
			incidence := math.Atan((ball.Y + ball.R - p.Y) / (p.X + p.Width - ball.X))
			reflect(ball, approach, incidence)
			return true
		}

	case SideRight:
		if p.X < ball.X+ball.R && p.X+p.Width > ball.X+ball.R && bottom {
			approach := math.Atan((prevY - ball.Y) / (ball.X - prevX))
			incidence := math.Atan((p.Y + p.Height - ball.Y) / (ball.X + ball.R - p.X))
			reflect(ball, approach, incidence)
			return true
		}

		if p.X < ball.X+ball.R && top {
			approach := math.Atan((ball.Y - prevY) / (ball.X - prevX))
			// Numerator is the ball's right edge against the paddle top.
			incidence := math.Atan((ball.X + ball.R - p.Y) / (ball.X + ball.R - p.X))
			reflect(ball, approach, incidence)
			return true
		}
	}

	return false
}

// reflect flips VY when the approach angle is above the incidence angle, VX
// when it is below, and both on a tie
func reflect(ball *Ball, approach, incidence float64) {
	switch {
	case approach > incidence:
		ball.VY = -ball.VY
	case approach < incidence:
		ball.VX = -ball.VX
	default:
		ball.VX = -ball.VX
		ball.VY = -ball.VY
	}
}

func (p *Paddle) Rect() Rect {
	return Rect{X: p.X, Y: p.Y, W: p.Width, H: p.Height}
}
