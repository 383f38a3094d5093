package game

import (
	"golang.org/x/exp/rand"
)

const (
	BallSize       = 20.0
	BallLaunchVX   = 3.0
	BallMaxLaunchY = 5.0
)

// Ball is the square standing in for the ball, X/Y being its top-left corner
type Ball struct {
	X, Y   float64
	R      float64
	VX, VY float64
}

// NewBall centers a ball in the court and launches it in a random direction
func NewBall(size Size, rng *rand.Rand) *Ball {
	vx := BallLaunchVX
	if rng.Intn(2) == 0 {
		vx = -vx
	}
	// uniform in [-5, 5)
	vy := (rng.Float64() - 0.5) * 2 * BallMaxLaunchY

	return &Ball{
		X:  (size.W - BallSize) / 2,
		Y:  (size.H - BallSize) / 2,
		R:  BallSize,
		VX: vx,
		VY: vy,
	}
}

// Update advances the ball by one tick. Wall bounces and exits are judged on
// the position before the move, and the move is applied in every case.
func (b *Ball) Update(size Size) Exit {
	exit := b.screenCollision(size)

	b.X += b.VX
	b.Y += b.VY

	return exit
}

func (b *Ball) screenCollision(size Size) Exit {
	if b.Y < 0 || b.Y+b.R > size.H {
		b.VY = -b.VY
	}

	// Out through the left wall, the right side scores
	if b.X+b.R < 0 {
		return ExitRight
	}
	if b.X > size.W {
		return ExitLeft
	}
	return ExitNone
}

// SpeedUp scales the horizontal speed only
func (b *Ball) SpeedUp(factor float64) {
	b.VX *= factor
}

func (b *Ball) Rect() Rect {
	return Rect{X: b.X, Y: b.Y, W: b.R, H: b.R}
}
