package game

// Side identifies a paddle
type Side int

const (
	SideLeft  Side = 0
	SideRight Side = 1
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	}
	return "invalid"
}

// Direction represents paddle movement direction
type Direction int

const (
	DirNone Direction = 0
	DirUp   Direction = 1
	DirDown Direction = 2
)

// Exit is what Ball.Update reports about the ball leaving the court.
// ExitLeft means the left side scores (the ball went out through the right
// wall), ExitRight means the right side scores.
type Exit int

const (
	ExitNone  Exit = 0
	ExitLeft  Exit = 1
	ExitRight Exit = 2
)

// Scorer returns the side awarded the point, ok is false for ExitNone
func (e Exit) Scorer() (Side, bool) {
	switch e {
	case ExitLeft:
		return SideLeft, true
	case ExitRight:
		return SideRight, true
	}
	return SideLeft, false
}

func (e Exit) String() string {
	switch e {
	case ExitLeft:
		return "exit-left"
	case ExitRight:
		return "exit-right"
	}
	return "none"
}

// Size is the court size in world pixels
type Size struct {
	W, H float64
}

// Rect is an axis-aligned rectangle, X/Y being its top-left corner
type Rect struct {
	X, Y, W, H float64
}
