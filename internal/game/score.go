package game

// Score counts points per side for the whole match, across rounds
type Score struct {
	Left  int
	Right int
}

// AddPoint credits the side an exit awards. ExitNone is ignored.
func (s *Score) AddPoint(exit Exit) {
	switch exit {
	case ExitLeft:
		s.Left++
	case ExitRight:
		s.Right++
	}
}

// Reached reports whether either side has at least points
func (s Score) Reached(points int) bool {
	return s.Left >= points || s.Right >= points
}

// Leader returns the side ahead, ok is false on a tie
func (s Score) Leader() (Side, bool) {
	switch {
	case s.Left > s.Right:
		return SideLeft, true
	case s.Right > s.Left:
		return SideRight, true
	}
	return SideLeft, false
}
