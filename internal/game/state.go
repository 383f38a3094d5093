package game

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

// Constants for match state management
const (
	TickRate    = 60    // Ticks per second
	SpeedRamp   = 1.001 // Horizontal ball speed growth per tick, uncapped
	DefaultW    = 800.0
	DefaultH    = 600.0
	EndlessPlay = 0 // PointsToWin value for a match without a winner
)

// Key is a movement key the presentation layer reports as held
type Key uint8

const (
	KeyLeftUp Key = 1 << iota
	KeyLeftDown
	KeyRightUp
	KeyRightDown
)

// Keys is the set of movement keys held during a tick
type Keys uint8

func (k Keys) Has(key Key) bool {
	return k&Keys(key) != 0
}

func (k Keys) With(key Key) Keys {
	return k | Keys(key)
}

// turn tracks which paddle is checked for a collision next
type turn int

const (
	turnEither turn = iota
	turnLeft
	turnRight
)

// Options configures a match
type Options struct {
	Size        Size
	LeftBot     bool
	RightBot    bool
	PointsToWin int // EndlessPlay for no limit
	Seed        uint64
	Logger      *slog.Logger
}

// State is the read-only view of a match handed to the renderer
type State struct {
	Tick        int
	Rally       int
	PointsToWin int
	Court       Size
	Ball        Rect
	Left        Rect
	Right       Rect
	LeftScore   int
	RightScore  int
	Over        bool
	Winner      Side
}

// Match owns the ball, both paddles and the score, and advances them one tick at a time
type Match struct {
	ID    string
	Size  Size
	Ball  *Ball
	Left  *Paddle
	Right *Paddle
	Score Score
	Tick  int
	Rally int // Ticks since the current round started

	opts     Options
	expected turn
	over     bool
	rng      *rand.Rand
	log      *slog.Logger
}

// NewMatch creates a match and starts its first round
func NewMatch(opts Options) (*Match, error) {
	if opts.Size.W <= 0 || opts.Size.H <= 0 {
		return nil, errors.Errorf("court size must be positive, got %gx%g", opts.Size.W, opts.Size.H)
	}
	if opts.PointsToWin < 0 {
		return nil, errors.Errorf("points to win must not be negative, got %d", opts.PointsToWin)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	id := uuid.NewString()
	m := &Match{
		ID:   id,
		Size: opts.Size,
		opts: opts,
		rng:  rand.New(rand.NewSource(opts.Seed)),
		log:  logger.With("match", id),
	}

	if err := m.nextRound(); err != nil {
		return nil, errors.Wrap(err, "start match")
	}

	m.log.Info("match started",
		"width", m.Size.W,
		"height", m.Size.H,
		"left_bot", opts.LeftBot,
		"right_bot", opts.RightBot,
		"points_to_win", opts.PointsToWin)

	return m, nil
}

// nextRound replaces the ball and both paddles and clears the collision turn
func (m *Match) nextRound() error {
	left, err := NewPaddle(SideLeft, m.Size, m.opts.LeftBot)
	if err != nil {
		return err
	}
	right, err := NewPaddle(SideRight, m.Size, m.opts.RightBot)
	if err != nil {
		return err
	}

	m.Left = left
	m.Right = right
	m.Ball = NewBall(m.Size, m.rng)
	m.expected = turnEither
	m.Rally = 0
	m.log.Debug("round started", "vx", m.Ball.VX, "vy", m.Ball.VY)
	return nil
}

// Update runs one tick: input, ball motion, scoring, collisions, bots, speed ramp.
// The order of these steps matters.
func (m *Match) Update(keys Keys) error {
	if m.over {
		return nil
	}
	m.Tick++
	m.Rally++

	m.applyInput(keys)

	if exit := m.Ball.Update(m.Size); exit != ExitNone {
		return m.scored(exit)
	}

	m.checkPaddleCollisions()

	m.Left.BotMove(m.Ball, m.Size.H)
	m.Right.BotMove(m.Ball, m.Size.H)

	m.Ball.SpeedUp(SpeedRamp)
	return nil
}

// applyInput moves human paddles for every held key, bots ignore keys
func (m *Match) applyInput(keys Keys) {
	if !m.Left.Bot {
		if keys.Has(KeyLeftUp) {
			m.Left.Move(DirUp, PaddleSpeed, m.Size.H)
		}
		if keys.Has(KeyLeftDown) {
			m.Left.Move(DirDown, PaddleSpeed, m.Size.H)
		}
	}
	if !m.Right.Bot {
		if keys.Has(KeyRightUp) {
			m.Right.Move(DirUp, PaddleSpeed, m.Size.H)
		}
		if keys.Has(KeyRightDown) {
			m.Right.Move(DirDown, PaddleSpeed, m.Size.H)
		}
	}
}

// checkPaddleCollisions alternates between paddles so a ball near the
// center is never resolved twice against the same paddle in a row
func (m *Match) checkPaddleCollisions() {
	switch m.expected {
	case turnLeft:
		if m.Left.Collide(m.Ball) {
			m.expected = turnRight
		}
	case turnRight:
		if m.Right.Collide(m.Ball) {
			m.expected = turnLeft
		}
	default:
		if m.Left.Collide(m.Ball) {
			m.expected = turnRight
		}
		if m.Right.Collide(m.Ball) {
			m.expected = turnLeft
		}
	}
}

// scored credits the point, ends the match if the target is reached, and
// otherwise starts a fresh round
func (m *Match) scored(exit Exit) error {
	m.Score.AddPoint(exit)
	scorer, _ := exit.Scorer()
	m.log.Info("point scored",
		"scorer", scorer.String(),
		"left", m.Score.Left,
		"right", m.Score.Right,
		"rally_ticks", m.Rally)

	if m.opts.PointsToWin != EndlessPlay && m.Score.Reached(m.opts.PointsToWin) {
		m.over = true
		m.log.Info("match over", "winner", scorer.String())
		return nil
	}

	return m.nextRound()
}

// Resize changes the court used by subsequent ticks. Paddles move to the new
// right wall at the next round.
func (m *Match) Resize(size Size) {
	if size.W <= 0 || size.H <= 0 || size == m.Size {
		return
	}
	m.log.Debug("court resized", "width", size.W, "height", size.H)
	m.Size = size
}

// Restart clears the score and starts a new round
func (m *Match) Restart() error {
	m.Score = Score{}
	m.over = false
	m.Tick = 0
	m.log.Info("match restarted")
	return m.nextRound()
}

// IsOver returns true once a side has reached the points target
func (m *Match) IsOver() bool {
	return m.over
}

// Winner returns the side that won, ok is false while the match is running
func (m *Match) Winner() (Side, bool) {
	if !m.over {
		return SideLeft, false
	}
	return m.Score.Leader()
}

// Snapshot copies out everything the renderer needs
func (m *Match) Snapshot() State {
	winner, _ := m.Winner()
	return State{
		Tick:        m.Tick,
		Rally:       m.Rally,
		PointsToWin: m.opts.PointsToWin,
		Court:       m.Size,
		Ball:        m.Ball.Rect(),
		Left:        m.Left.Rect(),
		Right:       m.Right.Rect(),
		LeftScore:   m.Score.Left,
		RightScore:  m.Score.Right,
		Over:        m.over,
		Winner:      winner,
	}
}
