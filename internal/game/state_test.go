package game

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func newTestMatch(t *testing.T, opts Options) *Match {
	t.Helper()
	if opts.Size == (Size{}) {
		opts.Size = court
	}
	m, err := NewMatch(opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return m
}

func TestNewMatch(t *testing.T) {
	m := newTestMatch(t, Options{LeftBot: true})

	if m.ID == "" {
		t.Error("expected match ID")
	}
	if m.Left.Side != SideLeft || m.Right.Side != SideRight {
		t.Errorf("paddles on wrong sides: %v %v", m.Left.Side, m.Right.Side)
	}
	if !m.Left.Bot || m.Right.Bot {
		t.Errorf("expected left bot and right human, got %v %v", m.Left.Bot, m.Right.Bot)
	}
	if m.Ball.X != 390 || m.Ball.Y != 290 {
		t.Errorf("expected centered ball, got (%f,%f)", m.Ball.X, m.Ball.Y)
	}
	if m.expected != turnEither {
		t.Errorf("expected turnEither, got %v", m.expected)
	}
	if m.Score != (Score{}) {
		t.Errorf("expected empty score, got %+v", m.Score)
	}
}

func TestNewMatch_Invalid(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"zero width", Options{Size: Size{W: 0, H: 600}}},
		{"negative height", Options{Size: Size{W: 800, H: -1}}},
		{"negative points", Options{Size: court, PointsToWin: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewMatch(tt.opts); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestNewMatch_SeedIsDeterministic(t *testing.T) {
	a := newTestMatch(t, Options{Seed: 9})
	b := newTestMatch(t, Options{Seed: 9})

	if a.Ball.VX != b.Ball.VX || a.Ball.VY != b.Ball.VY {
		t.Errorf("same seed gave different launches: (%f,%f) vs (%f,%f)",
			a.Ball.VX, a.Ball.VY, b.Ball.VX, b.Ball.VY)
	}
}

func TestMatch_Update_MovesBall(t *testing.T) {
	m := newTestMatch(t, Options{})
	m.Ball = &Ball{X: 390, Y: 290, R: 20, VX: 3, VY: 2}

	if err := m.Update(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.Ball.X != 393 || m.Ball.Y != 292 {
		t.Errorf("expected ball at (393,292), got (%f,%f)", m.Ball.X, m.Ball.Y)
	}
	if !almostEqual(m.Ball.VX, 3*SpeedRamp) {
		t.Errorf("expected VX=%f after ramp, got %f", 3*SpeedRamp, m.Ball.VX)
	}
	if m.Ball.VY != 2 {
		t.Errorf("VY should not ramp, got %f", m.Ball.VY)
	}
	if m.Tick != 1 || m.Rally != 1 {
		t.Errorf("expected tick 1 rally 1, got %d %d", m.Tick, m.Rally)
	}
}

func TestMatch_Update_SpeedRampCompounds(t *testing.T) {
	m := newTestMatch(t, Options{})
	m.Ball = &Ball{X: 390, Y: 290, R: 20, VX: -3, VY: 0}

	want := -3.0
	for i := 0; i < 10; i++ {
		m.Update(0)
		want *= SpeedRamp
	}

	if !almostEqual(m.Ball.VX, want) {
		t.Errorf("expected VX=%f, got %f", want, m.Ball.VX)
	}
}

func TestMatch_Update_Scoring(t *testing.T) {
	tests := []struct {
		name      string
		x, vx     float64
		wantLeft  int
		wantRight int
	}{
		{"out the left wall", -25, -3, 0, 1},
		{"out the right wall", 801, 3, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMatch(t, Options{})
			m.Ball = &Ball{X: tt.x, Y: 290, R: 20, VX: tt.vx, VY: 0}
			m.Left.Y = 0
			m.Right.Y = 500
			m.expected = turnLeft
			m.Rally = 120

			if err := m.Update(0); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if m.Score.Left != tt.wantLeft || m.Score.Right != tt.wantRight {
				t.Errorf("expected %d-%d, got %d-%d", tt.wantLeft, tt.wantRight, m.Score.Left, m.Score.Right)
			}
			if m.Ball.X != 390 || m.Ball.Y != 290 {
				t.Errorf("expected recentered ball, got (%f,%f)", m.Ball.X, m.Ball.Y)
			}
			// No speed ramp on the tick a round restarts
			if m.Ball.VX != 3 && m.Ball.VX != -3 {
				t.Errorf("expected fresh launch speed, got VX=%f", m.Ball.VX)
			}
			if m.Left.Y != 250 || m.Right.Y != 250 {
				t.Errorf("expected paddles recentered, got %f %f", m.Left.Y, m.Right.Y)
			}
			if m.expected != turnEither {
				t.Errorf("expected turnEither after reset, got %v", m.expected)
			}
			if m.Rally != 0 {
				t.Errorf("expected rally reset, got %d", m.Rally)
			}
		})
	}
}

func TestMatch_Update_ScoreAccumulates(t *testing.T) {
	m := newTestMatch(t, Options{})

	for i := 1; i <= 3; i++ {
		m.Ball.X = -25
		m.Ball.VX = -3
		m.Update(0)
		if m.Score.Right != i {
			t.Fatalf("expected right score %d, got %d", i, m.Score.Right)
		}
	}
	if m.Score.Left != 0 {
		t.Errorf("left score should stay 0, got %d", m.Score.Left)
	}
}

func TestMatch_Update_DirectHit(t *testing.T) {
	m := newTestMatch(t, Options{})
	m.Ball = &Ball{X: 20, Y: 280, R: 20, VX: -3, VY: 0}

	m.Update(0)

	if m.Ball.X != 17 {
		t.Errorf("expected ball at X=17, got %f", m.Ball.X)
	}
	if !almostEqual(m.Ball.VX, 3*SpeedRamp) {
		t.Errorf("expected ball reflected to %f, got %f", 3*SpeedRamp, m.Ball.VX)
	}
	if m.expected != turnRight {
		t.Errorf("expected turnRight after left hit, got %v", m.expected)
	}
}

func TestMatch_Update_CollisionTurns(t *testing.T) {
	m := newTestMatch(t, Options{})

	// Left hit
	m.Ball = &Ball{X: 20, Y: 280, R: 20, VX: -3, VY: 0}
	m.Update(0)
	if m.expected != turnRight {
		t.Fatalf("expected turnRight, got %v", m.expected)
	}

	// Left is not checked again until the right paddle has fired
	m.Ball = &Ball{X: 20, Y: 280, R: 20, VX: -3, VY: 0}
	m.Update(0)
	if m.Ball.VX >= 0 {
		t.Errorf("left paddle should be skipped, got VX=%f", m.Ball.VX)
	}

	// Right hit
	m.Ball = &Ball{X: 760, Y: 280, R: 20, VX: 3, VY: 0}
	m.Update(0)
	if !almostEqual(m.Ball.VX, -3*SpeedRamp) {
		t.Errorf("expected right paddle to reflect to %f, got %f", -3*SpeedRamp, m.Ball.VX)
	}
	if m.expected != turnLeft {
		t.Errorf("expected turnLeft, got %v", m.expected)
	}

	// Right is now skipped
	m.Ball = &Ball{X: 760, Y: 280, R: 20, VX: 3, VY: 0}
	m.Update(0)
	if m.Ball.VX <= 0 {
		t.Errorf("right paddle should be skipped, got VX=%f", m.Ball.VX)
	}
}

func TestMatch_Update_BothPaddlesSameTick(t *testing.T) {
	// A court narrow enough for the ball to touch both paddles
	m := newTestMatch(t, Options{Size: Size{W: 30, H: 600}})
	m.Ball = &Ball{X: 8, Y: 280, R: 20, VX: -3, VY: 0}

	m.Update(0)

	if !almostEqual(m.Ball.VX, -3*SpeedRamp) {
		t.Errorf("expected both reflections to cancel out, got VX=%f", m.Ball.VX)
	}
	if m.expected != turnLeft {
		t.Errorf("expected the right paddle to win the turn, got %v", m.expected)
	}
}

func TestMatch_Update_Input(t *testing.T) {
	tests := []struct {
		name      string
		opts      Options
		keys      Keys
		wantLeft  float64
		wantRight float64
	}{
		{"both players", Options{}, Keys(0).With(KeyLeftUp).With(KeyRightDown), 246, 254},
		{"opposite keys cancel", Options{}, Keys(0).With(KeyLeftUp).With(KeyLeftDown), 250, 250},
		{"bot ignores keys", Options{LeftBot: true}, Keys(0).With(KeyLeftUp).With(KeyRightUp), 250, 246},
		{"no keys", Options{}, 0, 250, 250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMatch(t, tt.opts)
			m.Ball = &Ball{X: 390, Y: 290, R: 20, VX: 3, VY: 0}

			m.Update(tt.keys)

			if m.Left.Y != tt.wantLeft {
				t.Errorf("expected left Y=%f, got %f", tt.wantLeft, m.Left.Y)
			}
			if m.Right.Y != tt.wantRight {
				t.Errorf("expected right Y=%f, got %f", tt.wantRight, m.Right.Y)
			}
		})
	}
}

func TestMatch_Update_BotsChase(t *testing.T) {
	m := newTestMatch(t, Options{LeftBot: true, RightBot: true})
	m.Ball = &Ball{X: 390, Y: 290, R: 20, VX: 3, VY: -2}

	m.Update(0)

	if m.Left.Y != 248.5 || m.Right.Y != 248.5 {
		t.Errorf("expected both bots at 248.5, got %f %f", m.Left.Y, m.Right.Y)
	}
}

func TestMatch_PointsToWin(t *testing.T) {
	m := newTestMatch(t, Options{PointsToWin: 1})
	m.Ball = &Ball{X: -25, Y: 290, R: 20, VX: -3, VY: 0}

	m.Update(0)

	if !m.IsOver() {
		t.Fatal("expected match to be over")
	}
	if side, ok := m.Winner(); !ok || side != SideRight {
		t.Errorf("expected right to win, got %v %v", side, ok)
	}

	tick := m.Tick
	x := m.Ball.X
	m.Update(0)
	if m.Tick != tick || m.Ball.X != x {
		t.Error("expected no updates after the match is over")
	}

	state := m.Snapshot()
	if !state.Over || state.Winner != SideRight {
		t.Errorf("expected snapshot to show right winner, got %+v", state)
	}

	if err := m.Restart(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.IsOver() || m.Score != (Score{}) {
		t.Errorf("expected fresh match after restart, got over=%v score=%+v", m.IsOver(), m.Score)
	}
	if _, ok := m.Winner(); ok {
		t.Error("expected no winner after restart")
	}
}

func TestMatch_EndlessByDefault(t *testing.T) {
	m := newTestMatch(t, Options{})

	for i := 0; i < 25; i++ {
		m.Ball.X = 801
		m.Ball.VX = 3
		m.Update(0)
	}

	if m.IsOver() {
		t.Error("endless match should never end")
	}
	if m.Score.Left != 25 {
		t.Errorf("expected 25 points, got %d", m.Score.Left)
	}
}

func TestMatch_Resize(t *testing.T) {
	m := newTestMatch(t, Options{})

	m.Resize(Size{W: 1000, H: 700})
	if m.Size != (Size{W: 1000, H: 700}) {
		t.Errorf("expected new size, got %+v", m.Size)
	}
	if m.Right.X != 780 {
		t.Errorf("right paddle should stay put until the next round, got X=%f", m.Right.X)
	}

	m.Ball = &Ball{X: 1001, Y: 300, R: 20, VX: 3, VY: 0}
	m.Update(0)

	if m.Right.X != 980 || m.Right.Y != 300 {
		t.Errorf("expected right paddle at (980,300), got (%f,%f)", m.Right.X, m.Right.Y)
	}
	if m.Ball.X != 490 || m.Ball.Y != 340 {
		t.Errorf("expected ball at (490,340), got (%f,%f)", m.Ball.X, m.Ball.Y)
	}

	m.Resize(Size{W: 0, H: 700})
	if m.Size.W != 1000 {
		t.Errorf("zero size should be ignored, got %+v", m.Size)
	}
}

func TestMatch_Snapshot(t *testing.T) {
	m := newTestMatch(t, Options{})
	m.Ball = &Ball{X: 100, Y: 200, R: 20, VX: 3, VY: 0}
	m.Score = Score{Left: 2, Right: 5}

	state := m.Snapshot()

	if state.Ball != (Rect{X: 100, Y: 200, W: 20, H: 20}) {
		t.Errorf("unexpected ball rect %+v", state.Ball)
	}
	if state.Left != (Rect{X: 0, Y: 250, W: 20, H: 100}) {
		t.Errorf("unexpected left rect %+v", state.Left)
	}
	if state.Right != (Rect{X: 780, Y: 250, W: 20, H: 100}) {
		t.Errorf("unexpected right rect %+v", state.Right)
	}
	if state.LeftScore != 2 || state.RightScore != 5 {
		t.Errorf("expected 2-5, got %d-%d", state.LeftScore, state.RightScore)
	}
	if state.Court != court || state.Over {
		t.Errorf("unexpected court/over %+v %v", state.Court, state.Over)
	}

	// The snapshot is a copy
	state.Ball.X = 0
	if m.Ball.X != 100 {
		t.Error("snapshot should not alias the ball")
	}
}

func TestMatch_LogsWithMatchID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	m := newTestMatch(t, Options{Logger: logger})
	m.Ball.X = -25
	m.Ball.VX = -3
	m.Update(0)

	out := buf.String()
	if !strings.Contains(out, "match started") {
		t.Errorf("expected start record, got %q", out)
	}
	if !strings.Contains(out, "point scored") || !strings.Contains(out, "scorer=right") {
		t.Errorf("expected point record, got %q", out)
	}
	if !strings.Contains(out, "match="+m.ID) {
		t.Errorf("expected match ID %s in records, got %q", m.ID, out)
	}
}

func TestKeys(t *testing.T) {
	k := Keys(0).With(KeyLeftUp).With(KeyRightDown)
	if !k.Has(KeyLeftUp) || !k.Has(KeyRightDown) {
		t.Error("expected held keys to be reported")
	}
	if k.Has(KeyLeftDown) || k.Has(KeyRightUp) {
		t.Error("unexpected keys reported as held")
	}
}
