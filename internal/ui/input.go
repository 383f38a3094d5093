package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/diegok/pong/internal/game"
)

// HoldTicks is how long a key counts as held after its last press event
// (~133ms at 60Hz). Terminals report presses and auto-repeats, never releases.
const HoldTicks = 8

// KeyToMove converts a key event to a paddle movement key.
// W/S drive the left paddle, the arrow keys the right one.
func KeyToMove(key tcell.Key, r rune) (game.Key, bool) {
	switch key {
	case tcell.KeyUp:
		return game.KeyRightUp, true
	case tcell.KeyDown:
		return game.KeyRightDown, true
	case tcell.KeyRune:
		switch r {
		case 'w', 'W':
			return game.KeyLeftUp, true
		case 's', 'S':
			return game.KeyLeftDown, true
		}
	}
	return 0, false
}

// IsQuitKey returns true if the key should quit the application
func IsQuitKey(key tcell.Key, r rune) bool {
	if key == tcell.KeyEscape || key == tcell.KeyCtrlC {
		return true
	}
	if key == tcell.KeyRune && (r == 'q' || r == 'Q') {
		return true
	}
	return false
}

// IsPauseKey returns true if the key should pause or resume the match
func IsPauseKey(key tcell.Key, r rune) bool {
	return key == tcell.KeyRune && (r == 'p' || r == 'P' || r == ' ')
}

// IsRestartKey returns true if the key should start a new match
func IsRestartKey(key tcell.Key, r rune) bool {
	return key == tcell.KeyRune && (r == 'r' || r == 'R')
}

// opposite pairs the two keys of a paddle
var opposite = map[game.Key]game.Key{
	game.KeyLeftUp:    game.KeyLeftDown,
	game.KeyLeftDown:  game.KeyLeftUp,
	game.KeyRightUp:   game.KeyRightDown,
	game.KeyRightDown: game.KeyRightUp,
}

// HeldKeys turns key press events into the set of keys held during a tick.
// Each press keeps its key held for a number of ticks.
type HeldKeys struct {
	hold  int
	ticks map[game.Key]int
}

func NewHeldKeys(hold int) *HeldKeys {
	return &HeldKeys{
		hold:  hold,
		ticks: make(map[game.Key]int),
	}
}

// Press marks key as held and releases the paddle's other key
func (h *HeldKeys) Press(key game.Key) {
	h.ticks[key] = h.hold
	delete(h.ticks, opposite[key])
}

// Keys returns the keys held for the current tick
func (h *HeldKeys) Keys() game.Keys {
	var keys game.Keys
	for key, left := range h.ticks {
		if left > 0 {
			keys = keys.With(key)
		}
	}
	return keys
}

// Advance counts down every held key, dropping the expired ones
func (h *HeldKeys) Advance() {
	for key := range h.ticks {
		h.ticks[key]--
		if h.ticks[key] <= 0 {
			delete(h.ticks, key)
		}
	}
}

// Release forgets every held key
func (h *HeldKeys) Release() {
	clear(h.ticks)
}
