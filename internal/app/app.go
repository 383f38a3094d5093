package app

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/diegok/pong/internal/config"
	"github.com/diegok/pong/internal/game"
	"github.com/diegok/pong/internal/logging"
	"github.com/diegok/pong/internal/ui"
)

// App is the main application controller that drives a local match.
type App struct {
	cfg      *config.Config
	screen   *ui.Screen
	renderer *ui.Renderer
	match    *game.Match
	held     *ui.HeldKeys
	log      *slog.Logger

	// State
	paused bool

	quit    chan struct{}
	sigChan chan os.Signal
}

// NewApp creates a new App instance with the given configuration.
func NewApp(cfg *config.Config) *App {
	return &App{
		cfg:  cfg,
		held: ui.NewHeldKeys(ui.HoldTicks),
		quit: make(chan struct{}),
	}
}

// Run is the main entry point for the application.
// It opens the log, takes over the terminal and plays until quit.
func (a *App) Run() error {
	logger, closeLog, err := logging.New(a.cfg.LogFile, a.cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	screen, err := ui.InitScreen()
	if err != nil {
		return errors.Wrap(err, "failed to initialize screen")
	}

	if err := a.setup(screen, logger); err != nil {
		screen.Fini()
		return err
	}

	// Setup signal handling
	a.sigChan = make(chan os.Signal, 1)
	signal.Notify(a.sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-a.sigChan
		close(a.quit)
	}()

	defer a.cleanup()

	return a.mainLoop()
}

// setup creates the match and the renderer for an initialized screen
func (a *App) setup(screen *ui.Screen, logger *slog.Logger) error {
	seed := a.cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	match, err := game.NewMatch(a.cfg.MatchOptions(seed, logger))
	if err != nil {
		return errors.Wrap(err, "failed to create match")
	}

	a.screen = screen
	a.renderer = ui.NewRenderer(screen, a.cfg.BallColor, a.cfg.PaddleColor)
	a.match = match
	a.log = logger
	logger.Debug("match seeded", "match", match.ID, "seed", seed)
	return nil
}

// mainLoop is the main event loop that handles input and advances the match.
func (a *App) mainLoop() error {
	// Create event channel for screen events
	events := make(chan tcell.Event)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-a.quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / game.TickRate)
	defer ticker.Stop()

	a.render()

	for {
		select {
		case <-a.quit:
			return nil

		case ev := <-events:
			quit, err := a.handleEvent(ev)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}

		case <-ticker.C:
			if err := a.step(); err != nil {
				return err
			}
			a.render()
		}
	}
}

// handleEvent processes keyboard and other events.
// Returns true if the application should quit.
func (a *App) handleEvent(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		// Quit keys always work
		if ui.IsQuitKey(ev.Key(), ev.Rune()) {
			return true, nil
		}
		return false, a.handleKey(ev.Key(), ev.Rune())

	case *tcell.EventResize:
		a.screen.Sync()
		a.render()
	}

	return false, nil
}

func (a *App) handleKey(key tcell.Key, r rune) error {
	switch {
	case ui.IsRestartKey(key, r):
		a.paused = false
		a.held.Release()
		if err := a.match.Restart(); err != nil {
			return errors.Wrap(err, "failed to restart match")
		}
		a.render()

	case ui.IsPauseKey(key, r):
		if a.match.IsOver() {
			return nil
		}
		a.paused = !a.paused
		a.held.Release()
		a.log.Debug("pause toggled", "paused", a.paused)
		a.render()

	default:
		if move, ok := ui.KeyToMove(key, r); ok && !a.paused {
			a.held.Press(move)
		}
	}
	return nil
}

// step advances the match by one tick unless it is paused or over
func (a *App) step() error {
	if a.paused || a.match.IsOver() {
		return nil
	}
	if err := a.match.Update(a.held.Keys()); err != nil {
		return errors.Wrapf(err, "tick %d", a.match.Tick)
	}
	a.held.Advance()
	return nil
}

// render calls the appropriate renderer method based on the current state.
func (a *App) render() {
	state := a.match.Snapshot()
	switch {
	case state.Over:
		a.renderer.RenderGameOver(state)
	case a.paused:
		a.renderer.RenderPause(state)
	default:
		a.renderer.RenderGame(state)
	}
}

// cleanup shuts down all resources.
func (a *App) cleanup() {
	a.log.Info("match closed",
		"left", a.match.Score.Left,
		"right", a.match.Score.Right,
		"ticks", a.match.Tick)

	// Finalize screen
	if a.screen != nil {
		a.screen.Fini()
	}

	// Stop signal handling
	if a.sigChan != nil {
		signal.Stop(a.sigChan)
	}
}
