package config

import (
	"flag"
	"log/slog"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"github.com/diegok/pong/internal/game"
)

// Default values for configuration
const (
	DefaultWidth       = game.DefaultW
	DefaultHeight      = game.DefaultH
	DefaultPoints      = game.EndlessPlay
	DefaultLogLevel    = "info"
	DefaultBallColor   = "#ffffff"
	DefaultPaddleColor = "#ffffff"

	MinWidth  = 2*game.PaddleWidth + game.BallSize
	MinHeight = game.PaddleHeight
)

// Config holds the application configuration
type Config struct {
	Width       float64
	Height      float64
	LeftBot     bool
	RightBot    bool
	PointsToWin int
	Seed        uint64 // 0 picks a seed at startup
	LogFile     string
	LogLevel    slog.Level
	BallColor   colorful.Color
	PaddleColor colorful.Color
}

// fileConfig mirrors the keys accepted in a TOML config file
type fileConfig struct {
	Width       float64 `toml:"width"`
	Height      float64 `toml:"height"`
	LeftBot     bool    `toml:"bot_left"`
	RightBot    bool    `toml:"bot_right"`
	PointsToWin int     `toml:"points"`
	Seed        uint64  `toml:"seed"`
	LogFile     string  `toml:"log"`
	LogLevel    string  `toml:"log_level"`
	BallColor   string  `toml:"ball_color"`
	PaddleColor string  `toml:"paddle_color"`
}

func defaults() fileConfig {
	return fileConfig{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		LeftBot:     true,
		RightBot:    false,
		PointsToWin: DefaultPoints,
		LogLevel:    DefaultLogLevel,
		BallColor:   DefaultBallColor,
		PaddleColor: DefaultPaddleColor,
	}
}

// ParseArgs parses command line arguments and returns a Config. Values from
// the --config file sit between the defaults and flags given explicitly.
func ParseArgs(args []string) (*Config, error) {
	fs := flag.NewFlagSet("pong", flag.ContinueOnError)

	def := defaults()
	path := fs.String("config", "", "TOML config file")
	width := fs.Float64("width", def.Width, "court width in world pixels")
	height := fs.Float64("height", def.Height, "court height in world pixels")
	leftBot := fs.Bool("bot-left", def.LeftBot, "left paddle is played by the bot")
	rightBot := fs.Bool("bot-right", def.RightBot, "right paddle is played by the bot")
	points := fs.Int("points", def.PointsToWin, "points to win (0 plays forever)")
	seed := fs.Uint64("seed", def.Seed, "random seed for ball launches (0 picks one)")
	logFile := fs.String("log", def.LogFile, "write logs to this file")
	logLevel := fs.String("log-level", def.LogLevel, "debug, info, warn or error")
	ballColor := fs.String("ball-color", def.BallColor, "ball color as hex")
	paddleColor := fs.String("paddle-color", def.PaddleColor, "paddle color as hex")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, errors.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	fc := def
	if *path != "" {
		loaded, err := loadFile(*path)
		if err != nil {
			return nil, err
		}
		fc = loaded
	}

	// Flags set on the command line win over the file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			fc.Width = *width
		case "height":
			fc.Height = *height
		case "bot-left":
			fc.LeftBot = *leftBot
		case "bot-right":
			fc.RightBot = *rightBot
		case "points":
			fc.PointsToWin = *points
		case "seed":
			fc.Seed = *seed
		case "log":
			fc.LogFile = *logFile
		case "log-level":
			fc.LogLevel = *logLevel
		case "ball-color":
			fc.BallColor = *ballColor
		case "paddle-color":
			fc.PaddleColor = *paddleColor
		}
	})

	return fc.validate()
}

// loadFile reads a TOML config file on top of the defaults. Unknown keys are an error.
func loadFile(path string) (fileConfig, error) {
	fc := defaults()
	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return fc, errors.Wrapf(err, "read config %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return fc, errors.Errorf("config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return fc, nil
}

func (fc fileConfig) validate() (*Config, error) {
	if fc.Width < MinWidth {
		return nil, errors.Errorf("width must be at least %g, got %g", MinWidth, fc.Width)
	}
	if fc.Height < MinHeight {
		return nil, errors.Errorf("height must be at least %g, got %g", MinHeight, fc.Height)
	}
	if fc.PointsToWin < 0 {
		return nil, errors.Errorf("points must not be negative, got %d", fc.PointsToWin)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(fc.LogLevel)); err != nil {
		return nil, errors.Wrapf(err, "log level %q", fc.LogLevel)
	}

	ball, err := colorful.Hex(fc.BallColor)
	if err != nil {
		return nil, errors.Wrapf(err, "ball color %q", fc.BallColor)
	}
	paddle, err := colorful.Hex(fc.PaddleColor)
	if err != nil {
		return nil, errors.Wrapf(err, "paddle color %q", fc.PaddleColor)
	}

	return &Config{
		Width:       fc.Width,
		Height:      fc.Height,
		LeftBot:     fc.LeftBot,
		RightBot:    fc.RightBot,
		PointsToWin: fc.PointsToWin,
		Seed:        fc.Seed,
		LogFile:     fc.LogFile,
		LogLevel:    level,
		BallColor:   ball,
		PaddleColor: paddle,
	}, nil
}

// MatchOptions converts the configuration into options for a new match
func (c *Config) MatchOptions(seed uint64, logger *slog.Logger) game.Options {
	return game.Options{
		Size:        game.Size{W: c.Width, H: c.Height},
		LeftBot:     c.LeftBot,
		RightBot:    c.RightBot,
		PointsToWin: c.PointsToWin,
		Seed:        seed,
		Logger:      logger,
	}
}
