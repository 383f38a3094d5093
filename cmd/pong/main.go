package main

import (
	"fmt"
	"os"

	"github.com/diegok/pong/internal/app"
	"github.com/diegok/pong/internal/config"
)

func main() {
	cfg, err := config.ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		printUsage()
		os.Exit(1)
	}

	application := app.NewApp(cfg)
	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  pong [options]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Options:")
	fmt.Fprintln(os.Stderr, "  --config <file>        TOML config file, flags override it")
	fmt.Fprintln(os.Stderr, "  --width <n>            Court width (default: 800)")
	fmt.Fprintln(os.Stderr, "  --height <n>           Court height (default: 600)")
	fmt.Fprintln(os.Stderr, "  --bot-left             Computer plays the left paddle (default: true)")
	fmt.Fprintln(os.Stderr, "  --bot-right            Computer plays the right paddle (default: false)")
	fmt.Fprintln(os.Stderr, "  --points <n>           Points to win, 0 plays forever (default: 0)")
	fmt.Fprintln(os.Stderr, "  --seed <n>             Serve seed, 0 picks one (default: 0)")
	fmt.Fprintln(os.Stderr, "  --log <file>           Write logs to file")
	fmt.Fprintln(os.Stderr, "  --log-level <level>    debug, info, warn or error (default: info)")
	fmt.Fprintln(os.Stderr, "  --ball-color <hex>     Ball color (default: #ffffff)")
	fmt.Fprintln(os.Stderr, "  --paddle-color <hex>   Paddle color (default: #ffffff)")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Examples:")
	fmt.Fprintln(os.Stderr, "  pong")
	fmt.Fprintln(os.Stderr, "  pong --bot-left=false --points 11")
	fmt.Fprintln(os.Stderr, "  pong --config pong.toml --log pong.log --log-level debug")
}
