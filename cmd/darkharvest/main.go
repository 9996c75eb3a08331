// Dark Harvest is a text adventure engine with a dice-driven action system
// and branching conversations.
// Usage: darkharvest [--version] [--plain] [--trace] [--seed <n>] [--width <n>] [--script <file>] [--adventure <name|path>]
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/nathoo/darkharvest/cli"
	"github.com/nathoo/darkharvest/internal/config"
	"github.com/nathoo/darkharvest/tui"
	"github.com/nathoo/darkharvest/types"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n%s\n", err, config.Usage)
		return 1
	}
	if cfg.Version {
		fmt.Printf("darkharvest %s (commit %s, built %s)\n", version, commit, date)
		return 0
	}

	log, closeLog, err := cfg.Logger(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	game := cli.Game{
		Seed:      cfg.Seed,
		Adventure: cfg.Adventure,
		Log:       log,
	}

	switch {
	case cfg.Script != "":
		// Script mode: read commands from the file, force plain, echo them.
		f, openErr := os.Open(cfg.Script)
		if openErr != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", openErr)
			return 1
		}
		defer f.Close()
		c := cli.New(game)
		c.In = f
		c.Width = cfg.Width
		c.EchoInput = true
		err = c.Run()

	case cfg.Plain || !isTerminal():
		c := cli.New(game)
		c.Width = cfg.Width
		err = c.Run()

	default:
		err = tui.Run(game)
	}

	return exitCode(err, log)
}

func exitCode(err error, log *slog.Logger) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, cli.ErrQuit) {
		return 1
	}

	var cie *types.ContentIntegrityError
	if errors.As(err, &cie) {
		log.Error("adventure content is broken", "where", cie.Where, "reason", cie.Reason)
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 1
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
