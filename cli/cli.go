// Package cli drives a full game over a Console: character creation,
// adventure selection, the intro banner and then the session loop. The
// plain terminal front end and the TUI both run it.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/nathoo/darkharvest/engine"
	"github.com/nathoo/darkharvest/engine/console"
	"github.com/nathoo/darkharvest/engine/narrate"
	"github.com/nathoo/darkharvest/loader"
	"github.com/nathoo/darkharvest/types"
)

// Game holds the settings of one play-through.
type Game struct {
	Seed      int64  // 0 seeds from the clock
	Adventure string // preselected adventure; empty asks the player
	Log       *slog.Logger

	// OnStart, if set, is called on the playing goroutine once the
	// adventure is chosen and the session is about to run.
	OnStart func(title string, character types.Character)
}

// Play runs setup and then the session over con. It returns ErrQuit if
// the player leaves during setup, a *types.ContentIntegrityError for
// broken content, or a console I/O error.
func (g *Game) Play(con console.Console) error {
	log := g.Log
	if log == nil {
		log = slog.Default()
	}

	rng := engine.NewRNG(g.Seed)
	log.Info("dice seeded", "seed", rng.Seed())

	character, err := CreateCharacter(con, rng)
	if err != nil {
		return err
	}

	adv, err := ChooseAdventure(con, g.Adventure, loader.WithLogger(log))
	if err != nil {
		return err
	}

	banner, err := narrate.ExpandAll(adv.Banner(), narrate.For(character))
	if err != nil {
		return &types.ContentIntegrityError{Where: "adventure intro", Reason: err.Error()}
	}
	if err := console.WriteLines(con, banner...); err != nil {
		return err
	}

	s := engine.New(character, adv.Start, con,
		engine.WithRoller(rng),
		engine.WithLogger(log.With("adventure", adv.Title)),
	)
	if g.OnStart != nil {
		g.OnStart(adv.Title, character)
	}

	err = s.Run()
	log.Info("dice used", "seed", rng.Seed(), "rolls", rng.Position())
	return err
}

// CLI is the plain line-based front end.
type CLI struct {
	Game      Game
	In        io.Reader
	Out       io.Writer
	Width     int
	EchoInput bool // echo each input line after the prompt (for script playback)
}

// New creates a CLI on stdin and stdout.
func New(game Game) *CLI {
	return &CLI{
		Game:  game,
		In:    os.Stdin,
		Out:   os.Stdout,
		Width: console.DefaultWidth,
	}
}

// Run plays one game on the terminal.
func (c *CLI) Run() error {
	term := console.New(c.In, c.Out)
	term.Width = c.Width
	term.EchoInput = c.EchoInput

	if err := c.Game.Play(term); err != nil {
		return fmt.Errorf("playing: %w", err)
	}
	return nil
}
