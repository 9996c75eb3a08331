package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nathoo/darkharvest/adventures"
	"github.com/nathoo/darkharvest/engine"
	"github.com/nathoo/darkharvest/engine/console"
	"github.com/nathoo/darkharvest/engine/dialogue"
	"github.com/nathoo/darkharvest/engine/stats"
	"github.com/nathoo/darkharvest/engine/world"
	"github.com/nathoo/darkharvest/loader"
	"github.com/nathoo/darkharvest/types"
)

// ErrQuit is returned when the player leaves before the adventure starts.
var ErrQuit = errors.New("player quit before the adventure started")

// Setup prompts.
const (
	MsgAskName       = "What's your name?"
	MsgStatsPrompt   = "What would you like to do? (You can type: accept, re-roll, explain or quit)"
	MsgAdventureHead = "====[ Adventures ]===="
	MsgBye           = "Bye now!"
)

var statsExplained = []string{
	"Each stat is the sum of three six-sided dice, from 3 to 18.",
	"  str: strength    int: intelligence    dex: dexterity",
	"  chr: charisma    dur: durability",
	"Higher stats give a bonus to checks: int helps you look and explore, chr helps you talk.",
}

// Dice is the randomness setup needs.
type Dice interface {
	RollDice(n, sides int) int
}

// CreateCharacter asks for a name and rolls stats until the player
// accepts them. It returns ErrQuit if the player quits or input ends.
func CreateCharacter(con console.Console, dice Dice) (types.Character, error) {
	name, err := askName(con)
	if err != nil {
		return types.Character{}, err
	}
	c := types.Character{Name: name}

	if err := con.WriteLine("Character Creation: help us create your character sheet."); err != nil {
		return c, err
	}

	rolled := rollStats(dice)
	if err := showRoll(con, c, rolled); err != nil {
		return c, err
	}
	for {
		line, err := readSetupLine(con)
		if err != nil {
			return c, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "accept", "a":
			c.Stats = &rolled
			return c, con.WriteLine(fmt.Sprintf("Welcome, %s.", c.Name))
		case "re-roll", "reroll", "r":
			rolled = rollStats(dice)
			err = showRoll(con, c, rolled)
		case "explain":
			err = console.WriteLines(con, statsExplained...)
		case "q", "quit", "exit":
			return c, quit(con)
		case "":
			err = con.WriteLine("Invalid input. Try again.")
		default:
			err = con.WriteLine(MsgStatsPrompt)
		}
		if err != nil {
			return c, err
		}
	}
}

func askName(con console.Console) (string, error) {
	if err := con.WriteLine(MsgAskName); err != nil {
		return "", err
	}
	for {
		line, err := readSetupLine(con)
		if err != nil {
			return "", err
		}
		name := strings.TrimSpace(line)
		if name != "" {
			return name, nil
		}
		if err := con.WriteLine(dialogue.MsgInvalidInput); err != nil {
			return "", err
		}
	}
}

func rollStats(dice Dice) types.Stats {
	var v [5]int
	for i := range v {
		v[i] = dice.RollDice(3, 6)
	}
	return stats.FromRolls(v)
}

func showRoll(con console.Console, c types.Character, rolled types.Stats) error {
	c.Stats = &rolled
	lines := append([]string{"Rolled stats:"}, engine.CharacterSheet(c, stats.DefaultBonuses())[1:]...)
	return console.WriteLines(con, append(lines, "===============", MsgStatsPrompt)...)
}

// ChooseAdventure resolves preselected (a built-in name or a content
// path) or, when it is empty, lets the player pick from the catalog.
func ChooseAdventure(con console.Console, preselected string, opts ...loader.Option) (*world.Adventure, error) {
	if preselected != "" {
		if id, ok := adventures.Lookup(preselected); ok {
			return adventures.Load(id, opts...)
		}
		return loader.LoadPath(preselected, opts...)
	}

	idx, ok, err := dialogue.Choose(con, MsgAdventureHead, adventures.Titles())
	if errors.Is(err, io.EOF) {
		return nil, ErrQuit
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, quit(con)
	}
	return adventures.Load(adventures.All[idx], opts...)
}

// readSetupLine reads one line, mapping the end of input to ErrQuit.
func readSetupLine(con console.Console) (string, error) {
	line, err := con.ReadLine()
	if errors.Is(err, io.EOF) {
		return "", ErrQuit
	}
	return line, err
}

func quit(con console.Console) error {
	if err := con.WriteLine(MsgBye); err != nil {
		return err
	}
	return ErrQuit
}
