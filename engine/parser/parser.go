// Package parser converts command lines into Commands.
// Intentionally dumb: no NLP, just token matching.
package parser

import (
	"strings"

	"github.com/nathoo/darkharvest/types"
)

// Canonical verbs.
const (
	VerbHelp      = "help"
	VerbGo        = "go"
	VerbLook      = "look"
	VerbExplore   = "explore"
	VerbTalk      = "talk"
	VerbCharacter = "character"
	VerbQuit      = "quit"
)

var verbAliases = map[string]string{
	"help": VerbHelp,

	"go":   VerbGo,
	"walk": VerbGo,
	"move": VerbGo,

	"look":    VerbLook,
	"explore": VerbExplore,

	"talk":     VerbTalk,
	"converse": VerbTalk,

	"character": VerbCharacter,
	"sheet":     VerbCharacter,

	"q":    VerbQuit,
	"quit": VerbQuit,
	"exit": VerbQuit,
}

var directions = map[string]types.Direction{
	"n":     types.DirNorth,
	"north": types.DirNorth,
	"s":     types.DirSouth,
	"south": types.DirSouth,
	"e":     types.DirEast,
	"east":  types.DirEast,
	"w":     types.DirWest,
	"west":  types.DirWest,
	"back":  types.DirBack,
}

// Command is a normalized command line.
type Command struct {
	Verb  string   // canonical verb, or "" if the first token is unknown
	Token string   // the first token as typed (lowercased)
	Args  []string // remaining tokens
}

// Empty reports whether the line had no tokens.
func (c Command) Empty() bool {
	return c.Token == ""
}

// Arg returns the i-th argument or "".
func (c Command) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}

// Parse trims, lowercases and splits a line on whitespace, then maps the
// first token to its canonical verb.
func Parse(input string) Command {
	words := strings.Fields(strings.ToLower(input))
	if len(words) == 0 {
		return Command{}
	}
	return Command{
		Verb:  verbAliases[words[0]],
		Token: words[0],
		Args:  words[1:],
	}
}

// ParseDirection maps a direction token to a Direction.
func ParseDirection(token string) (types.Direction, bool) {
	d, ok := directions[strings.ToLower(token)]
	return d, ok
}
