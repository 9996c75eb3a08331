// Package engine provides the Session: the live game state and the
// command loop that ties navigation, action resolution and dialogue
// together over a Console.
package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nathoo/darkharvest/engine/console"
	"github.com/nathoo/darkharvest/engine/dialogue"
	"github.com/nathoo/darkharvest/engine/narrate"
	"github.com/nathoo/darkharvest/engine/parser"
	"github.com/nathoo/darkharvest/engine/resolve"
	"github.com/nathoo/darkharvest/engine/stats"
	"github.com/nathoo/darkharvest/engine/world"
	"github.com/nathoo/darkharvest/types"
)

// Player-facing messages.
const (
	MsgInvalidInput = "Invalid input."
	MsgGoWhere      = "Go where?"
	MsgCannotGo     = "You cannot go that way."
	MsgNoWayBack    = "There is no way back."
	MsgBackRefused  = "You cannot go back the way you came."
	MsgNoOneToTalk  = "There is no one here to talk to."
	MsgTurnAway     = "You turn away from the people. You can talk again or do other actions in the room. Type help for more information."
	MsgTalkHeading  = "Who do you want to talk to?"
)

var helpText = []string{
	"Commands:",
	"  help                          Show this help",
	"  go/walk/move <direction>      Move north (n), south (s), east (e), west (w) or back",
	"  look                          Look around",
	"  explore                       Search the area",
	"  talk/converse                 Talk to whoever is here",
	"  character/sheet               Show your character sheet",
	"  q/quit/exit                   Leave the adventure",
}

// Session holds the live game state. It is created once per adventure
// and driven by Run until the player quits.
type Session struct {
	ID        uuid.UUID
	Active    bool
	Character types.Character
	Bonuses   stats.BonusTable
	Current   *world.Room
	Previous  *world.Room // one slot: only the last room is remembered
	Turns     int

	con    console.Console
	text   narrate.Data
	roller resolve.Roller
	log    *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithRoller replaces the session's dice roller.
func WithRoller(r resolve.Roller) Option {
	return func(s *Session) { s.roller = r }
}

// WithLogger sets the logger used for session diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithBonuses replaces the stat bonus table.
func WithBonuses(t stats.BonusTable) Option {
	return func(s *Session) { s.Bonuses = t }
}

// New creates an active session for character starting in start.
func New(character types.Character, start *world.Room, con console.Console, opts ...Option) *Session {
	s := &Session{
		ID:        uuid.New(),
		Active:    true,
		Character: character,
		Bonuses:   stats.DefaultBonuses(),
		Current:   start,
		con:       con,
		text:      narrate.For(character),
		roller:    NewRNG(0),
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("session", s.ID.String())
	return s
}

// Run describes the starting room, then reads and dispatches commands
// until the player quits or the input ends. It returns an error only for
// failures the session cannot continue past: console I/O errors and
// broken adventure content.
func (s *Session) Run() error {
	s.log.Info("session started", "character", s.Character.Name, "room", s.Current.Name)

	if err := s.render(); err != nil {
		return err
	}

	for s.Active {
		line, err := s.con.ReadLine()
		if errors.Is(err, io.EOF) {
			s.log.Info("input closed", "turns", s.Turns)
			s.Active = false
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading command: %w", err)
		}

		if err := s.Dispatch(line); err != nil {
			if errors.Is(err, io.EOF) {
				s.Active = false
				return nil
			}
			return err
		}
	}

	s.log.Info("session ended", "turns", s.Turns)
	return nil
}

// Dispatch executes one command line.
func (s *Session) Dispatch(line string) error {
	cmd := parser.Parse(line)
	if cmd.Empty() {
		return s.say(MsgInvalidInput)
	}
	s.Turns++
	s.log.Debug("command", "verb", cmd.Verb, "token", cmd.Token, "args", cmd.Args)

	switch cmd.Verb {
	case parser.VerbHelp:
		return s.say(helpText...)

	case parser.VerbGo:
		if cmd.Arg(0) == "" {
			return s.say(MsgGoWhere)
		}
		dir, ok := parser.ParseDirection(cmd.Arg(0))
		if !ok {
			return s.say(MsgCannotGo)
		}
		return s.Navigate(dir)

	case parser.VerbLook:
		return s.act(types.ActionLook, stats.Int)

	case parser.VerbExplore:
		return s.act(types.ActionExplore, stats.Int)

	case parser.VerbTalk:
		return s.talk()

	case parser.VerbCharacter:
		return s.say(CharacterSheet(s.Character, s.Bonuses)...)

	case parser.VerbQuit:
		s.Active = false
		return s.say(fmt.Sprintf("Farewell, %s.", s.Character.Name))

	default:
		return s.say(fmt.Sprintf("What is: %s?", cmd.Token))
	}
}

// Navigate moves the player in dir. "back" follows the room's GoBack
// policy and swaps the current and previous rooms.
func (s *Session) Navigate(dir types.Direction) error {
	if dir == types.DirBack {
		return s.back()
	}

	next, err := s.Current.Exit(dir)
	if err != nil {
		return err
	}
	if next == nil {
		return s.say(MsgCannotGo)
	}

	s.log.Debug("moved", "from", s.Current.Name, "to", next.Name, "direction", dir.String())
	s.Previous = s.Current
	s.Current = next
	return s.render()
}

func (s *Session) back() error {
	gb := s.Current.GoBack
	if !gb.CanGoBack {
		if gb.Reason != "" {
			return s.say(gb.Reason)
		}
		return s.say(MsgBackRefused)
	}
	if s.Previous == nil {
		return s.say(MsgNoWayBack)
	}

	s.log.Debug("went back", "from", s.Current.Name, "to", s.Previous.Name)
	s.Current, s.Previous = s.Previous, s.Current
	return s.render()
}

// act resolves a room action with the bonus of the given attribute.
func (s *Session) act(action types.Action, kind stats.Kind) error {
	bonus, err := s.Bonuses.CharacterBonus(s.Character, kind)
	if err != nil {
		return fmt.Errorf("%s bonus for %s: %w", kind, s.Character.Name, err)
	}

	out := resolve.Resolve(s.Current, action, bonus, s.roller)
	if out.Checked {
		s.log.Debug("check", "action", action.String(), "roll", out.Roll, "dc", out.DC, "success", out.Success)
	}
	return s.narrate(fmt.Sprintf("room %q action %s", s.Current.Name, action), out.Output...)
}

// talk enters the room's conversation, or lets the player pick one of the
// room's NPCs, or falls back to the room's talk action.
func (s *Session) talk() error {
	room := s.Current

	if room.Conversation != nil {
		return s.converse(room.Name, room.Conversation)
	}

	if len(room.NPCs) > 0 {
		labels := make([]string, len(room.NPCs))
		for i, npc := range room.NPCs {
			labels[i] = npc.Name
		}
		menu := &narratingConsole{Console: s.con, data: s.text, where: fmt.Sprintf("room %q npcs", room.Name)}
		idx, ok, err := dialogue.Choose(menu, MsgTalkHeading, labels)
		if err != nil {
			return err
		}
		if !ok {
			return s.say(MsgTurnAway)
		}
		npc := room.NPCs[idx]
		if npc.Conversation == nil {
			return s.narrate(fmt.Sprintf("npc %q", npc.Name), npc.Name+" has nothing to say.")
		}
		return s.converse(npc.Name, npc.Conversation)
	}

	if room.Action(types.ActionTalk) != nil {
		return s.act(types.ActionTalk, stats.Chr)
	}

	return s.say(MsgNoOneToTalk)
}

func (s *Session) converse(with string, tree *dialogue.Tree) error {
	res, err := dialogue.Run(tree, &narratingConsole{Console: s.con, data: s.text, where: with})
	if err != nil {
		return err
	}
	s.log.Debug("conversation ended", "with", with, "result", res.String())
	return nil
}

// render shows the current room.
func (s *Session) render() error {
	return s.narrate(fmt.Sprintf("room %q", s.Current.Name), s.Current.Describe()...)
}

// narrate writes adventure text with the character's placeholders filled
// in. Only authored text goes through here, never player input.
func (s *Session) narrate(where string, lines ...string) error {
	out, err := narrate.ExpandAll(lines, s.text)
	if err != nil {
		return &types.ContentIntegrityError{Where: where, Reason: err.Error()}
	}
	return s.say(out...)
}

// narratingConsole expands the lines a conversation or the NPC menu
// writes. Everything they print is authored text or a fixed prompt.
type narratingConsole struct {
	console.Console
	data  narrate.Data
	where string
}

func (c *narratingConsole) WriteLine(text string) error {
	out, err := narrate.Expand(text, c.data)
	if err != nil {
		return &types.ContentIntegrityError{Where: "conversation with " + c.where, Reason: err.Error()}
	}
	return c.Console.WriteLine(out)
}

func (s *Session) say(lines ...string) error {
	return console.WriteLines(s.con, lines...)
}

// CharacterSheet renders a character and the modifiers its stats give.
func CharacterSheet(c types.Character, bonuses stats.BonusTable) []string {
	lines := []string{"==== [" + c.Name + "] ===="}
	if c.Race != nil {
		lines = append(lines, "Race:  "+c.Race.Name)
	}
	if c.Class != nil {
		lines = append(lines, "Class: "+c.Class.Name)
	}
	if c.Stats == nil {
		return append(lines, "No stats rolled.")
	}
	for k := stats.Str; k <= stats.Dur; k++ {
		v := stats.Value(*c.Stats, k)
		b, err := bonuses.Bonus(v)
		if err != nil {
			lines = append(lines, fmt.Sprintf("%s: %d (invalid)", k, v))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %d (%+d)", k, v, b))
	}
	return lines
}
