// Package loader reads adventure content (Lua scripts or YAML files) and
// compiles it into a validated world graph. Content is only interpreted
// at load time: the session never sees Lua or YAML.
package loader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/darkharvest/engine/dialogue"
	"github.com/nathoo/darkharvest/engine/parser"
	"github.com/nathoo/darkharvest/engine/world"
	"github.com/nathoo/darkharvest/types"
)

// rawAdventure is the format-neutral form both front ends decode into.
type rawAdventure struct {
	Title      string    `yaml:"title"`
	Intro      string    `yaml:"intro"`
	Difficulty string    `yaml:"difficulty"`
	Length     string    `yaml:"length"`
	Start      string    `yaml:"start"`
	Rooms      []rawRoom `yaml:"rooms"`
	NPCs       []rawNPC  `yaml:"npcs"`
}

type rawRoom struct {
	ID           string               `yaml:"id"`
	Name         string               `yaml:"name"`
	Description  string               `yaml:"description"`
	Exits        map[string]string    `yaml:"exits"`
	Actions      map[string]rawAction `yaml:"actions"`
	GoBack       *bool                `yaml:"go_back"`
	BackReason   string               `yaml:"go_back_reason"`
	Conversation *rawLine             `yaml:"conversation"`
	NPCs         []string             `yaml:"npcs"`
}

type rawAction struct {
	Text string `yaml:"text"`
	DC   *int   `yaml:"dc"`
}

type rawNPC struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	Conversation *rawLine `yaml:"conversation"`
}

type rawLine struct {
	Line    string      `yaml:"line"`
	Choices []rawChoice `yaml:"choices"`
}

type rawChoice struct {
	Label string   `yaml:"label"`
	Next  *rawLine `yaml:"next"`
}

var actionNames = map[string]types.Action{
	"look":    types.ActionLook,
	"explore": types.ActionExplore,
	"talk":    types.ActionTalk,
}

// exitOrder fixes the order exits are wired in, since both formats author
// them as maps.
var exitOrder = map[types.Direction]int{
	types.DirNorth: 0,
	types.DirSouth: 1,
	types.DirEast:  2,
	types.DirWest:  3,
}

// compile builds the room graph and returns it with its rooms by id.
// Every problem is collected into ve; the result is only usable when ve
// has no errors.
func compile(raw *rawAdventure, ve *ValidationError) (*world.Adventure, map[string]*world.Room) {
	adv := &world.Adventure{
		Title:      raw.Title,
		Intro:      raw.Intro,
		Difficulty: raw.Difficulty,
		Length:     raw.Length,
	}

	npcs := make(map[string]world.NPC, len(raw.NPCs))
	for _, rn := range raw.NPCs {
		if rn.ID == "" {
			ve.errorf("npc %q has no id", rn.Name)
			continue
		}
		if _, dup := npcs[rn.ID]; dup {
			ve.errorf("npc %q defined twice", rn.ID)
			continue
		}
		npc := world.NPC{Name: rn.Name}
		if npc.Name == "" {
			npc.Name = rn.ID
		}
		npc.Conversation = compileConversation(rn.Conversation, "npc "+rn.ID, ve)
		npcs[rn.ID] = npc
	}

	rooms := make(map[string]*world.Room, len(raw.Rooms))
	for _, rr := range raw.Rooms {
		if rr.ID == "" {
			ve.errorf("room %q has no id", rr.Name)
			continue
		}
		if _, dup := rooms[rr.ID]; dup {
			ve.errorf("room %q defined twice", rr.ID)
			continue
		}
		rooms[rr.ID] = &world.Room{
			Name:        rr.Name,
			Description: strings.TrimSpace(rr.Description),
		}
	}

	wired := make(map[string]bool, len(rooms))
	for _, rr := range raw.Rooms {
		room, ok := rooms[rr.ID]
		if !ok || wired[rr.ID] {
			continue
		}
		wired[rr.ID] = true
		compileRoom(rr, room, rooms, npcs, ve)
	}

	if raw.Start == "" {
		ve.errorf("adventure start room is required")
	} else if start, ok := rooms[raw.Start]; ok {
		adv.Start = start
	} else {
		ve.errorf("start room %q not found in defined rooms", raw.Start)
	}
	return adv, rooms
}

func compileRoom(rr rawRoom, room *world.Room, rooms map[string]*world.Room, npcs map[string]world.NPC, ve *ValidationError) {
	if room.Name == "" {
		room.Name = rr.ID
	}

	room.GoBack = types.GoBack{CanGoBack: rr.GoBack == nil || *rr.GoBack, Reason: rr.BackReason}

	room.Exits = make([]world.Exit, 0, len(rr.Exits))
	for token, target := range rr.Exits {
		dir, ok := parser.ParseDirection(token)
		if !ok || dir == types.DirBack {
			ve.errorf("room %q exit %q is not a direction", rr.ID, token)
			continue
		}
		to, ok := rooms[target]
		if !ok {
			ve.errorf("room %q exit %q points to undefined room %q", rr.ID, token, target)
			continue
		}
		room.Exits = append(room.Exits, world.MakeExit(dir, to))
	}
	sort.Slice(room.Exits, func(i, j int) bool {
		return exitOrder[room.Exits[i].Direction] < exitOrder[room.Exits[j].Direction]
	})

	room.Actions = make(map[types.Action]*types.OnAction, len(rr.Actions))
	for name, ra := range rr.Actions {
		action, ok := actionNames[strings.ToLower(name)]
		if !ok {
			ve.errorf("room %q has unknown action %q", rr.ID, name)
			continue
		}
		if ra.Text == "" {
			ve.warnf("room %q action %s has no text", rr.ID, name)
		}
		room.Actions[action] = &types.OnAction{Text: strings.TrimSpace(ra.Text), DC: ra.DC}
	}

	room.Conversation = compileConversation(rr.Conversation, "room "+rr.ID, ve)

	for _, id := range rr.NPCs {
		npc, ok := npcs[id]
		if !ok {
			ve.errorf("room %q references undefined npc %q", rr.ID, id)
			continue
		}
		room.NPCs = append(room.NPCs, npc)
	}
}

// compileConversation converts authored lines to dialogue specs with an
// explicit stack, then flattens them into a tree. Each rawLine becomes one
// spec however many choices lead to it.
func compileConversation(root *rawLine, where string, ve *ValidationError) *dialogue.Tree {
	if root == nil {
		return nil
	}

	type pending struct {
		raw  *rawLine
		spec *dialogue.Spec
	}
	top := &dialogue.Spec{}
	specs := map[*rawLine]*dialogue.Spec{root: top}
	stack := []pending{{root, top}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		p.spec.Line = strings.TrimSpace(p.raw.Line)
		p.spec.Branches = make([]dialogue.Branch, len(p.raw.Choices))
		for i, c := range p.raw.Choices {
			p.spec.Branches[i].Label = c.Label
			if c.Next == nil {
				continue
			}
			next, ok := specs[c.Next]
			if !ok {
				next = &dialogue.Spec{}
				specs[c.Next] = next
				stack = append(stack, pending{c.Next, next})
			}
			p.spec.Branches[i].Next = next
		}
	}

	tree, err := dialogue.Compile(top)
	if err != nil {
		ve.errorf("%s conversation: %v", where, err)
		return nil
	}
	return tree
}

func (ve *ValidationError) errorf(format string, args ...any) {
	ve.Errors = append(ve.Errors, fmt.Sprintf(format, args...))
}

func (ve *ValidationError) warnf(format string, args ...any) {
	ve.Warnings = append(ve.Warnings, fmt.Sprintf(format, args...))
}
