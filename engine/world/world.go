// Package world defines the room graph: rooms, their exits, the scripted
// actions they support and the conversations they host. Rooms are built
// once by the adventure author and are read-only afterwards, so they are
// shared by pointer.
package world

import (
	"fmt"

	"github.com/pixil98/go-errors"

	"github.com/nathoo/darkharvest/engine/dialogue"
	"github.com/nathoo/darkharvest/types"
)

// Exit is a directed edge to another room.
type Exit struct {
	Direction types.Direction
	Room      *Room
}

// MakeExit creates an exit leading to room.
func MakeExit(dir types.Direction, room *Room) Exit {
	return Exit{Direction: dir, Room: room}
}

// NPC is a person the player can talk to.
type NPC struct {
	Name         string
	Conversation *dialogue.Tree
}

// Room is a location node.
type Room struct {
	Name         string
	Description  string
	Actions      map[types.Action]*types.OnAction
	Exits        []Exit
	GoBack       types.GoBack
	Conversation *dialogue.Tree // optional
	NPCs         []NPC          // optional
}

// Exit returns the room reached by going dir. It returns (nil, nil) when
// the room has no exit that way. An exit that names a direction but has
// no room is a broken graph and yields a *types.ContentIntegrityError.
func (r *Room) Exit(dir types.Direction) (*Room, error) {
	for _, e := range r.Exits {
		if e.Direction != dir {
			continue
		}
		if e.Room == nil {
			return nil, &types.ContentIntegrityError{
				Where:  fmt.Sprintf("room %q exit %s", r.Name, dir),
				Reason: "exit has no target room",
			}
		}
		return e.Room, nil
	}
	return nil, nil
}

// Action returns the scripted reaction to a, or nil if nothing happens.
func (r *Room) Action(a types.Action) *types.OnAction {
	if r.Actions == nil {
		return nil
	}
	return r.Actions[a]
}

// Describe returns the lines shown when the player enters the room.
func (r *Room) Describe() []string {
	return []string{fmt.Sprintf("== %s ==", r.Name), r.Description}
}

// Directions lists the directions of the room's exits in authoring order.
func (r *Room) Directions() []types.Direction {
	dirs := make([]types.Direction, 0, len(r.Exits))
	for _, e := range r.Exits {
		dirs = append(dirs, e.Direction)
	}
	return dirs
}

// Validate walks every room reachable from root and reports all integrity
// problems at once. Cycles are allowed.
func Validate(root *Room) error {
	if root == nil {
		return &types.ContentIntegrityError{Where: "world", Reason: "no starting room"}
	}

	el := errors.NewErrorList()
	seen := map[*Room]bool{root: true}
	queue := []*Room{root}

	for len(queue) > 0 {
		r := queue[0]
		queue = queue[1:]

		if r.Name == "" {
			el.Add(fmt.Errorf("room with description %q has no name", truncate(r.Description, 30)))
		}

		dirs := map[types.Direction]bool{}
		for _, e := range r.Exits {
			switch e.Direction {
			case types.DirNone, types.DirBack:
				el.Add(fmt.Errorf("room %q: exit direction %s cannot lead anywhere", r.Name, e.Direction))
			}
			if dirs[e.Direction] {
				el.Add(fmt.Errorf("room %q: duplicate exit %s", r.Name, e.Direction))
			}
			dirs[e.Direction] = true

			if e.Room == nil {
				el.Add(fmt.Errorf("room %q: exit %s has no target room", r.Name, e.Direction))
				continue
			}
			if !seen[e.Room] {
				seen[e.Room] = true
				queue = append(queue, e.Room)
			}
		}

		if r.Conversation != nil {
			if err := r.Conversation.Validate(); err != nil {
				el.Add(fmt.Errorf("room %q: %w", r.Name, err))
			}
		}
		for _, npc := range r.NPCs {
			if npc.Name == "" {
				el.Add(fmt.Errorf("room %q: npc has no name", r.Name))
			}
			if npc.Conversation != nil {
				if err := npc.Conversation.Validate(); err != nil {
					el.Add(fmt.Errorf("room %q npc %q: %w", r.Name, npc.Name, err))
				}
			}
		}
	}

	if err := el.Err(); err != nil {
		return &types.ContentIntegrityError{Where: "world", Reason: err.Error()}
	}
	return nil
}

// Rooms returns every room reachable from root, breadth first.
func Rooms(root *Room) []*Room {
	if root == nil {
		return nil
	}
	seen := map[*Room]bool{root: true}
	out := []*Room{root}
	for i := 0; i < len(out); i++ {
		for _, e := range out[i].Exits {
			if e.Room != nil && !seen[e.Room] {
				seen[e.Room] = true
				out = append(out, e.Room)
			}
		}
	}
	return out
}

// truncate keeps the first n runes of s.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
