package loader

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/nathoo/darkharvest/engine/dialogue"
	"github.com/nathoo/darkharvest/engine/narrate"
	"github.com/nathoo/darkharvest/engine/resolve"
	"github.com/nathoo/darkharvest/engine/stats"
	"github.com/nathoo/darkharvest/engine/world"
	"github.com/nathoo/darkharvest/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// maxBonus is the largest modifier any stat can give.
var maxBonus = stats.DefaultBonuses()[stats.MaxStat]

// validate checks the compiled adventure for consistency. Warnings are
// logged; errors make the adventure unusable.
func validate(adv *world.Adventure, rooms map[string]*world.Room, ve *ValidationError, log *slog.Logger) error {
	if adv.Title == "" {
		ve.errorf("adventure title is required")
	}
	checkText(ve, "adventure intro", adv.Intro)

	// The graph check only makes sense once every reference resolved.
	if len(ve.Errors) == 0 {
		if err := world.Validate(adv.Start); err != nil {
			ve.errorf("%v", err)
		}
	}

	reachable := map[*world.Room]bool{}
	if adv.Start != nil {
		for _, r := range world.Rooms(adv.Start) {
			reachable[r] = true
		}
	}

	ids := make([]string, 0, len(rooms))
	for id := range rooms {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		room := rooms[id]
		if adv.Start != nil && !reachable[room] {
			ve.warnf("room %q is unreachable from the start room", id)
		}
		if room.Description == "" {
			ve.warnf("room %q has no description", id)
		}
		if room.Action(types.ActionTalk) != nil && (room.Conversation != nil || len(room.NPCs) > 0) {
			ve.warnf("room %q talk action is shadowed by its conversation or npcs", id)
		}
		for action, on := range room.Actions {
			if on.DC != nil && *on.DC >= resolve.DieSides+maxBonus {
				ve.warnf("room %q action %s has DC %d, which no roll can beat", id, action, *on.DC)
			}
			checkText(ve, fmt.Sprintf("room %q action %s", id, action), on.Text)
		}
		checkText(ve, fmt.Sprintf("room %q description", id), room.Description)
		checkTree(ve, fmt.Sprintf("room %q conversation", id), room.Conversation)
	}

	for _, npc := range npcs(rooms) {
		checkText(ve, fmt.Sprintf("npc %q name", npc.Name), npc.Name)
		checkTree(ve, fmt.Sprintf("npc %q conversation", npc.Name), npc.Conversation)
	}

	for _, w := range ve.Warnings {
		log.Warn("adventure content", "title", adv.Title, "warning", w)
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

// checkText records an error for text whose placeholders cannot expand.
func checkText(ve *ValidationError, where, text string) {
	if err := narrate.Check(text); err != nil {
		ve.errorf("%s: %v", where, err)
	}
}

func checkTree(ve *ValidationError, where string, t *dialogue.Tree) {
	if t == nil {
		return
	}
	for i, n := range t.Nodes {
		checkText(ve, fmt.Sprintf("%s line %d", where, i), n.Line)
		for _, c := range n.Choices {
			checkText(ve, fmt.Sprintf("%s line %d choice", where, i), c.Label)
		}
	}
}

// npcs returns each NPC once, in the order rooms first list them. Rooms
// are visited in sorted ID order so error output is stable.
func npcs(rooms map[string]*world.Room) []world.NPC {
	ids := make([]string, 0, len(rooms))
	for id := range rooms {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	seen := map[world.NPC]bool{}
	var out []world.NPC
	for _, id := range ids {
		for _, npc := range rooms[id].NPCs {
			if seen[npc] {
				continue
			}
			seen[npc] = true
			out = append(out, npc)
		}
	}
	return out
}
