// Package resolve evaluates a room's scripted reaction to an action,
// gating it behind a difficulty check when the author set one.
package resolve

import (
	"fmt"

	"github.com/nathoo/darkharvest/engine/world"
	"github.com/nathoo/darkharvest/types"
)

// DieSides is the size of the check die: rolls are uniform in [1, DieSides].
const DieSides = 19

// MsgNothingHappens is shown when the room has no reaction to an action.
const MsgNothingHappens = "Cannot do that action in this area."

// Roller produces a uniform random integer in [1, sides].
type Roller interface {
	Roll(sides int) int
}

// Outcome is the result of resolving one action. Output holds the lines
// to show the player, in order.
type Outcome struct {
	Output  []string
	Handled bool // the room has a reaction to the action
	Checked bool // a DC check was rolled
	Roll    int  // die + bonus, when Checked
	DC      int  // when Checked
	Success bool // the scripted text was shown
}

// Resolve looks up action in room and evaluates it. It never changes any
// state: a failed check can simply be retried.
func Resolve(room *world.Room, action types.Action, bonus int, roller Roller) Outcome {
	on := room.Action(action)
	if on == nil || on.Text == "" {
		return Outcome{Output: []string{MsgNothingHappens}}
	}

	if on.DC == nil {
		return Outcome{Output: []string{on.Text}, Handled: true, Success: true}
	}

	dc := *on.DC
	roll := roller.Roll(DieSides) + bonus
	out := Outcome{Handled: true, Checked: true, Roll: roll, DC: dc}

	if Passes(roll, dc) {
		out.Success = true
		out.Output = []string{fmt.Sprintf("Upon your roll of a: %d", roll), on.Text}
		return out
	}

	out.Output = []string{fmt.Sprintf(
		"Failed to do the action. Your roll of %d did not beat the DC of %d. You can try again.", roll, dc)}
	return out
}

// Passes reports whether a modified roll beats a difficulty check.
func Passes(roll, dc int) bool {
	return roll > dc
}
