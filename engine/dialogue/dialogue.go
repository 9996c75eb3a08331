package dialogue

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nathoo/darkharvest/engine/console"
	"github.com/nathoo/darkharvest/types"
)

// Player-facing messages.
const (
	MsgInvalidInput  = "Invalid input."
	MsgInvalidChoice = "Not a valid choice."
	MsgAbandoned     = "You abruptly left the conversation. You can talk again or do other actions in the room. Type help for more information."
	MsgMenuFooter    = "Choose one by typing the number or q, quit or exit to leave the conversation."
)

// Outcome is the effect of one selection on a cursor.
type Outcome int

const (
	Advanced Outcome = iota
	Abandoned
)

// Result is how a conversation ended.
type Result int

const (
	Completed Result = iota
	Left
)

func (r Result) String() string {
	if r == Left {
		return "left"
	}
	return "completed"
}

// IsQuit reports whether a token abandons a menu.
func IsQuit(token string) bool {
	switch token {
	case "q", "quit", "exit":
		return true
	}
	return false
}

// ParseSelection interprets one line of menu input against count options.
// It returns the zero-based index of the chosen option, or quit=true when
// the player abandons. Anything else is an *types.InputError.
func ParseSelection(input string, count int) (index int, quit bool, err error) {
	words := strings.Fields(strings.ToLower(input))
	if len(words) == 0 {
		return 0, false, types.NewInputError(MsgInvalidInput)
	}
	if IsQuit(words[0]) {
		return 0, true, nil
	}
	n, convErr := strconv.Atoi(words[0])
	if convErr != nil {
		return 0, false, types.NewInputError(MsgInvalidInput)
	}
	if n < 1 || n > count {
		return 0, false, types.NewInputError(MsgInvalidChoice)
	}
	return n - 1, false, nil
}

// Menu renders labels as a 1-indexed numbered menu.
func Menu(labels []string) []string {
	lines := make([]string, 0, len(labels)+3)
	lines = append(lines, "===== [Choices] =====")
	for i, l := range labels {
		lines = append(lines, fmt.Sprintf("%d) %s", i+1, l))
	}
	lines = append(lines, "=====================", MsgMenuFooter)
	return lines
}

// Labels returns the choice labels of a node in order.
func Labels(n Node) []string {
	labels := make([]string, len(n.Choices))
	for i, c := range n.Choices {
		labels[i] = c.Label
	}
	return labels
}

// Cursor is the traversal state of one conversation. It is transient:
// created per "talk" and discarded when the conversation ends.
type Cursor struct {
	tree *Tree
	cur  int
}

// NewCursor positions a cursor at the root of t.
func NewCursor(t *Tree) *Cursor {
	return &Cursor{tree: t, cur: Root}
}

// Index returns the index of the current node.
func (c *Cursor) Index() int {
	return c.cur
}

// Node returns the current node.
func (c *Cursor) Node() Node {
	return c.tree.Nodes[c.cur]
}

// Done reports whether the current node ends the conversation.
func (c *Cursor) Done() bool {
	return c.Node().Terminal()
}

// Select applies one line of player input. Invalid input returns an
// *types.InputError and leaves the cursor where it was.
func (c *Cursor) Select(input string) (Outcome, error) {
	node := c.Node()
	idx, quit, err := ParseSelection(input, len(node.Choices))
	if err != nil {
		return Advanced, err
	}
	if quit {
		return Abandoned, nil
	}
	next := node.Choices[idx].Next
	if _, err := c.tree.Node(next); err != nil {
		return Advanced, err
	}
	c.cur = next
	return Advanced, nil
}

// Run drives a conversation to its end over con. Each node's line is
// shown on entry; non-terminal nodes then show their choices and block for
// a selection. The traversal is a loop over node indexes.
func Run(t *Tree, con console.Console) (Result, error) {
	if err := t.Validate(); err != nil {
		return Completed, err
	}

	cur := NewCursor(t)
	for {
		node := cur.Node()
		if err := con.WriteLine(node.Line); err != nil {
			return Completed, err
		}
		if node.Terminal() {
			return Completed, nil
		}
		if err := console.WriteLines(con, Menu(Labels(node))...); err != nil {
			return Completed, err
		}

		outcome, err := selectNext(cur, con)
		if err != nil {
			return Completed, err
		}
		if outcome == Abandoned {
			return Left, con.WriteLine(MsgAbandoned)
		}
	}
}

// selectNext blocks until the player makes a valid selection or quits.
func selectNext(cur *Cursor, con console.Console) (Outcome, error) {
	for {
		line, err := con.ReadLine()
		if err != nil {
			return Advanced, err
		}
		outcome, err := cur.Select(line)
		var inputErr *types.InputError
		if errors.As(err, &inputErr) {
			if err := con.WriteLine(inputErr.Message); err != nil {
				return Advanced, err
			}
			continue
		}
		return outcome, err
	}
}

// Choose shows a numbered menu of labels under a heading and blocks until
// the player picks one (ok=true) or quits (ok=false).
func Choose(con console.Console, heading string, labels []string) (index int, ok bool, err error) {
	lines := append([]string{heading}, Menu(labels)...)
	if err := console.WriteLines(con, lines...); err != nil {
		return 0, false, err
	}
	for {
		line, err := con.ReadLine()
		if err != nil {
			return 0, false, err
		}
		idx, quit, err := ParseSelection(line, len(labels))
		var inputErr *types.InputError
		if errors.As(err, &inputErr) {
			if err := con.WriteLine(inputErr.Message); err != nil {
				return 0, false, err
			}
			continue
		}
		if err != nil {
			return 0, false, err
		}
		return idx, !quit, nil
	}
}
