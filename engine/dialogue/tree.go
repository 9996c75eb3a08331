// Package dialogue implements branching NPC conversations. Trees are
// stored as an arena of nodes referenced by index, so traversal only moves
// a cursor and never copies subtrees.
package dialogue

import (
	"fmt"

	"github.com/nathoo/darkharvest/types"
)

// Root is the index of the first node of every tree.
const Root = 0

// Choice is an edge of a conversation: the label the player sees and the
// index of the node it leads to.
type Choice struct {
	Label string
	Next  int
}

// Node is a single line of conversation. A node without choices ends the
// conversation.
type Node struct {
	Line    string
	Choices []Choice
}

// Terminal reports whether the node ends the conversation.
func (n Node) Terminal() bool {
	return len(n.Choices) == 0
}

// Tree is an arena of conversation nodes rooted at index Root.
type Tree struct {
	Nodes []Node
}

// Node returns the node at index i.
func (t *Tree) Node(i int) (Node, error) {
	if i < 0 || i >= len(t.Nodes) {
		return Node{}, &types.ContentIntegrityError{
			Where:  "dialogue",
			Reason: fmt.Sprintf("node %d does not exist (tree has %d nodes)", i, len(t.Nodes)),
		}
	}
	return t.Nodes[i], nil
}

// Validate checks that the tree has a root and that every choice points
// at an existing node.
func (t *Tree) Validate() error {
	if t == nil || len(t.Nodes) == 0 {
		return &types.ContentIntegrityError{Where: "dialogue", Reason: "conversation has no nodes"}
	}
	for i, n := range t.Nodes {
		for j, c := range n.Choices {
			if c.Next < 0 || c.Next >= len(t.Nodes) {
				return &types.ContentIntegrityError{
					Where:  fmt.Sprintf("dialogue node %d choice %d (%q)", i, j+1, c.Label),
					Reason: fmt.Sprintf("next node %d does not exist", c.Next),
				}
			}
		}
	}
	return nil
}

// Spec is the authoring form of a conversation: a line and the branches
// that follow it. Specs nest naturally in Go literals and adventure files
// and are flattened into a Tree by Compile.
type Spec struct {
	Line     string
	Branches []Branch
}

// Branch is a labelled edge to the next Spec. Next is mandatory.
type Branch struct {
	Label string
	Next  *Spec
}

// Line creates a conversation spec.
func Line(text string, branches ...Branch) *Spec {
	return &Spec{Line: text, Branches: branches}
}

// Option creates a branch leading to next.
func Option(label string, next *Spec) Branch {
	return Branch{Label: label, Next: next}
}

// Compile flattens a spec into an arena. It walks the spec with an
// explicit queue, so nesting depth is not limited by the call stack.
// A spec reachable twice compiles to a single node.
func Compile(root *Spec) (*Tree, error) {
	if root == nil {
		return nil, &types.ContentIntegrityError{Where: "dialogue", Reason: "conversation has no root line"}
	}

	t := &Tree{Nodes: []Node{{Line: root.Line}}}
	index := map[*Spec]int{root: Root}
	queue := []*Spec{root}

	for len(queue) > 0 {
		spec := queue[0]
		queue = queue[1:]
		from := index[spec]

		for i, b := range spec.Branches {
			if b.Next == nil {
				return nil, &types.ContentIntegrityError{
					Where:  fmt.Sprintf("dialogue line %q choice %d (%q)", spec.Line, i+1, b.Label),
					Reason: "choice leads nowhere",
				}
			}
			to, seen := index[b.Next]
			if !seen {
				to = len(t.Nodes)
				index[b.Next] = to
				t.Nodes = append(t.Nodes, Node{Line: b.Next.Line})
				queue = append(queue, b.Next)
			}
			t.Nodes[from].Choices = append(t.Nodes[from].Choices, Choice{Label: b.Label, Next: to})
		}
	}

	return t, nil
}
