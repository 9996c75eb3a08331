package dialogue

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/nathoo/darkharvest/engine/console"
	"github.com/nathoo/darkharvest/types"
)

func testTree(t *testing.T) *Tree {
	t.Helper()
	tree, err := Compile(Line("Who are you?",
		Option("I don't know.", Line("Then find out.",
			Option("How?", Line("Walk north.")),
		)),
		Option("Leave me alone.", Line("As you wish.")),
	))
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	return tree
}

func newTestConsole(input string) (*console.Terminal, *bytes.Buffer) {
	var out bytes.Buffer
	term := console.New(strings.NewReader(input), &out)
	term.Width = 0
	return term, &out
}

func TestCompile_FlattensBreadthFirst(t *testing.T) {
	tree := testTree(t)

	if len(tree.Nodes) != 5 {
		t.Fatalf("expected 5 nodes, got %d", len(tree.Nodes))
	}
	root := tree.Nodes[Root]
	if root.Line != "Who are you?" {
		t.Errorf("root line = %q", root.Line)
	}
	if len(root.Choices) != 2 {
		t.Fatalf("root choices = %d, want 2", len(root.Choices))
	}
	if got := tree.Nodes[root.Choices[0].Next].Line; got != "Then find out." {
		t.Errorf("choice 1 leads to %q", got)
	}
	if got := tree.Nodes[root.Choices[1].Next].Line; got != "As you wish." {
		t.Errorf("choice 2 leads to %q", got)
	}
	if err := tree.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestCompile_SharedSpecCompilesOnce(t *testing.T) {
	end := Line("Goodbye.")
	tree, err := Compile(Line("Hello.", Option("Bye", end), Option("Farewell", end)))
	if err != nil {
		t.Fatal(err)
	}
	if len(tree.Nodes) != 2 {
		t.Errorf("expected shared node to compile once, got %d nodes", len(tree.Nodes))
	}
}

func TestCompile_ChoiceWithoutNext(t *testing.T) {
	_, err := Compile(Line("Hello.", Option("Wave", nil)))
	var cie *types.ContentIntegrityError
	if !errors.As(err, &cie) {
		t.Fatalf("expected ContentIntegrityError, got %v", err)
	}
	if !strings.Contains(cie.Error(), "Wave") {
		t.Errorf("error should name the choice: %v", cie)
	}
}

func TestCompile_NilRoot(t *testing.T) {
	var cie *types.ContentIntegrityError
	if _, err := Compile(nil); !errors.As(err, &cie) {
		t.Fatalf("expected ContentIntegrityError, got %v", err)
	}
}

func TestValidate_DanglingNext(t *testing.T) {
	tree := &Tree{Nodes: []Node{{Line: "Hi.", Choices: []Choice{{Label: "Go", Next: 7}}}}}
	var cie *types.ContentIntegrityError
	if err := tree.Validate(); !errors.As(err, &cie) {
		t.Fatalf("expected ContentIntegrityError, got %v", err)
	}
}

func TestParseSelection(t *testing.T) {
	tests := []struct {
		input   string
		index   int
		quit    bool
		wantErr string
	}{
		{"1", 0, false, ""},
		{"  2  ", 1, false, ""},
		{"q", 0, true, ""},
		{"QUIT", 0, true, ""},
		{"exit now", 0, true, ""},
		{"0", 0, false, MsgInvalidChoice},
		{"-1", 0, false, MsgInvalidChoice},
		{"3", 0, false, MsgInvalidChoice},
		{"two", 0, false, MsgInvalidInput},
		{"", 0, false, MsgInvalidInput},
	}
	for _, tt := range tests {
		idx, quit, err := ParseSelection(tt.input, 2)
		if tt.wantErr != "" {
			var ie *types.InputError
			if !errors.As(err, &ie) || ie.Message != tt.wantErr {
				t.Errorf("ParseSelection(%q) err = %v, want %q", tt.input, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSelection(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if idx != tt.index || quit != tt.quit {
			t.Errorf("ParseSelection(%q) = (%d, %v), want (%d, %v)", tt.input, idx, quit, tt.index, tt.quit)
		}
	}
}

func TestCursor_InvalidInputLeavesNodeUnchanged(t *testing.T) {
	tree := testTree(t)
	cur := NewCursor(tree)

	for _, in := range []string{"0", "-3", "99", "abc", ""} {
		if _, err := cur.Select(in); err == nil {
			t.Errorf("Select(%q) should fail", in)
		}
		if cur.Index() != Root {
			t.Fatalf("Select(%q) moved cursor to %d", in, cur.Index())
		}
	}
}

func TestCursor_FirstChoiceReachesLeafInDepthSteps(t *testing.T) {
	tree := testTree(t)
	cur := NewCursor(tree)

	steps := 0
	for !cur.Done() {
		if _, err := cur.Select("1"); err != nil {
			t.Fatalf("step %d: %v", steps, err)
		}
		steps++
	}
	if steps != 2 {
		t.Errorf("expected 2 steps to the leaf, got %d", steps)
	}
	if cur.Node().Line != "Walk north." {
		t.Errorf("leaf line = %q", cur.Node().Line)
	}
}

func TestCursor_DeepTreeIsIterative(t *testing.T) {
	const depth = 100000
	leaf := Line("The end.")
	spec := leaf
	for i := 0; i < depth; i++ {
		spec = Line("Deeper...", Option("Continue", spec))
	}
	tree, err := Compile(spec)
	if err != nil {
		t.Fatal(err)
	}

	cur := NewCursor(tree)
	steps := 0
	for !cur.Done() {
		if _, err := cur.Select("1"); err != nil {
			t.Fatal(err)
		}
		steps++
	}
	if steps != depth {
		t.Errorf("steps = %d, want %d", steps, depth)
	}
}

func TestCursor_Quit(t *testing.T) {
	cur := NewCursor(testTree(t))
	out, err := cur.Select("quit")
	if err != nil || out != Abandoned {
		t.Fatalf("Select(quit) = %v, %v", out, err)
	}
	if cur.Index() != Root {
		t.Error("quit should not move the cursor")
	}
}

func TestRun_SelectsToLeaf(t *testing.T) {
	con, out := newTestConsole("1\n1\n")
	res, err := Run(testTree(t), con)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res != Completed {
		t.Errorf("result = %v, want completed", res)
	}
	s := out.String()
	for _, want := range []string{"Who are you?", "1) I don't know.", "2) Leave me alone.", "Then find out.", "1) How?", "Walk north."} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q:\n%s", want, s)
		}
	}
}

func TestRun_QuitAbandons(t *testing.T) {
	con, out := newTestConsole("1\nquit\nlook\n")
	res, err := Run(testTree(t), con)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res != Left {
		t.Errorf("result = %v, want left", res)
	}
	if !strings.Contains(out.String(), MsgAbandoned) {
		t.Error("expected abandon message")
	}
	if strings.Contains(out.String(), "Walk north.") {
		t.Error("conversation should not continue after quit")
	}
	// "look" must still be unread for the session.
	line, err := con.ReadLine()
	if err != nil || line != "look" {
		t.Errorf("next line = %q, %v", line, err)
	}
}

func TestRun_RepromptsOnBadInput(t *testing.T) {
	con, out := newTestConsole("7\nhello\n2\n")
	res, err := Run(testTree(t), con)
	if err != nil || res != Completed {
		t.Fatalf("Run = %v, %v", res, err)
	}
	s := out.String()
	if !strings.Contains(s, MsgInvalidChoice) || !strings.Contains(s, MsgInvalidInput) {
		t.Errorf("expected both error messages:\n%s", s)
	}
	if strings.Count(s, "Who are you?") != 1 {
		t.Error("root line should be printed once; re-prompt stays at the same node")
	}
	if !strings.Contains(s, "As you wish.") {
		t.Error("expected second branch after valid input")
	}
}

func TestRun_EOFPropagates(t *testing.T) {
	con, _ := newTestConsole("")
	if _, err := Run(testTree(t), con); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestChoose(t *testing.T) {
	con, out := newTestConsole("5\n2\n")
	idx, ok, err := Choose(con, "Who do you want to talk to?", []string{"Old Man", "Crow"})
	if err != nil || !ok || idx != 1 {
		t.Fatalf("Choose = %d, %v, %v", idx, ok, err)
	}
	if !strings.Contains(out.String(), "2) Crow") {
		t.Errorf("menu missing:\n%s", out.String())
	}

	con, _ = newTestConsole("q\n")
	if _, ok, err := Choose(con, "Who?", []string{"Old Man"}); err != nil || ok {
		t.Fatalf("Choose quit = %v, %v", ok, err)
	}
}
