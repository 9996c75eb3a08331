package narrate

import (
	"strings"
	"testing"

	"github.com/nathoo/darkharvest/types"
)

func TestExpand(t *testing.T) {
	d := For(types.Character{
		Name:  "Wren",
		Stats: &types.Stats{Str: 9, Int: 14, Dex: 10, Chr: 4, Dur: 12},
	})

	tests := []struct {
		text string
		want string
	}{
		{"No placeholders here.", "No placeholders here."},
		{"'You are late, {{ .Name }}.'", "'You are late, Wren.'"},
		{"{{ .Name | upper }}!", "WREN!"},
		{"{{ if gt .Int 12 }}You notice the loose board.{{ else }}Nothing.{{ end }}", "You notice the loose board."},
		{"{{ .Name | repeat 2 }}", "WrenWren"},
	}
	for _, tt := range tests {
		got, err := Expand(tt.text, d)
		if err != nil {
			t.Errorf("Expand(%q): %v", tt.text, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Expand(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestExpand_Errors(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"{{ .Name ", "parsing template"},
		{"{{ .Weapon }}", "executing template"},
		{"{{ env \"HOME\" }}", "parsing template"},
	}
	for _, tt := range tests {
		_, err := Expand(tt.text, Data{})
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("Expand(%q) error = %v, want %q", tt.text, err, tt.want)
		}
	}
}

func TestFor_NoStats(t *testing.T) {
	d := For(types.Character{Name: "Wren", Race: &types.Race{Name: "Human"}})
	if d.Name != "Wren" || d.Race != "Human" || d.Int != 0 {
		t.Errorf("data = %+v", d)
	}
}

func TestExpandAll(t *testing.T) {
	got, err := ExpandAll([]string{"== Barn ==", "{{ .Name }} ducks inside."}, Data{Name: "Wren"})
	if err != nil {
		t.Fatal(err)
	}
	if got[1] != "Wren ducks inside." {
		t.Errorf("got %q", got)
	}
	if _, err := ExpandAll([]string{"ok", "{{ .Nope }}"}, Data{}); err == nil {
		t.Error("expected error")
	}
}

func TestCheck(t *testing.T) {
	if err := Check("Hello {{ .Name }}"); err != nil {
		t.Errorf("Check: %v", err)
	}
	if err := Check("{{ .Nope }}"); err == nil {
		t.Error("expected error for unknown field")
	}
}
