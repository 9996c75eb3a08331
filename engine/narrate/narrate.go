// Package narrate expands the character placeholders adventure text may
// carry, such as {{ .Name }} or {{ .Name | upper }}. Templates get the
// hermetic sprig functions only: no environment, clock or randomness, so
// a seeded run replays the same text.
package narrate

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/nathoo/darkharvest/types"
)

var funcs = sprig.HermeticTxtFuncMap()

// Data is what a template sees.
type Data struct {
	Name  string
	Race  string
	Class string
	Str   int
	Int   int
	Dex   int
	Chr   int
	Dur   int
}

// For builds template data for a character. Missing stats read as zero.
func For(c types.Character) Data {
	d := Data{Name: c.Name}
	if c.Race != nil {
		d.Race = c.Race.Name
	}
	if c.Class != nil {
		d.Class = c.Class.Name
	}
	if s := c.Stats; s != nil {
		d.Str, d.Int, d.Dex, d.Chr, d.Dur = s.Str, s.Int, s.Dex, s.Chr, s.Dur
	}
	return d
}

// Expand renders text against d. Text without template markers is
// returned as is.
func Expand(text string, d Data) (string, error) {
	if !strings.Contains(text, "{{") {
		return text, nil
	}

	tmpl, err := template.New("").Funcs(funcs).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, d); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return buf.String(), nil
}

// ExpandAll renders every line against d, stopping at the first failure.
func ExpandAll(lines []string, d Data) ([]string, error) {
	out := make([]string, len(lines))
	for i, l := range lines {
		s, err := Expand(l, d)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// Check reports whether text would expand for any character. Adventure
// loaders call it so a bad placeholder fails at load time instead of in
// the middle of play.
func Check(text string) error {
	_, err := Expand(text, Data{Name: "Check"})
	return err
}
