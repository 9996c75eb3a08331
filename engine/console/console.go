// Package console defines the two I/O primitives the engine consumes,
// a blocking line read and a line write, plus a plain terminal
// implementation over any reader/writer pair.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

// DefaultWidth is the wrap width used when none is configured.
const DefaultWidth = 80

// MaxLineLength caps one input line in bytes. Longer lines are cut and
// the rest of the line is discarded.
const MaxLineLength = 4096

// Console is the engine's view of the player.
// ReadLine blocks until a full line is available. It returns io.EOF once
// the input is exhausted.
type Console interface {
	ReadLine() (string, error)
	WriteLine(text string) error
}

// Terminal is a line-buffered Console over an io.Reader and io.Writer.
type Terminal struct {
	Prompt    string
	Width     int  // wrap width; 0 disables wrapping
	EchoInput bool // script playback: echo each line and skip '#' comments

	in  *bufio.Reader
	out io.Writer
}

// New creates a Terminal with the default prompt and width.
func New(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		Prompt: "> ",
		Width:  DefaultWidth,
		in:     bufio.NewReader(in),
		out:    out,
	}
}

// ReadLine prints the prompt and reads the next line. During script
// playback, comment lines starting with '#' are skipped so script files
// can be annotated.
func (t *Terminal) ReadLine() (string, error) {
	for {
		if _, err := fmt.Fprint(t.out, t.Prompt); err != nil {
			return "", fmt.Errorf("writing prompt: %w", err)
		}
		line, err := t.readLine()
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}
		if err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		if !t.EchoInput {
			return line, nil
		}
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		if _, err := fmt.Fprintln(t.out, line); err != nil {
			return "", fmt.Errorf("echoing input: %w", err)
		}
		return line, nil
	}
}

// readLine returns one line without its line ending, keeping at most
// MaxLineLength bytes of it.
func (t *Terminal) readLine() (string, error) {
	var buf []byte
	for {
		frag, more, err := t.in.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && len(buf) > 0 {
				break
			}
			return "", err
		}
		if room := MaxLineLength - len(buf); room > 0 {
			if len(frag) > room {
				frag = frag[:room]
			}
			buf = append(buf, frag...)
		}
		if !more {
			break
		}
	}
	return strings.ToValidUTF8(string(buf), ""), nil
}

// WriteLine writes text followed by a newline, word-wrapped to Width.
func (t *Terminal) WriteLine(text string) error {
	if t.Width > 0 {
		text = wordwrap.String(text, t.Width)
	}
	if _, err := fmt.Fprintln(t.out, text); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// WriteLines writes each line in order, stopping at the first error.
func WriteLines(c Console, lines ...string) error {
	for _, line := range lines {
		if err := c.WriteLine(line); err != nil {
			return err
		}
	}
	return nil
}
