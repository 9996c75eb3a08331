package tui

import (
	"errors"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrClosed is returned by WriteLine after the UI has shut down.
var ErrClosed = errors.New("tui: console closed")

// outputMsg carries one line written by the game into the Update loop.
type outputMsg struct {
	text string
}

// Console connects the game goroutine to the Bubble Tea program. The game
// blocks in ReadLine until the player submits a line; everything it writes
// is delivered to the model as a message. The model and the game share
// nothing else.
type Console struct {
	lines chan string
	done  chan struct{}
	once  sync.Once
	send  func(tea.Msg)
}

// NewConsole creates a Console that delivers output through send, which
// is normally (*tea.Program).Send.
func NewConsole(send func(tea.Msg)) *Console {
	return &Console{
		lines: make(chan string, 16),
		done:  make(chan struct{}),
		send:  send,
	}
}

// ReadLine blocks until the player submits a line. It returns io.EOF once
// the console is closed.
func (c *Console) ReadLine() (string, error) {
	select {
	case line := <-c.lines:
		return line, nil
	case <-c.done:
		return "", io.EOF
	}
}

// WriteLine hands a line to the UI.
func (c *Console) WriteLine(text string) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}
	c.send(outputMsg{text: text})
	return nil
}

// Submit queues a line for ReadLine without blocking. It reports false if
// the console is closed or the player is typing faster than the game
// reads.
func (c *Console) Submit(line string) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.lines <- line:
		return true
	default:
		return false
	}
}

// Close ends the input: pending and future ReadLine calls return io.EOF.
func (c *Console) Close() {
	c.once.Do(func() { close(c.done) })
}
