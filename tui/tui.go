package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/nathoo/darkharvest/cli"
	"github.com/nathoo/darkharvest/types"
)

// rawLine stores an unstyled output line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text     string
	kind     lineKind
	isInput  bool // true for echoed player input
	isSystem bool // true for messages from the UI itself
}

// startedMsg is sent once the adventure is chosen.
type startedMsg struct {
	title     string
	character string
}

// finishedMsg is sent when the game goroutine returns.
type finishedMsg struct {
	err error
}

// Model is the Bubble Tea model for the Dark Harvest TUI.
type Model struct {
	con *Console

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine // accumulated narrative lines (unstyled, for re-wrapping)

	title     string
	character string
	turns     int
	playing   bool
	finished  bool

	width    int
	height   int
	ready    bool
	quitting bool
}

// New creates a TUI model that feeds player input to con.
func New(con *Console) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	return Model{
		con:     con,
		input:   ti,
		history: NewHistory(100),
	}
}

// Run plays game in a full-screen terminal UI. The game runs on its own
// goroutine and reaches the UI only through a Console.
func Run(game cli.Game) error {
	var p *tea.Program
	con := NewConsole(func(msg tea.Msg) { p.Send(msg) })
	p = tea.NewProgram(New(con), tea.WithAltScreen(), tea.WithMouseCellMotion())

	game.OnStart = func(title string, c types.Character) {
		p.Send(startedMsg{title: title, character: c.Name})
	}

	played := make(chan error, 1)
	go func() {
		err := game.Play(con)
		p.Send(finishedMsg{err: err})
		played <- err
	}()

	_, runErr := p.Run()
	con.Close()
	playErr := <-played

	if runErr != nil {
		return runErr
	}
	// Output written after the UI closed is not an error of the game.
	if errors.Is(playErr, ErrClosed) {
		return nil
	}
	return playErr
}

// Init starts the cursor blinking; output arrives from the game.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages (key presses, window resize, game output).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 2 // 1 status bar + 1 input line
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}

		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		if m.finished {
			m.quitting = true
			return m, tea.Quit
		}

		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			m.con.Close()
			return m, tea.Quit

		case "enter":
			return m.handleEnter(), nil

		case "up":
			if prev, ok := m.history.Prev(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if next, ok := m.history.Next(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			} else {
				m.input.SetValue("")
				m.history.ResetCursor()
			}
			return m, nil

		case "pgup", "pgdown", "ctrl+u", "ctrl+d":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case outputMsg:
		m = m.appendLines(rawLine{text: msg.text, kind: classifyLine(msg.text)})
		return m, nil

	case startedMsg:
		m.title = msg.title
		m.character = msg.character
		m.playing = true
		return m, nil

	case finishedMsg:
		m.finished = true
		m.playing = false
		m.input.Blur()
		text := "[The adventure is over.]"
		if msg.err != nil {
			text = "[" + msg.err.Error() + "]"
		}
		m = m.appendLines(rawLine{}, rawLine{text: text, isSystem: true})
		return m, nil
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	return m, inputCmd
}

// handleEnter hands the submitted line to the game. Empty lines are sent
// too: the game answers them with "Invalid input."
func (m Model) handleEnter() Model {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if !m.con.Submit(input) {
		return m.appendLines(rawLine{text: "[Still thinking. Try again.]", isSystem: true})
	}

	if input != "" {
		m.history.Push(input)
		if m.playing {
			m.turns++
		}
	}
	m.history.ResetCursor()
	return m.appendLines(rawLine{}, rawLine{text: "> " + input, isInput: true})
}

// appendLines adds lines to the narrative and refreshes the viewport.
func (m Model) appendLines(lines ...rawLine) Model {
	m.rawLines = append(m.rawLines, lines...)
	m.refreshViewport()
	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current width
// and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.width
	if width < 10 {
		width = 10
	}

	styled := make([]string, 0, len(m.rawLines))
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		wrapped := wordwrap.String(rl.text, width)

		switch {
		case rl.isInput:
			styled = append(styled, stylePlayerInput.Render(wrapped))
		case rl.isSystem:
			styled = append(styled, styleSystem.Render(wrapped))
		default:
			styled = append(styled, renderLineKind(wrapped, rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// View renders the full TUI layout: viewport + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
