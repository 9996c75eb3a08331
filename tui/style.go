package tui

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("52")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("136"))

	styleRoomDesc = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleRoomName = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	styleMenu = lipgloss.NewStyle().
			Foreground(lipgloss.Color("109"))

	styleRoll = lipgloss.NewStyle().
			Foreground(lipgloss.Color("70")).
			Bold(true)

	styleDialogue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("160"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("136"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindRoomDesc lineKind = iota
	kindRoomName
	kindMenu
	kindRoll
	kindDialogue
	kindSystem
	kindError
)

var menuItem = regexp.MustCompile(`^\d+\) `)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "== ") && strings.HasSuffix(line, " =="),
		strings.HasPrefix(line, "==== ["):
		return kindRoomName
	case strings.HasPrefix(line, "====="), menuItem.MatchString(line),
		strings.HasPrefix(line, "Choose one by typing"):
		return kindMenu
	case strings.HasPrefix(line, "Upon your roll of a:"):
		return kindRoll
	case strings.HasPrefix(line, "Failed to do the action"),
		strings.HasPrefix(line, "You cannot"),
		strings.HasPrefix(line, "There is no"),
		strings.HasPrefix(line, "Cannot do that"),
		strings.HasPrefix(line, "Invalid input"),
		strings.HasPrefix(line, "Not a valid choice"),
		strings.HasPrefix(line, "What is:"):
		return kindError
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case containsQuotedSpeech(line):
		return kindDialogue
	default:
		return kindRoomDesc
	}
}

// containsQuotedSpeech checks if a line contains dialogue in single quotes.
func containsQuotedSpeech(line string) bool {
	inQuote := false
	quoteLen := 0
	for _, r := range line {
		if r == '\'' {
			if inQuote && quoteLen > 5 {
				return true
			}
			inQuote = !inQuote
			quoteLen = 0
		} else if inQuote {
			quoteLen++
		}
	}
	return false
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindRoomName:
		return styleRoomName.Render(line)
	case kindMenu:
		return styleMenu.Render(line)
	case kindRoll:
		return styleRoll.Render(line)
	case kindDialogue:
		return styleDialogue.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	default:
		return styleRoomDesc.Render(line)
	}
}
