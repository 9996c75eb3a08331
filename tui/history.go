// Package tui provides a Bubble Tea terminal UI for Dark Harvest.
package tui

// History remembers the commands typed during an adventure so the player
// can recall them with the arrow keys.
type History struct {
	entries []string
	max     int
	back    int // steps back from the newest entry; 0 means fresh input
}

// NewHistory creates a history that keeps at most max commands.
func NewHistory(max int) *History {
	return &History{entries: make([]string, 0, max), max: max}
}

// Push records a command. Repeats of the newest entry and numbered menu
// picks are not worth recalling and are dropped.
func (h *History) Push(cmd string) {
	if cmd == "" || isMenuPick(cmd) {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == cmd {
		return
	}
	if h.max > 0 && len(h.entries) == h.max {
		copy(h.entries, h.entries[1:])
		h.entries = h.entries[:h.max-1]
	}
	h.entries = append(h.entries, cmd)
}

// Prev steps to an older command, stopping at the oldest.
func (h *History) Prev() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.back < len(h.entries) {
		h.back++
	}
	return h.at(), true
}

// Next steps to a newer command. It reports false once the player is back
// at fresh input.
func (h *History) Next() (string, bool) {
	if h.back == 0 {
		return "", false
	}
	h.back--
	if h.back == 0 {
		return "", false
	}
	return h.at(), true
}

// ResetCursor returns to fresh input.
func (h *History) ResetCursor() {
	h.back = 0
}

func (h *History) at() string {
	return h.entries[len(h.entries)-h.back]
}

func isMenuPick(cmd string) bool {
	for _, r := range cmd {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
