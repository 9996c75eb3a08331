package world

import "strings"

// Adventure is a loaded, validated world plus the metadata shown before
// play starts.
type Adventure struct {
	Title      string
	Intro      string
	Difficulty string
	Length     string
	Start      *Room
}

// Banner returns the lines printed before the first room.
func (a *Adventure) Banner() []string {
	lines := []string{"==== [" + a.Title + "] ===="}
	if intro := strings.TrimSpace(a.Intro); intro != "" {
		lines = append(lines, "", intro, "")
	}
	if a.Difficulty != "" {
		lines = append(lines, "Adventure Difficulty: "+a.Difficulty)
	}
	if a.Length != "" {
		lines = append(lines, "Adventure Length:     "+a.Length)
	}
	return append(lines, strings.Repeat("=", len(a.Title)+12))
}
