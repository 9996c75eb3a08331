// Package adventures is the catalog of built-in adventures. Their content
// is embedded in the binary and compiled by the loader on demand.
package adventures

import (
	"embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/nathoo/darkharvest/engine/world"
	"github.com/nathoo/darkharvest/loader"
)

//go:embed darkharvest/*.lua clearing.yaml
var content embed.FS

// ID identifies a built-in adventure. IDs are also the 1-based numbers
// shown in the selection menu.
type ID int

const (
	DarkHarvest ID = iota + 1
	GrassyClearing
)

// All lists the built-in adventures in menu order.
var All = []ID{DarkHarvest, GrassyClearing}

func (id ID) String() string {
	switch id {
	case DarkHarvest:
		return "Dark Harvest"
	case GrassyClearing:
		return "The Grassy Clearing"
	}
	return fmt.Sprintf("adventure(%d)", int(id))
}

// Slug is the short name accepted by --adventure.
func (id ID) Slug() string {
	switch id {
	case DarkHarvest:
		return "dark-harvest"
	case GrassyClearing:
		return "clearing"
	}
	return ""
}

// Lookup maps a menu number, slug or title to an ID.
func Lookup(name string) (ID, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if n, err := strconv.Atoi(name); err == nil {
		for _, id := range All {
			if int(id) == n {
				return id, true
			}
		}
		return 0, false
	}
	for _, id := range All {
		if name == id.Slug() || name == strings.ToLower(id.String()) {
			return id, true
		}
	}
	return 0, false
}

// Load compiles the built-in adventure id.
func Load(id ID, opts ...loader.Option) (*world.Adventure, error) {
	switch id {
	case DarkHarvest:
		return loader.LoadFS(content, "darkharvest", opts...)
	case GrassyClearing:
		return loader.LoadYAMLFS(content, "clearing.yaml", opts...)
	}
	return nil, fmt.Errorf("unknown adventure %d", int(id))
}

// Titles returns the menu labels of the built-in adventures in order.
func Titles() []string {
	titles := make([]string, len(All))
	for i, id := range All {
		titles[i] = id.String()
	}
	return titles
}
