// Package types defines the shared data structures for the Dark Harvest engine.
// This package contains only type definitions and their string forms.
package types

// Direction is a movement direction out of a room.
type Direction int

const (
	DirNone Direction = iota
	DirNorth
	DirSouth
	DirEast
	DirWest
	DirBack
)

func (d Direction) String() string {
	switch d {
	case DirNorth:
		return "north"
	case DirSouth:
		return "south"
	case DirEast:
		return "east"
	case DirWest:
		return "west"
	case DirBack:
		return "back"
	default:
		return "none"
	}
}

// Action is something the player can attempt in a room.
type Action int

const (
	ActionNone Action = iota
	ActionLook
	ActionExplore
	ActionTalk
)

func (a Action) String() string {
	switch a {
	case ActionLook:
		return "look"
	case ActionExplore:
		return "explore"
	case ActionTalk:
		return "talk"
	default:
		return "none"
	}
}

// OnAction is the scripted reaction to an action.
// A nil DC means the text is shown unconditionally.
type OnAction struct {
	Text string
	DC   *int
}

// GoBack governs whether "back" is permitted from a room.
type GoBack struct {
	CanGoBack bool
	Reason    string // optional; shown when CanGoBack is false
}

// Stats are a character's raw attribute scores (0-18).
type Stats struct {
	Str int
	Int int
	Dex int
	Chr int
	Dur int
}

// Class is a character class.
type Class struct {
	Name string
}

// Race is a character race.
type Race struct {
	Name string
}

// Character is the player character. Only Name is required.
type Character struct {
	Name  string
	Stats *Stats
	Class *Class
	Race  *Race
}
