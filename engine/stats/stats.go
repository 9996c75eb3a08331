// Package stats maps raw character attributes to dice-roll modifiers.
package stats

import (
	"errors"
	"fmt"

	"github.com/nathoo/darkharvest/types"
)

// MaxStat is the highest raw attribute value.
const MaxStat = 18

// ErrStatOutOfRange is returned for raw values outside 0..MaxStat.
var ErrStatOutOfRange = errors.New("stat out of range")

// BonusTable holds one modifier per raw stat value, indexed directly by
// the value.
type BonusTable [MaxStat + 1]int

// DefaultBonuses returns the standard table:
// 0:-6, 1:-4, 2-3:-3, 4-5:-2, 6-7:-1, 8-9:0, 10-11:+1, 12-13:+2,
// 14-15:+3, 16-17:+4, 18:+5.
func DefaultBonuses() BonusTable {
	var t BonusTable
	t[0] = -6
	t[1] = -4
	for v := 2; v < MaxStat; v++ {
		t[v] = v/2 - 4
	}
	t[MaxStat] = 5
	return t
}

// Bonus returns the modifier for a raw stat value.
func (t BonusTable) Bonus(stat int) (int, error) {
	if stat < 0 || stat > MaxStat {
		return 0, fmt.Errorf("%w: %d", ErrStatOutOfRange, stat)
	}
	return t[stat], nil
}

// Kind names one of a character's five attributes.
type Kind int

const (
	Str Kind = iota
	Int
	Dex
	Chr
	Dur
)

// Names lists the attribute short names in roll order.
var Names = [...]string{"str", "int", "dex", "chr", "dur"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(Names) {
		return "unknown"
	}
	return Names[k]
}

// Value returns the raw value of attribute k.
func Value(s types.Stats, k Kind) int {
	switch k {
	case Str:
		return s.Str
	case Int:
		return s.Int
	case Dex:
		return s.Dex
	case Chr:
		return s.Chr
	case Dur:
		return s.Dur
	}
	return 0
}

// FromRolls builds Stats from five values in roll order.
func FromRolls(v [5]int) types.Stats {
	return types.Stats{Str: v[0], Int: v[1], Dex: v[2], Chr: v[3], Dur: v[4]}
}

// CharacterBonus returns the modifier a character gets for attribute k.
// Characters without stats roll unmodified.
func (t BonusTable) CharacterBonus(c types.Character, k Kind) (int, error) {
	if c.Stats == nil {
		return 0, nil
	}
	return t.Bonus(Value(*c.Stats, k))
}
