package engine

import (
	"math/rand"
	"time"
)

// RNG wraps math/rand.Rand with seed and position tracking, so a run can
// be reproduced from its seed and the logged number of rolls.
type RNG struct {
	seed int64
	src  *rand.Rand
	pos  int64
}

// NewRNG creates a deterministic RNG from a seed. A zero seed is replaced
// by the current time.
func NewRNG(seed int64) *RNG {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// Roll returns a random integer in [1, sides].
func (r *RNG) Roll(sides int) int {
	r.pos++
	return r.src.Intn(sides) + 1
}

// RollDice returns the sum of n rolls of a die with the given sides.
func (r *RNG) RollDice(n, sides int) int {
	total := 0
	for i := 0; i < n; i++ {
		total += r.Roll(sides)
	}
	return total
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Position returns the number of rolls made since creation.
func (r *RNG) Position() int64 {
	return r.pos
}
