package engine

import "testing"

func TestRNG_Deterministic(t *testing.T) {
	rng1 := NewRNG(42)
	rng2 := NewRNG(42)

	for i := 0; i < 20; i++ {
		a := rng1.Roll(19)
		b := rng2.Roll(19)
		if a != b {
			t.Fatalf("roll %d: got %d and %d from same seed", i, a, b)
		}
	}
}

func TestRNG_Roll_Range(t *testing.T) {
	rng := NewRNG(99)

	for i := 0; i < 1000; i++ {
		r := rng.Roll(19)
		if r < 1 || r > 19 {
			t.Fatalf("roll out of range [1,19]: got %d", r)
		}
	}
}

func TestRNG_Roll_OneSided(t *testing.T) {
	rng := NewRNG(1)

	for i := 0; i < 10; i++ {
		if r := rng.Roll(1); r != 1 {
			t.Fatalf("1-sided die should always be 1, got %d", r)
		}
	}
}

func TestRNG_RollDice_Range(t *testing.T) {
	rng := NewRNG(7)

	for i := 0; i < 500; i++ {
		r := rng.RollDice(3, 6)
		if r < 3 || r > 18 {
			t.Fatalf("3d6 out of range [3,18]: got %d", r)
		}
	}
}

func TestRNG_Position_Tracks(t *testing.T) {
	rng := NewRNG(42)

	if rng.Position() != 0 {
		t.Fatalf("expected position 0, got %d", rng.Position())
	}

	rng.Roll(6)
	if rng.Position() != 1 {
		t.Fatalf("expected position 1, got %d", rng.Position())
	}

	rng.RollDice(3, 6)
	if rng.Position() != 4 {
		t.Fatalf("expected position 4, got %d", rng.Position())
	}
}

func TestRNG_ZeroSeedIsReplaced(t *testing.T) {
	if NewRNG(0).Seed() == 0 {
		t.Error("zero seed should be replaced by a time-based seed")
	}
	if NewRNG(5).Seed() != 5 {
		t.Error("explicit seed should be kept")
	}
}
