package components

import "testing"

func TestPreyPredatorCycle(t *testing.T) {
	battle := []Kind{KindRock, KindPaper, KindScissors}
	for _, k := range battle {
		prey := k.Prey()
		if prey == k || prey >= NumBattleKinds {
			t.Fatalf("%v prey = %v", k, prey)
		}
		if prey.Predator() != k {
			t.Errorf("Predator(Prey(%v)) = %v", k, prey.Predator())
		}
	}
	// The cycle visits all three kinds.
	if KindRock.Prey().Prey().Prey() != KindRock {
		t.Error("prey chain is not a 3-cycle")
	}
	if KindRock.Prey() != KindScissors || KindScissors.Prey() != KindPaper || KindPaper.Prey() != KindRock {
		t.Error("prey chain order wrong")
	}
}

func TestSlimesAreNeutral(t *testing.T) {
	for _, k := range []Kind{KindLightSlime, KindDarkSlime} {
		if !k.IsSlime() {
			t.Errorf("%v not a slime", k)
		}
	}
	for _, k := range []Kind{KindRock, KindPaper, KindScissors} {
		if k.IsSlime() {
			t.Errorf("%v reported as slime", k)
		}
	}
}

func TestKindStrings(t *testing.T) {
	for k := Kind(0); k < NumKinds; k++ {
		if k.String() == "" || k.String() == "unknown" {
			t.Errorf("kind %d has no name", k)
		}
	}
}
