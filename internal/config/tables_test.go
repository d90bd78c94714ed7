package config

import (
	"testing"
	"time"
)

// Every mechanic in the draw list must have non-empty whitelists and a
// scalar baseline; a gap here would make the generator panic or hand a
// simulator an unbounded session.
func TestTablesExhaustive(t *testing.T) {
	for _, m := range Mechanics {
		if len(elementTable[m]) == 0 {
			t.Errorf("mechanic %q has no compatible elements", m)
		}
		if len(constraintTable[m]) == 0 {
			t.Errorf("mechanic %q has no compatible constraints", m)
		}
		if _, ok := baseTable[m]; !ok {
			t.Errorf("mechanic %q has no scalar baseline", m)
		}
	}
	if len(elementTable) != len(Mechanics) {
		t.Errorf("elementTable has %d entries, want %d", len(elementTable), len(Mechanics))
	}
	if len(constraintTable) != len(Mechanics) {
		t.Errorf("constraintTable has %d entries, want %d", len(constraintTable), len(Mechanics))
	}
}

func TestScalarsDeterministic(t *testing.T) {
	cfg, err := Generate(20250015)
	if err != nil {
		t.Fatal(err)
	}
	a1, t1, s1 := Scalars(cfg)
	a2, t2, s2 := Scalars(cfg)
	if a1 != a2 || t1 != t2 || s1 != s2 {
		t.Error("Scalars is not a pure function of the config")
	}
}

func TestScalarsModifiers(t *testing.T) {
	cfg := GameConfig{
		Mechanic: MechanicCatch, Element: ElementShape,
		Constraint: ConstraintTime, Difficulty: 2,
	}
	baseA, baseT, _ := Scalars(cfg)

	speed := cfg
	speed.Modifier = ModifierSpeed
	_, speedT, _ := Scalars(speed)
	if speedT != baseT/2 {
		t.Errorf("speed modifier: time %v, want %v", speedT, baseT/2)
	}

	zen := cfg
	zen.Modifier = ModifierZen
	zenA, zenT, _ := Scalars(zen)
	if zenT != baseT*2 {
		t.Errorf("zen modifier: time %v, want %v", zenT, baseT*2)
	}
	if zenA != baseA+2 {
		t.Errorf("zen modifier: attempts %d, want %d", zenA, baseA+2)
	}

	chained := cfg
	chained.Modifier = ModifierChained
	chainedA, _, _ := Scalars(chained)
	if chainedA != baseA+1 {
		t.Errorf("chained modifier: attempts %d, want %d", chainedA, baseA+1)
	}
}

func TestScalarsTimeConstraintGivesCountdown(t *testing.T) {
	cfg := GameConfig{
		Mechanic: MechanicGuess, Element: ElementWord,
		Constraint: ConstraintTime, Difficulty: 3,
	}
	_, limit, _ := Scalars(cfg)
	if limit <= 0 {
		t.Errorf("time constraint produced no countdown: %v", limit)
	}

	cfg.Constraint = ConstraintAttempts
	_, limit, _ = Scalars(cfg)
	if limit != 0 {
		t.Errorf("attempts constraint produced countdown %v on a timeless mechanic", limit)
	}
}

func TestScalarsDifficultySqueezesTime(t *testing.T) {
	easy := GameConfig{Mechanic: MechanicDodge, Element: ElementShape, Constraint: ConstraintSurvival, Difficulty: 2}
	hard := easy
	hard.Difficulty = 4
	_, easyT, easyS := Scalars(easy)
	_, hardT, hardS := Scalars(hard)
	if hardT >= easyT {
		t.Errorf("difficulty 4 time %v not below difficulty 2 time %v", hardT, easyT)
	}
	if hardS <= easyS {
		t.Errorf("difficulty 4 quota %d not above difficulty 2 quota %d", hardS, easyS)
	}
	if easyT <= 0 || easyT > time.Minute*5 {
		t.Errorf("implausible time budget %v", easyT)
	}
}
