package config

import (
	"fmt"
	"math"
	"time"

	"github.com/playroot/daily-arcade-go/internal/engine"
)

// modifierChance is the probability that a puzzle carries a modifier.
const modifierChance = 0.30

// Generate derives the full game definition for a seed. The draw order —
// mechanic, element, constraint, modifier gate, modifier (if gated),
// difficulty — is load-bearing: changing it silently changes every
// downstream puzzle for every seed.
func Generate(seed int32) (GameConfig, error) {
	r := engine.NewRand(seed)

	cfg := GameConfig{Seed: seed}
	cfg.Mechanic = engine.Pick(r, Mechanics)
	cfg.Element = engine.Pick(r, elementTable[cfg.Mechanic])
	cfg.Constraint = engine.Pick(r, constraintTable[cfg.Mechanic])
	if r.Next() < modifierChance {
		cfg.Modifier = engine.Pick(r, Modifiers)
	}
	cfg.Difficulty = int(math.Floor(r.Next()*3)) + 2

	if err := Validate(cfg); err != nil {
		return GameConfig{}, err
	}
	return cfg, nil
}

// Daily is the puzzle definition for a calendar date.
func Daily(date time.Time) (GameConfig, error) {
	return Generate(engine.DailySeed(date))
}

// Validate rejects configs whose element or constraint falls outside the
// compatibility tables, or whose difficulty is out of range. Simulators rely
// on this running before they ever see a config.
func Validate(cfg GameConfig) error {
	elems, ok := elementTable[cfg.Mechanic]
	if !ok {
		return fmt.Errorf("unknown mechanic %q", cfg.Mechanic)
	}
	if !contains(elems, cfg.Element) {
		return fmt.Errorf("element %q is not compatible with mechanic %q", cfg.Element, cfg.Mechanic)
	}
	if !contains(constraintTable[cfg.Mechanic], cfg.Constraint) {
		return fmt.Errorf("constraint %q is not compatible with mechanic %q", cfg.Constraint, cfg.Mechanic)
	}
	if cfg.Modifier != ModifierNone && !contains(Modifiers, cfg.Modifier) {
		return fmt.Errorf("unknown modifier %q", cfg.Modifier)
	}
	if cfg.Difficulty < 2 || cfg.Difficulty > 4 {
		return fmt.Errorf("difficulty %d out of range [2,4]", cfg.Difficulty)
	}
	return nil
}
