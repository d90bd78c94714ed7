package config

import "time"

// elementTable is the per-mechanic element whitelist. It is the single
// source of truth for which content types a mechanic can host; a pair
// outside this table must never reach a simulator. Slice order is draw
// order and is frozen.
var elementTable = map[Mechanic][]Element{
	MechanicCatch:    {ElementShape, ElementColor, ElementEmoji, ElementNumber},
	MechanicDodge:    {ElementShape, ElementEmoji, ElementColor},
	MechanicChase:    {ElementEmoji, ElementShape, ElementNumber},
	MechanicBounce:   {ElementShape, ElementColor},
	MechanicReaction: {ElementColor, ElementShape, ElementEmoji, ElementNumber},
	MechanicMemory:   {ElementColor, ElementShape, ElementNumber, ElementEmoji, ElementDirection, ElementPattern},
	MechanicTrace:    {ElementDirection, ElementPattern, ElementShape},
	MechanicGuess:    {ElementWord, ElementNumber, ElementColor, ElementMath},
	MechanicMatch:    {ElementEmoji, ElementColor, ElementShape, ElementNumber, ElementWord},
	MechanicSort:     {ElementNumber, ElementWord, ElementColor, ElementMath},
	MechanicDeduce:   {ElementNumber, ElementWord, ElementColor, ElementMath},
	MechanicHunt:     {ElementEmoji, ElementShape, ElementColor, ElementPattern},
}

// constraintTable is the per-mechanic constraint whitelist. Same frozen-order
// rules as elementTable.
var constraintTable = map[Mechanic][]Constraint{
	MechanicCatch:    {ConstraintTime, ConstraintStreak, ConstraintPrecision},
	MechanicDodge:    {ConstraintSurvival, ConstraintTime, ConstraintLaps},
	MechanicChase:    {ConstraintGrid, ConstraintTime, ConstraintLaps},
	MechanicBounce:   {ConstraintTime, ConstraintStreak, ConstraintPrecision},
	MechanicReaction: {ConstraintTime, ConstraintStreak, ConstraintPrecision},
	MechanicMemory:   {ConstraintSequence, ConstraintAttempts, ConstraintStreak},
	MechanicTrace:    {ConstraintSequence, ConstraintGrid, ConstraintAttempts},
	MechanicGuess:    {ConstraintAttempts, ConstraintTime},
	MechanicMatch:    {ConstraintAttempts, ConstraintTime, ConstraintGrid},
	MechanicSort:     {ConstraintAttempts, ConstraintTime, ConstraintSequence},
	MechanicDeduce:   {ConstraintAttempts, ConstraintTime},
	MechanicHunt:     {ConstraintTime, ConstraintGrid, ConstraintAttempts},
}

// base holds the per-mechanic scalar baselines before difficulty, constraint,
// and modifier adjustment. A zero time means the mechanic has no countdown
// unless its constraint imposes one.
type base struct {
	attempts int
	time     time.Duration
	score    int
}

var baseTable = map[Mechanic]base{
	MechanicCatch:    {attempts: 3, time: 30 * time.Second, score: 15},
	MechanicDodge:    {attempts: 3, time: 25 * time.Second, score: 20},
	MechanicChase:    {attempts: 3, time: 40 * time.Second, score: 12},
	MechanicBounce:   {attempts: 3, time: 35 * time.Second, score: 10},
	MechanicReaction: {attempts: 3, time: 30 * time.Second, score: 12},
	MechanicMemory:   {attempts: 3, score: 5},
	MechanicTrace:    {attempts: 3, score: 4},
	MechanicGuess:    {attempts: 6, score: 10},
	MechanicMatch:    {attempts: 8, score: 8},
	MechanicSort:     {attempts: 12, score: 10},
	MechanicDeduce:   {attempts: 3, score: 10},
	MechanicHunt:     {attempts: 5, time: 45 * time.Second, score: 6},
}

// constraintTime is the countdown applied when a mechanic without a base
// time budget draws a time-pressure constraint.
const constraintTime = 60 * time.Second

// Scalars derives maxAttempts, timeLimit, and maxScore from a config. Pure
// and total: no randomness, defined for every valid config. A zero timeLimit
// means the session has no countdown.
func Scalars(cfg GameConfig) (maxAttempts int, timeLimit time.Duration, maxScore int) {
	b := baseTable[cfg.Mechanic]
	maxAttempts = b.attempts
	timeLimit = b.time
	maxScore = b.score + 3*(cfg.Difficulty-2)

	// Difficulty squeezes the time budget by 15% per step above baseline.
	if timeLimit > 0 {
		timeLimit -= timeLimit * time.Duration(cfg.Difficulty-2) * 15 / 100
	}

	switch cfg.Constraint {
	case ConstraintTime, ConstraintSurvival:
		if timeLimit == 0 {
			timeLimit = constraintTime - 10*time.Second*time.Duration(cfg.Difficulty-2)
		}
	case ConstraintAttempts, ConstraintPrecision:
		if maxAttempts > 1 {
			maxAttempts--
		}
	case ConstraintStreak:
		maxScore += maxScore / 5
	}

	switch cfg.Modifier {
	case ModifierSpeed:
		timeLimit /= 2
	case ModifierZen:
		timeLimit *= 2
		maxAttempts += 2
	case ModifierChained:
		maxAttempts++
	}
	return maxAttempts, timeLimit, maxScore
}

// Compatible reports whether the element and constraint of cfg are inside
// the whitelists for its mechanic.
func Compatible(cfg GameConfig) bool {
	return contains(elementTable[cfg.Mechanic], cfg.Element) &&
		contains(constraintTable[cfg.Mechanic], cfg.Constraint)
}

func contains[T comparable](list []T, v T) bool {
	for _, e := range list {
		if e == v {
			return true
		}
	}
	return false
}

// ElementsFor returns the element whitelist for a mechanic.
func ElementsFor(m Mechanic) []Element { return elementTable[m] }

// ConstraintsFor returns the constraint whitelist for a mechanic.
func ConstraintsFor(m Mechanic) []Constraint { return constraintTable[m] }
