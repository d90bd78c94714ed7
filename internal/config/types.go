// Package config turns an integer seed into a reproducible game definition:
// which mechanic runs today, what content fills it, what pressure ends it,
// and how hard it is. All draws come from a single mulberry32 stream, so the
// same seed always yields the same puzzle.
package config

// Mechanic is the core interaction pattern of a mini-game. The set is closed;
// every Mechanic has exactly one simulator implementation.
type Mechanic string

const (
	MechanicCatch    Mechanic = "catch"    // falling-item catching
	MechanicDodge    Mechanic = "dodge"    // lane avoidance
	MechanicChase    Mechanic = "chase"    // maze chase / pellet collection
	MechanicBounce   Mechanic = "bounce"   // paddle and ball physics
	MechanicReaction Mechanic = "reaction" // multi-target reaction tapping
	MechanicMemory   Mechanic = "memory"   // sequence recall
	MechanicTrace    Mechanic = "trace"    // path-tracing replay
	MechanicGuess    Mechanic = "guess"    // sequence guessing with feedback
	MechanicMatch    Mechanic = "match"    // pair matching
	MechanicSort     Mechanic = "sort"     // swap-based ordering
	MechanicDeduce   Mechanic = "deduce"   // clue-based deduction
	MechanicHunt     Mechanic = "hunt"     // hidden-object hunting
)

// Mechanics is the draw order for the generator. Reordering or inserting
// entries changes every seed's puzzle and is a breaking change.
var Mechanics = []Mechanic{
	MechanicCatch,
	MechanicDodge,
	MechanicChase,
	MechanicBounce,
	MechanicReaction,
	MechanicMemory,
	MechanicTrace,
	MechanicGuess,
	MechanicMatch,
	MechanicSort,
	MechanicDeduce,
	MechanicHunt,
}

// Element is the themed content type populating a mechanic.
type Element string

const (
	ElementWord      Element = "word"
	ElementColor     Element = "color"
	ElementShape     Element = "shape"
	ElementNumber    Element = "number"
	ElementEmoji     Element = "emoji"
	ElementDirection Element = "direction"
	ElementMath      Element = "math"
	ElementPattern   Element = "pattern"
)

// Constraint is the win/termination pressure applied to a session.
type Constraint string

const (
	ConstraintAttempts  Constraint = "attempts"
	ConstraintTime      Constraint = "time"
	ConstraintSequence  Constraint = "sequence"
	ConstraintGrid      Constraint = "grid"
	ConstraintSurvival  Constraint = "survival"
	ConstraintStreak    Constraint = "streak"
	ConstraintPrecision Constraint = "precision"
	ConstraintLaps      Constraint = "laps"
)

// Modifier is an optional rule perturbation. The zero value means none.
type Modifier string

const (
	ModifierNone     Modifier = ""
	ModifierSpeed    Modifier = "speed"    // halves the time budget
	ModifierZen      Modifier = "zen"      // doubles time, two extra attempts
	ModifierChained  Modifier = "chained"  // one extra attempt
	ModifierInverted Modifier = "inverted" // flips horizontal input
)

// Modifiers is the full modifier set the generator draws from, in draw order.
var Modifiers = []Modifier{ModifierSpeed, ModifierZen, ModifierChained, ModifierInverted}

// GameConfig is a fully resolved game definition. Immutable for the lifetime
// of a session.
type GameConfig struct {
	Mechanic   Mechanic   `json:"mechanic"`
	Element    Element    `json:"element"`
	Constraint Constraint `json:"constraint"`
	Modifier   Modifier   `json:"modifier,omitempty"`
	Seed       int32      `json:"seed"`
	Difficulty int        `json:"difficulty"` // 2..4
}
