// Package engine provides the deterministic randomness primitives every
// generated puzzle is built from: a mulberry32 pseudo-random stream keyed
// by a 32-bit seed, and the calendar-date seed encoding.
package engine

import "math"

// Rand is a mulberry32 PRNG. The same seed always yields the same infinite
// float sequence, which is what makes daily puzzles reproducible across
// players. The algorithm can be implemented identically in JavaScript.
// Reference: https://gist.github.com/tommyettinger/46a874533244883189143505d203312c
type Rand struct {
	state uint32
}

// NewRand creates a deterministic stream from a signed 32-bit seed.
func NewRand(seed int32) *Rand {
	return &Rand{state: uint32(seed)}
}

// next advances the state and returns the next raw uint32.
func (r *Rand) next() uint32 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Next returns the next float in [0, 1).
func (r *Rand) Next() float64 {
	return float64(r.next()) / 4294967296.0
}

// Intn returns a uniform index in [0, n). The result of floor(Next()*n) is
// clamped to n-1; Next() never returns 1.0 but the guard costs nothing.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	idx := int(math.Floor(r.Next() * float64(n)))
	if idx >= n {
		idx = n - 1
	}
	return idx
}

// Range returns a float uniformly distributed in [lo, hi).
func (r *Rand) Range(lo, hi float64) float64 {
	return lo + r.Next()*(hi-lo)
}

// Pick returns a uniformly chosen element of list. Consumes exactly one draw.
func Pick[T any](r *Rand, list []T) T {
	return list[r.Intn(len(list))]
}

// Shuffle returns a new slice holding a Fisher-Yates permutation of list.
// The input is not modified. Consumes len(list)-1 draws.
func Shuffle[T any](r *Rand, list []T) []T {
	out := make([]T, len(list))
	copy(out, list)
	for i := len(out) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// PickN returns n distinct elements of list, chosen by shuffling and
// truncating. If n exceeds len(list) the full shuffle is returned.
func PickN[T any](r *Rand, list []T, n int) []T {
	out := Shuffle(r, list)
	if n < len(out) {
		out = out[:n]
	}
	return out
}
