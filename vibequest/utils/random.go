package utils

import "math/rand"

// Rand is the random source used for drop rolls. Satisfied by *rand.Rand and
// by test stubs that pin outcomes.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// NewRand returns a seeded math/rand source.
func NewRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}
