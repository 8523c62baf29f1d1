package providers

import (
	"math/rand"
	"time"
)

// NewRandProvider seeds the random source used for question selection.
// Tests inject their own seeded *rand.Rand instead.
func NewRandProvider() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
