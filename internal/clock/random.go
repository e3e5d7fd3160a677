package clock

import (
	"math/rand/v2"
	"time"
)

// Random is the selection source used for challenge shuffles and battle
// templates. *rand.Rand satisfies it.
type Random interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRandom returns a time-seeded source for production use.
func NewRandom() *rand.Rand {
	seed := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(seed, seed>>1|1))
}

// NewSeededRandom returns a deterministic source for tests.
func NewSeededRandom(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}
