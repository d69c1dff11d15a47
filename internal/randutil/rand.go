// Package randutil centralises how seeded random sources are created so that
// shoes, bots and simulations replay identically for a given seed.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Both PCG words are derived from the one seed.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// ResolveSeed returns seed unchanged, or a time-derived seed when seed is 0.
// Callers log the resolved value so a run can be replayed.
func ResolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

// Derive produces an independent child seed, used to give each simulated
// session its own stream.
func Derive(seed int64, stream int) int64 {
	return int64(mix(uint64(seed) + uint64(stream)*goldenRatio64))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
