// Package seed derives the two state words a math/rand/v2 PCG source needs,
// either deterministically from a caller-supplied seed or from the wall
// clock for the default self-seeding path.
package seed

import (
	"math/bits"
	"time"

	"github.com/dolthub/maphash"
)

var hasher = maphash.NewHasher[uint64]()

// Random returns two words derived from the wall clock, mixed through a
// hash seeded once per process, so that processes reading the same clock
// value still diverge. Within one process, equal clock readings give equal
// words.
func Random() (hi, lo uint64) {
	now := uint64(time.Now().UnixNano())
	return hasher.Hash(now), hasher.Hash(now ^ 0x9e3779b97f4a7c15)
}

// Words expands a caller-supplied seed into two words. Unlike Random this is
// a pure function of s, stable across processes, so a threaded seed
// reproduces the same construction everywhere.
func Words(s uint64) (hi, lo uint64) {
	hi = mix(s, 0x9e3779b97f4a7c15)
	lo = mix(s^0xbf58476d1ce4e5b9, hi|1)
	return hi, lo
}

func mix(a, b uint64) uint64 {
	h, l := bits.Mul64(a, b)
	return h ^ l
}
