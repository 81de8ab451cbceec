package utils

import (
	"hash/fnv"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// GenerateID returns a fresh match/session id.
func GenerateID() string {
	return uuid.NewString()
}

// NewSeed picks a seed from the clock. Used when none was configured.
func NewSeed() uint64 {
	return uint64(time.Now().UnixNano())
}

// NewRand returns a deterministic generator for seed. The same seed always
// replays the same sequence of rolls.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// StringToSeed hashes a string into a seed.
func StringToSeed(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}
