// Package prng provides the deterministic pseudo-random source used for
// grammar walks. Same seed, same sequence, always.
package prng

import (
	crand "crypto/rand"
	"encoding/binary"
	"time"
)

// Source is an xorshift64 generator. It is not safe for concurrent use;
// every walk owns its own Source.
type Source struct {
	seed  uint64
	state uint64
}

// New returns a Source seeded with the given value. A zero seed selects a
// random seed from system entropy.
func New(seed uint64) *Source {
	if seed == 0 {
		seed = entropySeed()
	}
	return &Source{seed: seed, state: scramble(seed)}
}

// scramble spreads low-entropy seeds across the full state space (the
// splitmix64 finalizer), so the first draws from small consecutive seeds are
// already uniform. xorshift state must never be zero.
func scramble(seed uint64) uint64 {
	z := seed + 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	if z == 0 {
		z = 1
	}
	return z
}

// Seed reports the seed the Source was created with, which is useful for
// replaying an entropy-seeded run.
func (s *Source) Seed() uint64 {
	return s.seed
}

// Uint64 advances the generator and returns the next raw value.
func (s *Source) Uint64() uint64 {
	s.state ^= s.state << 13
	s.state ^= s.state >> 7
	s.state ^= s.state << 17
	return s.state
}

// Float64 returns a uniform value in [0, 1), built from the top 53 bits of
// the next raw value.
func (s *Source) Float64() float64 {
	return float64(s.Uint64()>>11) / (1 << 53)
}

// IntN returns a uniform integer in [min, max]. When max < min it returns
// min.
func (s *Source) IntN(min, max int) int {
	if max < min {
		return min
	}
	n := min + int(s.Float64()*float64(max-min+1))
	if n > max {
		n = max
	}
	return n
}

func entropySeed() uint64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return uint64(time.Now().UnixNano())
	}
	seed := binary.LittleEndian.Uint64(buf[:])
	if seed == 0 {
		seed = 1
	}
	return seed
}
