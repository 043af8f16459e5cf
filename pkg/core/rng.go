package core

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
)

// ErrNoEntropy reports that a seed could not be drawn from the entropy source.
var ErrNoEntropy = errors.New("core: entropy source unavailable")

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	seed uint64
	r    *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed uint64) *RNG {
	return &RNG{seed: seed, r: rand.New(rand.NewPCG(seed, 0))}
}

// EntropySeed reads a 64-bit seed from src, typically crypto/rand.Reader.
func EntropySeed(src io.Reader) (uint64, error) {
	if src == nil {
		return 0, ErrNoEntropy
	}
	var buf [8]byte
	if _, err := io.ReadFull(src, buf[:]); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNoEntropy, err)
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// Seed returns the seed the stream was created or last reseeded with.
func (r *RNG) Seed() uint64 { return r.seed }

// Reseed restarts the stream from seed.
func (r *RNG) Reseed(seed uint64) {
	r.seed = seed
	r.r = rand.New(rand.NewPCG(seed, 0))
}

// Chance reports whether a Bernoulli trial with probability p succeeds.
// Probabilities at or outside the [0, 1] bounds are decided without a draw.
func (r *RNG) Chance(p float64) bool {
	if p >= 1 {
		return true
	}
	if !(p > 0) {
		return false
	}
	return r.r.Float64() < p
}

// Float64 returns a pseudo-random number in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
