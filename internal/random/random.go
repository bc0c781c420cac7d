// Package random draws uniform integers for the automated opponent.
package random

import "math/rand/v2"

type Generator struct {
	rnd *rand.Rand
}

// New returns a generator backed by the runtime's seeded global source.
func New() *Generator {
	return &Generator{}
}

// NewSeeded returns a reproducible generator.
func NewSeeded(seed1, seed2 uint64) *Generator {
	return &Generator{rnd: rand.New(rand.NewPCG(seed1, seed2))} //nolint: gosec // not security related
}

// RandomInt returns a uniform integer in [minValue, maxValue].
func (that *Generator) RandomInt(minValue, maxValue int) int {
	if maxValue < minValue {
		minValue, maxValue = maxValue, minValue
	}

	span := maxValue - minValue + 1
	if that.rnd == nil {
		return minValue + rand.IntN(span) //nolint: gosec // not security related
	}

	return minValue + that.rnd.IntN(span)
}
