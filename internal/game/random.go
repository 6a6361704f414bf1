// Package game holds the primitives shared by the slot machine: the random
// source used to draw reel symbols.
package game

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// RandomSource produces uniformly distributed integers.
// Entertainment-grade only, there is no cryptographic guarantee.
type RandomSource interface {
	// Next returns a value in the closed interval [min, max].
	Next(min, max int) int
}

// pcgSource is the process-wide source backed by math/rand/v2.
type pcgSource struct {
	r *rand.Rand
}

// NewRandomSource creates a RandomSource seeded with seed.
// The same seed always yields the same sequence, which keeps tests and
// replayed sessions deterministic.
func NewRandomSource(seed uint64) RandomSource {
	return &pcgSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// SeedFromTime returns a time-varying seed. Call it once per process.
func SeedFromTime() uint64 {
	return uint64(time.Now().UnixNano())
}

// Next returns a value uniformly distributed over [min, max].
// It panics if max < min.
func (p *pcgSource) Next(min, max int) int {
	if max < min {
		panic(fmt.Sprintf("game: invalid range [%d, %d]", min, max))
	}
	return min + p.r.IntN(max-min+1)
}

// FixedSource replays a fixed list of values, wrapping around at the end.
// Values outside the requested range are clamped into it.
type FixedSource struct {
	values []int
	next   int
}

// NewFixedSource creates a FixedSource replaying values.
func NewFixedSource(values ...int) *FixedSource {
	return &FixedSource{values: values}
}

// Next returns the next scripted value, clamped into [min, max].
func (f *FixedSource) Next(min, max int) int {
	if max < min {
		panic(fmt.Sprintf("game: invalid range [%d, %d]", min, max))
	}
	if len(f.values) == 0 {
		return min
	}

	v := f.values[f.next%len(f.values)]
	f.next++
	switch {
	case v < min:
		return min
	case v > max:
		return max
	default:
		return v
	}
}
