// Package sampling holds the random-choice primitives shared by the generators.
package sampling

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
)

var (
	ErrNoWeights      = errors.New("weighted table needs at least one positive weight")
	ErrNegativeWeight = errors.New("weights must be non-negative numbers")
)

// Table maps a single uniform draw onto a discrete distribution through a
// cumulative-weight array and binary search.
type Table struct {
	cumulative []float64
	total      float64
}

func NewTable(weights []float64) (*Table, error) {
	if len(weights) == 0 {
		return nil, ErrNoWeights
	}

	cumulative := make([]float64, len(weights))
	var total float64
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("weight %d (%v): %w", i, w, ErrNegativeWeight)
		}
		total += w
		cumulative[i] = total
	}
	if total <= 0 {
		return nil, ErrNoWeights
	}

	return &Table{cumulative: cumulative, total: total}, nil
}

// Pick returns a bucket index. Zero-weight buckets are never returned because
// their cumulative value equals their predecessor's.
func (t *Table) Pick(r *rand.Rand) int {
	x := r.Float64() * t.total
	i := sort.Search(len(t.cumulative), func(i int) bool {
		return t.cumulative[i] > x
	})
	if i == len(t.cumulative) {
		// x can only reach total through float rounding; fall back to the last
		// bucket that carries weight.
		i = len(t.cumulative) - 1
		for i > 0 && t.cumulative[i] == t.cumulative[i-1] {
			i--
		}
	}
	return i
}

func (t *Table) Len() int {
	return len(t.cumulative)
}

// IntBetween returns a uniform integer in [lo, hi].
func IntBetween(r *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// FloatBetween returns a uniform float in [lo, hi).
func FloatBetween(r *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}

// Choice returns a uniformly chosen element of items, which must not be empty.
func Choice[T any](r *rand.Rand, items []T) T {
	return items[r.Intn(len(items))]
}
