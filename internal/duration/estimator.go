// Package duration estimates block times between two location codes.
package duration

import (
	"math/rand"

	"github.com/Lumos-Labs-HQ/airseed/internal/sampling"
)

type pair struct {
	from, to string
}

// Estimator answers order-insensitive lookups against a table of known city
// pairs and falls back to a bounded random estimate for anything else.
type Estimator struct {
	table       map[pair]float64
	fallbackMin float64
	fallbackMax float64
	integral    bool
}

type Entry struct {
	Origin      string
	Destination string
	Hours       float64
}

func New(entries []Entry, fallbackMin, fallbackMax float64, integral bool) *Estimator {
	table := make(map[pair]float64, len(entries))
	for _, e := range entries {
		table[pair{e.Origin, e.Destination}] = e.Hours
	}
	return &Estimator{
		table:       table,
		fallbackMin: fallbackMin,
		fallbackMax: fallbackMax,
		integral:    integral,
	}
}

// Estimate returns the expected block time in hours. r is only consumed when
// the pair is unknown.
func (e *Estimator) Estimate(r *rand.Rand, origin, destination string) float64 {
	if origin == destination {
		return 0
	}
	if h, ok := e.lookup(origin, destination); ok {
		return h
	}
	if e.integral {
		return float64(sampling.IntBetween(r, int(e.fallbackMin), int(e.fallbackMax)))
	}
	return sampling.FloatBetween(r, e.fallbackMin, e.fallbackMax)
}

func (e *Estimator) Known(origin, destination string) bool {
	_, ok := e.lookup(origin, destination)
	return ok
}

func (e *Estimator) lookup(origin, destination string) (float64, bool) {
	if h, ok := e.table[pair{origin, destination}]; ok {
		return h, true
	}
	h, ok := e.table[pair{destination, origin}]
	return h, ok
}

func (e *Estimator) Len() int {
	return len(e.table)
}
