package sampling

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable_Errors(t *testing.T) {
	tests := []struct {
		name    string
		weights []float64
		wantErr error
	}{
		{name: "empty", weights: nil, wantErr: ErrNoWeights},
		{name: "all zero", weights: []float64{0, 0, 0}, wantErr: ErrNoWeights},
		{name: "negative", weights: []float64{1, -1}, wantErr: ErrNegativeWeight},
		{name: "nan", weights: []float64{math.NaN()}, wantErr: ErrNegativeWeight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.weights)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestTable_PickSkipsZeroWeights(t *testing.T) {
	table, err := NewTable([]float64{0, 1, 0, 2, 0})
	require.NoError(t, err)

	r := rand.New(rand.NewSource(7))
	counts := make([]int, table.Len())
	for i := 0; i < 30000; i++ {
		counts[table.Pick(r)]++
	}

	assert.Zero(t, counts[0])
	assert.Zero(t, counts[2])
	assert.Zero(t, counts[4])
	// bucket 3 carries twice the weight of bucket 1
	ratio := float64(counts[3]) / float64(counts[1])
	assert.InDelta(t, 2.0, ratio, 0.15)
}

func TestTable_PickMatchesHourCurve(t *testing.T) {
	weights := make([]float64, 24)
	for h := 6; h <= 22; h++ {
		weights[h] = 1
	}
	table, err := NewTable(weights)
	require.NoError(t, err)

	r := rand.New(rand.NewSource(42))
	for i := 0; i < 5000; i++ {
		h := table.Pick(r)
		assert.GreaterOrEqual(t, h, 6)
		assert.LessOrEqual(t, h, 22)
	}
}

func TestTable_Deterministic(t *testing.T) {
	table, err := NewTable([]float64{0.05, 0.15, 0.6, 0.2})
	require.NoError(t, err)

	a := rand.New(rand.NewSource(99))
	b := rand.New(rand.NewSource(99))
	for i := 0; i < 100; i++ {
		assert.Equal(t, table.Pick(a), table.Pick(b))
	}
}

func TestIntBetween(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		v := IntBetween(r, 1, 3)
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, 3)
		seen[v] = true
	}
	assert.Len(t, seen, 3)
	assert.Equal(t, 5, IntBetween(r, 5, 5))
}

func TestDistinct(t *testing.T) {
	tests := []struct {
		name string
		n, k int
		want int
	}{
		{name: "sparse", n: 1000, k: 5, want: 5},
		{name: "dense", n: 10, k: 8, want: 8},
		{name: "clamped", n: 3, k: 10, want: 3},
		{name: "empty population", n: 0, k: 4, want: 0},
		{name: "nothing requested", n: 4, k: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := rand.New(rand.NewSource(3))
			got := Distinct(r, tt.n, tt.k)
			assert.Len(t, got, tt.want)

			seen := map[int]bool{}
			for _, i := range got {
				assert.False(t, seen[i], "index %d drawn twice", i)
				assert.GreaterOrEqual(t, i, 0)
				assert.Less(t, i, tt.n)
				seen[i] = true
			}
		})
	}
}
