package sampling

import "math/rand"

// Distinct returns k distinct indexes drawn without replacement from [0, n),
// in draw order. k is clamped to n.
func Distinct(r *rand.Rand, n, k int) []int {
	if n <= 0 || k <= 0 {
		return nil
	}
	if k > n {
		k = n
	}

	// Rejection stays cheap while the picked set is a small share of n.
	if k*4 <= n {
		seen := make(map[int]struct{}, k)
		out := make([]int, 0, k)
		for len(out) < k {
			i := r.Intn(n)
			if _, dup := seen[i]; dup {
				continue
			}
			seen[i] = struct{}{}
			out = append(out, i)
		}
		return out
	}

	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + r.Intn(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}
