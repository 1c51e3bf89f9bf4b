package worldgen

import "math/rand/v2"

// weighted draws one item from a discrete distribution. Weights are
// relative, not normalized; items and weights must be the same length.
// One rng value is consumed per call regardless of outcome, which keeps
// generation streams aligned across runs.
func weighted[T any](rng *rand.Rand, items []T, weights []int) T {
	var total int
	for _, w := range weights {
		total += w
	}
	draw := rng.IntN(total)
	for i, w := range weights {
		if draw < w {
			return items[i]
		}
		draw -= w
	}
	return items[len(items)-1]
}

// uniform draws a float in [lo, hi).
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// uniformInt draws an integer in [lo, hi].
func uniformInt(rng *rand.Rand, lo, hi int64) int64 {
	return lo + rng.Int64N(hi-lo+1)
}
