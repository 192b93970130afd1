package utils

import "math"

// VectorNorm returns the L2 norm of a sparse term-weight vector.
// An empty or all-zero vector has norm 0.
func VectorNorm(weights map[string]float64) float64 {
	var sum float64
	for _, w := range weights {
		sum += w * w
	}
	if sum == 0 {
		return 0
	}
	return math.Sqrt(sum)
}

// Dot returns the dot product of two sparse term-weight vectors.
func Dot(a, b map[string]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for term, w := range a {
		sum += w * b[term]
	}
	return sum
}
