// Package similarity scores vectors against each other.
package similarity

import "math"

// Cosine computes cosine similarity between two vectors.
// Returns 0.0 for invalid inputs (empty, mismatched dimensions, or zero vectors)
// Formula: cos(θ) = (v1 · v2) / (||v1|| * ||v2||)
func Cosine(v1, v2 []float64) float64 {
	if len(v1) == 0 || len(v1) != len(v2) {
		return 0.0
	}

	var dot, norm1, norm2 float64
	for i := range v1 {
		dot += v1[i] * v2[i]
		norm1 += v1[i] * v1[i]
		norm2 += v2[i] * v2[i]
	}

	// Zero vectors have no direction; their similarity is defined as 0.
	if norm1 == 0.0 || norm2 == 0.0 {
		return 0.0
	}

	return clamp(dot / (math.Sqrt(norm1) * math.Sqrt(norm2)))
}

// Batch computes the similarity of query against every candidate.
// The result always has len(candidates) entries; invalid pairs score 0.0.
func Batch(query []float64, candidates [][]float64) []float64 {
	results := make([]float64, len(candidates))
	for idx, candidate := range candidates {
		results[idx] = Cosine(query, candidate)
	}
	return results
}

// ArgMax returns the index of the largest score and the score itself.
// Ties resolve to the lowest index. An empty slice yields (-1, 0).
func ArgMax(scores []float64) (int, float64) {
	best, bestScore := -1, 0.0
	for i, s := range scores {
		if best == -1 || s > bestScore {
			best, bestScore = i, s
		}
	}
	return best, bestScore
}

// Clamp result to [-1, 1] to handle floating point precision issues
func clamp(s float64) float64 {
	if s > 1.0 {
		return 1.0
	}
	if s < -1.0 {
		return -1.0
	}
	return s
}
