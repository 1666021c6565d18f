package scoring

import (
	"context"
	"math"
)

// Embedder produces a dense vector for a text. Implementations must be safe
// for sequential reuse across a run; the production implementation is backed
// by a hosted embedding model and is injected so tests can substitute a
// deterministic stub.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Cosine computes cosine similarity between two dense vectors, clamped to
// [0,1]. Mismatched or empty vectors yield 0.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return Clamp01(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
