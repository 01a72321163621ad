package services

import (
	"math"
	"sort"

	"github.com/quillstack/docqa/internal/core/domain"
)

// RankedChunk pairs a chunk with its similarity to a query vector.
type RankedChunk struct {
	Chunk      domain.Chunk
	Similarity float64
}

// CosineSimilarity computes dot(a,b) / (||a|| * ||b||).
//
// Mismatched lengths or a zero-norm vector yield 0 rather than an error
// or a division by zero: a chunk that cannot be compared simply ranks
// at the bottom.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// rankChunks orders embedded chunks by descending similarity to the query
// vector and returns the top k. Ties keep their original chunk order
// (stable sort). Chunks without embeddings must be filtered out by the
// caller beforehand.
func rankChunks(query []float32, chunks []domain.Chunk, k int) []RankedChunk {
	ranked := make([]RankedChunk, 0, len(chunks))
	for _, c := range chunks {
		ranked = append(ranked, RankedChunk{
			Chunk:      c,
			Similarity: CosineSimilarity(query, c.Embedding),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Similarity > ranked[j].Similarity
	})

	if k > 0 && k < len(ranked) {
		ranked = ranked[:k]
	}
	return ranked
}
