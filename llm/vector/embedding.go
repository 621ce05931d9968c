package vector

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/embedding"
)

const defaultBatchSize = 64

// EmbeddingService wraps an embedding model for vector generation
type EmbeddingService struct {
	embedder  embedding.Embedder
	batchSize int
}

// NewEmbeddingService creates a new embedding service
func NewEmbeddingService(embedder embedding.Embedder, batchSize int) *EmbeddingService {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &EmbeddingService{
		embedder:  embedder,
		batchSize: batchSize,
	}
}

// Embed generates an embedding vector for a single text
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	vectors, err := s.embedder.EmbedStrings(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil, fmt.Errorf("empty embedding returned")
	}

	return toFloat32(vectors[0]), nil
}

// EmbedBatch generates embedding vectors for multiple texts, batchSize texts
// per request. Empty texts are skipped and keep a nil vector.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("texts cannot be empty")
	}

	var validTexts []string
	var indices []int
	for i, text := range texts {
		if text != "" {
			validTexts = append(validTexts, text)
			indices = append(indices, i)
		}
	}

	if len(validTexts) == 0 {
		return nil, fmt.Errorf("no valid texts to embed")
	}

	result := make([][]float32, len(texts))
	for start := 0; start < len(validTexts); start += s.batchSize {
		end := min(start+s.batchSize, len(validTexts))

		vectors, err := s.embedder.EmbedStrings(ctx, validTexts[start:end])
		if err != nil {
			return nil, fmt.Errorf("failed to generate embeddings: %w", err)
		}
		if len(vectors) != end-start {
			return nil, fmt.Errorf("embedding count mismatch: sent %d texts, got %d vectors", end-start, len(vectors))
		}

		for i, vec := range vectors {
			result[indices[start+i]] = toFloat32(vec)
		}
	}

	return result, nil
}

func toFloat32(vec []float64) []float32 {
	out := make([]float32, len(vec))
	for i, v := range vec {
		out[i] = float32(v)
	}
	return out
}
