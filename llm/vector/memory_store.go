package vector

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"professor/llm"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/schema"
)

type entry struct {
	doc    *schema.Document
	vector []float32
}

// MemoryStore is an exact cosine-similarity index held in process memory.
type MemoryStore struct {
	embeddingSvc *EmbeddingService
	mu           sync.RWMutex
	entries      []entry
	built        bool
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore(embedder embedding.Embedder, batchSize int) (*MemoryStore, error) {
	if embedder == nil {
		return nil, fmt.Errorf("embedding model is required")
	}
	return &MemoryStore{
		embeddingSvc: NewEmbeddingService(embedder, batchSize),
	}, nil
}

// Build embeds every document and freezes the index.
func (s *MemoryStore) Build(ctx context.Context, docs []*schema.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.built {
		return ErrIndexBuilt
	}

	entries := make([]entry, 0, len(docs))
	if len(docs) > 0 {
		texts := make([]string, len(docs))
		for i, doc := range docs {
			texts[i] = doc.Content
		}

		vectors, err := s.embeddingSvc.EmbedBatch(ctx, texts)
		if err != nil {
			return fmt.Errorf("failed to embed corpus: %w", err)
		}
		for i, doc := range docs {
			entries = append(entries, entry{doc: doc, vector: vectors[i]})
		}
	}

	s.entries = entries
	s.built = true
	return nil
}

// Search embeds query and ranks every entry by cosine similarity.
func (s *MemoryStore) Search(ctx context.Context, query string, topK int) ([]llm.SearchResult, error) {
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}

	s.mu.RLock()
	built := s.built
	s.mu.RUnlock()
	if !built {
		return nil, ErrIndexNotBuilt
	}

	queryVector, err := s.embeddingSvc.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}

	return s.SearchVector(queryVector, topK)
}

// SearchVector ranks entries against an already computed query vector.
// Ties keep corpus order.
func (s *MemoryStore) SearchVector(queryVector []float32, topK int) ([]llm.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.built {
		return nil, ErrIndexNotBuilt
	}

	results := make([]llm.SearchResult, 0, len(s.entries))
	for _, e := range s.entries {
		results = append(results, llm.SearchResult{
			Document: e.doc,
			Score:    cosine(queryVector, e.vector),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	topK = normalizeTopK(topK)
	if topK > len(results) {
		topK = len(results)
	}
	return results[:topK], nil
}

// Count returns the number of indexed documents
func (s *MemoryStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.entries)), nil
}

// Close releases nothing; the index lives as long as the process.
func (s *MemoryStore) Close() error {
	return nil
}

func cosine(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}
