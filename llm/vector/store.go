package vector

import (
	"context"
	"errors"

	"professor/llm"

	"github.com/cloudwego/eino/schema"
)

// DefaultTopK is used when Search is called with topK <= 0.
const DefaultTopK = 3

var (
	// ErrIndexBuilt is returned by Build on an index that already holds the corpus.
	ErrIndexBuilt = errors.New("vector index already built")
	// ErrIndexNotBuilt is returned by Search before Build has completed.
	ErrIndexNotBuilt = errors.New("vector index not built")
)

// VectorStore is a similarity index built once from the whole corpus and
// read-only afterwards.
type VectorStore interface {
	// Build embeds docs and indexes them. It may succeed only once.
	Build(ctx context.Context, docs []*schema.Document) error

	// Search embeds query and returns the topK nearest documents, most similar first.
	Search(ctx context.Context, query string, topK int) ([]llm.SearchResult, error)

	// Count returns the total number of documents in the store
	Count(ctx context.Context) (int64, error)

	// Close closes any connections or resources
	Close() error
}

func normalizeTopK(topK int) int {
	if topK <= 0 {
		return DefaultTopK
	}
	return topK
}
