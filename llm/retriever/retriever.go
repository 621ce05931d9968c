// Package retriever exposes a vector store through eino's retriever.Retriever interface.
package retriever

import (
	"context"
	"fmt"

	"professor/llm/vector"

	"github.com/cloudwego/eino/components/retriever"
	"github.com/cloudwego/eino/schema"
)

// DefaultTopK is the number of past answers fed to the prompt.
const DefaultTopK = 3

// Retriever embeds a query and returns the nearest corpus documents.
type Retriever struct {
	store vector.VectorStore
	topK  int
}

var _ retriever.Retriever = (*Retriever)(nil)

// New creates a retriever over store. topK <= 0 means DefaultTopK.
func New(store vector.VectorStore, topK int) (*Retriever, error) {
	if store == nil {
		return nil, fmt.Errorf("vector store is required")
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{store: store, topK: topK}, nil
}

// Retrieve returns the top-k documents for query, most similar first, each
// carrying its similarity score. retriever.WithTopK overrides k.
func (r *Retriever) Retrieve(ctx context.Context, query string, opts ...retriever.Option) ([]*schema.Document, error) {
	options := retriever.GetCommonOptions(&retriever.Options{TopK: &r.topK}, opts...)

	topK := r.topK
	if options.TopK != nil && *options.TopK > 0 {
		topK = *options.TopK
	}

	results, err := r.store.Search(ctx, query, topK)
	if err != nil {
		return nil, fmt.Errorf("similarity search failed: %w", err)
	}

	docs := make([]*schema.Document, 0, len(results))
	for _, res := range results {
		// copy so the score never lands on the shared corpus document
		doc := &schema.Document{
			ID:       res.Document.ID,
			Content:  res.Document.Content,
			MetaData: make(map[string]any, len(res.Document.MetaData)+1),
		}
		for k, v := range res.Document.MetaData {
			doc.MetaData[k] = v
		}
		docs = append(docs, doc.WithScore(float64(res.Score)))
	}
	return docs, nil
}

// Contents returns the raw text of docs in order.
func Contents(docs []*schema.Document) []string {
	out := make([]string, len(docs))
	for i, doc := range docs {
		out[i] = doc.Content
	}
	return out
}
