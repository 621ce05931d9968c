package vector

import (
	"context"
	"errors"
	"testing"

	"professor/llm"
	"professor/llm/llmtest"

	"github.com/cloudwego/eino/schema"
)

func corpusDocs() []*schema.Document {
	texts := []string{
		"question: How does your research play into your course design?\nanswer: Research drives every module.",
		"question: What is proptech?\nanswer: Technology applied to property.",
		"question: Where do graduates work?\nanswer: Brokerages, funds and startups.",
		"question: Is the class hard?\nanswer: It is demanding but fair.",
		"question: zzz\nanswer: zzz",
	}
	docs := make([]*schema.Document, len(texts))
	for i, text := range texts {
		docs[i] = &schema.Document{
			ID:       llm.DocumentID("test.csv", i),
			Content:  text,
			MetaData: map[string]any{llm.MetaSource: "test.csv", llm.MetaRow: i},
		}
	}
	return docs
}

func newBuiltStore(t *testing.T) (*MemoryStore, *llmtest.Embedder) {
	t.Helper()
	emb := &llmtest.Embedder{}
	store, err := NewMemoryStore(emb, 2)
	if err != nil {
		t.Fatalf("NewMemoryStore() error = %v", err)
	}
	if err := store.Build(context.Background(), corpusDocs()); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return store, emb
}

func TestMemoryStoreIdenticalTextIsTopHit(t *testing.T) {
	store, _ := newBuiltStore(t)
	docs := corpusDocs()

	for i, doc := range docs {
		results, err := store.Search(context.Background(), doc.Content, 3)
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		found := false
		for _, r := range results {
			if llm.RowOf(r.Document) == i {
				found = true
			}
		}
		if !found {
			t.Errorf("row %d not in top 3 for its own text", i)
		}
	}
}

func TestMemoryStoreOrderNonIncreasing(t *testing.T) {
	store, _ := newBuiltStore(t)

	results, err := store.Search(context.Background(), "how is the course designed", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("score at %d (%f) greater than at %d (%f)", i, results[i].Score, i-1, results[i-1].Score)
		}
	}
}

func TestMemoryStoreTopKBounds(t *testing.T) {
	store, _ := newBuiltStore(t)

	res, err := store.Search(context.Background(), "proptech", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 5 {
		t.Fatalf("expected whole corpus when topK > size, got %d", len(res))
	}

	res, err = store.Search(context.Background(), "proptech", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != DefaultTopK {
		t.Fatalf("expected default top k %d, got %d", DefaultTopK, len(res))
	}
}

func TestMemoryStoreBuildOnce(t *testing.T) {
	store, emb := newBuiltStore(t)

	// 5 docs with batch size 2 => 3 embedding requests
	if got := len(emb.Calls()); got != 3 {
		t.Errorf("expected 3 batched embedding calls, got %d", got)
	}

	if err := store.Build(context.Background(), corpusDocs()); !errors.Is(err, ErrIndexBuilt) {
		t.Fatalf("second Build() error = %v, want ErrIndexBuilt", err)
	}
	if n, _ := store.Count(context.Background()); n != 5 {
		t.Errorf("Count() = %d, want 5", n)
	}
}

func TestMemoryStoreSearchBeforeBuild(t *testing.T) {
	store, err := NewMemoryStore(&llmtest.Embedder{}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.Search(context.Background(), "q", 3); !errors.Is(err, ErrIndexNotBuilt) {
		t.Fatalf("Search() error = %v, want ErrIndexNotBuilt", err)
	}
}

func TestMemoryStoreSearchDoesNotMutateCorpus(t *testing.T) {
	docs := corpusDocs()
	store, err := NewMemoryStore(&llmtest.Embedder{}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Build(context.Background(), docs); err != nil {
		t.Fatal(err)
	}

	before := docs[1].Content
	if _, err := store.Search(context.Background(), "proptech", 3); err != nil {
		t.Fatal(err)
	}
	if docs[1].Content != before || len(docs[1].MetaData) != 2 {
		t.Error("search mutated a corpus document")
	}
}

func TestMemoryStoreEmbeddingError(t *testing.T) {
	emb := &llmtest.Embedder{Err: errors.New("quota exceeded")}
	store, err := NewMemoryStore(emb, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Build(context.Background(), corpusDocs()); err == nil {
		t.Fatal("expected build to fail when embeddings fail")
	}
}

func TestCosineSimilarity_Basic(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{1, 0}
	c := []float32{0, 1}

	if got := cosine(a, b); got < 0.99 {
		t.Fatalf("expected cosine(a,b) ~ 1, got %f", got)
	}
	if got := cosine(a, c); got > 0.01 {
		t.Fatalf("expected cosine(a,c) ~ 0, got %f", got)
	}
	if got := cosine(a, []float32{1}); got != 0 {
		t.Fatalf("expected 0 for mismatched lengths, got %f", got)
	}
}
