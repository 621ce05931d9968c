package pipeline

import (
	"context"
	"fmt"

	"professor/config"
	"professor/llm/loader"
	"professor/llm/professor"
	"professor/llm/providers"
	"professor/llm/retriever"
	"professor/llm/vector"

	"github.com/cloudwego/eino/components/document"
	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/components/model"
	"go.uber.org/zap"
)

// Deps are the external services the pipeline is built on.
type Deps struct {
	Loader    document.Loader
	Embedder  embedding.Embedder
	ChatModel model.BaseChatModel
}

// Setup creates the hosted models from cfg and builds the pipeline. It blocks
// until the whole corpus is embedded and indexed.
func Setup(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Pipeline, error) {
	embedder, err := providers.CreateEmbeddingModel(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding model: %w", err)
	}

	chatModel, err := providers.CreateChatModel(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	return Build(ctx, cfg, Deps{
		Loader:    loader.NewCSVLoader(),
		Embedder:  embedder,
		ChatModel: chatModel,
	}, logger)
}

// Build loads the corpus, builds the index once and compiles the generator.
func Build(ctx context.Context, cfg config.Config, deps Deps, logger *zap.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	docs, err := deps.Loader.Load(ctx, document.Source{URI: cfg.CorpusPath})
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}
	logger.Info("corpus loaded", zap.String("path", cfg.CorpusPath), zap.Int("documents", len(docs)))

	store, err := newStore(ctx, cfg, deps.Embedder)
	if err != nil {
		return nil, err
	}

	if err := store.Build(ctx, docs); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to build similarity index: %w", err)
	}
	logger.Info("similarity index built", zap.String("backend", cfg.VectorStore))

	r, err := retriever.New(store, cfg.TopK)
	if err != nil {
		store.Close()
		return nil, err
	}

	gen, err := professor.NewGenerator(ctx, deps.ChatModel)
	if err != nil {
		store.Close()
		return nil, err
	}

	return New(r, gen,
		WithTopK(cfg.TopK),
		WithLogger(logger),
		WithCloser(store.Close),
	)
}

func newStore(ctx context.Context, cfg config.Config, embedder embedding.Embedder) (vector.VectorStore, error) {
	switch cfg.VectorStore {
	case config.StoreRedis:
		store, err := vector.NewRedisStore(ctx, embedder, vector.RedisConfig{
			Addr:           cfg.Redis.Addr,
			Password:       cfg.Redis.Password,
			DB:             cfg.Redis.DB,
			IndexName:      cfg.Redis.IndexName,
			VectorDim:      cfg.Redis.VectorDim,
			EFConstruction: cfg.Redis.EFConstruction,
			M:              cfg.Redis.M,
			BatchSize:      cfg.EmbedBatchSize,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create redis store: %w", err)
		}
		return store, nil
	case config.StoreMemory, "":
		return vector.NewMemoryStore(embedder, cfg.EmbedBatchSize)
	default:
		return nil, fmt.Errorf("unsupported vector store %q", cfg.VectorStore)
	}
}
