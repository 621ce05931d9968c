package providers

import (
	"context"
	"fmt"

	"professor/config"

	openaiEmbed "github.com/cloudwego/eino-ext/components/embedding/openai"
	geminiModel "github.com/cloudwego/eino-ext/components/model/gemini"
	openaiModel "github.com/cloudwego/eino-ext/components/model/openai"
	einoEmbedding "github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/components/model"
	"google.golang.org/genai"
)

// ChatModelConfig defines the configuration for creating a chat model.
type ChatModelConfig struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
}

// every request is answered at temperature zero
const temperature float32 = 0

// NewChatModel creates an OpenAI-compatible chat model from specific configuration.
func NewChatModel(ctx context.Context, cfg *ChatModelConfig) (model.ToolCallingChatModel, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required in config")
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = "gpt-4o-mini"
	}

	temp := temperature
	modelCfg := &openaiModel.ChatModelConfig{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Model:       modelName,
		Temperature: &temp,
	}
	if cfg.MaxTokens > 0 {
		maxTokens := cfg.MaxTokens
		modelCfg.MaxTokens = &maxTokens
	}

	return openaiModel.NewChatModel(ctx, modelCfg)
}

// NewGeminiModel creates a Google Gemini chat model.
func NewGeminiModel(ctx context.Context, apiKey, modelName string, maxTokens int) (model.ToolCallingChatModel, error) {
	if apiKey == "" {
		return nil, config.ErrMissingGeminiKey
	}
	if modelName == "" {
		modelName = "gemini-1.5-pro"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	temp := temperature
	modelCfg := &geminiModel.Config{
		Client:      client,
		Model:       modelName,
		Temperature: &temp,
	}
	if maxTokens > 0 {
		modelCfg.MaxTokens = &maxTokens
	}
	return geminiModel.NewChatModel(ctx, modelCfg)
}

// CreateChatModel picks the chat model named by cfg.Provider.
func CreateChatModel(ctx context.Context, cfg config.Config) (model.ToolCallingChatModel, error) {
	switch cfg.Provider {
	case config.ProviderGoogle:
		return NewGeminiModel(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.MaxTokens)
	case config.ProviderOpenAI, "":
		return NewChatModel(ctx, &ChatModelConfig{
			APIKey:    cfg.APIKey,
			BaseURL:   cfg.BaseURL,
			Model:     cfg.ChatModel,
			MaxTokens: cfg.MaxTokens,
		})
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", cfg.Provider)
	}
}

// EmbeddingConfig defines the configuration for creating an embedding model.
type EmbeddingConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// NewEmbeddingModel creates an OpenAI-compatible embedding model from specific configuration.
func NewEmbeddingModel(ctx context.Context, cfg *EmbeddingConfig) (einoEmbedding.Embedder, error) {
	if cfg.APIKey == "" {
		return nil, config.ErrMissingAPIKey
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = "text-embedding-ada-002"
	}

	return openaiEmbed.NewEmbedder(ctx, &openaiEmbed.EmbeddingConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   modelName,
	})
}

// CreateEmbeddingModel creates the embedding model described by cfg.
func CreateEmbeddingModel(ctx context.Context, cfg config.Config) (einoEmbedding.Embedder, error) {
	return NewEmbeddingModel(ctx, &EmbeddingConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.EmbeddingModel,
	})
}
