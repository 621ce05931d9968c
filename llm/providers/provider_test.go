package providers

import (
	"context"
	"errors"
	"testing"

	"professor/config"
)

func TestNewChatModelRequiresKey(t *testing.T) {
	if _, err := NewChatModel(context.Background(), &ChatModelConfig{}); err == nil {
		t.Fatal("expected error without API key")
	}
}

func TestNewChatModel(t *testing.T) {
	m, err := NewChatModel(context.Background(), &ChatModelConfig{APIKey: "sk-test", MaxTokens: 512})
	if err != nil {
		t.Fatalf("NewChatModel() error = %v", err)
	}
	if m == nil {
		t.Fatal("expected a model")
	}
}

func TestNewEmbeddingModelRequiresKey(t *testing.T) {
	_, err := NewEmbeddingModel(context.Background(), &EmbeddingConfig{})
	if !errors.Is(err, config.ErrMissingAPIKey) {
		t.Fatalf("error = %v, want ErrMissingAPIKey", err)
	}
}

func TestCreateChatModelUnknownProvider(t *testing.T) {
	_, err := CreateChatModel(context.Background(), config.Config{Provider: "mystery", APIKey: "sk"})
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestCreateGeminiRequiresKey(t *testing.T) {
	_, err := CreateChatModel(context.Background(), config.Config{Provider: config.ProviderGoogle})
	if !errors.Is(err, config.ErrMissingGeminiKey) {
		t.Fatalf("error = %v, want ErrMissingGeminiKey", err)
	}
}
