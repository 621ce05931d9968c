// Package config reads the application settings from the environment.
//
// main loads a .env file (if present) before calling Load, so every value
// below can come from either source.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Provider names accepted by LLM_PROVIDER.
const (
	ProviderOpenAI = "openai"
	ProviderGoogle = "google"
)

// Vector store backends accepted by VECTOR_STORE.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

var (
	// ErrMissingAPIKey is returned when OPENAI_API_KEY is not set.
	ErrMissingAPIKey = errors.New("OPENAI_API_KEY environment variable is required")
	// ErrMissingGeminiKey is returned when the google provider is selected without a key.
	ErrMissingGeminiKey = errors.New("GEMINI_API_KEY environment variable is required when using google provider")
)

// Config holds everything needed to build the pipeline and the UI.
type Config struct {
	CorpusPath string

	Provider       string
	APIKey         string
	BaseURL        string
	ChatModel      string
	EmbeddingModel string
	EmbedBatchSize int
	MaxTokens      int

	GeminiAPIKey string
	GeminiModel  string

	TopK int

	VectorStore string
	Redis       RedisConfig

	LogFile  string
	LogLevel string

	CozeLoopToken       string
	CozeLoopWorkspaceID string
}

// RedisConfig holds the RediSearch connection and index settings.
type RedisConfig struct {
	Addr           string
	Password       string
	DB             int
	IndexName      string
	VectorDim      int
	M              int
	EFConstruction int
}

// Load builds a Config from environment variables and validates it.
func Load() (Config, error) {
	cfg := Config{
		CorpusPath: getEnvString("CORPUS_PATH", "GS_CourseOverview.csv"),

		Provider:       strings.ToLower(getEnvString("LLM_PROVIDER", ProviderOpenAI)),
		APIKey:         os.Getenv("OPENAI_API_KEY"),
		BaseURL:        os.Getenv("OPENAI_BASE_URL"),
		ChatModel:      getEnvString("CHAT_MODEL", "gpt-4o-mini"),
		EmbeddingModel: getEnvString("EMBEDDING_MODEL", "text-embedding-ada-002"),
		EmbedBatchSize: getEnvInt("EMBEDDING_BATCH_SIZE", 64),
		MaxTokens:      getEnvInt("MAX_TOKENS", 0),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnvString("GEMINI_MODEL", "gemini-1.5-pro"),

		TopK: getEnvInt("RETRIEVAL_TOP_K", 3),

		VectorStore: strings.ToLower(getEnvString("VECTOR_STORE", StoreMemory)),
		Redis: RedisConfig{
			Addr:           getEnvString("REDIS_ADDR", "localhost:6379"),
			Password:       os.Getenv("REDIS_PASSWORD"),
			DB:             getEnvInt("REDIS_DB", 0),
			IndexName:      getEnvString("VECTOR_INDEX_NAME", "professor-answers"),
			VectorDim:      getEnvInt("VECTOR_DIM", 1536),
			M:              getEnvInt("HNSW_M", 16),
			EFConstruction: getEnvInt("HNSW_EF_CONSTRUCTION", 200),
		},

		LogFile:  getEnvString("LOG_FILE", "professor.log"),
		LogLevel: getEnvString("LOG_LEVEL", "info"),

		CozeLoopToken:       os.Getenv("COZE_LOOP_API_TOKEN"),
		CozeLoopWorkspaceID: os.Getenv("COZELOOP_WORKSPACE_ID"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks required values and enumerations.
func (c Config) Validate() error {
	// Embeddings always go through the OpenAI-compatible endpoint.
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}

	switch c.Provider {
	case ProviderOpenAI:
	case ProviderGoogle:
		if c.GeminiAPIKey == "" {
			return ErrMissingGeminiKey
		}
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q", c.Provider)
	}

	switch c.VectorStore {
	case StoreMemory, StoreRedis:
	default:
		return fmt.Errorf("unsupported VECTOR_STORE %q", c.VectorStore)
	}

	if c.CorpusPath == "" {
		return fmt.Errorf("CORPUS_PATH cannot be empty")
	}
	if c.TopK <= 0 {
		return fmt.Errorf("RETRIEVAL_TOP_K must be positive, got %d", c.TopK)
	}
	return nil
}

// TracingEnabled reports whether both CozeLoop credentials are present.
func (c Config) TracingEnabled() bool {
	return c.CozeLoopToken != "" && c.CozeLoopWorkspaceID != ""
}

// getEnvString reads a string from environment variable
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvInt reads an integer from environment variable
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		var result int
		if _, err := fmt.Sscanf(val, "%d", &result); err == nil {
			return result
		}
	}
	return defaultVal
}
