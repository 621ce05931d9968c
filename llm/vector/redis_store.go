package vector

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"professor/llm"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/schema"
	"github.com/redis/go-redis/v9"
)

const (
	// Default index configuration
	defaultEFConstruction = 200
	defaultM              = 16

	// Field names in Redis hash
	fieldContent = "content"
	fieldVector  = "vector"
	fieldSource  = "source"
	fieldRow     = "row"
	fieldScore   = "score"
)

// RedisStore implements VectorStore using Redis with RediSearch vector search
type RedisStore struct {
	client         *redis.Client
	embeddingSvc   *EmbeddingService
	indexName      string
	keyPrefix      string
	dim            int
	efConstruction int
	m              int

	mu    sync.RWMutex
	built bool
	count int64
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr           string
	Password       string
	DB             int
	IndexName      string
	VectorDim      int
	EFConstruction int
	M              int
	BatchSize      int
}

// NewRedisStore connects to Redis. The index itself is created by Build.
func NewRedisStore(ctx context.Context, embedder embedding.Embedder, cfg RedisConfig) (*RedisStore, error) {
	if embedder == nil {
		return nil, fmt.Errorf("embedding model is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		Protocol: 2, // FT.* replies are parsed in their RESP2 shape
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return newRedisStore(client, embedder, cfg), nil
}

func newRedisStore(client *redis.Client, embedder embedding.Embedder, cfg RedisConfig) *RedisStore {
	if cfg.EFConstruction <= 0 {
		cfg.EFConstruction = defaultEFConstruction
	}
	if cfg.M <= 0 {
		cfg.M = defaultM
	}
	if cfg.IndexName == "" {
		cfg.IndexName = "professor-answers"
	}
	return &RedisStore{
		client:         client,
		embeddingSvc:   NewEmbeddingService(embedder, cfg.BatchSize),
		indexName:      cfg.IndexName,
		keyPrefix:      cfg.IndexName + ":",
		dim:            cfg.VectorDim,
		efConstruction: cfg.EFConstruction,
		m:              cfg.M,
	}
}

// Build drops any index left by a previous run (with its hashes), embeds the
// corpus and loads it into a fresh HNSW index.
func (s *RedisStore) Build(ctx context.Context, docs []*schema.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.built {
		return ErrIndexBuilt
	}

	var vectors [][]float32
	if len(docs) > 0 {
		texts := make([]string, len(docs))
		for i, doc := range docs {
			texts[i] = doc.Content
		}

		var err error
		vectors, err = s.embeddingSvc.EmbedBatch(ctx, texts)
		if err != nil {
			return fmt.Errorf("failed to embed corpus: %w", err)
		}
		for _, v := range vectors {
			if len(v) > 0 {
				s.dim = len(v)
				break
			}
		}
	}

	if err := s.recreateIndex(ctx); err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	var count int64
	for i, doc := range docs {
		if len(vectors[i]) == 0 {
			continue
		}
		pipe.HSet(ctx, s.keyPrefix+doc.ID,
			fieldContent, doc.Content,
			fieldVector, encodeVector(vectors[i]),
			fieldSource, llm.SourceOf(doc),
			fieldRow, llm.RowOf(doc),
		)
		count++
	}
	if count > 0 {
		if _, err := pipe.Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert documents: %w", err)
		}
	}

	s.count = count
	s.built = true
	return nil
}

// recreateIndex drops the index (DD removes its hashes too) and creates it again.
func (s *RedisStore) recreateIndex(ctx context.Context) error {
	if err := s.client.Do(ctx, "FT.DROPINDEX", s.indexName, "DD").Err(); err != nil && !isUnknownIndex(err) {
		return fmt.Errorf("failed to drop index: %w", err)
	}

	if s.dim <= 0 {
		return fmt.Errorf("vector dimension must be positive, got %d", s.dim)
	}

	// FT.CREATE <index>
	//   ON HASH PREFIX 1 "<index>:"
	//   SCHEMA vector VECTOR HNSW 10 TYPE FLOAT32 DIM <dim> DISTANCE_METRIC COSINE EF_CONSTRUCTION 200 M 16
	//          content TEXT source TAG row NUMERIC
	err := s.client.Do(ctx, "FT.CREATE", s.indexName,
		"ON", "HASH",
		"PREFIX", "1", s.keyPrefix,
		"SCHEMA",
		fieldVector, "VECTOR", "HNSW", "10",
		"TYPE", "FLOAT32",
		"DIM", strconv.Itoa(s.dim),
		"DISTANCE_METRIC", "COSINE",
		"EF_CONSTRUCTION", strconv.Itoa(s.efConstruction),
		"M", strconv.Itoa(s.m),
		fieldContent, "TEXT",
		fieldSource, "TAG",
		fieldRow, "NUMERIC",
	).Err()
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	return nil
}

func isUnknownIndex(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unknown index") || strings.Contains(msg, "no such index")
}

// encodeVector packs a vector as little-endian FLOAT32, the blob layout RediSearch expects.
func encodeVector(vector []float32) []byte {
	buf := make([]byte, 4*len(vector))
	for i, v := range vector {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// Search performs semantic search using vector similarity
func (s *RedisStore) Search(ctx context.Context, query string, topK int) ([]llm.SearchResult, error) {
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}

	s.mu.RLock()
	built := s.built
	s.mu.RUnlock()
	if !built {
		return nil, ErrIndexNotBuilt
	}

	topK = normalizeTopK(topK)

	queryVector, err := s.embeddingSvc.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}

	// FT.SEARCH <index> "*=>[KNN 3 @vector $query_vector AS score]"
	//   PARAMS 2 query_vector "<bytes>"
	//   RETURN 4 content source row score
	//   SORTBY score
	//   LIMIT 0 3
	//   DIALECT 2
	queryStr := fmt.Sprintf("*=>[KNN %d @%s $query_vector AS %s]", topK, fieldVector, fieldScore)

	result, err := s.client.Do(ctx, "FT.SEARCH", s.indexName, queryStr,
		"PARAMS", "2", "query_vector", encodeVector(queryVector),
		"RETURN", "4", fieldContent, fieldSource, fieldRow, fieldScore,
		"SORTBY", fieldScore,
		"LIMIT", "0", strconv.Itoa(topK),
		"DIALECT", "2",
	).Result()
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	results, err := s.parseSearchResults(result)
	if err != nil {
		return nil, fmt.Errorf("failed to parse search results: %w", err)
	}
	return results, nil
}

// parseSearchResults parses an FT.SEARCH reply: the total count followed by
// (key, [field, value, ...]) pairs.
func (s *RedisStore) parseSearchResults(result interface{}) ([]llm.SearchResult, error) {
	values, ok := result.([]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected result format")
	}

	results := []llm.SearchResult{}
	for i := 1; i+1 < len(values); i += 2 {
		key, ok := values[i].(string)
		if !ok {
			continue
		}
		fields, ok := values[i+1].([]interface{})
		if !ok {
			continue
		}

		doc, distance := s.parseDocumentFields(strings.TrimPrefix(key, s.keyPrefix), fields)
		results = append(results, llm.SearchResult{
			Document: doc,
			Score:    1 - distance,
		})
	}
	return results, nil
}

// parseDocumentFields parses document fields from Redis result
func (s *RedisStore) parseDocumentFields(id string, fields []interface{}) (*schema.Document, float32) {
	doc := &schema.Document{
		ID:       id,
		MetaData: map[string]any{},
	}
	var distance float32 = 1

	for i := 0; i+1 < len(fields); i += 2 {
		name, ok := fields[i].(string)
		if !ok {
			continue
		}
		val, ok := fields[i+1].(string)
		if !ok {
			continue
		}

		switch name {
		case fieldContent:
			doc.Content = val
		case fieldSource:
			doc.MetaData[llm.MetaSource] = val
		case fieldRow:
			if row, err := strconv.Atoi(val); err == nil {
				doc.MetaData[llm.MetaRow] = row
			}
		case fieldScore:
			if d, err := strconv.ParseFloat(val, 32); err == nil {
				distance = float32(d)
			}
		}
	}

	return doc, distance
}

// Count returns the number of documents loaded by Build
func (s *RedisStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count, nil
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}
