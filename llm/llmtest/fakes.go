// Package llmtest provides deterministic stand-ins for the hosted embedding
// and chat models.
package llmtest

import (
	"context"
	"errors"
	"strings"
	"sync"
	"unicode"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// Embedder maps text to a 27-dimensional letter histogram (a-z plus digits).
// Identical texts always produce identical vectors.
type Embedder struct {
	mu    sync.Mutex
	calls [][]string
	Err   error
}

var _ embedding.Embedder = (*Embedder)(nil)

// EmbedStrings records the call and returns one vector per text.
func (e *Embedder) EmbedStrings(ctx context.Context, texts []string, _ ...embedding.Option) ([][]float64, error) {
	e.mu.Lock()
	e.calls = append(e.calls, append([]string(nil), texts...))
	e.mu.Unlock()

	if e.Err != nil {
		return nil, e.Err
	}

	out := make([][]float64, len(texts))
	for i, text := range texts {
		out[i] = Histogram(text)
	}
	return out, nil
}

// Calls returns every batch passed to EmbedStrings.
func (e *Embedder) Calls() [][]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([][]string(nil), e.calls...)
}

// Histogram is the vector Embedder produces for text.
func Histogram(text string) []float64 {
	vec := make([]float64, 27)
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z':
			vec[r-'a']++
		case unicode.IsDigit(r):
			vec[26]++
		}
	}
	return vec
}

// ChatModel returns Reply for every Generate call and records the prompts it saw.
type ChatModel struct {
	Reply string
	Err   error

	mu     sync.Mutex
	inputs [][]*schema.Message
}

var _ model.BaseChatModel = (*ChatModel)(nil)

// Generate returns the canned assistant message.
func (m *ChatModel) Generate(ctx context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	m.mu.Lock()
	m.inputs = append(m.inputs, input)
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	return schema.AssistantMessage(m.Reply, nil), nil
}

// Stream is not used by the pipeline.
func (m *ChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported")
}

// Inputs returns the message lists passed to Generate.
func (m *ChatModel) Inputs() [][]*schema.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]*schema.Message(nil), m.inputs...)
}
