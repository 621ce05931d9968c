// Package professor drafts the professor's reply from a question and the
// most similar past answers.
package professor

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
)

// Generator runs the template -> chat model chain.
type Generator struct {
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewGenerator compiles the chain around chatModel.
func NewGenerator(ctx context.Context, chatModel model.BaseChatModel) (*Generator, error) {
	if chatModel == nil {
		return nil, errors.New("chat model is required")
	}

	chain, err := compose.NewChain[map[string]any, *schema.Message]().
		AppendChatTemplate(NewChatTemplate()).
		AppendChatModel(chatModel).
		Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile professor chain: %w", err)
	}

	return &Generator{chain: chain}, nil
}

// Generate returns the model's completion for question, verbatim.
func (g *Generator) Generate(ctx context.Context, question string, contexts []string) (string, error) {
	msg, err := g.chain.Invoke(ctx, Variables(question, contexts))
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}
	if msg == nil {
		return "", errors.New("chat model returned no message")
	}
	return msg.Content, nil
}
