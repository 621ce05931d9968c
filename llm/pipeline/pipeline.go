// Package pipeline wires the corpus, the similarity index, the retriever and
// the professor generator into the single request path the UI calls.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"professor/llm/retriever"
	"professor/pubsub"

	einoRetriever "github.com/cloudwego/eino/components/retriever"
	"go.uber.org/zap"
)

// ErrEmptyQuestion is returned for blank input; nothing is sent to the network.
// Whitespace-only questions count as blank, unlike a plain truthiness check
// which would run the full pipeline on them.
var ErrEmptyQuestion = errors.New("question cannot be empty")

// Stage names the step a request is in.
type Stage string

const (
	StageRetrieving Stage = "retrieving"
	StageGenerating Stage = "generating"
	StageFinished   Stage = "finished"
	StageFailed     Stage = "failed"
)

// Progress is published on the broker as a request moves through the stages.
type Progress struct {
	Question string
	Stage    Stage
	Answer   string
	Err      error
}

// Generator drafts a reply from a question and retrieved past answers.
type Generator interface {
	Generate(ctx context.Context, question string, contexts []string) (string, error)
}

// Pipeline answers one question at a time against a corpus indexed at startup.
type Pipeline struct {
	retriever einoRetriever.Retriever
	generator Generator
	broker    *pubsub.Broker[Progress]
	topK      int
	logger    *zap.Logger
	closers   []func() error
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithTopK sets how many past answers are retrieved per question.
func WithTopK(k int) Option {
	return func(p *Pipeline) {
		if k > 0 {
			p.topK = k
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithCloser registers a release function run by Close.
func WithCloser(fn func() error) Option {
	return func(p *Pipeline) {
		p.closers = append(p.closers, fn)
	}
}

// New creates a pipeline from a ready retriever and generator.
func New(r einoRetriever.Retriever, g Generator, opts ...Option) (*Pipeline, error) {
	if r == nil {
		return nil, errors.New("retriever is required")
	}
	if g == nil {
		return nil, errors.New("generator is required")
	}

	p := &Pipeline{
		retriever: r,
		generator: g,
		broker:    pubsub.NewBroker[Progress](),
		topK:      retriever.DefaultTopK,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// RetrieveInfo returns the raw text of the most similar past answers, most
// similar first.
func (p *Pipeline) RetrieveInfo(ctx context.Context, question string) ([]string, error) {
	docs, err := p.retriever.Retrieve(ctx, question, einoRetriever.WithTopK(p.topK))
	if err != nil {
		return nil, err
	}
	return retriever.Contents(docs), nil
}

// Respond retrieves similar past answers and drafts the professor's reply.
// Errors are returned as-is; there is no retry.
func (p *Pipeline) Respond(ctx context.Context, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", ErrEmptyQuestion
	}

	start := time.Now()
	p.broker.Publish(pubsub.StartedEvent, Progress{Question: question, Stage: StageRetrieving})

	contexts, err := p.RetrieveInfo(ctx, question)
	if err != nil {
		return "", p.fail(question, fmt.Errorf("failed to retrieve past answers: %w", err))
	}
	p.logger.Debug("retrieved past answers", zap.Int("count", len(contexts)))

	p.broker.Publish(pubsub.ProgressEvent, Progress{Question: question, Stage: StageGenerating})

	answer, err := p.generator.Generate(ctx, question, contexts)
	if err != nil {
		return "", p.fail(question, err)
	}

	p.logger.Info("response generated",
		zap.Int("contexts", len(contexts)),
		zap.Int("answer_len", len(answer)),
		zap.Duration("elapsed", time.Since(start)),
	)
	p.broker.Publish(pubsub.FinishedEvent, Progress{Question: question, Stage: StageFinished, Answer: answer})
	return answer, nil
}

func (p *Pipeline) fail(question string, err error) error {
	p.logger.Error("request failed", zap.Error(err))
	p.broker.Publish(pubsub.FailedEvent, Progress{Question: question, Stage: StageFailed, Err: err})
	return err
}

// Broker returns the progress event broker
func (p *Pipeline) Broker() *pubsub.Broker[Progress] {
	return p.broker
}

// Close shuts down the broker and releases the index.
func (p *Pipeline) Close() error {
	p.broker.Shutdown()

	var errs []error
	for _, fn := range p.closers {
		if err := fn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
