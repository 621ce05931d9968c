package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"professor/config"
	"professor/llm/llmtest"
	"professor/llm/loader"
	"professor/llm/professor"
	"professor/pubsub"
)

const corpus = `question,answer
How does your research play into your course design?,Every module is built on a working paper.
What is the biggest trend in proptech?,Data moving from spreadsheets to platforms.
Who takes your class?,MBAs who want to build or invest in real estate startups.
What do students build?,A working prototype and an investment memo.
`

func newTestPipeline(t *testing.T, reply string) (*Pipeline, *llmtest.Embedder, *llmtest.ChatModel) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "answers.csv")
	if err := os.WriteFile(path, []byte(corpus), 0644); err != nil {
		t.Fatal(err)
	}

	emb := &llmtest.Embedder{}
	chat := &llmtest.ChatModel{Reply: reply}
	cfg := config.Config{CorpusPath: path, TopK: 3, VectorStore: config.StoreMemory}

	p, err := Build(context.Background(), cfg, Deps{
		Loader:    loader.NewCSVLoader(),
		Embedder:  emb,
		ChatModel: chat,
	}, nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	t.Cleanup(func() { p.Close() })
	return p, emb, chat
}

func TestRespondReturnsCompletionVerbatim(t *testing.T) {
	reply := "Thanks for asking!\n\nMy research *is* the course."
	p, _, chat := newTestPipeline(t, reply)

	question := "How does your research play into your course design?"
	got, err := p.Respond(context.Background(), question)
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if got != reply {
		t.Errorf("Respond() = %q, want %q", got, reply)
	}

	inputs := chat.Inputs()
	if len(inputs) != 1 {
		t.Fatalf("expected 1 chat call, got %d", len(inputs))
	}
	prompt := inputs[0][0].Content
	if !strings.Contains(prompt, "Below is a message I received from the prospect:\n"+question+"\n") {
		t.Error("prompt does not contain the question")
	}
	if !strings.Contains(prompt, "answer: Every module is built on a working paper.") {
		t.Error("prompt does not contain the closest past answer")
	}
}

func TestRetrieveInfoTopThree(t *testing.T) {
	p, _, _ := newTestPipeline(t, "")

	row := "question: Who takes your class?\nanswer: MBAs who want to build or invest in real estate startups."
	contexts, err := p.RetrieveInfo(context.Background(), row)
	if err != nil {
		t.Fatal(err)
	}
	if len(contexts) != 3 {
		t.Fatalf("expected 3 contexts, got %d", len(contexts))
	}
	if contexts[0] != row {
		t.Errorf("identical row should be first, got %q", contexts[0])
	}
}

func TestRespondEmptyQuestionMakesNoCalls(t *testing.T) {
	p, emb, chat := newTestPipeline(t, "unused")
	startupCalls := len(emb.Calls())

	for _, q := range []string{"", "   \n\t"} {
		if _, err := p.Respond(context.Background(), q); !errors.Is(err, ErrEmptyQuestion) {
			t.Fatalf("Respond(%q) error = %v, want ErrEmptyQuestion", q, err)
		}
	}

	if len(emb.Calls()) != startupCalls {
		t.Error("empty question triggered an embedding call")
	}
	if len(chat.Inputs()) != 0 {
		t.Error("empty question triggered a chat call")
	}
}

func TestRespondPublishesProgress(t *testing.T) {
	p, _, _ := newTestPipeline(t, "reply")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := p.Broker().Subscribe(ctx)

	if _, err := p.Respond(context.Background(), "What do students build?"); err != nil {
		t.Fatal(err)
	}

	want := []Stage{StageRetrieving, StageGenerating, StageFinished}
	for _, stage := range want {
		select {
		case ev := <-events:
			if ev.Payload.Stage != stage {
				t.Errorf("stage = %s, want %s", ev.Payload.Stage, stage)
			}
			if stage == StageFinished && (ev.Type != pubsub.FinishedEvent || ev.Payload.Answer != "reply") {
				t.Errorf("unexpected finished event %+v", ev)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %s", stage)
		}
	}
}

func TestRespondPropagatesGeneratorError(t *testing.T) {
	p, _, chat := newTestPipeline(t, "")
	chat.Err = errors.New("rate limited")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := p.Broker().Subscribe(ctx)

	if _, err := p.Respond(context.Background(), "Who takes your class?"); err == nil {
		t.Fatal("expected error")
	}

	var last pubsub.Event[Progress]
	for i := 0; i < 3; i++ {
		select {
		case last = <-events:
		case <-time.After(time.Second):
			t.Fatal("timed out")
		}
	}
	if last.Type != pubsub.FailedEvent || last.Payload.Err == nil {
		t.Errorf("expected failed event, got %+v", last)
	}
}

func TestBuildMissingCorpus(t *testing.T) {
	cfg := config.Config{CorpusPath: filepath.Join(t.TempDir(), "missing.csv"), TopK: 3}
	_, err := Build(context.Background(), cfg, Deps{
		Loader:    loader.NewCSVLoader(),
		Embedder:  &llmtest.Embedder{},
		ChatModel: &llmtest.ChatModel{},
	}, nil)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Build() error = %v, want not-exist", err)
	}
}

type stubGenerator struct{}

func (stubGenerator) Generate(ctx context.Context, q string, c []string) (string, error) {
	return professor.FormatContexts(c), nil
}

func TestNewRequiresParts(t *testing.T) {
	if _, err := New(nil, stubGenerator{}); err == nil {
		t.Error("expected error for nil retriever")
	}
}
