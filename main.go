package main

import (
	"context"
	"fmt"
	"os"

	"professor/config"
	"professor/llm/pipeline"
	"professor/logging"
	"professor/tracing"
	"professor/tui/form"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() {
	// Load .env file if exists
	_ = godotenv.Load()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stopTracing, err := tracing.Setup(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer stopTracing()

	fmt.Fprintf(os.Stderr, "Indexing %s...\n", cfg.CorpusPath)
	p, err := pipeline.Setup(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", zap.Error(err))
		return err
	}
	defer p.Close()

	program := tea.NewProgram(
		form.New(ctx, p, p.Broker()),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}
