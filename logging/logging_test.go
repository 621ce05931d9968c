package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	logger, err := New(path, "debug")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info("corpus loaded", zap.Int("documents", 3))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"documents":3`) {
		t.Errorf("log output missing field: %s", data)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "app.log"), "loud"); err == nil {
		t.Fatal("expected error for invalid level")
	}
}

func TestNewEmptyPathIsNop(t *testing.T) {
	logger, err := New("", "info")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info("dropped")
}
