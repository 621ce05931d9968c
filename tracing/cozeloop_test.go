package tracing

import (
	"context"
	"testing"

	"professor/config"

	"go.uber.org/zap"
)

func TestSetupDisabledWithoutCredentials(t *testing.T) {
	for _, cfg := range []config.Config{
		{},
		{CozeLoopToken: "token"},
		{CozeLoopWorkspaceID: "ws"},
	} {
		closeFn, err := Setup(context.Background(), cfg, zap.NewNop())
		if err != nil {
			t.Fatalf("Setup() error = %v", err)
		}
		if closeFn == nil {
			t.Fatal("expected a non-nil close function")
		}
		closeFn()
	}
}
