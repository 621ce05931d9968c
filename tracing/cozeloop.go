// Package tracing reports eino component runs to CozeLoop when credentials
// are configured.
package tracing

import (
	"context"
	"fmt"

	"professor/config"

	clc "github.com/cloudwego/eino-ext/callbacks/cozeloop"
	"github.com/cloudwego/eino/callbacks"
	"github.com/coze-dev/cozeloop-go"
	"go.uber.org/zap"
)

// Setup registers the CozeLoop callback handler globally. The returned
// function flushes and closes the client; it is a no-op when tracing is off.
func Setup(ctx context.Context, cfg config.Config, logger *zap.Logger) (func(), error) {
	if !cfg.TracingEnabled() {
		logger.Debug("cozeloop tracing disabled")
		return func() {}, nil
	}

	client, err := cozeloop.NewClient(
		cozeloop.WithAPIToken(cfg.CozeLoopToken),
		cozeloop.WithWorkspaceID(cfg.CozeLoopWorkspaceID),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cozeloop client: %w", err)
	}

	callbacks.AppendGlobalHandlers(clc.NewLoopHandler(client))
	logger.Info("cozeloop tracing enabled", zap.String("workspace", cfg.CozeLoopWorkspaceID))

	return func() {
		client.Close(ctx)
	}, nil
}
