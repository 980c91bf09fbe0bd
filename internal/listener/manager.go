package listener

import (
	"context"
	"io"
	"log/slog"

	"github.com/pixil98/go-workshop/internal/console"
)

// ConnectionManager hands accepted connections to the operator console.
type ConnectionManager struct {
	console *console.Console
}

func NewConnectionManager(c *console.Console) *ConnectionManager {
	return &ConnectionManager{
		console: c,
	}
}

func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn io.ReadWriter) {
	if err := m.console.RunSession(ctx, conn); err != nil {
		slog.WarnContext(ctx, "console session", "error", err)
	}
}
