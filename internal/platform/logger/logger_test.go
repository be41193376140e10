package logger

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/taskloop/taskloop-api/internal/config"
)

func TestSetup(t *testing.T) {
	// Setup mutates the process default logger, so no t.Parallel here.
	for _, level := range []string{"debug", "info", "warn", "error", "DEBUG", "bogus"} {
		logger, err := Setup(config.ServerConfig{Port: 8080, LogLevel: level})
		if err != nil {
			t.Fatalf("Expected no error for level %q, got %v", level, err)
		}
		if logger == nil {
			t.Fatalf("Expected a logger for level %q", level)
		}
	}
}

func TestLoggerContextRoundTrip(t *testing.T) {
	t.Parallel()
	attached := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx := WithLogger(context.Background(), attached)
	if got := FromContext(ctx); got != attached {
		t.Error("Expected the attached logger back from the context")
	}

	// No logger in context: FromContext falls back to the default
	if got := FromContext(context.Background()); got == nil {
		t.Error("Expected the default logger, got nil")
	}

	// FromContextOrDefault prefers the context logger, then the fallback
	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))
	if got := FromContextOrDefault(ctx, fallback); got != attached {
		t.Error("Expected the context logger to win over the fallback")
	}
	if got := FromContextOrDefault(context.Background(), fallback); got != fallback {
		t.Error("Expected the fallback logger when the context has none")
	}
}
