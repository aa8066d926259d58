package logger

import (
	"context"
	"log/slog"
	"testing"
)

func TestCustomHandler_SetLevel(t *testing.T) {
	ctx := context.Background()
	h := NewHandler()

	// Before configuration everything passes, debug included
	if !h.Enabled(ctx, slog.LevelDebug) {
		t.Error("Enabled(debug) = false before SetLevel, want true")
	}

	derived := h.WithAttrs([]slog.Attr{slog.String("type", "db")})

	h.SetLevel(slog.LevelInfo)

	if h.Enabled(ctx, slog.LevelDebug) {
		t.Error("Enabled(debug) = true after SetLevel(info), want false")
	}
	if !h.Enabled(ctx, slog.LevelInfo) {
		t.Error("Enabled(info) = false after SetLevel(info), want true")
	}
	if !h.Enabled(ctx, slog.LevelError) {
		t.Error("Enabled(error) = false after SetLevel(info), want true")
	}

	// Handlers derived via WithAttrs share the configured level
	if derived.Enabled(ctx, slog.LevelDebug) {
		t.Error("derived Enabled(debug) = true after SetLevel(info), want false")
	}
	if !derived.Enabled(ctx, slog.LevelWarn) {
		t.Error("derived Enabled(warn) = false after SetLevel(info), want true")
	}
}
