package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiHandler_FansOutByLevel(t *testing.T) {
	var debugBuf, warnBuf bytes.Buffer
	debug := slog.NewTextHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug})
	warn := slog.NewTextHandler(&warnBuf, &slog.HandlerOptions{Level: slog.LevelWarn})

	log := slog.New(NewMultiHandler(debug, warn))
	log.Debug("searching", "bot.nodes", 42)
	log.Warn("slow search", "game.id", "g1")

	assert.Contains(t, debugBuf.String(), "searching")
	assert.Contains(t, debugBuf.String(), "slow search")
	assert.NotContains(t, warnBuf.String(), "searching")
	assert.Contains(t, warnBuf.String(), "game.id=g1")
}

func TestMultiHandler_Enabled(t *testing.T) {
	info := slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelInfo})
	errOnly := slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError})

	h := NewMultiHandler(info, errOnly)
	ctx := context.Background()
	assert.False(t, h.Enabled(ctx, slog.LevelDebug))
	assert.True(t, h.Enabled(ctx, slog.LevelInfo))
	assert.False(t, NewMultiHandler(errOnly).Enabled(ctx, slog.LevelWarn))
}

func TestMultiHandler_WithAttrsAndGroup(t *testing.T) {
	var a, b bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&a, nil),
		slog.NewTextHandler(&b, nil),
	)

	log := slog.New(h).With("game.id", "g7").WithGroup("move")
	log.Info("applied", "cell", 4)

	for _, out := range []string{a.String(), b.String()} {
		require.NotEmpty(t, out)
		assert.True(t, strings.Contains(out, "game.id=g7"), out)
		assert.True(t, strings.Contains(out, "move.cell=4"), out)
	}
}

func TestLevelHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &levelHandler{level: slog.LevelWarn, Handler: slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})}

	log := slog.New(h)
	log.Info("dropped")
	log.Error("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestInit(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	Init(slog.LevelWarn, true)
	ctx := context.Background()
	assert.False(t, slog.Default().Enabled(ctx, slog.LevelInfo))
	assert.True(t, slog.Default().Enabled(ctx, slog.LevelWarn))
}
