package bot

import (
	"context"
	"ctchen222/tictactoe-ai/internal/game"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer("bot")
	meter  = otel.Meter("bot")
)

// Calculator adapts an Engine to the service layer: it takes a context and
// reports every search as a span and as metrics.
type Calculator struct {
	engine   *Engine
	nodes    metric.Int64Histogram
	duration metric.Float64Histogram
}

// NewCalculator wraps engine. Metric registration failures only disable the
// affected instrument.
func NewCalculator(engine *Engine) *Calculator {
	c := &Calculator{engine: engine}

	nodes, err := meter.Int64Histogram("bot.search.nodes",
		metric.WithDescription("Positions visited by one move search"),
	)
	if err != nil {
		slog.Warn("failed to create bot.search.nodes histogram", "error", err)
	}
	c.nodes = nodes

	duration, err := meter.Float64Histogram("bot.search.duration",
		metric.WithDescription("Wall time of one move search"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		slog.Warn("failed to create bot.search.duration histogram", "error", err)
	}
	c.duration = duration

	return c
}

// ChooseMove asks the engine for the AI's move on board.
func (c *Calculator) ChooseMove(ctx context.Context, board *game.Board) (int, error) {
	ctx, span := tracer.Start(ctx, "bot.ChooseMove", trace.WithAttributes(
		attribute.String("game.board", board.String()),
	))
	defer span.End()

	start := time.Now()
	a, err := c.engine.Analyze(board)
	elapsed := time.Since(start)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Engine refused the board")
		return -1, err
	}

	span.SetAttributes(
		attribute.Int("bot.cell", a.Cell),
		attribute.Int("bot.score", a.Score),
		attribute.Int("bot.nodes", a.Nodes),
	)
	if c.nodes != nil {
		c.nodes.Record(ctx, int64(a.Nodes))
	}
	if c.duration != nil {
		c.duration.Record(ctx, float64(elapsed.Microseconds())/1000)
	}

	slog.DebugContext(ctx, "bot chose move", "bot.cell", a.Cell, "bot.score", a.Score, "bot.nodes", a.Nodes, "elapsed", elapsed)
	return a.Cell, nil
}
