package service

import (
	"context"
	"ctchen222/tictactoe-ai/internal/game"
	"ctchen222/tictactoe-ai/internal/repository"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer("service")
	meter  = otel.Meter("service")
)

// ErrNotYourTurn is returned when a human move arrives while the AI is to move.
var ErrNotYourTurn = errors.New("not your turn")

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

//go:generate mockgen -source=game_service.go -destination=mocks/mock_game_service.go -package=mocks -exclude_interfaces=GameService

// MoveCalculator picks the AI's reply on a board that is still in progress.
type MoveCalculator interface {
	ChooseMove(ctx context.Context, board *game.Board) (int, error)
}

// ResultRecorder keeps the history of finished games.
type ResultRecorder interface {
	Record(ctx context.Context, r repository.Result) error
	Stats(ctx context.Context) (repository.Stats, error)
	Recent(ctx context.Context, limit int) ([]repository.Result, error)
}

// GameState is a game session as returned to callers. AIMove is the cell the
// AI answered with in this request, or -1.
type GameState struct {
	ID     string
	Game   *game.Game
	AIMove int
}

// GameService runs human-versus-AI sessions.
type GameService interface {
	Create(ctx context.Context) (*GameState, error)
	Get(ctx context.Context, id string) (*GameState, error)
	Move(ctx context.Context, id string, cell int) (*GameState, error)
	Reset(ctx context.Context, id string) (*GameState, error)
	Stats(ctx context.Context) (repository.Stats, error)
	History(ctx context.Context, limit int) ([]repository.Result, error)
}

type gameService struct {
	games    repository.GameRepository
	bot      MoveCalculator
	results  ResultRecorder
	finished metric.Int64Counter
	now      func() time.Time
}

// NewGameService creates a new GameService.
func NewGameService(games repository.GameRepository, bot MoveCalculator, results ResultRecorder) GameService {
	finished, err := meter.Int64Counter("games.finished",
		metric.WithDescription("Games that reached a win or a draw"),
	)
	if err != nil {
		slog.Warn("failed to create games.finished counter", "error", err)
	}
	return &gameService{
		games:    games,
		bot:      bot,
		results:  results,
		finished: finished,
		now:      time.Now,
	}
}

func (s *gameService) Create(ctx context.Context) (*GameState, error) {
	ctx, span := tracer.Start(ctx, "GameService.Create")
	defer span.End()

	id := uuid.NewString()
	g := game.NewGame()
	if err := s.games.Create(ctx, id, g); err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("game.id", id))

	slog.InfoContext(ctx, "game created", "game.id", id)
	return &GameState{ID: id, Game: g, AIMove: -1}, nil
}

func (s *gameService) Get(ctx context.Context, id string) (*GameState, error) {
	ctx, span := tracer.Start(ctx, "GameService.Get", trace.WithAttributes(attribute.String("game.id", id)))
	defer span.End()

	g, err := s.games.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &GameState{ID: id, Game: g, AIMove: -1}, nil
}

// Move applies the human move on cell and, if the game goes on, the AI's
// reply. Both moves are committed together or not at all.
func (s *gameService) Move(ctx context.Context, id string, cell int) (*GameState, error) {
	ctx, span := tracer.Start(ctx, "GameService.Move", trace.WithAttributes(
		attribute.String("game.id", id),
		attribute.Int("game.cell", cell),
	))
	defer span.End()

	aiMove := -1
	g, err := s.games.Update(ctx, id, func(g *game.Game) error {
		aiMove = -1
		if g.IsOver() {
			return game.ErrGameOver
		}
		if g.CurrentTurn != game.Human {
			return ErrNotYourTurn
		}
		if err := g.Move(cell); err != nil {
			return err
		}
		if g.IsOver() {
			return nil
		}

		reply, err := s.bot.ChooseMove(ctx, &g.Board)
		if err != nil {
			return fmt.Errorf("failed to choose AI move: %w", err)
		}
		if err := g.Move(reply); err != nil {
			return fmt.Errorf("AI produced an illegal move %d: %w", reply, err)
		}
		aiMove = reply
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Move rejected")
		slog.DebugContext(ctx, "move rejected", "game.id", id, "game.cell", cell, "error", err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("game.ai_move", aiMove),
		attribute.String("game.status", string(g.Status)),
	)
	if g.IsOver() {
		s.recordFinished(ctx, id, g)
	}
	return &GameState{ID: id, Game: g, AIMove: aiMove}, nil
}

func (s *gameService) Reset(ctx context.Context, id string) (*GameState, error) {
	ctx, span := tracer.Start(ctx, "GameService.Reset", trace.WithAttributes(attribute.String("game.id", id)))
	defer span.End()

	g, err := s.games.Update(ctx, id, func(g *game.Game) error {
		g.Reset()
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	slog.InfoContext(ctx, "game reset", "game.id", id)
	return &GameState{ID: id, Game: g, AIMove: -1}, nil
}

func (s *gameService) Stats(ctx context.Context) (repository.Stats, error) {
	ctx, span := tracer.Start(ctx, "GameService.Stats")
	defer span.End()
	return s.results.Stats(ctx)
}

// History returns the most recent results. limit falls back to
// DefaultHistoryLimit when not positive and is capped at MaxHistoryLimit.
func (s *gameService) History(ctx context.Context, limit int) ([]repository.Result, error) {
	ctx, span := tracer.Start(ctx, "GameService.History")
	defer span.End()

	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	span.SetAttributes(attribute.Int("history.limit", limit))
	return s.results.Recent(ctx, limit)
}

func (s *gameService) recordFinished(ctx context.Context, id string, g *game.Game) {
	outcome := outcomeLabel(g)
	if s.finished != nil {
		s.finished.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	}
	slog.InfoContext(ctx, "game finished", "game.id", id, "game.status", g.Status, "outcome", outcome, "moves", g.Moves)

	// The move is already committed; a history failure must not undo it.
	if err := s.results.Record(ctx, repository.NewResult(id, g, s.now())); err != nil {
		slog.ErrorContext(ctx, "failed to record game result", "game.id", id, "error", err)
	}
}

func outcomeLabel(g *game.Game) string {
	switch {
	case g.Status == game.StatusDraw:
		return "draw"
	case g.Winner == game.AI:
		return "ai"
	default:
		return "human"
	}
}
