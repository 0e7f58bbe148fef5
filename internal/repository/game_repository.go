package repository

import (
	"context"
	"ctchen222/tictactoe-ai/internal/game"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("repository")

// ErrGameNotFound is returned when no session exists under the given id.
var ErrGameNotFound = errors.New("game not found")

// Redis hash fields of a stored game.
const (
	FieldBoard    = "board"
	FieldNextTurn = "next_turn"
	FieldWinner   = "winner"
	FieldStatus   = "status"
	FieldMoves    = "moves"
)

const maxTxRetries = 3

// GameRepository stores game sessions by id.
type GameRepository interface {
	Create(ctx context.Context, id string, g *game.Game) error
	FindByID(ctx context.Context, id string) (*game.Game, error)
	// Update applies fn to the stored game and persists the result. Updates of
	// the same id are serialized; nothing is written when fn returns an error.
	Update(ctx context.Context, id string, fn func(*game.Game) error) (*game.Game, error)
	Delete(ctx context.Context, id string) error
}

type redisGameRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewGameRepository creates a new Redis-based GameRepository. Every write
// refreshes the key's expiry to ttl; ttl <= 0 keeps keys forever.
func NewGameRepository(rdb *redis.Client, ttl time.Duration) GameRepository {
	return &redisGameRepository{rdb: rdb, ttl: ttl}
}

func gameKey(id string) string {
	return fmt.Sprintf("game:%s", id)
}

// Create stores a new game state in Redis.
func (r *redisGameRepository) Create(ctx context.Context, id string, g *game.Game) error {
	ctx, span := tracer.Start(ctx, "GameRepository.Create", trace.WithAttributes(attribute.String("game.id", id)))
	defer span.End()

	fields, err := encodeGame(g)
	if err != nil {
		return err
	}

	key := gameKey(id)
	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, fields)
		if r.ttl > 0 {
			pipe.Expire(ctx, key, r.ttl)
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create game in redis: %w", err)
	}
	return nil
}

// FindByID retrieves the current game state from Redis.
func (r *redisGameRepository) FindByID(ctx context.Context, id string) (*game.Game, error) {
	ctx, span := tracer.Start(ctx, "GameRepository.FindByID", trace.WithAttributes(attribute.String("game.id", id)))
	defer span.End()

	data, err := r.rdb.HGetAll(ctx, gameKey(id)).Result()
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get game state from redis: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrGameNotFound
	}
	return decodeGame(data)
}

// Update applies fn inside a WATCH/MULTI transaction so that two requests
// against the same game never interleave.
func (r *redisGameRepository) Update(ctx context.Context, id string, fn func(*game.Game) error) (*game.Game, error) {
	ctx, span := tracer.Start(ctx, "GameRepository.Update", trace.WithAttributes(attribute.String("game.id", id)))
	defer span.End()

	key := gameKey(id)
	var updated *game.Game

	txf := func(tx *redis.Tx) error {
		data, err := tx.HGetAll(ctx, key).Result()
		if err != nil {
			return err
		}
		if len(data) == 0 {
			return ErrGameNotFound
		}
		g, err := decodeGame(data)
		if err != nil {
			return err
		}
		if err := fn(g); err != nil {
			return err
		}
		fields, err := encodeGame(g)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, fields)
			if r.ttl > 0 {
				pipe.Expire(ctx, key, r.ttl)
			}
			return nil
		})
		if err != nil {
			return err
		}
		updated = g
		return nil
	}

	for attempt := 1; attempt <= maxTxRetries; attempt++ {
		err := r.rdb.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			span.AddEvent("transaction conflict", trace.WithAttributes(attribute.Int("attempt", attempt)))
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("failed to update game %s: %w", id, redis.TxFailedErr)
}

// Delete removes the game from Redis.
func (r *redisGameRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "GameRepository.Delete", trace.WithAttributes(attribute.String("game.id", id)))
	defer span.End()

	n, err := r.rdb.Del(ctx, gameKey(id)).Result()
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete game from redis: %w", err)
	}
	if n == 0 {
		return ErrGameNotFound
	}
	return nil
}

func encodeGame(g *game.Game) (map[string]interface{}, error) {
	boardJSON, err := json.Marshal(g.Board)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal board: %w", err)
	}
	return map[string]interface{}{
		FieldBoard:    boardJSON,
		FieldNextTurn: string(g.CurrentTurn),
		FieldWinner:   string(g.Winner),
		FieldStatus:   string(g.Status),
		FieldMoves:    g.Moves,
	}, nil
}

func decodeGame(data map[string]string) (*game.Game, error) {
	var board game.Board
	if err := json.Unmarshal([]byte(data[FieldBoard]), &board); err != nil {
		return nil, fmt.Errorf("failed to unmarshal board: %w", err)
	}
	moves, err := strconv.Atoi(data[FieldMoves])
	if err != nil {
		return nil, fmt.Errorf("failed to parse move count: %w", err)
	}
	return &game.Game{
		Board:       board,
		CurrentTurn: game.PlayerMark(data[FieldNextTurn]),
		Winner:      game.PlayerMark(data[FieldWinner]),
		Status:      game.Status(data[FieldStatus]),
		Moves:       moves,
	}, nil
}
