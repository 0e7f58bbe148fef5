package repository

import (
	"context"
	"ctchen222/tictactoe-ai/internal/game"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Result is one finished game as kept in the history database. Winner is
// game.None for a draw.
type Result struct {
	ID         string          `db:"id" json:"id"`
	GameID     string          `db:"game_id" json:"game_id"`
	Winner     game.PlayerMark `db:"winner" json:"winner"`
	Moves      int             `db:"moves" json:"moves"`
	FinishedAt time.Time       `db:"-" json:"finished_at"`
}

// NewResult builds the history entry for a finished game.
func NewResult(gameID string, g *game.Game, finishedAt time.Time) Result {
	return Result{
		ID:         uuid.NewString(),
		GameID:     gameID,
		Winner:     g.Winner,
		Moves:      g.Moves,
		FinishedAt: finishedAt,
	}
}

// Stats aggregates every recorded result.
type Stats struct {
	Total     int `json:"total"`
	HumanWins int `json:"human_wins"`
	AIWins    int `json:"ai_wins"`
	Draws     int `json:"draws"`
}

// ResultRepository defines the history operations on finished games.
type ResultRepository interface {
	Record(ctx context.Context, r Result) error
	Stats(ctx context.Context) (Stats, error)
	Recent(ctx context.Context, limit int) ([]Result, error)
}

type sqliteResultRepository struct {
	db *sqlx.DB
}

// NewResultRepository creates a new SQLite-based ResultRepository.
func NewResultRepository(db *sqlx.DB) ResultRepository {
	return &sqliteResultRepository{db: db}
}

type resultRow struct {
	Result
	FinishedAtMs int64 `db:"finished_at"`
}

// Record inserts one result. A missing id is generated.
func (r *sqliteResultRepository) Record(ctx context.Context, res Result) error {
	ctx, span := tracer.Start(ctx, "ResultRepository.Record")
	defer span.End()

	if res.ID == "" {
		res.ID = uuid.NewString()
	}
	if res.FinishedAt.IsZero() {
		res.FinishedAt = time.Now()
	}

	query := `INSERT INTO game_results (id, game_id, winner, moves, finished_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, res.ID, res.GameID, string(res.Winner), res.Moves, res.FinishedAt.UnixMilli())
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to record game result: %w", err)
	}
	return nil
}

// Stats counts results per winner.
func (r *sqliteResultRepository) Stats(ctx context.Context) (Stats, error) {
	var rows []struct {
		Winner string `db:"winner"`
		Count  int    `db:"count"`
	}
	query := `SELECT winner, COUNT(*) AS count FROM game_results GROUP BY winner`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return Stats{}, fmt.Errorf("failed to aggregate game results: %w", err)
	}

	var stats Stats
	for _, row := range rows {
		stats.Total += row.Count
		switch game.PlayerMark(row.Winner) {
		case game.Human:
			stats.HumanWins += row.Count
		case game.AI:
			stats.AIWins += row.Count
		default:
			stats.Draws += row.Count
		}
	}
	return stats, nil
}

// Recent returns up to limit results, newest first.
func (r *sqliteResultRepository) Recent(ctx context.Context, limit int) ([]Result, error) {
	var rows []resultRow
	query := `SELECT id, game_id, winner, moves, finished_at FROM game_results ORDER BY finished_at DESC, rowid DESC LIMIT ?`
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list game results: %w", err)
	}

	results := make([]Result, 0, len(rows))
	for _, row := range rows {
		res := row.Result
		res.FinishedAt = time.UnixMilli(row.FinishedAtMs).UTC()
		results = append(results, res)
	}
	return results, nil
}
