package repository

import (
	"context"
	"ctchen222/tictactoe-ai/internal/game"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGameRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryGameRepository()

	g := game.NewGame()
	require.NoError(t, repo.Create(ctx, "g1", g))

	found, err := repo.FindByID(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, *g, *found)

	// The stored copy is independent of the caller's value.
	found.Board[0] = game.PlayerX
	again, err := repo.FindByID(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, game.None, again.Board[0])

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestMemoryGameRepository_UpdateCommitsOnlyOnSuccess(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryGameRepository()
	require.NoError(t, repo.Create(ctx, "g1", game.NewGame()))

	updated, err := repo.Update(ctx, "g1", func(g *game.Game) error {
		return g.Move(4)
	})
	require.NoError(t, err)
	assert.Equal(t, game.PlayerX, updated.Board[4])
	assert.Equal(t, game.AI, updated.CurrentTurn)

	boom := errors.New("boom")
	_, err = repo.Update(ctx, "g1", func(g *game.Game) error {
		if err := g.Move(0); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	stored, err := repo.FindByID(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, game.None, stored.Board[0], "failed update must not be committed")
	assert.Equal(t, 1, stored.Moves)

	_, err = repo.Update(ctx, "missing", func(*game.Game) error { return nil })
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestMemoryGameRepository_UpdateSerializesPerGame(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryGameRepository()
	require.NoError(t, repo.Create(ctx, "g1", game.NewGame()))

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.Update(ctx, "g1", func(g *game.Game) error {
				g.Moves++
				return nil
			})
		}()
	}
	wg.Wait()

	stored, err := repo.FindByID(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, workers, stored.Moves)
}

func TestMemoryGameRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryGameRepository()
	require.NoError(t, repo.Create(ctx, "g1", game.NewGame()))

	require.NoError(t, repo.Delete(ctx, "g1"))
	assert.ErrorIs(t, repo.Delete(ctx, "g1"), ErrGameNotFound)
	_, err := repo.FindByID(ctx, "g1")
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestMemoryGameRepository_Sweep(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryGameRepository()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	require.NoError(t, repo.Create(ctx, "old", game.NewGame()))
	now = now.Add(time.Hour)
	require.NoError(t, repo.Create(ctx, "fresh", game.NewGame()))
	now = now.Add(10 * time.Minute)

	removed := repo.Sweep(30 * time.Minute)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, repo.Len())

	_, err := repo.FindByID(ctx, "old")
	assert.ErrorIs(t, err, ErrGameNotFound)
	_, err = repo.FindByID(ctx, "fresh")
	assert.NoError(t, err)
}

func TestMemoryGameRepository_UpdateRefreshesTouched(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryGameRepository()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }
	require.NoError(t, repo.Create(ctx, "g1", game.NewGame()))

	now = now.Add(time.Hour)
	_, err := repo.Update(ctx, "g1", func(g *game.Game) error { return g.Move(0) })
	require.NoError(t, err)

	now = now.Add(10 * time.Minute)
	assert.Zero(t, repo.Sweep(30*time.Minute))
}

func TestMemoryGameRepository_RunJanitorStopsWithContext(t *testing.T) {
	repo := NewMemoryGameRepository()
	require.NoError(t, repo.Create(context.Background(), "g1", game.NewGame()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		repo.RunJanitor(ctx, 5*time.Millisecond, 0)
		close(done)
	}()

	require.Eventually(t, func() bool { return repo.Len() == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop after cancel")
	}
}
