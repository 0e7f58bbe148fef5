package repository

import (
	"context"
	"ctchen222/tictactoe-ai/internal/game"
	"log/slog"
	"sync"
	"time"
)

type memoryEntry struct {
	mu      sync.Mutex
	game    game.Game
	touched time.Time
	deleted bool
}

// MemoryGameRepository keeps sessions in process memory. It is the default
// store for a single server instance.
type MemoryGameRepository struct {
	mu    sync.Mutex
	games map[string]*memoryEntry
	now   func() time.Time
}

// NewMemoryGameRepository creates an empty in-memory repository.
func NewMemoryGameRepository() *MemoryGameRepository {
	return &MemoryGameRepository{
		games: make(map[string]*memoryEntry),
		now:   time.Now,
	}
}

func (r *MemoryGameRepository) entry(id string) (*memoryEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.games[id]
	return e, ok
}

func (r *MemoryGameRepository) Create(ctx context.Context, id string, g *game.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.games[id] = &memoryEntry{game: *g, touched: r.now()}
	return nil
}

func (r *MemoryGameRepository) FindByID(ctx context.Context, id string) (*game.Game, error) {
	e, ok := r.entry(id)
	if !ok {
		return nil, ErrGameNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return nil, ErrGameNotFound
	}
	cp := e.game
	return &cp, nil
}

// Update holds the entry's lock while fn runs on a copy; the copy replaces the
// stored game only if fn succeeds.
func (r *MemoryGameRepository) Update(ctx context.Context, id string, fn func(*game.Game) error) (*game.Game, error) {
	e, ok := r.entry(id)
	if !ok {
		return nil, ErrGameNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return nil, ErrGameNotFound
	}

	working := e.game
	if err := fn(&working); err != nil {
		return nil, err
	}
	e.game = working
	e.touched = r.now()

	cp := working
	return &cp, nil
}

func (r *MemoryGameRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	e, ok := r.games[id]
	delete(r.games, id)
	r.mu.Unlock()
	if !ok {
		return ErrGameNotFound
	}
	e.mu.Lock()
	e.deleted = true
	e.mu.Unlock()
	return nil
}

// Len returns the number of stored sessions.
func (r *MemoryGameRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.games)
}

// Sweep removes sessions that have not been written for longer than ttl and
// returns how many were removed.
func (r *MemoryGameRepository) Sweep(ttl time.Duration) int {
	cutoff := r.now().Add(-ttl)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, e := range r.games {
		// An entry busy in Update is in use; leave it for the next sweep.
		if !e.mu.TryLock() {
			continue
		}
		if e.touched.Before(cutoff) {
			e.deleted = true
			delete(r.games, id)
			removed++
		}
		e.mu.Unlock()
	}
	return removed
}

// RunJanitor sweeps expired sessions every interval until ctx is done.
func (r *MemoryGameRepository) RunJanitor(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(ttl); n > 0 {
				slog.InfoContext(ctx, "expired idle game sessions", "count", n, "remaining", r.Len())
			}
		}
	}
}
