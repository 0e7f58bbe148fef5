package models

import (
	"ctchen222/tictactoe-ai/internal/game"
	"ctchen222/tictactoe-ai/internal/service"
)

// MoveRequest is the body of every move endpoint.
type MoveRequest struct {
	Position *int `json:"position" binding:"required,min=0,max=8"`
}

// GameResponse is the JSON view of a game session.
type GameResponse struct {
	ID     string            `json:"id"`
	Board  []game.PlayerMark `json:"board"`
	Status game.Status       `json:"status"`
	Winner game.PlayerMark   `json:"winner"`
	Next   game.PlayerMark   `json:"next"`
	Moves  int               `json:"moves"`
	AIMove int               `json:"ai_move"`
}

// NewGameResponse builds the response for state. Next is empty once the game
// is over.
func NewGameResponse(state *service.GameState) GameResponse {
	g := state.Game
	resp := GameResponse{
		ID:     state.ID,
		Board:  g.Board[:],
		Status: g.Status,
		Winner: g.Winner,
		Moves:  g.Moves,
		AIMove: state.AIMove,
	}
	if !g.IsOver() {
		resp.Next = g.CurrentTurn
	}
	return resp
}

// LegacyResponse is the flat body returned by the cookie-session /move and
// /reset endpoints used by the index page. Empty cells are a single space.
type LegacyResponse struct {
	Status  string          `json:"status"`
	Winner  game.PlayerMark `json:"winner,omitempty"`
	Board   []string        `json:"board,omitempty"`
	Message string          `json:"message,omitempty"`
}

// NewLegacyResponse reports win, draw or success for g.
func NewLegacyResponse(g *game.Game) LegacyResponse {
	board := make([]string, len(g.Board))
	for i, mark := range g.Board {
		if mark == game.None {
			board[i] = " "
			continue
		}
		board[i] = string(mark)
	}

	resp := LegacyResponse{Status: "success", Board: board}
	switch g.Status {
	case game.StatusWon:
		resp.Status = "win"
		resp.Winner = g.Winner
	case game.StatusDraw:
		resp.Status = "draw"
	}
	return resp
}
