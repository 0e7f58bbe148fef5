package proto

import "ctchen222/tictactoe-ai/internal/game"

// Message types exchanged over /ws.
const (
	TypeMove   = "move"
	TypeReset  = "reset"
	TypeUpdate = "update"
	TypeError  = "error"
)

// ClientToServerMessage represents a message from the client to the server.
// Position is required for moves.
type ClientToServerMessage struct {
	Type     string `json:"type" validate:"required,oneof=move reset"`
	Position *int   `json:"position,omitempty" validate:"omitempty,min=0,max=8"`
}

// ServerToClientMessage represents a message from the server to the client.
type ServerToClientMessage struct {
	Type   string            `json:"type" validate:"required,oneof=update error"`
	Reason string            `json:"reason,omitempty"`
	GameID string            `json:"game_id,omitempty"`
	Board  []game.PlayerMark `json:"board,omitempty"`
	Status game.Status       `json:"status,omitempty"`
	Winner game.PlayerMark   `json:"winner,omitempty"`
	Next   game.PlayerMark   `json:"next,omitempty"`
	Moves  int               `json:"moves"`
	AIMove int               `json:"ai_move"`
}

// NewUpdateMessage describes g after a request that the AI answered with
// aiMove (-1 for none).
func NewUpdateMessage(gameID string, g *game.Game, aiMove int) *ServerToClientMessage {
	msg := &ServerToClientMessage{
		Type:   TypeUpdate,
		GameID: gameID,
		Board:  g.Board[:],
		Status: g.Status,
		Winner: g.Winner,
		Moves:  g.Moves,
		AIMove: aiMove,
	}
	if !g.IsOver() {
		msg.Next = g.CurrentTurn
	}
	return msg
}

// NewErrorMessage reports a rejected request.
func NewErrorMessage(reason string) *ServerToClientMessage {
	return &ServerToClientMessage{Type: TypeError, Reason: reason, AIMove: -1}
}
