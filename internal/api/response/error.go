package response

import (
	"ctchen222/tictactoe-ai/internal/game"
	"ctchen222/tictactoe-ai/internal/repository"
	"ctchen222/tictactoe-ai/internal/service"
	"errors"
	"net/http"
)

type Error struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Extras  string `json:"extras"`
}

func (e Error) Error() string {
	return e.Extras
}

func NewError(success bool, code int, message string) Error {
	return Error{
		Success: success,
		Code:    code,
		Extras:  message,
	}
}

// FromError maps a service error to the status code and message sent to
// clients. Unknown errors become a generic 500.
func FromError(err error) Error {
	switch {
	case errors.Is(err, game.ErrOutOfBounds), errors.Is(err, game.ErrCellOccupied):
		return NewError(false, http.StatusBadRequest, "invalid move")
	case errors.Is(err, game.ErrGameOver):
		return NewError(false, http.StatusConflict, game.ErrGameOver.Error())
	case errors.Is(err, service.ErrNotYourTurn):
		return NewError(false, http.StatusConflict, service.ErrNotYourTurn.Error())
	case errors.Is(err, repository.ErrGameNotFound):
		return NewError(false, http.StatusNotFound, repository.ErrGameNotFound.Error())
	default:
		return NewError(false, http.StatusInternalServerError, "internal server error")
	}
}
