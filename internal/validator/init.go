package validator

import (
	"ctchen222/tictactoe-ai/pkg/proto"
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// ErrPositionRequired is returned for a move message without a position.
var ErrPositionRequired = errors.New("position is required for a move")

func init() {
	// Initialize validation
	validate = validator.New(validator.WithRequiredStructEnabled())
}

func GetValidator() *validator.Validate {
	return validate
}

// ValidateClientMessage checks the tags of msg and the rules that depend on
// its type.
func ValidateClientMessage(msg *proto.ClientToServerMessage) error {
	if err := validate.Struct(msg); err != nil {
		return err
	}
	if msg.Type == proto.TypeMove && msg.Position == nil {
		return ErrPositionRequired
	}
	return nil
}
