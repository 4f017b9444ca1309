package hub

import (
	"github.com/pkg/errors"
)

var (
	ErrBotsDisabled    = errors.New("bot games are disabled")
	ErrUnknownOpponent = errors.New("unknown opponent")
)
