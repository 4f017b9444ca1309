package game

import (
	"github.com/pkg/errors"
)

var (
	errUnexpectedMoveStatus = errors.New("unexpected move status")
	errIllegalMove          = errors.New("illegal move")
	errUnexpectedMessage    = errors.New("unexpected message type")
)
