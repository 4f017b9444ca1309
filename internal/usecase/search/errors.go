package search

import (
	"github.com/pkg/errors"
)

var ErrNoMoves = errors.New("no legal moves")
