package engine

import (
	"math"

	"github.com/kiryu-dev/network-game/internal/domain"
)

const (
	WinScore  = math.MaxInt
	LossScore = math.MinInt
)

// Score rates b from player's side: WinScore or LossScore when a network is
// on the board, otherwise own-colour links minus the opponent's.
func Score(b *Board, player domain.Player) int {
	if b.HasNetwork(player) {
		return WinScore
	}
	if b.HasNetwork(player.Opponent()) {
		return LossScore
	}
	// A cross-owner link adds one to each side, so counting every link would
	// give the same difference.
	score := 0
	for id := pieceID(1); id < arenaSize; id++ {
		if !b.alive[id] {
			continue
		}
		n := b.ownLinks(id)
		if b.pieces[id].owner == player {
			score += n
		} else {
			score -= n
		}
	}
	return score
}

func (b *Board) ownLinks(id pieceID) int {
	owner := b.pieces[id].owner
	n := 0
	for _, other := range b.pieces[id].links {
		if other != noPiece && b.pieces[other].owner == owner {
			n++
		}
	}
	return n
}
