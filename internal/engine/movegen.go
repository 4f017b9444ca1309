package engine

import (
	"github.com/samber/lo"

	"github.com/kiryu-dev/network-game/internal/domain"
)

// LegalMoves lists every legal move for player: placements while the player
// has fewer than MaxPieces on the board, relocations afterwards.
func (b *Board) LegalMoves(player domain.Player) []domain.Move {
	return lo.Filter(b.candidates(player), func(m domain.Move, _ int) bool {
		return b.IsLegal(m, player)
	})
}

func (b *Board) candidates(player domain.Player) []domain.Move {
	empty := b.emptyCells()
	if b.counts[player] < MaxPieces {
		return lo.Map(empty, func(c domain.Cell, _ int) domain.Move {
			return domain.Move{Kind: domain.Add, To: c}
		})
	}
	moves := make([]domain.Move, 0, MaxPieces*len(empty))
	for _, p := range b.Pieces() {
		if p.owner != player {
			continue
		}
		for _, c := range empty {
			moves = append(moves, domain.Move{Kind: domain.Step, To: c, From: p.Cell()})
		}
	}
	return moves
}

func (b *Board) emptyCells() []domain.Cell {
	cells := make([]domain.Cell, 0, boardSize*boardSize)
	for x := 0; x < boardSize; x++ {
		for y := 0; y < boardSize; y++ {
			if b.grid[x][y] == noPiece {
				cells = append(cells, domain.Cell{X: int8(x), Y: int8(y)})
			}
		}
	}
	return cells
}
