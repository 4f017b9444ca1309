package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiryu-dev/network-game/internal/domain"
)

func TestLegalMovesOnEmptyBoard(t *testing.T) {
	b := NewBoard()
	for _, player := range []domain.Player{domain.Black, domain.White} {
		moves := b.LegalMoves(player)
		// Six usable lines of eight cells each.
		assert.Len(t, moves, 48)
		for _, m := range moves {
			assert.Equal(t, domain.Add, m.Kind)
		}
	}
}

func TestLegalMovesRelocationPhase(t *testing.T) {
	b := boardWith(tenBlack()...)
	moves := b.LegalMoves(domain.Black)
	require.NotEmpty(t, moves)
	for _, m := range moves {
		assert.Equal(t, domain.Step, m.Kind)
		src, ok := b.PieceAt(int(m.From.X), int(m.From.Y))
		require.True(t, ok)
		assert.Equal(t, domain.Black, src.Owner())
	}
	assert.Contains(t, moves, domain.StepMove(2, 7, 1, 1))
	assert.Contains(t, moves, domain.StepMove(6, 6, 6, 7))
	assert.NotContains(t, moves, domain.StepMove(2, 2, 1, 1))
}

func TestLegalMovesAgreeWithIsLegal(t *testing.T) {
	for _, seed := range []int64{8, 64, 512} {
		playout(t, seed, 50, func(b *Board, player domain.Player) {
			moves := b.LegalMoves(player)
			listed := make(map[domain.Move]bool, len(moves))
			for _, m := range moves {
				require.False(t, listed[m], "duplicate move %v", m)
				listed[m] = true
				require.True(t, b.IsLegal(m, player), "listed move %v is illegal", m)
			}
			for _, m := range everyMove() {
				if b.IsLegal(m, player) {
					require.True(t, listed[m], "legal move %v missing\n%s", m, b)
				}
			}
		})
	}
}

// everyMove lists every placement and relocation between on-board cells.
func everyMove() []domain.Move {
	var moves []domain.Move
	for x := 0; x < boardSize; x++ {
		for y := 0; y < boardSize; y++ {
			moves = append(moves, domain.AddMove(x, y))
			for fx := 0; fx < boardSize; fx++ {
				for fy := 0; fy < boardSize; fy++ {
					moves = append(moves, domain.StepMove(x, y, fx, fy))
				}
			}
		}
	}
	return moves
}
