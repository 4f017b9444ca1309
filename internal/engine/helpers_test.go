package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kiryu-dev/network-game/internal/domain"
)

type placement struct {
	x, y   int
	player domain.Player
}

// boardWith places pieces without consulting the rules.
func boardWith(pieces ...placement) *Board {
	b := NewBoard()
	for _, p := range pieces {
		b.Apply(domain.AddMove(p.x, p.y), p.player)
	}
	return b
}

func black(x, y int) placement {
	return placement{x: x, y: y, player: domain.Black}
}

func white(x, y int) placement {
	return placement{x: x, y: y, player: domain.White}
}

var noCell = domain.Cell{X: -1, Y: -1}

type snapshot struct {
	symbols [boardSize][boardSize]byte
	counts  [2]int
	links   [boardSize][boardSize][NumDirections]domain.Cell
}

func takeSnapshot(b *Board) snapshot {
	var s snapshot
	s.counts = b.counts
	for x := 0; x < boardSize; x++ {
		for y := 0; y < boardSize; y++ {
			s.symbols[x][y] = b.symbol(x, y)
			for d := Direction(0); d < NumDirections; d++ {
				s.links[x][y][d] = noCell
				if p, ok := b.LinkAt(x, y, d); ok {
					s.links[x][y][d] = p.Cell()
				}
			}
		}
	}
	return s
}

// rebuilt places the pieces of b one by one on a fresh board, which gives
// the link graph the current occupancy must have.
func rebuilt(b *Board) *Board {
	fresh := NewBoard()
	for _, p := range b.Pieces() {
		fresh.Apply(domain.AddMove(p.X(), p.Y()), p.Owner())
	}
	return fresh
}

// playout plays random legal moves and calls visit before every move and
// once more at the end. It stops early once a player has a network.
func playout(t *testing.T, seed int64, plies int, visit func(b *Board, toMove domain.Player)) {
	t.Helper()
	rnd := rand.New(rand.NewSource(seed))
	b := NewBoard()
	player := domain.Black
	for i := 0; i < plies; i++ {
		visit(b, player)
		moves := b.LegalMoves(player)
		require.NotEmpty(t, moves, "no legal moves for %v at ply %d\n%s", player, i, b)
		b.Apply(moves[rnd.Intn(len(moves))], player)
		player = player.Opponent()
		if b.HasNetwork(domain.Black) || b.HasNetwork(domain.White) {
			break
		}
	}
	visit(b, player)
}
