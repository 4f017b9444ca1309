package engine

import (
	"github.com/samber/lo"

	"github.com/kiryu-dev/network-game/internal/domain"
)

// path holds the pieces of a network under construction. A player never has
// more than MaxPieces pieces, so a fixed buffer is enough.
type path [MaxPieces]pieceID

// WinningNetwork returns the pieces of a six-piece network for player, from
// the starting goal edge to the opposite one, or nil if there is none.
// Consecutive pieces are linked, no piece repeats and the path never leaves
// a piece in the direction it entered it.
func (b *Board) WinningNetwork(player domain.Player) []Piece {
	var p path
	if !b.findNetwork(player, &p) {
		return nil
	}
	out := make([]Piece, NetworkSize)
	for i := range out {
		out[i] = b.pieces[p[i]]
	}
	return out
}

// NetworkCells is WinningNetwork reduced to the cells it occupies.
func (b *Board) NetworkCells(player domain.Player) []domain.Cell {
	network := b.WinningNetwork(player)
	if network == nil {
		return nil
	}
	return lo.Map(network, func(p Piece, _ int) domain.Cell {
		return p.Cell()
	})
}

func (b *Board) HasNetwork(player domain.Player) bool {
	var p path
	return b.findNetwork(player, &p)
}

func (b *Board) findNetwork(player domain.Player, p *path) bool {
	if b.counts[player] < NetworkSize {
		return false
	}
	for i := 1; i < boardSize-1; i++ {
		x, y := i, 0
		if player == domain.White {
			x, y = 0, i
		}
		start := b.at(x, y)
		if start == noPiece || b.pieces[start].owner != player {
			continue
		}
		p[0] = start
		if b.extend(player, p, 1, noDirection) {
			return true
		}
	}
	return false
}

// extend grows p, which holds depth pieces and was entered along arrived,
// until it holds NetworkSize pieces ending on the far goal edge.
func (b *Board) extend(player domain.Player, p *path, depth int, arrived Direction) bool {
	cur := p[depth-1]
	if depth == NetworkSize {
		return onFarEdge(b.pieces[cur], player)
	}
	for d := Direction(0); d < NumDirections; d++ {
		if d == arrived {
			continue
		}
		next := b.pieces[cur].links[d]
		if next == noPiece || b.pieces[next].owner != player || used(p, depth, next) {
			continue
		}
		p[depth] = next
		if b.extend(player, p, depth+1, d) {
			return true
		}
	}
	return false
}

func used(p *path, depth int, id pieceID) bool {
	for i := 0; i < depth; i++ {
		if p[i] == id {
			return true
		}
	}
	return false
}

func onFarEdge(p Piece, player domain.Player) bool {
	if player == domain.White {
		return p.x == boardSize-1
	}
	return p.y == boardSize-1
}
