package engine

import (
	"github.com/kiryu-dev/network-game/internal/domain"
)

// IsLegal reports whether player may make move m on the current board.
func (b *Board) IsLegal(m domain.Move, player domain.Player) bool {
	if m.Kind == domain.Quit {
		return true
	}
	if player != domain.Black && player != domain.White {
		return false
	}
	if m.Kind != domain.Add && m.Kind != domain.Step {
		return false
	}
	if !m.To.InBounds() || m.To.IsCorner() || inForbiddenZone(m.To, player) {
		return false
	}
	if b.at(int(m.To.X), int(m.To.Y)) != noPiece {
		return false
	}
	count := b.counts[player]
	if m.Kind == domain.Add {
		if count >= MaxPieces {
			return false
		}
		if count == 0 {
			return true
		}
	} else {
		if count < MaxPieces || !m.From.InBounds() || m.From == m.To {
			return false
		}
		src := b.at(int(m.From.X), int(m.From.Y))
		if src == noPiece || b.pieces[src].owner != player {
			return false
		}
	}
	return !b.formsCluster(m, player)
}

// inForbiddenZone reports whether c lies on the opponent's goal edges.
// Black connects the top and bottom rows, White the left and right columns.
func inForbiddenZone(c domain.Cell, player domain.Player) bool {
	if player == domain.Black {
		return c.X == 0 || c.X == boardSize-1
	}
	return c.Y == 0 || c.Y == boardSize-1
}

// formsCluster reports whether the piece m puts on m.To would join two or
// more same-owner pieces into a group of three. Pieces arrive one at a time,
// so it is enough to look at the target's neighbours and, if there is just
// one, at that neighbour's neighbours.
func (b *Board) formsCluster(m domain.Move, player domain.Player) bool {
	skip := domain.Cell{X: -1, Y: -1}
	if m.Kind == domain.Step {
		skip = m.From
	}
	neighbours := b.ownNeighbours(m.To, player, skip, domain.Cell{X: -1, Y: -1})
	switch len(neighbours) {
	case 0:
		return false
	case 1:
		return len(b.ownNeighbours(neighbours[0], player, skip, m.To)) > 0
	default:
		return true
	}
}

// ownNeighbours collects the cells around c holding player's pieces,
// ignoring skipA and skipB. It stops early once two are found.
func (b *Board) ownNeighbours(c domain.Cell, player domain.Player, skipA, skipB domain.Cell) []domain.Cell {
	found := make([]domain.Cell, 0, 2)
	for dx := int8(-1); dx <= 1; dx++ {
		for dy := int8(-1); dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			n := domain.Cell{X: c.X + dx, Y: c.Y + dy}
			if !n.InBounds() || n == skipA || n == skipB {
				continue
			}
			id := b.at(int(n.X), int(n.Y))
			if id == noPiece || b.pieces[id].owner != player {
				continue
			}
			found = append(found, n)
			if len(found) > 1 {
				return found
			}
		}
	}
	return found
}
