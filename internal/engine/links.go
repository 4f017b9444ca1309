package engine

import (
	"github.com/kiryu-dev/network-game/internal/domain"
)

// axes are the forward halves of the four lines through a cell.
var axes = [...]Direction{North, NorthEast, East, SouthEast}

// recomputeLinks rewires the four lines through c after its occupancy
// changed. An occupied cell sits between its nearest neighbours on each
// line; an empty one lets them see each other.
func (b *Board) recomputeLinks(c domain.Cell) {
	x, y := int(c.X), int(c.Y)
	mid := b.at(x, y)
	for _, d := range axes {
		ahead := b.scan(x, y, d)
		behind := b.scan(x, y, d.Opposite())
		if mid == noPiece {
			b.link(behind, ahead, d)
			continue
		}
		b.link(behind, mid, d)
		b.link(mid, ahead, d)
	}
}

// link makes from see to in direction d and to see from the opposite way.
// Either side may be noPiece, which clears the other side's slot.
func (b *Board) link(from, to pieceID, d Direction) {
	if from != noPiece {
		b.pieces[from].link(to, d)
	}
	if to != noPiece {
		b.pieces[to].link(from, d.Opposite())
	}
}

// scan returns the first piece strictly beyond (x, y) in direction d.
func (b *Board) scan(x, y int, d Direction) pieceID {
	dx, dy := int(deltas[d][0]), int(deltas[d][1])
	for i, j := x+dx, y+dy; inBounds(i, j); i, j = i+dx, j+dy {
		if id := b.at(i, j); id != noPiece {
			return id
		}
	}
	return noPiece
}
