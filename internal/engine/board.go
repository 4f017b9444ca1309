package engine

import (
	"strings"

	"github.com/kiryu-dev/network-game/internal/domain"
)

const (
	// MaxPieces is the number of chips each player may have on the board.
	MaxPieces = 10
	// NetworkSize is the number of pieces in a winning network.
	NetworkSize = 6

	boardSize = domain.BoardSize
	arenaSize = 2*MaxPieces + 1
)

// Board is the grid, the piece arena and the per-player piece counts.
// The zero value is an empty board. A Board is not safe for concurrent use;
// parallel searches work on Clone copies.
type Board struct {
	grid   [boardSize][boardSize]pieceID
	pieces [arenaSize]Piece
	alive  [arenaSize]bool
	counts [2]int
}

func NewBoard() *Board {
	return &Board{}
}

// Clone returns an independent copy. Board holds arrays only, so a value
// copy is deep.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// Apply plays a move that IsLegal has already accepted. Illegal moves leave
// the board in an unspecified state.
func (b *Board) Apply(m domain.Move, player domain.Player) {
	switch m.Kind {
	case domain.Add:
		id := b.alloc(player)
		b.put(m.To, id)
		b.counts[player]++
	case domain.Step:
		id := b.take(m.From)
		b.put(m.To, id)
	}
}

// Undo reverses m, which must be the last move applied.
func (b *Board) Undo(m domain.Move) {
	switch m.Kind {
	case domain.Add:
		id := b.take(m.To)
		if id == noPiece {
			return
		}
		b.counts[b.pieces[id].owner]--
		b.release(id)
	case domain.Step:
		id := b.take(m.To)
		b.put(m.From, id)
	}
}

func (b *Board) Count(player domain.Player) int {
	return b.counts[player]
}

func (b *Board) PieceAt(x, y int) (Piece, bool) {
	if !inBounds(x, y) {
		return Piece{}, false
	}
	id := b.grid[x][y]
	if id == noPiece {
		return Piece{}, false
	}
	return b.pieces[id], true
}

// LinkAt returns the piece linked to the piece at (x, y) in direction d.
func (b *Board) LinkAt(x, y int, d Direction) (Piece, bool) {
	if !inBounds(x, y) || d < 0 || d >= NumDirections {
		return Piece{}, false
	}
	id := b.grid[x][y]
	if id == noPiece {
		return Piece{}, false
	}
	other := b.pieces[id].links[d]
	if other == noPiece {
		return Piece{}, false
	}
	return b.pieces[other], true
}

// Pieces lists every piece on the board in column-major order.
func (b *Board) Pieces() []Piece {
	out := make([]Piece, 0, b.counts[0]+b.counts[1])
	for x := 0; x < boardSize; x++ {
		for y := 0; y < boardSize; y++ {
			if id := b.grid[x][y]; id != noPiece {
				out = append(out, b.pieces[id])
			}
		}
	}
	return out
}

func (b *Board) String() string {
	var sb strings.Builder
	for y := 0; y < boardSize; y++ {
		for x := 0; x < boardSize; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteByte(b.symbol(x, y))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (b *Board) symbol(x, y int) byte {
	id := b.grid[x][y]
	switch {
	case id == noPiece:
		return '.'
	case b.pieces[id].owner == domain.White:
		return 'W'
	default:
		return 'B'
	}
}

func (b *Board) alloc(player domain.Player) pieceID {
	for id := pieceID(1); id < arenaSize; id++ {
		if !b.alive[id] {
			b.alive[id] = true
			b.pieces[id] = Piece{owner: player}
			return id
		}
	}
	panic("engine: piece arena exhausted")
}

func (b *Board) release(id pieceID) {
	b.alive[id] = false
	b.pieces[id] = Piece{}
}

func (b *Board) put(c domain.Cell, id pieceID) {
	if id == noPiece {
		return
	}
	b.pieces[id].reset(c)
	b.grid[c.X][c.Y] = id
	b.recomputeLinks(c)
}

func (b *Board) take(c domain.Cell) pieceID {
	id := b.grid[c.X][c.Y]
	b.grid[c.X][c.Y] = noPiece
	b.recomputeLinks(c)
	return id
}

func (b *Board) at(x, y int) pieceID {
	return b.grid[x][y]
}

func inBounds(x, y int) bool {
	return x >= 0 && x < boardSize && y >= 0 && y < boardSize
}
