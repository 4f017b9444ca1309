// Package engine holds the rules and state of the Network board game:
// piece placement and relocation, the cluster rule, the directional link
// graph and the search for a winning six-piece network.
package engine

import (
	"github.com/kiryu-dev/network-game/internal/domain"
)

type Direction int8

const (
	North = Direction(iota)
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
	NumDirections

	noDirection = NumDirections
)

var deltas = [NumDirections][2]int8{
	North:     {0, -1},
	NorthEast: {1, -1},
	East:      {1, 0},
	SouthEast: {1, 1},
	South:     {0, 1},
	SouthWest: {-1, 1},
	West:      {-1, 0},
	NorthWest: {-1, -1},
}

var directionNames = [NumDirections]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

func (d Direction) Opposite() Direction {
	return (d + NumDirections/2) % NumDirections
}

func (d Direction) String() string {
	if d < 0 || d >= NumDirections {
		return "none"
	}
	return directionNames[d]
}

// pieceID addresses a slot of the board's piece arena. Slot zero is never
// handed out, so the zero value means "no piece".
type pieceID uint8

const noPiece = pieceID(0)

// Piece is one chip on the board. Its links name, per direction, the
// nearest piece of either owner seen along that line.
type Piece struct {
	x     int8
	y     int8
	owner domain.Player
	links [NumDirections]pieceID
}

func (p Piece) X() int {
	return int(p.x)
}

func (p Piece) Y() int {
	return int(p.y)
}

func (p Piece) Owner() domain.Player {
	return p.owner
}

func (p Piece) Cell() domain.Cell {
	return domain.Cell{X: p.x, Y: p.y}
}

// LinkCount reports how many of the eight directions see another piece.
func (p Piece) LinkCount() int {
	n := 0
	for _, id := range p.links {
		if id != noPiece {
			n++
		}
	}
	return n
}

func (p *Piece) link(other pieceID, d Direction) {
	p.links[d] = other
}

func (p *Piece) reset(c domain.Cell) {
	p.x, p.y = c.X, c.Y
	p.links = [NumDirections]pieceID{}
}
