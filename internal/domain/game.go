package domain

import (
	"context"
	"fmt"
	"sync"
)

const BoardSize = 8

type Player byte

const (
	Black = Player(iota)
	White
)

func (p Player) Opponent() Player {
	return 1 - p
}

func (p Player) String() string {
	switch p {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return fmt.Sprintf("player(%d)", byte(p))
	}
}

type Cell struct {
	X int8
	Y int8
}

func (c Cell) InBounds() bool {
	return c.X >= 0 && c.X < BoardSize && c.Y >= 0 && c.Y < BoardSize
}

func (c Cell) IsCorner() bool {
	return (c.X == 0 || c.X == BoardSize-1) && (c.Y == 0 || c.Y == BoardSize-1)
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

type MoveKind byte

// The zero Move is Quit, so a move decoded from an empty payload never
// places a piece.
const (
	Quit = MoveKind(iota)
	Add
	Step
)

type Move struct {
	Kind MoveKind
	To   Cell
	From Cell
}

func QuitMove() Move {
	return Move{Kind: Quit}
}

func AddMove(x, y int) Move {
	return Move{Kind: Add, To: Cell{X: int8(x), Y: int8(y)}}
}

func StepMove(x, y, fromX, fromY int) Move {
	return Move{
		Kind: Step,
		To:   Cell{X: int8(x), Y: int8(y)},
		From: Cell{X: int8(fromX), Y: int8(fromY)},
	}
}

func (m Move) String() string {
	switch m.Kind {
	case Quit:
		return "quit"
	case Add:
		return "add " + m.To.String()
	case Step:
		return "step " + m.From.String() + "->" + m.To.String()
	default:
		return fmt.Sprintf("move(%d)", byte(m.Kind))
	}
}

type MoveStatus byte

const (
	NoneMove = MoveStatus(iota)
	MoveBlack
	MoveWhite
	Draw
	WinBlack
	WinWhite
	Disconnect
)

func MoveStatusOf(p Player) MoveStatus {
	if p == White {
		return MoveWhite
	}
	return MoveBlack
}

func WinStatusOf(p Player) MoveStatus {
	if p == White {
		return WinWhite
	}
	return WinBlack
}

// TurnMove is what one player's goroutine hands to the other.
type TurnMove struct {
	Player  Player
	Move    Move
	Status  MoveStatus
	Network []Cell
}

// Rules is the engine contract the game loop drives.
type Rules interface {
	Apply(move Move, player Player)
	Undo(move Move)
	IsLegal(move Move, player Player) bool
	LegalMoves(player Player) []Move
	NetworkCells(player Player) []Cell
	String() string
}

type status byte

const (
	ReadyToStart = status(iota)
	InProgress
	Finished
)

type GameState struct {
	Board       Rules
	Moves       []Move
	PlayerBlack string
	PlayerWhite string
	CurrentMove Player
	Status      status
	Round       int
	MoveChan    chan TurnMove
	done        chan struct{}
	mu          sync.Mutex
}

func NewGameState(board Rules, playerBlack, playerWhite string) *GameState {
	return &GameState{
		Board:       board,
		PlayerBlack: playerBlack,
		PlayerWhite: playerWhite,
		CurrentMove: Black,
		Status:      ReadyToStart,
		MoveChan:    make(chan TurnMove),
		done:        make(chan struct{}),
	}
}

// GameSummary is a copy of the state that is safe to hand out while the
// game is still being played.
type GameSummary struct {
	Uuid        string
	PlayerBlack string
	PlayerWhite string
	CurrentMove Player
	Status      status
	Round       int
	Moves       []Move
	Board       string
}

// Apply commits an already validated move to the board and the history.
func (s *GameState) Apply(move Move, player Player) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Board.Apply(move, player)
	s.Moves = append(s.Moves, move)
	s.Round++
	s.CurrentMove = player.Opponent()
	s.Status = InProgress
}

// Finish marks the game over and releases any seat still waiting on it.
func (s *GameState) Finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Status == Finished {
		return
	}
	s.Status = Finished
	close(s.doneLocked())
}

// Done is closed once the game is finished.
func (s *GameState) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doneLocked()
}

func (s *GameState) doneLocked() chan struct{} {
	if s.done == nil {
		s.done = make(chan struct{})
	}
	return s.done
}

func (s *GameState) IsFinished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Status == Finished
}

// BoardString renders the board under the state lock, since the opposing
// seat may be applying a move at the same time.
func (s *GameState) BoardString() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Board.String()
}

func (s *GameState) Rounds() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Round
}

func (s *GameState) Summary(uuid string) GameSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	moves := make([]Move, len(s.Moves))
	copy(moves, s.Moves)
	return GameSummary{
		Uuid:        uuid,
		PlayerBlack: s.PlayerBlack,
		PlayerWhite: s.PlayerWhite,
		CurrentMove: s.CurrentMove,
		Status:      s.Status,
		Round:       s.Round,
		Moves:       moves,
		Board:       s.Board.String(),
	}
}

type GameUseCase interface {
	Play(ctx context.Context, seat Seat, state *GameState) error
}
