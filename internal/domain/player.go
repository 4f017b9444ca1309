package domain

import (
	"context"

	"github.com/pkg/errors"
)

var ErrGameFinished = errors.New("game finished")

// Seat is one connected client's place in a game.
type Seat struct {
	uuid      string
	gameUuid  string
	playerCli Client
	player    Player
	ch        chan TurnMove
	done      <-chan struct{}
}

func NewSeat(gameUuid string, cli Client, player Player, state *GameState) Seat {
	return Seat{
		uuid:      cli.Uuid(),
		gameUuid:  gameUuid,
		playerCli: cli,
		player:    player,
		ch:        state.MoveChan,
		done:      state.Done(),
	}
}

func (s Seat) Uuid() string {
	return s.uuid
}

func (s Seat) GameUuid() string {
	return s.gameUuid
}

func (s Seat) SendMessage(msg Message) error {
	return s.playerCli.WriteMessage(msg)
}

func (s Seat) ReceiveMessage() (Message, error) {
	return s.playerCli.ReadMessage()
}

func (s Seat) Player() Player {
	return s.player
}

func (s Seat) GetEnemyMove() <-chan TurnMove {
	return s.ch
}

// GameFinished is closed when the game ends, including when the other seat
// leaves it early.
func (s Seat) GameFinished() <-chan struct{} {
	return s.done
}

// MakeMove hands the turn to the other seat. It gives up with ErrGameFinished
// once nobody is left to take it, or with the context's error.
func (s Seat) MakeMove(ctx context.Context, move TurnMove) error {
	select {
	case s.ch <- move:
		return nil
	case <-s.done:
		return ErrGameFinished
	case <-ctx.Done():
		return errors.WithMessage(ctx.Err(), "hand over move")
	}
}
