package domain

import (
	"github.com/pkg/errors"
)

var (
	ErrConnectionClosed = errors.New("connection closed")
	ErrEmptyMessage     = errors.New("empty message")
)

const (
	ClientUuidHeader = "X-Client-Key"
	OpponentQuery    = "opponent"
)

type messageType byte

const (
	StartGame = messageType(iota)
	RequestMove
	PlayerMove
	Walkover
)

type Message struct {
	Type    messageType
	Payload any
}

type StartGamePayload struct {
	Player Player
	Board  string
}

type PlayerMovePayload struct {
	Player          Player
	Move            Move
	Board           string
	IsMoveRequested bool
	GameResult      *string
	Network         []Cell
}

type WalkoverPayload struct {
	GameResult string
}

type PlayerMovePayloadOption func(p *PlayerMovePayload)

func RequestMoveBack() PlayerMovePayloadOption {
	return func(p *PlayerMovePayload) {
		p.IsMoveRequested = true
	}
}

func WithGameResult(gameResultMsg string) PlayerMovePayloadOption {
	return func(p *PlayerMovePayload) {
		p.GameResult = &gameResultMsg
	}
}

func WithPlayer(player Player) PlayerMovePayloadOption {
	return func(p *PlayerMovePayload) {
		p.Player = player
	}
}

func WithNetwork(cells []Cell) PlayerMovePayloadOption {
	return func(p *PlayerMovePayload) {
		p.Network = cells
	}
}

func WithBoard(board string) PlayerMovePayloadOption {
	return func(p *PlayerMovePayload) {
		p.Board = board
	}
}

type Client interface {
	WriteMessage(msg Message) error
	ReadMessage() (Message, error)
	Uuid() string
}

type HealthCheckResponse struct {
	Status      string
	ActiveGames int
}
