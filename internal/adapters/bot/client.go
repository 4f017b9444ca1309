// Package bot provides an in-process opponent that speaks the same message
// protocol as a websocket client and picks its moves with a searcher.
package bot

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/kiryu-dev/network-game/internal/domain"
	"github.com/kiryu-dev/network-game/internal/engine"
	"github.com/kiryu-dev/network-game/pkg/utils"
)

const repliesBufSize = 1

type searcher interface {
	BestMove(ctx context.Context, board *engine.Board, player domain.Player) (domain.Move, error)
}

type client struct {
	uuid    string
	search  searcher
	board   *engine.Board
	player  domain.Player
	replies chan domain.Message
	logger  *zap.Logger
}

func New(search searcher, logger *zap.Logger) *client {
	id := "bot-" + uuid.NewString()
	return &client{
		uuid:    id,
		search:  search,
		board:   engine.NewBoard(),
		replies: make(chan domain.Message, repliesBufSize),
		logger:  logger.With(zap.String("bot", id)),
	}
}

func (c *client) Uuid() string {
	return c.uuid
}

// WriteMessage mirrors the game on the bot's own board and queues a reply
// whenever a move is requested.
func (c *client) WriteMessage(msg domain.Message) error {
	switch msg.Type {
	case domain.StartGame:
		v, err := utils.UnmarshalJson[domain.StartGamePayload](msg.Payload)
		if err != nil {
			return errors.WithMessage(err, "unmarshal json to 'StartGamePayload' type")
		}
		c.player = v.Player
		c.board = engine.NewBoard()
	case domain.RequestMove:
		c.reply()
	case domain.PlayerMove:
		v, err := utils.UnmarshalJson[domain.PlayerMovePayload](msg.Payload)
		if err != nil {
			return errors.WithMessage(err, "unmarshal json to 'PlayerMovePayload' type")
		}
		c.board.Apply(v.Move, v.Player)
		if v.GameResult != nil {
			c.logger.Info("game over", zap.String("result", *v.GameResult))
			return nil
		}
		if v.IsMoveRequested {
			c.reply()
		}
	case domain.Walkover:
		c.logger.Info("opponent left")
	}
	return nil
}

// ReadMessage never blocks: the reply to a request is queued by the time
// the game reads it, so an empty queue means the bot has nothing more to say.
func (c *client) ReadMessage() (domain.Message, error) {
	select {
	case msg := <-c.replies:
		return msg, nil
	default:
		return domain.Message{}, errors.WithMessage(domain.ErrConnectionClosed, "bot has no pending move")
	}
}

func (c *client) reply() {
	move, err := c.search.BestMove(context.Background(), c.board, c.player)
	if err != nil {
		c.logger.Warn("search failed, resigning", zap.Error(err))
		move = domain.QuitMove()
	}
	c.replies <- domain.Message{
		Type: domain.PlayerMove,
		Payload: domain.PlayerMovePayload{
			Player: c.player,
			Move:   move,
		},
	}
}
