package game

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/kiryu-dev/network-game/internal/config"
	"github.com/kiryu-dev/network-game/internal/domain"
	"github.com/kiryu-dev/network-game/pkg/utils"
)

type useCase struct {
	maxRounds int
	logger    *zap.Logger
}

func New(cfg config.Game, logger *zap.Logger) useCase {
	return useCase{
		maxRounds: cfg.MaxRounds,
		logger:    logger,
	}
}

func (u useCase) Play(ctx context.Context, seat domain.Seat, state *domain.GameState) error {
	defer state.Finish()
	if err := startGame(seat, state); err != nil {
		return errors.WithMessage(err, "start game")
	}
	if seat.Player() == domain.White {
		if err := seat.MakeMove(ctx, domain.TurnMove{Status: domain.NoneMove}); err != nil {
			return walkover(seat, err)
		}
	}
	for {
		var v domain.TurnMove
		select {
		case <-ctx.Done():
			return errors.WithMessage(ctx.Err(), "wait for opponent move")
		case <-seat.GameFinished():
			return walkover(seat, domain.ErrGameFinished)
		case v = <-seat.GetEnemyMove():
		}
		switch v.Status {
		case domain.NoneMove:
			if err := seat.SendMessage(domain.Message{Type: domain.RequestMove}); err != nil {
				return errors.WithMessage(err, "send message to player")
			}
		case domain.MoveBlack, domain.MoveWhite:
			err := sendMoveMessage(seat, state, v.Move, domain.WithPlayer(v.Player), domain.RequestMoveBack())
			if err != nil {
				return errors.WithMessage(err, "send message")
			}
		case domain.Disconnect:
			return walkover(seat, domain.ErrGameFinished)
		default:
			gameResult, err := toGameResult(v.Status, seat)
			if err != nil {
				return errors.WithMessage(err, "to game result")
			}
			err = sendMoveMessage(seat, state, v.Move, domain.WithPlayer(v.Player),
				domain.WithGameResult(gameResult), domain.WithNetwork(v.Network))
			if err != nil {
				return errors.WithMessage(err, "send move message")
			}
			return nil
		}
		move, err := receiveMoveMessage(seat, state)
		switch {
		case errors.Is(err, domain.ErrConnectionClosed):
			err := seat.MakeMove(ctx, domain.TurnMove{Player: seat.Player(), Status: domain.Disconnect})
			if err != nil && !errors.Is(err, domain.ErrGameFinished) {
				return errors.WithMessage(err, "report disconnect")
			}
			return nil
		case err != nil:
			return errors.WithMessage(err, "receive move message")
		}
		moveStatus, network := u.executeMove(move, seat.Player(), state)
		u.logger.Debug("move executed",
			zap.String("game uuid", seat.GameUuid()),
			zap.Stringer("player", seat.Player()),
			zap.Stringer("move", move),
			zap.String("board", state.BoardString()),
		)
		err = seat.MakeMove(ctx, domain.TurnMove{
			Player:  seat.Player(),
			Move:    move,
			Status:  moveStatus,
			Network: network,
		})
		if err != nil {
			return walkover(seat, err)
		}
		gameResult, err := toGameResult(moveStatus, seat)
		switch {
		case errors.Is(err, errUnexpectedMoveStatus):
			/* the game isn't over, it's still in progress */
			if err := sendMoveMessage(seat, state, move); err != nil {
				return errors.WithMessage(err, "send move message")
			}
		case err != nil:
			return errors.WithMessage(err, "to game result")
		default:
			err := sendMoveMessage(seat, state, move, domain.WithGameResult(gameResult), domain.WithNetwork(network))
			if err != nil {
				return errors.WithMessage(err, "send move message")
			}
			u.logger.Info("game finished",
				zap.String("game uuid", seat.GameUuid()),
				zap.String("result", gameResult),
				zap.Stringer("player", seat.Player()),
			)
			return nil
		}
	}
}

// walkover ends the game for a seat whose opponent is gone. Any other
// handover failure is returned as is.
func walkover(seat domain.Seat, err error) error {
	if !errors.Is(err, domain.ErrGameFinished) {
		return errors.WithMessage(err, "make move")
	}
	err = seat.SendMessage(domain.Message{
		Type:    domain.Walkover,
		Payload: domain.WalkoverPayload{GameResult: WalkoverGameResult},
	})
	if err != nil {
		return errors.WithMessage(err, "send message to player")
	}
	return nil
}

func startGame(seat domain.Seat, state *domain.GameState) error {
	err := seat.SendMessage(domain.Message{
		Type: domain.StartGame,
		Payload: domain.StartGamePayload{
			Player: seat.Player(),
			Board:  state.BoardString(),
		},
	})
	if err != nil {
		return errors.WithMessage(err, "send message to player")
	}
	return nil
}

func sendMoveMessage(seat domain.Seat, state *domain.GameState, move domain.Move,
	opts ...domain.PlayerMovePayloadOption) error {
	payload := &domain.PlayerMovePayload{
		Player: seat.Player(),
		Move:   move,
		Board:  state.BoardString(),
	}
	for _, opt := range opts {
		opt(payload)
	}
	err := seat.SendMessage(domain.Message{
		Type:    domain.PlayerMove,
		Payload: payload,
	})
	if err != nil {
		return errors.WithMessage(err, "send message to player")
	}
	return nil
}

func receiveMoveMessage(seat domain.Seat, state *domain.GameState) (domain.Move, error) {
	for {
		msg, err := seat.ReceiveMessage()
		switch {
		case errors.Is(err, domain.ErrEmptyMessage):
			if err := seat.SendMessage(domain.Message{Type: domain.RequestMove}); err != nil {
				return domain.Move{}, errors.WithMessage(err, "send message to player")
			}
			continue
		case err != nil:
			return domain.Move{}, errors.WithMessage(err, "read message from player")
		}
		if msg.Type != domain.PlayerMove {
			return domain.Move{}, errors.WithMessagef(errUnexpectedMessage, "type %d", msg.Type)
		}
		payload, err := utils.UnmarshalJson[domain.PlayerMovePayload](msg.Payload)
		if err != nil {
			return domain.Move{}, errors.WithMessage(err, "unmarshal player's move")
		}
		err = validateMove(state, payload.Move, seat.Player())
		switch {
		case errors.Is(err, errIllegalMove):
			if err := seat.SendMessage(domain.Message{Type: domain.RequestMove}); err != nil {
				return domain.Move{}, errors.WithMessage(err, "send message to player")
			}
		case err != nil:
			return domain.Move{}, errors.WithMessage(err, "validate player's move")
		default:
			return payload.Move, nil
		}
	}
}

func validateMove(state *domain.GameState, move domain.Move, player domain.Player) error {
	if !state.Board.IsLegal(move, player) {
		return errors.WithMessagef(errIllegalMove, "%v by %v", move, player)
	}
	return nil
}

// executeMove commits the move and decides the outcome. A network for the
// mover wins before one it opened up for the opponent.
func (u useCase) executeMove(move domain.Move, player domain.Player, state *domain.GameState) (domain.MoveStatus, []domain.Cell) {
	if move.Kind == domain.Quit {
		state.Apply(move, player)
		return domain.WinStatusOf(player.Opponent()), nil
	}
	state.Apply(move, player)
	if network := state.Board.NetworkCells(player); network != nil {
		return domain.WinStatusOf(player), network
	}
	if network := state.Board.NetworkCells(player.Opponent()); network != nil {
		return domain.WinStatusOf(player.Opponent()), network
	}
	if state.Rounds() >= u.maxRounds {
		return domain.Draw, nil
	}
	return domain.MoveStatusOf(player), nil
}

const (
	WinGameResult      = "Victory"
	LoseGameResult     = "Defeat"
	DrawGameResult     = "Draw"
	WalkoverGameResult = "Walkover (opponent disconnected)"
)

func toGameResult(status domain.MoveStatus, seat domain.Seat) (string, error) {
	winner := domain.White
	switch status {
	case domain.WinBlack:
		winner = domain.Black
		fallthrough
	case domain.WinWhite:
		if seat.Player() != winner {
			return LoseGameResult, nil
		}
		return WinGameResult, nil
	case domain.Draw:
		return DrawGameResult, nil
	case domain.Disconnect:
		return WalkoverGameResult, nil
	default:
		return "", errUnexpectedMoveStatus
	}
}
