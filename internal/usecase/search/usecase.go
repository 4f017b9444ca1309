package search

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"github.com/kiryu-dev/network-game/internal/config"
	"github.com/kiryu-dev/network-game/internal/domain"
	"github.com/kiryu-dev/network-game/internal/engine"
)

type useCase struct {
	cfg    config.Search
	logger *zap.Logger
}

func New(cfg config.Search, logger *zap.Logger) *useCase {
	return &useCase{
		cfg:    cfg,
		logger: logger,
	}
}

// BestMove runs a depth-limited alpha-beta search for player. The board is
// left as it was found. When the configured timeout expires the best move
// among the fully searched root moves is returned.
func (u *useCase) BestMove(ctx context.Context, board *engine.Board, player domain.Player) (domain.Move, error) {
	moves := board.LegalMoves(player)
	if len(moves) == 0 {
		return domain.QuitMove(), ErrNoMoves
	}
	for _, m := range moves {
		board.Apply(m, player)
		won := board.HasNetwork(player)
		board.Undo(m)
		if won {
			return m, nil
		}
	}
	frand.Shuffle(len(moves), func(i, j int) {
		moves[i], moves[j] = moves[j], moves[i]
	})

	if u.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.cfg.Timeout)
		defer cancel()
	}
	var (
		started = time.Now()
		nodes   = atomic.NewInt64(0)
		next    = atomic.NewInt64(-1)
		scores  = make([]int, len(moves))
		done    = make([]bool, len(moves))
	)
	group, groupCtx := errgroup.WithContext(ctx)
	for w := 0; w < u.workers(len(moves)); w++ {
		group.Go(func() error {
			b := board.Clone()
			for {
				i := int(next.Inc())
				if i >= len(moves) {
					return nil
				}
				b.Apply(moves[i], player)
				score, err := u.minimax(groupCtx, b, player, player.Opponent(), u.cfg.Depth-1,
					engine.LossScore, engine.WinScore, nodes)
				b.Undo(moves[i])
				if err != nil {
					return err
				}
				scores[i], done[i] = score, true
			}
		})
	}
	err := group.Wait()
	switch {
	case err == nil, errors.Is(err, context.DeadlineExceeded):
	default:
		return domain.QuitMove(), errors.WithMessage(err, "search root moves")
	}

	best, bestScore, searched := moves[0], engine.LossScore, 0
	for i, m := range moves {
		if !done[i] {
			continue
		}
		if searched == 0 || scores[i] > bestScore {
			best, bestScore = m, scores[i]
		}
		searched++
	}
	u.logger.Debug("search finished",
		zap.Stringer("player", player),
		zap.Stringer("move", best),
		zap.Int("score", bestScore),
		zap.Int("searched", searched),
		zap.Int("candidates", len(moves)),
		zap.Int64("nodes", nodes.Load()),
		zap.Duration("elapsed", time.Since(started)),
	)
	if searched == 0 {
		u.logger.Warn("search timed out before any root move was scored", zap.Stringer("player", player))
	}
	return best, nil
}

func (u *useCase) workers(moves int) int {
	w := u.cfg.Workers
	if w < 1 {
		w = 1
	}
	if w > moves {
		w = moves
	}
	return w
}

// minimax scores b from me's side with toMove about to play.
func (u *useCase) minimax(ctx context.Context, b *engine.Board, me, toMove domain.Player, depth int,
	alpha, beta int, nodes *atomic.Int64) (int, error) {
	nodes.Inc()
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	score := engine.Score(b, me)
	if depth <= 0 || score == engine.WinScore || score == engine.LossScore {
		return score, nil
	}
	moves := b.LegalMoves(toMove)
	if len(moves) == 0 {
		return score, nil
	}
	maximizing := toMove == me
	best := engine.WinScore
	if maximizing {
		best = engine.LossScore
	}
	for _, m := range moves {
		b.Apply(m, toMove)
		v, err := u.minimax(ctx, b, me, toMove.Opponent(), depth-1, alpha, beta, nodes)
		b.Undo(m)
		if err != nil {
			return 0, err
		}
		if maximizing {
			best = max(best, v)
			alpha = max(alpha, best)
		} else {
			best = min(best, v)
			beta = min(beta, best)
		}
		if alpha >= beta {
			break
		}
	}
	return best, nil
}
