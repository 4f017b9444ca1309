package hub

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/kiryu-dev/network-game/internal/config"
	"github.com/kiryu-dev/network-game/internal/domain"
	"github.com/kiryu-dev/network-game/internal/engine"
)

const (
	clientQueueBufSize = 2
	pruneGamesPeriod   = 5 * time.Second
)

type enqueuedClient struct {
	ctx        context.Context
	client     domain.Client
	resultChan chan domain.Seat
}

type useCase struct {
	game        domain.GameUseCase
	cfg         config.Game
	newBot      func() domain.Client
	clientQueue chan enqueuedClient
	gamesStates map[string]*domain.GameState
	ticker      *time.Ticker
	done        chan struct{}
	closeOnce   sync.Once
	mu          *sync.RWMutex
	logger      *zap.Logger
}

func New(game domain.GameUseCase, cfg config.Game, newBot func() domain.Client, logger *zap.Logger) *useCase {
	u := &useCase{
		game:        game,
		cfg:         cfg,
		newBot:      newBot,
		clientQueue: make(chan enqueuedClient, clientQueueBufSize),
		gamesStates: make(map[string]*domain.GameState),
		ticker:      time.NewTicker(pruneGamesPeriod),
		done:        make(chan struct{}),
		mu:          &sync.RWMutex{},
		logger:      logger,
	}
	go u.createGames()
	go u.pruneGames()
	return u
}

func (u *useCase) Handle(ctx context.Context, client domain.Client, opponent domain.Opponent) error {
	switch opponent {
	case domain.HumanOpponent, "":
		seat, ok := u.enqueueForGame(ctx, client)
		if !ok {
			return errors.WithMessage(ctx.Err(), "wait for opponent")
		}
		return u.play(ctx, seat)
	case domain.BotOpponent:
		if !u.cfg.AllowBots || u.newBot == nil {
			return ErrBotsDisabled
		}
		return u.playBot(ctx, client)
	default:
		return errors.WithMessagef(ErrUnknownOpponent, "%q", opponent)
	}
}

func (u *useCase) play(ctx context.Context, seat domain.Seat) error {
	u.mu.RLock()
	gameState, ok := u.gamesStates[seat.GameUuid()]
	u.mu.RUnlock()
	if !ok {
		return errors.WithMessagef(domain.ErrGameFinished, "game %s", seat.GameUuid())
	}
	if err := u.game.Play(ctx, seat, gameState); err != nil {
		return errors.WithMessage(err, "play game")
	}
	return nil
}

// playBot seats the client as Black against a fresh bot playing White.
func (u *useCase) playBot(ctx context.Context, client domain.Client) error {
	bot := u.newBot()
	gameUuid, state := u.createGame(client.Uuid(), bot.Uuid())
	botSeat := domain.NewSeat(gameUuid, bot, domain.White, state)
	go func() {
		if err := u.play(ctx, botSeat); err != nil {
			u.logger.Warn("bot game", zap.String("game uuid", gameUuid), zap.Error(err))
		}
	}()
	return u.play(ctx, domain.NewSeat(gameUuid, client, domain.Black, state))
}

func (u *useCase) enqueueForGame(ctx context.Context, client domain.Client) (domain.Seat, bool) {
	ch := make(chan domain.Seat)
	select {
	case u.clientQueue <- enqueuedClient{ctx: ctx, client: client, resultChan: ch}:
	case <-ctx.Done():
		return domain.Seat{}, false
	}
	select {
	case seat := <-ch:
		return seat, true
	case <-ctx.Done():
		return domain.Seat{}, false
	}
}

// createGames pairs queued clients in arrival order, the first one taking
// Black. Clients that stopped waiting are dropped and their partner waits
// for the next arrival.
func (u *useCase) createGames() {
	var waiting *enqueuedClient
	for {
		var next enqueuedClient
		select {
		case next = <-u.clientQueue:
		case <-u.done:
			return
		}
		if next.ctx.Err() != nil {
			continue
		}
		if waiting == nil || waiting.ctx.Err() != nil {
			waiting = &next
			continue
		}
		lhs, rhs := *waiting, next
		waiting = nil
		if requeued, ok := u.pair(lhs, rhs); !ok {
			waiting = &requeued
		}
	}
}

// pair starts a game for lhs and rhs. When lhs is gone by the time its seat
// is handed over, the game is dropped and rhs is returned to wait again.
// When only rhs is gone, lhs already holds a seat and the finished game
// gives it a walkover.
func (u *useCase) pair(lhs, rhs enqueuedClient) (enqueuedClient, bool) {
	gameUuid, state := u.createGame(lhs.client.Uuid(), rhs.client.Uuid())
	if !handOver(lhs, domain.NewSeat(gameUuid, lhs.client, domain.Black, state)) {
		u.removeGame(gameUuid)
		return rhs, false
	}
	if !handOver(rhs, domain.NewSeat(gameUuid, rhs.client, domain.White, state)) {
		state.Finish()
		u.logger.Info("opponent left before the game started", zap.String("game uuid", gameUuid))
		return enqueuedClient{}, true
	}
	u.logger.Info("game created",
		zap.String("game uuid", gameUuid),
		zap.String("black", lhs.client.Uuid()),
		zap.String("white", rhs.client.Uuid()),
	)
	return enqueuedClient{}, true
}

func handOver(c enqueuedClient, seat domain.Seat) bool {
	select {
	case c.resultChan <- seat:
		return true
	case <-c.ctx.Done():
		return false
	}
}

func (u *useCase) createGame(playerBlack string, playerWhite string) (string, *domain.GameState) {
	u.mu.Lock()
	defer u.mu.Unlock()
	gameUuid := uuid.NewString()
	state := domain.NewGameState(engine.NewBoard(), playerBlack, playerWhite)
	u.gamesStates[gameUuid] = state
	return gameUuid, state
}

func (u *useCase) removeGame(gameUuid string) {
	u.mu.Lock()
	delete(u.gamesStates, gameUuid)
	u.mu.Unlock()
}

func (u *useCase) pruneGames() {
	defer u.ticker.Stop()
	for {
		select {
		case <-u.ticker.C:
			if n := u.removeFinishedGames(); n > 0 {
				u.logger.Debug("games in progress", zap.Int("count", n))
			}
		case <-u.done:
			return
		}
	}
}

func (u *useCase) removeFinishedGames() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	for gameUuid, state := range u.gamesStates {
		if state.IsFinished() {
			delete(u.gamesStates, gameUuid)
		}
	}
	return len(u.gamesStates)
}

// Games lists every tracked game ordered by uuid. Finished games stay listed
// until the next prune.
func (u *useCase) Games() []domain.GameSummary {
	u.mu.RLock()
	out := lo.MapToSlice(u.gamesStates, func(gameUuid string, state *domain.GameState) domain.GameSummary {
		return state.Summary(gameUuid)
	})
	u.mu.RUnlock()
	slices.SortFunc(out, func(a, b domain.GameSummary) int {
		return strings.Compare(a.Uuid, b.Uuid)
	})
	return out
}

func (u *useCase) ActiveGames() int {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return lo.CountBy(lo.Values(u.gamesStates), func(state *domain.GameState) bool {
		return !state.IsFinished()
	})
}

func (u *useCase) Close() {
	u.closeOnce.Do(func() {
		close(u.done)
	})
}
