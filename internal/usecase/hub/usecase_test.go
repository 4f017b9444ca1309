package hub

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kiryu-dev/network-game/internal/adapters/bot"
	"github.com/kiryu-dev/network-game/internal/config"
	"github.com/kiryu-dev/network-game/internal/domain"
	"github.com/kiryu-dev/network-game/internal/usecase/game"
	"github.com/kiryu-dev/network-game/internal/usecase/search"
)

type recordingGame struct {
	mu    sync.Mutex
	seats []domain.Seat
}

func (g *recordingGame) Play(_ context.Context, seat domain.Seat, state *domain.GameState) error {
	g.mu.Lock()
	g.seats = append(g.seats, seat)
	g.mu.Unlock()
	state.Finish()
	return nil
}

type stubClient string

func (c stubClient) WriteMessage(domain.Message) error {
	return nil
}

func (c stubClient) ReadMessage() (domain.Message, error) {
	return domain.Message{}, domain.ErrConnectionClosed
}

func (c stubClient) Uuid() string {
	return string(c)
}

func newHub(t *testing.T, g domain.GameUseCase, cfg config.Game, newBot func() domain.Client) *useCase {
	t.Helper()
	u := New(g, cfg, newBot, zap.NewNop())
	t.Cleanup(u.Close)
	return u
}

func TestHandlePairsClients(t *testing.T) {
	g := &recordingGame{}
	u := newHub(t, g, config.Game{MaxRounds: 200}, nil)

	var wg sync.WaitGroup
	for _, c := range []stubClient{"first", "second"} {
		wg.Add(1)
		go func(c stubClient) {
			defer wg.Done()
			assert.NoError(t, u.Handle(context.Background(), c, domain.HumanOpponent))
		}(c)
	}
	wg.Wait()

	require.Len(t, g.seats, 2)
	assert.Equal(t, g.seats[0].GameUuid(), g.seats[1].GameUuid())
	assert.NotEqual(t, g.seats[0].Player(), g.seats[1].Player())

	games := u.Games()
	require.Len(t, games, 1)
	assert.ElementsMatch(t, []string{"first", "second"}, []string{games[0].PlayerBlack, games[0].PlayerWhite})
	assert.Equal(t, 0, u.ActiveGames())
}

func TestHandleWaitingClientGivesUp(t *testing.T) {
	u := newHub(t, &recordingGame{}, config.Game{MaxRounds: 200}, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := u.Handle(ctx, stubClient("alone"), domain.HumanOpponent)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHandleSkipsClientThatGaveUp(t *testing.T) {
	g := &recordingGame{}
	u := newHub(t, g, config.Game{MaxRounds: 200}, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, u.Handle(ctx, stubClient("gone"), domain.HumanOpponent), context.DeadlineExceeded)

	var wg sync.WaitGroup
	for _, c := range []stubClient{"first", "second"} {
		wg.Add(1)
		go func(c stubClient) {
			defer wg.Done()
			assert.NoError(t, u.Handle(context.Background(), c, domain.HumanOpponent))
		}(c)
	}
	wg.Wait()

	games := u.Games()
	require.Len(t, games, 1)
	assert.ElementsMatch(t, []string{"first", "second"}, []string{games[0].PlayerBlack, games[0].PlayerWhite})
}

func TestHandleNextClientDoesNotHangAfterCancel(t *testing.T) {
	logger := zap.NewNop()
	cfg := config.Game{MaxRounds: 200}
	u := newHub(t, game.New(cfg, logger), cfg, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, u.Handle(ctx, stubClient("gone"), domain.HumanOpponent), context.DeadlineExceeded)

	ctx, cancel = context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	errCh := make(chan error, 1)
	go func() {
		errCh <- u.Handle(ctx, stubClient("second"), domain.HumanOpponent)
	}()
	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(2 * time.Second):
		t.Fatal("second client still blocked after its context expired")
	}
	assert.Equal(t, 0, u.ActiveGames())
}

func TestPairDropsGameWhenBlackIsGone(t *testing.T) {
	u := newHub(t, &recordingGame{}, config.Game{MaxRounds: 200}, nil)
	gone, cancel := context.WithCancel(context.Background())
	cancel()
	lhs := enqueuedClient{ctx: gone, client: stubClient("gone"), resultChan: make(chan domain.Seat)}
	rhs := enqueuedClient{ctx: context.Background(), client: stubClient("waiting"), resultChan: make(chan domain.Seat)}

	requeued, ok := u.pair(lhs, rhs)

	assert.False(t, ok)
	assert.Equal(t, "waiting", requeued.client.Uuid())
	assert.Empty(t, u.Games())
}

func TestPairFinishesGameWhenWhiteIsGone(t *testing.T) {
	u := newHub(t, &recordingGame{}, config.Game{MaxRounds: 200}, nil)
	gone, cancel := context.WithCancel(context.Background())
	cancel()
	lhs := enqueuedClient{ctx: context.Background(), client: stubClient("black"), resultChan: make(chan domain.Seat, 1)}
	rhs := enqueuedClient{ctx: gone, client: stubClient("gone"), resultChan: make(chan domain.Seat)}

	_, ok := u.pair(lhs, rhs)

	require.True(t, ok)
	seat := <-lhs.resultChan
	select {
	case <-seat.GameFinished():
	default:
		t.Fatal("black seat was not released")
	}
	assert.Equal(t, 0, u.ActiveGames())
}

func TestHandleBotsDisabled(t *testing.T) {
	u := newHub(t, &recordingGame{}, config.Game{MaxRounds: 200}, nil)

	err := u.Handle(context.Background(), stubClient("c"), domain.BotOpponent)

	assert.ErrorIs(t, err, ErrBotsDisabled)
}

func TestHandleUnknownOpponent(t *testing.T) {
	u := newHub(t, &recordingGame{}, config.Game{MaxRounds: 200}, nil)

	err := u.Handle(context.Background(), stubClient("c"), domain.Opponent("robot"))

	assert.ErrorIs(t, err, ErrUnknownOpponent)
}

func TestRemoveFinishedGames(t *testing.T) {
	u := newHub(t, &recordingGame{}, config.Game{MaxRounds: 200}, nil)
	_, done := u.createGame("a", "b")
	u.createGame("c", "d")
	done.Finish()

	assert.Equal(t, 1, u.ActiveGames())
	assert.Equal(t, 1, u.removeFinishedGames())
	assert.Len(t, u.Games(), 1)
}

func TestBotGamePlaysToTheEnd(t *testing.T) {
	logger := zap.NewNop()
	searcher := search.New(config.Search{Depth: 1, Timeout: time.Second, Workers: 2}, logger)
	newBot := func() domain.Client {
		return bot.New(searcher, logger)
	}
	cfg := config.Game{MaxRounds: 30, AllowBots: true}
	u := newHub(t, game.New(cfg, logger), cfg, newBot)

	err := u.Handle(context.Background(), newBot(), domain.BotOpponent)
	require.NoError(t, err)

	games := u.Games()
	require.Len(t, games, 1)
	assert.Equal(t, domain.Finished, games[0].Status)
	assert.NotEmpty(t, games[0].Moves)
	assert.LessOrEqual(t, games[0].Round, cfg.MaxRounds)
}
