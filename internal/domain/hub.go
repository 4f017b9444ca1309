package domain

import (
	"context"
)

type HubUseCase interface {
	Handle(ctx context.Context, client Client, opponent Opponent) error
	Games() []GameSummary
	ActiveGames() int
}

type Opponent string

const (
	HumanOpponent = Opponent("human")
	BotOpponent   = Opponent("bot")
)
