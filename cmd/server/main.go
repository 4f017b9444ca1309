package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kiryu-dev/network-game/internal/adapters/bot"
	"github.com/kiryu-dev/network-game/internal/config"
	"github.com/kiryu-dev/network-game/internal/domain"
	"github.com/kiryu-dev/network-game/internal/transport/ws"
	"github.com/kiryu-dev/network-game/internal/usecase/game"
	"github.com/kiryu-dev/network-game/internal/usecase/hub"
	"github.com/kiryu-dev/network-game/internal/usecase/search"
)

const shutdownTimeout = 5 * time.Second

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync()
	}()
	cfgPath := flag.String("config", "./config.yml", "path to config")
	flag.Parse()
	cfg, err := config.New(*cfgPath)
	if err != nil {
		logger.Fatal(err.Error())
	}
	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	var (
		searcher = search.New(cfg.Search, logger)
		newBot   = func() domain.Client {
			return bot.New(searcher, logger)
		}
		game   = game.New(cfg.Game, logger)
		hub    = hub.New(game, cfg.Game, newBot, logger)
		server = ws.New(cfg.Server.Addr, hub, logger)
	)
	defer hub.Close()
	errGroup, ctx := errgroup.WithContext(context.Background())
	errGroup.Go(func() error {
		select {
		case s := <-sigChan:
			return errors.Errorf("captured signal: %v", s)
		case <-ctx.Done():
			return nil
		}
	})
	errGroup.Go(server.ListenAndServe)
	errGroup.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	if err := errGroup.Wait(); err != nil {
		logger.Info("gracefully shutting down the server: " + err.Error())
	}
}
