package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidSearchDepth = errors.New("search depth must be positive")
	ErrInvalidWorkers     = errors.New("search workers must be positive")
	ErrInvalidMaxRounds   = errors.New("max rounds must be positive")
)

const (
	defaultAddr          = ":8080"
	defaultMaxRounds     = 200
	defaultSearchDepth   = 2
	defaultSearchTimeout = 5 * time.Second
	defaultSearchWorkers = 4

	serverPortEnv = "SERVER_PORT"
)

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type Game struct {
	MaxRounds int  `yaml:"max_rounds"`
	AllowBots bool `yaml:"allow_bots"`
}

type Search struct {
	Depth   int           `yaml:"depth"`
	Timeout time.Duration `yaml:"timeout"`
	Workers int           `yaml:"workers"`
}

type Config struct {
	Server ServerConfig `yaml:"server"`
	Game   Game         `yaml:"game"`
	Search Search       `yaml:"search"`
}

func New(cfgPath string) (Config, error) {
	file, err := os.Open(cfgPath)
	if err != nil {
		return Config{}, err
	}
	defer func() {
		_ = file.Close()
	}()
	cfg := Default()
	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return Config{}, errors.WithMessage(err, "decode yaml config")
	}
	if port := os.Getenv(serverPortEnv); port != "" {
		cfg.Server.Addr = port
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Default() Config {
	return Config{
		Server: ServerConfig{Addr: defaultAddr},
		Game: Game{
			MaxRounds: defaultMaxRounds,
			AllowBots: true,
		},
		Search: Search{
			Depth:   defaultSearchDepth,
			Timeout: defaultSearchTimeout,
			Workers: defaultSearchWorkers,
		},
	}
}

func (c Config) Validate() error {
	if c.Search.Depth < 1 {
		return ErrInvalidSearchDepth
	}
	if c.Search.Workers < 1 {
		return ErrInvalidWorkers
	}
	if c.Game.MaxRounds < 1 {
		return ErrInvalidMaxRounds
	}
	return nil
}
