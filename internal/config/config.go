package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"

	"github.com/kalambet/autopro/internal/search"
)

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Log     LogConfig
	Auth    AuthConfig
	Search  SearchConfig
}

type ServerConfig struct {
	Port int
	// MCP serves the MCP tools on stdio alongside the HTTP API.
	MCP bool
}

type StorageConfig struct {
	DataDir string
}

type LogConfig struct {
	Level string
}

type AuthConfig struct {
	// Delay is the simulated login/register round trip.
	Delay time.Duration
}

type SearchConfig struct {
	DefaultSort string
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port: 4100,
		},
		Storage: StorageConfig{
			DataDir: defaultDataDir(),
		},
		Log: LogConfig{
			Level: "info",
		},
		Auth: AuthConfig{
			Delay: 500 * time.Millisecond,
		},
		Search: SearchConfig{
			DefaultSort: string(search.DefaultSort),
		},
	}
}

// Load reads configuration from the JSON file at
// $XDG_CONFIG_HOME/autopro/config.json, then a .env file in the working
// directory, then AUTOPRO_* environment variables. Later sources win.
// Variables already set in the environment are not replaced by .env.
func Load() (Config, error) {
	return loadWith(newFileBackend(configFilePath()), ".env")
}

func loadWith(b ConfigBackend, envFile string) (Config, error) {
	cfg := defaults()

	if err := applyBackend(&cfg, b); err != nil {
		return Config{}, err
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}
	applyEnvOverrides(&cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log.level %q (want debug, info, warn or error)", c.Log.Level)
	}
	if c.Auth.Delay < 0 {
		return fmt.Errorf("invalid auth.delay %s", c.Auth.Delay)
	}
	if _, err := search.ParseSortKey(c.Search.DefaultSort); err != nil {
		return fmt.Errorf("invalid search.default_sort: %w", err)
	}
	return nil
}
