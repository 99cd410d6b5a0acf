// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Dictionary backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Root word modes.
const (
	RootRandom = "random"
	RootDaily  = "daily"
)

// Config holds every setting the server reads at startup.
type Config struct {
	Port           string        `env:"PORT" envDefault:"5175"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat      string        `env:"LOG_FORMAT" envDefault:"json"` // json | console
	ClientOrigin   string        `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`

	StartFile      string `env:"WORDS_START_FILE"`
	DictionaryFile string `env:"WORDS_DICTIONARY_FILE"`

	DictionaryBackend string `env:"DICTIONARY_BACKEND" envDefault:"memory"`
	DBPath            string `env:"DB_PATH" envDefault:"./data/words.db"`

	RootMode  string `env:"ROOT_MODE" envDefault:"random"`
	DailySalt string `env:"DAILY_SALT" envDefault:"local_dev_salt"`

	SessionSecret string        `env:"SESSION_SECRET" envDefault:"dev_secret_change_me"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	CookieSecure  bool          `env:"COOKIE_SECURE" envDefault:"false"`
}

// Load reads an optional .env file and then parses the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var c Config
	if err := env.Parse(&c); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	switch c.DictionaryBackend {
	case BackendMemory, BackendSQLite:
	default:
		return fmt.Errorf("config: unknown DICTIONARY_BACKEND %q", c.DictionaryBackend)
	}
	switch c.RootMode {
	case RootRandom, RootDaily:
	default:
		return fmt.Errorf("config: unknown ROOT_MODE %q", c.RootMode)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("config: SESSION_TTL must be positive")
	}
	return nil
}
