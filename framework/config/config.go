package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the central typed configuration struct.
type Config struct {
	App     AppConfig
	Log     LogConfig
	Inspect InspectConfig
}

type AppConfig struct {
	Name  string `env:"APP_NAME" envDefault:"fluentdoc"`
	Env   string `env:"APP_ENV" envDefault:"local"` // local | production | testing
	Debug bool   `env:"APP_DEBUG" envDefault:"true"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"console"` // console | json
}

// InspectConfig configures the HTTP inspection server.
type InspectConfig struct {
	Enabled         bool          `env:"INSPECT_ENABLED" envDefault:"true"`
	Addr            string        `env:"INSPECT_ADDR" envDefault:":8000"`
	ShutdownTimeout time.Duration `env:"INSPECT_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Load reads env files into the process environment and parses a Config
// from it. Variables already set in the environment win over file values.
//
// Without envFiles, ".env" is read if present. Named files must exist.
func Load(envFiles ...string) (*Config, error) {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	if err := godotenv.Load(files...); err != nil {
		// .env may not exist in production
		if len(envFiles) > 0 || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load env files: %w", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}
	return cfg, nil
}

// IsLocal reports whether APP_ENV is local.
func (c *Config) IsLocal() bool { return c.App.Env == "local" }

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool { return c.App.Env == "production" }

// IsTesting reports whether APP_ENV is testing.
func (c *Config) IsTesting() bool { return c.App.Env == "testing" }
