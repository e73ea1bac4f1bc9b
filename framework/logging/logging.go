// Package logging builds the application's zap logger from configuration.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/km-arc/go-fluentdoc/framework/config"
)

// New builds a logger for cfg. Production environments get zap's
// production preset, every other one the development preset; the level and
// encoding come from cfg.Log.
func New(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	zapConfig := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zapConfig = zap.NewProductionConfig()
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)

	switch cfg.Log.Format {
	case "json", "console":
		zapConfig.Encoding = cfg.Log.Format
	default:
		return nil, fmt.Errorf("logging: unknown format %q", cfg.Log.Format)
	}

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build logger: %w", err)
	}
	return logger.With(zap.String("app", cfg.App.Name)), nil
}
