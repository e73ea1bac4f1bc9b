package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/km-arc/go-fluentdoc/framework/config"
	"github.com/km-arc/go-fluentdoc/framework/logging"
)

func testConfig(env, level, format string) *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "test", Env: env},
		Log: config.LogConfig{Level: level, Format: format},
	}
}

func TestNew_Development_HonoursLevel(t *testing.T) {
	l, err := logging.New(testConfig("local", "debug", "console"))
	require.NoError(t, err)

	assert.True(t, l.Core().Enabled(zap.DebugLevel))
}

func TestNew_Production_InfoLevel(t *testing.T) {
	l, err := logging.New(testConfig("production", "info", "json"))
	require.NoError(t, err)

	assert.False(t, l.Core().Enabled(zap.DebugLevel),
		"production logger should NOT allow Debug level at info")
	assert.True(t, l.Core().Enabled(zap.InfoLevel))
}

func TestNew_Errors(t *testing.T) {
	_, err := logging.New(testConfig("local", "loud", "console"))
	assert.ErrorContains(t, err, "logging")

	_, err = logging.New(testConfig("local", "info", "xml"))
	assert.ErrorContains(t, err, `unknown format "xml"`)
}
