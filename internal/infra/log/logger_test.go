package logs

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeapi/config"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: "", want: slog.LevelInfo},
		{in: "warn", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
	}

	for _, tt := range tests {
		got, err := parseLogLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := parseLogLevel("verbose")
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	cfg := &config.Config{}
	cfg.Env.Log.Level = "debug"
	cfg.Env.Log.Pretty = true

	logger, err := New(Params{Config: cfg})
	require.NoError(t, err)
	assert.True(t, logger.Enabled(t.Context(), slog.LevelDebug))

	cfg.Env.Log.Level = "nope"
	_, err = New(Params{Config: cfg})
	assert.Error(t, err)
}
