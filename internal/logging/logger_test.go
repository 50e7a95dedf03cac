package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/shareit-backend/internal/config"
)

func TestNewLogger(t *testing.T) {
	t.Run("JSONWithBaseFields", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewWithWriter(config.LogConfig{Level: "debug"}, "test", &buf)
		logger.Info().Str("booking_id", "b-1").Msg("booking created")

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "shareit", line["app"])
		assert.Equal(t, "test", line["env"])
		assert.Equal(t, "b-1", line["booking_id"])
		assert.Equal(t, "booking created", line["message"])
	})

	t.Run("LevelFilters", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewWithWriter(config.LogConfig{Level: "warn"}, "test", &buf)
		logger.Info().Msg("dropped")
		assert.Zero(t, buf.Len())
		assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
	})

	t.Run("InvalidLevelDefaultsToInfo", func(t *testing.T) {
		logger := NewWithWriter(config.LogConfig{Level: "loud"}, "test", &bytes.Buffer{})
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	})

	t.Run("Console", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewWithWriter(config.LogConfig{Format: "console"}, "test", &buf)
		logger.Info().Msg("hello")
		assert.Contains(t, buf.String(), "hello")
		assert.False(t, json.Valid(buf.Bytes()))
	})
}
