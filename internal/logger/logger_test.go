package logger

import (
	"bytes"
	"testing"

	"arcade-leaderboard/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewParsesLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l := New(&config.Config{LogLevel: tt.level})
			assert.Equal(t, tt.want, l.GetLevel())
		})
	}
}

func TestSetLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := SetLevel(&buf, zerolog.WarnLevel)

	l.Info().Msg("hidden")
	assert.Zero(t, buf.Len())

	l.Warn().Str("game", "star").Msg("shown")
	assert.Contains(t, buf.String(), `"game":"star"`)
	assert.Contains(t, buf.String(), `"message":"shown"`)
}
