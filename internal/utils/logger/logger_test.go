package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLevelForEnvironment(t *testing.T) {
	assert.Equal(t, zerolog.TraceLevel, LevelForEnvironment("dev"))
	assert.Equal(t, zerolog.TraceLevel, LevelForEnvironment("TEST"))
	assert.Equal(t, zerolog.InfoLevel, LevelForEnvironment("prod"))
	assert.Equal(t, zerolog.InfoLevel, LevelForEnvironment("staging"))
}

func TestInitLoggerHonoursLogLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	t.Setenv("ENVIRONMENT", "prod")
	t.Setenv("LOG_LEVEL", "warn")
	var buf bytes.Buffer
	initLogger(&buf)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	t.Setenv("LOG_LEVEL", "chatty")
	initLogger(&buf)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	assert.Contains(t, buf.String(), "Unknown LOG_LEVEL")
}
