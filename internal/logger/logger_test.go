package logger_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"

	"github.com/Lumos-Labs-HQ/airseed/internal/logger"
)

func restore(t *testing.T) {
	originalLogger := log.Logger
	originalLevel := zerolog.GlobalLevel()
	originalTimeFormat := zerolog.TimeFieldFormat
	t.Cleanup(func() {
		log.Logger = originalLogger
		zerolog.SetGlobalLevel(originalLevel)
		zerolog.TimeFieldFormat = originalTimeFormat
	})
}

func TestInitLogger(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	logger.InitLogger(&buf)

	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
	assert.Contains(t, buf.String(), "Zerolog initialized.")
}

func TestErrorWithStack(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	log.Logger = log.Output(&buf)
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	logger.ErrorWithStack(errors.New("catalog unreachable"))

	assert.Contains(t, buf.String(), "catalog unreachable")
}

func TestSetLogLevel_ReportsUnknownLevel(t *testing.T) {
	restore(t)
	var buf bytes.Buffer
	log.Logger = log.Output(&buf)
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	logger.SetLogLevel("warnn")

	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
	assert.Contains(t, buf.String(), "Unknown log level.")
	assert.Contains(t, buf.String(), "warnn")
}

func TestSetLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
		expected zerolog.Level
	}{
		{name: "debug level", logLevel: "debug", expected: zerolog.DebugLevel},
		{name: "info level", logLevel: "info", expected: zerolog.InfoLevel},
		{name: "warn level", logLevel: "warn", expected: zerolog.WarnLevel},
		{name: "error level", logLevel: "error", expected: zerolog.ErrorLevel},
		{name: "disabled level", logLevel: "disabled", expected: zerolog.Disabled},
		{name: "invalid level falls back to warn", logLevel: "loud", expected: zerolog.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restore(t)
			var buf bytes.Buffer
			log.Logger = log.Output(&buf)

			logger.SetLogLevel(tt.logLevel)

			assert.Equal(t, tt.expected, zerolog.GlobalLevel())
		})
	}
}
