package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			t.Setenv("BREWADOPT_STATE_DIR", "")
			t.Setenv("XDG_STATE_HOME", tempDir)

			SetupLogger(tt.verbosity)

			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())

			logPath := filepath.Join(tempDir, "brewadopt", "brewadopt.log")
			_, err := os.Stat(logPath)
			assert.NoError(t, err, "log file should exist at %s", logPath)
		})
	}
}

func TestSetupLogger_FileRecordsCarryAppName(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("BREWADOPT_STATE_DIR", tempDir)

	SetupLogger(2)

	data, err := os.ReadFile(filepath.Join(tempDir, "brewadopt.log"))
	assert.NoError(t, err)
	assert.Contains(t, string(data), `"app":"brewadopt"`)
	assert.Contains(t, string(data), "Logging configured")
}

func TestLogFilePath(t *testing.T) {
	t.Setenv("BREWADOPT_STATE_DIR", "/custom/state")
	assert.Equal(t, "/custom/state/brewadopt.log", filepath.ToSlash(logFilePath()))
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, levelFor(-1))
	assert.Equal(t, zerolog.InfoLevel, levelFor(1))
	assert.Equal(t, zerolog.TraceLevel, levelFor(9))
}

func TestForRun(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	logger := ForRun(zerolog.New(&buf).With().Str("component", "discovery").Logger(), "01HRUN")
	logger.Info().Msg("scanning")

	assert.Contains(t, buf.String(), `"run":"01HRUN"`)
	assert.Contains(t, buf.String(), `"component":"discovery"`)
}

func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	logger := GetLogger("catalog.store")
	logger.Info().Msg("hello")

	assert.Contains(t, buf.String(), `"component":"catalog.store"`)
	assert.Contains(t, buf.String(), "hello")
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	logger := WithFields(map[string]interface{}{"key1": "value1", "key2": 42})
	logger.Info().Msg("fields")

	assert.Contains(t, buf.String(), `"key1":"value1"`)
	assert.Contains(t, buf.String(), `"key2":42`)
}

func TestLogCommand(t *testing.T) {
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	LogCommand("brew", []string{"info", "--cask"})

	output := buf.String()
	assert.Contains(t, output, "brew")
	assert.Contains(t, output, "--cask")
	assert.Contains(t, output, "Running command")
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	done := LogOperationStart(logger, "build-index")
	assert.Contains(t, buf.String(), "Started")

	done()
	assert.Contains(t, buf.String(), "Finished")
	assert.Contains(t, buf.String(), `"elapsed"`)
	assert.Contains(t, buf.String(), `"operation":"build-index"`)
}
