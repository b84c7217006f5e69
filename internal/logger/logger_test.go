package logger_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/alreadyedge/internal/logger"
)

func TestNewLogger_DefaultOptions(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("LOCALAPPDATA", tmpDir)

	log, err := logger.NewLogger(logger.LoggerOptions{Console: &bytes.Buffer{}})
	require.NoError(t, err)
	defer log.Close()

	logPath := log.GetLogPath()
	assert.Equal(t, filepath.Join(tmpDir, "alreadyedge", "alreadyedge.log"), logPath)
	assert.DirExists(t, filepath.Join(tmpDir, "alreadyedge"))
}

func TestNewLogger_CustomLogDir(t *testing.T) {
	tmpDir := t.TempDir()

	log, err := logger.NewLogger(logger.LoggerOptions{LogDir: tmpDir, Console: &bytes.Buffer{}})
	require.NoError(t, err)
	defer log.Close()

	assert.Equal(t, filepath.Join(tmpDir, "alreadyedge.log"), log.GetLogPath())
}

func TestGetLogPath_FallbackToUserProfile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("LOCALAPPDATA", "")
	t.Setenv("USERPROFILE", tmpDir)

	expected := filepath.Join(tmpDir, "AppData", "Local", "alreadyedge", "alreadyedge.log")
	assert.Equal(t, expected, logger.GetLogPath(logger.LoggerOptions{}))
}

func TestLogger_FileReceivesAllLevels(t *testing.T) {
	tmpDir := t.TempDir()

	log, err := logger.NewLogger(logger.LoggerOptions{LogDir: tmpDir, Console: &bytes.Buffer{}})
	require.NoError(t, err)

	log.Trace("trace message", slog.Uint64("hwnd", 0x1234))
	log.Debug("debug message")
	log.Info("info message", slog.Int("count", 2))
	log.Warn("warn message")
	log.Error("error message", slog.Any("error", assert.AnError))
	log.Close()

	data, err := os.ReadFile(log.GetLogPath())
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "level=TRACE")
	assert.Contains(t, content, "trace message")
	assert.Contains(t, content, "debug message")
	assert.Contains(t, content, "count=2")
	assert.Contains(t, content, "error message")
}

func TestLogger_ConsoleFiltering(t *testing.T) {
	tests := []struct {
		name     string
		verbose  bool
		contains []string
		omits    []string
	}{
		{
			name:     "quiet",
			verbose:  false,
			contains: []string{"info message count=2", "WARNING: warn message"},
			omits:    []string{"trace message", "debug message"},
		},
		{
			name:     "verbose",
			verbose:  true,
			contains: []string{"VERBOSE: debug message", "info message", "ERROR: error message"},
			omits:    []string{"trace message"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var console bytes.Buffer

			log, err := logger.NewLogger(logger.LoggerOptions{
				LogDir:  t.TempDir(),
				Verbose: tt.verbose,
				Console: &console,
			})
			require.NoError(t, err)
			defer log.Close()

			log.Trace("trace message")
			log.Debug("debug message")
			log.Info("info message", slog.Int("count", 2))
			log.Warn("warn message")
			log.Error("error message")

			out := console.String()
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}

			for _, s := range tt.omits {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestPrintLogFile(t *testing.T) {
	tmpDir := t.TempDir()
	opts := logger.LoggerOptions{LogDir: tmpDir}

	err := logger.PrintLogFile(&bytes.Buffer{}, opts)
	assert.Error(t, err, "missing log file should be reported")

	require.NoError(t, os.WriteFile(logger.GetLogPath(opts), []byte("line 1\nline 2\n"), 0o644))

	var out bytes.Buffer
	require.NoError(t, logger.PrintLogFile(&out, opts))
	assert.Equal(t, "line 1\nline 2\n", out.String())
}

func TestNoOpLogger(t *testing.T) {
	log := logger.NewNoOpLogger()

	assert.NotPanics(t, func() {
		log.Trace("test")
		log.Debug("test")
		log.Info("test")
		log.Warn("test")
		log.Error("test")
		log.Close()
	})
	assert.Empty(t, log.GetLogPath())
}
