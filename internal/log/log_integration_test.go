package log

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogging(t *testing.T) {
	// Create temp directory for test
	tempDir, err := os.MkdirTemp("", "yozora-log-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	// Create log file path
	logPath := filepath.Join(tempDir, "test.log")

	// Create logger with debug level
	logger, err := New(Config{
		Level:    "debug",
		FilePath: logPath,
	})
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	SetDefaultLogger(logger)

	// Log test messages at different levels
	Debug("Debug message", "test", true)
	Info("Info message", "test", true)
	Warn("Warning message", "test", true)
	Error("Error message", "error", fmt.Errorf("test error"))

	// Close logger to ensure file is written
	logger.Close()

	// Read log file
	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	// Basic verification
	contentStr := string(content)
	assert.Contains(t, contentStr, "Debug message")
	assert.Contains(t, contentStr, "Info message")
	assert.Contains(t, contentStr, "Warning message")
	assert.Contains(t, contentStr, "Error message")
	assert.Contains(t, contentStr, "test error")
}

// TestTraceGating verifies that wire-level trace lines only reach the log file when
// the level is explicitly "trace"
func TestTraceGating(t *testing.T) {
	writeLogs := func(t *testing.T, level string) string {
		t.Helper()

		tempDir, err := os.MkdirTemp("", "yozora-log-test")
		if err != nil {
			t.Fatalf("Failed to create temp dir: %v", err)
		}
		t.Cleanup(func() { os.RemoveAll(tempDir) })

		logPath := filepath.Join(tempDir, "test.log")
		logger, err := New(Config{Level: level, FilePath: logPath})
		if err != nil {
			t.Fatalf("Failed to create logger: %v", err)
		}
		SetDefaultLogger(logger)

		Trace("Wire detail", "status", 200)
		Debug("Debug message")
		logger.Close()

		content, err := os.ReadFile(logPath)
		if err != nil {
			t.Fatalf("Failed to read log file: %v", err)
		}
		return string(content)
	}

	t.Run("TraceLevelWritesTraceLines", func(t *testing.T) {
		content := writeLogs(t, "trace")
		assert.Contains(t, content, "TRACE: Wire detail")
		assert.Contains(t, content, "Debug message")
	})

	t.Run("DebugLevelSuppressesTraceLines", func(t *testing.T) {
		content := writeLogs(t, "debug")
		assert.NotContains(t, content, "TRACE: Wire detail")
		assert.Contains(t, content, "Debug message")
	})
}
