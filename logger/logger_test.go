package logger

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogsRespectsLimit(t *testing.T) {
	logBuffer = nil
	for i := 0; i < 10; i++ {
		Info("buffered line ", i)
	}

	logs := GetLogs(3, "INFO")

	assert.LessOrEqual(t, len(logs), 3)
}

func TestGetLogsNewestFirstAndLeveled(t *testing.T) {
	logBuffer = nil
	Debug("noisy detail")
	Info("first")
	Error("broken")
	Info("second")

	logs := GetLogs(10, "INFO")

	// Debug sits below the requested level; the rest come newest first.
	require.Len(t, logs, 3)
	assert.Contains(t, logs[0], "second")
	assert.Contains(t, logs[1], "broken")
	assert.Contains(t, logs[2], "first")
}

func TestGetLogsEmptyBuffer(t *testing.T) {
	logBuffer = nil
	assert.Empty(t, GetLogs(5, "DEBUG"))
}

func TestGetLogsLimitBoundary(t *testing.T) {
	logBuffer = nil
	for i := 0; i < 5; i++ {
		Warning(fmt.Sprintf("warn %d", i))
	}

	assert.Len(t, GetLogs(5, "WARNING"), 5)
	assert.Len(t, GetLogs(4, "WARNING"), 4)
	assert.Empty(t, GetLogs(0, "WARNING"))
}
