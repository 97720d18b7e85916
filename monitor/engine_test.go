package monitor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineNoSnapshotBeforeFirstCycle(t *testing.T) {
	e := NewEngine(nil, nil)
	assert.Nil(t, e.GetStatusSnapshot())
	assert.Empty(t, e.GetLogWindow().Lines)
}

func TestEngineCutoffRoundTrip(t *testing.T) {
	e := NewEngine(nil, nil)

	cutoff := time.Now()
	e.ClearLogWindow(cutoff)
	e.mu.RLock()
	require.NotNil(t, e.cutoff)
	assert.True(t, e.cutoff.Equal(cutoff))
	e.mu.RUnlock()

	e.ResetLogCutoff()
	e.mu.RLock()
	assert.Nil(t, e.cutoff)
	e.mu.RUnlock()
}

func TestEnginePollingLifecycle(t *testing.T) {
	e := NewEngine(nil, nil)
	assert.False(t, e.Polling())

	// Long intervals so no cycle actually fires against the nil services.
	e.StartPolling(time.Hour, time.Hour)
	assert.True(t, e.Polling())

	e.StopPolling()
	e.StopPolling()
	assert.False(t, e.Polling())
}
