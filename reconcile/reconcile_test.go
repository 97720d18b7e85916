package reconcile

import (
	"testing"

	"github.com/igor04091968/tun-status/collector"
	"github.com/igor04091968/tun-status/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defn(role, section string, enabled bool) model.TunnelConfig {
	return model.TunnelConfig{
		SectionID:  section,
		Role:       role,
		Alias:      role + "-" + section,
		Enabled:    enabled,
		LocalAddr:  "127.0.0.1:3333",
		RemoteAddr: "203.0.113.7:4096",
	}
}

func TestReconcileRunning(t *testing.T) {
	defs := []model.TunnelConfig{defn("client", "cfg1", true)}
	live := []collector.LiveInstance{{Key: "client+cfg1", Running: true, PID: 4242}}

	result := Reconcile(defs, true, live)

	require.Len(t, result.Tunnels, 1)
	assert.Equal(t, StatusRunning, result.Tunnels[0].Status)
	assert.Equal(t, int32(4242), result.Tunnels[0].PID)
}

func TestReconcileGlobalDisabledWins(t *testing.T) {
	// Even a live, running, enabled tunnel reports service-disabled when
	// the global flag is off.
	defs := []model.TunnelConfig{defn("client", "cfg1", true)}
	live := []collector.LiveInstance{{Key: "client+cfg1", Running: true, PID: 1}}

	result := Reconcile(defs, false, live)

	require.Len(t, result.Tunnels, 1)
	assert.Equal(t, StatusServiceDisabled, result.Tunnels[0].Status)
	assert.Zero(t, result.Tunnels[0].PID)
}

func TestReconcilePrecedence(t *testing.T) {
	tests := []struct {
		name          string
		globalEnabled bool
		defEnabled    bool
		liveRunning   bool
		want          Status
	}{
		{"all off", false, false, false, StatusServiceDisabled},
		{"global off def off live on", false, false, true, StatusServiceDisabled},
		{"def off", true, false, true, StatusDisabled},
		{"no live instance", true, true, false, StatusStopped},
		{"running", true, true, true, StatusRunning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defs := []model.TunnelConfig{defn("server", "s1", tt.defEnabled)}
			var live []collector.LiveInstance
			if tt.liveRunning {
				live = append(live, collector.LiveInstance{Key: "server+s1", Running: true, PID: 9})
			}
			result := Reconcile(defs, tt.globalEnabled, live)
			require.Len(t, result.Tunnels, 1)
			assert.Equal(t, tt.want, result.Tunnels[0].Status)
		})
	}
}

func TestReconcileNotRunningInstanceIsStopped(t *testing.T) {
	defs := []model.TunnelConfig{defn("client", "cfg1", true)}
	live := []collector.LiveInstance{{Key: "client+cfg1", Running: false, PID: 77}}

	result := Reconcile(defs, true, live)

	assert.Equal(t, StatusStopped, result.Tunnels[0].Status)
}

func TestReconcilePreservesDefinitionOrder(t *testing.T) {
	defs := []model.TunnelConfig{
		defn("server", "b", true),
		defn("client", "a", true),
		defn("client", "c", false),
	}

	result := Reconcile(defs, true, nil)

	require.Len(t, result.Tunnels, 3)
	assert.Equal(t, "server+b", result.Tunnels[0].Key)
	assert.Equal(t, "client+a", result.Tunnels[1].Key)
	assert.Equal(t, "client+c", result.Tunnels[2].Key)
}

func TestReconcileDeterministic(t *testing.T) {
	defs := []model.TunnelConfig{defn("client", "x", true), defn("server", "y", false)}
	live := []collector.LiveInstance{
		{Key: "client+x", Running: true, PID: 10},
		{Key: "", Running: true, PID: 11},
	}

	first := Reconcile(defs, true, live)
	second := Reconcile(defs, true, live)

	assert.Equal(t, first, second)
}

func TestReconcileUnmatchedInstancesCounted(t *testing.T) {
	defs := []model.TunnelConfig{defn("client", "cfg1", true)}
	live := []collector.LiveInstance{
		{Key: "client+cfg1", Running: true, PID: 1},
		{Key: "server+orphan", Running: true, PID: 2},
		{Key: "", Running: true, PID: 3},
		{Key: "client+zombie", Running: false, PID: 4},
	}

	result := Reconcile(defs, true, live)

	// Orphans are invisible per-tunnel but counted globally. The zombie
	// does not count as active.
	require.Len(t, result.Tunnels, 1)
	assert.Equal(t, 3, result.ActiveInstances)
}

func TestReconcileEmptyInputs(t *testing.T) {
	result := Reconcile(nil, true, nil)
	assert.Empty(t, result.Tunnels)
	assert.Zero(t, result.ActiveInstances)
	assert.True(t, result.GlobalEnabled)
}
