// Package reconcile joins declared tunnel definitions with observed live
// state into one status per tunnel. Pure and deterministic: identical inputs
// produce identical output, in definition order.
package reconcile

import (
	"github.com/igor04091968/tun-status/collector"
	"github.com/igor04091968/tun-status/database/model"
)

type Status string

const (
	StatusRunning         Status = "running"
	StatusStopped         Status = "stopped"
	StatusDisabled        Status = "disabled"
	StatusServiceDisabled Status = "service-disabled"
)

// TunnelStatus is the reconciled state of one declared tunnel.
type TunnelStatus struct {
	Key        string `json:"key"`
	Alias      string `json:"alias"`
	Role       string `json:"role"`
	Status     Status `json:"status"`
	PID        int32  `json:"pid,omitempty"`
	LocalAddr  string `json:"localAddr"`
	RemoteAddr string `json:"remoteAddr"`
}

type Result struct {
	GlobalEnabled   bool           `json:"globalEnabled"`
	Tunnels         []TunnelStatus `json:"tunnels"`
	ActiveInstances int            `json:"activeInstances"`
}

// Reconcile computes one status per definition. Precedence: a disabled
// service wins over a disabled tunnel, which wins over stopped; running
// requires the global flag, the tunnel flag and a running live instance with
// a matching key. The PID is resolved only for running tunnels. Live
// instances that match no definition are invisible per-tunnel but counted in
// ActiveInstances.
func Reconcile(defs []model.TunnelConfig, globalEnabled bool, live []collector.LiveInstance) Result {
	byKey := make(map[string]collector.LiveInstance, len(live))
	active := 0
	for _, inst := range live {
		if inst.Running {
			active++
		}
		if inst.Key != "" {
			byKey[inst.Key] = inst
		}
	}

	tunnels := make([]TunnelStatus, 0, len(defs))
	for _, def := range defs {
		ts := TunnelStatus{
			Key:        def.Key(),
			Alias:      def.Alias,
			Role:       def.Role,
			LocalAddr:  def.LocalAddr,
			RemoteAddr: def.RemoteAddr,
		}

		inst, found := byKey[def.Key()]
		switch {
		case !globalEnabled:
			ts.Status = StatusServiceDisabled
		case !def.Enabled:
			ts.Status = StatusDisabled
		case found && inst.Running:
			ts.Status = StatusRunning
			ts.PID = inst.PID
		default:
			ts.Status = StatusStopped
		}

		tunnels = append(tunnels, ts)
	}

	return Result{
		GlobalEnabled:   globalEnabled,
		Tunnels:         tunnels,
		ActiveInstances: active,
	}
}
