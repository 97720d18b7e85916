// Package monitor drives the poll pipeline: collect live state, extract
// facts, reconcile against declared configuration, publish immutable
// snapshots. One scheduler polls status, a second polls the log window on
// its own cadence.
package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/igor04091968/tun-status/collector"
	"github.com/igor04091968/tun-status/facts"
	"github.com/igor04091968/tun-status/logger"
	"github.com/igor04091968/tun-status/logwindow"
	"github.com/igor04091968/tun-status/reconcile"
	"github.com/igor04091968/tun-status/service"

	"github.com/gofrs/uuid/v5"
)

// StatusSnapshot is one immutable result of a poll cycle. Degraded lists
// the fact categories whose query failed this cycle; their fields hold
// empty/unknown values rather than aborting the snapshot.
type StatusSnapshot struct {
	ID              string                   `json:"id"`
	Time            time.Time                `json:"time"`
	GlobalEnabled   bool                     `json:"globalEnabled"`
	Tunnels         []reconcile.TunnelStatus `json:"tunnels"`
	ActiveInstances int                      `json:"activeInstances"`
	NatRules        []facts.NatRuleFact      `json:"natRules"`
	Interfaces      []facts.InterfaceFact    `json:"interfaces"`
	Degraded        []string                 `json:"degraded,omitempty"`
}

type Engine struct {
	tunnelService  *service.TunnelService
	settingService service.SettingService
	collector      *collector.Collector

	statusScheduler *Scheduler
	logScheduler    *Scheduler

	mu          sync.RWMutex
	snapshot    *StatusSnapshot
	window      logwindow.Window
	cutoff      *time.Time
	subscribers []func(*StatusSnapshot)
}

func NewEngine(tunnelService *service.TunnelService, c *collector.Collector) *Engine {
	e := &Engine{
		tunnelService: tunnelService,
		collector:     c,
	}
	e.statusScheduler = NewScheduler("status", e.runStatusCycle)
	e.logScheduler = NewScheduler("logs", e.runLogCycle)
	return e
}

// StartPolling arms both poll streams. Idempotent.
func (e *Engine) StartPolling(statusInterval time.Duration, logInterval time.Duration) {
	e.statusScheduler.Start(statusInterval)
	e.logScheduler.Start(logInterval)
}

// StopPolling disarms both poll streams. Idempotent.
func (e *Engine) StopPolling() {
	e.statusScheduler.Stop()
	e.logScheduler.Stop()
}

func (e *Engine) Polling() bool {
	return e.statusScheduler.Running()
}

// GetStatusSnapshot returns the last published snapshot, or nil before the
// first completed cycle. The snapshot is immutable; callers must not modify
// it.
func (e *Engine) GetStatusSnapshot() *StatusSnapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshot
}

func (e *Engine) GetLogWindow() logwindow.Window {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.window
}

// ClearLogWindow sets the cutoff; following updates only show lines newer
// than it, plus one synthetic marker.
func (e *Engine) ClearLogWindow(cutoff time.Time) {
	e.mu.Lock()
	e.cutoff = &cutoff
	e.mu.Unlock()
}

// ResetLogCutoff removes the cutoff; the next update restores full
// visibility.
func (e *Engine) ResetLogCutoff() {
	e.mu.Lock()
	e.cutoff = nil
	e.mu.Unlock()
}

// Subscribe registers a callback invoked with each published snapshot.
func (e *Engine) Subscribe(fn func(*StatusSnapshot)) {
	e.mu.Lock()
	e.subscribers = append(e.subscribers, fn)
	e.mu.Unlock()
}

func (e *Engine) runStatusCycle(ctx context.Context) {
	// An unexpected fault inside a cycle is caught at the cycle boundary;
	// it publishes a degraded snapshot and polling continues next
	// interval.
	defer func() {
		if r := recover(); r != nil {
			logger.Error("status poll cycle fault: ", r)
			e.publish(ctx, &StatusSnapshot{
				ID:         uuid.Must(uuid.NewV4()).String(),
				Time:       time.Now(),
				NatRules:   []facts.NatRuleFact{},
				Interfaces: []facts.InterfaceFact{},
				Degraded:   []string{"cycle"},
			})
		}
	}()

	e.publish(ctx, e.buildSnapshot(ctx))
}

func (e *Engine) publish(ctx context.Context, snap *StatusSnapshot) {
	// The cancellation state captured at cycle start decides whether the
	// in-flight result is published or discarded.
	if ctx.Err() != nil {
		return
	}

	e.mu.Lock()
	e.snapshot = snap
	subs := make([]func(*StatusSnapshot), len(e.subscribers))
	copy(subs, e.subscribers)
	e.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func (e *Engine) buildSnapshot(ctx context.Context) *StatusSnapshot {
	snap := &StatusSnapshot{
		ID:         uuid.Must(uuid.NewV4()).String(),
		Time:       time.Now(),
		NatRules:   []facts.NatRuleFact{},
		Interfaces: []facts.InterfaceFact{},
	}

	defs, globalEnabled, err := e.tunnelService.Snapshot()
	if err != nil {
		logger.Warning("config snapshot failed: ", err)
		snap.Degraded = append(snap.Degraded, "config")
		defs = nil
		globalEnabled = false
	}

	serviceName, err := e.settingService.GetServiceName()
	if err != nil {
		serviceName = "udp2raw"
	}

	live, err := e.collector.ListInstances(ctx, serviceName)
	if err != nil {
		logger.Warning("process query failed: ", err)
		snap.Degraded = append(snap.Degraded, "processes")
		live = nil
	}

	dump, err := e.collector.NatTable(ctx)
	if err != nil {
		logger.Warning("nat table query failed: ", err)
		snap.Degraded = append(snap.Degraded, "nat")
	}
	snap.NatRules = append(snap.NatRules, facts.ParseNatRules(dump.V4, facts.FamilyV4)...)
	snap.NatRules = append(snap.NatRules, facts.ParseNatRules(dump.V6, facts.FamilyV6)...)

	ifaces, err := e.collector.Interfaces(ctx)
	if err != nil {
		logger.Warning("interface query failed: ", err)
		snap.Degraded = append(snap.Degraded, "interfaces")
	} else {
		snap.Interfaces = ifaces
	}

	result := reconcile.Reconcile(defs, globalEnabled, live)
	snap.GlobalEnabled = result.GlobalEnabled
	snap.Tunnels = result.Tunnels
	snap.ActiveInstances = result.ActiveInstances

	return snap
}

func (e *Engine) runLogCycle(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("log poll cycle fault: ", r)
		}
	}()

	tag, err := e.settingService.GetLogTag()
	if err != nil {
		tag = "udp2raw"
	}
	maxLines, err := e.settingService.GetLogMaxLines()
	if err != nil {
		maxLines = 120
	}
	minLevel, err := e.settingService.GetLogMinLevel()
	if err != nil {
		minLevel = "info"
	}

	raw, err := e.collector.LogTail(ctx, tag, maxLines)
	if err != nil {
		// Keep the previous window; a stale view beats a blank one.
		logger.Warning("log tail failed: ", err)
		return
	}

	e.mu.RLock()
	cutoff := e.cutoff
	e.mu.RUnlock()

	window := logwindow.Update(raw, cutoff, minLevel, maxLines)

	if ctx.Err() != nil {
		return
	}

	e.mu.Lock()
	e.window = window
	e.mu.Unlock()
}
