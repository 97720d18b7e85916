package telegram

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/igor04091968/tun-status/logger"
	"github.com/igor04091968/tun-status/monitor"
	"github.com/igor04091968/tun-status/reconcile"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Notifier pushes tunnel state transitions to the configured admins and
// answers /status with the latest snapshot.
type Notifier struct {
	cfg    *Config
	bot    *bot.Bot
	engine *monitor.Engine

	mu   sync.Mutex
	last map[string]reconcile.Status
}

// Start creates the bot, subscribes it to engine snapshots and runs it until
// ctx is cancelled.
func Start(ctx context.Context, cfg *Config, engine *monitor.Engine) (*Notifier, error) {
	n := &Notifier{
		cfg:    cfg,
		engine: engine,
		last:   make(map[string]reconcile.Status),
	}

	b, err := bot.New(cfg.BotToken)
	if err != nil {
		return nil, err
	}
	n.bot = b

	b.RegisterHandler(bot.HandlerTypeMessageText, "/status", bot.MatchTypeExact, n.handleStatus)

	engine.Subscribe(func(snap *monitor.StatusSnapshot) {
		n.onSnapshot(ctx, snap)
	})

	go b.Start(ctx)
	logger.Info("telegram bot started")
	return n, nil
}

func (n *Notifier) onSnapshot(ctx context.Context, snap *monitor.StatusSnapshot) {
	n.mu.Lock()
	var changes []string
	for _, t := range snap.Tunnels {
		prev, seen := n.last[t.Key]
		n.last[t.Key] = t.Status
		if !seen || prev == t.Status {
			continue
		}
		// Only transitions into or out of running are worth a push.
		if prev == reconcile.StatusRunning || t.Status == reconcile.StatusRunning {
			changes = append(changes, fmt.Sprintf("%s (%s): %s -> %s", t.Alias, t.Key, prev, t.Status))
		}
	}
	n.mu.Unlock()

	if len(changes) == 0 {
		return
	}
	n.broadcast(ctx, "Tunnel state changed:\n"+strings.Join(changes, "\n"))
}

func (n *Notifier) broadcast(ctx context.Context, text string) {
	for _, id := range n.cfg.AdminIDs {
		_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: id,
			Text:   text,
		})
		if err != nil {
			logger.Warning("telegram send failed: ", err)
		}
	}
}

func (n *Notifier) handleStatus(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || !n.cfg.isAdmin(update.Message.From.ID) {
		return
	}

	snap := n.engine.GetStatusSnapshot()
	if snap == nil {
		_, _ = b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "No status snapshot yet.",
		})
		return
	}

	var sb strings.Builder
	if snap.GlobalEnabled {
		sb.WriteString("Service: enabled\n")
	} else {
		sb.WriteString("Service: disabled\n")
	}
	fmt.Fprintf(&sb, "Active instances: %d\n", snap.ActiveInstances)
	for _, t := range snap.Tunnels {
		if t.Status == reconcile.StatusRunning {
			fmt.Fprintf(&sb, "%s: %s (pid %d)\n", t.Alias, t.Status, t.PID)
		} else {
			fmt.Fprintf(&sb, "%s: %s\n", t.Alias, t.Status)
		}
	}
	if len(snap.Degraded) > 0 {
		fmt.Fprintf(&sb, "Check failed: %s\n", strings.Join(snap.Degraded, ", "))
	}

	_, _ = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   sb.String(),
	})
}
