package cronjob

import (
	"github.com/igor04091968/tun-status/database"
	"github.com/igor04091968/tun-status/database/model"
	"github.com/igor04091968/tun-status/logger"
	"github.com/igor04091968/tun-status/monitor"
	"github.com/igor04091968/tun-status/reconcile"
)

// StatusHistoryJob persists a summary of the latest status snapshot.
type StatusHistoryJob struct {
	engine *monitor.Engine
}

func NewStatusHistoryJob(engine *monitor.Engine) *StatusHistoryJob {
	return &StatusHistoryJob{engine: engine}
}

func (j *StatusHistoryJob) Run() {
	snap := j.engine.GetStatusSnapshot()
	if snap == nil {
		return
	}

	running := 0
	for _, t := range snap.Tunnels {
		if t.Status == reconcile.StatusRunning {
			running++
		}
	}

	record := model.StatusRecord{
		DateTime: snap.Time.Unix(),
		Total:    len(snap.Tunnels),
		Running:  running,
		Active:   snap.ActiveInstances,
		Degraded: len(snap.Degraded) > 0,
	}
	if err := database.GetDB().Create(&record).Error; err != nil {
		logger.Warning("save status history failed: ", err)
	}
}
