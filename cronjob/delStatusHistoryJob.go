package cronjob

import (
	"time"

	"github.com/igor04091968/tun-status/database"
	"github.com/igor04091968/tun-status/database/model"
	"github.com/igor04091968/tun-status/logger"
)

// DelStatusHistoryJob prunes status history rows older than the configured
// age in days.
type DelStatusHistoryJob struct {
	ageDays int
}

func NewDelStatusHistoryJob(ageDays int) *DelStatusHistoryJob {
	return &DelStatusHistoryJob{ageDays: ageDays}
}

func (j *DelStatusHistoryJob) Run() {
	limit := time.Now().AddDate(0, 0, -j.ageDays).Unix()
	err := database.GetDB().
		Where("date_time < ?", limit).
		Delete(&model.StatusRecord{}).Error
	if err != nil {
		logger.Warning("delete old status history failed: ", err)
	}
}
