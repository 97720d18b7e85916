package cronjob

import (
	"time"

	"github.com/igor04091968/tun-status/monitor"

	"github.com/robfig/cron/v3"
)

type CronJob struct {
	cron *cron.Cron
}

func NewCronJob() *CronJob {
	return &CronJob{}
}

func (c *CronJob) Start(loc *time.Location, historyAge int, engine *monitor.Engine) error {
	c.cron = cron.New(cron.WithLocation(loc), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	_, err := c.cron.AddJob("@every 1m", NewStatusHistoryJob(engine))
	if err != nil {
		return err
	}

	_, err = c.cron.AddJob("@daily", NewDelStatusHistoryJob(historyAge))
	if err != nil {
		return err
	}

	c.cron.Start()
	return nil
}

func (c *CronJob) Stop() {
	if c.cron != nil {
		c.cron.Stop()
	}
}
