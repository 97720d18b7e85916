package app

import (
	"context"
	"log"
	"os"

	"github.com/igor04091968/tun-status/api"
	"github.com/igor04091968/tun-status/collector"
	"github.com/igor04091968/tun-status/config"
	"github.com/igor04091968/tun-status/cronjob"
	"github.com/igor04091968/tun-status/database"
	"github.com/igor04091968/tun-status/logger"
	"github.com/igor04091968/tun-status/monitor"
	"github.com/igor04091968/tun-status/service"
	"github.com/igor04091968/tun-status/telegram"
	"github.com/igor04091968/tun-status/web"

	"github.com/op/go-logging"
)

type APP struct {
	service.SettingService
	tunnelService  *service.TunnelService
	engine         *monitor.Engine
	webServer      *web.Server
	cronJob        *cronjob.CronJob
	telegramConfig *telegram.Config
	botCancel      context.CancelFunc
}

func NewApp() *APP {
	return &APP{}
}

func (a *APP) Init() error {
	log.Printf("%v %v", config.GetName(), config.GetVersion())

	a.initLog()

	err := database.InitDB(config.GetDBPath())
	if err != nil {
		return err
	}

	a.initTelegramConfig()

	a.tunnelService = service.NewTunnelService()
	a.engine = monitor.NewEngine(a.tunnelService, collector.New())
	a.cronJob = cronjob.NewCronJob()
	a.webServer = web.NewServer(api.NewApiService(a.tunnelService, a.engine))

	return nil
}

func (a *APP) Start() error {
	loc, err := a.SettingService.GetTimeLocation()
	if err != nil {
		return err
	}
	historyAge, err := a.SettingService.GetHistoryAge()
	if err != nil {
		return err
	}
	err = a.cronJob.Start(loc, historyAge, a.engine)
	if err != nil {
		return err
	}

	err = a.webServer.Start()
	if err != nil {
		return err
	}

	statusInterval, err := a.SettingService.GetStatusInterval()
	if err != nil {
		return err
	}
	logInterval, err := a.SettingService.GetLogInterval()
	if err != nil {
		return err
	}
	a.engine.StartPolling(statusInterval, logInterval)

	if a.telegramConfig != nil && a.telegramConfig.Enabled {
		ctx, cancel := context.WithCancel(context.Background())
		a.botCancel = cancel
		if _, err := telegram.Start(ctx, a.telegramConfig, a.engine); err != nil {
			logger.Error("start telegram bot failed: ", err)
			cancel()
			a.botCancel = nil
		}
	}

	return nil
}

func (a *APP) Stop() {
	a.engine.StopPolling()
	a.cronJob.Stop()
	if a.botCancel != nil {
		a.botCancel()
		a.botCancel = nil
	}
	err := a.webServer.Stop()
	if err != nil {
		logger.Warning("stop web server err: ", err)
	}
}

func (a *APP) GetEngine() *monitor.Engine {
	return a.engine
}

func (a *APP) initLog() {
	switch config.GetLogLevel() {
	case config.Debug:
		logger.InitLogger(logging.DEBUG)
	case config.Info:
		logger.InitLogger(logging.INFO)
	case config.Warn:
		logger.InitLogger(logging.WARNING)
	case config.Error:
		logger.InitLogger(logging.ERROR)
	default:
		log.Fatal("unknown log level:", config.GetLogLevel())
	}
}

func (a *APP) initTelegramConfig() {
	cfg, err := telegram.LoadConfig(config.GetTelegramConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("telegram config not found, bot is disabled")
			return
		}
		logger.Warning("read telegram config failed: ", err)
		return
	}
	a.telegramConfig = cfg
}
