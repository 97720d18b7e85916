package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/igor04091968/tun-status/database/model"
	"github.com/igor04091968/tun-status/logger"
	"github.com/igor04091968/tun-status/monitor"
	"github.com/igor04091968/tun-status/service"
	"github.com/igor04091968/tun-status/util/common"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const sessionUserKey = "user"

// ApiService exposes the diagnostic engine and the tunnel definition store
// over REST.
type ApiService struct {
	service.UserService
	service.SettingService
	tunnelService *service.TunnelService
	engine        *monitor.Engine
}

func NewApiService(tunnelService *service.TunnelService, engine *monitor.Engine) *ApiService {
	return &ApiService{
		tunnelService: tunnelService,
		engine:        engine,
	}
}

func (a *ApiService) RegisterRoutes(g *gin.RouterGroup) {
	g.POST("/login", a.login)
	g.POST("/logout", a.logout)

	auth := g.Group("", a.requireLogin)
	{
		auth.GET("/status", a.getStatus)
		auth.GET("/interfaces", a.getInterfaces)
		auth.GET("/nat", a.getNatRules)

		auth.GET("/logs", a.getLogs)
		auth.GET("/logs/app", a.getAppLogs)
		auth.POST("/logs/clear", a.clearLogs)
		auth.POST("/logs/restore", a.restoreLogs)

		auth.POST("/poll/start", a.startPolling)
		auth.POST("/poll/stop", a.stopPolling)

		auth.POST("/service/enable", a.enableService)
		auth.POST("/service/disable", a.disableService)

		tunnels := auth.Group("/tunnels")
		{
			tunnels.GET("", a.getTunnels)
			tunnels.POST("", a.createTunnel)
			tunnels.PUT("/:id", a.updateTunnel)
			tunnels.DELETE("/:id", a.deleteTunnel)
		}
	}
}

func (a *ApiService) requireLogin(c *gin.Context) {
	session := sessions.Default(c)
	if session.Get(sessionUserKey) == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, msgResponse{Success: false, Msg: "login required"})
		return
	}
	c.Next()
}

func (a *ApiService) login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := a.UserService.Login(username, password)
	if err != nil {
		jsonMsg(c, "login", common.NewError("invalid credentials"))
		return
	}

	session := sessions.Default(c)
	session.Set(sessionUserKey, user.Username)
	if err := session.Save(); err != nil {
		jsonMsg(c, "login", err)
		return
	}
	jsonMsg(c, "login", nil)
}

func (a *ApiService) logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	jsonMsg(c, "logout", session.Save())
}

func (a *ApiService) getStatus(c *gin.Context) {
	snap := a.engine.GetStatusSnapshot()
	if snap == nil {
		jsonObj(c, gin.H{"ready": false}, nil)
		return
	}
	jsonObj(c, snap, nil)
}

func (a *ApiService) getInterfaces(c *gin.Context) {
	snap := a.engine.GetStatusSnapshot()
	if snap == nil {
		jsonObj(c, []interface{}{}, nil)
		return
	}
	jsonObj(c, snap.Interfaces, nil)
}

func (a *ApiService) getNatRules(c *gin.Context) {
	snap := a.engine.GetStatusSnapshot()
	if snap == nil {
		jsonObj(c, []interface{}{}, nil)
		return
	}
	jsonObj(c, snap.NatRules, nil)
}

func (a *ApiService) getLogs(c *gin.Context) {
	jsonObj(c, a.engine.GetLogWindow(), nil)
}

func (a *ApiService) getAppLogs(c *gin.Context) {
	count, err := strconv.Atoi(c.DefaultQuery("count", "100"))
	if err != nil || count < 0 {
		jsonMsg(c, "get app logs", common.NewError("invalid count"))
		return
	}
	level := c.DefaultQuery("level", "info")
	jsonObj(c, logger.GetLogs(count, level), nil)
}

func (a *ApiService) clearLogs(c *gin.Context) {
	a.engine.ClearLogWindow(time.Now())
	jsonMsg(c, "clear logs", nil)
}

func (a *ApiService) restoreLogs(c *gin.Context) {
	a.engine.ResetLogCutoff()
	jsonMsg(c, "restore logs", nil)
}

func (a *ApiService) startPolling(c *gin.Context) {
	statusInterval, err := a.SettingService.GetStatusInterval()
	if err != nil {
		jsonMsg(c, "start polling", err)
		return
	}
	logInterval, err := a.SettingService.GetLogInterval()
	if err != nil {
		jsonMsg(c, "start polling", err)
		return
	}
	a.engine.StartPolling(statusInterval, logInterval)
	jsonMsg(c, "start polling", nil)
}

func (a *ApiService) stopPolling(c *gin.Context) {
	a.engine.StopPolling()
	jsonMsg(c, "stop polling", nil)
}

func (a *ApiService) enableService(c *gin.Context) {
	jsonMsg(c, "enable service", a.SettingService.SetGlobalEnabled(true))
}

func (a *ApiService) disableService(c *gin.Context) {
	jsonMsg(c, "disable service", a.SettingService.SetGlobalEnabled(false))
}

func (a *ApiService) getTunnels(c *gin.Context) {
	configs, err := a.tunnelService.GetAll()
	jsonObj(c, configs, err)
}

func (a *ApiService) createTunnel(c *gin.Context) {
	var config model.TunnelConfig
	if err := c.ShouldBindJSON(&config); err != nil {
		jsonMsg(c, "create tunnel", common.NewError("invalid request body: %v", err))
		return
	}
	config.ID = 0
	jsonMsg(c, "create tunnel", a.tunnelService.Save(&config))
}

func (a *ApiService) updateTunnel(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonMsg(c, "update tunnel", err)
		return
	}
	var config model.TunnelConfig
	if err := c.ShouldBindJSON(&config); err != nil {
		jsonMsg(c, "update tunnel", common.NewError("invalid request body: %v", err))
		return
	}
	orig, err := a.tunnelService.Get(uint(id))
	if err != nil {
		jsonMsg(c, "update tunnel", common.NewError("tunnel config not found"))
		return
	}
	config.ID = orig.ID
	jsonMsg(c, "update tunnel", a.tunnelService.Save(&config))
}

func (a *ApiService) deleteTunnel(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonMsg(c, "delete tunnel", err)
		return
	}
	jsonMsg(c, "delete tunnel", a.tunnelService.Delete(uint(id)))
}
