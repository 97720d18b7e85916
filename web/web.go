package web

import (
	"context"
	"net/http"
	"time"

	"github.com/igor04091968/tun-status/api"
	"github.com/igor04091968/tun-status/config"
	"github.com/igor04091968/tun-status/logger"
	"github.com/igor04091968/tun-status/service"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid/v5"
)

type Server struct {
	service.SettingService
	apiService *api.ApiService
	httpServer *http.Server
}

func NewServer(apiService *api.ApiService) *Server {
	return &Server{apiService: apiService}
}

func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = logger.Writer()
		gin.DefaultErrorWriter = logger.Writer()
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	maxAge, err := s.GetSessionMaxAge()
	if err != nil {
		return nil, err
	}
	secret := uuid.Must(uuid.NewV4()).Bytes()
	store := cookie.NewStore(secret)
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
	})
	engine.Use(sessions.Sessions("tun-status", store))

	s.apiService.RegisterRoutes(engine.Group("/api/v2"))

	return engine, nil
}

func (s *Server) Start() error {
	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listen, err := s.GetWebListen()
	if err != nil {
		return err
	}

	s.httpServer = &http.Server{
		Addr:    listen,
		Handler: engine,
	}

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("web server error: ", err)
		}
	}()
	logger.Info("web server listening on ", listen)
	return nil
}

func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
