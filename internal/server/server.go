package server

import (
	"net/http"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/okibi/gateway-bridge/internal/config"
	"github.com/okibi/gateway-bridge/internal/core/domain"
	"github.com/okibi/gateway-bridge/internal/core/services"
	"github.com/okibi/gateway-bridge/internal/server/middleware"
	"github.com/okibi/gateway-bridge/internal/server/validator"
	"github.com/okibi/gateway-bridge/internal/store"
)

// Server exposes the management surface: model discovery, cache inspection
// and reset, and the audit trail. It is not the data path; backend-bound
// traffic goes through the request gate the loader hands to the host.
type Server struct {
	router    *gin.Engine
	config    *config.Config
	logger    *zap.Logger
	discovery *services.DiscoveryService
	provider  domain.EffectiveConfig
	repo      store.Repository // nil when the audit store is disabled
}

func New(cfg *config.Config, logger *zap.Logger, discovery *services.DiscoveryService, provider domain.EffectiveConfig, repo store.Repository) *Server {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	validator.Init()

	engine := gin.New()
	engine.Use(ginzap.RecoveryWithZap(logger, true))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger(logger))

	s := &Server{
		router:    engine,
		config:    cfg,
		logger:    logger,
		discovery: discovery,
		provider:  provider,
		repo:      repo,
	}

	s.setupRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}
