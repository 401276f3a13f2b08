package server

import (
	"github.com/okibi/gateway-bridge/internal/server/middleware"
	v1 "github.com/okibi/gateway-bridge/internal/server/v1"
)

func (s *Server) setupRoutes() {
	healthHandler := v1.NewHealthHandler()
	s.router.GET("/health", healthHandler.Health)

	api := s.router.Group("/v1")
	api.Use(middleware.Tracing("gateway-bridge"))
	api.Use(middleware.Auth(s.config.Server.APIKeys))

	limiter := middleware.NewRateLimiter(s.config.RateLimit.RequestsPerSecond, s.config.RateLimit.Burst, s.logger)
	api.Use(limiter.Middleware())

	modelHandler := v1.NewModelHandler(s.discovery, s.provider)
	api.GET("/models", modelHandler.ListModels)
	api.POST("/models/refresh", modelHandler.RefreshModels)

	cacheHandler := v1.NewCacheHandler(s.discovery, s.provider)
	api.GET("/cache", cacheHandler.Status)
	api.DELETE("/cache", cacheHandler.Clear)

	if s.repo != nil {
		auditHandler := v1.NewAuditHandler(s.repo)
		api.GET("/events", auditHandler.Recent)
	}
}
