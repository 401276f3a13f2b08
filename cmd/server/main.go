package main

import (
	"context"
	"net/http"
	"os"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/okibi/gateway-bridge/cmd"
	memorycache "github.com/okibi/gateway-bridge/internal/adapters/cache/memory"
	rediscache "github.com/okibi/gateway-bridge/internal/adapters/cache/redis"
	"github.com/okibi/gateway-bridge/internal/config"
	"github.com/okibi/gateway-bridge/internal/core/ports"
	"github.com/okibi/gateway-bridge/internal/core/services"
	"github.com/okibi/gateway-bridge/internal/platform/logger"
	"github.com/okibi/gateway-bridge/internal/platform/otel"
	"github.com/okibi/gateway-bridge/internal/server"
	"github.com/okibi/gateway-bridge/internal/store"
	"github.com/okibi/gateway-bridge/internal/store/sqlite"
)

func main() {
	cmd.CheckForUpdates()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Get().Fatal("Failed to load config", zap.Error(err))
	}

	logger.Initialize(logger.DefaultConfig())
	log := logger.Get()
	defer logger.Sync()

	shutdownTracer, err := otel.InitTracer("gateway-bridge", log, os.Stdout)
	if err != nil {
		log.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracer(ctx)
	}()

	// Cache backend: in-process by default, redis when several bridge
	// instances should share discovery results.
	var cache ports.ModelCache = memorycache.New()
	if cfg.Redis.Enabled {
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cache = rediscache.New(client)
		log.Info("Using redis model cache", zap.String("addr", cfg.Redis.Addr))
	}

	opts := []services.DiscoveryOption{
		services.WithLimiter(rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)),
	}

	var repo store.Repository
	if cfg.Store.Enabled {
		repo, err = sqlite.NewStorage(cfg.Store.DSN)
		if err != nil {
			log.Fatal("Failed to open audit store", zap.Error(err))
		}
		defer func() {
			_ = repo.Close()
		}()
		opts = append(opts, services.WithAudit(store.NewSink(repo)))
	}

	discovery := services.NewDiscoveryService(log, cache, opts...)

	settings := cfg.Provider.Settings
	if settings.DefaultModels == nil && cfg.Provider.SnapshotPath != "" {
		if models, err := services.LoadSnapshot(cfg.Provider.SnapshotPath); err == nil {
			settings.DefaultModels = models
			log.Info("Loaded catalog snapshot", zap.Int("models", len(models)))
		}
	}

	credentials := ports.CredentialFunc(func(context.Context) (string, error) {
		return cfg.Provider.APIKey, nil
	})

	loader := services.NewProviderLoader(log, discovery, credentials, settings)
	provider, err := loader.Load(context.Background())
	if err != nil {
		log.Fatal("Provider setup failed", zap.Error(err))
	}

	srv := server.New(cfg, log, discovery, provider.Config, repo)

	log.Info("Starting management server", zap.String("port", cfg.Server.Port))
	if err := http.ListenAndServe(":"+cfg.Server.Port, srv.Handler()); err != nil {
		log.Fatal("Server failed", zap.Error(err))
	}
}
