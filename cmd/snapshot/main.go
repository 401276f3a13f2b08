// Command snapshot runs one discovery pass against the configured backend
// and writes the resulting catalog to a YAML file, which can later serve as
// the provider's default model list.
package main

import (
	"context"
	"flag"

	"go.uber.org/zap"

	memorycache "github.com/okibi/gateway-bridge/internal/adapters/cache/memory"
	"github.com/okibi/gateway-bridge/internal/config"
	"github.com/okibi/gateway-bridge/internal/core/domain"
	"github.com/okibi/gateway-bridge/internal/core/services"
	"github.com/okibi/gateway-bridge/internal/platform/logger"
)

func main() {
	out := flag.String("out", "models.yaml", "Output catalog path")
	flag.Parse()

	logger.Initialize(logger.DefaultConfig())
	log := logger.Get()
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", zap.Error(err))
	}
	if cfg.Provider.APIKey == "" {
		log.Fatal("Provider setup failed", zap.Error(domain.ErrMissingCredential))
	}

	effective := domain.Resolve(cfg.Provider.Settings, cfg.Provider.APIKey)

	discovery := services.NewDiscoveryService(log, memorycache.New())
	snapshots := services.NewSnapshotService(log, discovery)

	if err := snapshots.Export(context.Background(), effective, *out); err != nil {
		log.Fatal("Snapshot failed", zap.Error(err))
	}
}
