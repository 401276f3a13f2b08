package services

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/okibi/gateway-bridge/internal/core/domain"
	"github.com/okibi/gateway-bridge/pkg/schema"
)

// catalogFile is the on-disk snapshot layout.
type catalogFile struct {
	Models []schema.ModelDescriptor `yaml:"models"`
}

// SnapshotService exports discovery results to a YAML catalog and reads them
// back. A loaded snapshot is typically fed into ProviderSettings as the
// caller-supplied default model list, so a previously seen catalog survives
// backend outages across restarts.
type SnapshotService struct {
	logger    *zap.Logger
	discovery *DiscoveryService
}

func NewSnapshotService(logger *zap.Logger, discovery *DiscoveryService) *SnapshotService {
	return &SnapshotService{logger: logger, discovery: discovery}
}

// Export runs one discovery pass for cfg and writes the catalog to path.
func (s *SnapshotService) Export(ctx context.Context, cfg domain.EffectiveConfig, path string) error {
	models := s.discovery.FetchModels(ctx, cfg, true)
	if err := SaveSnapshot(path, models); err != nil {
		return fmt.Errorf("failed to save catalog snapshot: %w", err)
	}
	s.logger.Info("Catalog snapshot written",
		zap.String("path", path),
		zap.Int("models", len(models)),
	)
	return nil
}

// SaveSnapshot writes models to a YAML catalog file.
func SaveSnapshot(path string, models []schema.ModelDescriptor) error {
	data, err := yaml.Marshal(catalogFile{Models: models})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadSnapshot reads a YAML catalog, dropping entries without an id.
func LoadSnapshot(path string) ([]schema.ModelDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	models := make([]schema.ModelDescriptor, 0, len(file.Models))
	for _, m := range file.Models {
		if m.ID == "" {
			continue
		}
		models = append(models, m)
	}
	return models, nil
}
