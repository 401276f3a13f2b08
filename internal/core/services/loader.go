package services

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/okibi/gateway-bridge/internal/core/domain"
	"github.com/okibi/gateway-bridge/internal/core/ports"
	"github.com/okibi/gateway-bridge/internal/gate"
	"github.com/okibi/gateway-bridge/pkg/api"
)

// Provider is what the host receives at provider-configuration time: the
// resolved credential, the discovered (or fallback) model list in the host's
// registry shape, and the transport that authenticates backend-bound calls.
type Provider struct {
	Credential string
	Models     []api.Model
	Transport  *gate.Transport
	Config     domain.EffectiveConfig
}

// ProviderLoader is the orchestrator invoked by the host when the provider is
// configured. It is the only place a missing credential is fatal; discovery
// failures degrade inside the DiscoveryService.
type ProviderLoader struct {
	logger      *zap.Logger
	discovery   *DiscoveryService
	credentials ports.CredentialSource
	settings    domain.ProviderSettings
	next        http.RoundTripper
}

func NewProviderLoader(logger *zap.Logger, discovery *DiscoveryService, credentials ports.CredentialSource, settings domain.ProviderSettings) *ProviderLoader {
	return &ProviderLoader{
		logger:      logger,
		discovery:   discovery,
		credentials: credentials,
		settings:    settings,
	}
}

// WithBaseTransport overrides the transport the gate forwards to.
func (l *ProviderLoader) WithBaseTransport(next http.RoundTripper) *ProviderLoader {
	l.next = next
	return l
}

// Load resolves the effective configuration, discovers models, and builds
// the credential-injecting transport bound to the resolved configuration.
func (l *ProviderLoader) Load(ctx context.Context) (*Provider, error) {
	credential, err := l.credentials.Credential(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve credential: %w", err)
	}
	if credential == "" {
		return nil, domain.ErrMissingCredential
	}

	cfg := domain.Resolve(l.settings, credential)

	// refresh_on_list means the host prefers a forced refresh over a cache
	// hit on every discovery call.
	models := l.discovery.FetchModels(ctx, cfg, cfg.RefreshOnList)

	l.logger.Info("Provider loaded",
		zap.String("endpoint", cfg.BaseURL),
		zap.Int("models", len(models)),
		zap.Bool("refresh_on_list", cfg.RefreshOnList),
	)

	return &Provider{
		Credential: credential,
		Models:     api.FromDescriptors(models),
		Transport:  gate.NewTransport(cfg, l.next),
		Config:     cfg,
	}, nil
}
