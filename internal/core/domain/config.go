package domain

import (
	"strings"
	"time"

	"github.com/okibi/gateway-bridge/pkg/schema"
)

const (
	// DefaultBaseURL is used when the host supplies no endpoint.
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultCacheTTL bounds how long a discovery result stays fresh.
	DefaultCacheTTL = 5 * time.Minute

	// DefaultRequestTimeout caps every upstream discovery call.
	DefaultRequestTimeout = 30 * time.Second
)

// ProviderSettings are the raw, host-supplied provider options. Every field
// is optional; resolution fills in defaults.
type ProviderSettings struct {
	BaseURL       string                   `mapstructure:"base_url" json:"base_url"`
	CacheTTLMs    int64                    `mapstructure:"cache_ttl_ms" json:"cache_ttl_ms"`
	RefreshOnList *bool                    `mapstructure:"refresh_on_list" json:"refresh_on_list"`
	DefaultModels []schema.ModelDescriptor `mapstructure:"default_models" json:"default_models"`
}

// EffectiveConfig is the resolved, immutable snapshot used for one loader
// invocation. It parametrizes both the cache key and the request gate.
type EffectiveConfig struct {
	BaseURL       string
	Credential    string
	CacheTTL      time.Duration
	RefreshOnList bool
	DefaultModels []schema.ModelDescriptor
}

// Resolve merges host settings with the stored credential. A blank endpoint
// falls back to the default; a non-positive TTL is discarded in favor of the
// default rather than rejected.
func Resolve(settings ProviderSettings, credential string) EffectiveConfig {
	base := strings.TrimSpace(settings.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}

	ttl := DefaultCacheTTL
	if settings.CacheTTLMs > 0 {
		ttl = time.Duration(settings.CacheTTLMs) * time.Millisecond
	}

	refresh := true
	if settings.RefreshOnList != nil {
		refresh = *settings.RefreshOnList
	}

	return EffectiveConfig{
		BaseURL:       base,
		Credential:    credential,
		CacheTTL:      ttl,
		RefreshOnList: refresh,
		DefaultModels: settings.DefaultModels,
	}
}

// CacheKey derives the deterministic cache identity for this configuration.
// Two endpoints or two credentials never share an entry; the separator keeps
// endpoint/credential concatenations from colliding.
func (c EffectiveConfig) CacheKey() string {
	return strings.TrimRight(c.BaseURL, "/") + "|" + c.Credential
}
