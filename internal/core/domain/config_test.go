package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolve_Defaults(t *testing.T) {
	cfg := Resolve(ProviderSettings{}, "sk-test")

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, "sk-test", cfg.Credential)
	assert.Equal(t, DefaultCacheTTL, cfg.CacheTTL)
	assert.True(t, cfg.RefreshOnList)
}

func TestResolve_BlankEndpointDefaulted(t *testing.T) {
	cfg := Resolve(ProviderSettings{BaseURL: "   "}, "sk-test")
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
}

func TestResolve_InvalidTTLDiscarded(t *testing.T) {
	assert.Equal(t, DefaultCacheTTL, Resolve(ProviderSettings{CacheTTLMs: 0}, "k").CacheTTL)
	assert.Equal(t, DefaultCacheTTL, Resolve(ProviderSettings{CacheTTLMs: -500}, "k").CacheTTL)
	assert.Equal(t, 90*time.Second, Resolve(ProviderSettings{CacheTTLMs: 90_000}, "k").CacheTTL)
}

func TestResolve_RefreshOnListOverride(t *testing.T) {
	off := false
	cfg := Resolve(ProviderSettings{RefreshOnList: &off}, "k")
	assert.False(t, cfg.RefreshOnList)
}

func TestCacheKey_DistinctPerEndpointAndCredential(t *testing.T) {
	a := Resolve(ProviderSettings{BaseURL: "https://a.example.com/v1"}, "k1")
	b := Resolve(ProviderSettings{BaseURL: "https://a.example.com/v1"}, "k2")
	c := Resolve(ProviderSettings{BaseURL: "https://b.example.com/v1"}, "k1")

	assert.NotEqual(t, a.CacheKey(), b.CacheKey())
	assert.NotEqual(t, a.CacheKey(), c.CacheKey())

	// Trailing slashes do not split the cache.
	d := Resolve(ProviderSettings{BaseURL: "https://a.example.com/v1/"}, "k1")
	assert.Equal(t, a.CacheKey(), d.CacheKey())
}
