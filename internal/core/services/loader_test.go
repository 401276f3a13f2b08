package services_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	memorycache "github.com/okibi/gateway-bridge/internal/adapters/cache/memory"
	"github.com/okibi/gateway-bridge/internal/core/domain"
	"github.com/okibi/gateway-bridge/internal/core/ports"
	"github.com/okibi/gateway-bridge/internal/core/services"
)

func staticCredential(key string) ports.CredentialSource {
	return ports.CredentialFunc(func(context.Context) (string, error) {
		return key, nil
	})
}

func TestLoad_MissingCredential(t *testing.T) {
	discovery := services.NewDiscoveryService(zap.NewNop(), memorycache.New())
	loader := services.NewProviderLoader(zap.NewNop(), discovery, staticCredential(""), domain.ProviderSettings{})

	_, err := loader.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrMissingCredential)
}

func TestLoad_CredentialSourceError(t *testing.T) {
	boom := errors.New("keychain locked")
	source := ports.CredentialFunc(func(context.Context) (string, error) {
		return "", boom
	})

	discovery := services.NewDiscoveryService(zap.NewNop(), memorycache.New())
	loader := services.NewProviderLoader(zap.NewNop(), discovery, source, domain.ProviderSettings{})

	_, err := loader.Load(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestLoad_ReturnsModelsAndGate(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/models":
			_, _ = w.Write([]byte(`{"data":[{"id":"m1"},{"id":"m2"}]}`))
		default:
			// The gate must have injected the credential by the time any
			// other backend call arrives.
			assert.Equal(t, "Bearer sk-live", r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer backend.Close()

	discovery := services.NewDiscoveryService(zap.NewNop(), memorycache.New())
	loader := services.NewProviderLoader(
		zap.NewNop(),
		discovery,
		staticCredential("sk-live"),
		domain.ProviderSettings{BaseURL: backend.URL + "/v1"},
	)

	provider, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "sk-live", provider.Credential)
	require.Len(t, provider.Models, 2)
	assert.Equal(t, "m1", provider.Models[0].ID)
	assert.Equal(t, "model", provider.Models[0].Object)

	client := &http.Client{Transport: provider.Transport}
	resp, err := client.Post(backend.URL+"/v1/chat/completions", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLoad_DiscoveryFailureStillLoads(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer backend.Close()

	discovery := services.NewDiscoveryService(zap.NewNop(), memorycache.New())
	loader := services.NewProviderLoader(
		zap.NewNop(),
		discovery,
		staticCredential("sk-live"),
		domain.ProviderSettings{BaseURL: backend.URL + "/v1"},
	)

	provider, err := loader.Load(context.Background())
	require.NoError(t, err)
	// Built-in catalog keeps the provider usable.
	assert.NotEmpty(t, provider.Models)
}
