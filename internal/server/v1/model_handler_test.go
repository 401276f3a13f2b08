package v1_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	memorycache "github.com/okibi/gateway-bridge/internal/adapters/cache/memory"
	"github.com/okibi/gateway-bridge/internal/core/domain"
	"github.com/okibi/gateway-bridge/internal/core/services"
	"github.com/okibi/gateway-bridge/internal/server/validator"
	v1 "github.com/okibi/gateway-bridge/internal/server/v1"
)

func setupEngine(t *testing.T, backendBody string) *gin.Engine {
	t.Helper()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(backendBody))
	}))
	t.Cleanup(backend.Close)

	cfg := domain.Resolve(domain.ProviderSettings{BaseURL: backend.URL}, "sk-test")
	discovery := services.NewDiscoveryService(zap.NewNop(), memorycache.New())

	gin.SetMode(gin.TestMode)
	validator.Init()
	engine := gin.New()

	modelHandler := v1.NewModelHandler(discovery, cfg)
	engine.GET("/v1/models", modelHandler.ListModels)
	engine.POST("/v1/models/refresh", modelHandler.RefreshModels)

	cacheHandler := v1.NewCacheHandler(discovery, cfg)
	engine.GET("/v1/cache", cacheHandler.Status)
	engine.DELETE("/v1/cache", cacheHandler.Clear)

	return engine
}

func TestListModels(t *testing.T) {
	engine := setupEngine(t, `{"data":[{"id":"m1"},{"id":"m2"}]}`)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/v1/models", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Object string `json:"object"`
		Data   []struct {
			ID     string `json:"id"`
			Object string `json:"object"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "list", resp.Object)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "m1", resp.Data[0].ID)
	assert.Equal(t, "model", resp.Data[0].Object)
}

func TestListModels_BackendDownStillAnswers(t *testing.T) {
	engine := setupEngine(t, `not json at all`)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/v1/models", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "gpt-4o")
}

func TestCacheStatusAndClear(t *testing.T) {
	engine := setupEngine(t, `{"data":[{"id":"m1"}]}`)

	// Populate through a list call.
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/v1/models", nil)
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/v1/cache", nil)
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var status struct {
		Cached     bool `json:"cached"`
		Valid      bool `json:"valid"`
		ModelCount int  `json:"model_count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.True(t, status.Cached)
	assert.True(t, status.Valid)
	assert.Equal(t, 1, status.ModelCount)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodDelete, "/v1/cache", nil)
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/v1/cache", nil)
	engine.ServeHTTP(w, req)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.False(t, status.Cached)
}

func TestCacheClear_InvalidScope(t *testing.T) {
	engine := setupEngine(t, `{"data":[]}`)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/v1/cache", strings.NewReader(`{"scope":"bogus"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
