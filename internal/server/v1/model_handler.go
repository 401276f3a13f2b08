package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/okibi/gateway-bridge/internal/core/domain"
	"github.com/okibi/gateway-bridge/internal/core/services"
	"github.com/okibi/gateway-bridge/pkg/api"
)

type ModelHandler struct {
	discovery *services.DiscoveryService
	provider  domain.EffectiveConfig
}

func NewModelHandler(discovery *services.DiscoveryService, provider domain.EffectiveConfig) *ModelHandler {
	return &ModelHandler{discovery: discovery, provider: provider}
}

// ListModels serves the current model list, honoring the provider's
// refresh-on-list policy. Discovery never fails outright, so this endpoint
// always answers 200 with some usable list.
func (h *ModelHandler) ListModels(c *gin.Context) {
	models := h.discovery.FetchModels(c.Request.Context(), h.provider, h.provider.RefreshOnList)

	c.JSON(http.StatusOK, gin.H{
		"object": "list",
		"data":   api.FromDescriptors(models),
	})
}

// RefreshModels drops the cache entry and force-fetches from the backend.
func (h *ModelHandler) RefreshModels(c *gin.Context) {
	models := h.discovery.RefreshModels(c.Request.Context(), h.provider)

	c.JSON(http.StatusOK, gin.H{
		"object": "list",
		"data":   api.FromDescriptors(models),
	})
}
