package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/okibi/gateway-bridge/internal/core/domain"
	"github.com/okibi/gateway-bridge/internal/core/services"
	"github.com/okibi/gateway-bridge/internal/server/validator"
)

type CacheHandler struct {
	discovery *services.DiscoveryService
	provider  domain.EffectiveConfig
}

func NewCacheHandler(discovery *services.DiscoveryService, provider domain.EffectiveConfig) *CacheHandler {
	return &CacheHandler{discovery: discovery, provider: provider}
}

// Status reports cache validity and age without touching the network.
func (h *CacheHandler) Status(c *gin.Context) {
	models, cached := h.discovery.CachedModels(h.provider)
	age, _ := h.discovery.CacheAge(h.provider)

	c.JSON(http.StatusOK, gin.H{
		"cached":      cached,
		"valid":       h.discovery.IsCacheValid(h.provider),
		"age_ms":      age.Milliseconds(),
		"model_count": len(models),
	})
}

type clearRequest struct {
	Scope string `json:"scope" binding:"omitempty,oneof=entry all"`
}

// Clear drops this provider's entry, or every entry with scope=all. Clearing
// an empty cache is a no-op.
func (h *CacheHandler) Clear(c *gin.Context) {
	var req clearRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": validator.Parse(err)})
			return
		}
	}

	var err error
	if req.Scope == "all" {
		err = h.discovery.ClearCache(nil)
	} else {
		err = h.discovery.ClearCache(&h.provider)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cache clear failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cleared": true})
}
