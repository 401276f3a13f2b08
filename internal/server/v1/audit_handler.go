package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/okibi/gateway-bridge/internal/store"
)

type AuditHandler struct {
	repo store.Repository
}

func NewAuditHandler(repo store.Repository) *AuditHandler {
	return &AuditHandler{repo: repo}
}

// Recent lists the newest discovery fetch events.
func (h *AuditHandler) Recent(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	events, err := h.repo.Audit().Recent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read audit events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"object": "list",
		"data":   events,
	})
}
