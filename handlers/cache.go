package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inventory-server/cache"
)

type CacheHandler struct {
	recCache *cache.RecommendationCache
}

func NewCacheHandler(recCache *cache.RecommendationCache) *CacheHandler {
	return &CacheHandler{recCache: recCache}
}

// GetCacheStats GET /api/v1/cache/stats
func (h *CacheHandler) GetCacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"stats":  h.recCache.Stats(),
	})
}

// ClearCache POST /api/v1/cache/clear
func (h *CacheHandler) ClearCache(c *gin.Context) {
	h.recCache.Clear()
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}
