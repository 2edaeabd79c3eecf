package handler

import (
	"github.com/gin-gonic/gin"

	"encomendas/internal/service"
)

// CacheHandler exposes parse-cache observability endpoints.
type CacheHandler struct {
	parseService service.ParseService
}

// NewCacheHandler creates a new CacheHandler.
func NewCacheHandler(parseService service.ParseService) *CacheHandler {
	return &CacheHandler{parseService: parseService}
}

// Stats handles GET /api/v1/cache/stats
// @Summary Parse cache statistics
// @Tags cache
// @Produce json
// @Success 200 {object} APIResponse{data=domain.CacheStats}
// @Router /cache/stats [get]
func (h *CacheHandler) Stats(c *gin.Context) {
	stats, err := h.parseService.CacheStats(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, stats)
}

// Sweep handles POST /api/v1/cache/sweep
// @Summary Delete expired cache entries now
// @Tags cache
// @Produce json
// @Success 200 {object} APIResponse
// @Router /cache/sweep [post]
func (h *CacheHandler) Sweep(c *gin.Context) {
	removed, err := h.parseService.SweepCache(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"removed": removed})
}
