package httpHandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inventory-server/auth"
	"inventory-server/cache"
	"inventory-server/entities"
	"inventory-server/pkg/metrics"
	"inventory-server/services"
	"inventory-server/usecases"
)

type RecommendationHandler struct {
	recommender *services.Recommender
	drawers     *usecases.DrawerUseCase
	objects     *usecases.ObjectUseCase
	recCache    *cache.RecommendationCache
}

func NewRecommendationHandler(
	recommender *services.Recommender,
	drawers *usecases.DrawerUseCase,
	objects *usecases.ObjectUseCase,
	recCache *cache.RecommendationCache,
) *RecommendationHandler {
	return &RecommendationHandler{
		recommender: recommender,
		drawers:     drawers,
		objects:     objects,
		recCache:    recCache,
	}
}

type RecommendationRequest struct {
	DrawerID uint `json:"drawer_id" binding:"required"`
}

type ApplyRecommendationsRequest struct {
	DrawerID uint                        `json:"drawer_id" binding:"required"`
	Actions  services.RecommendedActions `json:"actions"`
}

// DrawerRecommendations handles POST /api/v1/ai/drawer-recommendations
func (h *RecommendationHandler) DrawerRecommendations(c *gin.Context) {
	var req RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Drawer ID is required"})
		return
	}

	caller := auth.UserFromContext(c)
	drawer, err := h.drawers.GetDrawer(caller, req.DrawerID)
	if err != nil {
		respondError(c, err)
		return
	}
	if drawer == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Drawer not found"})
		return
	}

	if rec, ok := h.recCache.Get(drawer.ID); ok {
		c.JSON(http.StatusOK, rec)
		return
	}

	objects, err := h.objects.GetObjectsByDrawer(drawer.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	metrics.RecommendationRequests.Inc()
	rec, err := h.recommender.Request(c.Request.Context(), drawer, objects)
	if err != nil {
		metrics.RecommendationFailures.Inc()
		respondError(c, err)
		return
	}

	h.recCache.Put(drawer.ID, rec)
	h.drawers.RegisterAction(drawer.ID, caller, entities.ActionAIRecommendation,
		"Generated AI recommendations for drawer: "+drawer.Name)

	c.JSON(http.StatusOK, rec)
}

// ApplyRecommendations handles POST /api/v1/ai/apply-recommendations
func (h *RecommendationHandler) ApplyRecommendations(c *gin.Context) {
	var req ApplyRecommendationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Drawer ID is required"})
		return
	}

	caller := auth.UserFromContext(c)
	drawer, err := h.drawers.GetDrawer(caller, req.DrawerID)
	if err != nil {
		respondError(c, err)
		return
	}
	if drawer == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Drawer not found"})
		return
	}

	summary, err := h.recommender.Apply(caller, drawer.ID, req.Actions)
	if err != nil {
		respondError(c, err)
		return
	}

	h.recCache.Invalidate(drawer.ID)
	c.JSON(http.StatusOK, gin.H{
		"message": "Recommendations applied successfully",
		"results": summary,
	})
}
