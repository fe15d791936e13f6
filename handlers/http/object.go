package httpHandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inventory-server/auth"
	"inventory-server/cache"
	"inventory-server/usecases"
)

type ObjectHandler struct {
	useCase  *usecases.ObjectUseCase
	recCache *cache.RecommendationCache
}

func NewObjectHandler(useCase *usecases.ObjectUseCase, recCache *cache.RecommendationCache) *ObjectHandler {
	return &ObjectHandler{useCase: useCase, recCache: recCache}
}

type ObjectRequest struct {
	Name         string `json:"name"`
	SizeConcept  string `json:"size_concept"`
	ObjectTypeID uint   `json:"object_type_id"`
}

type MoveObjectRequest struct {
	TargetDrawerID uint `json:"target_drawer_id" binding:"required"`
}

// Create handles POST /api/v1/drawers/:id/objects
func (h *ObjectHandler) Create(c *gin.Context) {
	drawerID := parseID(c, "id")
	if drawerID == 0 {
		return
	}
	var req ObjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	obj, err := h.useCase.CreateObject(auth.UserFromContext(c), drawerID, usecases.ObjectInput{
		Name:         req.Name,
		SizeConcept:  req.SizeConcept,
		ObjectTypeID: req.ObjectTypeID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.recCache.Invalidate(drawerID)
	c.JSON(http.StatusCreated, gin.H{"message": "Object created successfully", "data": obj})
}

// ListByDrawer handles GET /api/v1/drawers/:id/objects
func (h *ObjectHandler) ListByDrawer(c *gin.Context) {
	drawerID := parseID(c, "id")
	if drawerID == 0 {
		return
	}
	skip, limit := pagination(c)
	sortByName := c.Query("sort_by_name") == "true"

	objects, err := h.useCase.GetDrawerObjects(auth.UserFromContext(c), drawerID, skip, limit, sortByName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": objects, "count": len(objects)})
}

// Update handles PUT /api/v1/objects/:id
func (h *ObjectHandler) Update(c *gin.Context) {
	objectID := parseID(c, "id")
	if objectID == 0 {
		return
	}
	var req ObjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	obj, err := h.useCase.UpdateObject(auth.UserFromContext(c), objectID, usecases.ObjectInput{
		Name:         req.Name,
		SizeConcept:  req.SizeConcept,
		ObjectTypeID: req.ObjectTypeID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	if obj == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Object not found"})
		return
	}

	h.recCache.Invalidate(obj.DrawerID)
	c.JSON(http.StatusOK, gin.H{"message": "Object updated successfully", "data": obj})
}

// Delete handles DELETE /api/v1/objects/:id
func (h *ObjectHandler) Delete(c *gin.Context) {
	objectID := parseID(c, "id")
	if objectID == 0 {
		return
	}
	obj, err := h.useCase.DeleteObject(auth.UserFromContext(c), objectID)
	if err != nil {
		respondError(c, err)
		return
	}
	if obj == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Object not found"})
		return
	}

	h.recCache.Invalidate(obj.DrawerID)
	c.JSON(http.StatusOK, gin.H{"message": "Object deleted successfully"})
}

// Move handles POST /api/v1/objects/:id/move
func (h *ObjectHandler) Move(c *gin.Context) {
	objectID := parseID(c, "id")
	if objectID == 0 {
		return
	}
	var req MoveObjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	// Remember the source drawer so its cached recommendation can be
	// dropped alongside the target's.
	before, err := h.useCase.GetObject(objectID)
	if err != nil {
		respondError(c, err)
		return
	}

	obj, err := h.useCase.MoveObject(auth.UserFromContext(c), objectID, req.TargetDrawerID)
	if err != nil {
		respondError(c, err)
		return
	}
	if obj == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Object not found"})
		return
	}

	if before != nil {
		h.recCache.Invalidate(before.DrawerID)
	}
	h.recCache.Invalidate(req.TargetDrawerID)
	c.JSON(http.StatusOK, gin.H{"message": "Object moved successfully", "data": obj})
}
