package httpHandler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"inventory-server/auth"
	"inventory-server/usecases"
)

type DrawerHandler struct {
	useCase *usecases.DrawerUseCase
}

func NewDrawerHandler(useCase *usecases.DrawerUseCase) *DrawerHandler {
	return &DrawerHandler{useCase: useCase}
}

type DrawerRequest struct {
	Name   string `json:"name"`
	MaxObj int    `json:"max_obj"`
}

// parseID reads a positive integer path parameter. Zero means it was absent
// or malformed; the caller responds 400.
func parseID(c *gin.Context, name string) uint {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " parameter"})
		return 0
	}
	return uint(id)
}

// pagination reads skip/limit query params. The limit stays positive here so
// API pages are always bounded; unbounded reads are internal only.
func pagination(c *gin.Context) (skip, limit int) {
	skip, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))
	if limit <= 0 {
		limit = 100
	}
	return skip, limit
}

// Create handles POST /api/v1/drawers
func (h *DrawerHandler) Create(c *gin.Context) {
	var req DrawerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	drawer, err := h.useCase.CreateDrawer(auth.UserFromContext(c), usecases.DrawerInput{
		Name:   req.Name,
		MaxObj: req.MaxObj,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Drawer created successfully", "data": drawer})
}

// List handles GET /api/v1/drawers
func (h *DrawerHandler) List(c *gin.Context) {
	skip, limit := pagination(c)
	drawers, err := h.useCase.ListDrawers(auth.UserFromContext(c), skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": drawers, "count": len(drawers)})
}

// Get handles GET /api/v1/drawers/:id
func (h *DrawerHandler) Get(c *gin.Context) {
	id := parseID(c, "id")
	if id == 0 {
		return
	}
	drawer, err := h.useCase.GetDrawer(auth.UserFromContext(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if drawer == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Drawer not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": drawer})
}

// Update handles PUT /api/v1/drawers/:id
func (h *DrawerHandler) Update(c *gin.Context) {
	id := parseID(c, "id")
	if id == 0 {
		return
	}
	var req DrawerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	drawer, err := h.useCase.UpdateDrawer(auth.UserFromContext(c), id, usecases.DrawerInput{
		Name:   req.Name,
		MaxObj: req.MaxObj,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	if drawer == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Drawer not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Drawer updated successfully", "data": drawer})
}

// Delete handles DELETE /api/v1/drawers/:id
func (h *DrawerHandler) Delete(c *gin.Context) {
	id := parseID(c, "id")
	if id == 0 {
		return
	}
	drawer, err := h.useCase.DeleteDrawer(auth.UserFromContext(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if drawer == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Drawer not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Drawer deleted successfully"})
}
