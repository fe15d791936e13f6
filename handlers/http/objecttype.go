package httpHandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inventory-server/auth"
	"inventory-server/usecases"
)

type ObjectTypeHandler struct {
	useCase *usecases.ObjectTypeUseCase
}

func NewObjectTypeHandler(useCase *usecases.ObjectTypeUseCase) *ObjectTypeHandler {
	return &ObjectTypeHandler{useCase: useCase}
}

type ObjectTypeRequest struct {
	Name string `json:"name" binding:"required"`
}

// Create handles POST /api/v1/object-types
func (h *ObjectTypeHandler) Create(c *gin.Context) {
	var req ObjectTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	objType, err := h.useCase.CreateObjectType(auth.UserFromContext(c), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Object type created successfully", "data": objType})
}

// List handles GET /api/v1/object-types
func (h *ObjectTypeHandler) List(c *gin.Context) {
	skip, limit := pagination(c)
	types, err := h.useCase.ListObjectTypes(skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": types, "count": len(types)})
}

// Get handles GET /api/v1/object-types/:id
func (h *ObjectTypeHandler) Get(c *gin.Context) {
	id := parseID(c, "id")
	if id == 0 {
		return
	}
	objType, err := h.useCase.GetObjectType(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if objType == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Object type not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": objType})
}

// Update handles PUT /api/v1/object-types/:id
func (h *ObjectTypeHandler) Update(c *gin.Context) {
	id := parseID(c, "id")
	if id == 0 {
		return
	}
	var req ObjectTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	objType, err := h.useCase.UpdateObjectType(auth.UserFromContext(c), id, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	if objType == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Object type not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Object type updated successfully", "data": objType})
}

// Delete handles DELETE /api/v1/object-types/:id
func (h *ObjectTypeHandler) Delete(c *gin.Context) {
	id := parseID(c, "id")
	if id == 0 {
		return
	}
	objType, err := h.useCase.DeleteObjectType(auth.UserFromContext(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if objType == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Object type not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Object type deleted successfully"})
}
