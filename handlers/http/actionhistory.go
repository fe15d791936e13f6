package httpHandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inventory-server/auth"
	"inventory-server/entities"
	"inventory-server/usecases"
)

type ActionHistoryHandler struct {
	useCase *usecases.ActionHistoryUseCase
}

func NewActionHistoryHandler(useCase *usecases.ActionHistoryUseCase) *ActionHistoryHandler {
	return &ActionHistoryHandler{useCase: useCase}
}

// ListMine handles GET /api/v1/action-history
func (h *ActionHistoryHandler) ListMine(c *gin.Context) {
	entries, err := h.useCase.ListByUser(auth.UserFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entries, "count": len(entries)})
}

// ListByType handles GET /api/v1/action-history/type/:action_type. The store
// query is not owner-scoped, so the result is re-filtered down to the
// requesting user here.
func (h *ActionHistoryHandler) ListByType(c *gin.Context) {
	entries, err := h.useCase.ListByType(c.Param("action_type"))
	if err != nil {
		respondError(c, err)
		return
	}

	caller := auth.UserFromContext(c)
	mine := make([]entities.ActionHistory, 0, len(entries))
	for _, e := range entries {
		if e.UserID == caller {
			mine = append(mine, e)
		}
	}
	c.JSON(http.StatusOK, gin.H{"data": mine, "count": len(mine)})
}

// Get handles GET /api/v1/action-history/:id
func (h *ActionHistoryHandler) Get(c *gin.Context) {
	id := parseID(c, "id")
	if id == 0 {
		return
	}
	entry, err := h.useCase.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if entry == nil || entry.UserID != auth.UserFromContext(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Action not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entry})
}

// Delete handles DELETE /api/v1/action-history/:id
func (h *ActionHistoryHandler) Delete(c *gin.Context) {
	id := parseID(c, "id")
	if id == 0 {
		return
	}
	entry, err := h.useCase.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if entry == nil || entry.UserID != auth.UserFromContext(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Action not found"})
		return
	}

	if _, err := h.useCase.DeleteByID(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Action deleted successfully"})
}
