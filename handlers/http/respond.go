package httpHandler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"inventory-server/apperrors"
)

// respondError maps the error taxonomy to HTTP statuses: validation failures
// are caller-correctable, ownership mismatches are forbidden, recommendation
// failures let clients degrade, and everything else is a generic
// infrastructure failure.
func respondError(c *gin.Context, err error) {
	switch {
	case apperrors.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.IsOwnership(err):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case apperrors.IsRecommendation(err):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		slog.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
