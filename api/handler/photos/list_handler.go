package photos

import (
	"net/http"

	"github.com/asakaze/photo-vault/api/common"
	"github.com/asakaze/photo-vault/api/middleware"
	"github.com/gin-gonic/gin"
)

// ListHandler GET /photos
func (h *Handler) ListHandler(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserIDKey)

	responses, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses)
}

// SearchHandler GET /photos/search?tags=a,b
//
// Tags are OR-combined: a photo matches when it carries at least one of
// the requested labels. An empty tag string returns an empty result.
func (h *Handler) SearchHandler(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserIDKey)

	responses, err := h.svc.Search(c.Request.Context(), userID, c.Query("tags"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": responses})
}
