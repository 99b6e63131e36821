package tags

import (
	"net/http"

	"github.com/asakaze/photo-vault/api/common"
	"github.com/asakaze/photo-vault/api/middleware"
	"github.com/gin-gonic/gin"
)

type addTagRequest struct {
	PhotoID uint   `json:"photo_id" binding:"required"`
	Tag     string `json:"tag" binding:"required,max=100"`
}

// AddHandler POST /tags
//
// Creates the tag when the (owner, label) pair is new, reuses the existing
// row otherwise, and binds it to the photo either way.
func (h *Handler) AddHandler(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserIDKey)

	var req addTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	response, err := h.svc.AddTagToPhoto(c.Request.Context(), userID, req.PhotoID, req.Tag)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
