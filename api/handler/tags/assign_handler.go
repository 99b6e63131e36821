package tags

import (
	"net/http"

	"github.com/asakaze/photo-vault/api/common"
	"github.com/asakaze/photo-vault/api/middleware"
	"github.com/gin-gonic/gin"
)

type assignTagsRequest struct {
	PhotoIDs []uint `json:"photo_ids" binding:"required,min=1"`
	TagIDs   []uint `json:"tag_ids"`
}

// AssignHandler POST /photos/tags
//
// Full-replace semantics: after the call each photo carries exactly the
// requested tag set. An empty tag_ids list clears the photos' tags.
func (h *Handler) AssignHandler(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserIDKey)

	var req assignTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.svc.SetTagsForPhotos(c.Request.Context(), userID, req.PhotoIDs, req.TagIDs)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Tags were updated.",
		"updated_photos": updated,
	})
}
