package photos

import (
	"net/http"

	"github.com/asakaze/photo-vault/api/common"
	"github.com/asakaze/photo-vault/api/middleware"
	"github.com/gin-gonic/gin"
)

type updatePhotoRequest struct {
	ID          uint    `json:"id" binding:"required"`
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=255"`
}

// UpdateHandler PUT /photos
func (h *Handler) UpdateHandler(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserIDKey)

	var req updatePhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	photo, err := h.svc.Update(c.Request.Context(), userID, req.ID, req.Name, req.Description)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondMessageData(c, "Photo was updated.", photo)
}
