package photos

import (
	"net/http"

	"github.com/asakaze/photo-vault/api/common"
	"github.com/asakaze/photo-vault/api/middleware"
	"github.com/gin-gonic/gin"
)

type movePhotosRequest struct {
	IDs      []uint `json:"ids" binding:"required,min=1"`
	FolderID uint   `json:"folder_id" binding:"required"`
}

// MoveHandler PUT /photos/move
func (h *Handler) MoveHandler(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserIDKey)

	var req movePhotosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Move(c.Request.Context(), userID, req.IDs, req.FolderID); err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondMessage(c, "Photos were moved.")
}
