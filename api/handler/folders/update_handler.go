package folders

import (
	"fmt"
	"net/http"

	"github.com/asakaze/photo-vault/api/common"
	"github.com/asakaze/photo-vault/api/middleware"
	"github.com/gin-gonic/gin"
)

type updateFolderRequest struct {
	FolderID    uint    `json:"folder_id" binding:"required"`
	Name        string  `json:"name" binding:"required,max=100"`
	Description *string `json:"description" binding:"omitempty,max=255"`
}

// UpdateHandler PUT /folders
func (h *Handler) UpdateHandler(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserIDKey)

	var req updateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	folder, err := h.svc.Update(c.Request.Context(), userID, req.FolderID, req.Name, req.Description)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondMessageData(c, fmt.Sprintf("%s was updated.", folder.Name), gin.H{
		"id":          folder.ID,
		"name":        folder.Name,
		"description": folder.Description,
	})
}
