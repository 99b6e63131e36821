package folders

import (
	"net/http"

	"github.com/asakaze/photo-vault/api/common"
	"github.com/asakaze/photo-vault/api/middleware"
	"github.com/gin-gonic/gin"
)

type createFolderRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=255"`
	ParentID    *uint  `json:"parent_id"`
}

// CreateHandler POST /folders
func (h *Handler) CreateHandler(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserIDKey)

	var req createFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	folder, err := h.svc.Create(c.Request.Context(), userID, req.Name, req.Description, req.ParentID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Folder was created.",
		"id":      folder.ID,
	})
}
