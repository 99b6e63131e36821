package folders

import (
	"net/http"

	"github.com/asakaze/photo-vault/api/common"
	"github.com/asakaze/photo-vault/api/middleware"
	"github.com/gin-gonic/gin"
)

type deleteFoldersRequest struct {
	IDs []uint `json:"ids" binding:"required,min=1"`
}

// DeleteHandler DELETE /folders
func (h *Handler) DeleteHandler(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserIDKey)

	var req deleteFoldersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID, req.IDs); err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondMessage(c, "Folders were deleted.")
}
