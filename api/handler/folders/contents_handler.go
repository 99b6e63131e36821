package folders

import (
	"net/http"
	"strconv"

	"github.com/asakaze/photo-vault/api/common"
	"github.com/asakaze/photo-vault/api/middleware"
	"github.com/gin-gonic/gin"
)

// ContentsHandler GET /files/:folder_id
func (h *Handler) ContentsHandler(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserIDKey)

	folderID, err := strconv.ParseUint(c.Param("folder_id"), 10, 64)
	if err != nil {
		// 非法ID与不存在的ID一视同仁
		common.RespondError(c, http.StatusNotFound, "not found")
		return
	}

	contents, err := h.svc.GetContents(c.Request.Context(), userID, uint(folderID))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, contents)
}
