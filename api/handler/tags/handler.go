package tags

import (
	"net/http"

	"github.com/asakaze/photo-vault/api/common"
	"github.com/asakaze/photo-vault/api/middleware"
	svcTags "github.com/asakaze/photo-vault/internal/tags"
	"github.com/gin-gonic/gin"
)

// Handler 标签处理器
type Handler struct {
	svc *svcTags.Service
}

// NewHandler 创建标签处理器
func NewHandler(svc *svcTags.Service) *Handler {
	return &Handler{svc: svc}
}

// ListHandler GET /tags
func (h *Handler) ListHandler(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserIDKey)

	responses, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses)
}
