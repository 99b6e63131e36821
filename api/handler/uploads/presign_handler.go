package uploads

import (
	"fmt"
	"log"
	"net/http"

	"github.com/asakaze/photo-vault/api/common"
	"github.com/asakaze/photo-vault/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler 预签名上传处理器
type Handler struct {
	store storage.Storage
}

// NewHandler 创建预签名上传处理器
func NewHandler(store storage.Storage) *Handler {
	return &Handler{store: store}
}

type presignRequest struct {
	Filename string `json:"filename" binding:"required,max=200"`
}

// PresignHandler POST /generate-presigned-url
//
// Object keys are uuid-prefixed so concurrent uploads of the same filename
// never collide.
func (h *Handler) PresignHandler(c *gin.Context) {
	var req presignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	presigner, ok := h.store.(storage.Presigner)
	if !ok {
		common.RespondError(c, http.StatusInternalServerError, "storage backend does not support presigned uploads")
		return
	}

	key := fmt.Sprintf("%s-%s", uuid.New().String(), req.Filename)
	uploadURL, publicURL, err := presigner.PresignPut(c.Request.Context(), key)
	if err != nil {
		log.Printf("Failed to generate presigned URL: %v", err)
		common.RespondError(c, http.StatusInternalServerError, "failed to generate presigned URL")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"presigned_url": uploadURL,
		"public_url":    publicURL,
	})
}
