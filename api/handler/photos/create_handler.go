package photos

import (
	"net/http"

	"github.com/asakaze/photo-vault/api/common"
	"github.com/asakaze/photo-vault/api/middleware"
	svcPhotos "github.com/asakaze/photo-vault/internal/photos"
	"github.com/gin-gonic/gin"
)

type createPhotoRequest struct {
	Name        string `json:"name" binding:"max=100"`
	Description string `json:"description" binding:"max=255"`
	FolderID    *uint  `json:"folder_id"`
	ImagePath   string `json:"image_path" binding:"required"`
	SizeInBytes int64  `json:"size_in_bytes" binding:"min=0"`
	Width       int    `json:"width" binding:"min=0"`
	Height      int    `json:"height" binding:"min=0"`
}

// CreateHandler POST /photos
//
// Registers metadata only; the image bytes were already uploaded by the
// client through a presigned URL.
func (h *Handler) CreateHandler(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserIDKey)

	var req createPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	_, err := h.svc.Register(c.Request.Context(), userID, svcPhotos.CreatePhotoInput{
		Name:        req.Name,
		Description: req.Description,
		FolderID:    req.FolderID,
		ImagePath:   req.ImagePath,
		SizeInBytes: req.SizeInBytes,
		Width:       req.Width,
		Height:      req.Height,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondMessage(c, "Photo was uploaded.")
}
