package photos

import (
	svcPhotos "github.com/asakaze/photo-vault/internal/photos"
)

// Handler 照片处理器
type Handler struct {
	svc *svcPhotos.Service
}

// NewHandler 创建照片处理器
func NewHandler(svc *svcPhotos.Service) *Handler {
	return &Handler{svc: svc}
}
