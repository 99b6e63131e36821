package folders

import (
	svcFolders "github.com/asakaze/photo-vault/internal/folders"
)

// Handler 文件夹处理器
type Handler struct {
	svc *svcFolders.Service
}

// NewHandler 创建文件夹处理器
func NewHandler(svc *svcFolders.Service) *Handler {
	return &Handler{svc: svc}
}
