package users

import (
	"github.com/asakaze/photo-vault/internal/auth"
)

// Handler 注册与登录处理器
type Handler struct {
	loginService *auth.LoginService
}

// NewHandler 创建用户处理器
func NewHandler(loginService *auth.LoginService) *Handler {
	return &Handler{loginService: loginService}
}
