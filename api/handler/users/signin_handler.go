package users

import (
	"errors"
	"log"
	"net/http"

	"github.com/asakaze/photo-vault/api/common"
	"github.com/asakaze/photo-vault/internal/auth"
	"github.com/gin-gonic/gin"
)

type signinRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) SigninHandler(c *gin.Context) {
	var req signinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := h.loginService.Signin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			common.RespondError(c, http.StatusUnauthorized, "invalid email or password")
			return
		}
		log.Printf("Signin failed: %v", err)
		common.RespondError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
