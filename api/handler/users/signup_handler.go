package users

import (
	"log"
	"net/http"

	"github.com/asakaze/photo-vault/api/common"
	"github.com/asakaze/photo-vault/utils"
	"github.com/gin-gonic/gin"
)

type signupRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (h *Handler) SignupHandler(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.loginService.Signup(c.Request.Context(), req.Name, req.Email, req.Password); err != nil {
		log.Printf("Signup failed for %s: %v", utils.SanitizeLogUsername(req.Email), err)
		common.RespondError(c, http.StatusInternalServerError, "Failed to register user.")
		return
	}

	c.String(http.StatusOK, "user registered")
}
