package common

import (
	"errors"
	"log"
	"net/http"

	"github.com/asakaze/photo-vault/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// RespondMessage sends a success response carrying only a message.
func RespondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// RespondMessageData sends a success response with message and data.
func RespondMessageData(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"message": message, "data": data})
}

// RespondError sends an error response with message.
func RespondError(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, gin.H{"error": message})
}

// RespondAppError maps a service error onto the HTTP taxonomy. Storage and
// database detail stays in the log; clients only see the mapped kind.
func RespondAppError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not found")
	case errors.Is(err, apperrors.ErrForbidden):
		RespondError(c, http.StatusForbidden, "forbidden")
	case errors.Is(err, apperrors.ErrConflict):
		RespondError(c, http.StatusConflict, "conflict")
	case errors.Is(err, apperrors.ErrValidation):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrUpstream):
		log.Printf("Upstream storage failure: %v", err)
		RespondError(c, http.StatusInternalServerError, "storage operation partially failed, cleanup may be needed")
	default:
		log.Printf("Internal error: %v", err)
		RespondError(c, http.StatusInternalServerError, "internal server error")
	}
}
