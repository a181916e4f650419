package handlers

import (
	"errors"
	"net/http"

	"nevochat/internal/models"
	"nevochat/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusSuccess = "success"
	statusError   = "error"

	msgInternal = "internal server error"
)

// statusResponse is the envelope used by every endpoint except the history.
type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type messagesResponse struct {
	Status   string           `json:"status"`
	Messages []models.Message `json:"messages"`
}

func newSuccessResponse(c *gin.Context, code int, message string) {
	c.JSON(code, statusResponse{Status: statusSuccess, Message: message})
}

func newErrorResponse(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, statusResponse{Status: statusError, Message: message})
}

// respondServiceError maps a service error onto the status code table. Only
// unexpected failures are logged; their detail never reaches the client.
func (h *Handler) respondServiceError(c *gin.Context, event string, err error, kv ...any) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		newErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUsernameTaken):
		newErrorResponse(c, http.StatusConflict, "Username already exists")
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrUnauthenticated):
		newErrorResponse(c, http.StatusUnauthorized, "Invalid username or password")
	default:
		h.log.Errorw(event, append(kv, "err", err, "request_id", requestIDFrom(c))...)
		newErrorResponse(c, http.StatusInternalServerError, msgInternal)
	}
}
