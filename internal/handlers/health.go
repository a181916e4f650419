package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const healthTimeout = 2 * time.Second

// @Summary      Health
// @Tags         ops
// @Produce      json
// @Success      200  {object}  statusResponse
// @Failure      503  {object}  statusResponse
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := h.services.Ping(ctx); err != nil {
		h.log.Errorw("health_db_unreachable", "err", err)
		newErrorResponse(c, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	newSuccessResponse(c, http.StatusOK, "ok")
}
