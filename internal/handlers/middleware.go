package handlers

import (
	"net/http"
	"strings"
	"time"

	"nevochat/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-Id"
	ctxRequestID    = "requestId"
	ctxSession      = "session"

	maxBodyBytes = 1 << 16 // 64 KB
)

// sessionMiddleware resolves the session cookie (or a Bearer token for
// clients without a cookie jar) and stores the session in the Gin context.
func (h *Handler) sessionMiddleware(c *gin.Context) {
	token := h.sessionToken(c)
	if token == "" {
		newErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	session, err := h.services.ResolveSession(c.Request.Context(), token)
	if err != nil {
		h.respondServiceError(c, "session_resolve_error", err)
		return
	}
	if session == nil {
		newErrorResponse(c, http.StatusUnauthorized, "Invalid or expired session")
		return
	}

	c.Set(ctxSession, session)
	c.Next()
}

func (h *Handler) sessionToken(c *gin.Context) string {
	if v, err := c.Cookie(h.cookie.Name); err == nil && v != "" {
		return v
	}
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// sessionFrom must only be used behind sessionMiddleware.
func sessionFrom(c *gin.Context) *models.Session {
	return c.MustGet(ctxSession).(*models.Session)
}

func (h *Handler) requestID(c *gin.Context) {
	id := c.GetHeader(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(ctxRequestID, id)
	c.Writer.Header().Set(requestIDHeader, id)
	c.Next()
}

func requestIDFrom(c *gin.Context) string {
	return c.GetString(ctxRequestID)
}

func (h *Handler) accessLog(c *gin.Context) {
	start := time.Now()
	c.Next()

	status := c.Writer.Status()
	kv := []any{
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", status,
		"latency", time.Since(start),
		"client_ip", c.ClientIP(),
		"request_id", requestIDFrom(c),
	}
	switch {
	case status >= http.StatusInternalServerError:
		h.log.Errorw("http_request", kv...)
	case status >= http.StatusBadRequest:
		h.log.Warnw("http_request", kv...)
	default:
		h.log.Infow("http_request", kv...)
	}
}

func (h *Handler) recovery(c *gin.Context) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Errorw("panic_recovered", "panic", r, "request_id", requestIDFrom(c))
			newErrorResponse(c, http.StatusInternalServerError, msgInternal)
		}
	}()
	c.Next()
}

func (h *Handler) limitBody(c *gin.Context) {
	if c.Request.Body != nil {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	}
	c.Next()
}
