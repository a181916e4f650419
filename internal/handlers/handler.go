package handlers

import (
	"time"

	"nevochat/internal/logger"
	"nevochat/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const defaultCookieName = "session_token"

// CookieOptions describes the session cookie set on login.
type CookieOptions struct {
	Name   string
	Secure bool
	TTL    time.Duration // 0: browser-session cookie
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	cookie   CookieOptions
}

// NewHandler constructs a new HTTP handler with dependencies. A nil logger
// discards output.
func NewHandler(services *service.Service, log *logger.Logger, cookie CookieOptions) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	if cookie.Name == "" {
		cookie.Name = defaultCookieName
	}
	return &Handler{services: services, log: log, cookie: cookie}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(h.requestID, h.accessLog, h.recovery, h.limitBody)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/", h.index)
	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerChatRoutes(router)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	r.POST("/register", h.register)
	r.POST("/login", h.login)
	r.POST("/logout", h.logout)
}

func (h *Handler) registerChatRoutes(r *gin.Engine) {
	r.POST("/send", h.sessionMiddleware, h.send)
	r.GET("/messages", h.listMessages)
}
