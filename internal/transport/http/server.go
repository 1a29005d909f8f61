package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/relaychat/relaychat-server/internal/config"
	"github.com/relaychat/relaychat-server/internal/core"
	"github.com/relaychat/relaychat-server/internal/service/profiles"
)

// NewServer builds the HTTP server: profile REST endpoints plus the WebSocket
// upgrade. Static files and CORS are left to whatever sits in front.
func NewServer(hub *core.Hub, registry *core.Registry, svc *profiles.Service, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))

	api := NewAPIHandlers(svc, logger)
	router.POST("/register", api.Register)
	router.POST("/update", api.Update)
	router.GET("/users", api.ListUsers)
	router.GET("/", healthHandler)

	router.GET("/ws", gin.WrapH(NewWSHandler(hub, registry, logger)))

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "Group chat server is running")
}
