package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tcpecho/internal/microservices/tcp"
)

// StatsProvider is implemented by *tcp.TCPServer
type StatsProvider interface {
	Stats() tcp.Stats
}

type StatusHandler struct {
	stats StatsProvider
}

func NewStatusHandler(stats StatsProvider) *StatusHandler {
	return &StatusHandler{stats: stats}
}

// RegisterRoutes mounts the status endpoints on r
func (h *StatusHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/check-conn", h.CheckConn)
	r.GET("/stats", h.GetStats)
}

// GET /check-conn
func (h *StatusHandler) CheckConn(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "echo server is alive",
	})
}

// GET /stats
func (h *StatusHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.stats.Stats())
}

// NewRouter builds the gin engine serving the status endpoints
func NewRouter(stats StatsProvider) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	NewStatusHandler(stats).RegisterRoutes(r)
	return r
}
