package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/yoockh/chatrel/internal/api/handlers"
	"github.com/yoockh/chatrel/internal/api/middleware"
)

type Deps struct {
	Session      *handlers.SessionHandler
	Analysis     *handlers.AnalysisHandler
	Conversation *handlers.ConversationHandler
	WS           *handlers.WSHandler
	Limiter      *middleware.RateLimiter
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := r.Group("/")
	api.Use(middleware.RateLimit(d.Limiter))

	api.POST("/sessions", d.Session.Start)
	api.GET("/sessions/:session_id", d.Session.Get)
	api.PUT("/sessions/:session_id/transcript", d.Session.ReplaceTranscript)
	api.DELETE("/sessions/:session_id", d.Session.End)

	api.POST("/sessions/:session_id/analysis", d.Analysis.Deep)
	api.POST("/sessions/:session_id/quick-scan", d.Analysis.QuickScan)

	api.GET("/sessions/:session_id/messages", d.Conversation.List)
	api.POST("/sessions/:session_id/messages", d.Conversation.Send)

	// WebSocket
	api.GET("/ws/sessions/:session_id", d.WS.SessionWS)
}
