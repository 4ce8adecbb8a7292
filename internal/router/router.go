package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"github.com/shivswrj/chat-apiserver/internal/handler"
	"github.com/shivswrj/chat-apiserver/internal/middleware"
)

// Setup registers all middleware and routes. The server must be built
// with WithHandleMethodNotAllowed so the NoMethod handler fires.
func Setup(
	h *server.Hertz,
	chatHandler *handler.ChatHandler,
	conversationHandler *handler.ConversationHandler,
	healthHandler *handler.HealthHandler,
) {
	// Global middleware
	h.Use(middleware.Recovery())
	h.Use(middleware.Logger())
	h.Use(middleware.CORS())

	// Structured bodies for unknown routes and unsupported methods
	h.NoRoute(handler.NotFoundResponse)
	h.NoMethod(handler.MethodNotAllowedResponse)

	h.GET("/ping", healthHandler.Ping)

	api := h.Group("/api")
	{
		api.POST("/chat", chatHandler.Chat)

		api.GET("/conversations", conversationHandler.List)
		api.GET("/conversations/:id/messages", conversationHandler.Messages)
		api.DELETE("/conversations/:id", conversationHandler.Delete)

		api.GET("/health", healthHandler.Health)
	}
}
