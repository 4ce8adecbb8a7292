package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/shivswrj/chat-apiserver/internal/domain"
	"github.com/shivswrj/chat-apiserver/internal/handler/dto"
)

// HealthHandler handles the liveness endpoints.
type HealthHandler struct {
	repo    domain.ChatRepository
	version string
	logger  *slog.Logger
}

// NewHealthHandler creates the health handler.
func NewHealthHandler(repo domain.ChatRepository, version string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		repo:    repo,
		version: version,
		logger:  logger,
	}
}

// Ping is the bare liveness check.
//
//	@Summary	Ping
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Router		/ping [get]
func (h *HealthHandler) Ping(ctx context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, utils.H{
		"status":  "ok",
		"message": "pong",
	})
}

// Health probes the database with row counts.
//
//	@Summary	Health check with store probe
//	@Produce	json
//	@Success	200	{object}	dto.HealthResponse
//	@Failure	500	{object}	ErrorBody
//	@Router		/api/health [get]
func (h *HealthHandler) Health(ctx context.Context, c *app.RequestContext) {
	users, conversations, messages, err := h.repo.Counts(ctx)
	if err != nil {
		h.logger.Error("health probe failed", "error", err)
		ErrorResponse(c, domain.NewInternalError(err))
		return
	}

	c.JSON(consts.StatusOK, dto.HealthResponse{
		Status:             "healthy",
		Timestamp:          time.Now().UTC(),
		Version:            h.version,
		DatabaseConnected:  true,
		TotalUsers:         users,
		TotalConversations: conversations,
		TotalMessages:      messages,
	})
}
