package handler

import (
	"context"
	"log/slog"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/shivswrj/chat-apiserver/internal/domain"
	"github.com/shivswrj/chat-apiserver/internal/domain/entity"
	"github.com/shivswrj/chat-apiserver/internal/handler/dto"
)

// ChatHandler handles the chat endpoint.
type ChatHandler struct {
	usecase domain.ChatUsecase
	logger  *slog.Logger
}

// NewChatHandler creates the chat handler.
func NewChatHandler(usecase domain.ChatUsecase, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// Chat handles one chat turn.
//
//	@Summary		Send a chat message
//	@Description	Sends a user message, threads it into a conversation, and returns the generated reply
//	@Tags			chat
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.ChatRequest		true	"chat request"
//	@Success		200		{object}	dto.ChatResponse	"chat response"
//	@Failure		400		{object}	ErrorBody			"empty message"
//	@Failure		404		{object}	ErrorBody			"unknown conversation"
//	@Router			/api/chat [post]
func (h *ChatHandler) Chat(ctx context.Context, c *app.RequestContext) {
	var req dto.ChatRequest
	if err := c.BindJSON(&req); err != nil {
		h.logger.Warn("failed to bind chat request", "error", err)
		ErrorResponse(c, domain.NewInvalidInputError("request body must be valid JSON"))
		return
	}

	result, err := h.usecase.Chat(ctx, &domain.ChatInput{
		UserIdentifier: req.UserIdentifier,
		ConversationID: req.ConversationID,
		Message:        req.Message,
	})
	if err != nil {
		h.logger.Error("chat turn failed",
			"user_identifier", req.UserIdentifier,
			"conversation_id", req.ConversationID,
			"error", err,
		)
		ErrorResponse(c, err)
		return
	}

	c.JSON(consts.StatusOK, dto.ChatResponse{
		Success:           true,
		ConversationID:    result.Conversation.ID,
		UserMessage:       toMessagePayload(result.UserMessage),
		AIResponse:        toMessagePayload(result.AssistantMessage),
		ConversationTitle: result.Conversation.Title,
		MessageCount:      result.MessageCount,
	})
}

// toMessagePayload converts a message entity to its wire form.
func toMessagePayload(m *entity.Message) dto.MessagePayload {
	return dto.MessagePayload{
		ID:        m.ID,
		Content:   m.Content,
		Role:      string(m.Role),
		Timestamp: m.CreatedAt,
	}
}
