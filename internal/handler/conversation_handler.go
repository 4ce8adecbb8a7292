package handler

import (
	"context"
	"log/slog"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/shivswrj/chat-apiserver/internal/domain"
	"github.com/shivswrj/chat-apiserver/internal/handler/dto"
)

// ConversationHandler handles the conversation read and delete endpoints.
type ConversationHandler struct {
	usecase domain.ChatUsecase
	logger  *slog.Logger
}

// NewConversationHandler creates the conversation handler.
func NewConversationHandler(usecase domain.ChatUsecase, logger *slog.Logger) *ConversationHandler {
	return &ConversationHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// List lists a user's conversations, most recently updated first.
// An unknown user yields an empty list with 200, not an error.
//
//	@Summary	List conversations
//	@Tags		conversations
//	@Produce	json
//	@Param		user_identifier	query		string	false	"user identifier"
//	@Success	200				{object}	dto.ConversationListResponse
//	@Router		/api/conversations [get]
func (h *ConversationHandler) List(ctx context.Context, c *app.RequestContext) {
	userIdentifier := c.Query("user_identifier")
	if userIdentifier == "" {
		userIdentifier = domain.DefaultUserIdentifier
	}

	summaries, err := h.usecase.ListConversations(ctx, userIdentifier)
	if err != nil {
		h.logger.Error("failed to list conversations", "user_identifier", userIdentifier, "error", err)
		ErrorResponse(c, err)
		return
	}

	payload := make([]dto.ConversationSummaryPayload, len(summaries))
	for i, s := range summaries {
		payload[i] = dto.ConversationSummaryPayload{
			ID:           s.ID,
			Title:        s.Title,
			CreatedAt:    s.CreatedAt,
			UpdatedAt:    s.UpdatedAt,
			MessageCount: s.MessageCount,
			LastMessage:  s.LastMessage,
		}
		if s.LastMessageRole != nil {
			role := string(*s.LastMessageRole)
			payload[i].LastMessageRole = &role
		}
	}

	c.JSON(consts.StatusOK, dto.ConversationListResponse{
		UserIdentifier:     userIdentifier,
		Conversations:      payload,
		TotalConversations: len(payload),
	})
}

// Messages returns the full thread of a conversation in ascending order.
//
//	@Summary	Get conversation messages
//	@Tags		conversations
//	@Produce	json
//	@Param		id	path		string	true	"conversation id"
//	@Success	200	{object}	dto.MessageListResponse
//	@Failure	404	{object}	ErrorBody
//	@Router		/api/conversations/{id}/messages [get]
func (h *ConversationHandler) Messages(ctx context.Context, c *app.RequestContext) {
	conversationID := c.Param("id")

	conv, messages, err := h.usecase.GetConversationMessages(ctx, conversationID)
	if err != nil {
		h.logger.Error("failed to get conversation messages", "conversation_id", conversationID, "error", err)
		ErrorResponse(c, err)
		return
	}

	payload := make([]dto.MessagePayload, len(messages))
	for i, m := range messages {
		payload[i] = toMessagePayload(m)
	}

	c.JSON(consts.StatusOK, dto.MessageListResponse{
		ConversationID:    conv.ID,
		ConversationTitle: conv.Title,
		Messages:          payload,
		TotalMessages:     len(payload),
	})
}

// Delete removes a conversation and all of its messages.
//
//	@Summary	Delete a conversation
//	@Tags		conversations
//	@Produce	json
//	@Param		id	path		string	true	"conversation id"
//	@Success	200	{object}	dto.DeleteConversationResponse
//	@Failure	404	{object}	ErrorBody
//	@Router		/api/conversations/{id} [delete]
func (h *ConversationHandler) Delete(ctx context.Context, c *app.RequestContext) {
	conversationID := c.Param("id")

	if err := h.usecase.DeleteConversation(ctx, conversationID); err != nil {
		h.logger.Error("failed to delete conversation", "conversation_id", conversationID, "error", err)
		ErrorResponse(c, err)
		return
	}

	c.JSON(consts.StatusOK, dto.DeleteConversationResponse{
		Success:        true,
		Message:        "conversation deleted successfully",
		ConversationID: conversationID,
	})
}
