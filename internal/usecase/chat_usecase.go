package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shivswrj/chat-apiserver/internal/domain"
	"github.com/shivswrj/chat-apiserver/internal/domain/entity"
)

// maxMessageLength bounds a single chat message.
const maxMessageLength = 10000

// logPreviewLimit caps message content in log lines so full user text
// never lands in the logs above debug level.
const logPreviewLimit = 50

// chatUsecase implements domain.ChatUsecase. It orchestrates the
// persistence gateway and the reply generator; the generator runs under
// its own deadline and never inside an open store transaction.
type chatUsecase struct {
	repo       domain.ChatRepository
	generator  domain.ReplyGenerator
	genTimeout time.Duration
	logger     *slog.Logger
}

// NewChatUsecase creates the chat usecase.
//
// Parameters:
//   - repo: persistence gateway for users, conversations, and messages
//   - generator: reply generator (rule engine or remote inference)
//   - genTimeout: per-call deadline for the generator
//   - logger: structured logger
func NewChatUsecase(
	repo domain.ChatRepository,
	generator domain.ReplyGenerator,
	genTimeout time.Duration,
	logger *slog.Logger,
) domain.ChatUsecase {
	return &chatUsecase{
		repo:       repo,
		generator:  generator,
		genTimeout: genTimeout,
		logger:     logger,
	}
}

// Chat runs one chat turn in three phases:
//
//  1. Validate, then resolve user and conversation with reads only. A
//     bad conversation id fails here before anything is written.
//  2. Generate the reply under its own timeout, outside any store
//     transaction so a slow generator never holds locks.
//  3. Persist everything in one transaction: get-or-create user and
//     conversation, append both messages, bump updated_at. Any failure
//     rolls the whole turn back; a partial message pair is never
//     observable.
func (u *chatUsecase) Chat(ctx context.Context, in *domain.ChatInput) (*domain.ChatResult, error) {
	if err := u.validateChatInput(in); err != nil {
		return nil, err
	}
	message := strings.TrimSpace(in.Message)

	// Phase 1: resolve without writing.
	history, err := u.resolveHistory(ctx, in)
	if err != nil {
		return nil, err
	}

	// Phase 2: generate the reply.
	genCtx, cancel := context.WithTimeout(ctx, u.genTimeout)
	defer cancel()

	reply, err := u.generator.GenerateReply(genCtx, message, history)
	if err != nil {
		u.logger.Error("reply generation failed",
			"user_identifier", in.UserIdentifier,
			"conversation_id", in.ConversationID,
			"error", err,
		)
		return nil, domain.NewInternalError(fmt.Errorf("reply generation failed: %w", err))
	}

	// Phase 3: persist the turn atomically.
	var result *domain.ChatResult
	err = u.repo.WithTx(ctx, func(tx domain.ChatRepository) error {
		user, err := tx.GetOrCreateUser(ctx, in.UserIdentifier)
		if err != nil {
			return err
		}

		var conv *entity.Conversation
		if in.ConversationID != "" {
			// Re-verify under the transaction; the conversation may
			// have been deleted since phase 1.
			conv, err = tx.GetOwnedConversation(ctx, user.ID, in.ConversationID)
		} else {
			conv, err = tx.CreateConversation(ctx, user.ID, defaultTitle(time.Now()))
		}
		if err != nil {
			return err
		}

		userMsg, err := tx.AppendMessage(ctx, conv.ID, message, entity.RoleUser)
		if err != nil {
			return err
		}
		assistantMsg, err := tx.AppendMessage(ctx, conv.ID, reply, entity.RoleAssistant)
		if err != nil {
			return err
		}
		if err := tx.TouchConversation(ctx, conv.ID); err != nil {
			return err
		}

		count, err := tx.CountMessages(ctx, conv.ID)
		if err != nil {
			return err
		}

		result = &domain.ChatResult{
			Conversation:     conv,
			UserMessage:      userMsg,
			AssistantMessage: assistantMsg,
			MessageCount:     count,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if in.ConversationID == "" {
		u.logger.Info("new conversation started",
			"conversation_id", result.Conversation.ID,
			"user_identifier", in.UserIdentifier,
		)
	}
	u.logger.Info("chat turn persisted",
		"conversation_id", result.Conversation.ID,
		"user_identifier", in.UserIdentifier,
		"message_count", result.MessageCount,
		"message_preview", preview(message),
	)

	return result, nil
}

// resolveHistory looks up the requesting user and, when a conversation
// id is supplied, verifies ownership and loads the prior thread. Reads
// only: a NotFound here leaves the store untouched.
func (u *chatUsecase) resolveHistory(ctx context.Context, in *domain.ChatInput) ([]*entity.Message, error) {
	user, err := u.repo.GetUserByName(ctx, in.UserIdentifier)
	if err != nil && !domain.IsNotFound(err) {
		return nil, err
	}

	if in.ConversationID == "" {
		return nil, nil
	}

	// A conversation cannot belong to a user that does not exist yet.
	if user == nil || domain.IsNotFound(err) {
		return nil, domain.NewNotFoundError("conversation", in.ConversationID)
	}

	conv, err := u.repo.GetOwnedConversation(ctx, user.ID, in.ConversationID)
	if err != nil {
		return nil, err
	}
	return u.repo.ListMessages(ctx, conv.ID)
}

// validateChatInput validates and normalizes the chat input.
func (u *chatUsecase) validateChatInput(in *domain.ChatInput) error {
	if in == nil {
		return domain.NewInvalidInputError("request body is required")
	}
	if strings.TrimSpace(in.Message) == "" {
		return domain.NewInvalidInputError("message is required and cannot be empty")
	}
	if len(in.Message) > maxMessageLength {
		return domain.NewInvalidInputError(fmt.Sprintf("message too long (max %d characters)", maxMessageLength))
	}
	if in.UserIdentifier == "" {
		in.UserIdentifier = domain.DefaultUserIdentifier
	}
	return nil
}

// ListConversations lists a user's conversations, most recently updated
// first. An unknown user yields an empty list.
func (u *chatUsecase) ListConversations(ctx context.Context, userIdentifier string) ([]*entity.ConversationSummary, error) {
	if userIdentifier == "" {
		userIdentifier = domain.DefaultUserIdentifier
	}

	user, err := u.repo.GetUserByName(ctx, userIdentifier)
	if err != nil {
		if domain.IsNotFound(err) {
			return []*entity.ConversationSummary{}, nil
		}
		return nil, err
	}

	return u.repo.ListConversations(ctx, user.ID)
}

// GetConversationMessages returns the conversation and its full thread
// in ascending order.
func (u *chatUsecase) GetConversationMessages(ctx context.Context, conversationID string) (*entity.Conversation, []*entity.Message, error) {
	conv, err := u.repo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, nil, err
	}

	messages, err := u.repo.ListMessages(ctx, conv.ID)
	if err != nil {
		return nil, nil, err
	}
	return conv, messages, nil
}

// DeleteConversation deletes a conversation and all of its messages.
func (u *chatUsecase) DeleteConversation(ctx context.Context, conversationID string) error {
	if err := u.repo.DeleteConversation(ctx, conversationID); err != nil {
		return err
	}
	u.logger.Info("conversation deleted", "conversation_id", conversationID)
	return nil
}

// defaultTitle labels a conversation created without an explicit title.
func defaultTitle(now time.Time) string {
	return fmt.Sprintf("Chat - %s", now.UTC().Format("2006-01-02 15:04"))
}

// preview truncates message content for log lines.
func preview(s string) string {
	runes := []rune(s)
	if len(runes) <= logPreviewLimit {
		return s
	}
	return string(runes[:logPreviewLimit]) + "..."
}
