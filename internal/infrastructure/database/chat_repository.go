package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shivswrj/chat-apiserver/internal/domain"
	"github.com/shivswrj/chat-apiserver/internal/domain/entity"
)

// previewLimit caps the last-message preview in conversation listings.
const previewLimit = 100

// chatRepository is the GORM implementation of domain.ChatRepository.
// It holds an explicit database handle per instance; repositories built
// inside WithTx share that transaction's handle.
type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a ChatRepository backed by db.
func NewChatRepository(db *gorm.DB) domain.ChatRepository {
	return &chatRepository{db: db}
}

// WithTx runs fn inside a single transaction. Any error from fn rolls
// back every write performed through the repository it receives.
func (r *chatRepository) WithTx(ctx context.Context, fn func(domain.ChatRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&chatRepository{db: tx})
	})
}

// GetUserByName fetches a user by unique username.
func (r *chatRepository) GetUserByName(ctx context.Context, username string) (*entity.User, error) {
	var m userModel
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("user", username)
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return toUserEntity(&m), nil
}

// GetOrCreateUser fetches a user by username, creating it with a fresh
// UUID when absent. A lost create race against a concurrent request is
// resolved by re-reading the winner's row.
func (r *chatRepository) GetOrCreateUser(ctx context.Context, username string) (*entity.User, error) {
	user, err := r.GetUserByName(ctx, username)
	if err == nil {
		return user, nil
	}
	if !domain.IsNotFound(err) {
		return nil, err
	}

	m := userModel{
		ID:       uuid.New().String(),
		Username: username,
	}
	if createErr := r.db.WithContext(ctx).Create(&m).Error; createErr != nil {
		// Unique index violation means someone else created it first.
		if user, err = r.GetUserByName(ctx, username); err == nil {
			return user, nil
		}
		return nil, fmt.Errorf("failed to create user: %w", createErr)
	}
	return toUserEntity(&m), nil
}

// GetConversation fetches a conversation by id.
func (r *chatRepository) GetConversation(ctx context.Context, conversationID string) (*entity.Conversation, error) {
	var m conversationModel
	err := r.db.WithContext(ctx).Where("id = ?", conversationID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("conversation", conversationID)
		}
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	return toConversationEntity(&m), nil
}

// GetOwnedConversation fetches a conversation and verifies ownership.
// A conversation owned by a different user is reported as NotFound, not
// as a permission error, so ids cannot be probed across users.
func (r *chatRepository) GetOwnedConversation(ctx context.Context, userID, conversationID string) (*entity.Conversation, error) {
	var m conversationModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", conversationID, userID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("conversation", conversationID)
		}
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	return toConversationEntity(&m), nil
}

// CreateConversation creates a conversation for userID.
func (r *chatRepository) CreateConversation(ctx context.Context, userID, title string) (*entity.Conversation, error) {
	m := conversationModel{
		ID:     uuid.New().String(),
		UserID: userID,
		Title:  title,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return toConversationEntity(&m), nil
}

// ListMessages returns the full thread in ascending timestamp order,
// insertion order breaking ties.
func (r *chatRepository) ListMessages(ctx context.Context, conversationID string) ([]*entity.Message, error) {
	var rows []messageModel
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	result := make([]*entity.Message, len(rows))
	for i := range rows {
		result[i] = toMessageEntity(&rows[i])
	}
	return result, nil
}

// CountMessages returns the number of messages in a conversation.
func (r *chatRepository) CountMessages(ctx context.Context, conversationID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&messageModel{}).
		Where("conversation_id = ?", conversationID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return count, nil
}

// AppendMessage inserts a message row and returns it with its assigned id.
func (r *chatRepository) AppendMessage(ctx context.Context, conversationID, content string, role entity.Role) (*entity.Message, error) {
	m := messageModel{
		ConversationID: conversationID,
		Content:        content,
		Role:           string(role),
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, fmt.Errorf("failed to append message: %w", err)
	}
	return toMessageEntity(&m), nil
}

// TouchConversation bumps updated_at to now. Last writer wins under
// concurrent appends to the same conversation.
func (r *chatRepository) TouchConversation(ctx context.Context, conversationID string) error {
	res := r.db.WithContext(ctx).
		Model(&conversationModel{}).
		Where("id = ?", conversationID).
		Update("updated_at", time.Now())
	if res.Error != nil {
		return fmt.Errorf("failed to touch conversation: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NewNotFoundError("conversation", conversationID)
	}
	return nil
}

// ListConversations returns the user's conversations ordered by
// updated_at descending, annotated with message counts and a truncated
// preview of the latest message.
func (r *chatRepository) ListConversations(ctx context.Context, userID string) ([]*entity.ConversationSummary, error) {
	var rows []conversationModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}

	result := make([]*entity.ConversationSummary, len(rows))
	for i := range rows {
		summary := &entity.ConversationSummary{Conversation: *toConversationEntity(&rows[i])}

		count, err := r.CountMessages(ctx, rows[i].ID)
		if err != nil {
			return nil, err
		}
		summary.MessageCount = count

		var last messageModel
		err = r.db.WithContext(ctx).
			Where("conversation_id = ?", rows[i].ID).
			Order("created_at DESC, id DESC").
			First(&last).Error
		switch {
		case err == nil:
			preview := truncatePreview(last.Content, previewLimit)
			role := entity.Role(last.Role)
			summary.LastMessage = &preview
			summary.LastMessageRole = &role
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Empty conversation, no preview.
		default:
			return nil, fmt.Errorf("failed to get last message: %w", err)
		}

		result[i] = summary
	}
	return result, nil
}

// DeleteConversation removes a conversation and all of its messages in
// one transaction. Messages are deleted explicitly rather than relying
// on the FK cascade so the behavior holds on stores that do not enforce it.
func (r *chatRepository) DeleteConversation(ctx context.Context, conversationID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m conversationModel
		if err := tx.Where("id = ?", conversationID).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFoundError("conversation", conversationID)
			}
			return fmt.Errorf("failed to get conversation: %w", err)
		}

		if err := tx.Where("conversation_id = ?", conversationID).Delete(&messageModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete messages: %w", err)
		}
		if err := tx.Delete(&m).Error; err != nil {
			return fmt.Errorf("failed to delete conversation: %w", err)
		}
		return nil
	})
}

// Counts returns total users, conversations, and messages for the
// health probe.
func (r *chatRepository) Counts(ctx context.Context) (users, conversations, messages int64, err error) {
	db := r.db.WithContext(ctx)
	if err = db.Model(&userModel{}).Count(&users).Error; err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count users: %w", err)
	}
	if err = db.Model(&conversationModel{}).Count(&conversations).Error; err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count conversations: %w", err)
	}
	if err = db.Model(&messageModel{}).Count(&messages).Error; err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return users, conversations, messages, nil
}

// truncatePreview shortens s to limit runes, appending an ellipsis when
// anything was cut.
func truncatePreview(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
