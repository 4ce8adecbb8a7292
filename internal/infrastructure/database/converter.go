package database

import (
	"github.com/shivswrj/chat-apiserver/internal/domain/entity"
)

// Boundary conversion from persistence models to domain entities
// (infrastructure layer never leaks GORM types upward).

func toUserEntity(m *userModel) *entity.User {
	if m == nil {
		return nil
	}
	return &entity.User{
		ID:        m.ID,
		Username:  m.Username,
		CreatedAt: m.CreatedAt,
	}
}

func toConversationEntity(m *conversationModel) *entity.Conversation {
	if m == nil {
		return nil
	}
	return &entity.Conversation{
		ID:        m.ID,
		UserID:    m.UserID,
		Title:     m.Title,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toMessageEntity(m *messageModel) *entity.Message {
	if m == nil {
		return nil
	}
	return &entity.Message{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		Content:        m.Content,
		Role:           entity.Role(m.Role),
		CreatedAt:      m.CreatedAt,
	}
}
