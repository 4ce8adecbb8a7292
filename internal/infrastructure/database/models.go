package database

import (
	"time"
)

// Persistence models for the chat store. These are GORM-mapped rows;
// the domain layer only ever sees the entity types produced by the
// converters in converter.go.

// userModel is a chat user row. Username is the unique lookup key for
// lazy user creation.
type userModel struct {
	ID        string    `gorm:"type:char(36);primaryKey"`
	Username  string    `gorm:"type:varchar(80);uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the database table name for userModel.
func (userModel) TableName() string { return "users" }

// conversationModel is a conversation row. UpdatedAt is bumped on every
// appended message pair so list views can order by recency.
type conversationModel struct {
	ID        string    `gorm:"type:char(36);primaryKey"`
	UserID    string    `gorm:"type:char(36);not null;index:idx_user_conversations"`
	Title     string    `gorm:"type:varchar(200);not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	// User is the owning user; conversations never outlive their owner.
	User userModel `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the database table name for conversationModel.
func (conversationModel) TableName() string { return "conversations" }

// messageModel is one immutable message row. The auto-increment primary
// key records insertion order, which is the tiebreaker when two rows in
// a conversation share a timestamp. The FK constraint cascades deletes,
// but DeleteConversation also removes messages explicitly so stores
// without declarative cascade behave identically.
type messageModel struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"`
	ConversationID string    `gorm:"type:char(36);not null;index:idx_conversation_messages,priority:1"`
	Content        string    `gorm:"type:text;not null"`
	Role           string    `gorm:"type:varchar(20);not null;check:role IN ('user','assistant')"`
	CreatedAt      time.Time `gorm:"not null;index:idx_conversation_messages,priority:2"`

	Conversation conversationModel `gorm:"foreignKey:ConversationID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for messageModel.
func (messageModel) TableName() string { return "messages" }

// Models lists every persistence model for schema migration.
func Models() []any {
	return []any{&userModel{}, &conversationModel{}, &messageModel{}}
}
