package entity

import "time"

// Role tags one turn of a conversation.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Message is one turn in a conversation. Messages are immutable once
// created and only disappear through the cascading delete of their
// conversation. The integer ID is assigned by the store in insertion
// order, which breaks ties between equal timestamps.
type Message struct {
	ID             int64
	ConversationID string
	Content        string
	Role           Role
	CreatedAt      time.Time
}
