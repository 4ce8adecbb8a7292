package entity

import "time"

// Conversation is a titled thread of messages owned by one user.
// UpdatedAt is bumped every time a message pair is appended, so listing
// by UpdatedAt descending yields most-recently-active first.
type Conversation struct {
	ID        string
	UserID    string
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ConversationSummary is a Conversation annotated for list views: total
// message count plus a preview of the most recent message and its role.
// LastMessage is truncated to 100 characters with an ellipsis appended;
// both preview fields are nil for an empty conversation.
type ConversationSummary struct {
	Conversation
	MessageCount    int64
	LastMessage     *string
	LastMessageRole *Role
}
