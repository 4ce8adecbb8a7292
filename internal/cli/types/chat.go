package types

import "time"

// ChatRequest is the POST /api/chat body.
type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
	UserIdentifier string `json:"user_identifier,omitempty"`
}

// Message is one persisted chat message.
type Message struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Role      string    `json:"role"` // user, assistant
	Timestamp time.Time `json:"timestamp"`
}

// ChatResponse is the POST /api/chat success body.
type ChatResponse struct {
	Success           bool    `json:"success"`
	ConversationID    string  `json:"conversation_id"`
	UserMessage       Message `json:"user_message"`
	AIResponse        Message `json:"ai_response"`
	ConversationTitle string  `json:"conversation_title"`
	MessageCount      int64   `json:"message_count"`
}

// ConversationSummary is one conversation in the list view.
type ConversationSummary struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	MessageCount    int64     `json:"message_count"`
	LastMessage     *string   `json:"last_message"`
	LastMessageRole *string   `json:"last_message_role"`
}

// ConversationListResponse is the GET /api/conversations body.
type ConversationListResponse struct {
	UserIdentifier     string                `json:"user_identifier"`
	Conversations      []ConversationSummary `json:"conversations"`
	TotalConversations int                   `json:"total_conversations"`
}

// MessageListResponse is the GET /api/conversations/{id}/messages body.
type MessageListResponse struct {
	ConversationID    string    `json:"conversation_id"`
	ConversationTitle string    `json:"conversation_title"`
	Messages          []Message `json:"messages"`
	TotalMessages     int       `json:"total_messages"`
}

// DeleteConversationResponse is the DELETE /api/conversations/{id} body.
type DeleteConversationResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id"`
}

// HealthResponse is the GET /api/health body.
type HealthResponse struct {
	Status             string    `json:"status"`
	Timestamp          time.Time `json:"timestamp"`
	Version            string    `json:"version"`
	DatabaseConnected  bool      `json:"database_connected"`
	TotalUsers         int64     `json:"total_users"`
	TotalConversations int64     `json:"total_conversations"`
	TotalMessages      int64     `json:"total_messages"`
}

// ErrorBody is the unified failure body returned by the server.
type ErrorBody struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Error   string `json:"error"`
}
