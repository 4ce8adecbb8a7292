package domain

import (
	"context"

	"github.com/shivswrj/chat-apiserver/internal/domain/entity"
)

// DefaultUserIdentifier is used when a chat request carries no
// user_identifier.
const DefaultUserIdentifier = "default_user"

// ============ Usecase-level DTOs ============

// ChatInput is the internal chat request (usecase layer).
type ChatInput struct {
	UserIdentifier string
	ConversationID string
	Message        string
}

// ChatResult is the outcome of one chat turn: both persisted messages,
// the resolved conversation, and the total message count including the
// new pair.
type ChatResult struct {
	Conversation     *entity.Conversation
	UserMessage      *entity.Message
	AssistantMessage *entity.Message
	MessageCount     int64
}

// ============ Repository interface ============

// ChatRepository is the persistence gateway over users, conversations,
// and messages. Implementations must be safe for concurrent use; every
// method touches the store through the handle it was built with, so a
// repository obtained inside WithTx operates on that transaction.
type ChatRepository interface {
	// GetUserByName fetches a user by unique username. NotFound when absent.
	GetUserByName(ctx context.Context, username string) (*entity.User, error)

	// GetOrCreateUser fetches a user by unique username, creating it
	// with a fresh identity when absent.
	GetOrCreateUser(ctx context.Context, username string) (*entity.User, error)

	// GetConversation fetches a conversation by id. NotFound when absent.
	GetConversation(ctx context.Context, conversationID string) (*entity.Conversation, error)

	// GetOwnedConversation fetches a conversation by id and verifies it
	// belongs to userID. NotFound when absent or owned by another user.
	GetOwnedConversation(ctx context.Context, userID, conversationID string) (*entity.Conversation, error)

	// CreateConversation creates a conversation for userID with the
	// given title.
	CreateConversation(ctx context.Context, userID, title string) (*entity.Conversation, error)

	// ListMessages returns all messages of a conversation in ascending
	// timestamp order, insertion order breaking ties.
	ListMessages(ctx context.Context, conversationID string) ([]*entity.Message, error)

	// CountMessages returns the number of messages in a conversation.
	CountMessages(ctx context.Context, conversationID string) (int64, error)

	// AppendMessage inserts a message and returns the stored row.
	AppendMessage(ctx context.Context, conversationID, content string, role entity.Role) (*entity.Message, error)

	// TouchConversation bumps the conversation's updated_at to now.
	TouchConversation(ctx context.Context, conversationID string) error

	// ListConversations returns the user's conversations ordered by
	// updated_at descending, each annotated with message count and a
	// truncated last-message preview.
	ListConversations(ctx context.Context, userID string) ([]*entity.ConversationSummary, error)

	// DeleteConversation deletes a conversation and all its messages in
	// one transaction. NotFound when absent.
	DeleteConversation(ctx context.Context, conversationID string) error

	// Counts returns total users, conversations, and messages (health probe).
	Counts(ctx context.Context) (users, conversations, messages int64, err error)

	// WithTx runs fn inside a single store transaction. The repository
	// passed to fn shares that transaction; returning an error rolls
	// everything back.
	WithTx(ctx context.Context, fn func(ChatRepository) error) error
}

// ============ Reply generator interface ============

// ReplyGenerator produces the assistant's reply for a user message given
// the prior message history of the conversation. Implementations may be
// slow or remote; callers bound them with a context deadline and never
// invoke them inside an open store transaction.
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, message string, history []*entity.Message) (string, error)
}

// ============ Usecase interface ============

// ChatUsecase is the application service behind the HTTP surface.
type ChatUsecase interface {
	// Chat runs one chat turn: validate, resolve user and conversation,
	// generate the reply, and persist the message pair atomically.
	Chat(ctx context.Context, in *ChatInput) (*ChatResult, error)

	// ListConversations lists a user's conversations, most recently
	// updated first. An unknown user yields an empty list, not an error.
	ListConversations(ctx context.Context, userIdentifier string) ([]*entity.ConversationSummary, error)

	// GetConversationMessages returns the conversation and its full
	// thread in ascending order. NotFound when the conversation is absent.
	GetConversationMessages(ctx context.Context, conversationID string) (*entity.Conversation, []*entity.Message, error)

	// DeleteConversation deletes a conversation and, atomically, all of
	// its messages. NotFound when absent.
	DeleteConversation(ctx context.Context, conversationID string) error
}
