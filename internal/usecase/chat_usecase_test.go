package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivswrj/chat-apiserver/internal/domain"
	"github.com/shivswrj/chat-apiserver/internal/domain/entity"
)

// fakeChatRepository is an in-memory ChatRepository for usecase tests.
type fakeChatRepository struct {
	mu            sync.Mutex
	users         map[string]*entity.User // keyed by username
	conversations map[string]*entity.Conversation
	messages      []*entity.Message
	nextMessageID int64
}

func newFakeChatRepository() *fakeChatRepository {
	return &fakeChatRepository{
		users:         make(map[string]*entity.User),
		conversations: make(map[string]*entity.Conversation),
	}
}

func (r *fakeChatRepository) GetUserByName(_ context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[username]; ok {
		return u, nil
	}
	return nil, domain.NewNotFoundError("user", username)
}

func (r *fakeChatRepository) GetOrCreateUser(_ context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[username]; ok {
		return u, nil
	}
	u := &entity.User{ID: uuid.New().String(), Username: username, CreatedAt: time.Now()}
	r.users[username] = u
	return u, nil
}

func (r *fakeChatRepository) GetConversation(_ context.Context, conversationID string) (*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.conversations[conversationID]; ok {
		return c, nil
	}
	return nil, domain.NewNotFoundError("conversation", conversationID)
}

func (r *fakeChatRepository) GetOwnedConversation(_ context.Context, userID, conversationID string) (*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.conversations[conversationID]
	if !ok || c.UserID != userID {
		return nil, domain.NewNotFoundError("conversation", conversationID)
	}
	return c, nil
}

func (r *fakeChatRepository) CreateConversation(_ context.Context, userID, title string) (*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	c := &entity.Conversation{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.conversations[c.ID] = c
	return c, nil
}

func (r *fakeChatRepository) ListMessages(_ context.Context, conversationID string) ([]*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Message
	for _, m := range r.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakeChatRepository) CountMessages(_ context.Context, conversationID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, m := range r.messages {
		if m.ConversationID == conversationID {
			n++
		}
	}
	return n, nil
}

func (r *fakeChatRepository) AppendMessage(_ context.Context, conversationID, content string, role entity.Role) (*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conversations[conversationID]; !ok {
		return nil, domain.NewNotFoundError("conversation", conversationID)
	}
	r.nextMessageID++
	m := &entity.Message{
		ID:             r.nextMessageID,
		ConversationID: conversationID,
		Content:        content,
		Role:           role,
		CreatedAt:      time.Now(),
	}
	r.messages = append(r.messages, m)
	return m, nil
}

func (r *fakeChatRepository) TouchConversation(_ context.Context, conversationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.conversations[conversationID]
	if !ok {
		return domain.NewNotFoundError("conversation", conversationID)
	}
	c.UpdatedAt = time.Now()
	return nil
}

func (r *fakeChatRepository) ListConversations(_ context.Context, userID string) ([]*entity.ConversationSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.ConversationSummary{}
	for _, c := range r.conversations {
		if c.UserID == userID {
			out = append(out, &entity.ConversationSummary{Conversation: *c})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Conversation.UpdatedAt.After(out[j].Conversation.UpdatedAt)
	})
	return out, nil
}

func (r *fakeChatRepository) DeleteConversation(_ context.Context, conversationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conversations[conversationID]; !ok {
		return domain.NewNotFoundError("conversation", conversationID)
	}
	delete(r.conversations, conversationID)
	kept := r.messages[:0]
	for _, m := range r.messages {
		if m.ConversationID != conversationID {
			kept = append(kept, m)
		}
	}
	r.messages = kept
	return nil
}

func (r *fakeChatRepository) Counts(_ context.Context) (int64, int64, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), int64(len(r.conversations)), int64(len(r.messages)), nil
}

// WithTx snapshots state and restores it if fn fails, mimicking rollback.
func (r *fakeChatRepository) WithTx(_ context.Context, fn func(domain.ChatRepository) error) error {
	r.mu.Lock()
	users := make(map[string]*entity.User, len(r.users))
	for k, v := range r.users {
		users[k] = v
	}
	conversations := make(map[string]*entity.Conversation, len(r.conversations))
	for k, v := range r.conversations {
		conversations[k] = v
	}
	messages := append([]*entity.Message(nil), r.messages...)
	nextID := r.nextMessageID
	r.mu.Unlock()

	if err := fn(r); err != nil {
		r.mu.Lock()
		r.users = users
		r.conversations = conversations
		r.messages = messages
		r.nextMessageID = nextID
		r.mu.Unlock()
		return err
	}
	return nil
}

// stubGenerator returns a canned reply or error and records what it saw.
type stubGenerator struct {
	reply       string
	err         error
	lastMessage string
	lastHistory []*entity.Message
}

func (g *stubGenerator) GenerateReply(_ context.Context, message string, history []*entity.Message) (string, error) {
	g.lastMessage = message
	g.lastHistory = history
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

func newTestUsecase(repo domain.ChatRepository, gen domain.ReplyGenerator) domain.ChatUsecase {
	return NewChatUsecase(repo, gen, 5*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestChatCreatesConversationAndMessagePair(t *testing.T) {
	repo := newFakeChatRepository()
	gen := &stubGenerator{reply: "Hello! How can I help you today?"}
	uc := newTestUsecase(repo, gen)

	result, err := uc.Chat(context.Background(), &domain.ChatInput{
		UserIdentifier: "alice",
		Message:        "hello",
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.NotEmpty(t, result.Conversation.ID)
	assert.Equal(t, "hello", result.UserMessage.Content)
	assert.Equal(t, entity.RoleUser, result.UserMessage.Role)
	assert.Equal(t, "Hello! How can I help you today?", result.AssistantMessage.Content)
	assert.Equal(t, entity.RoleAssistant, result.AssistantMessage.Role)
	assert.Equal(t, int64(2), result.MessageCount)

	users, conversations, messages, err := repo.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), users)
	assert.Equal(t, int64(1), conversations)
	assert.Equal(t, int64(2), messages)

	// The user message is persisted before the assistant reply.
	assert.Less(t, result.UserMessage.ID, result.AssistantMessage.ID)
	assert.False(t, result.AssistantMessage.CreatedAt.Before(result.UserMessage.CreatedAt))
}

func TestChatReusesExistingConversation(t *testing.T) {
	repo := newFakeChatRepository()
	gen := &stubGenerator{reply: "reply"}
	uc := newTestUsecase(repo, gen)

	first, err := uc.Chat(context.Background(), &domain.ChatInput{
		UserIdentifier: "alice",
		Message:        "first turn",
	})
	require.NoError(t, err)

	second, err := uc.Chat(context.Background(), &domain.ChatInput{
		UserIdentifier: "alice",
		ConversationID: first.Conversation.ID,
		Message:        "second turn",
	})
	require.NoError(t, err)

	assert.Equal(t, first.Conversation.ID, second.Conversation.ID)
	assert.Equal(t, int64(4), second.MessageCount)

	_, conversations, messages, err := repo.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), conversations)
	assert.Equal(t, int64(4), messages)

	// The prior turn is handed to the generator as history.
	require.Len(t, gen.lastHistory, 2)
	assert.Equal(t, "first turn", gen.lastHistory[0].Content)
}

func TestChatUnknownConversationWritesNothing(t *testing.T) {
	repo := newFakeChatRepository()
	gen := &stubGenerator{reply: "reply"}
	uc := newTestUsecase(repo, gen)

	// Prime the user so the lookup path past user resolution is exercised.
	_, err := repo.GetOrCreateUser(context.Background(), "alice")
	require.NoError(t, err)

	_, err = uc.Chat(context.Background(), &domain.ChatInput{
		UserIdentifier: "alice",
		ConversationID: uuid.New().String(),
		Message:        "hello",
	})
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))

	_, conversations, messages, err := repo.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), conversations)
	assert.Equal(t, int64(0), messages)
}

func TestChatConversationOfAnotherUserNotFound(t *testing.T) {
	repo := newFakeChatRepository()
	gen := &stubGenerator{reply: "reply"}
	uc := newTestUsecase(repo, gen)

	owner, err := uc.Chat(context.Background(), &domain.ChatInput{
		UserIdentifier: "alice",
		Message:        "mine",
	})
	require.NoError(t, err)

	// Bob exists but does not own alice's conversation.
	_, err = repo.GetOrCreateUser(context.Background(), "bob")
	require.NoError(t, err)

	_, err = uc.Chat(context.Background(), &domain.ChatInput{
		UserIdentifier: "bob",
		ConversationID: owner.Conversation.ID,
		Message:        "let me in",
	})
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))

	count, err := repo.CountMessages(context.Background(), owner.Conversation.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestChatValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   *domain.ChatInput
		wantErr string
	}{
		{
			name:    "nil input",
			input:   nil,
			wantErr: "request body is required",
		},
		{
			name:    "empty message",
			input:   &domain.ChatInput{UserIdentifier: "alice", Message: ""},
			wantErr: "message is required",
		},
		{
			name:    "whitespace only message",
			input:   &domain.ChatInput{UserIdentifier: "alice", Message: "   \t\n  "},
			wantErr: "message is required",
		},
		{
			name:    "message too long",
			input:   &domain.ChatInput{UserIdentifier: "alice", Message: strings.Repeat("a", maxMessageLength+1)},
			wantErr: "message too long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeChatRepository()
			uc := newTestUsecase(repo, &stubGenerator{reply: "reply"})

			_, err := uc.Chat(context.Background(), tt.input)
			require.Error(t, err)
			assert.True(t, domain.IsInvalidInput(err))
			assert.Contains(t, err.Error(), tt.wantErr)

			users, conversations, messages, cerr := repo.Counts(context.Background())
			require.NoError(t, cerr)
			assert.Zero(t, users)
			assert.Zero(t, conversations)
			assert.Zero(t, messages)
		})
	}
}

func TestChatTrimsMessageWhitespace(t *testing.T) {
	repo := newFakeChatRepository()
	gen := &stubGenerator{reply: "reply"}
	uc := newTestUsecase(repo, gen)

	result, err := uc.Chat(context.Background(), &domain.ChatInput{
		UserIdentifier: "alice",
		Message:        "  hello there  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello there", result.UserMessage.Content)
	assert.Equal(t, "hello there", gen.lastMessage)
}

func TestChatDefaultsUserIdentifier(t *testing.T) {
	repo := newFakeChatRepository()
	uc := newTestUsecase(repo, &stubGenerator{reply: "reply"})

	_, err := uc.Chat(context.Background(), &domain.ChatInput{Message: "hello"})
	require.NoError(t, err)

	user, err := repo.GetUserByName(context.Background(), domain.DefaultUserIdentifier)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultUserIdentifier, user.Username)
}

func TestChatGeneratorFailureWritesNothing(t *testing.T) {
	repo := newFakeChatRepository()
	gen := &stubGenerator{err: errors.New("inference backend unreachable")}
	uc := newTestUsecase(repo, gen)

	_, err := uc.Chat(context.Background(), &domain.ChatInput{
		UserIdentifier: "alice",
		Message:        "hello",
	})
	require.Error(t, err)
	assert.True(t, domain.IsInternalError(err))

	users, conversations, messages, cerr := repo.Counts(context.Background())
	require.NoError(t, cerr)
	assert.Zero(t, users)
	assert.Zero(t, conversations)
	assert.Zero(t, messages)
}

func TestListConversationsUnknownUserEmpty(t *testing.T) {
	repo := newFakeChatRepository()
	uc := newTestUsecase(repo, &stubGenerator{reply: "reply"})

	summaries, err := uc.ListConversations(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestListConversationsMostRecentFirst(t *testing.T) {
	repo := newFakeChatRepository()
	uc := newTestUsecase(repo, &stubGenerator{reply: "reply"})

	first, err := uc.Chat(context.Background(), &domain.ChatInput{
		UserIdentifier: "alice",
		Message:        "older conversation",
	})
	require.NoError(t, err)

	second, err := uc.Chat(context.Background(), &domain.ChatInput{
		UserIdentifier: "alice",
		Message:        "newer conversation",
	})
	require.NoError(t, err)

	// A new turn on the first conversation bumps it to the front.
	_, err = uc.Chat(context.Background(), &domain.ChatInput{
		UserIdentifier: "alice",
		ConversationID: first.Conversation.ID,
		Message:        "bump",
	})
	require.NoError(t, err)

	summaries, err := uc.ListConversations(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, first.Conversation.ID, summaries[0].Conversation.ID)
	assert.Equal(t, second.Conversation.ID, summaries[1].Conversation.ID)
}

func TestGetConversationMessagesOrdered(t *testing.T) {
	repo := newFakeChatRepository()
	uc := newTestUsecase(repo, &stubGenerator{reply: "reply"})

	result, err := uc.Chat(context.Background(), &domain.ChatInput{
		UserIdentifier: "alice",
		Message:        "turn one",
	})
	require.NoError(t, err)

	for i := 2; i <= 3; i++ {
		_, err = uc.Chat(context.Background(), &domain.ChatInput{
			UserIdentifier: "alice",
			ConversationID: result.Conversation.ID,
			Message:        fmt.Sprintf("turn %d", i),
		})
		require.NoError(t, err)
	}

	conv, messages, err := uc.GetConversationMessages(context.Background(), result.Conversation.ID)
	require.NoError(t, err)
	assert.Equal(t, result.Conversation.ID, conv.ID)
	require.Len(t, messages, 6)

	for i := 1; i < len(messages); i++ {
		assert.LessOrEqual(t, messages[i-1].ID, messages[i].ID)
	}
	assert.Equal(t, entity.RoleUser, messages[0].Role)
	assert.Equal(t, entity.RoleAssistant, messages[1].Role)
}

func TestGetConversationMessagesNotFound(t *testing.T) {
	repo := newFakeChatRepository()
	uc := newTestUsecase(repo, &stubGenerator{reply: "reply"})

	_, _, err := uc.GetConversationMessages(context.Background(), uuid.New().String())
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestDeleteConversationRemovesMessages(t *testing.T) {
	repo := newFakeChatRepository()
	uc := newTestUsecase(repo, &stubGenerator{reply: "reply"})

	result, err := uc.Chat(context.Background(), &domain.ChatInput{
		UserIdentifier: "alice",
		Message:        "to be deleted",
	})
	require.NoError(t, err)

	err = uc.DeleteConversation(context.Background(), result.Conversation.ID)
	require.NoError(t, err)

	_, conversations, messages, err := repo.Counts(context.Background())
	require.NoError(t, err)
	assert.Zero(t, conversations)
	assert.Zero(t, messages)

	err = uc.DeleteConversation(context.Background(), result.Conversation.ID)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestDefaultTitleFormat(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	assert.Equal(t, "Chat - 2025-03-14 09:26", defaultTitle(now))
}
