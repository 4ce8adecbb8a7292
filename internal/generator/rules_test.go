package generator

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivswrj/chat-apiserver/internal/domain/entity"
)

func TestRulesGenerateReply(t *testing.T) {
	g := NewRules()

	tests := []struct {
		name    string
		message string
		want    string
	}{
		{
			name:    "greeting",
			message: "hello there",
			want:    "Hello! How can I help you today?",
		},
		{
			name:    "greeting case insensitive",
			message: "HELLO",
			want:    "Hello! How can I help you today?",
		},
		{
			name:    "greeting hi as substring",
			message: "hi, anyone around?",
			want:    "Hello! How can I help you today?",
		},
		{
			name:    "product inquiry",
			message: "I want to buy a new laptop",
			want:    "I can help you find products. We have electronics, accessories, and more. What are you looking for?",
		},
		{
			name:    "price inquiry",
			message: "what is the price of headphones?",
			want:    "Our products are competitively priced. Would you like me to check specific item prices for you?",
		},
		{
			name:    "cost keyword",
			message: "how much does it cost",
			want:    "Our products are competitively priced. Would you like me to check specific item prices for you?",
		},
		{
			name:    "thanks",
			message: "thanks a lot",
			want:    "You're welcome! Is there anything else I can help you with?",
		},
		{
			name:    "farewell",
			message: "ok goodbye",
			want:    "Goodbye! Feel free to come back anytime if you need assistance.",
		},
		{
			name:    "greeting outranks price when both match",
			message: "hello, what is the price?",
			want:    "Hello! How can I help you today?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := g.GenerateReply(context.Background(), tt.message, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRulesFallbackEchoesInput(t *testing.T) {
	g := NewRules()

	got, err := g.GenerateReply(context.Background(), "quantum flux capacitors", nil)
	require.NoError(t, err)
	assert.Contains(t, got, `"quantum flux capacitors"`)
	assert.Contains(t, got, "more details")
}

func TestRulesFallbackTruncatesLongInput(t *testing.T) {
	g := NewRules()

	long := strings.Repeat("z", 500)
	got, err := g.GenerateReply(context.Background(), long, nil)
	require.NoError(t, err)
	assert.Contains(t, got, strings.Repeat("z", echoLimit))
	assert.NotContains(t, got, strings.Repeat("z", echoLimit+1))
}

func TestRulesIgnoresHistory(t *testing.T) {
	g := NewRules()

	history := []*entity.Message{
		{Role: entity.RoleUser, Content: "what is the price?"},
		{Role: entity.RoleAssistant, Content: "Our products are competitively priced."},
	}
	got, err := g.GenerateReply(context.Background(), "hello again", history)
	require.NoError(t, err)
	assert.Equal(t, "Hello! How can I help you today?", got)
}

func TestRulesRespectsCancelledContext(t *testing.T) {
	g := NewRules()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.GenerateReply(ctx, "hello", nil)
	assert.Error(t, err)
}
