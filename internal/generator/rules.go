package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/shivswrj/chat-apiserver/internal/domain"
	"github.com/shivswrj/chat-apiserver/internal/domain/entity"
)

// echoLimit caps how much of the user's message the fallback reply quotes.
const echoLimit = 80

// rule pairs match keywords with a canned response. Keywords are
// matched as case-insensitive substrings.
type rule struct {
	keywords []string
	response string
}

// rules is the fixed priority table; the first matching rule wins.
var rules = []rule{
	{
		keywords: []string{"hello", "hi"},
		response: "Hello! How can I help you today?",
	},
	{
		keywords: []string{"product", "buy"},
		response: "I can help you find products. We have electronics, accessories, and more. What are you looking for?",
	},
	{
		keywords: []string{"price", "cost"},
		response: "Our products are competitively priced. Would you like me to check specific item prices for you?",
	},
	{
		keywords: []string{"thank"},
		response: "You're welcome! Is there anything else I can help you with?",
	},
	{
		keywords: []string{"bye", "goodbye"},
		response: "Goodbye! Feel free to come back anytime if you need assistance.",
	},
}

// Rules is the built-in keyword reply generator. It receives the prior
// conversation history for interface compatibility with remote
// generators but does not use it.
type Rules struct{}

// NewRules creates the rule-based generator.
func NewRules() *Rules {
	return &Rules{}
}

// GenerateReply evaluates the rule table in priority order and returns
// the first match, falling back to an echo that asks for detail.
func (g *Rules) GenerateReply(ctx context.Context, message string, history []*entity.Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	lowered := strings.ToLower(message)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lowered, kw) {
				return r.response, nil
			}
		}
	}

	return fmt.Sprintf(
		"I understand you're asking about: %q. Let me help you with that. Could you provide more details about what you're looking for?",
		truncate(message, echoLimit),
	), nil
}

// truncate shortens s to limit runes.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// compile-time interface check
var _ domain.ReplyGenerator = (*Rules)(nil)
