package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/shivswrj/chat-apiserver/internal/cli/types"
)

// APIClient wraps a Hertz client for talking to the chat API server.
type APIClient struct {
	client *client.Client
	server string
}

// NewAPIClient creates a new API client against server.
func NewAPIClient(server string) (*APIClient, error) {
	normalizedServer, err := normalizeServerURL(server)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}

	c, err := client.NewClient(
		client.WithDialTimeout(10*time.Second),
		client.WithMaxIdleConnDuration(60*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	return &APIClient{
		client: c,
		server: normalizedServer,
	}, nil
}

// normalizeServerURL ensures the server address has a scheme and no
// trailing path.
func normalizeServerURL(server string) (string, error) {
	if !strings.Contains(server, "://") {
		server = "http://" + server
	}

	u, err := url.Parse(server)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid server URL")
	}

	return fmt.Sprintf("%s://%s", u.Scheme, u.Host), nil
}

// do sends the request and decodes a successful JSON body into out. A
// non-2xx status is turned into an error carrying the server's message.
func (c *APIClient) do(ctx context.Context, req *protocol.Request, out any) error {
	resp := protocol.AcquireResponse()
	defer protocol.ReleaseResponse(resp)

	if err := c.client.Do(ctx, req, resp); err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	statusCode := resp.StatusCode()
	if statusCode < 200 || statusCode >= 300 {
		var errBody types.ErrorBody
		if err := sonic.Unmarshal(resp.Body(), &errBody); err == nil && errBody.Error != "" {
			return fmt.Errorf("%s (HTTP %d)", errBody.Error, statusCode)
		}
		return fmt.Errorf("request failed with HTTP status: %d", statusCode)
	}

	if out == nil {
		return nil
	}
	if err := sonic.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

// Chat sends one chat message and returns the server's reply. An empty
// conversationID starts a new conversation.
func (c *APIClient) Chat(ctx context.Context, userIdentifier, conversationID, message string) (*types.ChatResponse, error) {
	reqBody := types.ChatRequest{
		Message:        message,
		ConversationID: conversationID,
		UserIdentifier: userIdentifier,
	}
	bodyBytes, err := sonic.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req := protocol.AcquireRequest()
	defer protocol.ReleaseRequest(req)

	req.SetMethod(consts.MethodPost)
	req.SetRequestURI(c.server + endpointChat)
	req.Header.SetContentTypeBytes([]byte("application/json"))
	req.SetBody(bodyBytes)

	var chatResp types.ChatResponse
	if err := c.do(ctx, req, &chatResp); err != nil {
		return nil, err
	}
	return &chatResp, nil
}

// ListConversations lists the user's conversations, most recent first.
func (c *APIClient) ListConversations(ctx context.Context, userIdentifier string) (*types.ConversationListResponse, error) {
	req := protocol.AcquireRequest()
	defer protocol.ReleaseRequest(req)

	req.SetMethod(consts.MethodGet)
	req.SetRequestURI(c.server + endpointConversations + "?user_identifier=" + url.QueryEscape(userIdentifier))

	var listResp types.ConversationListResponse
	if err := c.do(ctx, req, &listResp); err != nil {
		return nil, err
	}
	return &listResp, nil
}

// History fetches the full thread of a conversation.
func (c *APIClient) History(ctx context.Context, conversationID string) (*types.MessageListResponse, error) {
	req := protocol.AcquireRequest()
	defer protocol.ReleaseRequest(req)

	req.SetMethod(consts.MethodGet)
	req.SetRequestURI(fmt.Sprintf("%s"+endpointConversationMessages, c.server, url.PathEscape(conversationID)))

	var msgResp types.MessageListResponse
	if err := c.do(ctx, req, &msgResp); err != nil {
		return nil, err
	}
	return &msgResp, nil
}

// DeleteConversation deletes a conversation and all of its messages.
func (c *APIClient) DeleteConversation(ctx context.Context, conversationID string) error {
	req := protocol.AcquireRequest()
	defer protocol.ReleaseRequest(req)

	req.SetMethod(consts.MethodDelete)
	req.SetRequestURI(fmt.Sprintf("%s"+endpointConversationByID, c.server, url.PathEscape(conversationID)))

	return c.do(ctx, req, nil)
}

// Health probes the server and its database.
func (c *APIClient) Health(ctx context.Context) (*types.HealthResponse, error) {
	req := protocol.AcquireRequest()
	defer protocol.ReleaseRequest(req)

	req.SetMethod(consts.MethodGet)
	req.SetRequestURI(c.server + endpointHealth)

	var healthResp types.HealthResponse
	if err := c.do(ctx, req, &healthResp); err != nil {
		return nil, err
	}
	return &healthResp, nil
}
