package generator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/shivswrj/chat-apiserver/internal/domain"
	"github.com/shivswrj/chat-apiserver/internal/domain/entity"
)

// Remote generates replies by calling an external inference service.
// It implements the same contract as Rules, so swapping the generator
// touches nothing above the domain.ReplyGenerator interface.
type Remote struct {
	client  *client.Client
	baseURL string
	logger  *slog.Logger
}

// remoteTurn is one prior conversation turn on the wire.
type remoteTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// remoteRequest is the payload posted to the inference service.
type remoteRequest struct {
	Message string       `json:"message"`
	History []remoteTurn `json:"history"`
}

// remoteResponse is the inference service's reply.
type remoteResponse struct {
	Reply string `json:"reply"`
}

// NewRemote creates a generator that posts to the inference service at
// baseURL. The per-call deadline comes from the caller's context; the
// dial timeout here only bounds connection setup.
func NewRemote(baseURL string, logger *slog.Logger) (*Remote, error) {
	c, err := client.NewClient(
		client.WithDialTimeout(10 * time.Second),
		client.WithMaxIdleConnDuration(60 * time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create inference client: %w", err)
	}

	logger.Info("remote generator created", "base_url", baseURL)

	return &Remote{
		client:  c,
		baseURL: baseURL,
		logger:  logger,
	}, nil
}

// GenerateReply posts the message and prior history to the inference
// service and returns its reply text.
func (g *Remote) GenerateReply(ctx context.Context, message string, history []*entity.Message) (string, error) {
	turns := make([]remoteTurn, len(history))
	for i, m := range history {
		turns[i] = remoteTurn{Role: string(m.Role), Content: m.Content}
	}

	bodyBytes, err := sonic.Marshal(remoteRequest{Message: message, History: turns})
	if err != nil {
		return "", fmt.Errorf("failed to marshal inference request: %w", err)
	}

	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer func() {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
	}()

	req.SetMethod(consts.MethodPost)
	req.SetRequestURI(g.baseURL + "/v1/generate")
	req.Header.SetContentTypeBytes([]byte("application/json"))
	req.SetBody(bodyBytes)

	if err := g.client.Do(ctx, req, resp); err != nil {
		return "", fmt.Errorf("inference request failed: %w", err)
	}
	if resp.StatusCode() != consts.StatusOK {
		return "", fmt.Errorf("inference service returned HTTP %d", resp.StatusCode())
	}

	var out remoteResponse
	if err := sonic.Unmarshal(resp.Body(), &out); err != nil {
		return "", fmt.Errorf("failed to unmarshal inference response: %w", err)
	}
	if out.Reply == "" {
		return "", fmt.Errorf("inference service returned an empty reply")
	}

	g.logger.Debug("remote reply generated", "history_turns", len(turns))

	return out.Reply, nil
}

var _ domain.ReplyGenerator = (*Remote)(nil)
