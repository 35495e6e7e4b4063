// Package chatclient is a small HTTP client for the chat endpoint. It is
// what embedding Go frontends (or the widget's BFF) use to talk to the
// assistant: SendMessage never fails the caller, it degrades to a fallback
// reply pointing at direct contact channels.
package chatclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	"github.com/soundzyworld/site-backend/pkg/chatbot"
)

// Client talks to the chat endpoint on behalf of a widget session.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for degraded turns.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a chat client for the given endpoint URL.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type sendRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

// SendMessage posts one visitor message and returns the assistant's reply.
// It always resolves: any transport, status, or decode failure yields the
// fallback reply instead of an error.
func (c *Client) SendMessage(ctx context.Context, sessionID, message string) *chatbot.Reply {
	reply, err := c.send(ctx, sessionID, message)
	if err != nil {
		c.logger.Error("chat request failed", "session_id", sessionID, "err", err)
		return &chatbot.Reply{
			Response:     chatbot.FallbackResponse,
			QuickReplies: chatbot.FallbackQuickReplies,
			Intent:       "error",
			Confidence:   0,
		}
	}
	return reply
}

func (c *Client) send(ctx context.Context, sessionID, message string) (*chatbot.Reply, error) {
	body, err := json.Marshal(sendRequest{Message: message, SessionID: sessionID})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var reply chatbot.Reply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, fmt.Errorf("failed to decode reply: %w", err)
	}
	return &reply, nil
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewSessionID generates a widget session identifier of the form
// session_<unix-millis>_<9 random base36 chars>.
func NewSessionID() string {
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = base36[rand.Intn(len(base36))]
	}
	return fmt.Sprintf("session_%d_%s", time.Now().UnixMilli(), suffix)
}
