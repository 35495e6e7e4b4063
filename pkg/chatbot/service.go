package chatbot

import (
	"context"
	"log/slog"
	"time"

	"github.com/soundzyworld/site-backend/pkg/sitecontent"
)

// Reply is the assistant's answer to one visitor message.
type Reply struct {
	Response     string   `json:"response"`
	QuickReplies []string `json:"quickReplies"`
	Intent       string   `json:"intent"`
	Confidence   float64  `json:"confidence"`
}

// Service handles one chat turn: persist the visitor message, generate a
// reply, persist it with its derived metadata, and return it.
type Service struct {
	content   sitecontent.Service
	responder Responder
	logger    *slog.Logger
}

// NewService creates a chat service
func NewService(content sitecontent.Service, responder Responder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		content:   content,
		responder: responder,
		logger:    logger,
	}
}

// Handle processes one visitor message. Generation failures do not fail the
// turn: the visitor gets a fallback reply pointing at direct contact
// channels, and only the inbound side is persisted.
func (s *Service) Handle(ctx context.Context, sessionID, message string, visitorInfo map[string]interface{}) (*Reply, error) {
	_, err := s.content.AppendMessage(ctx, sitecontent.AppendMessageRequest{
		SessionID: sessionID,
		Direction: sitecontent.MessageDirectionInbound,
		Message:   message,
		Metadata: map[string]interface{}{
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"source":    "chat_widget",
		},
		VisitorInfo: visitorInfo,
	})
	if err != nil {
		s.logger.Error("failed to save visitor message", "session_id", sessionID, "err", err)
	}

	intent := Classify(message)

	text, err := s.responder.Reply(ctx, message)
	if err != nil {
		s.logger.Error("failed to generate reply", "session_id", sessionID, "err", err)
		return &Reply{
			Response:     FallbackResponse,
			QuickReplies: FallbackQuickReplies,
			Intent:       "error",
			Confidence:   0,
		}, nil
	}

	_, err = s.content.AppendMessage(ctx, sitecontent.AppendMessageRequest{
		SessionID: sessionID,
		Direction: sitecontent.MessageDirectionOutbound,
		Message:   text,
		Metadata: map[string]interface{}{
			"intent":        intent.Name,
			"confidence":    intent.Confidence,
			"quick_replies": intent.QuickReplies,
			"timestamp":     time.Now().UTC().Format(time.RFC3339),
			"model":         s.responder.Model(),
		},
	})
	if err != nil {
		s.logger.Error("failed to save assistant reply", "session_id", sessionID, "err", err)
	}

	return &Reply{
		Response:     text,
		QuickReplies: intent.QuickReplies,
		Intent:       intent.Name,
		Confidence:   intent.Confidence,
	}, nil
}
