package chatbot

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundzyworld/site-backend/pkg/sitecontent"
	"github.com/soundzyworld/site-backend/pkg/sitecontent/repo/memory"
)

type stubResponder struct {
	reply string
	err   error
}

func (s *stubResponder) Reply(ctx context.Context, message string) (string, error) {
	return s.reply, s.err
}

func (s *stubResponder) Model() string { return "stub-model" }

func newContentService(t *testing.T) sitecontent.Service {
	t.Helper()
	svc, err := sitecontent.New(sitecontent.WithRepository(memory.New()))
	require.NoError(t, err)
	return svc
}

func TestHandle(t *testing.T) {
	ctx := context.Background()
	content := newContentService(t)
	chat := NewService(content, &stubResponder{reply: "We'd love to play your wedding!"}, nil)

	reply, err := chat.Handle(ctx, "session_1700000000000_abc123def", "I want to book a DJ", map[string]interface{}{"page": "/"})
	require.NoError(t, err)

	assert.Equal(t, "We'd love to play your wedding!", reply.Response)
	assert.Equal(t, "booking_inquiry", reply.Intent)
	assert.Equal(t, 0.9, reply.Confidence)
	assert.Contains(t, reply.QuickReplies, "WhatsApp Me")

	// Both sides of the turn are persisted with metadata.
	msgs, err := content.SessionTranscript(ctx, "session_1700000000000_abc123def")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, sitecontent.MessageDirectionInbound, msgs[0].Direction)
	assert.Equal(t, "chat_widget", msgs[0].Metadata["source"])
	assert.Equal(t, sitecontent.MessageDirectionOutbound, msgs[1].Direction)
	assert.Equal(t, "booking_inquiry", msgs[1].Metadata["intent"])
	assert.Equal(t, "stub-model", msgs[1].Metadata["model"])
}

func TestHandleGenerationFailure(t *testing.T) {
	ctx := context.Background()
	content := newContentService(t)
	chat := NewService(content, &stubResponder{err: errors.New("model unavailable")}, nil)

	reply, err := chat.Handle(ctx, "session_1700000000000_xyz987wvu", "hello", nil)
	require.NoError(t, err)

	assert.Equal(t, FallbackResponse, reply.Response)
	assert.Equal(t, "error", reply.Intent)
	assert.Zero(t, reply.Confidence)
	assert.Equal(t, FallbackQuickReplies, reply.QuickReplies)

	// Only the inbound side is persisted when generation fails.
	msgs, err := content.SessionTranscript(ctx, "session_1700000000000_xyz987wvu")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, sitecontent.MessageDirectionInbound, msgs[0].Direction)
}

func TestHandleSessionBookkeeping(t *testing.T) {
	ctx := context.Background()
	content := newContentService(t)
	chat := NewService(content, &stubResponder{reply: "Hi!"}, nil)

	_, err := chat.Handle(ctx, "session_1700000000000_abc123def", "hello", nil)
	require.NoError(t, err)
	_, err = chat.Handle(ctx, "session_1700000000000_abc123def", "anyone there?", nil)
	require.NoError(t, err)

	sessions, err := content.ListSessions(ctx, sitecontent.SessionFilters{})
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, 4, sessions[0].MessageCount)
	assert.Equal(t, string(sitecontent.ChatSessionActive), sessions[0].Status)
}
