package chatclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundzyworld/site-backend/pkg/chatbot"
)

func TestSendMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req sendRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hi", req.Message)
		assert.NotEmpty(t, req.SessionID)

		json.NewEncoder(w).Encode(chatbot.Reply{
			Response:     "Hello! How can I help?",
			QuickReplies: []string{"Book DJ", "Shop Equipment", "Creative Services", "Contact Us"},
			Intent:       "general_inquiry",
			Confidence:   0.6,
		})
	}))
	defer server.Close()

	client := New(server.URL)
	reply := client.SendMessage(context.Background(), NewSessionID(), "hi")

	assert.Equal(t, "Hello! How can I help?", reply.Response)
	assert.Equal(t, "general_inquiry", reply.Intent)
}

func TestSendMessageServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(server.URL)
	reply := client.SendMessage(context.Background(), NewSessionID(), "hi")

	assert.Equal(t, chatbot.FallbackResponse, reply.Response)
	assert.Equal(t, "error", reply.Intent)
	assert.Zero(t, reply.Confidence)
	assert.Equal(t, chatbot.FallbackQuickReplies, reply.QuickReplies)
}

func TestSendMessageTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // force a connection error

	client := New(server.URL)
	reply := client.SendMessage(context.Background(), NewSessionID(), "hi")

	assert.Equal(t, "error", reply.Intent)
	assert.Equal(t, chatbot.FallbackResponse, reply.Response)
}

func TestNewSessionID(t *testing.T) {
	pattern := regexp.MustCompile(`^session_\d+_[0-9a-z]{9}$`)

	id1 := NewSessionID()
	id2 := NewSessionID()

	assert.Regexp(t, pattern, id1)
	assert.Regexp(t, pattern, id2)
	assert.NotEqual(t, id1, id2)
}
