package chatbot

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Contact details surfaced in fallback replies and the assistant prompt.
const (
	ContactWhatsApp = "+234 816 668 7167"
	ContactEmail    = "Info@soundzyworld.com.ng"
)

// DefaultModel is used when no model id is configured.
const DefaultModel = "gemini-2.0-flash-exp"

const systemPrompt = `You are a friendly customer service assistant for Soundzy World Global (SWG), an entertainment and event services company in Port Harcourt, Nigeria.

YOUR ROLE:
- Be conversational, helpful, and human-like
- Answer questions naturally without dumping all information at once
- Only provide specific details when asked or relevant
- Guide users to the right service based on their needs

AVAILABLE SERVICES:
1. DJ & Entertainment (weddings, events, parties)
2. Equipment Shop & Rental (audio, lighting, DJ gear)
3. Creative Services (design, web, video, marketing)

IMPORTANT GUIDELINES:
- Keep responses concise (1-2 short paragraphs)
- Don't list all services unless asked
- Only mention pricing if specifically asked about costs
- Provide contact details (WhatsApp: ` + ContactWhatsApp + `, Email: ` + ContactEmail + `) ONLY when:
  * User asks how to reach out
  * You cannot answer their specific question
  * User wants to book or get a detailed quote
  * Conversation naturally leads to next steps

Be natural and conversational - you're chatting, not presenting a brochure.`

// FallbackResponse is returned when generation fails.
const FallbackResponse = "I apologize, but I'm having trouble processing your request right now. " +
	"Please try contacting us directly via WhatsApp at " + ContactWhatsApp +
	" or email " + ContactEmail

// Responder produces assistant replies to visitor messages.
type Responder interface {
	Reply(ctx context.Context, message string) (string, error)
	Model() string
}

// GeminiResponder generates replies with Google's Gemini API.
type GeminiResponder struct {
	client *genai.Client
	model  string
}

// NewGeminiResponder creates a Gemini-backed responder.
func NewGeminiResponder(ctx context.Context, apiKey, model string) (*GeminiResponder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiResponder{client: client, model: model}, nil
}

// Reply generates an assistant response for one visitor message.
func (r *GeminiResponder) Reply(ctx context.Context, message string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(systemPrompt, genai.RoleUser),
		genai.NewContentFromText(fmt.Sprintf("User: %s\nAssistant:", message), genai.RoleUser),
	}

	resp, err := r.client.Models.GenerateContent(ctx, r.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model %s", r.model)
	}
	return text, nil
}

// Model returns the configured model id.
func (r *GeminiResponder) Model() string {
	return r.model
}
