package chatbot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		intent     string
		confidence float64
	}{
		{"booking", "I want to book a DJ for my wedding", "booking_inquiry", 0.9},
		{"booking via event", "planning an event next month", "booking_inquiry", 0.9},
		{"shop", "do you sell speakers in your shop?", "shop_inquiry", 0.85},
		{"gear", "what gear do you stock?", "shop_inquiry", 0.85},
		{"creative", "I need a logo for my brand", "creative_inquiry", 0.85},
		{"website", "can you build my website?", "creative_inquiry", 0.85},
		{"media", "where can I listen to your showreel?", "media_request", 0.95},
		{"music", "love the music from last time", "media_request", 0.95},
		{"pricing", "how much for a Saturday set?", "pricing_inquiry", 0.8},
		{"general", "hello there", "general_inquiry", 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.message)
			assert.Equal(t, tt.intent, got.Name)
			assert.Equal(t, tt.confidence, got.Confidence)
			assert.Len(t, got.QuickReplies, 4)
		})
	}
}

func TestClassifyOrder(t *testing.T) {
	// Booking keywords are checked first, so an ambiguous message matching
	// both booking and shop terms resolves to booking.
	got := Classify("can I book equipment?")
	assert.Equal(t, "booking_inquiry", got.Name)

	// Creative terms are checked before media terms, so "video" always
	// resolves to a creative inquiry.
	got = Classify("do you make videos?")
	assert.Equal(t, "creative_inquiry", got.Name)
}

func TestClassifyCaseInsensitive(t *testing.T) {
	got := Classify("BOOK A DJ")
	assert.Equal(t, "booking_inquiry", got.Name)
}
