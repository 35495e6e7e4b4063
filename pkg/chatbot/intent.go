package chatbot

import "strings"

// Intent classification result for one visitor message.
type Intent struct {
	Name         string
	Confidence   float64
	QuickReplies []string
}

// FallbackQuickReplies are offered when the assistant cannot answer.
var FallbackQuickReplies = []string{"WhatsApp Me", "Try Again"}

// Classify derives a coarse intent from the visitor's message. Matching is
// keyword-based and first-match-wins, so branch order matters: booking
// outranks shop, and creative terms are checked before media terms.
func Classify(message string) Intent {
	m := strings.ToLower(message)

	switch {
	case containsAny(m, "book", "dj", "event"):
		return Intent{
			Name:         "booking_inquiry",
			Confidence:   0.9,
			QuickReplies: []string{"Share Event Details", "WhatsApp Me", "View DJ Showreels", "Get Quote"},
		}
	case containsAny(m, "shop", "gear", "equipment", "buy"):
		return Intent{
			Name:         "shop_inquiry",
			Confidence:   0.85,
			QuickReplies: []string{"Browse Speakers", "DJ Equipment", "Stage Lights", "Get Quote"},
		}
	case containsAny(m, "creative", "design", "logo", "website", "video"):
		return Intent{
			Name:         "creative_inquiry",
			Confidence:   0.85,
			QuickReplies: []string{"Logo Design", "Web Design", "Video Production", "View Portfolio"},
		}
	case containsAny(m, "showreel", "tape", "music"):
		return Intent{
			Name:         "media_request",
			Confidence:   0.95,
			QuickReplies: []string{"Play Flashback Mix", "Weekend Vibes", "View All Showreels", "WhatsApp Me"},
		}
	case containsAny(m, "price", "cost", "rate", "how much"):
		return Intent{
			Name:         "pricing_inquiry",
			Confidence:   0.8,
			QuickReplies: []string{"DJ Pricing", "Equipment Rates", "Creative Services", "Get Custom Quote"},
		}
	default:
		return Intent{
			Name:         "general_inquiry",
			Confidence:   0.6,
			QuickReplies: []string{"Book DJ", "Shop Equipment", "Creative Services", "Contact Us"},
		}
	}
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
