package sitecontent

import (
	"fmt"
	"strings"
)

// Derived display fields for the admin console. These mirror the badge and
// formatting rules the managers render with, so list views stay consistent
// across surfaces.

// Badge tone constants.
const (
	ToneDefault     = "default"
	ToneSecondary   = "secondary"
	ToneDestructive = "destructive"
	ToneOutline     = "outline"
)

// StockStatus is the stock badge derived from a product's quantity.
type StockStatus struct {
	Label string `json:"label"`
	Tone  string `json:"tone"`
}

// StockStatusFor derives the stock badge. Zero is out of stock, one through
// four is low stock, five and up is in stock.
func StockStatusFor(quantity int) StockStatus {
	switch {
	case quantity == 0:
		return StockStatus{Label: "Out of Stock", Tone: ToneDestructive}
	case quantity < 5:
		return StockStatus{Label: "Low Stock", Tone: ToneSecondary}
	default:
		return StockStatus{Label: "In Stock", Tone: ToneDefault}
	}
}

// FormatPrice renders a minor-unit price as naira with thousands grouping.
// Whole amounts drop the decimal part.
func FormatPrice(cents int64) string {
	negative := cents < 0
	if negative {
		cents = -cents
	}
	whole := cents / 100
	frac := cents % 100

	digits := fmt.Sprintf("%d", whole)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	out := "₦" + b.String()
	if frac != 0 {
		out = fmt.Sprintf("%s.%02d", out, frac)
	}
	if negative {
		out = "-" + out
	}
	return out
}

// FormatDuration renders seconds as m:ss for tape listings.
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return "--"
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// SplitTags splits free-text comma-separated tag input, trimming whitespace
// and dropping empties.
func SplitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}

// LeadStatusColor maps a lead pipeline status to its list badge color.
func LeadStatusColor(status string) string {
	switch LeadStatus(status) {
	case LeadStatusNew:
		return "blue"
	case LeadStatusContacted:
		return "yellow"
	case LeadStatusQualified:
		return "green"
	case LeadStatusProposal:
		return "purple"
	case LeadStatusWon:
		return "emerald"
	case LeadStatusLost:
		return "red"
	default:
		return "gray"
	}
}

// LeadPriorityTone maps a lead priority to its badge tone.
func LeadPriorityTone(priority string) string {
	switch priority {
	case PriorityHigh:
		return ToneDestructive
	case PriorityMedium:
		return ToneSecondary
	default:
		return ToneOutline
	}
}

// AnnouncementStatusTone maps an announcement status to its badge tone.
func AnnouncementStatusTone(status string) string {
	switch AnnouncementStatus(status) {
	case AnnouncementStatusPublished:
		return ToneDefault
	case AnnouncementStatusDraft:
		return ToneSecondary
	case AnnouncementStatusExpired:
		return ToneOutline
	default:
		return ToneSecondary
	}
}

// AnnouncementPriorityTone maps an announcement priority to its badge tone.
func AnnouncementPriorityTone(priority string) string {
	switch priority {
	case "urgent":
		return ToneDestructive
	case "high":
		return ToneSecondary
	default:
		return ToneOutline
	}
}

// TapeStatusTone maps a tape status to its badge tone.
func TapeStatusTone(status string) string {
	switch TapeStatus(status) {
	case TapeStatusFeatured:
		return ToneDefault
	case TapeStatusActive:
		return ToneSecondary
	case TapeStatusArchived:
		return ToneOutline
	default:
		return ToneSecondary
	}
}

// SessionStatusTone maps a chat session status to its badge tone.
func SessionStatusTone(status string) string {
	switch ChatSessionStatus(status) {
	case ChatSessionActive:
		return ToneDefault
	case ChatSessionPending:
		return ToneSecondary
	case ChatSessionResolved:
		return ToneOutline
	case ChatSessionClosed:
		return ToneOutline
	default:
		return ToneSecondary
	}
}
