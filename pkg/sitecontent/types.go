package sitecontent

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// LeadStatus is the domain type for lead pipeline states.
type LeadStatus string

// Lead status constants (typed).
const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusProposal  LeadStatus = "proposal"
	LeadStatusWon       LeadStatus = "won"
	LeadStatusLost      LeadStatus = "lost"
)

// Lead priority constants.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// AnnouncementStatus is the domain type for announcement lifecycle states.
type AnnouncementStatus string

// Announcement status constants (typed).
const (
	AnnouncementStatusDraft     AnnouncementStatus = "draft"
	AnnouncementStatusPublished AnnouncementStatus = "published"
	AnnouncementStatusExpired   AnnouncementStatus = "expired"
)

// TapeStatus is the domain type for mixtape visibility states.
type TapeStatus string

// Tape status constants (typed).
const (
	TapeStatusActive   TapeStatus = "active"
	TapeStatusFeatured TapeStatus = "featured"
	TapeStatusArchived TapeStatus = "archived"
)

// ChatSessionStatus is the domain type for chat session states.
type ChatSessionStatus string

// Chat session status constants (typed).
const (
	ChatSessionActive   ChatSessionStatus = "active"
	ChatSessionPending  ChatSessionStatus = "pending"
	ChatSessionResolved ChatSessionStatus = "resolved"
	ChatSessionClosed   ChatSessionStatus = "closed"
)

// Chat message direction constants.
const (
	MessageDirectionInbound  = "inbound"
	MessageDirectionOutbound = "outbound"
)

// OrderStatus is the domain type for order lifecycle states.
type OrderStatus string

// Order status constants (typed).
const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusFulfilled OrderStatus = "fulfilled"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ContentItem is one displayable unit within a named collection (a service
// card, a footer link, etc.). Known fields are typed; everything else the
// editor attaches rides along in Extra and round-trips flat on the wire.
type ContentItem struct {
	ID          string
	Title       string
	Description string
	Image       string
	Icon        string
	Extra       map[string]interface{}
}

type contentItemKnown struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// MarshalJSON flattens Extra alongside the known fields.
func (ci ContentItem) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(ci.Extra)+5)
	for k, v := range ci.Extra {
		out[k] = v
	}
	out["id"] = ci.ID
	out["title"] = ci.Title
	out["description"] = ci.Description
	if ci.Image != "" {
		out["image"] = ci.Image
	}
	if ci.Icon != "" {
		out["icon"] = ci.Icon
	}
	return json.Marshal(out)
}

// UnmarshalJSON splits known fields from extras.
func (ci *ContentItem) UnmarshalJSON(data []byte) error {
	var known contentItemKnown
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	delete(raw, "id")
	delete(raw, "title")
	delete(raw, "description")
	delete(raw, "image")
	delete(raw, "icon")
	ci.ID = known.ID
	ci.Title = known.Title
	ci.Description = known.Description
	ci.Image = known.Image
	ci.Icon = known.Icon
	if len(raw) > 0 {
		ci.Extra = raw
	} else {
		ci.Extra = nil
	}
	return nil
}

// ContentCollection is an ordered sequence of content items stored under a
// string key (e.g. "homepage_services"). The sequence is replaced whole on
// every write; there is no item-level mutation.
type ContentCollection struct {
	Key         string        `json:"key"`
	Description string        `json:"description,omitempty"`
	Items       []ContentItem `json:"items"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Lead is an inbound booking or service enquiry.
type Lead struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	ServiceType string     `json:"service_type"`
	EventDate   *time.Time `json:"event_date,omitempty"`
	BudgetRange string     `json:"budget_range,omitempty"`
	Message     string     `json:"message,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Source      string     `json:"source"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Product is a shop item. Prices are stored in minor units (kobo).
type Product struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Description        string    `json:"description,omitempty"`
	Category           string    `json:"category"`
	PriceCents         int64     `json:"price_cents"`
	OriginalPriceCents int64     `json:"original_price_cents,omitempty"`
	StockQuantity      int       `json:"stock_quantity"`
	ImageURL           string    `json:"image_url,omitempty"`
	Rating             float64   `json:"rating"`
	IsActive           bool      `json:"is_active"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Announcement is a site-wide notice shown to a target audience.
type Announcement struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	Type           string     `json:"type"`
	Priority       string     `json:"priority"`
	Status         string     `json:"status"`
	TargetAudience string     `json:"target_audience"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// DJTape is a published mixtape or showreel with its audio object.
type DJTape struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	ArtistName  string    `json:"artist_name"`
	Description string    `json:"description,omitempty"`
	AudioURL    string    `json:"audio_url,omitempty"`
	CoverImage  string    `json:"cover_image,omitempty"`
	Duration    int       `json:"duration,omitempty"` // seconds
	Genre       string    `json:"genre,omitempty"`
	Tags        []string  `json:"tags"`
	PlayCount   int64     `json:"play_count"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BlogPost is a published article.
type BlogPost struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Body        string     `json:"body"`
	CoverImage  string     `json:"cover_image,omitempty"`
	Tags        []string   `json:"tags"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Order is a shop purchase. Totals are in minor units.
type Order struct {
	ID            uuid.UUID   `json:"id"`
	CustomerName  string      `json:"customer_name"`
	CustomerEmail string      `json:"customer_email"`
	Items         []OrderItem `json:"items"`
	TotalCents    int64       `json:"total_cents"`
	Status        string      `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// OrderItem is one product line on an order.
type OrderItem struct {
	ProductID  uuid.UUID `json:"product_id"`
	Name       string    `json:"name"`
	Quantity   int       `json:"quantity"`
	PriceCents int64     `json:"price_cents"`
}

// ChatSession groups the messages exchanged by one widget visitor.
type ChatSession struct {
	ID           uuid.UUID              `json:"id"`
	SessionID    string                 `json:"session_id"`
	VisitorInfo  map[string]interface{} `json:"visitor_info,omitempty"`
	Status       string                 `json:"status"`
	LastActivity time.Time              `json:"last_activity"`
	MessageCount int                    `json:"message_count"`
	CreatedAt    time.Time              `json:"created_at"`
}

// ChatMessage is one side of a chat exchange. Metadata carries the derived
// intent, confidence, quick replies and model id for outbound messages.
type ChatMessage struct {
	ID        uuid.UUID              `json:"id"`
	SessionID string                 `json:"session_id"`
	Direction string                 `json:"direction"`
	Message   string                 `json:"message"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// DashboardStats is the admin overview snapshot. Counts are recomputed on
// demand; the change feed tells the console when to refetch.
type DashboardStats struct {
	ActiveChats       int   `json:"active_chats"`
	NewLeadsToday     int   `json:"new_leads_today"`
	OrdersToday       int   `json:"orders_today"`
	RevenueTodayCents int64 `json:"revenue_today_cents"`
	LowStockProducts  int   `json:"low_stock_products"`
}

// SessionFilters narrows admin chat session listings.
type SessionFilters struct {
	Status *string
	Search string
	Limit  *int
	Offset *int
}
