package sitecontent

import (
	"time"

	"github.com/google/uuid"
)

// Request/Response DTOs

// ReplaceCollectionRequest replaces the full item sequence stored under Key.
// There is no partial update; last writer wins.
type ReplaceCollectionRequest struct {
	Key         string
	Description string
	Items       []ContentItem
}

// CreateLeadRequest contains parameters for capturing a new lead
type CreateLeadRequest struct {
	Name        string
	Email       string
	Phone       string
	ServiceType string
	EventDate   *time.Time
	BudgetRange string
	Message     string
	Source      string
}

// UpdateLeadRequest contains parameters for editing an existing lead
type UpdateLeadRequest struct {
	ID          uuid.UUID
	Name        string
	Email       string
	Phone       string
	ServiceType string
	EventDate   *time.Time
	BudgetRange string
	Message     string
	Status      string
	Priority    string
}

// UpsertProductRequest creates a product when ID is nil, updates otherwise
type UpsertProductRequest struct {
	ID                 *uuid.UUID
	Name               string
	Description        string
	Category           string
	PriceCents         int64
	OriginalPriceCents int64
	StockQuantity      int
	ImageURL           string
	Rating             float64
	IsActive           bool
}

// UpsertAnnouncementRequest creates an announcement when ID is nil, updates otherwise
type UpsertAnnouncementRequest struct {
	ID             *uuid.UUID
	Title          string
	Content        string
	Type           string
	Priority       string
	Status         string
	TargetAudience string
	ExpiresAt      *time.Time
}

// UpsertTapeRequest creates a tape when ID is nil, updates otherwise.
// Tags is the raw comma-separated editor input; the service splits and trims.
type UpsertTapeRequest struct {
	ID          *uuid.UUID
	Title       string
	ArtistName  string
	Description string
	AudioURL    string
	CoverImage  string
	Duration    int
	Genre       string
	Tags        string
	Status      string
}

// UpsertPostRequest creates a blog post when ID is nil, updates otherwise
type UpsertPostRequest struct {
	ID         *uuid.UUID
	Title      string
	Slug       string
	Excerpt    string
	Body       string
	CoverImage string
	Tags       []string
	Published  bool
}

// CreateOrderRequest contains parameters for recording an order
type CreateOrderRequest struct {
	CustomerName  string
	CustomerEmail string
	Items         []OrderItem
}

// AppendMessageRequest records one side of a chat exchange. The session row
// is created on first use and its activity counters bumped on every append.
type AppendMessageRequest struct {
	SessionID   string
	Direction   string
	Message     string
	Metadata    map[string]interface{}
	VisitorInfo map[string]interface{}
}
