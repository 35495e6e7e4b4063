package sitecontent

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the main interface for the site content library
type Service interface {
	// Collection operations
	GetCollection(ctx context.Context, key string) (*ContentCollection, error)
	ListCollections(ctx context.Context, keys ...string) ([]*ContentCollection, error)
	ReplaceCollection(ctx context.Context, req ReplaceCollectionRequest) (*ContentCollection, error)

	// Lead operations
	CreateLead(ctx context.Context, req CreateLeadRequest) (*Lead, error)
	GetLead(ctx context.Context, id uuid.UUID) (*Lead, error)
	UpdateLead(ctx context.Context, req UpdateLeadRequest) (*Lead, error)
	DeleteLead(ctx context.Context, id uuid.UUID) error
	ListLeads(ctx context.Context) ([]*Lead, error)

	// Product operations
	UpsertProduct(ctx context.Context, req UpsertProductRequest) (*Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListProducts(ctx context.Context, activeOnly bool) ([]*Product, error)

	// Announcement operations
	UpsertAnnouncement(ctx context.Context, req UpsertAnnouncementRequest) (*Announcement, error)
	DeleteAnnouncement(ctx context.Context, id uuid.UUID) error
	ListAnnouncements(ctx context.Context, publishedOnly bool) ([]*Announcement, error)

	// DJ tape operations
	UpsertTape(ctx context.Context, req UpsertTapeRequest) (*DJTape, error)
	DeleteTape(ctx context.Context, id uuid.UUID) error
	ListTapes(ctx context.Context, includeArchived bool) ([]*DJTape, error)
	RecordTapePlay(ctx context.Context, id uuid.UUID) (int64, error)

	// Blog post operations
	UpsertPost(ctx context.Context, req UpsertPostRequest) (*BlogPost, error)
	GetPostBySlug(ctx context.Context, slug string) (*BlogPost, error)
	DeletePost(ctx context.Context, id uuid.UUID) error
	ListPosts(ctx context.Context, publishedOnly bool) ([]*BlogPost, error)

	// Order operations
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error)
	ListOrders(ctx context.Context) ([]*Order, error)

	// Chat operations
	AppendMessage(ctx context.Context, req AppendMessageRequest) (*ChatMessage, error)
	ListSessions(ctx context.Context, filters SessionFilters) ([]*ChatSession, error)
	SessionTranscript(ctx context.Context, sessionID string) ([]*ChatMessage, error)
	UpdateSessionStatus(ctx context.Context, sessionID string, status ChatSessionStatus) (*ChatSession, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Dashboard
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
}
