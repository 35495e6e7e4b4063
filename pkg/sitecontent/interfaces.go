package sitecontent

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// Table names carried on change events. They match the store schema so feed
// subscriptions line up with the rows they watch.
const (
	TableSiteSettings  = "site_settings"
	TableLeads         = "leads"
	TableProducts      = "products"
	TableAnnouncements = "announcements"
	TableDJTapes       = "dj_tapes"
	TableBlogPosts     = "blog_posts"
	TableOrders        = "orders"
	TableChatSessions  = "chat_sessions"
	TableChatMessages  = "chat_messages"
)

// Event operation constants.
const (
	OpInsert = "INSERT"
	OpUpdate = "UPDATE"
	OpDelete = "DELETE"
)

// Event is a change notification for one row or collection key. Value carries
// the new full record; partial payloads are not supported.
type Event struct {
	Table string      `json:"table"`
	Key   string      `json:"key,omitempty"`
	Op    string      `json:"op"`
	Value interface{} `json:"value,omitempty"`
	At    time.Time   `json:"at"`
}

// EventFeed delivers change events to keyed subscribers. Subscribe with an
// empty key to receive every event for a table. The returned cancel func
// tears the subscription down and closes the channel; it is safe to call
// more than once.
type EventFeed interface {
	Publish(evt Event)
	Subscribe(table, key string) (<-chan Event, func())
}

// BlobStore defines the interface for media storage backends
type BlobStore interface {
	// GetUploadURL returns a URL for uploading a media object
	GetUploadURL(ctx context.Context, objectKey string) (string, error)

	// Upload uploads a media object directly
	Upload(ctx context.Context, objectKey string, reader io.Reader) error

	// GetDownloadURL returns a URL for downloading a media object
	GetDownloadURL(ctx context.Context, objectKey string, downloadFilename string) (string, error)

	// GetPreviewURL returns a URL for inline playback/display
	GetPreviewURL(ctx context.Context, objectKey string) (string, error)

	// Download downloads a media object directly
	Download(ctx context.Context, objectKey string) (io.ReadCloser, error)

	// Delete deletes a media object
	Delete(ctx context.Context, objectKey string) error
}

// Repository defines the interface for site content persistence
type Repository interface {
	// Collection operations
	GetCollection(ctx context.Context, key string) (*ContentCollection, error)
	ListCollections(ctx context.Context, keys []string) ([]*ContentCollection, error)
	SaveCollection(ctx context.Context, col *ContentCollection) error

	// Lead operations
	CreateLead(ctx context.Context, lead *Lead) error
	GetLead(ctx context.Context, id uuid.UUID) (*Lead, error)
	UpdateLead(ctx context.Context, lead *Lead) error
	DeleteLead(ctx context.Context, id uuid.UUID) error
	ListLeads(ctx context.Context) ([]*Lead, error)
	CountLeadsSince(ctx context.Context, since time.Time) (int, error)

	// Product operations
	SaveProduct(ctx context.Context, product *Product) error
	GetProduct(ctx context.Context, id uuid.UUID) (*Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListProducts(ctx context.Context, activeOnly bool) ([]*Product, error)
	CountLowStock(ctx context.Context, threshold int) (int, error)

	// Announcement operations
	SaveAnnouncement(ctx context.Context, a *Announcement) error
	GetAnnouncement(ctx context.Context, id uuid.UUID) (*Announcement, error)
	DeleteAnnouncement(ctx context.Context, id uuid.UUID) error
	ListAnnouncements(ctx context.Context, publishedOnly bool) ([]*Announcement, error)

	// DJ tape operations
	SaveTape(ctx context.Context, tape *DJTape) error
	GetTape(ctx context.Context, id uuid.UUID) (*DJTape, error)
	DeleteTape(ctx context.Context, id uuid.UUID) error
	ListTapes(ctx context.Context, includeArchived bool) ([]*DJTape, error)
	IncrementTapePlays(ctx context.Context, id uuid.UUID) (int64, error)

	// Blog post operations
	SavePost(ctx context.Context, post *BlogPost) error
	GetPost(ctx context.Context, id uuid.UUID) (*BlogPost, error)
	GetPostBySlug(ctx context.Context, slug string) (*BlogPost, error)
	DeletePost(ctx context.Context, id uuid.UUID) error
	ListPosts(ctx context.Context, publishedOnly bool) ([]*BlogPost, error)

	// Order operations
	CreateOrder(ctx context.Context, order *Order) error
	ListOrders(ctx context.Context) ([]*Order, error)
	OrdersSince(ctx context.Context, since time.Time) ([]*Order, error)

	// Chat operations
	GetSession(ctx context.Context, sessionID string) (*ChatSession, error)
	SaveSession(ctx context.Context, session *ChatSession) error
	DeleteSession(ctx context.Context, sessionID string) error
	ListSessions(ctx context.Context, filters SessionFilters) ([]*ChatSession, error)
	CountSessionsByStatus(ctx context.Context, status string) (int, error)
	CreateMessage(ctx context.Context, msg *ChatMessage) error
	ListMessages(ctx context.Context, sessionID string) ([]*ChatMessage, error)
}
