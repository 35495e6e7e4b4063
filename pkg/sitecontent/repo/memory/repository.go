package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/soundzyworld/site-backend/pkg/sitecontent"
)

// Repository implements sitecontent.Repository using in-memory storage
type Repository struct {
	mu            sync.RWMutex
	collections   map[string]*sitecontent.ContentCollection
	leads         map[uuid.UUID]*sitecontent.Lead
	products      map[uuid.UUID]*sitecontent.Product
	announcements map[uuid.UUID]*sitecontent.Announcement
	tapes         map[uuid.UUID]*sitecontent.DJTape
	posts         map[uuid.UUID]*sitecontent.BlogPost
	orders        map[uuid.UUID]*sitecontent.Order
	sessions      map[string]*sitecontent.ChatSession
	messages      map[string][]*sitecontent.ChatMessage // session_id -> ordered messages
}

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{
		collections:   make(map[string]*sitecontent.ContentCollection),
		leads:         make(map[uuid.UUID]*sitecontent.Lead),
		products:      make(map[uuid.UUID]*sitecontent.Product),
		announcements: make(map[uuid.UUID]*sitecontent.Announcement),
		tapes:         make(map[uuid.UUID]*sitecontent.DJTape),
		posts:         make(map[uuid.UUID]*sitecontent.BlogPost),
		orders:        make(map[uuid.UUID]*sitecontent.Order),
		sessions:      make(map[string]*sitecontent.ChatSession),
		messages:      make(map[string][]*sitecontent.ChatMessage),
	}
}

var _ sitecontent.Repository = (*Repository)(nil)

// Collection operations

func (r *Repository) GetCollection(ctx context.Context, key string) (*sitecontent.ContentCollection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	col, exists := r.collections[key]
	if !exists {
		return nil, sitecontent.ErrCollectionNotFound
	}
	return copyCollection(col), nil
}

func (r *Repository) ListCollections(ctx context.Context, keys []string) ([]*sitecontent.ContentCollection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*sitecontent.ContentCollection
	for _, key := range keys {
		if col, exists := r.collections[key]; exists {
			result = append(result, copyCollection(col))
		}
	}
	return result, nil
}

func (r *Repository) SaveCollection(ctx context.Context, col *sitecontent.ContentCollection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.collections[col.Key] = copyCollection(col)
	return nil
}

func copyCollection(col *sitecontent.ContentCollection) *sitecontent.ContentCollection {
	colCopy := *col
	colCopy.Items = make([]sitecontent.ContentItem, len(col.Items))
	copy(colCopy.Items, col.Items)
	return &colCopy
}

// Lead operations

func (r *Repository) CreateLead(ctx context.Context, lead *sitecontent.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	leadCopy := *lead
	r.leads[lead.ID] = &leadCopy
	return nil
}

func (r *Repository) GetLead(ctx context.Context, id uuid.UUID) (*sitecontent.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lead, exists := r.leads[id]
	if !exists {
		return nil, sitecontent.ErrLeadNotFound
	}
	leadCopy := *lead
	return &leadCopy, nil
}

func (r *Repository) UpdateLead(ctx context.Context, lead *sitecontent.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.leads[lead.ID]; !exists {
		return sitecontent.ErrLeadNotFound
	}
	leadCopy := *lead
	r.leads[lead.ID] = &leadCopy
	return nil
}

func (r *Repository) DeleteLead(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.leads[id]; !exists {
		return sitecontent.ErrLeadNotFound
	}
	delete(r.leads, id)
	return nil
}

func (r *Repository) ListLeads(ctx context.Context) ([]*sitecontent.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*sitecontent.Lead, 0, len(r.leads))
	for _, lead := range r.leads {
		leadCopy := *lead
		result = append(result, &leadCopy)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *Repository) CountLeadsSince(ctx context.Context, since time.Time) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, lead := range r.leads {
		if !lead.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

// Product operations

func (r *Repository) SaveProduct(ctx context.Context, product *sitecontent.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	productCopy := *product
	r.products[product.ID] = &productCopy
	return nil
}

func (r *Repository) GetProduct(ctx context.Context, id uuid.UUID) (*sitecontent.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, exists := r.products[id]
	if !exists {
		return nil, sitecontent.ErrProductNotFound
	}
	productCopy := *product
	return &productCopy, nil
}

func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[id]; !exists {
		return sitecontent.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *Repository) ListProducts(ctx context.Context, activeOnly bool) ([]*sitecontent.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*sitecontent.Product
	for _, product := range r.products {
		if activeOnly && !product.IsActive {
			continue
		}
		productCopy := *product
		result = append(result, &productCopy)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *Repository) CountLowStock(ctx context.Context, threshold int) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, product := range r.products {
		if product.IsActive && product.StockQuantity < threshold {
			count++
		}
	}
	return count, nil
}

// Announcement operations

func (r *Repository) SaveAnnouncement(ctx context.Context, a *sitecontent.Announcement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	aCopy := *a
	r.announcements[a.ID] = &aCopy
	return nil
}

func (r *Repository) GetAnnouncement(ctx context.Context, id uuid.UUID) (*sitecontent.Announcement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, exists := r.announcements[id]
	if !exists {
		return nil, sitecontent.ErrAnnouncementNotFound
	}
	aCopy := *a
	return &aCopy, nil
}

func (r *Repository) DeleteAnnouncement(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.announcements[id]; !exists {
		return sitecontent.ErrAnnouncementNotFound
	}
	delete(r.announcements, id)
	return nil
}

func (r *Repository) ListAnnouncements(ctx context.Context, publishedOnly bool) ([]*sitecontent.Announcement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*sitecontent.Announcement
	for _, a := range r.announcements {
		if publishedOnly && a.Status != string(sitecontent.AnnouncementStatusPublished) {
			continue
		}
		aCopy := *a
		result = append(result, &aCopy)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// DJ tape operations

func (r *Repository) SaveTape(ctx context.Context, tape *sitecontent.DJTape) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tapeCopy := *tape
	tapeCopy.Tags = append([]string(nil), tape.Tags...)
	r.tapes[tape.ID] = &tapeCopy
	return nil
}

func (r *Repository) GetTape(ctx context.Context, id uuid.UUID) (*sitecontent.DJTape, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tape, exists := r.tapes[id]
	if !exists {
		return nil, sitecontent.ErrTapeNotFound
	}
	tapeCopy := *tape
	tapeCopy.Tags = append([]string(nil), tape.Tags...)
	return &tapeCopy, nil
}

func (r *Repository) DeleteTape(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tapes[id]; !exists {
		return sitecontent.ErrTapeNotFound
	}
	delete(r.tapes, id)
	return nil
}

func (r *Repository) ListTapes(ctx context.Context, includeArchived bool) ([]*sitecontent.DJTape, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*sitecontent.DJTape
	for _, tape := range r.tapes {
		if !includeArchived && tape.Status == string(sitecontent.TapeStatusArchived) {
			continue
		}
		tapeCopy := *tape
		tapeCopy.Tags = append([]string(nil), tape.Tags...)
		result = append(result, &tapeCopy)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *Repository) IncrementTapePlays(ctx context.Context, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tape, exists := r.tapes[id]
	if !exists {
		return 0, sitecontent.ErrTapeNotFound
	}
	tape.PlayCount++
	return tape.PlayCount, nil
}

// Blog post operations

func (r *Repository) SavePost(ctx context.Context, post *sitecontent.BlogPost) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	postCopy := *post
	postCopy.Tags = append([]string(nil), post.Tags...)
	r.posts[post.ID] = &postCopy
	return nil
}

func (r *Repository) GetPost(ctx context.Context, id uuid.UUID) (*sitecontent.BlogPost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, exists := r.posts[id]
	if !exists {
		return nil, sitecontent.ErrPostNotFound
	}
	postCopy := *post
	return &postCopy, nil
}

func (r *Repository) GetPostBySlug(ctx context.Context, slug string) (*sitecontent.BlogPost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, post := range r.posts {
		if post.Slug == slug {
			postCopy := *post
			return &postCopy, nil
		}
	}
	return nil, sitecontent.ErrPostNotFound
}

func (r *Repository) DeletePost(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.posts[id]; !exists {
		return sitecontent.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *Repository) ListPosts(ctx context.Context, publishedOnly bool) ([]*sitecontent.BlogPost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*sitecontent.BlogPost
	for _, post := range r.posts {
		if publishedOnly && !post.Published {
			continue
		}
		postCopy := *post
		result = append(result, &postCopy)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// Order operations

func (r *Repository) CreateOrder(ctx context.Context, order *sitecontent.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	orderCopy := *order
	orderCopy.Items = append([]sitecontent.OrderItem(nil), order.Items...)
	r.orders[order.ID] = &orderCopy
	return nil
}

func (r *Repository) ListOrders(ctx context.Context) ([]*sitecontent.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*sitecontent.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orderCopy := *order
		result = append(result, &orderCopy)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *Repository) OrdersSince(ctx context.Context, since time.Time) ([]*sitecontent.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*sitecontent.Order
	for _, order := range r.orders {
		if !order.CreatedAt.Before(since) {
			orderCopy := *order
			result = append(result, &orderCopy)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// Chat operations

func (r *Repository) GetSession(ctx context.Context, sessionID string) (*sitecontent.ChatSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, exists := r.sessions[sessionID]
	if !exists {
		return nil, sitecontent.ErrSessionNotFound
	}
	sessionCopy := *session
	return &sessionCopy, nil
}

func (r *Repository) SaveSession(ctx context.Context, session *sitecontent.ChatSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessionCopy := *session
	r.sessions[session.SessionID] = &sessionCopy
	return nil
}

func (r *Repository) DeleteSession(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[sessionID]; !exists {
		return sitecontent.ErrSessionNotFound
	}
	delete(r.sessions, sessionID)
	delete(r.messages, sessionID)
	return nil
}

func (r *Repository) ListSessions(ctx context.Context, filters sitecontent.SessionFilters) ([]*sitecontent.ChatSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*sitecontent.ChatSession
	search := strings.ToLower(filters.Search)
	for _, session := range r.sessions {
		if filters.Status != nil && session.Status != *filters.Status {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(session.SessionID), search) {
			continue
		}
		sessionCopy := *session
		result = append(result, &sessionCopy)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].LastActivity.After(result[j].LastActivity)
	})

	offset := 0
	if filters.Offset != nil {
		offset = *filters.Offset
	}
	if offset > len(result) {
		offset = len(result)
	}
	result = result[offset:]
	if filters.Limit != nil && *filters.Limit < len(result) {
		result = result[:*filters.Limit]
	}
	return result, nil
}

func (r *Repository) CountSessionsByStatus(ctx context.Context, status string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, session := range r.sessions {
		if session.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *Repository) CreateMessage(ctx context.Context, msg *sitecontent.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	msgCopy := *msg
	r.messages[msg.SessionID] = append(r.messages[msg.SessionID], &msgCopy)
	return nil
}

func (r *Repository) ListMessages(ctx context.Context, sessionID string) ([]*sitecontent.ChatMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	msgs := r.messages[sessionID]
	result := make([]*sitecontent.ChatMessage, 0, len(msgs))
	for _, msg := range msgs {
		msgCopy := *msg
		result = append(result, &msgCopy)
	}
	return result, nil
}
