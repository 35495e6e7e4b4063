package sitecontent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// service is the default Service implementation
type service struct {
	repo Repository
	feed EventFeed
}

// Option configures the service
type Option func(*service)

// WithRepository sets the repository backend
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repo = repo
	}
}

// WithEventFeed sets the change feed mutations publish to. Without one,
// mutations still persist but nothing is pushed to subscribers.
func WithEventFeed(feed EventFeed) Option {
	return func(s *service) {
		s.feed = feed
	}
}

// New creates a new site content service
func New(opts ...Option) (Service, error) {
	s := &service{}
	for _, opt := range opts {
		opt(s)
	}
	if s.repo == nil {
		return nil, errors.New("repository is required")
	}
	return s, nil
}

func (s *service) publish(table, key, op string, value interface{}) {
	if s.feed == nil {
		return
	}
	s.feed.Publish(Event{
		Table: table,
		Key:   key,
		Op:    op,
		Value: value,
		At:    time.Now().UTC(),
	})
}

// Collection operations

func (s *service) GetCollection(ctx context.Context, key string) (*ContentCollection, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	col, err := s.repo.GetCollection(ctx, key)
	if errors.Is(err, ErrCollectionNotFound) {
		// Absent configuration means "no items configured yet", not a failure.
		return &ContentCollection{Key: key, Items: []ContentItem{}}, nil
	}
	if err != nil {
		return nil, &CollectionError{Key: key, Op: "get", Err: err}
	}
	if col.Items == nil {
		col.Items = []ContentItem{}
	}
	return col, nil
}

func (s *service) ListCollections(ctx context.Context, keys ...string) ([]*ContentCollection, error) {
	cols, err := s.repo.ListCollections(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	byKey := make(map[string]*ContentCollection, len(cols))
	for _, col := range cols {
		if col.Items == nil {
			col.Items = []ContentItem{}
		}
		byKey[col.Key] = col
	}
	// Keep the requested order and fill gaps with empty collections so the
	// services manager renders a section per key either way.
	out := make([]*ContentCollection, 0, len(keys))
	for _, key := range keys {
		if col, ok := byKey[key]; ok {
			out = append(out, col)
		} else {
			out = append(out, &ContentCollection{Key: key, Items: []ContentItem{}})
		}
	}
	return out, nil
}

func (s *service) ReplaceCollection(ctx context.Context, req ReplaceCollectionRequest) (*ContentCollection, error) {
	if req.Key == "" {
		return nil, ErrEmptyKey
	}
	items := req.Items
	if items == nil {
		items = []ContentItem{}
	}
	col := &ContentCollection{
		Key:         req.Key,
		Description: req.Description,
		Items:       items,
		UpdatedAt:   time.Now().UTC(),
	}
	if err := s.repo.SaveCollection(ctx, col); err != nil {
		return nil, &CollectionError{Key: req.Key, Op: "replace", Err: err}
	}
	s.publish(TableSiteSettings, req.Key, OpUpdate, col.Items)
	slog.Info("Collection replaced", "key", req.Key, "items", len(col.Items))
	return col, nil
}

// Lead operations

func (s *service) CreateLead(ctx context.Context, req CreateLeadRequest) (*Lead, error) {
	now := time.Now().UTC()
	source := req.Source
	if source == "" {
		source = "website"
	}
	lead := &Lead{
		ID:          uuid.New(),
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		ServiceType: req.ServiceType,
		EventDate:   req.EventDate,
		BudgetRange: req.BudgetRange,
		Message:     req.Message,
		Status:      string(LeadStatusNew),
		Priority:    PriorityMedium,
		Source:      source,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.CreateLead(ctx, lead); err != nil {
		return nil, &EntityError{Entity: "lead", ID: lead.ID.String(), Op: "create", Err: err}
	}
	s.publish(TableLeads, lead.ID.String(), OpInsert, lead)
	slog.Info("Lead captured", "lead_id", lead.ID.String(), "service_type", lead.ServiceType)
	return lead, nil
}

func (s *service) GetLead(ctx context.Context, id uuid.UUID) (*Lead, error) {
	return s.repo.GetLead(ctx, id)
}

func validLeadStatus(status string) bool {
	switch LeadStatus(status) {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified,
		LeadStatusProposal, LeadStatusWon, LeadStatusLost:
		return true
	}
	return false
}

func (s *service) UpdateLead(ctx context.Context, req UpdateLeadRequest) (*Lead, error) {
	if !validLeadStatus(req.Status) {
		return nil, fmt.Errorf("lead status %q: %w", req.Status, ErrInvalidStatus)
	}
	lead, err := s.repo.GetLead(ctx, req.ID)
	if err != nil {
		return nil, &EntityError{Entity: "lead", ID: req.ID.String(), Op: "update", Err: err}
	}
	lead.Name = req.Name
	lead.Email = req.Email
	lead.Phone = req.Phone
	lead.ServiceType = req.ServiceType
	lead.EventDate = req.EventDate
	lead.BudgetRange = req.BudgetRange
	lead.Message = req.Message
	lead.Status = req.Status
	lead.Priority = req.Priority
	lead.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateLead(ctx, lead); err != nil {
		return nil, &EntityError{Entity: "lead", ID: req.ID.String(), Op: "update", Err: err}
	}
	s.publish(TableLeads, lead.ID.String(), OpUpdate, lead)
	return lead, nil
}

func (s *service) DeleteLead(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteLead(ctx, id); err != nil {
		return &EntityError{Entity: "lead", ID: id.String(), Op: "delete", Err: err}
	}
	s.publish(TableLeads, id.String(), OpDelete, nil)
	return nil
}

func (s *service) ListLeads(ctx context.Context) ([]*Lead, error) {
	return s.repo.ListLeads(ctx)
}

// Product operations

func (s *service) UpsertProduct(ctx context.Context, req UpsertProductRequest) (*Product, error) {
	now := time.Now().UTC()
	var product *Product
	op := OpUpdate
	if req.ID == nil {
		op = OpInsert
		product = &Product{ID: uuid.New(), Rating: 0, CreatedAt: now}
	} else {
		existing, err := s.repo.GetProduct(ctx, *req.ID)
		if err != nil {
			return nil, &EntityError{Entity: "product", ID: req.ID.String(), Op: "update", Err: err}
		}
		product = existing
	}
	product.Name = req.Name
	product.Description = req.Description
	product.Category = req.Category
	product.PriceCents = req.PriceCents
	product.OriginalPriceCents = req.OriginalPriceCents
	product.StockQuantity = req.StockQuantity
	product.ImageURL = req.ImageURL
	if req.Rating > 0 {
		product.Rating = req.Rating
	}
	product.IsActive = req.IsActive
	product.UpdatedAt = now
	if err := s.repo.SaveProduct(ctx, product); err != nil {
		return nil, &EntityError{Entity: "product", ID: product.ID.String(), Op: "save", Err: err}
	}
	s.publish(TableProducts, product.ID.String(), op, product)
	return product, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return &EntityError{Entity: "product", ID: id.String(), Op: "delete", Err: err}
	}
	s.publish(TableProducts, id.String(), OpDelete, nil)
	return nil
}

func (s *service) ListProducts(ctx context.Context, activeOnly bool) ([]*Product, error) {
	return s.repo.ListProducts(ctx, activeOnly)
}

// Announcement operations

func validAnnouncementStatus(status string) bool {
	switch AnnouncementStatus(status) {
	case AnnouncementStatusDraft, AnnouncementStatusPublished, AnnouncementStatusExpired:
		return true
	}
	return false
}

func (s *service) UpsertAnnouncement(ctx context.Context, req UpsertAnnouncementRequest) (*Announcement, error) {
	if !validAnnouncementStatus(req.Status) {
		return nil, fmt.Errorf("announcement status %q: %w", req.Status, ErrInvalidStatus)
	}
	now := time.Now().UTC()
	var a *Announcement
	op := OpUpdate
	if req.ID == nil {
		op = OpInsert
		a = &Announcement{ID: uuid.New(), CreatedAt: now}
	} else {
		existing, err := s.repo.GetAnnouncement(ctx, *req.ID)
		if err != nil {
			return nil, &EntityError{Entity: "announcement", ID: req.ID.String(), Op: "update", Err: err}
		}
		a = existing
	}
	a.Title = req.Title
	a.Content = req.Content
	a.Type = req.Type
	a.Priority = req.Priority
	a.Status = req.Status
	a.TargetAudience = req.TargetAudience
	a.ExpiresAt = req.ExpiresAt
	a.UpdatedAt = now
	if err := s.repo.SaveAnnouncement(ctx, a); err != nil {
		return nil, &EntityError{Entity: "announcement", ID: a.ID.String(), Op: "save", Err: err}
	}
	s.publish(TableAnnouncements, a.ID.String(), op, a)
	return a, nil
}

func (s *service) DeleteAnnouncement(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteAnnouncement(ctx, id); err != nil {
		return &EntityError{Entity: "announcement", ID: id.String(), Op: "delete", Err: err}
	}
	s.publish(TableAnnouncements, id.String(), OpDelete, nil)
	return nil
}

func (s *service) ListAnnouncements(ctx context.Context, publishedOnly bool) ([]*Announcement, error) {
	return s.repo.ListAnnouncements(ctx, publishedOnly)
}

// DJ tape operations

func validTapeStatus(status string) bool {
	switch TapeStatus(status) {
	case TapeStatusActive, TapeStatusFeatured, TapeStatusArchived:
		return true
	}
	return false
}

func (s *service) UpsertTape(ctx context.Context, req UpsertTapeRequest) (*DJTape, error) {
	if !validTapeStatus(req.Status) {
		return nil, fmt.Errorf("tape status %q: %w", req.Status, ErrInvalidStatus)
	}
	now := time.Now().UTC()
	var tape *DJTape
	op := OpUpdate
	if req.ID == nil {
		op = OpInsert
		tape = &DJTape{ID: uuid.New(), CreatedAt: now}
	} else {
		existing, err := s.repo.GetTape(ctx, *req.ID)
		if err != nil {
			return nil, &EntityError{Entity: "tape", ID: req.ID.String(), Op: "update", Err: err}
		}
		tape = existing
	}
	tape.Title = req.Title
	tape.ArtistName = req.ArtistName
	tape.Description = req.Description
	tape.AudioURL = req.AudioURL
	tape.CoverImage = req.CoverImage
	tape.Duration = req.Duration
	tape.Genre = req.Genre
	tape.Tags = SplitTags(req.Tags)
	tape.Status = req.Status
	tape.UpdatedAt = now
	if err := s.repo.SaveTape(ctx, tape); err != nil {
		return nil, &EntityError{Entity: "tape", ID: tape.ID.String(), Op: "save", Err: err}
	}
	s.publish(TableDJTapes, tape.ID.String(), op, tape)
	return tape, nil
}

func (s *service) DeleteTape(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteTape(ctx, id); err != nil {
		return &EntityError{Entity: "tape", ID: id.String(), Op: "delete", Err: err}
	}
	s.publish(TableDJTapes, id.String(), OpDelete, nil)
	return nil
}

func (s *service) ListTapes(ctx context.Context, includeArchived bool) ([]*DJTape, error) {
	return s.repo.ListTapes(ctx, includeArchived)
}

func (s *service) RecordTapePlay(ctx context.Context, id uuid.UUID) (int64, error) {
	count, err := s.repo.IncrementTapePlays(ctx, id)
	if err != nil {
		return 0, &EntityError{Entity: "tape", ID: id.String(), Op: "play", Err: err}
	}
	if tape, err := s.repo.GetTape(ctx, id); err == nil {
		s.publish(TableDJTapes, id.String(), OpUpdate, tape)
	}
	return count, nil
}

// Blog post operations

func (s *service) UpsertPost(ctx context.Context, req UpsertPostRequest) (*BlogPost, error) {
	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = Slugify(req.Title)
	}
	if existing, err := s.repo.GetPostBySlug(ctx, slug); err == nil {
		if req.ID == nil || existing.ID != *req.ID {
			return nil, fmt.Errorf("slug %q: %w", slug, ErrDuplicateSlug)
		}
	}
	now := time.Now().UTC()
	var post *BlogPost
	op := OpUpdate
	if req.ID == nil {
		op = OpInsert
		post = &BlogPost{ID: uuid.New(), CreatedAt: now}
	} else {
		existing, err := s.repo.GetPost(ctx, *req.ID)
		if err != nil {
			return nil, &EntityError{Entity: "post", ID: req.ID.String(), Op: "update", Err: err}
		}
		post = existing
	}
	wasPublished := post.Published
	post.Title = req.Title
	post.Slug = slug
	post.Excerpt = req.Excerpt
	post.Body = req.Body
	post.CoverImage = req.CoverImage
	post.Tags = req.Tags
	post.Published = req.Published
	if req.Published && !wasPublished {
		post.PublishedAt = &now
	}
	if !req.Published {
		post.PublishedAt = nil
	}
	post.UpdatedAt = now
	if err := s.repo.SavePost(ctx, post); err != nil {
		return nil, &EntityError{Entity: "post", ID: post.ID.String(), Op: "save", Err: err}
	}
	s.publish(TableBlogPosts, post.ID.String(), op, post)
	return post, nil
}

func (s *service) GetPostBySlug(ctx context.Context, slug string) (*BlogPost, error) {
	return s.repo.GetPostBySlug(ctx, slug)
}

func (s *service) DeletePost(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeletePost(ctx, id); err != nil {
		return &EntityError{Entity: "post", ID: id.String(), Op: "delete", Err: err}
	}
	s.publish(TableBlogPosts, id.String(), OpDelete, nil)
	return nil
}

func (s *service) ListPosts(ctx context.Context, publishedOnly bool) ([]*BlogPost, error) {
	return s.repo.ListPosts(ctx, publishedOnly)
}

// Order operations

func (s *service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	now := time.Now().UTC()
	var total int64
	for _, item := range req.Items {
		total += item.PriceCents * int64(item.Quantity)
	}
	order := &Order{
		ID:            uuid.New(),
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Items:         req.Items,
		TotalCents:    total,
		Status:        string(OrderStatusPending),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, &EntityError{Entity: "order", ID: order.ID.String(), Op: "create", Err: err}
	}
	s.publish(TableOrders, order.ID.String(), OpInsert, order)
	return order, nil
}

func (s *service) ListOrders(ctx context.Context) ([]*Order, error) {
	return s.repo.ListOrders(ctx)
}

// Chat operations

func (s *service) AppendMessage(ctx context.Context, req AppendMessageRequest) (*ChatMessage, error) {
	if req.SessionID == "" {
		return nil, errors.New("session id is required")
	}
	if req.Direction != MessageDirectionInbound && req.Direction != MessageDirectionOutbound {
		return nil, fmt.Errorf("message direction %q: %w", req.Direction, ErrInvalidStatus)
	}
	now := time.Now().UTC()

	session, err := s.repo.GetSession(ctx, req.SessionID)
	if errors.Is(err, ErrSessionNotFound) {
		session = &ChatSession{
			ID:          uuid.New(),
			SessionID:   req.SessionID,
			VisitorInfo: req.VisitorInfo,
			Status:      string(ChatSessionActive),
			CreatedAt:   now,
		}
	} else if err != nil {
		return nil, &EntityError{Entity: "session", ID: req.SessionID, Op: "get", Err: err}
	}
	session.LastActivity = now
	session.MessageCount++
	if err := s.repo.SaveSession(ctx, session); err != nil {
		return nil, &EntityError{Entity: "session", ID: req.SessionID, Op: "save", Err: err}
	}

	msg := &ChatMessage{
		ID:        uuid.New(),
		SessionID: req.SessionID,
		Direction: req.Direction,
		Message:   req.Message,
		Metadata:  req.Metadata,
		CreatedAt: now,
	}
	if err := s.repo.CreateMessage(ctx, msg); err != nil {
		return nil, &EntityError{Entity: "message", ID: msg.ID.String(), Op: "create", Err: err}
	}
	s.publish(TableChatSessions, req.SessionID, OpUpdate, session)
	s.publish(TableChatMessages, req.SessionID, OpInsert, msg)
	return msg, nil
}

func (s *service) ListSessions(ctx context.Context, filters SessionFilters) ([]*ChatSession, error) {
	return s.repo.ListSessions(ctx, filters)
}

func (s *service) SessionTranscript(ctx context.Context, sessionID string) ([]*ChatMessage, error) {
	if _, err := s.repo.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.repo.ListMessages(ctx, sessionID)
}

func validSessionStatus(status ChatSessionStatus) bool {
	switch status {
	case ChatSessionActive, ChatSessionPending, ChatSessionResolved, ChatSessionClosed:
		return true
	}
	return false
}

func (s *service) UpdateSessionStatus(ctx context.Context, sessionID string, status ChatSessionStatus) (*ChatSession, error) {
	if !validSessionStatus(status) {
		return nil, fmt.Errorf("session status %q: %w", status, ErrInvalidStatus)
	}
	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.Status = string(status)
	session.LastActivity = time.Now().UTC()
	if err := s.repo.SaveSession(ctx, session); err != nil {
		return nil, &EntityError{Entity: "session", ID: sessionID, Op: "save", Err: err}
	}
	s.publish(TableChatSessions, sessionID, OpUpdate, session)
	return session, nil
}

func (s *service) DeleteSession(ctx context.Context, sessionID string) error {
	if err := s.repo.DeleteSession(ctx, sessionID); err != nil {
		return &EntityError{Entity: "session", ID: sessionID, Op: "delete", Err: err}
	}
	s.publish(TableChatSessions, sessionID, OpDelete, nil)
	return nil
}

// Dashboard

const lowStockThreshold = 10

func (s *service) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	today := time.Now().UTC().Truncate(24 * time.Hour)

	activeChats, err := s.repo.CountSessionsByStatus(ctx, string(ChatSessionActive))
	if err != nil {
		return nil, fmt.Errorf("count active chats: %w", err)
	}
	newLeads, err := s.repo.CountLeadsSince(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("count new leads: %w", err)
	}
	orders, err := s.repo.OrdersSince(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("list today's orders: %w", err)
	}
	var revenue int64
	for _, o := range orders {
		revenue += o.TotalCents
	}
	lowStock, err := s.repo.CountLowStock(ctx, lowStockThreshold)
	if err != nil {
		return nil, fmt.Errorf("count low stock: %w", err)
	}

	return &DashboardStats{
		ActiveChats:       activeChats,
		NewLeadsToday:     newLeads,
		OrdersToday:       len(orders),
		RevenueTodayCents: revenue,
		LowStockProducts:  lowStock,
	}, nil
}

// Slugify lowercases a title and collapses runs of non-alphanumerics to
// single hyphens.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
