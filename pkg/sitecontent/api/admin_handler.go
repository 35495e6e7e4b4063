package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/soundzyworld/site-backend/pkg/sitecontent"
)

// AdminHandler serves the console routes: collection editing, entity CRUD,
// chat session management, dashboard stats and media URLs. The server
// mounts it behind JWT auth.
type AdminHandler struct {
	service sitecontent.Service
	store   sitecontent.BlobStore
}

// NewAdminHandler creates an admin handler. The blob store may be nil when
// media uploads are not configured.
func NewAdminHandler(service sitecontent.Service, store sitecontent.BlobStore) *AdminHandler {
	return &AdminHandler{service: service, store: store}
}

// Routes returns the admin routes
func (h *AdminHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Put("/content/{key}", h.ReplaceCollection)

	r.Route("/leads", func(r chi.Router) {
		r.Get("/", h.ListLeads)
		r.Get("/{id}", h.GetLead)
		r.Put("/{id}", h.UpdateLead)
		r.Delete("/{id}", h.DeleteLead)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Post("/", h.UpsertProduct)
		r.Delete("/{id}", h.DeleteProduct)
	})

	r.Route("/announcements", func(r chi.Router) {
		r.Get("/", h.ListAnnouncements)
		r.Post("/", h.UpsertAnnouncement)
		r.Delete("/{id}", h.DeleteAnnouncement)
	})

	r.Route("/tapes", func(r chi.Router) {
		r.Get("/", h.ListTapes)
		r.Post("/", h.UpsertTape)
		r.Delete("/{id}", h.DeleteTape)
	})

	r.Route("/posts", func(r chi.Router) {
		r.Get("/", h.ListPosts)
		r.Post("/", h.UpsertPost)
		r.Delete("/{id}", h.DeletePost)
	})

	r.Get("/orders", h.ListOrders)

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", h.ListSessions)
		r.Get("/{sessionID}/messages", h.SessionTranscript)
		r.Put("/{sessionID}/status", h.UpdateSessionStatus)
		r.Delete("/{sessionID}", h.DeleteSession)
	})

	r.Get("/stats", h.GetStats)

	r.Route("/media", func(r chi.Router) {
		r.Get("/upload-url", h.GetUploadURL)
		r.Get("/download-url", h.GetDownloadURL)
		r.Get("/preview-url", h.GetPreviewURL)
	})

	return r
}

// ReplaceCollectionRequest is the request body for replacing a collection
type ReplaceCollectionRequest struct {
	Description string                    `json:"description,omitempty"`
	Items       []sitecontent.ContentItem `json:"items"`
}

// ReplaceCollection stores a full new item sequence under the key. Every
// save replaces the whole collection and notifies feed subscribers.
func (h *AdminHandler) ReplaceCollection(w http.ResponseWriter, r *http.Request) {
	var req ReplaceCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, r, err.Error())
		return
	}

	col, err := h.service.ReplaceCollection(r.Context(), sitecontent.ReplaceCollectionRequest{
		Key:         chi.URLParam(r, "key"),
		Description: req.Description,
		Items:       req.Items,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("Collection replaced", "key", col.Key, "items", len(col.Items))
	render.JSON(w, r, col)
}

// Lead management

func (h *AdminHandler) ListLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := h.service.ListLeads(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if leads == nil {
		leads = []*sitecontent.Lead{}
	}
	render.JSON(w, r, leads)
}

func (h *AdminHandler) GetLead(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, r, "invalid lead id")
		return
	}

	lead, err := h.service.GetLead(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, lead)
}

// UpdateLeadRequest is the request body for editing a lead
type UpdateLeadRequest struct {
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	ServiceType string     `json:"service_type"`
	EventDate   *time.Time `json:"event_date,omitempty"`
	BudgetRange string     `json:"budget_range,omitempty"`
	Message     string     `json:"message,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
}

func (h *AdminHandler) UpdateLead(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, r, "invalid lead id")
		return
	}

	var req UpdateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, r, err.Error())
		return
	}

	lead, err := h.service.UpdateLead(r.Context(), sitecontent.UpdateLeadRequest{
		ID:          id,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		ServiceType: req.ServiceType,
		EventDate:   req.EventDate,
		BudgetRange: req.BudgetRange,
		Message:     req.Message,
		Status:      req.Status,
		Priority:    req.Priority,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, lead)
}

func (h *AdminHandler) DeleteLead(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.service.DeleteLead)
}

// Product management

func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context(), false)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if products == nil {
		products = []*sitecontent.Product{}
	}
	render.JSON(w, r, products)
}

// UpsertProductRequest creates a product when id is absent, updates otherwise
type UpsertProductRequest struct {
	ID                 *uuid.UUID `json:"id,omitempty"`
	Name               string     `json:"name"`
	Description        string     `json:"description,omitempty"`
	Category           string     `json:"category"`
	PriceCents         int64      `json:"price_cents"`
	OriginalPriceCents int64      `json:"original_price_cents,omitempty"`
	StockQuantity      int        `json:"stock_quantity"`
	ImageURL           string     `json:"image_url,omitempty"`
	Rating             float64    `json:"rating,omitempty"`
	IsActive           bool       `json:"is_active"`
}

func (h *AdminHandler) UpsertProduct(w http.ResponseWriter, r *http.Request) {
	var req UpsertProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, r, err.Error())
		return
	}
	if req.Name == "" {
		badRequest(w, r, "name is required")
		return
	}

	product, err := h.service.UpsertProduct(r.Context(), sitecontent.UpsertProductRequest{
		ID:                 req.ID,
		Name:               req.Name,
		Description:        req.Description,
		Category:           req.Category,
		PriceCents:         req.PriceCents,
		OriginalPriceCents: req.OriginalPriceCents,
		StockQuantity:      req.StockQuantity,
		ImageURL:           req.ImageURL,
		Rating:             req.Rating,
		IsActive:           req.IsActive,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	if req.ID == nil {
		render.Status(r, http.StatusCreated)
	}
	render.JSON(w, r, product)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.service.DeleteProduct)
}

// Announcement management

func (h *AdminHandler) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	announcements, err := h.service.ListAnnouncements(r.Context(), false)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if announcements == nil {
		announcements = []*sitecontent.Announcement{}
	}
	render.JSON(w, r, announcements)
}

// UpsertAnnouncementRequest creates an announcement when id is absent, updates otherwise
type UpsertAnnouncementRequest struct {
	ID             *uuid.UUID `json:"id,omitempty"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	Type           string     `json:"type"`
	Priority       string     `json:"priority"`
	Status         string     `json:"status"`
	TargetAudience string     `json:"target_audience"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
}

func (h *AdminHandler) UpsertAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req UpsertAnnouncementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, r, err.Error())
		return
	}
	if req.Title == "" {
		badRequest(w, r, "title is required")
		return
	}

	a, err := h.service.UpsertAnnouncement(r.Context(), sitecontent.UpsertAnnouncementRequest{
		ID:             req.ID,
		Title:          req.Title,
		Content:        req.Content,
		Type:           req.Type,
		Priority:       req.Priority,
		Status:         req.Status,
		TargetAudience: req.TargetAudience,
		ExpiresAt:      req.ExpiresAt,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	if req.ID == nil {
		render.Status(r, http.StatusCreated)
	}
	render.JSON(w, r, a)
}

func (h *AdminHandler) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.service.DeleteAnnouncement)
}

// Tape management

func (h *AdminHandler) ListTapes(w http.ResponseWriter, r *http.Request) {
	tapes, err := h.service.ListTapes(r.Context(), true)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if tapes == nil {
		tapes = []*sitecontent.DJTape{}
	}
	render.JSON(w, r, tapes)
}

// UpsertTapeRequest creates a tape when id is absent, updates otherwise.
// Tags is the raw comma-separated editor input.
type UpsertTapeRequest struct {
	ID          *uuid.UUID `json:"id,omitempty"`
	Title       string     `json:"title"`
	ArtistName  string     `json:"artist_name"`
	Description string     `json:"description,omitempty"`
	AudioURL    string     `json:"audio_url,omitempty"`
	CoverImage  string     `json:"cover_image,omitempty"`
	Duration    int        `json:"duration,omitempty"`
	Genre       string     `json:"genre,omitempty"`
	Tags        string     `json:"tags,omitempty"`
	Status      string     `json:"status"`
}

func (h *AdminHandler) UpsertTape(w http.ResponseWriter, r *http.Request) {
	var req UpsertTapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, r, err.Error())
		return
	}
	if req.Title == "" {
		badRequest(w, r, "title is required")
		return
	}

	tape, err := h.service.UpsertTape(r.Context(), sitecontent.UpsertTapeRequest{
		ID:          req.ID,
		Title:       req.Title,
		ArtistName:  req.ArtistName,
		Description: req.Description,
		AudioURL:    req.AudioURL,
		CoverImage:  req.CoverImage,
		Duration:    req.Duration,
		Genre:       req.Genre,
		Tags:        req.Tags,
		Status:      req.Status,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	if req.ID == nil {
		render.Status(r, http.StatusCreated)
	}
	render.JSON(w, r, tape)
}

func (h *AdminHandler) DeleteTape(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.service.DeleteTape)
}

// Blog post management

func (h *AdminHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListPosts(r.Context(), false)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if posts == nil {
		posts = []*sitecontent.BlogPost{}
	}
	render.JSON(w, r, posts)
}

// UpsertPostRequest creates a post when id is absent, updates otherwise
type UpsertPostRequest struct {
	ID         *uuid.UUID `json:"id,omitempty"`
	Title      string     `json:"title"`
	Slug       string     `json:"slug,omitempty"`
	Excerpt    string     `json:"excerpt,omitempty"`
	Body       string     `json:"body"`
	CoverImage string     `json:"cover_image,omitempty"`
	Tags       []string   `json:"tags,omitempty"`
	Published  bool       `json:"published"`
}

func (h *AdminHandler) UpsertPost(w http.ResponseWriter, r *http.Request) {
	var req UpsertPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, r, err.Error())
		return
	}
	if req.Title == "" {
		badRequest(w, r, "title is required")
		return
	}

	post, err := h.service.UpsertPost(r.Context(), sitecontent.UpsertPostRequest{
		ID:         req.ID,
		Title:      req.Title,
		Slug:       req.Slug,
		Excerpt:    req.Excerpt,
		Body:       req.Body,
		CoverImage: req.CoverImage,
		Tags:       req.Tags,
		Published:  req.Published,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	if req.ID == nil {
		render.Status(r, http.StatusCreated)
	}
	render.JSON(w, r, post)
}

func (h *AdminHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.service.DeletePost)
}

// Order management

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if orders == nil {
		orders = []*sitecontent.Order{}
	}
	render.JSON(w, r, orders)
}

// Chat session management

func (h *AdminHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := sitecontent.SessionFilters{
		Search: q.Get("search"),
	}
	if status := q.Get("status"); status != "" {
		filters.Status = &status
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			badRequest(w, r, "invalid limit")
			return
		}
		filters.Limit = &limit
	}
	if raw := q.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			badRequest(w, r, "invalid offset")
			return
		}
		filters.Offset = &offset
	}

	sessions, err := h.service.ListSessions(r.Context(), filters)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if sessions == nil {
		sessions = []*sitecontent.ChatSession{}
	}
	render.JSON(w, r, sessions)
}

func (h *AdminHandler) SessionTranscript(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.service.SessionTranscript(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if msgs == nil {
		msgs = []*sitecontent.ChatMessage{}
	}
	render.JSON(w, r, msgs)
}

// UpdateSessionStatusRequest is the request body for moving a session
// through its lifecycle
type UpdateSessionStatusRequest struct {
	Status string `json:"status"`
}

func (h *AdminHandler) UpdateSessionStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateSessionStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, r, err.Error())
		return
	}

	session, err := h.service.UpdateSessionStatus(r.Context(),
		chi.URLParam(r, "sessionID"), sitecontent.ChatSessionStatus(req.Status))
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, session)
}

func (h *AdminHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteSession(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		writeError(w, r, err)
		return
	}
	render.NoContent(w, r)
}

// Dashboard

func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetDashboardStats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, stats)
}

// Media URLs

func (h *AdminHandler) GetUploadURL(w http.ResponseWriter, r *http.Request) {
	h.mediaURL(w, r, func(key string) (string, error) {
		return h.store.GetUploadURL(r.Context(), key)
	})
}

func (h *AdminHandler) GetDownloadURL(w http.ResponseWriter, r *http.Request) {
	filename := r.URL.Query().Get("filename")
	h.mediaURL(w, r, func(key string) (string, error) {
		return h.store.GetDownloadURL(r.Context(), key, filename)
	})
}

func (h *AdminHandler) GetPreviewURL(w http.ResponseWriter, r *http.Request) {
	h.mediaURL(w, r, func(key string) (string, error) {
		return h.store.GetPreviewURL(r.Context(), key)
	})
}

func (h *AdminHandler) mediaURL(w http.ResponseWriter, r *http.Request, fn func(key string) (string, error)) {
	if h.store == nil {
		render.Status(r, http.StatusNotImplemented)
		render.JSON(w, r, ErrorResponse{Error: "media storage is not configured"})
		return
	}

	key := r.URL.Query().Get("key")
	if key == "" {
		badRequest(w, r, "key query parameter is required")
		return
	}

	url, err := fn(key)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]string{"url": url})
}

// deleteByID parses the id URL param and runs the delete op.
func (h *AdminHandler) deleteByID(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id uuid.UUID) error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, r, "invalid id")
		return
	}
	if err := fn(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	render.NoContent(w, r)
}
