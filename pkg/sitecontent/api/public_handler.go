package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/soundzyworld/site-backend/pkg/chatbot"
	"github.com/soundzyworld/site-backend/pkg/sitecontent"
)

// PublicHandler serves the visitor-facing routes: content collections,
// the shop catalog, published announcements, tapes, blog posts, lead
// capture, orders and the chat endpoint.
type PublicHandler struct {
	service sitecontent.Service
	chat    *chatbot.Service
}

// NewPublicHandler creates a public handler. The chat service may be nil
// when no assistant is configured; POST /chat then returns the fallback.
func NewPublicHandler(service sitecontent.Service, chat *chatbot.Service) *PublicHandler {
	return &PublicHandler{service: service, chat: chat}
}

// Routes returns the public routes
func (h *PublicHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/content", h.ListCollections)
	r.Get("/content/{key}", h.GetCollection)
	r.Get("/products", h.ListProducts)
	r.Get("/announcements", h.ListAnnouncements)
	r.Get("/tapes", h.ListTapes)
	r.Post("/tapes/{id}/play", h.RecordTapePlay)
	r.Get("/posts", h.ListPosts)
	r.Get("/posts/{slug}", h.GetPost)
	r.Post("/leads", h.CreateLead)
	r.Post("/orders", h.CreateOrder)
	r.Post("/chat", h.Chat)

	return r
}

// GetCollection returns one content collection. Unknown keys come back as
// an empty collection rather than 404, matching how pages render before
// the editor has saved anything.
func (h *PublicHandler) GetCollection(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	col, err := h.service.GetCollection(r.Context(), key)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, col)
}

// ListCollections returns the collections named in the keys query param,
// in the requested order.
func (h *PublicHandler) ListCollections(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("keys")
	if raw == "" {
		badRequest(w, r, "keys query parameter is required")
		return
	}
	keys := strings.Split(raw, ",")

	cols, err := h.service.ListCollections(r.Context(), keys...)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, cols)
}

func (h *PublicHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context(), true)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if products == nil {
		products = []*sitecontent.Product{}
	}
	render.JSON(w, r, products)
}

func (h *PublicHandler) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	announcements, err := h.service.ListAnnouncements(r.Context(), true)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if announcements == nil {
		announcements = []*sitecontent.Announcement{}
	}
	render.JSON(w, r, announcements)
}

func (h *PublicHandler) ListTapes(w http.ResponseWriter, r *http.Request) {
	tapes, err := h.service.ListTapes(r.Context(), false)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if tapes == nil {
		tapes = []*sitecontent.DJTape{}
	}
	render.JSON(w, r, tapes)
}

// RecordTapePlay bumps a tape's play counter and returns the new count.
func (h *PublicHandler) RecordTapePlay(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, r, "invalid tape id")
		return
	}

	plays, err := h.service.RecordTapePlay(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]int64{"play_count": plays})
}

func (h *PublicHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListPosts(r.Context(), true)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if posts == nil {
		posts = []*sitecontent.BlogPost{}
	}
	render.JSON(w, r, posts)
}

func (h *PublicHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.service.GetPostBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !post.Published {
		writeError(w, r, sitecontent.ErrPostNotFound)
		return
	}
	render.JSON(w, r, post)
}

// CreateLeadRequest is the request body for the public lead form
type CreateLeadRequest struct {
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	ServiceType string     `json:"service_type"`
	EventDate   *time.Time `json:"event_date,omitempty"`
	BudgetRange string     `json:"budget_range,omitempty"`
	Message     string     `json:"message,omitempty"`
}

func (h *PublicHandler) CreateLead(w http.ResponseWriter, r *http.Request) {
	var req CreateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, r, err.Error())
		return
	}
	if req.Name == "" || req.Email == "" {
		badRequest(w, r, "name and email are required")
		return
	}

	lead, err := h.service.CreateLead(r.Context(), sitecontent.CreateLeadRequest{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		ServiceType: req.ServiceType,
		EventDate:   req.EventDate,
		BudgetRange: req.BudgetRange,
		Message:     req.Message,
		Source:      "website",
	})
	if err != nil {
		slog.Error("Failed to create lead", "error", err)
		writeError(w, r, err)
		return
	}

	slog.Info("Lead captured", "lead_id", lead.ID.String(), "service_type", lead.ServiceType)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, lead)
}

// CreateOrderRequest is the request body for recording a shop order
type CreateOrderRequest struct {
	CustomerName  string                  `json:"customer_name"`
	CustomerEmail string                  `json:"customer_email"`
	Items         []sitecontent.OrderItem `json:"items"`
}

func (h *PublicHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, r, err.Error())
		return
	}
	if len(req.Items) == 0 {
		badRequest(w, r, "order must have at least one item")
		return
	}

	order, err := h.service.CreateOrder(r.Context(), sitecontent.CreateOrderRequest{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Items:         req.Items,
	})
	if err != nil {
		slog.Error("Failed to create order", "error", err)
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, order)
}

// ChatRequest is the request body for the chat endpoint
type ChatRequest struct {
	Message     string                 `json:"message"`
	SessionID   string                 `json:"sessionId"`
	VisitorInfo map[string]interface{} `json:"visitorInfo,omitempty"`
}

// Chat runs one assistant turn. The endpoint never fails a well-formed
// request: generation problems come back as a 200 with the fallback reply.
func (h *PublicHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, r, err.Error())
		return
	}
	if req.Message == "" || req.SessionID == "" {
		badRequest(w, r, "message and sessionId are required")
		return
	}

	if h.chat == nil {
		render.JSON(w, r, &chatbot.Reply{
			Response:     chatbot.FallbackResponse,
			QuickReplies: chatbot.FallbackQuickReplies,
			Intent:       "error",
			Confidence:   0,
		})
		return
	}

	reply, err := h.chat.Handle(r.Context(), req.SessionID, req.Message, req.VisitorInfo)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, reply)
}
