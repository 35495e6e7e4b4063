package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth"
	"github.com/go-chi/render"

	"github.com/soundzyworld/site-backend/pkg/chatbot"
	"github.com/soundzyworld/site-backend/pkg/sitecontent"
	"github.com/soundzyworld/site-backend/pkg/sitecontent/feed"
)

// Server assembles the HTTP surface: public routes, JWT-guarded admin
// routes, and the change feed endpoints.
type Server struct {
	service     sitecontent.Service
	hub         *feed.Hub
	chat        *chatbot.Service
	store       sitecontent.BlobStore
	tokenAuth   *jwtauth.JWTAuth
	environment string
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithChat wires the chat assistant into POST /api/v1/chat.
func WithChat(chat *chatbot.Service) ServerOption {
	return func(s *Server) { s.chat = chat }
}

// WithBlobStore wires media URL endpoints to the given store.
func WithBlobStore(store sitecontent.BlobStore) ServerOption {
	return func(s *Server) { s.store = store }
}

// WithJWTSecret enables admin auth with an HS256 token check. Without it
// the admin routes are open, which is only acceptable in development.
func WithJWTSecret(secret string) ServerOption {
	return func(s *Server) {
		if secret != "" {
			s.tokenAuth = jwtauth.New("HS256", []byte(secret), nil)
		}
	}
}

// WithEnvironment sets the runtime environment (controls CORS).
func WithEnvironment(env string) ServerOption {
	return func(s *Server) { s.environment = env }
}

// NewServer creates the HTTP server wrapper
func NewServer(service sitecontent.Service, hub *feed.Hub, opts ...ServerOption) *Server {
	s := &Server{
		service:     service,
		hub:         hub,
		environment: "development",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TokenAuth exposes the JWT context for issuing admin tokens (tooling,
// tests). Nil when auth is disabled.
func (s *Server) TokenAuth() *jwtauth.JWTAuth {
	return s.tokenAuth
}

// Routes sets up the HTTP routes
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS for development
	if s.environment == "development" {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Access-Control-Allow-Origin", "*")
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

				if r.Method == "OPTIONS" {
					w.WriteHeader(http.StatusOK)
					return
				}

				next.ServeHTTP(w, r)
			})
		})
	}

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/", NewPublicHandler(s.service, s.chat).Routes())

		r.Group(func(r chi.Router) {
			if s.tokenAuth != nil {
				r.Use(jwtauth.Verifier(s.tokenAuth))
				r.Use(jwtauth.Authenticator)
			}
			r.Mount("/admin", NewAdminHandler(s.service, s.store).Routes())
		})

		// Change feed: realtime notifications for pages and the console.
		if s.hub != nil {
			r.Get("/feed/ws", s.hub.ServeWebSocket)
			r.Get("/feed/sse", s.hub.ServeSSE)
		}
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{
		"status":      "healthy",
		"environment": s.environment,
	})
}
