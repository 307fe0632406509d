package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"snapboard-backend/infrastructure/config"
	"snapboard-backend/interfaces/http/rest/handlers"
	"snapboard-backend/interfaces/http/rest/middleware"
)

// SocialRouter wires the photo-sharing API surface
type SocialRouter struct {
	config        *config.Config
	auth          *handlers.AuthHandler
	feed          *handlers.FeedHandler
	posts         *handlers.PostHandler
	accounts      *handlers.AccountHandler
	relationships *handlers.RelationshipHandler
	logger        *zap.Logger
}

// NewSocialRouter creates a new social router instance
func NewSocialRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	feed *handlers.FeedHandler,
	posts *handlers.PostHandler,
	accounts *handlers.AccountHandler,
	relationships *handlers.RelationshipHandler,
	logger *zap.Logger,
) *SocialRouter {
	return &SocialRouter{
		config:        cfg,
		auth:          authHandler,
		feed:          feed,
		posts:         posts,
		accounts:      accounts,
		relationships: relationships,
		logger:        logger,
	}
}

// Setup configures all routes and middleware
func (rt *SocialRouter) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.config.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	router.Get("/health", healthCheck)
	router.Get("/ready", readinessCheck)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.config, rt.logger))

		r.Post("/auth/refresh", rt.auth.Refresh)

		r.Get("/me", rt.accounts.GetMe)
		r.Get("/feed", rt.feed.GetFeed)
		r.Get("/search", rt.accounts.Search)

		r.Route("/posts", func(r chi.Router) {
			r.Post("/", rt.posts.CreatePost)
			r.Get("/{postID}", rt.posts.GetPost)
			r.Post("/{postID}/comments", rt.posts.AddComment)
		})

		r.Route("/accounts", func(r chi.Router) {
			r.Get("/{accountID}", rt.accounts.GetProfile)
			r.Get("/{accountID}/followers", rt.accounts.GetFollowers)
			r.Get("/{accountID}/following", rt.accounts.GetFollowing)
			r.Post("/{accountID}/follow", rt.relationships.Follow)
			r.Delete("/{accountID}/follow", rt.relationships.Unfollow)
		})
	})

	return router
}

// healthCheck handles health check requests
func healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
