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

// TaskboardRouter wires the taskboard API surface
type TaskboardRouter struct {
	config      *config.Config
	auth        *handlers.AuthHandler
	boards      *handlers.BoardHandler
	memberships *handlers.MembershipHandler
	tasks       *handlers.TaskHandler
	logger      *zap.Logger
}

// NewTaskboardRouter creates a new taskboard router instance
func NewTaskboardRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	boards *handlers.BoardHandler,
	memberships *handlers.MembershipHandler,
	tasks *handlers.TaskHandler,
	logger *zap.Logger,
) *TaskboardRouter {
	return &TaskboardRouter{
		config:      cfg,
		auth:        authHandler,
		boards:      boards,
		memberships: memberships,
		tasks:       tasks,
		logger:      logger,
	}
}

// Setup configures all routes and middleware
func (rt *TaskboardRouter) Setup() http.Handler {
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

		r.Route("/boards", func(r chi.Router) {
			r.Post("/", rt.boards.CreateBoard)
			r.Get("/", rt.boards.ListBoards)
			r.Get("/{boardID}", rt.boards.GetBoard)
			r.Put("/{boardID}", rt.boards.RenameBoard)
			r.Delete("/{boardID}", rt.boards.DeleteBoard)

			r.Get("/{boardID}/members", rt.memberships.ListMembers)
			r.Post("/{boardID}/members", rt.memberships.Invite)
			r.Delete("/{boardID}/members/{userID}", rt.memberships.Revoke)
			r.Get("/{boardID}/invite-candidates", rt.memberships.ListInviteCandidates)

			r.Post("/{boardID}/tasks", rt.tasks.CreateTask)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/{taskID}", rt.tasks.GetTask)
			r.Put("/{taskID}", rt.tasks.UpdateTask)
			r.Delete("/{taskID}", rt.tasks.DeleteTask)
		})
	})

	return router
}
