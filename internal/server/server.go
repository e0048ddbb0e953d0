// Package server is the HTTP backend the planner client talks to. It keeps
// users, vendors, inquiries, plans and chat history in sqlite and answers
// chat turns through an assistant.Planner.
package server

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jask/wedplan/internal/assistant"
	"github.com/jask/wedplan/internal/database"
	"github.com/jask/wedplan/internal/database/repository"
)

// Listing limits.
const (
	maxUsers           = 50
	maxVendors         = 20
	maxRecommendations = 10
	maxInquiries       = 50
	maxChatSessions    = 10
	maxPlans           = 10
)

// Options tunes a Server. Zero values select defaults.
type Options struct {
	AllowedOrigin string
	Now           func() time.Time
	NewID         func() string
}

type Server struct {
	router    *chi.Mux
	users     *repository.UserRepo
	vendors   *repository.VendorRepo
	inquiries *repository.InquiryRepo
	chats     *repository.ChatRepo
	plans     *repository.PlanRepo
	planner   assistant.Planner
	validate  *validator.Validate
	now       func() time.Time
	newID     func() string
	log       *slog.Logger
}

func New(db *sql.DB, planner assistant.Planner, opts Options, logger *slog.Logger) *Server {
	if opts.AllowedOrigin == "" {
		opts.AllowedOrigin = "*"
	}
	if opts.Now == nil {
		opts.Now = database.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	s := &Server{
		router:    chi.NewRouter(),
		users:     repository.NewUserRepo(db),
		vendors:   repository.NewVendorRepo(db),
		inquiries: repository.NewInquiryRepo(db),
		chats:     repository.NewChatRepo(db),
		plans:     repository.NewPlanRepo(db),
		planner:   planner,
		validate:  newValidator(),
		now:       opts.Now,
		newID:     opts.NewID,
		log:       logger.With("component", "server"),
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.requestLogger)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{opts.AllowedOrigin},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Requested-With"},
		MaxAge:         300,
	}))
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Post("/users", s.handleCreateUser)
		r.Get("/users", s.handleListUsers)
		r.Get("/users/{userID}", s.handleGetUser)

		r.Post("/vendors", s.handleCreateVendor)
		r.Get("/vendors", s.handleListVendors)
		r.Get("/vendors/{vendorID}", s.handleGetVendor)

		r.Post("/chat", s.handleChat)
		r.Get("/chat-sessions/{userID}", s.handleListChatSessions)
		r.Get("/chat-sessions/{userID}/{sessionID}", s.handleGetChatSession)

		r.Get("/recommendations/{userID}", s.handleRecommendations)

		r.Post("/wedding-plans", s.handleCreatePlan)
		r.Get("/wedding-plans/{userID}", s.handleListPlans)

		r.Post("/inquiries", s.handleCreateInquiry)
		r.Get("/inquiries/user/{userID}", s.handleUserInquiries)
		r.Get("/inquiries/vendor/{vendorID}", s.handleVendorInquiries)

		r.Get("/stats", s.handleStats)
	})
}

func (s *Server) Router() http.Handler { return s.router }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.InfoContext(r.Context(), "request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("took", time.Since(start)),
			slog.String("request_id", middleware.GetReqID(r.Context())))
	})
}
