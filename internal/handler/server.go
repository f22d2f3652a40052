// Package handler implements the HTTP handlers for the Study Time Tracker
// API. All handlers are methods on Server; they are split into
// domain-specific files (health.go, session.go, stats.go) but share the same
// Server struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dnwood/study-time-tracker/internal/domain"
)

// SessionServicer defines the business operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the file store or service layer.
type SessionServicer interface {
	Create(ctx context.Context, input domain.Session) (domain.Session, error)
	GetByID(ctx context.Context, id string) (domain.Session, error)
	ListSortedByDate(ctx context.Context) []domain.Session
	ListByDateRange(ctx context.Context, from, to time.Time) []domain.Session
	ListBySubject(ctx context.Context, query string) []domain.Session
	Update(ctx context.Context, id string, patch domain.SessionPatch) (domain.Session, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) domain.Stats
	StatsByDateRange(ctx context.Context, from, to time.Time) domain.Stats
}

// Server holds the dependencies shared by all HTTP handlers.
type Server struct {
	sessions SessionServicer
	webDir   string
}

// NewServer constructs the Server with all its dependencies.
// webDir is the directory of static frontend assets served at "/";
// pass "" to disable static serving.
func NewServer(sessions SessionServicer, webDir string) *Server {
	return &Server{sessions: sessions, webDir: webDir}
}

// Routes returns the router for the full API surface.
// Mount it at "/" in main.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", s.ListSessions)
			r.Post("/", s.CreateSession)
			r.Get("/{id}", s.GetSession)
			r.Put("/{id}", s.UpdateSession)
			r.Delete("/{id}", s.DeleteSession)
		})
		r.Get("/stats", s.GetStats)
	})

	if s.webDir != "" {
		r.NotFound(staticHandler(s.webDir))
	}

	return r
}

// staticHandler serves the frontend assets through chi's NotFound hook so
// API routes always win. Requests for "/" get index.html via
// http.FileServer's directory default.
func staticHandler(dir string) http.HandlerFunc {
	fs := http.FileServer(http.Dir(dir))
	return func(w http.ResponseWriter, r *http.Request) {
		fs.ServeHTTP(w, r)
	}
}
