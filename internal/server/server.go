package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/kekirawacc/kccweb/internal/auth"
	"github.com/kekirawacc/kccweb/internal/handler"
	"github.com/kekirawacc/kccweb/internal/middleware"
	"github.com/kekirawacc/kccweb/internal/model"
	"github.com/kekirawacc/kccweb/internal/store"
	"github.com/kekirawacc/kccweb/internal/upload"
)

type Server struct {
	db           *sql.DB
	gate         *auth.Gate
	sessionStore *store.SessionStore
	authH        *handler.AuthHandler
	newsH        *handler.NewsHandler
	eventH       *handler.EventHandler
	clubH        *handler.ClubHandler
	alumniH      *handler.AlumniHandler
	staffH       *handler.StaffHandler
	saver        *upload.Saver
	rateLimiter  *middleware.RateLimiter
	logger       *slog.Logger
}

func New(db *sql.DB, uploadDir string, logger *slog.Logger) *Server {
	userStore := store.NewUserStore(db)
	sessionStore := store.NewSessionStore(db)
	newsStore := store.NewNewsStore(db)
	eventStore := store.NewEventStore(db)
	clubStore := store.NewClubStore(db)
	alumniStore := store.NewAlumniStore(db)
	staffStore := store.NewStaffStore(db)

	gate := auth.NewGate(sessionStore)
	saver := upload.NewSaver(uploadDir)

	return &Server{
		db:           db,
		gate:         gate,
		sessionStore: sessionStore,
		authH:        handler.NewAuthHandler(userStore, sessionStore, gate, logger.With("component", "auth")),
		newsH:        handler.NewNewsHandler(newsStore, saver, logger.With("component", "news")),
		eventH:       handler.NewEventHandler(eventStore, saver, logger.With("component", "event")),
		clubH:        handler.NewClubHandler(clubStore, saver, logger.With("component", "club")),
		alumniH:      handler.NewAlumniHandler(alumniStore, saver, logger.With("component", "alumni")),
		staffH:       handler.NewStaffHandler(staffStore, saver, logger.With("component", "staff")),
		saver:        saver,
		rateLimiter:  middleware.NewRateLimiter(),
		logger:       logger,
	}
}

// SessionStore exposes the session store for the cleanup task in main.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

// RateLimiter exposes the limiter for the cleanup task in main.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("GET /{$}", s.homeHandler)
	mux.HandleFunc("GET /login", s.authH.LoginPage)
	mux.HandleFunc("POST /login", s.rateLimitedHandler(s.authH.Login))
	mux.HandleFunc("POST /logout", s.authH.Logout)
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.saver.Dir()))))
	mux.HandleFunc("GET /health", s.healthHandler)

	// Admin routes, role-gated per section
	anyStaff := middleware.RequireRole(s.gate, model.RoleAdmin, model.RoleAuthor, model.RoleClubRep)
	adminOnly := middleware.RequireRole(s.gate, model.RoleAdmin)

	mux.Handle("GET /admin", anyStaff(http.HandlerFunc(s.adminHomeHandler)))

	newsMux := http.NewServeMux()
	newsMux.HandleFunc("GET /admin/news", s.newsH.List)
	newsMux.HandleFunc("POST /admin/news", s.newsH.Create)
	newsMux.HandleFunc("GET /admin/news/{id}", s.newsH.Get)
	newsMux.HandleFunc("POST /admin/news/{id}", s.newsH.Update)
	newsMux.HandleFunc("POST /admin/news/{id}/delete", s.newsH.Delete)
	mux.Handle("/admin/news", anyStaff(newsMux))
	mux.Handle("/admin/news/", anyStaff(newsMux))

	eventMux := http.NewServeMux()
	eventMux.HandleFunc("GET /admin/events", s.eventH.List)
	eventMux.HandleFunc("POST /admin/events", s.eventH.Create)
	eventMux.HandleFunc("GET /admin/events/{id}", s.eventH.Get)
	eventMux.HandleFunc("POST /admin/events/{id}", s.eventH.Update)
	eventMux.HandleFunc("POST /admin/events/{id}/delete", s.eventH.Delete)
	mux.Handle("/admin/events", anyStaff(eventMux))
	mux.Handle("/admin/events/", anyStaff(eventMux))

	adminMux := http.NewServeMux()
	adminMux.HandleFunc("GET /admin/clubs", s.clubH.List)
	adminMux.HandleFunc("POST /admin/clubs", s.clubH.Create)
	adminMux.HandleFunc("GET /admin/clubs/{id}", s.clubH.Get)
	adminMux.HandleFunc("POST /admin/clubs/{id}", s.clubH.Update)
	adminMux.HandleFunc("POST /admin/clubs/{id}/delete", s.clubH.Delete)
	adminMux.HandleFunc("GET /admin/alumni", s.alumniH.List)
	adminMux.HandleFunc("POST /admin/alumni", s.alumniH.Create)
	adminMux.HandleFunc("GET /admin/alumni/{id}", s.alumniH.Get)
	adminMux.HandleFunc("POST /admin/alumni/{id}", s.alumniH.Update)
	adminMux.HandleFunc("POST /admin/alumni/{id}/delete", s.alumniH.Delete)
	adminMux.HandleFunc("GET /admin/staff", s.staffH.List)
	adminMux.HandleFunc("POST /admin/staff", s.staffH.Create)
	adminMux.HandleFunc("GET /admin/staff/{id}", s.staffH.Get)
	adminMux.HandleFunc("POST /admin/staff/{id}", s.staffH.Update)
	adminMux.HandleFunc("POST /admin/staff/{id}/delete", s.staffH.Delete)
	mux.Handle("/admin/clubs", adminOnly(adminMux))
	mux.Handle("/admin/clubs/", adminOnly(adminMux))
	mux.Handle("/admin/alumni", adminOnly(adminMux))
	mux.Handle("/admin/alumni/", adminOnly(adminMux))
	mux.Handle("/admin/staff", adminOnly(adminMux))
	mux.Handle("/admin/staff/", adminOnly(adminMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

// homeHandler stands in for the public site. Page rendering lives elsewhere;
// this server only needs the path to exist as a redirect target.
func (s *Server) homeHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte("<!DOCTYPE html><html><body><h1>Kekirawa Central College</h1></body></html>"))
}

// adminHomeHandler returns the signed-in user's profile.
func (s *Server) adminHomeHandler(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(h).ServeHTTP(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
