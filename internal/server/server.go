package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/mtcnamibia/careers/internal/auth"
	"github.com/mtcnamibia/careers/internal/email"
	"github.com/mtcnamibia/careers/internal/feed"
	"github.com/mtcnamibia/careers/internal/handler"
	"github.com/mtcnamibia/careers/internal/middleware"
	"github.com/mtcnamibia/careers/internal/resume"
	"github.com/mtcnamibia/careers/internal/store"
)

type Server struct {
	db             *sql.DB
	hub            *feed.Hub
	sessions       *auth.Manager
	authH          *handler.AuthHandler
	jobH           *handler.JobHandler
	applicationH   *handler.ApplicationHandler
	applicantH     *handler.ApplicantHandler
	adminH         *handler.AdminHandler
	magicLinkStore *store.MagicLinkStore
	rateLimiter    *middleware.RateLimiter
	logger         *slog.Logger
}

func New(db *sql.DB, emailSvc *email.Service, resumes resume.Storage, sessions *auth.Manager, logger *slog.Logger) *Server {
	hub := feed.NewHub(logger.With("component", "feed"))

	userStore := store.NewUserStore(db)
	applicantStore := store.NewApplicantStore(db)
	jobStore := store.NewJobStore(db)
	applicationStore := store.NewApplicationStore(db)
	magicLinkStore := store.NewMagicLinkStore(db)
	emailLogStore := store.NewEmailLogStore(db)
	analyticsStore := store.NewAnalyticsStore(db)

	return &Server{
		db:       db,
		hub:      hub,
		sessions: sessions,
		authH: handler.NewAuthHandler(userStore, applicantStore, magicLinkStore,
			emailSvc, sessions, logger.With("component", "auth")),
		jobH: handler.NewJobHandler(jobStore, hub, logger.With("component", "job")),
		applicationH: handler.NewApplicationHandler(applicationStore, jobStore, applicantStore,
			emailLogStore, emailSvc, hub, logger.With("component", "application")),
		applicantH: handler.NewApplicantHandler(applicantStore, applicationStore,
			resumes, logger.With("component", "applicant")),
		adminH: handler.NewAdminHandler(analyticsStore, applicationStore,
			logger.With("component", "admin")),
		magicLinkStore: magicLinkStore,
		rateLimiter:    middleware.NewRateLimiter(),
		logger:         logger,
	}
}

// MagicLinkStore returns the magic link store for cleanup tasks.
func (s *Server) MagicLinkStore() *store.MagicLinkStore {
	return s.magicLinkStore
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	session := middleware.RequireAuth(s.sessions)
	optional := middleware.OptionalAuth(s.sessions)
	hr := func(h http.HandlerFunc) http.Handler {
		return session(middleware.RequireHR(h))
	}
	applicant := func(h http.HandlerFunc) http.Handler {
		return session(middleware.RequireApplicant(h))
	}

	// Auth
	mux.HandleFunc("POST /api/auth/magic-link", s.rateLimitedHandler(s.authH.RequestMagicLink))
	mux.HandleFunc("GET /api/auth/verify", s.authH.Verify)
	mux.HandleFunc("POST /api/auth/logout", s.authH.Logout)

	// Job reads are public, but HR sessions see drafts and counts
	mux.Handle("GET /api/jobs", optional(http.HandlerFunc(s.jobH.List)))
	mux.Handle("GET /api/jobs/{id}", optional(http.HandlerFunc(s.jobH.Get)))
	mux.Handle("POST /api/jobs", hr(s.jobH.Create))
	mux.Handle("PUT /api/jobs/{id}", hr(s.jobH.Update))
	mux.Handle("DELETE /api/jobs/{id}", hr(s.jobH.Delete))

	// Applications
	mux.HandleFunc("POST /api/applications", s.applicationH.Create)
	mux.Handle("GET /api/applications", hr(s.applicationH.List))
	mux.Handle("GET /api/applications/{id}", session(http.HandlerFunc(s.applicationH.Get)))
	mux.Handle("PUT /api/applications/{id}/status", hr(s.applicationH.UpdateStatus))
	mux.Handle("DELETE /api/applications/{id}", session(http.HandlerFunc(s.applicationH.Delete)))

	// Applicant portal
	mux.HandleFunc("POST /api/applicants", s.applicantH.Upsert)
	mux.Handle("GET /api/applicants/me", applicant(s.applicantH.Me))
	mux.Handle("PUT /api/applicants/me", applicant(s.applicantH.UpdateMe))
	mux.Handle("GET /api/applicants/me/applications", applicant(s.applicantH.MyApplications))
	mux.Handle("POST /api/applicants/me/resume", applicant(s.applicantH.UploadResume))
	mux.Handle("GET /api/applicants/me/resume", applicant(s.applicantH.DownloadResume))

	// Admin
	mux.Handle("GET /api/admin/stats", hr(s.adminH.Stats))
	mux.Handle("GET /api/admin/analytics", hr(s.adminH.Analytics))
	mux.Handle("GET /api/admin/feed", hr(feed.Handler(s.hub, s.logger.With("component", "feed"))))

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	mux.HandleFunc("GET /health", s.healthHandler)

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
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
