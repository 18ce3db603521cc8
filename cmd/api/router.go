package main

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Haitham314s/blog-api/internal/auth"
	"github.com/Haitham314s/blog-api/internal/config"
	"github.com/Haitham314s/blog-api/internal/handlers"
	"github.com/Haitham314s/blog-api/internal/mail"
	"github.com/Haitham314s/blog-api/internal/middleware"
	"github.com/Haitham314s/blog-api/internal/repo"
	"github.com/Haitham314s/blog-api/internal/service"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newRouter wires repositories, services, and handlers into the HTTP surface.
func newRouter(db *sql.DB, cfg config.Config, mailer mail.Mailer) http.Handler {
	userRepo := repo.NewUserRepo(db)
	postRepo := repo.NewPostRepo(db)

	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	tokens := auth.NewTokenService(
		[]byte(cfg.JWTSecret),
		time.Duration(cfg.AccessTokenExpireMinutes)*time.Minute,
	)

	gate := service.NewAuthService(userRepo, tokens)
	accounts := service.NewAccountService(userRepo, hasher, tokens, mailer)
	accounts.SendWelcomeMail = cfg.SendWelcomeMail
	resets := service.NewResetService(userRepo, gate, tokens, hasher, mailer, cfg.ResetLinkBase)
	blogs := service.NewBlogService(postRepo)

	authHandler := &handlers.AuthHandler{Accounts: accounts}
	userHandler := &handlers.UserHandler{Accounts: accounts}
	resetHandler := &handlers.ResetHandler{Resets: resets}
	blogHandler := &handlers.BlogHandler{Blogs: blogs}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLog)
	r.Use(middleware.SecurityHeaders(cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.Prometheus)
	r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"detail": "Welcome to the Blog API home page"})
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			handlers.JSONError(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.Handler())

	// Credential-bearing endpoints share one per-IP limiter.
	authLimiter := middleware.AuthRateLimiter()
	r.Group(func(r chi.Router) {
		r.Use(authLimiter.Middleware)
		r.Post("/login", authHandler.Login)
		r.Post("/users/registration", userHandler.Register)
		r.Post("/password/request", resetHandler.Request)
		r.Put("/password/reset", resetHandler.Confirm)
	})

	// Public reads.
	r.Get("/blog", blogHandler.List)
	r.Get("/blog/{id}", blogHandler.Get)

	// Protected writes go through the authentication gate.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(gate))
		r.Post("/users/details", userHandler.Details)
		r.Post("/blog", blogHandler.Create)
		r.Put("/blog/{id}", blogHandler.Update)
		r.Delete("/blog/{id}", blogHandler.Delete)
	})

	return r
}
