// Main entry point of the Jobbers API. It wires configuration, the database
// pool, services and handlers, sets up the HTTP router and middleware, and
// runs the server with graceful shutdown.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/iamfelixjp/jobbers-app/apperror"
	"github.com/iamfelixjp/jobbers-app/auth"
	"github.com/iamfelixjp/jobbers-app/config"
	"github.com/iamfelixjp/jobbers-app/db"
	"github.com/iamfelixjp/jobbers-app/jobs"
	"github.com/iamfelixjp/jobbers-app/metrics"
	"github.com/iamfelixjp/jobbers-app/middleware"
)

func main() {
	// In development the .env file supplies the environment. In production
	// the variables are set directly, so a missing file is fine.
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading it: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pool, err := db.NewDBPool(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to create database pool: %v", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.DB, "./migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Manual dependency injection: stores wrap the pool, services wrap
	// stores, handlers wrap services.
	userStore := auth.NewPgxUserStore(pool)
	authService := auth.NewAuthService(userStore, *cfg.Auth)
	authHandlers := auth.NewHandlers(authService)

	jobStore := jobs.NewPgxJobStore(pool)
	jobService := jobs.NewJobService(jobStore)
	jobHandlers := jobs.NewJobHandlers(jobService)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	authLimiter := middleware.NewRateLimiter(cfg.RateLimit)
	defer authLimiter.Stop()

	r := chi.NewRouter()

	// Chi requires all middleware to be registered before any routes.
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(collector.Middleware())

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Second line of panic defense with a structured error body.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				if rvr := recover(); rvr != nil {
					log.Printf("Panic: %+v", rvr)
					writeError(ww, apperror.NewInternalError("internal server error", nil))
				}
			}()
			next.ServeHTTP(ww, r)
		})
	})

	r.Route("/auth", func(r chi.Router) {
		// Register and login are unauthenticated, so they get the stricter
		// per-IP rate limit.
		r.Group(func(r chi.Router) {
			r.Use(authLimiter.Middleware())
			r.Post("/register", authHandlers.HandleRegister())
			r.Post("/login", authHandlers.HandleLogin())
		})
		r.Group(func(r chi.Router) {
			r.Use(auth.JWTMiddleware(cfg.Auth))
			r.Patch("/update-user", authHandlers.HandleUpdateUser())
		})
	})

	r.Route("/jobs", func(r chi.Router) {
		r.Use(auth.JWTMiddleware(cfg.Auth))
		jobHandlers.RegisterRoutes(r)
	})

	r.Get("/metrics", metrics.Handler(registry).ServeHTTP)

	// Optionally serve the compiled frontend from the same process.
	if cfg.Server.ClientDir != "" {
		r.NotFound(spaHandler(cfg.Server.ClientDir))
	}

	addr := fmt.Sprintf(":%s", cfg.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully")
}

// spaHandler serves static assets from dir and falls back to index.html for
// client-side routes. Paths escaping the directory are rejected.
func spaHandler(dir string) http.HandlerFunc {
	fileServer := http.FileServer(http.Dir(dir))
	return func(w http.ResponseWriter, r *http.Request) {
		requested := filepath.Join(dir, filepath.Clean("/"+r.URL.Path))
		if !strings.HasPrefix(requested, filepath.Clean(dir)) {
			http.NotFound(w, r)
			return
		}
		if info, err := os.Stat(requested); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}
		http.ServeFile(w, r, filepath.Join(dir, "index.html"))
	}
}

// writeError is a local helper for the panic recovery middleware.
func writeError(w http.ResponseWriter, appErr *apperror.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())
	if err := json.NewEncoder(w).Encode(appErr.ToResponse()); err != nil {
		http.Error(w, `{"error":"failed to encode error response"}`, http.StatusInternalServerError)
	}
}
