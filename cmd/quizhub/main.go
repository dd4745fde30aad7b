package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/allanime/quizhub/internal/auth"
	"github.com/allanime/quizhub/internal/auth/identity"
	"github.com/allanime/quizhub/internal/auth/session"
	"github.com/allanime/quizhub/internal/config"
	"github.com/allanime/quizhub/internal/db"
	"github.com/allanime/quizhub/internal/genres"
	"github.com/allanime/quizhub/internal/sharetoken"
	"github.com/allanime/quizhub/internal/web/handlers"
	"github.com/allanime/quizhub/internal/web/middleware"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration invalid: %v", err)
	}

	// Initialize database
	database, err := db.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Genre catalog (optional file)
	catalog, err := genres.Load(cfg.CatalogPath, cfg.OGBaseURL)
	if err != nil {
		log.Fatalf("Failed to load genre catalog: %v", err)
	}

	// Identity provider client and session reconciler
	ident := identity.NewClient(cfg.IdentityURL, cfg.IdentityKey)
	store, err := session.NewStore(os.Getenv("QUIZHUB_STATE_DIR"))
	if err != nil {
		log.Fatalf("Failed to open session store: %v", err)
	}
	reconciler := auth.NewReconciler(store, ident)

	tokenGen := sharetoken.New()

	// Create router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Get("/api/version", handlers.VersionHandler())

	// Auth flow
	r.Get("/auth/callback", auth.CallbackPageHandler())
	r.Post("/auth/session", auth.SessionHandler(reconciler))
	r.Post("/auth/logout", auth.LogoutHandler(reconciler))

	// Public API (CORS for the static frontend)
	r.Group(func(r chi.Router) {
		r.Use(middleware.CORS)
		r.Post("/score", handlers.ScoreHandler(database, cfg, tokenGen, ident))
		r.Post("/feedback", handlers.SubmitFeedbackHandler(database))
		r.Get("/feedback", handlers.ListFeedbackHandler(database))
		r.Options("/score", func(w http.ResponseWriter, r *http.Request) {})
		r.Options("/feedback", func(w http.ResponseWriter, r *http.Request) {})
	})

	// Share pages (pretty path plus query-param fallback)
	r.Get("/share/{token}", handlers.ShareHandler(database, cfg, catalog))
	r.Get("/share", handlers.ShareHandler(database, cfg, catalog))

	// Admin (protected when QUIZHUB_ADMIN_PASSWORD is set)
	r.With(middleware.AdminAuth(cfg.AdminPassword)).Post("/setup", handlers.SetupHandler(database))

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	go func() {
		log.Printf("🚀 Quiz Share Hub starting on http://%s", cfg.Addr())
		log.Printf("🔗 Share pages: %s/share/<token>", cfg.SiteURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
