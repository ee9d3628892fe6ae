package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/jiyun-dev/wecal/docs"
	"github.com/jiyun-dev/wecal/internal/auth"
	"github.com/jiyun-dev/wecal/internal/config"
	"github.com/jiyun-dev/wecal/internal/database"
	"github.com/jiyun-dev/wecal/internal/group"
	"github.com/jiyun-dev/wecal/internal/member"
	mw "github.com/jiyun-dev/wecal/pkg/middleware"
	"github.com/jiyun-dev/wecal/pkg/token"
)

// @title        wecal API
// @version      1.0
// @description  Calendar-sharing backend: members, groups, and invite-code memberships
// @BasePath     /api/v1
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Initialize database connection
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	logger.Info("connected to database")

	tokenProvider := token.NewProvider(cfg.JWTSecret, cfg.AccessTokenTTL)

	// Member feature
	memberRepo := member.NewRepository(db)

	// Auth feature
	authRepo := auth.NewRepository(db)
	authService := auth.NewService(memberRepo, authRepo, tokenProvider, cfg.RefreshTokenTTL)
	authHandler := auth.NewHandler(authService)

	memberService := member.NewService(memberRepo, authRepo)
	memberHandler := member.NewHandler(memberService)

	// Group feature (the core)
	groupRepo := group.NewRepository(db)
	membershipRepo := group.NewMembershipRepository(db)
	groupService := group.NewService(groupRepo, membershipRepo, group.NewCryptoCodeGenerator())
	groupHandler := group.NewHandler(groupService)

	r := chi.NewRouter()

	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RequestID)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			// Credential endpoints get a tighter rate limit
			r.Use(httprate.LimitByIP(20, time.Minute))
			r.Mount("/auth", authHandler.Routes())
		})

		r.Group(func(r chi.Router) {
			r.Use(mw.Auth(tokenProvider, memberService))
			r.Mount("/members", memberHandler.Routes())
			r.Mount("/groups", groupHandler.Routes())
		})
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	logger.Info("server starting", "port", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}
