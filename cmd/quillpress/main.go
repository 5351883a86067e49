// Package main is the entry point for the QuillPress API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"quillpress/internal/auth"
	"quillpress/internal/blog"
	"quillpress/internal/cache"
	"quillpress/internal/config"
	"quillpress/internal/database"
	"quillpress/internal/handlers"
	"quillpress/internal/router"
	"quillpress/internal/storage"
	"quillpress/internal/store"
)

func main() {
	// A .env file is optional; real environment variables take precedence.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("failed to read .env", "error", err)
		os.Exit(1)
	}

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: text in development, JSON elsewhere.
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Initialize data stores.
	userStore := store.NewUserStore(db)
	categoryStore := store.NewCategoryStore(db)
	postStore := store.NewPostStore(db)
	uploadStore := store.NewUploadStore(db)

	categories := blog.NewCategoryService(categoryStore)

	// Valkey is optional: without it the category list is read from
	// PostgreSQL on every request.
	if cfg.CacheEnabled() {
		valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Warn("valkey unavailable, category cache disabled", "error", err)
		} else {
			defer valkeyClient.Close()
			categories = categories.WithCache(cache.NewCategoryCache(valkeyClient, cache.DefaultCategoryTTL))
		}
	}

	// Uploads go to S3 when configured, otherwise to a local directory
	// served under /uploads/.
	var (
		backend   storage.Backend
		uploadDir string
	)
	s3Backend, err := storage.NewS3(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicURL)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if s3Backend != nil {
		backend = s3Backend
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		local, err := storage.NewLocal(cfg.UploadDir, "/uploads")
		if err != nil {
			slog.Error("failed to initialize upload directory", "error", err)
			os.Exit(1)
		}
		backend = local
		uploadDir = local.Dir()
		slog.Info("local upload storage", "dir", uploadDir)
	}

	authSvc := auth.NewService(userStore, auth.Config{
		Secret: []byte(cfg.JWTSecret),
		TTL:    cfg.JWTExpire,
	})

	// Set up the Chi router with all middleware and routes.
	r := router.New(router.Deps{
		Authenticator: authSvc,
		Auth:          handlers.NewAuth(authSvc),
		Posts:         handlers.NewPosts(blog.NewPostService(postStore, categoryStore)),
		Categories:    handlers.NewCategories(categories),
		Uploads:       handlers.NewUploads(backend, uploadStore, cfg.MaxUploadBytes()),
		ClientURL:     cfg.ClientURL,
		UploadDir:     uploadDir,
	})

	// Uploads of up to MAX_UPLOAD_MB need a generous read timeout.
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
