package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mtcnamibia/careers/internal/auth"
	"github.com/mtcnamibia/careers/internal/database"
	"github.com/mtcnamibia/careers/internal/email"
	"github.com/mtcnamibia/careers/internal/logging"
	"github.com/mtcnamibia/careers/internal/resume"
	"github.com/mtcnamibia/careers/internal/server"
	"github.com/mtcnamibia/careers/internal/store"
)

func main() {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := logging.Setup(os.Getenv("CAREERS_LOG_LEVEL"), os.Getenv("CAREERS_LOG_FORMAT"))

	port := os.Getenv("CAREERS_PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("CAREERS_DB_PATH")
	if dbPath == "" {
		dbPath = "careers.db"
	}

	baseURL := os.Getenv("CAREERS_BASE_URL")
	if baseURL == "" {
		baseURL = fmt.Sprintf("http://localhost:%s", port)
	}

	sessionSecret := os.Getenv("CAREERS_SESSION_SECRET")
	if sessionSecret == "" {
		slog.Error("CAREERS_SESSION_SECRET is required")
		os.Exit(1)
	}

	db, err := database.Open(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	emailCfg := email.Config{
		Region:    envDefault("AWS_REGION", "eu-west-1"),
		AccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		FromEmail: envDefault("CAREERS_FROM_EMAIL", "careers@mtc.com.na"),
		BaseURL:   baseURL,
	}

	emailSvc := email.NewService(emailCfg, store.NewEmailLogStore(db), logger.With("component", "email"))
	if !emailSvc.Configured() {
		slog.Warn("AWS SES not configured, email sending is simulated")
	}

	s3Cfg := resume.S3Config{
		Endpoint:  os.Getenv("CAREERS_S3_ENDPOINT"),
		Bucket:    os.Getenv("CAREERS_S3_BUCKET"),
		Region:    envDefault("AWS_REGION", "eu-west-1"),
		AccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
	}
	var resumes resume.Storage
	if s3Cfg.Configured() {
		resumes = resume.NewS3Storage(s3Cfg)
	} else {
		dir := envDefault("CAREERS_RESUME_DIR", "resumes")
		slog.Warn("S3 not configured, storing resumes locally", "dir", dir)
		resumes = resume.NewLocalStorage(dir)
	}

	sessions := auth.NewManager(sessionSecret, strings.HasPrefix(baseURL, "https://"))

	srv := server.New(db, emailSvc, resumes, sessions, logger)

	httpServer := &http.Server{
		Addr:              ":" + port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Hourly purge of expired magic links and stale rate-limit buckets.
	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	defer cleanupCancel()
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n, err := srv.MagicLinkStore().DeleteExpired(); err != nil {
					slog.Error("cleanup expired magic links", "error", err)
				} else if n > 0 {
					slog.Info("cleaned up expired magic links", "count", n)
				}
				srv.RateLimiter().Cleanup()
			case <-cleanupCtx.Done():
				return
			}
		}
	}()

	go func() {
		slog.Info("careers service starting", "addr", ":"+port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	cleanupCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}

func envDefault(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}
