package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/trustaudithq/backend/internal/docstore"
	"github.com/trustaudithq/backend/internal/handler"
	"github.com/trustaudithq/backend/internal/logging"
	"github.com/trustaudithq/backend/internal/mailer"
	"github.com/trustaudithq/backend/internal/repository"
	"github.com/trustaudithq/backend/internal/service"
)

func main() {
	_ = godotenv.Load()
	logging.Setup()

	frontendURL := envOr("FRONTEND_URL", "http://localhost:3000")
	collection := envOr("DOCSTORE_COLLECTION", "contact_submissions")

	// The store client is constructed once; missing configuration is
	// detected here, not deep inside a request.
	store := docstore.NewClient(
		envOr("DOCSTORE_ENDPOINT", "https://firestore.googleapis.com"),
		os.Getenv("DOCSTORE_PROJECT_ID"),
		os.Getenv("DOCSTORE_API_KEY"),
	)
	if !store.Configured() {
		slog.Warn("document store not configured; submissions will use fallback ids")
	}

	mail := mailer.NewClient(
		envOr("MAIL_API_URL", "https://api.resend.com"),
		os.Getenv("MAIL_API_KEY"),
	)
	if !mail.Configured() {
		slog.Warn("mailer not configured; contact notifications will not be sent")
	}

	submissionRepo := repository.NewDocstoreSubmissionRepository(store, collection)
	notifier := service.NewNotificationDispatcher(mail,
		envOr("MAIL_FROM", "TrustAudit <noreply@trustaudithq.com>"),
		envOr("CONTACT_RECIPIENT", "enquiries@trustaudithq.com"),
	)
	contactService := service.NewContactService(submissionRepo, notifier)

	h := handler.New(store, mail, frontendURL)
	contactHandler := handler.NewContactHandler(contactService)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)
	// All methods route to Submit so non-POST verbs get the JSON 405 body.
	mux.HandleFunc("/api/contact", contactHandler.Submit)

	rateLimit := 30
	if n, err := strconv.Atoi(os.Getenv("RATE_LIMIT_PER_MINUTE")); err == nil && n > 0 {
		rateLimit = n
	}
	limiter := handler.NewRateLimiter(rateLimit)

	server := &http.Server{
		Addr:         ":" + envOr("PORT", "8080"),
		Handler:      h.CORS(handler.SecurityHeaders(handler.RequestLogger(limiter.Middleware(mux)))),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	// Let in-flight notification sends finish before the process exits.
	notifier.Wait()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
