package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"dataroom/internal/auth"
	"dataroom/internal/config"
	"dataroom/internal/handler"
	"dataroom/internal/middleware"
	"dataroom/internal/repository"
	dataroomService "dataroom/internal/service/dataroom"
	"dataroom/internal/service/dataroom/extractor"
	"dataroom/internal/storage/backend"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, logCloser, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logCloser.Close()
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"storage_backend", cfg.StorageBackend,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	verifier, err := newVerifier(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer verifier.Close()

	repos, closeRepos, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open repositories: %v", err)
	}
	defer closeRepos()

	store, storeCloser, err := backend.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open content store: %v", err)
	}
	defer storeCloser.Close()

	extractors := extractor.NewRegistry(store)
	services := dataroomService.SetupServices(repos, store, extractors, cfg, logger)

	handlers := &handler.Handlers{
		Rooms:   handler.NewRoomHandler(services.Rooms, logger),
		Folders: handler.NewFolderHandler(services.Folders, logger),
		Files:   handler.NewFileHandler(services.Files, cfg.MaxUploadBytes, logger),
		Search:  handler.NewSearchHandler(services.Search, logger),
	}

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()
	handlers.Register(mux)

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Logging → Recovery → Auth → Routes
	var h http.Handler = mux
	h = middleware.AuthMiddleware(verifier, logger)(h)
	h = middleware.Recovery(logger)(h)
	h = middleware.RequestLogger(logger)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       5 * time.Minute, // large uploads
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

// newVerifier accepts HS256 tokens when JWT_SECRET is set and JWKS-signed
// tokens when JWKS_URL is set; with both, either kind is accepted.
func newVerifier(ctx context.Context, cfg *config.Config, logger *slog.Logger) (auth.JWTVerifier, error) {
	var chain auth.ChainVerifier
	if cfg.JWTSecret != "" {
		v, err := auth.NewHMACVerifier(cfg.JWTSecret, logger)
		if err != nil {
			return nil, err
		}
		chain = append(chain, v)
	}
	if cfg.JWKSURL != "" {
		v, err := auth.NewJWKSVerifier(ctx, cfg.JWKSURL, logger)
		if err != nil {
			return nil, err
		}
		chain = append(chain, v)
	}
	if len(chain) == 1 {
		return chain[0], nil
	}
	return chain, nil
}
