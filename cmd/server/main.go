package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/segyhp/propmgmt/internal/assets"
	"github.com/segyhp/propmgmt/internal/auth"
	"github.com/segyhp/propmgmt/internal/config"
	"github.com/segyhp/propmgmt/internal/handler"
	"github.com/segyhp/propmgmt/internal/logging"
	"github.com/segyhp/propmgmt/internal/service"
	"github.com/segyhp/propmgmt/internal/storage"
)

const jwksCacheKey = "propmgmt:jwks"

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any(logging.FieldError, err))
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format, os.Stdout)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server failed", slog.Any(logging.FieldError, err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	// ends background work such as signing key refreshes
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize storage
	backend, err := storage.Open(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer backend.Close()

	// Initialize Redis
	redisClient, err := storage.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	assetSource, err := assets.New(ctx, cfg.Assets)
	if err != nil {
		return err
	}

	// Initialize services
	reportService := service.NewReportService(backend.Repos)
	managementService := service.NewManagementService(backend.Repos)

	viewerHandler, err := handler.NewViewerHandler(reportService, cfg.Report.BasePath)
	if err != nil {
		return err
	}

	handlers := handler.Handlers{
		Health:     handler.NewHealthHandler(cfg.Server.AppName, backend.Driver, cfg.GetHealthTimeout(), backend.DB, redisClient),
		Reports:    handler.NewReportHandler(reportService),
		Management: handler.NewManagementHandler(managementService),
		Viewer:     viewerHandler,
		Assets:     handler.NewAssetsHandler(assetSource),
	}

	var authenticate func(http.Handler) http.Handler
	if cfg.Auth.Enabled {
		verifier, err := newVerifier(ctx, cfg, redisClient, logger)
		if err != nil {
			return err
		}
		oauth := auth.NewOAuthClient(cfg.Auth.Domain, cfg.Auth.ClientID, cfg.Auth.ClientSecret, cfg.Auth.RedirectURI, cfg.GetScopes())

		handlers.Auth = handler.NewAuthHandler(oauth, verifier, cfg.Auth.CookieSecure, strings.TrimRight(cfg.Report.BasePath, "/")+"/report-viewer/")
		authenticate = auth.Middleware(verifier)
	} else {
		logger.Warn("authentication disabled")
	}

	// Setup routes
	router := handler.NewRouter(handlers, logger, authenticate)

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.GetAllowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", logging.RequestIDHeader},
		ExposedHeaders:   []string{logging.RequestIDHeader},
		AllowCredentials: true,
	})

	// Start server
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           corsHandler(router),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.String("addr", server.Addr),
			slog.String("env", cfg.Server.Env),
			slog.String("backend", backend.Driver),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case <-quit:
	}
	logger.Info("shutting down server")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server exited")
	return nil
}

func newVerifier(ctx context.Context, cfg *config.Config, redisClient *redis.Client, logger *slog.Logger) (*auth.Verifier, error) {
	issuer := auth.CognitoIssuer(cfg.Auth.Region, cfg.Auth.UserPoolID)

	opts := []auth.KeySetOption{auth.WithLogger(logger)}
	if redisClient != nil {
		opts = append(opts, auth.WithStore(auth.NewRedisKeyStore(redisClient, jwksCacheKey)))
	}

	keys, err := auth.NewKeySet(ctx, auth.JWKSURL(issuer), cfg.GetJWKSCacheTTL(), opts...)
	if err != nil {
		return nil, err
	}
	return auth.NewVerifier(keys, issuer, cfg.Auth.ClientID), nil
}
