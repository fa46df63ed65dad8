package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"choicefiction/internal/ai"
	"choicefiction/internal/config"
	"choicefiction/internal/database"
	"choicefiction/internal/genres"
	"choicefiction/internal/handler"
	"choicefiction/internal/interfaces"
	"choicefiction/internal/messaging"
	"choicefiction/internal/service"
	"choicefiction/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var skipMigrations bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply migrations on startup")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if !skipMigrations {
		if err := database.MigrateUp(cfg.GetDSN()); err != nil {
			return err
		}
		logger.Info("Database migrations applied")
	}

	pool, err := database.ConnectPostgres(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer pool.Close()
	logger.Info("Connected to PostgreSQL")

	redisClient, err := database.ConnectRedis(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer redisClient.Close()
	logger.Info("Connected to Redis")

	aiClient, err := ai.NewClient(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("init AI client: %w", err)
	}

	imageStore, uploadsDir, err := newImageStore(ctx, cfg, logger)
	if err != nil {
		return err
	}

	publisher, closePublisher, err := newPublisher(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closePublisher()

	catalog, err := genres.Load()
	if err != nil {
		return err
	}

	userRepo := database.NewPgUserRepository(pool, logger)
	characterRepo := database.NewPgCharacterRepository(pool, logger)
	storyRepo := database.NewPgStoryRepository(pool, logger)
	chapterRepo := database.NewPgChapterRepository(pool, logger)

	services := handler.Services{
		Characters: service.NewCharacterService(characterRepo, storyRepo, logger),
		Stories: service.NewStoryService(service.StoryServiceDeps{
			Stories:    storyRepo,
			Characters: characterRepo,
			Chapters:   chapterRepo,
			Tx:         database.NewTransactionHelper(pool, logger),
			Views:      database.NewRedisViewRegistry(redisClient, logger),
			Publisher:  publisher,
			ViewWindow: cfg.ViewDebounceTTL,
		}, logger),
		Chapters:    service.NewChapterService(chapterRepo, storyRepo, publisher, logger),
		Auth:        service.NewAuthService(userRepo, cfg.JWTSecret, cfg.SessionTTL, logger),
		Suggestions: service.NewSuggestionService(aiClient, catalog, cfg.AITemperature, cfg.AIRequestTimeout, logger),
		Drafts:      service.NewDraftService(database.NewRedisDraftStore(redisClient, cfg.DraftTTL, logger), logger),
		Uploads:     service.NewUploadService(imageStore, cfg.UploadMaxBytes, logger),
		Genres:      catalog,
	}

	h := handler.NewHandler(services, handler.Config{
		SessionCookie:  cfg.SessionCookie,
		SessionTTL:     cfg.SessionTTL,
		SessionSecret:  cfg.SessionSecret,
		CookieSecure:   cfg.CookieSecure,
		AllowedOrigins: cfg.GetAllowedOrigins(),
		MaxUploadBytes: cfg.UploadMaxBytes,
		UploadsDir:     uploadsDir,
		EnableMetrics:  true,
		Google: handler.OAuthConfig{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
		},
	}, logger)
	limiter := handler.NewRateLimiter(handler.NewRedisRateLimitStore(redisClient, cfg.AIRateLimitPerMinute), logger)
	router := handler.NewRouter(h, limiter)

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// AI запросы могут идти дольше минуты.
		WriteTimeout: cfg.AIRequestTimeout + 30*time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info("Shutdown signal received, stopping HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
		return err
	}
	logger.Info("Server stopped")
	return nil
}

// newImageStore выбирает хранилище по UPLOAD_BACKEND. Для диска возвращает каталог для раздачи.
func newImageStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (interfaces.ImageStore, string, error) {
	switch strings.ToLower(cfg.UploadBackend) {
	case "s3":
		store, err := storage.NewS3Store(ctx, storage.S3Config{
			Region:          cfg.AWSRegion,
			Bucket:          cfg.AWSBucket,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretKey,
		}, logger)
		if err != nil {
			return nil, "", err
		}
		logger.Info("Using S3 image storage", zap.String("bucket", cfg.AWSBucket))
		return store, "", nil
	default:
		store, err := storage.NewDiskStore(cfg.UploadDir, cfg.PublicBaseURL, logger)
		if err != nil {
			return nil, "", err
		}
		logger.Info("Using disk image storage", zap.String("dir", store.Root()))
		return store, store.Root(), nil
	}
}

// newPublisher подключается к RabbitMQ, если задан RABBITMQ_URL.
func newPublisher(ctx context.Context, cfg *config.Config, logger *zap.Logger) (interfaces.StoryEventPublisher, func(), error) {
	if cfg.RabbitMQURL == "" {
		logger.Info("RABBITMQ_URL is empty, story events are disabled")
		return messaging.NewNoopPublisher(), func() {}, nil
	}
	conn, err := messaging.Connect(ctx, cfg.RabbitMQURL, cfg.ConnectRetries, cfg.ConnectDelay, logger)
	if err != nil {
		return nil, nil, err
	}
	pub, err := messaging.NewRabbitMQStoryPublisher(conn, cfg.StoryEventsQueue, logger)
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return pub, func() {
		if err := pub.Close(); err != nil {
			logger.Warn("Failed to close story publisher", zap.Error(err))
		}
		_ = conn.Close()
	}, nil
}
