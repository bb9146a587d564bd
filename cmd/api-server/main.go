package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"lune/internal/api/handler"
	"lune/internal/api/repository"
	"lune/internal/api/service"
	"lune/internal/cache"
	"lune/internal/config"
	"lune/internal/database"
	"lune/internal/metadata"
	"lune/internal/metadata/gutendex"
	"lune/internal/metadata/openlibrary"
	"lune/internal/metadata/tmdb"
)

func main() {
	// 1. Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. Connect to the database
	db, err := database.Connect(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer database.Close(db, logger)

	// 3. Redis cache (non-fatal: trending just skips the cache without it)
	mediaCache, err := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL)
	if err != nil {
		logger.Warn("redis unavailable, continuing without cache", "error", err)
		mediaCache = nil
	} else {
		defer mediaCache.Close()
	}

	// 4. Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	libraryRepo := repository.NewLibraryRepository(db)
	collectionRepo := repository.NewCollectionRepository(db)
	followRepo := repository.NewFollowRepository(db)

	// 5. Services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := service.NewUserService(userRepo)
	libraryService := service.NewLibraryService(libraryRepo, catalogRepo)
	collectionService := service.NewCollectionService(collectionRepo, catalogRepo)
	statsService := service.NewStatsService(libraryRepo, catalogRepo)
	socialService := service.NewSocialService(followRepo, userRepo)

	metaService := metadata.NewService(
		tmdb.NewClient(cfg.TMDBBaseURL, cfg.TMDBAPIKey),
		openlibrary.NewClient(cfg.OpenLibraryBaseURL),
		gutendex.NewClient(cfg.GutendexBaseURL),
		mediaCache,
		logger,
	)

	// 6. HTTP layer
	r := handler.SetupRouter(cfg, handler.Handlers{
		Auth:        handler.NewAuthHandler(authService, userService),
		Media:       handler.NewMediaHandler(metaService, catalogRepo),
		Library:     handler.NewLibraryHandler(libraryService),
		Collections: handler.NewCollectionHandler(collectionService),
		Social:      handler.NewSocialHandler(socialService, statsService),
	}, authService)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("server starting", "addr", addr, "env", cfg.AppEnv)
	if err := r.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
