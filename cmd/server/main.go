package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kutuphane/locallibrary/internal/audit"
	"github.com/kutuphane/locallibrary/internal/config"
	"github.com/kutuphane/locallibrary/internal/database"
	"github.com/kutuphane/locallibrary/internal/handler"
	"github.com/kutuphane/locallibrary/internal/middleware"
	"github.com/kutuphane/locallibrary/internal/repository"
	"github.com/kutuphane/locallibrary/internal/service"
	"github.com/kutuphane/locallibrary/internal/session"
	"github.com/kutuphane/locallibrary/pkg/logger"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(!cfg.IsProduction()); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.Connect(cfg)
	database.Migrate()

	trail, err := audit.Open(cfg.AuditPath)
	if err != nil {
		zap.L().Fatal("Failed to open audit trail", zap.Error(err))
	}
	defer trail.Close()

	// Redis is optional; without it the login limiter is inert.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			zap.L().Fatal("Invalid REDIS_URL", zap.Error(err))
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()
	}

	sessions := session.NewManager()

	authorRepo := repository.NewAuthorRepository(database.DB)
	genreRepo := repository.NewGenreRepository(database.DB)
	bookRepo := repository.NewBookRepository(database.DB)
	instanceRepo := repository.NewBookInstanceRepository(database.DB)
	userRepo := repository.NewUserRepository(database.DB)

	authorService := service.NewAuthorService(authorRepo, bookRepo, trail)
	genreService := service.NewGenreService(genreRepo, bookRepo, trail)
	bookService := service.NewBookService(bookRepo, authorRepo, genreRepo, instanceRepo, trail)
	instanceService := service.NewBookInstanceService(instanceRepo, bookRepo, trail)
	accountService := service.NewAccountService(userRepo, cfg.TokenSecret)
	dashboardService := service.NewDashboardService(bookRepo, instanceRepo, authorRepo, genreRepo)

	loginLimiter := middleware.NewLoginLimiter(redisClient, middleware.LoginLimiterConfig{
		MaxAttempts: cfg.LoginLimitMaxAttempts,
		Window:      cfg.LoginLimitWindow,
	})
	authorizer := middleware.NewAuthorizer(sessions)

	h := &handler.Handlers{
		Dashboard: handler.NewDashboardHandler(dashboardService, sessions),
		Authors:   handler.NewAuthorHandler(authorService, sessions),
		Books:     handler.NewBookHandler(bookService, sessions),
		Genres:    handler.NewGenreHandler(genreService, sessions),
		Instances: handler.NewBookInstanceHandler(instanceService, sessions),
		Users:     handler.NewUserHandler(accountService, sessions, loginLimiter),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.HSTSMiddleware(cfg.IsProduction()))

	handler.SetupRoutes(router, h, authorizer, loginLimiter)

	server := &http.Server{
		Addr:    cfg.ServerPort,
		Handler: sessions.LoadAndSave(router),
	}

	zap.L().Info("Server starting", zap.String("addr", cfg.ServerPort))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		zap.L().Fatal("Failed to start server", zap.Error(err))
	}
}
