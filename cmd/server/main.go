package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/application"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/breedapi"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/config"
	favoriteDomain "github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/domain/favorite"
	profileDomain "github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/domain/profile"
	breedEvents "github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/events"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/handler"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/imagesearch"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/repository"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/repository/memory"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/pkg/auth"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/pkg/database"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/pkg/health"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/pkg/kafka"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/pkg/logger"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/pkg/middleware"
)

const serviceName = "service-breed-catalog"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting "+serviceName,
		zap.String("port", cfg.Port),
		zap.String("breed_api", cfg.BreedAPI.BaseURL),
		zap.String("fail_mode", string(cfg.BreedAPI.FailMode)),
	)

	// Storage: Postgres when configured, in-memory otherwise
	var (
		db           *gorm.DB
		favoriteRepo favoriteDomain.FavoriteRepository
		profileRepo  profileDomain.ProfileRepository
	)
	if cfg.DBConfig.Host != "" {
		db = connectDatabase(cfg, log)
		favoriteRepo = repository.NewGormFavoriteRepository(db)
		profileRepo = repository.NewGormProfileRepository(db)
	} else {
		log.Warn("no database host configured, favorites and profiles are kept in memory")
		favoriteRepo = memory.NewFavoriteRepo()
		profileRepo = memory.NewProfileRepo()
	}

	// Initialize JWT manager
	jwtManager, err := auth.NewJWTManager(
		cfg.JWTConfig.Secret,
		cfg.JWTConfig.AccessExpiry,
		cfg.JWTConfig.RefreshExpiry,
	)
	if err != nil {
		log.Fatal("invalid jwt configuration", zap.Error(err))
	}

	// Initialize breed acquirer (one per process)
	breedClient, err := breedapi.NewClient(cfg.BreedAPI.ClientConfig())
	if err != nil {
		log.Fatal("invalid breed api configuration", zap.Error(err))
	}
	acquirer := breedapi.NewAcquirer(breedClient, cfg.BreedAPI.AcquirerOptions(), log.Named("breedapi"))

	// Initialize Kafka producer
	var publisher application.EventPublisher
	kafkaEnabled := len(cfg.KafkaConfig.Brokers) > 0
	if kafkaEnabled {
		kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
		defer func() { _ = kafkaProducer.Close() }()
		publisher = kafkaProducer
	} else {
		log.Warn("no kafka brokers configured, favorite events are not published")
	}

	// Initialize application services
	breedService := application.NewBreedService(acquirer, cfg.BreedAPI.FailMode, log)
	favoriteService := application.NewFavoriteService(favoriteRepo, acquirer, publisher, log)
	profileService := application.NewProfileService(profileRepo, log)
	imageService := application.NewImageService(imagesearch.NewClient(cfg.ImageSearch.ClientConfig()), log)

	// Initialize and start user event consumer in a goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if kafkaEnabled {
		groupID := cfg.KafkaConfig.GroupPrefix + "breed-catalog-service"
		userConsumer := breedEvents.NewUserEventConsumer(
			cfg.KafkaConfig.Brokers,
			groupID,
			favoriteService,
			profileService,
			log,
		)
		defer func() { _ = userConsumer.Close() }()

		go func() {
			log.Info("starting user event consumer")
			if err := userConsumer.Start(ctx); err != nil && err != context.Canceled {
				log.Error("user event consumer error", zap.Error(err))
			}
		}()
	}

	// Initialize HTTP handlers
	breedHandler := handler.NewBreedHandler(breedService)
	imageHandler := handler.NewImageHandler(imageService)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService)
	profileHandler := handler.NewProfileHandler(profileService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, serviceName)
	healthHandler.RegisterRoutes(router)

	// Register routes
	breedHandler.RegisterRoutes(&router.RouterGroup)
	imageHandler.RegisterRoutes(&router.RouterGroup)
	favoriteHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	profileHandler.RegisterRoutes(&router.RouterGroup, jwtManager)

	// A full catalog fetch sleeps between pages, so the write timeout is generous.
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down " + serviceName + "...")

	// Cancel the consumer context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info(serviceName + " stopped")
}

func connectDatabase(cfg *config.ServiceConfig, log *zap.Logger) *gorm.DB {
	dbConfig := database.PostgresConfig{
		Host:     cfg.DBConfig.Host,
		Port:     cfg.DBConfig.Port,
		User:     cfg.DBConfig.User,
		Password: cfg.DBConfig.Password,
		DBName:   cfg.DBConfig.DBName,
		SSLMode:  cfg.DBConfig.SSLMode,
	}
	db, err := database.Connect(dbConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(&repository.FavoriteModel{}, &repository.ProfileModel{}); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(dbConfig.DatabaseURL(), "migrations", log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}
	return db
}
