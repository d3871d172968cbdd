package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/shenikar/live_location_sync/internal/config"
	v1 "github.com/shenikar/live_location_sync/internal/handler/http/v1"
	"github.com/shenikar/live_location_sync/internal/hub"
	"github.com/shenikar/live_location_sync/internal/repository"
	"github.com/shenikar/live_location_sync/internal/service"
	"github.com/shenikar/live_location_sync/internal/webhook"
	"github.com/shenikar/live_location_sync/pkg/logger"
	"github.com/shenikar/live_location_sync/pkg/postgres"
	redisclient "github.com/shenikar/live_location_sync/pkg/redis"
	"github.com/shenikar/live_location_sync/pkg/sqlite"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/live_location_sync/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Live Location Sync API
// @version 1.0
// @description Ingests geolocation reports from tracked devices and fans the live position out to authorized observers.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(cfg.MigrationsPath, migrationURL)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

// store объединяет репозитории выбранного драйвера
type store interface {
	service.EntityRepository
	service.LocationRepository
}

// openStore подключает хранилище по STORE_DRIVER и возвращает функцию закрытия
func openStore(ctx context.Context, cfg *config.Config, log *logrus.Logger) (store, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		if err := runMigrations(cfg, log); err != nil {
			return nil, nil, err
		}
		dbpool, err := postgres.NewPostgresDB(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		log.Info("Successfully connected to PostgreSQL")
		return repository.NewPostgresStore(dbpool), dbpool.Close, nil

	case config.StoreDriverSQLite:
		db, err := sqlite.NewSQLiteDB(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open SQLite: %w", err)
		}
		s, err := repository.NewSQLiteStore(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		log.WithField("path", cfg.SQLitePath).Info("Successfully opened SQLite")
		return s, func() { _ = db.Close() }, nil
	}

	log.Warn("Using in-memory store, data will be lost on restart")
	return repository.NewMemoryStore(), func() {}, nil
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Подключение хранилища
	locations, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer closeStore()

	var opts []service.Option

	// Redis необязателен: без него нет кеша текущего состояния и вебхуков
	var webhookWorker *webhook.WebhookWorker
	if cfg.RedisAddr != "" {
		var redisClient *redis.Client
		redisClient, err = redisclient.NewRedisClient(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		log.Info("Successfully connected to Redis")

		opts = append(opts, service.WithLiveStateCache(repository.NewRedisLiveStateCache(redisClient, cfg.LiveCacheTTL)))

		if cfg.WebhookURL != "" {
			// Инициализация издателя вебхуков
			opts = append(opts, service.WithWebhookPublisher(webhook.NewRedisWebhookPublisher(redisClient)))

			// Инициализация и запуск воркера вебхуков
			webhookWorker = webhook.NewWebhookWorker(redisClient, log, cfg)
			webhookWorker.Start(ctx)
		}
	}

	// Инициализация хаба подписок
	subscriptionHub := hub.New(locations, log)

	// Инициализация сервисов
	authorizer := service.NewEntityAuthorizer(locations)
	locationService := service.NewLocationService(locations, locations, authorizer, subscriptionHub, log, cfg, opts...)

	// Инициализация хэндлеров
	handler := v1.NewHandler(locationService, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Метрики Prometheus
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	// подписки закрываются первыми, иначе Shutdown ждет открытые WebSocket-потоки
	subscriptionHub.Close()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	cancel()
	if webhookWorker != nil {
		<-webhookWorker.Done()
	}

	log.Info("Server gracefully stopped")
}
