package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/vitrine-shop/go-backend/internal/cfg"
	v1Http "github.com/vitrine-shop/go-backend/internal/delivery/v1/http"
	"github.com/vitrine-shop/go-backend/internal/guard"
	"github.com/vitrine-shop/go-backend/internal/infrastructure/kafka"
	"github.com/vitrine-shop/go-backend/internal/repository/mongodb"
	mongoConv "github.com/vitrine-shop/go-backend/internal/repository/mongodb/converter"
	redisRepo "github.com/vitrine-shop/go-backend/internal/repository/redis"
	redisConv "github.com/vitrine-shop/go-backend/internal/repository/redis/converter"
	"github.com/vitrine-shop/go-backend/internal/usecase"
	"github.com/vitrine-shop/go-backend/pkg/clients"
	"github.com/vitrine-shop/go-backend/pkg/closer"
	"github.com/vitrine-shop/go-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

// Run собирает зависимости приложения и блокируется до сигнала завершения.
func Run(cfg *config.Config, logger logger.Logger) error {
	appCloser := closer.NewCloser(2 * time.Second)

	mongoClient, err := clients.NewMongoClient(cfg.Mongo)
	if err != nil {
		logger.Errorf(err, "failed to initialize mongo client")
		return err
	}
	appCloser.Add(mongoClient.Close)

	productRepo := mongodb.NewProductRepo(mongoClient.Collection(), mongoConv.NewProductConverter())

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(redisCtx); err != nil {
		redisCancel()
		logger.Errorf(err, "failed to connect to redis")
		return err
	}
	redisCancel()
	appCloser.Add(func(_ context.Context) error {
		return redisClient.Client.Close()
	})

	cacheRepo := redisRepo.NewCacheRepo(redisClient, redisConv.NewProductConverter(), cfg.Redis, logger)

	var producer usecase.ChangeEventProducer
	if cfg.Kafka.Enabled {
		kafkaProducer, err := kafka.NewProducer(logger, cfg.Kafka)
		if err != nil {
			logger.Errorf(err, "failed to initialize kafka producer")
			return err
		}
		if err := kafkaProducer.EnsureTopic(10 * time.Second); err != nil {
			logger.Warnf("failed to ensure kafka topic: %v", err)
		}
		appCloser.Add(kafkaProducer.Close)
		producer = kafkaProducer
	} else {
		logger.Infof("kafka brokers are not configured, change events are disabled")
	}

	catalogUC := usecase.NewCatalogUC(productRepo, cacheRepo, producer, logger)
	accessGuard := guard.NewGuard(cfg.Guard)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, logger)
	router.Init(catalogUC, accessGuard, cfg.Http)

	httpSrv := v1Http.NewServer(r, cfg.Http)
	appCloser.Add(httpSrv.Stop)

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP server started on port %s (env: %s)", cfg.Http.Port, cfg.Http.AppEnv)
		if err := httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	// === Graceful shutdown (LIFO: сервер, продюсер, redis, mongo) ===
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := appCloser.Close(shutdownCtx); err != nil {
		logger.Warnf("shutdown finished with errors: %v", err)
	} else {
		logger.Infof("Application shutdown complete")
	}

	return appErr
}
