// File: servio/main.go
package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"servio/config"
	"servio/cron"
	"servio/database"
	bookingRepo "servio/database/repository/booking"
	providerRepo "servio/database/repository/provider"
	serviceRepo "servio/database/repository/service"
	userRepo "servio/database/repository/user"
	"servio/handlers"
	"servio/routes"
	"servio/services/booking"
	"servio/services/notification"
	"servio/services/provider"
	"servio/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync() //nolint:errcheck

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database.InitDB()
	defer database.Disconnect(5 * time.Second)
	utils.InitLockClient()
	db := database.DB()

	// repositories.
	provRepo := providerRepo.NewMongoProviderRepo(db)
	svcRepo := serviceRepo.NewMongoServiceRepo(db)
	bkRepo := bookingRepo.NewMongoBookingRepo(db)
	usrRepo := userRepo.NewMongoUserRepo(db)

	for name, repo := range map[string]indexer{
		"providers": provRepo,
		"services":  svcRepo,
		"bookings":  bkRepo,
		"users":     usrRepo,
	} {
		idxCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		if err := repo.EnsureIndexes(idxCtx); err != nil {
			logger.Fatal("main: failed to ensure indexes", zap.String("collection", name), zap.Error(err))
		}
		cancel()
	}

	// notifications.
	asynqClient := asynq.NewClient(cron.RedisOpt())
	publisher := notification.NewAsynqPublisher(asynqClient, logger)
	defer publisher.Close()

	var worker *asynq.Server
	if config.AppConfig.WorkerEnabled {
		inbox := notification.NewInboxSender(usrRepo, logger)
		sender := notification.NewBreakerSender(inbox, notification.DefaultBreakerConfig(), logger)
		worker = cron.InitNotificationWorker(ctx, sender, logger)
	}

	// services.
	lockTTL := config.AppConfig.ProviderLockTTL
	if lockTTL <= 0 {
		lockTTL = utils.DefaultProviderLockTTL
	}
	locker := utils.NewRedisLocker(utils.GetLockClient(), lockTTL)

	bookingService := booking.NewDefaultBookingService(
		provRepo,
		svcRepo,
		bkRepo,
		locker,
		publisher,
		logger,
		config.ExtendIncrement(),
	)
	availabilityService, err := provider.NewDefaultAvailabilityService(provRepo, logger)
	if err != nil {
		logger.Fatal("main: failed to build availability service", zap.Error(err))
	}

	utils.StartHealthMonitor(ctx, utils.GetLockClient(), database.MongoClient, 30*time.Second)

	handlerBundle := handlers.NewHandlerBundle(bookingService, availabilityService)
	router := routes.NewRouter(handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if worker != nil {
		worker.Shutdown()
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
