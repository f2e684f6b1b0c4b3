package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bizhub/config"
	"bizhub/cron"
	"bizhub/database"
	boardRepo "bizhub/database/repository/board"
	businessRepo "bizhub/database/repository/business"
	catalogRepo "bizhub/database/repository/catalog"
	requestsRepo "bizhub/database/repository/requests"
	"bizhub/handlers"
	"bizhub/middleware"
	"bizhub/routes"
	"bizhub/services/actions"
	"bizhub/services/availability"
	"bizhub/services/board"
	"bizhub/services/catalog"
	"bizhub/services/notification"
	"bizhub/services/payments"
	"bizhub/services/requests"
	"bizhub/services/wizard"
	"bizhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	sessionCache := utils.GetSessionCacheClient()

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()
	utils.StartHealthMonitor(rootCtx, sessionCache, database.MongoClient)

	// repositories.
	businesses := businessRepo.NewMongoBusinessRepo()
	catalogStore := catalogRepo.NewMongoCatalogRepo()
	requestStore := requestsRepo.NewMongoRequestRepo()
	actionStore := boardRepo.NewMongoBoardRepo()

	// integrations.
	var direct *notification.DefaultNotificationService
	fcm, err := utils.FirebaseMessaging(rootCtx)
	if err != nil {
		logger.Warn("main: push notifications disabled", zap.Error(err))
	}
	if fcm != nil {
		direct = notification.NewDefaultNotificationService(fcm, logger)
	} else {
		direct = notification.NewDefaultNotificationService(nil, logger)
	}
	var notifier notification.NotificationService = direct
	var pushWorker *asynq.Server
	if config.AppConfig.PushQueueEnabled {
		queue := asynq.NewClient(cron.RedisOpt())
		defer queue.Close()
		notifier = notification.NewQueuedNotificationService(queue, logger)
		pushWorker = cron.StartPushWorker(cron.PushDeps{
			Notifier:   direct,
			Businesses: businesses,
			Requests:   requestStore,
			Actions:    actionStore,
			Logger:     logger,
		})
	}

	boardSvc := &board.DefaultBoardService{
		Registry:   actions.Bootstrap(logger),
		Actions:    actionStore,
		Businesses: businesses,
		Notifier:   notifier,
		Logger:     logger,
	}
	if key := config.AppConfig.StripeKey; key != "" {
		paymentSvc, err := payments.NewStripePaymentService(key, logger)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize stripe: %v", err)
		}
		boardSvc.Payments = paymentSvc
	} else {
		logger.Warn("main: STRIPE_KEY not set, payment requests are disabled")
	}
	if storageSvc, err := utils.Cloudinary(logger); err != nil {
		logger.Warn("main: document uploads disabled", zap.Error(err))
	} else {
		boardSvc.Storage = storageSvc
	}

	// services.
	catalogSvc := &catalog.DefaultCatalogService{
		Businesses: businesses,
		Catalog:    catalogStore,
		Logger:     logger,
	}
	boardSvc.Options = catalogSvc

	availabilitySvc := &availability.DefaultAvailabilityService{
		Businesses: businesses,
		Events:     catalogStore,
		Requests:   requestStore,
		Interval:   time.Duration(config.AppConfig.SlotIntervalMinute) * time.Minute,
		Logger:     logger,
	}
	requestSvc := &requests.DefaultRequestService{
		Businesses:          businesses,
		Catalog:             catalogStore,
		Requests:            requestStore,
		Notifier:            notifier,
		ConfirmationBaseURL: config.AppConfig.ConfirmationBaseURL,
		Logger:              logger,
	}
	wizardSvc := &wizard.DefaultWizardService{
		Catalog:  catalogSvc,
		Requests: requestSvc,
		Store:    wizard.NewRedisSessionStore(sessionCache, time.Duration(config.AppConfig.SessionTTLMinutes)*time.Minute),
		Logger:   logger,
	}

	// Assemble the handler bundle.
	handlerBundle := handlers.NewHandlerBundle(
		handlers.NewCatalogHandler(catalogSvc),
		handlers.NewAvailabilityHandler(availabilitySvc),
		handlers.NewRequestHandler(requestSvc),
		handlers.NewWizardHandler(wizardSvc),
		handlers.NewBoardHandler(boardSvc, boardSvc.Registry, config.AppConfig.MaxUploadBytes),
	)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin, logger))
	routes.RegisterRoutes(router, handlerBundle)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	if pushWorker != nil {
		pushWorker.Shutdown()
	}
	if err := database.MongoClient.Disconnect(ctx); err != nil {
		logger.Warn("main: mongo disconnect failed", zap.Error(err))
	}
	_ = logger.Sync()
	logger.Sugar().Info("main: server stopped gracefully")
}
