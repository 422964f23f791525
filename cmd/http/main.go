package main

import (
	"context"
	"flexera-service/internal/app/config"
	"flexera-service/internal/app/delivery/http/controllers"
	"flexera-service/internal/app/delivery/http/middlewares"
	"flexera-service/internal/app/delivery/http/routers"
	"flexera-service/internal/app/drivers/database"
	"flexera-service/internal/app/drivers/logger"
	"flexera-service/internal/app/drivers/messaging"
	"flexera-service/internal/app/services/core/bookings"
	"flexera-service/internal/app/services/core/practitioners"
	"flexera-service/internal/app/services/core/schedules"
	"flexera-service/internal/app/services/core/slots"
	"flexera-service/internal/app/services/core/webhook"
	"flexera-service/internal/app/services/shared/events"
	"flexera-service/internal/app/services/shared/locker"
	paymentgateway "flexera-service/internal/app/services/shared/payment_gateway"
	redisrepo "flexera-service/internal/app/services/shared/redis"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatal("failed to load timezone", zap.Error(err))
	}
	time.Local = location

	mongoClient := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitConn := messaging.NewRabbitMQ(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		MongoClient:    mongoClient,
		Redis:          redisClient,
		RabbitMQ:       rabbitConn,
		Logger:         log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	bootstrapTheApp(&bootstrap)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed to start", zap.Error(err))
		}
	}()
	log.Info("server started", zap.String("addr", internalConfig.App.Port))

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c
	log.Info("shutdown signal received, draining in-flight requests")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to close resources cleanly", zap.Error(err))
	}

	log.Info("server exiting")
}

func bootstrapTheApp(bootstrap *config.Bootstrap) {
	log := bootstrap.Logger

	// Shared infrastructure
	redisRepository := redisrepo.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, log)
	eventPublisher := events.NewRabbitMQPublisher(bootstrap.RabbitMQ, bootstrap.InternalConfig.App.BookingEventsQueue, log)
	paymentGateway := paymentgateway.NewPaymobService(bootstrap.InternalConfig, redisRepository, log)

	// Middlewares
	middlewares := middlewares.New(log, bootstrap.InternalConfig)

	// Repositories
	scheduleRepository := schedules.NewScheduleMongoRepository(bootstrap.MongoClient, bootstrap.DriverConfig.MongoDB.DbName)
	practitionerRepository := practitioners.NewPractitionerMongoRepository(bootstrap.MongoClient, bootstrap.DriverConfig.MongoDB.DbName)

	if repo, ok := scheduleRepository.(*schedules.ScheduleMongoRepository); ok {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Fatal("failed to ensure schedule indexes", zap.Error(err))
		}
	}

	// Usecases
	slotUsecase := slots.NewSlotUsecase(scheduleRepository, eventPublisher, bootstrap.InternalConfig, log)
	scheduleUsecase := schedules.NewScheduleUsecase(scheduleRepository, log)
	bookingUsecase := bookings.NewBookingUsecase(practitionerRepository, slotUsecase, paymentGateway, log)
	webhookUsecase := webhook.NewWebhookUsecase(slotUsecase, bootstrap.InternalConfig, log)

	// Controllers
	scheduleController := controllers.NewScheduleController(scheduleUsecase, log)
	bookingController := controllers.NewBookingController(bookingUsecase, log)
	webhookController := controllers.NewWebhookController(webhookUsecase, log)

	// Expiry sweep worker
	sweepWorker := slots.NewWorker(log, bootstrap.InternalConfig, lockerService, slotUsecase)
	sweepWorker.Start(context.Background())
	bootstrap.SweepWorkerStop = sweepWorker.Stop

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		middlewares,
		scheduleController,
		bookingController,
		webhookController,
	)
}
