package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/database"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/config"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/email"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/handlers"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/logger"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/metrics"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/middleware"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/payments"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/repositories"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/routes"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/services"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/validator"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/workers"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/ws"
)

// Run - точка входа приложения: конфиг, БД, миграции, сервисы, роутер, воркеры.
func Run() error {
	config.LoadConfig()
	cfg := config.GetConfig()

	logger.Init(cfg.Server.Env)

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("database connect: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("database migrate: %w", err)
	}

	collector := metrics.NewDefaultCollector()
	container, hub := BuildServices(db, collector)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	worker := workers.NewSubscriptionWorker(db,
		repositories.NewUserRepository(),
		repositories.NewProfessionalRepository(),
		time.Hour)
	go worker.Run(ctx)

	router := SetupRouter(db, container, hub)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "addr", addr, "env", cfg.Server.Env)
	return router.Run(addr)
}

// BuildServices собирает весь граф сервисов. Используется и приложением,
// и интеграционными тестами.
func BuildServices(db *gorm.DB, collector *metrics.Collector) (*services.ServiceContainer, *ws.Hub) {
	cfg := config.GetConfig()

	userRepo := repositories.NewUserRepository()
	professionalRepo := repositories.NewProfessionalRepository()
	hireRepo := repositories.NewHireRepository()
	chatRepo := repositories.NewChatRepository()
	reviewRepo := repositories.NewReviewRepository()
	notificationRepo := repositories.NewNotificationRepository()
	paymentRepo := repositories.NewPaymentRepository()

	emailProvider := email.NewProvider(cfg)
	paymentProvider := payments.NewMercadoPago(cfg)
	hub := ws.NewHub(collector)

	notificationService := services.NewNotificationService(notificationRepo, userRepo, emailProvider, collector)

	container := &services.ServiceContainer{
		Auth:          services.NewAuthService(userRepo, professionalRepo),
		User:          services.NewUserService(userRepo, professionalRepo),
		Hire:          services.NewHireService(hireRepo, professionalRepo, notificationService, collector),
		Chat:          services.NewChatService(chatRepo, userRepo, hub, notificationService, collector),
		Review:        services.NewReviewService(reviewRepo, hireRepo, professionalRepo, notificationService, collector),
		Subscription:  services.NewSubscriptionService(userRepo, professionalRepo, paymentRepo, paymentProvider),
		Notifications: notificationService,
	}
	return container, hub
}

// SetupRouter настраивает gin-роутер с полной цепочкой middleware.
func SetupRouter(db *gorm.DB, container *services.ServiceContainer, hub *ws.Hub) *gin.Engine {
	cfg := config.GetConfig()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))

	appHandlers := handlers.NewAppHandlers(container, hub, validator.New())
	routes.Setup(router, appHandlers)

	return router
}
