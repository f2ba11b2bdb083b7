package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/promoshare/promocode-backend/internal/config"
	"github.com/promoshare/promocode-backend/internal/db"
	httpHandlers "github.com/promoshare/promocode-backend/internal/http/handlers"
	httpRouter "github.com/promoshare/promocode-backend/internal/http/router"
	"github.com/promoshare/promocode-backend/internal/logger"
	"github.com/promoshare/promocode-backend/internal/mailer"
	"github.com/promoshare/promocode-backend/internal/repository"
	"github.com/promoshare/promocode-backend/internal/service"
	"github.com/promoshare/promocode-backend/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	logLevel := "info"
	if cfg.Env == "development" {
		logLevel = "debug"
		logger.Init(logLevel)
		logger.SetTextFormatter()
	} else {
		logger.Init(logLevel)
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	// Вспомогательные сервисы.
	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.RefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	var contactMailer mailer.Mailer
	if cfg.SMTPHost != "" && cfg.ContactEmail != "" {
		contactMailer = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.ContactFrom, cfg.ContactEmail)
	} else {
		contactMailer = mailer.NewLogMailer()
	}
	cache := service.NewCacheService()

	// Репозитории.
	userRepo := repository.NewUserRepository(dbConn)
	promocodeRepo := repository.NewPromocodeRepository(dbConn)
	reportRepo := repository.NewReportRepository(dbConn)

	// Сервисы.
	authService := service.NewAuthService(userRepo, tokenManager)
	promocodeService := service.NewPromocodeService(promocodeRepo, reportRepo)
	moderationService := service.NewModerationService(reportRepo, promocodeRepo, promocodeRepo, cache)

	// Вебсокеты панели модерации.
	hub := ws.NewHub()
	go hub.Run()
	moderationService.SetNotifier(hub)

	// HTTP хэндлеры.
	authHandler := httpHandlers.NewAuthHandler(authService)
	catalogHandler := httpHandlers.NewCatalogHandler(promocodeService)
	promocodeHandler := httpHandlers.NewPromocodeHandler(promocodeService)
	reportHandler := httpHandlers.NewReportHandler(moderationService)
	adminHandler := httpHandlers.NewAdminHandler(moderationService, promocodeService)
	contactHandler := httpHandlers.NewContactHandler(contactMailer)
	wsHandler := httpHandlers.NewWSHandler(hub, tokenManager)
	healthHandler := httpHandlers.NewHealthHandler(dbConn)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, authHandler, catalogHandler, promocodeHandler, reportHandler, adminHandler, contactHandler, wsHandler, healthHandler, tokenManager)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
