package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sharath018/potluck-rsvp-backend/config"
	"github.com/sharath018/potluck-rsvp-backend/database"
	"github.com/sharath018/potluck-rsvp-backend/internal/auditlog"
	"github.com/sharath018/potluck-rsvp-backend/internal/auth"
	"github.com/sharath018/potluck-rsvp-backend/internal/category"
	"github.com/sharath018/potluck-rsvp-backend/internal/guest"
	"github.com/sharath018/potluck-rsvp-backend/internal/notification"
	"github.com/sharath018/potluck-rsvp-backend/routes"
	"github.com/sharath018/potluck-rsvp-backend/utils"
)

// @title Potluck RSVP API
// @version 1.0
// @description Registration, contribution quotas and admin tools for a potluck party.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg.GinMode); err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer utils.SyncLogger()

	gin.SetMode(cfg.GinMode)
	db := database.Connect(cfg)

	// Init Redis
	if err := utils.InitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		utils.Log.Fatal("redis init failed", zap.Error(err))
	}

	// Init Kafka
	utils.InitializeKafka(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer utils.CloseKafka()

	// Auto-migrate models
	utils.Log.Info("running database migrations")
	if err := db.AutoMigrate(
		&category.Category{},
		&guest.Guest{},
		&guest.ContributionItem{},
		&auth.User{},
		&auditlog.AuditLog{},
		&notification.NotificationLog{},
	); err != nil {
		utils.Log.Fatal("DB AutoMigrate failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init repositories & services
	auditSvc := auditlog.NewService(auditlog.NewRepository(db))
	authSvc := auth.NewService(auth.NewRepository(db), cfg, auditSvc)

	mailer := utils.NewMailer(utils.SMTPSettings{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUsername,
		Password:  cfg.SMTPPassword,
		FromName:  cfg.SMTPFromName,
		FromEmail: cfg.SMTPFromEmail,
	})
	notificationSvc := notification.NewService(notification.NewRepository(db), mailer, cfg.OrganizerEmail, cfg.Location())

	// Seed organizer account & default categories
	if cfg.AdminEmail != "" {
		if err := authSvc.SeedAdmin(cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName); err != nil {
			utils.Log.Fatal("failed to seed admin", zap.Error(err))
		}
	} else {
		utils.Log.Warn("ADMIN_EMAIL not set, no admin account seeded")
	}
	if err := category.NewService(category.NewRepository(db), auditSvc).SeedDefaults(ctx); err != nil {
		utils.Log.Fatal("failed to seed categories", zap.Error(err))
	}

	// Events go through Kafka when brokers are configured, otherwise the
	// organizer is notified in-process.
	deps := routes.Deps{
		AuditSvc:        auditSvc,
		AuthSvc:         authSvc,
		NotificationSvc: notificationSvc,
		Publish:         notificationSvc.Publish,
	}
	if cfg.KafkaEnabled() {
		deps.Publish = utils.PublishEvent
		consumer := notification.NewConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaGroupID, notificationSvc)
		go consumer.Run(ctx)
		defer consumer.Close()
	}

	// Setup Gin router
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.ProxyList()); err != nil {
		utils.Log.Fatal("invalid TRUSTED_PROXIES", zap.Error(err))
	}
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Idempotency-Key"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Setup(router, cfg, deps)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.Log.Info("server listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	utils.Log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Log.Error("graceful shutdown failed", zap.Error(err))
	}
}
