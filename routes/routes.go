package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/sharath018/potluck-rsvp-backend/config"
	"github.com/sharath018/potluck-rsvp-backend/database"
	"github.com/sharath018/potluck-rsvp-backend/internal/auditlog"
	"github.com/sharath018/potluck-rsvp-backend/internal/auth"
	"github.com/sharath018/potluck-rsvp-backend/internal/category"
	"github.com/sharath018/potluck-rsvp-backend/internal/guest"
	"github.com/sharath018/potluck-rsvp-backend/internal/notification"
	"github.com/sharath018/potluck-rsvp-backend/internal/reports"
	"github.com/sharath018/potluck-rsvp-backend/internal/rsvp"
	"github.com/sharath018/potluck-rsvp-backend/middleware"
	"github.com/sharath018/potluck-rsvp-backend/utils"

	_ "github.com/sharath018/potluck-rsvp-backend/docs"
)

// Deps are the services built in main that routes share.
type Deps struct {
	AuditSvc        auditlog.Service
	AuthSvc         auth.Service
	NotificationSvc notification.Service
	// Publish delivers rsvp.submitted events, Kafka or in-process.
	Publish rsvp.PublishFunc
}

func Setup(r *gin.Engine, cfg *config.Config, deps Deps) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter(cfg.RateLimitPerMinute, utils.RedisClient))
	api.Use(middleware.AuditMiddleware())

	// ========== Read models ==========
	categoryRepo := category.NewRepository(database.DB)
	guestRepo := guest.NewRepository(database.DB)

	views := rsvp.NewViewService(categoryRepo, guestRepo, rsvp.EventInfo{
		Title: cfg.EventTitle,
		When:  cfg.EventWhen,
		Where: cfg.EventWhere,
	}, time.Duration(cfg.OverviewCacheSecs)*time.Second)
	invalidate := func(ctx context.Context) { views.Invalidate(ctx) }

	// ========== Services ==========
	categorySvc := category.NewService(categoryRepo, deps.AuditSvc)
	categorySvc.OnChange = invalidate
	categoryHandler := category.NewHandler(categorySvc)

	guestSvc := guest.NewService(guestRepo, deps.AuditSvc)
	guestSvc.OnChange = invalidate
	guestHandler := guest.NewHandler(guestSvc)

	rsvpSvc := rsvp.NewService(guestRepo, categoryRepo)
	rsvpSvc.OnChange = invalidate
	rsvpSvc.Publish = deps.Publish
	rsvpHandler := rsvp.NewHandler(rsvpSvc, views)

	reportSvc := reports.NewReportService(views, reports.NewExporter(cfg.Location()), deps.AuditSvc, cfg.Location())
	reportHandler := reports.NewHandler(reportSvc)

	auditHandler := auditlog.NewHandler(deps.AuditSvc)
	authHandler := auth.NewHandler(deps.AuthSvc)
	notificationHandler := notification.NewHandler(deps.NotificationSvc)

	// ========== Public ==========
	api.GET("/registration", rsvpHandler.Registration)
	api.GET("/overview", rsvpHandler.Overview)
	api.GET("/confirmation", rsvpHandler.Confirmation)
	api.POST("/rsvp", middleware.SubmitLimiter(cfg.SubmitLimitPerMin, utils.RedisClient), rsvpHandler.Submit)

	// ========== Auth ==========
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
	}

	// ========== Admin ==========
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg, deps.AuthSvc))
	{
		admin.GET("/me", authHandler.Me)
		admin.PUT("/password", authHandler.ChangePassword)

		admin.GET("/dashboard", rsvpHandler.Dashboard)
		admin.GET("/export", reportHandler.Export)

		admin.GET("/categories", categoryHandler.ListCategories)
		admin.POST("/categories", categoryHandler.CreateCategory)
		admin.GET("/categories/:id", categoryHandler.GetCategory)
		admin.PUT("/categories/:id", categoryHandler.UpdateCategory)
		admin.PATCH("/categories/:id/quota", categoryHandler.UpdateQuota)
		admin.POST("/categories/:id/deactivate", categoryHandler.DeactivateCategory)

		admin.GET("/guests", guestHandler.ListGuests)
		admin.GET("/guests/:id", guestHandler.GetGuest)
		admin.PUT("/guests/:id", guestHandler.UpdateGuest)
		admin.DELETE("/guests/:id", guestHandler.DeleteGuest)
		admin.POST("/guests/:id/items", guestHandler.AddItem)
		admin.PUT("/items/:itemId", guestHandler.UpdateItem)
		admin.DELETE("/items/:itemId", guestHandler.DeleteItem)

		admin.GET("/auditlogs", auditHandler.GetAuditLogs)
		admin.GET("/auditlogs/stats", auditHandler.GetAuditLogStats)
		admin.GET("/auditlogs/:id", auditHandler.GetAuditLogByID)

		admin.GET("/notifications", notificationHandler.ListLogs)
	}
}
