package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Dojohubcloud/Ossjiujitsu/internal/advisor"
	"github.com/Dojohubcloud/Ossjiujitsu/internal/handler"
	"github.com/Dojohubcloud/Ossjiujitsu/internal/messaging"
	"github.com/Dojohubcloud/Ossjiujitsu/internal/middleware"
	"github.com/Dojohubcloud/Ossjiujitsu/internal/service"
	"github.com/Dojohubcloud/Ossjiujitsu/internal/store"
	"github.com/Dojohubcloud/Ossjiujitsu/pkg/config"
	"github.com/Dojohubcloud/Ossjiujitsu/pkg/logger"
	corsmiddleware "github.com/Dojohubcloud/Ossjiujitsu/pkg/middleware/cors"
	reqidmiddleware "github.com/Dojohubcloud/Ossjiujitsu/pkg/middleware/requestid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics := service.NewMetricsService()

	docStore, err := store.Open(cfg.Store.DataFile, store.Defaults{
		AcademyName:    cfg.Academy.Name,
		MasterPassword: cfg.Academy.MasterPassword,
	}, logr, store.WithObserver(metrics))
	if err != nil {
		logr.Sugar().Fatalw("failed to open data store", "error", err)
	}

	validate := validator.New()
	sessions := service.NewSessionManager()
	links := messaging.NewLinkBuilder(cfg.Messaging.CountryCode)
	gemini := advisor.NewClient(cfg.Advisor.BaseURL, cfg.Advisor.Model, cfg.Advisor.APIKey, cfg.Advisor.Timeout, logr)

	authSvc := service.NewAuthService(docStore, sessions, logr)
	studentSvc := service.NewStudentService(docStore, validate, logr, cfg.Academy.DefaultMonthlyFee)
	attendanceSvc := service.NewAttendanceService(docStore, logr, cfg.Academy.DefaultClassType)
	paymentSvc := service.NewPaymentService(docStore, links, logr)
	staffSvc := service.NewStaffService(docStore, validate, logr)
	announcementSvc := service.NewAnnouncementService(docStore, validate, logr)
	settingsSvc := service.NewSettingsService(docStore, validate, logr)
	backupSvc := service.NewBackupService(docStore, logr)
	dashboardSvc := service.NewDashboardService(docStore)
	reportSvc := service.NewReportService(docStore)
	advisorSvc := service.NewAdvisorService(docStore, gemini, metrics, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	studentHandler := handler.NewStudentHandler(studentSvc)
	attendanceHandler := handler.NewAttendanceHandler(attendanceSvc)
	paymentHandler := handler.NewPaymentHandler(paymentSvc)
	staffHandler := handler.NewStaffHandler(staffSvc)
	announcementHandler := handler.NewAnnouncementHandler(announcementSvc)
	settingsHandler := handler.NewSettingsHandler(settingsSvc)
	backupHandler := handler.NewBackupHandler(backupSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	reportHandler := handler.NewReportHandler(reportSvc)
	advisorHandler := handler.NewAdvisorHandler(advisorSvc)
	metricsHandler := handler.NewMetricsHandler(metrics)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	auth.POST("/admin/login", authHandler.AdminLogin)
	auth.POST("/staff/login", authHandler.StaffLogin)

	authed := api.Group("")
	authed.Use(middleware.Session(sessions))
	authed.POST("/auth/logout", authHandler.Logout)
	authed.GET("/auth/me", authHandler.Me)

	authed.GET("/students", studentHandler.List)
	authed.POST("/students", studentHandler.Enroll)
	authed.DELETE("/students/:id", studentHandler.Remove)
	authed.GET("/students/:id/reminder-link", paymentHandler.ReminderLink)

	authed.GET("/attendance/today", attendanceHandler.Today)
	authed.POST("/attendance/toggle", attendanceHandler.Toggle)

	authed.GET("/payments", paymentHandler.List)
	authed.POST("/payments/:id/settle", paymentHandler.Settle)

	authed.GET("/announcements", announcementHandler.List)
	authed.GET("/dashboard", dashboardHandler.Summary)

	authed.POST("/advisor/ask", advisorHandler.Ask)
	authed.GET("/advisor/insights", advisorHandler.Insights)

	admin := api.Group("")
	admin.Use(middleware.Session(sessions), middleware.AdminOnly())
	admin.GET("/staff", staffHandler.List)
	admin.POST("/staff", staffHandler.Register)
	admin.POST("/staff/:id/toggle-lock", staffHandler.ToggleLock)

	admin.POST("/announcements", announcementHandler.Post)
	admin.DELETE("/announcements/:id", announcementHandler.Delete)

	admin.GET("/settings", settingsHandler.Get)
	admin.PUT("/settings", settingsHandler.Update)

	admin.GET("/backup/export", backupHandler.Export)
	admin.POST("/backup/import", backupHandler.Import)

	admin.GET("/reports/roster", reportHandler.Roster)
	admin.GET("/reports/finance", reportHandler.Finance)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting",
		"addr", addr,
		"env", cfg.Env,
		"data_file", docStore.Path(),
		"advisor_configured", gemini.Configured(),
	)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
