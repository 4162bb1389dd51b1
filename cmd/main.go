package main

import (
	"net/http"

	"rentman-service/internal/handler"
	mid "rentman-service/internal/middleware"
	"rentman-service/pkg/config"
	"rentman-service/pkg/database"
	"rentman-service/pkg/jwtutil"
	"rentman-service/pkg/logger"
	"rentman-service/prometheus"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load .env file; fall back to real environment variables when absent
	_ = godotenv.Load()

	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting rentman-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database ready", zap.String("path", appConfig.Database.Path))

	e := echo.New()

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: appConfig.Server.AllowedOrigins,
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(mid.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(mid.MetricsMiddleware)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", handler.HealthCheck)

	auth := e.Group("/auth")
	auth.POST("/register", handler.Register)
	auth.POST("/login", handler.Login)

	api := e.Group("/api", mid.AuthMiddleware)

	tenants := api.Group("/tenants")
	tenants.GET("", handler.ListTenants)
	tenants.POST("", handler.CreateTenant)
	tenants.GET("/active", handler.GetActiveTenants)
	tenants.GET("/archived", handler.GetArchivedTenants)
	tenants.GET("/search", handler.SearchTenants)
	tenants.GET("/pending-payments", handler.GetPendingPayments)
	tenants.GET("/:id", handler.GetTenant)
	tenants.PUT("/:id", handler.UpdateTenant)
	tenants.DELETE("/:id", handler.DeleteTenant)
	tenants.POST("/:id/archive", handler.ArchiveTenant)
	tenants.POST("/:id/unarchive", handler.UnarchiveTenant)
	tenants.GET("/:id/financial-summary", handler.GetTenantFinancialSummary)
	tenants.POST("/:id/files", handler.UploadTenantFile)
	tenants.GET("/:id/files", handler.ListTenantFiles)

	rentLogs := api.Group("/rent-logs")
	rentLogs.GET("", handler.ListRentLogs)
	rentLogs.POST("", handler.CreateRentLog)
	rentLogs.GET("/recent", handler.GetRecentRentLogs)
	rentLogs.GET("/current-month", handler.GetCurrentMonthRentLogs)
	rentLogs.GET("/search", handler.SearchRentLogs)
	rentLogs.GET("/collector/:name", handler.GetRentLogsByCollector)
	rentLogs.GET("/tenant/:tenantId", handler.GetRentLogsByTenant)
	rentLogs.POST("/dashboard-stats", handler.GetDashboardStats)
	rentLogs.POST("/monthly-stats", handler.GetMonthlyStats)
	rentLogs.POST("/date-range", handler.GetRentLogsByDateRange)
	rentLogs.GET("/:id", handler.GetRentLog)
	rentLogs.PUT("/:id", handler.UpdateRentLog)
	rentLogs.DELETE("/:id", handler.DeleteRentLog)
	rentLogs.POST("/:id/files", handler.UploadRentLogFile)
	rentLogs.GET("/:id/files", handler.ListRentLogFiles)

	collectors := api.Group("/rent-collectors")
	collectors.GET("", handler.ListCollectors)
	collectors.POST("", handler.CreateCollector)
	collectors.PUT("/:id", handler.UpdateCollector)
	collectors.DELETE("/:id", handler.DeleteCollector)

	settings := api.Group("/settings")
	settings.GET("", handler.GetSettings)
	settings.PUT("", handler.UpdateSettings)

	api.DELETE("/files/:id", handler.DeleteFile)

	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
		log.Fatal("Server error", zap.Error(err))
	}
}
