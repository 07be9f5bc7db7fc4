package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/navarrastar/appointment-intake/pkg/api"
	"github.com/navarrastar/appointment-intake/pkg/clients/webhook"
	"github.com/navarrastar/appointment-intake/pkg/config"
	"github.com/navarrastar/appointment-intake/pkg/logging"
	"github.com/navarrastar/appointment-intake/pkg/metrics"
	"github.com/navarrastar/appointment-intake/pkg/middleware"
	"github.com/navarrastar/appointment-intake/pkg/services"
	"github.com/navarrastar/appointment-intake/pkg/validation"
)

func main() {
	envErr := godotenv.Load()

	// Initialize configuration
	cfg := config.LoadConfig()
	logger := logging.New(cfg.LogLevel)
	if envErr != nil {
		logger.Debug("no .env file loaded", "error", envErr)
	}

	if !cfg.Destinations.PrimaryConfigured() {
		logger.Warn("appointment inbox endpoint not set; submissions will fail until APPOINTMENT_INBOX_URL or FORMSPREE_ENDPOINT is configured")
	}
	logger.Info("destinations resolved",
		"crm_enabled", cfg.Destinations.CRMEndpoint != "",
		"slack_enabled", cfg.Destinations.SlackEndpoint != "",
	)

	// Initialize services
	intakeMetrics := metrics.NewIntakeMetrics(prometheus.DefaultRegisterer)
	dispatcher := services.NewDispatcher(cfg.Destinations, webhook.NewClient(nil), logger, intakeMetrics)
	intakeService := services.NewIntakeService(validation.New(), dispatcher, logger, intakeMetrics)

	gin.SetMode(cfg.GinMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	handlers := api.NewHandlers(intakeService, logger)
	api.RegisterRoutes(router, handlers, promhttp.Handler())

	// Start the server
	logger.Info("server starting", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Error("error starting server", "error", err)
		os.Exit(1)
	}
}
