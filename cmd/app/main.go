package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"fulfillment/cmd"
	httpadapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/jobs"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configs := getConfigs(logger)

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := postgres.Open(dsn)
	if err != nil {
		logger.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	if err = postgres.Migrate(db); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	app := cmd.NewCompositionRoot(configs, db, logger)
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Error("failed to close composition root", "error", closeErr)
		}
	}()

	jobManager := jobs.NewJobManager(
		app.CreateApprovePendingOrdersCommandHandler(),
		configs.AutoApprovalCron,
		logger,
	)
	if err = jobManager.StartAll(); err != nil {
		logger.Error("failed to start jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs(logger *slog.Logger) cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.Warn("no .env file found, reading configuration from environment")
	}

	return cmd.Config{
		HTTPPort:              envOrDefault("HTTP_PORT", "8080"),
		DBHost:                os.Getenv("DB_HOST"),
		DBPort:                envOrDefault("DB_PORT", "5432"),
		DBUser:                os.Getenv("DB_USER"),
		DBPassword:            os.Getenv("DB_PASSWORD"),
		DBName:                os.Getenv("DB_NAME"),
		DBSslMode:             envOrDefault("DB_SSLMODE", "disable"),
		KafkaHost:             os.Getenv("KAFKA_HOST"),
		KafkaOrderEventsTopic: envOrDefault("KAFKA_ORDER_EVENTS_TOPIC", "order.events"),
		InventoryServiceURL:   os.Getenv("INVENTORY_SERVICE_URL"),
		BillingServiceURL:     os.Getenv("BILLING_SERVICE_URL"),
		ApprovalWindow:        durationOrDefault("APPROVAL_WINDOW", 24*time.Hour, logger),
		AutoApprovalCron:      envOrDefault("AUTO_APPROVAL_CRON", "0 * * * * *"),
		AdminIDs:              splitNonEmpty(os.Getenv("ADMIN_IDS")),
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func durationOrDefault(key string, fallback time.Duration, logger *slog.Logger) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		logger.Warn("malformed duration in environment, using default", "key", key, "value", raw)
		return fallback
	}
	return d
}

func splitNonEmpty(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.Use(middleware.Recover())

	server := httpadapter.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateTransitionStatusCommandHandler(),
		app.CreateAssignAgentCommandHandler(),
		app.CreateBulkAssignCommandHandler(),
		app.CreateAgentResponseCommandHandler(),
		app.CreateCancelOrderCommandHandler(),
		app.CreateApproveOrderCommandHandler(),
		app.CreateRecordAgentArrivalCommandHandler(),
		app.CreateCreateAgentCommandHandler(),
		app.CreateGetOrderByNumberQueryHandler(),
		app.CreateGetAssignableOrdersQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
