package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"lastmile/cmd"
	lmhttp "lastmile/internal/adapters/in/http"
	"lastmile/internal/adapters/out/blob"
	"lastmile/internal/adapters/out/notification"
	"lastmile/internal/adapters/out/postgres/orderrepo"
	"lastmile/internal/adapters/out/postgres/podrepo"
	"lastmile/internal/adapters/out/postgres/positionrepo"
	"lastmile/internal/adapters/out/postgres/routerepo"
	"lastmile/internal/adapters/out/postgres/stopeventrepo"
	"lastmile/internal/jobs"
	"lastmile/internal/pkg/metrics"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)

	blobStorage, err := blob.NewGCSBlobStorage(context.Background(), configs.BlobBucket)
	if err != nil {
		log.Fatalf("Failed to create blob storage: %v", err)
	}
	defer func() { _ = blobStorage.Close() }()

	notifier := notification.NewHTTPSender(configs.PodEmailURL)

	app := cmd.NewCompositionRoot(configs, gormDB, blobStorage, notifier, logger)

	jobManager := jobs.NewJobManager(app.CreateRecountRouteProgressCommandHandler(), logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),

		JWTSecret:   goDotEnvVariable("JWT_SECRET"),
		BlobBucket:  goDotEnvVariable("BLOB_BUCKET"),
		PodEmailURL: goDotEnvVariable("POD_EMAIL_URL"),

		EnablePodEmail:    envFlag("ENABLE_POD_EMAIL"),
		EnableDispatchMap: envFlag("ENABLE_DISPATCH_MAP"),
		AtomicCompletion:  envFlag("POD_ATOMIC_COMPLETION"),
		StrictStatusGuard: envFlag("STRICT_STATUS_GUARD"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func envFlag(key string) bool {
	value, err := strconv.ParseBool(goDotEnvVariable(key))
	if err != nil {
		return false
	}
	return value
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&routerepo.RouteDTO{},
		&orderrepo.OrderDTO{},
		&podrepo.PodDTO{},
		&stopeventrepo.StopEventDTO{},
		&positionrepo.DriverPositionDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config) {
	e := echo.New()
	e.Use(lmhttp.MetricsMiddleware())
	metrics.Register()

	server := lmhttp.NewServer(
		app.CreateCompleteDeliveryCommandHandler(),
		app.CreateFailDeliveryCommandHandler(),
		app.CreateRecordArrivalCommandHandler(),
		app.CreateRecordDriverPositionCommandHandler(),
		app.CreateGetDispatchSnapshotQueryHandler(),
	)
	server.RegisterRoutes(e, []byte(configs.JWTSecret))

	e.GET("/metrics", echo.WrapHandler(
		promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}),
	))

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
