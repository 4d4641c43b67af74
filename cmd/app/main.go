package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"mestrack/cmd"
	httpadapter "mestrack/internal/adapters/in/http"
	"mestrack/internal/adapters/out/postgres/defectrepo"
	"mestrack/internal/adapters/out/postgres/operationrepo"
	"mestrack/internal/adapters/out/postgres/partrepo"
	"mestrack/internal/adapters/out/postgres/serialrepo"
	redisadapter "mestrack/internal/adapters/out/redis"
	"mestrack/internal/jobs"

	goredis "github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustOpenDB(configs)

	redisClient := goredis.NewClient(&goredis.Options{
		Addr:     configs.RedisAddr,
		Password: configs.RedisPassword,
	})
	notifier := redisadapter.NewNotifier(redisClient, logger)

	app := cmd.NewCompositionRoot(configs, gormDB, notifier)

	jobManager := jobs.NewJobManager(
		app.CreateReportStalledClaimsCommandHandler(),
		stalledClaimThreshold(configs),
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:              goDotEnvVariable("HTTP_PORT"),
		DBHost:                goDotEnvVariable("DB_HOST"),
		DBPort:                goDotEnvVariable("DB_PORT"),
		DBUser:                goDotEnvVariable("DB_USER"),
		DBPassword:            goDotEnvVariable("DB_PASSWORD"),
		DBName:                goDotEnvVariable("DB_NAME"),
		DBSslMode:             goDotEnvVariable("DB_SSLMODE"),
		RedisAddr:             goDotEnvVariable("REDIS_ADDR"),
		RedisPassword:         goDotEnvVariable("REDIS_PASSWORD"),
		StalledClaimThreshold: goDotEnvVariable("STALLED_CLAIM_THRESHOLD"),
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

// stalledClaimThreshold parses the configured threshold, defaulting to two
// hours when unset.
func stalledClaimThreshold(configs cmd.Config) time.Duration {
	if configs.StalledClaimThreshold == "" {
		return 2 * time.Hour
	}

	threshold, err := time.ParseDuration(configs.StalledClaimThreshold)
	if err != nil {
		log.Fatalf("Error parsing STALLED_CLAIM_THRESHOLD: %v", err)
	}
	return threshold
}

// mustOpenDB connects to PostgreSQL and migrates the schema. TranslateError
// is required: serial allocation retries on gorm.ErrDuplicatedKey.
func mustOpenDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&partrepo.PartDTO{},
		&operationrepo.OperationDTO{},
		&serialrepo.SerialDTO{},
		&serialrepo.ProcessRecordDTO{},
		&defectrepo.DefectDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpadapter.NewServer(
		app.CreateCreateSerialCommandHandler(),
		app.CreateCreateSerialBatchCommandHandler(),
		app.CreateStartOperationCommandHandler(),
		app.CreateApproveOperationCommandHandler(),
		app.CreateRejectOperationCommandHandler(),
		app.CreateReleaseOperationCommandHandler(),
		app.CreateReassignOperationCommandHandler(),
		app.CreateAssignDefectCommandHandler(),
		app.CreateResolveDefectCommandHandler(),
		app.CreateGetSerialHistoryQueryHandler(),
		app.CreateGetPendingWorkQueryHandler(),
		app.CreateGetYieldStatsQueryHandler(),
		app.CreateGetDefectSummaryQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
