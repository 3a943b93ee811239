package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fadilmartias/careers/internal/config"
	"github.com/fadilmartias/careers/internal/domain/fiber/handler"
	applogger "github.com/fadilmartias/careers/internal/logger"
	"github.com/fadilmartias/careers/internal/middleware"
	"github.com/fadilmartias/careers/internal/model"
	"github.com/fadilmartias/careers/internal/repository"
	"github.com/fadilmartias/careers/internal/service"
	"github.com/fadilmartias/careers/internal/usecase"
	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	log := applogger.New(appConfig)

	app := fiber.New(fiber.Config{
		AppName:      appConfig.Name,
		ErrorHandler: handler.ErrorHandler(log),
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.Metrics())
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	db := ConnectDB(log)
	sessions := ConnectSessions(log)
	notifier, closeNotifier := ConnectNotifier(log)
	defer closeNotifier()

	apps := usecase.NewApplicationUsecase(repository.NewApplicationRepository(db), notifier, log)
	auth, err := usecase.NewAuthUsecase(config.LoadAdminConfig(), sessions, log)
	if err != nil {
		log.Fatal(err)
	}
	handler.RegisterRoutes(app, apps, auth, log)

	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			log.WithField("goroutines", runtime.NumGoroutine()).Debug("runtime stats")
		}
	}()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("shutdown")
		}
	}()

	log.WithField("port", appConfig.Port).Info("server running")
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}
}

// ConnectDB opens postgres, or a local sqlite file when DB_DRIVER=sqlite,
// and migrates the schema.
func ConnectDB(log *logrus.Logger) *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	gormConfig := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)}

	var dialector gorm.Dialector
	switch dbConfig.Driver {
	case "sqlite":
		dialector = sqlite.Open(dbConfig.Path)
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			dbConfig.Host,
			dbConfig.User,
			dbConfig.Password,
			dbConfig.Name,
			dbConfig.Port,
			dbConfig.SSLMode,
		)
		dialector = postgres.Open(dsn)
	default:
		log.Fatalf("unknown DB_DRIVER %q", dbConfig.Driver)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Could not get database instance: %v", err)
	}
	switch {
	case dbConfig.Driver == "sqlite":
		sqlDB.SetMaxOpenConns(1)
	case !appConfig.IsProduction():
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	default:
		sqlDB.SetMaxIdleConns(20)
		sqlDB.SetMaxOpenConns(200)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err := db.AutoMigrate(&model.JobApplication{}); err != nil {
		log.Fatal("migration failed: ", err)
	}
	return db
}

// ConnectSessions uses Redis when REDIS_URL is set so sessions are shared
// between instances and survive restarts.
func ConnectSessions(log *logrus.Logger) repository.SessionRepository {
	redisConfig := config.LoadRedisConfig()
	if redisConfig.URL == "" {
		log.Info("REDIS_URL not set, keeping admin sessions in memory")
		return repository.NewMemorySessionRepository()
	}

	opts, err := redis.ParseURL(redisConfig.URL)
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Could not connect to redis: %v", err)
	}
	return repository.NewRedisSessionRepository(client)
}

func ConnectNotifier(log *logrus.Logger) (service.NotifierInterface, func()) {
	natsConfig := config.LoadNATSConfig()
	if natsConfig.URL == "" {
		return service.NoopNotifier{}, func() {}
	}

	notifier, err := service.NewNATSNotifier(natsConfig)
	if err != nil {
		log.WithError(err).Warn("NATS unavailable, submitted events are not published")
		return service.NoopNotifier{}, func() {}
	}
	log.WithField("subject", natsConfig.Subject).Info("publishing submitted events")
	return notifier, notifier.Close
}
