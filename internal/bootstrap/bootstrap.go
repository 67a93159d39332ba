package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	appControllers "github.com/yigit/curricula/internal/app/controllers"
	appMigrations "github.com/yigit/curricula/internal/app/migrations"
	appRepos "github.com/yigit/curricula/internal/app/repositories"
	appRoutes "github.com/yigit/curricula/internal/app/routes"
	appServices "github.com/yigit/curricula/internal/app/services"
	"github.com/yigit/curricula/internal/config"
	"github.com/yigit/curricula/internal/db"
	appMiddleware "github.com/yigit/curricula/internal/middleware"
	"github.com/yigit/curricula/internal/observability"
	pkgAuth "github.com/yigit/curricula/internal/pkg/auth"
	"github.com/yigit/curricula/internal/pkg/cache"
	"github.com/yigit/curricula/internal/pkg/helpers"
	"github.com/yigit/curricula/internal/pkg/logger"
	"github.com/yigit/curricula/internal/pkg/websocket"
	"github.com/yigit/curricula/internal/seed"
)

// Version is reported by the tracer resource and the CLI.
const Version = "1.0.0"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos            *appRepos.Repositories
	JWTService       *pkgAuth.JWTService
	AuthService      *appServices.AuthService
	ProgrammeService *appServices.ProgrammeService
	CourseService    *appServices.CourseService
	AuditService     *appServices.AuditService
	AuthMiddleware   *appMiddleware.AuthMiddleware
	RateLimiter      appMiddleware.Limiter // nil without Redis
	Hub              *websocket.Hub
	Controllers      appRoutes.Controllers
	Logger           zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.ConfigFromStrings(cfg.Logging.Level, cfg.Logging.Format))

	lgr := log.Logger
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// ConnectDatabase opens the connection pool without touching the schema.
func ConnectDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	return database, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	database, err := ConnectDatabase(ctx, cfg, lgr)
	if err != nil {
		return nil, err
	}

	if _, err := RunMigrations(ctx, cfg, database, lgr); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// RunMigrations applies pending migration files and returns their names.
func RunMigrations(ctx context.Context, cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) ([]string, error) {
	lgr.Info().Str("dir", cfg.Database.MigrationsDir).Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, cfg.Database.MigrationsDir)

	applied, err := migrator.Up(ctx)
	if err != nil {
		lgr.Error().Err(err).Strs("applied", applied).Msg("Database migration error")
		return applied, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Strs("applied", applied).Msg("Database migrations successfully applied.")
	return applied, nil
}

// SetupRedis connects to Redis when an address is configured. A missing or
// unreachable Redis leaves the graph cache and rate limiter switched off.
func SetupRedis(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) *goredis.Client {
	if !cfg.RedisEnabled() {
		lgr.Info().Msg("Redis not configured, graph cache and rate limiting disabled")
		return nil
	}

	rdb, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		lgr.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unavailable, continuing without cache")
		return nil
	}
	lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Connected to Redis")
	return rdb
}

// SetupTracing installs the OpenTelemetry tracer provider.
func SetupTracing(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (func(context.Context) error, error) {
	shutdown, err := observability.InitTracing(ctx, observability.TracingConfig{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		Version:     Version,
		Endpoint:    cfg.Tracing.Endpoint,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialise tracing")
		return nil, err
	}
	if cfg.Tracing.Enabled {
		lgr.Info().Str("endpoint", cfg.Tracing.Endpoint).Float64("sampleRatio", cfg.Tracing.SampleRatio).Msg("Tracing enabled")
	}
	return shutdown, nil
}

// BuildServices wires repositories and services. The CLI uses it on its own
// for commands that need no HTTP layer.
func BuildServices(cfg *config.Config, database *db.PostgresDB, rdb *goredis.Client, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Logger: lgr}
	deps.Repos = appRepos.NewRepositories(database)

	// A typed nil *cache.GraphCache would not compare equal to nil inside
	// the services, so the interface stays unset without Redis.
	var graphCache appServices.GraphCache
	if rdb != nil {
		graphCache = cache.NewGraphCache(rdb, helpers.ParseDuration(cfg.Curriculum.GraphCacheTTL, 10*time.Minute))
		deps.RateLimiter = cache.NewRateLimiter(rdb, cfg.RateLimit.Requests, helpers.ParseDuration(cfg.RateLimit.Window, time.Minute))
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 8*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(appServices.AdminCredentials{
		Username:     cfg.Admin.Username,
		PasswordHash: cfg.Admin.PasswordHash,
	}, deps.JWTService, logger.WithComponent("auth"))

	deps.ProgrammeService = appServices.NewProgrammeService(
		deps.Repos.ProgrammeRepository,
		graphCache,
		logger.WithComponent("programmes"),
	)
	deps.CourseService = appServices.NewCourseService(
		deps.Repos.CourseRepository,
		deps.Repos.ProgrammeRepository,
		graphCache,
		cfg.Curriculum.MaxCredits,
		logger.WithComponent("courses"),
	)
	deps.AuditService = appServices.NewAuditService(
		deps.Repos.ProgrammeRepository,
		deps.Repos.CourseRepository,
		cfg.Curriculum.AuditWorkers,
		logger.WithComponent("audit"),
	)
	return deps
}

// BuildDependencies initializes repositories, services, middleware and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, rdb *goredis.Client, lgr zerolog.Logger) *Dependencies {
	deps := BuildServices(cfg, database, rdb, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Hub = websocket.NewHub(cfg.Server.AllowedOrigins, logger.WithComponent("events"))
	deps.ProgrammeService.SetNotifier(deps.Hub)
	deps.CourseService.SetNotifier(deps.Hub)

	checks := map[string]appControllers.Pinger{
		"database": database.Ping,
	}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	deps.Controllers = appRoutes.Controllers{
		Auth:      appControllers.NewAuthController(deps.AuthService, deps.Logger),
		Programme: appControllers.NewProgrammeController(deps.ProgrammeService),
		Course:    appControllers.NewCourseController(deps.CourseService),
		Graph:     appControllers.NewGraphController(deps.CourseService),
		Health:    appControllers.NewHealthController(checks, deps.Logger),
		Events:    appControllers.NewEventsController(deps.ProgrammeService, deps.Hub),
	}
	return deps
}

// SeedDefaultData installs the sample programme when seeding is enabled.
// Failures are logged and do not stop the server.
func SeedDefaultData(ctx context.Context, cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) {
	if !cfg.Database.Seed {
		return
	}
	if err := seed.CreateDefaultData(ctx, deps.ProgrammeService, deps.CourseService, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		otelgin.Middleware(cfg.Tracing.ServiceName),
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(logger.WithComponent("http")),
		appMiddleware.Metrics(),
		appMiddleware.CORS(cfg.Server.AllowedOrigins),
	)
	if deps.RateLimiter != nil {
		router.Use(appMiddleware.RateLimit(deps.RateLimiter, lgr))
	}

	appRoutes.SetupSwagger(router)
	appRoutes.SetupMetrics(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
