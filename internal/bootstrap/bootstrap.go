package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/coursereg/internal/app/controllers"
	appMigrations "github.com/yigit/coursereg/internal/app/migrations"
	appRepos "github.com/yigit/coursereg/internal/app/repositories"
	"github.com/yigit/coursereg/internal/app/repositories/memrepo"
	appRoutes "github.com/yigit/coursereg/internal/app/routes"
	appServices "github.com/yigit/coursereg/internal/app/services"
	"github.com/yigit/coursereg/internal/config"
	"github.com/yigit/coursereg/internal/db"
	appMiddleware "github.com/yigit/coursereg/internal/middleware"
	pkgAuth "github.com/yigit/coursereg/internal/pkg/auth"
	"github.com/yigit/coursereg/internal/pkg/helpers"
	"github.com/yigit/coursereg/internal/pkg/logger"
	"github.com/yigit/coursereg/internal/pkg/session"
	"github.com/yigit/coursereg/internal/pkg/validation"
	"github.com/yigit/coursereg/internal/seed"
	"github.com/yigit/coursereg/internal/web"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos                  *appRepos.Repositories
	AuthService            appServices.AuthService
	CourseService          appServices.CourseService
	RegistrationService    appServices.RegistrationService
	AuthController         *appControllers.AuthController
	CourseController       *appControllers.CourseController
	RegistrationController *appControllers.RegistrationController
	SessionStore           session.Store
	SessionMiddleware      *appMiddleware.SessionMiddleware
	Logger                 zerolog.Logger
}

// Close releases resources owned by the dependencies.
func (d *Dependencies) Close() error {
	if closer, ok := d.SessionStore.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase opens the configured persistence layer, applies migrations
// and seeds the course catalog. The pool is nil for the memory driver.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, *appRepos.Repositories, error) {
	if cfg.Database.Driver == config.DriverMemory {
		lgr.Warn().Msg("Using in-memory storage; data is lost on restart")
		repos := memrepo.New()
		seedCourses(ctx, repos, lgr)
		return nil, repos, nil
	}

	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, nil, err
	}
	dbPool := database.Pool
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool, lgr)

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); errors.Is(err, os.ErrNotExist) {
		dbPool.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		dbPool.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	repos := appRepos.NewRepositories(dbPool)
	seedCourses(ctx, repos, lgr)

	return dbPool, repos, nil
}

// seedCourses failing does not stop startup.
func seedCourses(ctx context.Context, repos *appRepos.Repositories, lgr zerolog.Logger) {
	if err := seed.CreateDefaultData(ctx, repos.CourseRepository, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}
}

// NewSessionStore builds the configured session store.
func NewSessionStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (session.Store, error) {
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		store, err := session.NewRedisStore(ctx, session.RedisOptions{
			Addr:     cfg.Session.RedisAddr,
			Password: cfg.Session.RedisPassword,
			DB:       cfg.Session.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		lgr.Info().Str("addr", cfg.Session.RedisAddr).Msg("Using Redis session store")
		return store, nil
	default:
		lgr.Info().Msg("Using in-memory session store")
		return session.NewMemoryStore(), nil
	}
}

// BuildDependencies initializes application services, controllers and the
// session layer on top of repos.
func BuildDependencies(cfg *config.Config, repos *appRepos.Repositories, store session.Store, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Repos:        repos,
		SessionStore: store,
		Logger:       lgr,
	}

	var err error
	hasher := pkgAuth.NewPasswordHasher(cfg.Auth.BcryptCost)
	deps.AuthService, err = appServices.NewAuthService(repos.UserRepository, hasher, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}
	deps.CourseService = appServices.NewCourseService(repos.CourseRepository, repos.RegistrationRepository)
	deps.RegistrationService = appServices.NewRegistrationService(repos.CourseRepository, repos.RegistrationRepository, lgr)

	deps.SessionMiddleware = appMiddleware.NewSessionMiddleware(store, appMiddleware.SessionConfig{
		CookieName: cfg.Session.CookieName,
		MaxAge:     helpers.ParseDuration(cfg.Session.MaxAge, 24*time.Hour),
		Secure:     cfg.Session.Secure,
	}, lgr)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService, lgr)
	deps.RegistrationController = appControllers.NewRegistrationController(deps.CourseService, deps.RegistrationService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware, templates and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	switch {
	case cfg.IsProduction():
		gin.SetMode(gin.ReleaseMode)
	case strings.EqualFold(cfg.Server.Mode, gin.TestMode):
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	lgr.Info().Str("mode", gin.Mode()).Msg("Gin mode set")

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestID())
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(deps.SessionMiddleware.Handler())

	if err := validation.RegisterBindingRules(); err != nil {
		return nil, fmt.Errorf("failed to register binding rules: %w", err)
	}

	templates, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	router.SetHTMLTemplate(templates)
	router.StaticFS("/static", web.StaticFS())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CourseController,
		deps.RegistrationController,
	)

	return router, nil
}
