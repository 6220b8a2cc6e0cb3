package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/escolaplus/backend/docs" // Import generated swagger docs
	appControllers "github.com/escolaplus/backend/internal/app/controllers"
	appMigrations "github.com/escolaplus/backend/internal/app/migrations"
	appRepos "github.com/escolaplus/backend/internal/app/repositories"
	appRoutes "github.com/escolaplus/backend/internal/app/routes"
	appServices "github.com/escolaplus/backend/internal/app/services"
	"github.com/escolaplus/backend/internal/config"
	"github.com/escolaplus/backend/internal/db"
	appMiddleware "github.com/escolaplus/backend/internal/middleware"
	pkgAuth "github.com/escolaplus/backend/internal/pkg/auth"
	"github.com/escolaplus/backend/internal/pkg/cache"
	"github.com/escolaplus/backend/internal/pkg/helpers"
	"github.com/escolaplus/backend/internal/pkg/logger"
	"github.com/escolaplus/backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService        *appServices.AuthService
	AlunoService       appServices.AlunoService
	ResponsavelService appServices.ResponsavelService
	OcorrenciaService  appServices.OcorrenciaService
	EscolaService      appServices.EscolaService
	TurmaService       appServices.TurmaService
	DisciplinaService  appServices.DisciplinaService
	ProfessorService   appServices.ProfessorService
	FrequenciaService  appServices.FrequenciaService
	NotaService        appServices.NotaService
	DashboardService   appServices.DashboardService

	AuthController       *appControllers.AuthController
	AlunoController      *appControllers.AlunoController
	OcorrenciaController *appControllers.OcorrenciaController
	EscolaController     *appControllers.EscolaController
	TurmaController      *appControllers.TurmaController
	DisciplinaController *appControllers.DisciplinaController
	ProfessorController  *appControllers.ProfessorController
	FrequenciaController *appControllers.FrequenciaController
	DashboardController  *appControllers.DashboardController

	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	Cache          *cache.RedisCache
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool, lgr)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Log the error but don't fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	// Opportunistic cleanup of refresh tokens that expired while the service was down
	if purged, err := appRepos.NewTokenRepository(dbPool).DeleteExpired(context.Background()); err != nil {
		lgr.Warn().Err(err).Msg("Failed to purge expired refresh tokens")
	} else if purged > 0 {
		lgr.Info().Int64("count", purged).Msg("Purged expired refresh tokens")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.Cache = cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	dashboardTTL := helpers.ParseDuration(cfg.Redis.DashboardTTL, 2*time.Minute)

	// Services
	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UsuarioRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
		lgr,
	)
	deps.AlunoService = appServices.NewAlunoService(
		dbPool,
		deps.Repos.AlunoRepository,
		deps.Repos.UsuarioRepository,
		deps.Repos.ResponsavelRepository,
		lgr,
	)
	deps.ResponsavelService = appServices.NewResponsavelService(
		deps.Repos.ResponsavelRepository,
		deps.Repos.AlunoRepository,
		lgr,
	)
	deps.OcorrenciaService = appServices.NewOcorrenciaService(deps.Repos.OcorrenciaRepository, lgr)
	deps.EscolaService = appServices.NewEscolaService(
		deps.Repos.EscolaRepository,
		deps.Repos.ProfessorRepository,
		lgr,
	)
	deps.TurmaService = appServices.NewTurmaService(
		dbPool,
		deps.Repos.TurmaRepository,
		deps.Repos.ProfessorRepository,
		lgr,
	)
	deps.DisciplinaService = appServices.NewDisciplinaService(deps.Repos.DisciplinaRepository, lgr)
	deps.ProfessorService = appServices.NewProfessorService(
		dbPool,
		deps.Repos.ProfessorRepository,
		deps.Repos.UsuarioRepository,
		lgr,
	)
	deps.FrequenciaService = appServices.NewFrequenciaService(
		dbPool,
		deps.Repos.FrequenciaRepository,
		deps.Repos.TurmaRepository,
		deps.Repos.AlunoRepository,
		lgr,
	)
	deps.NotaService = appServices.NewNotaService(
		dbPool,
		deps.Repos.NotaRepository,
		deps.Repos.TurmaRepository,
		deps.Repos.DisciplinaRepository,
		deps.Repos.AlunoRepository,
		lgr,
	)
	deps.DashboardService = appServices.NewDashboardService(
		deps.Repos.StatsRepository,
		deps.Repos.ProfessorRepository,
		deps.Cache,
		dashboardTTL,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	// Controllers
	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.AlunoController = appControllers.NewAlunoController(deps.AlunoService, deps.ResponsavelService)
	deps.OcorrenciaController = appControllers.NewOcorrenciaController(deps.OcorrenciaService)
	deps.EscolaController = appControllers.NewEscolaController(deps.EscolaService)
	deps.TurmaController = appControllers.NewTurmaController(deps.TurmaService, deps.AlunoService)
	deps.DisciplinaController = appControllers.NewDisciplinaController(deps.DisciplinaService)
	deps.ProfessorController = appControllers.NewProfessorController(deps.ProfessorService)
	deps.FrequenciaController = appControllers.NewFrequenciaController(deps.FrequenciaService, deps.NotaService)
	deps.DashboardController = appControllers.NewDashboardController(deps.DashboardService)

	return deps, nil
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

	router := gin.Default()

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.AlunoController,
		deps.OcorrenciaController,
		deps.EscolaController,
		deps.TurmaController,
		deps.DisciplinaController,
		deps.ProfessorController,
		deps.FrequenciaController,
		deps.DashboardController,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
