package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/quizdeck/quiz-api/internal/api/handler"
	"github.com/quizdeck/quiz-api/internal/api/middleware"
	"github.com/quizdeck/quiz-api/internal/core/domain"
	"github.com/quizdeck/quiz-api/internal/core/ports"
	"github.com/quizdeck/quiz-api/internal/core/service"
	"github.com/quizdeck/quiz-api/internal/core/token"
	"github.com/quizdeck/quiz-api/internal/infrastructure/config"
	mongodb "github.com/quizdeck/quiz-api/internal/infrastructure/db/mongo"
	redisdb "github.com/quizdeck/quiz-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	cfg *config.Config,
	db *mongo.Database,
	rdb *redis.Client,
	tokens *token.Service,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("quizapi"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	quizRepo := mongodb.NewQuizRepository(db)
	limiter := redisdb.NewLoginLimiter(rdb)

	authService := service.NewAuthService(userRepo, tokens, limiter, audit, cfg.AdminUsernames, log)
	quizService := service.NewQuizService(quizRepo, audit, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(authService)
	quizHandler := handler.NewQuizHandler(quizService)

	authenticated := middleware.Auth(tokens)
	adminOnly := middleware.RequireMinRole(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/user", authHandler.Register)
	e.POST("/login", authHandler.Login)

	// --- User routes ---
	e.GET("/user/:id", userHandler.Get)
	e.DELETE("/user/:id", userHandler.Delete, authenticated, adminOnly)

	// --- Quiz routes ---
	e.POST("/quiz", quizHandler.Create, authenticated)
	e.GET("/quiz/:id", quizHandler.Get)
	e.DELETE("/quiz/:id", quizHandler.Delete, authenticated)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	e.GET("/metrics", echoprometheus.NewHandler())

	// --- App shell ---
	if cfg.PublicDir != "" {
		e.Use(echomiddleware.StaticWithConfig(echomiddleware.StaticConfig{
			Root:  cfg.PublicDir,
			HTML5: true, // unmatched paths fall back to index.html
		}))
	}

	return e
}
