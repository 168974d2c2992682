package main

import (
	"context"
	"net/http"
	"time"

	"github.com/examhive/examhive/config"
	"github.com/examhive/examhive/database"
	_ "github.com/examhive/examhive/docs" // Swagger docs - auto-generated
	"github.com/examhive/examhive/internal/clock"
	adminctrl "github.com/examhive/examhive/internal/controller/admin"
	authctrl "github.com/examhive/examhive/internal/controller/auth"
	"github.com/examhive/examhive/internal/controller/middleware"
	userctrl "github.com/examhive/examhive/internal/controller/user"
	"github.com/examhive/examhive/internal/logger"
	"github.com/examhive/examhive/internal/model"
	"github.com/examhive/examhive/internal/repository"
	"github.com/examhive/examhive/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title ExamHive API
// @version 1.0
// @description Timed-exam platform: teachers author tests with a question set and a time window; students start an attempt, answer, and submit before their personal deadline; attempts are scored deterministically and kept for review.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			clock.NewSystemClock,
			NewGinEngine,
		),

		// Repositories layer
		fx.Provide(
			repository.NewTestRepository,
			repository.NewAttemptRepository,
			repository.NewUserRepository,
		),

		// Services layer
		fx.Provide(
			service.NewSubmissionValidator,
			service.NewScoringEngine,
			service.NewResultProjector,
			service.NewAttemptLifecycleService,
			service.NewTestService,
			service.NewAuthService,
		),

		// API controllers layer
		fx.Provide(
			authctrl.NewAuthController,
			adminctrl.NewAdminTestController,
			userctrl.NewTestController,
			userctrl.NewAttemptController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	// Request logging through the global zerolog instance.
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages the HTTP
// server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authService service.AuthService,
	authController *authctrl.AuthController,
	adminTestCtrl *adminctrl.AdminTestController,
	testCtrl *userctrl.TestController,
	attemptCtrl *userctrl.AttemptController,
) {
	apiV1 := router.Group("/api/v1")

	apiV1.POST("/auth/login", authController.Login)

	// Staff routes: test management and results.
	staffGroup := apiV1.Group("/staff", middleware.RequireAuth(authService), middleware.RequireRoles(model.RoleTeacher, model.RoleAdmin))
	{
		staffGroup.POST("/tests", adminTestCtrl.CreateTest)
		staffGroup.GET("/tests", adminTestCtrl.GetAllTests)
		staffGroup.PUT("/tests/:test_id", adminTestCtrl.UpdateTest)
		staffGroup.DELETE("/tests/:test_id", adminTestCtrl.DeleteTest)
		staffGroup.GET("/tests/:test_id/results", adminTestCtrl.GetTestResults)
	}

	// Authenticated routes for all roles; projection hides the answer key
	// from students.
	authGroup := apiV1.Group("", middleware.RequireAuth(authService))
	{
		authGroup.GET("/tests", testCtrl.GetTodayTests)
		authGroup.GET("/tests/:test_id", testCtrl.GetTest)

		authGroup.POST("/tests/:test_id/attempts/start", attemptCtrl.StartAttempt)
		authGroup.POST("/tests/:test_id/attempts", attemptCtrl.SubmitAttempt)
		authGroup.GET("/my-attempts", attemptCtrl.GetPastAttempts)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("ExamHive API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Test{},
		&model.Question{},
		&model.Attempt{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
