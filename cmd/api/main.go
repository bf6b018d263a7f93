package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/autoprotege/app-sinistro/internal/config"
	"github.com/autoprotege/app-sinistro/internal/handlers"
	"github.com/autoprotege/app-sinistro/internal/logging"
	"github.com/autoprotege/app-sinistro/internal/middleware"
	"github.com/autoprotege/app-sinistro/internal/observability"
	"github.com/autoprotege/app-sinistro/internal/services"
	"github.com/autoprotege/app-sinistro/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/autoprotege/app-sinistro/docs"
)

// @title           API de Sinistros
// @version         1.0
// @description     API do assistente de abertura de sinistros e do painel administrativo. Cobre o fluxo guiado de abertura (colisão, furto e roubo), geração de números de sinistro, links de conclusão para ocorrências abertas pelo gestor, extração OCR de documentos e upload de fotos.

// @contact.name   API Support

// @host      localhost:8080
// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @tag.name sinistro
// @tag.description Operações sobre sinistros

// @tag.name intake
// @tag.description Avaliação do assistente de abertura

// @tag.name status
// @tag.description Registro de status de sinistro

// @tag.name completion-link
// @tag.description Links de conclusão de ocorrência

// @tag.name auth
// @tag.description Autenticação do painel

// @tag.name health
// @tag.description Verificação de saúde

func main() {
	// Local development convenience; missing .env is not an error
	_ = godotenv.Load()

	// Initialize logger first
	if err := logging.InitLogger(); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logging.Logger.Fatal("failed to load config", zap.Error(err))
	}

	// Initialize observability
	observability.InitTracer()
	defer observability.ShutdownTracer()

	// Initialize database connections
	config.InitMongoDB()
	config.InitRedis()

	// Initialize the async audit pipeline before anything that audits
	utils.InitAuditWorker(config.AppConfig.AuditWorkers, config.AppConfig.AuditBufferSize)

	// Initialize services. The claim service doubles as the completion-link
	// token store.
	services.InitClaimNumberGenerator()
	services.InitStatusRegistry()
	services.InitClaimService()
	services.InitCompletionLinkService(services.ClaimServiceInstance)
	services.InitAuthService()
	services.InitOCRClient()
	services.InitPhotoService(context.Background())

	// Set Gin mode
	if config.AppConfig.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router with middleware
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RequestTracker(),
		cors.Default(),
	)

	// Metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/v1")
	{
		v1.GET("/health", handlers.HealthCheck)

		// Public intake surface used by the wizard frontend. Claim creation
		// accepts an optional session so dashboard-created claims are flagged
		// as manager-created.
		v1.POST("/sinistros", middleware.OptionalAuthMiddleware(), handlers.CreateSinistro)
		v1.POST("/intake/steps", handlers.EvaluateIntakeSteps)
		v1.GET("/status", handlers.GetStatuses)
		v1.POST("/ocr/extract", handlers.ExtractDocument)
		v1.POST("/fotos/presign", handlers.PresignPhotoUpload)

		// Completion links are validated by the client without a session
		v1.GET("/sinistros/completion-link", handlers.ValidateCompletionLink)

		v1.POST("/auth/login", handlers.Login)

		// Dashboard surface
		authed := v1.Group("")
		authed.Use(middleware.AuthMiddleware())
		{
			authed.GET("/sinistros", middleware.RequireManager(), handlers.ListSinistros)
			authed.GET("/sinistros/:id", middleware.RequireManager(), handlers.GetSinistro)
			authed.PUT("/sinistros/:id/status", middleware.RequireManager(), handlers.UpdateSinistroStatus)
			authed.POST("/sinistros/completion-link", middleware.RequireManager(), handlers.IssueCompletionLink)
			authed.POST("/status/invalidate", middleware.RequireAdmin(), handlers.InvalidateStatusCache)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Create server with timeouts
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", config.AppConfig.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logging.Logger.Info("starting server",
			zap.Int("port", config.AppConfig.Port),
			zap.String("environment", config.AppConfig.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	logging.Logger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	// Drain pending audit writes before exiting
	utils.GetAuditWorker().Stop()

	logging.Logger.Info("server exited gracefully")
}
