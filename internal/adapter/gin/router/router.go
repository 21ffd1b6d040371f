package router

import (
	"net/http"
	"time"

	"signup-service/api"
	"signup-service/internal/adapter/gin/handler"
	"signup-service/internal/adapter/gin/middleware"
	"signup-service/internal/config"
	"signup-service/pkg/logger"
	"signup-service/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/static"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// OpenAPIPath serves the embedded OpenAPI document consumed by the Swagger UI
const OpenAPIPath = "/docs/openapi.json"

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(signUpHandler *handler.SignUpHandler, cfg *config.Config, log *zap.Logger) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(logger.RequestID())
	router.Use(ginzap.GinzapWithConfig(log, &ginzap.Config{
		TimeFormat: time.RFC3339,
		UTC:        true,
		SkipPaths:  []string{"/health", "/metrics"},
		Context: func(c *gin.Context) []zapcore.Field {
			return []zapcore.Field{zap.String("request_id", logger.GetRequestID(c.Request.Context()))}
		},
	}))
	router.Use(ginzap.RecoveryWithZap(log, true))
	router.Use(middleware.Metrics())

	if len(cfg.App.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:  cfg.App.AllowedOrigins,
			AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:  []string{"Origin", "Content-Type", logger.RequestIDHeader},
			ExposeHeaders: []string{logger.RequestIDHeader},
			MaxAge:        12 * time.Hour,
		}))
	}

	// Sign-up form
	if cfg.App.StaticDir != "" {
		router.Use(static.Serve("/", static.LocalFile(cfg.App.StaticDir, false)))
		log.Info("serving static files", zap.String("dir", cfg.App.StaticDir))
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": cfg.Logger.ServiceName,
		})
	})

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API documentation
	router.GET(OpenAPIPath, func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", api.OpenAPI)
	})
	router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL(OpenAPIPath))))

	// Sign-up routes
	router.POST("/signup", signUpHandler.SignUp)
	router.GET("/admin/users", signUpHandler.ListUsers)
	router.GET("/test-email", signUpHandler.TestEmail)

	return router
}
