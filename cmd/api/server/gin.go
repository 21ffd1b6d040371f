package server

import (
	"net/http"
	"time"

	ginhandler "signup-service/internal/adapter/gin/handler"
	ginrouter "signup-service/internal/adapter/gin/router"
	"signup-service/internal/config"

	"go.uber.org/zap"
)

// SetupGinServer creates and configures the Gin HTTP server
func SetupGinServer(handler *ginhandler.SignUpHandler, cfg *config.Config, l *zap.Logger) *http.Server {
	// Setup Gin router with all middleware and routes
	router := ginrouter.SetupRouter(handler, cfg, l)

	addr := cfg.App.Addr()
	l.Info("HTTP server configured",
		zap.String("address", addr),
		zap.String("swagger", "http://localhost"+addr+"/swagger/index.html"),
	)

	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
