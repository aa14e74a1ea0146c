package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go-safety-poster/internal/config"
	"go-safety-poster/internal/container"
	"go-safety-poster/internal/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.SetLevel(cfg.LogLevel)
	gin.SetMode(gin.ReleaseMode)

	// Initialize dependency injection container
	c, err := container.NewContainer(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	// WriteTimeout has to outlast a full generation round trip.
	server := &http.Server{
		Addr:         cfg.ServerAddress(),
		Handler:      c.Handler(),
		ReadTimeout:  cfg.RequestTimeout,
		WriteTimeout: cfg.GenerateTimeout + cfg.RequestTimeout,
	}

	// Start server in a goroutine
	go func() {
		logger.WithFields(logrus.Fields{
			"address":          cfg.ServerAddress(),
			"generate_timeout": cfg.GenerateTimeout,
			"local_endpoint":   cfg.GenerateLocalURL,
			"relative_path":    cfg.GeneratePath,
			"base_url":         cfg.GenerateBaseURL,
			"trusted_proxies":  cfg.TrustedProxies,
		}).Info("Starting HTTP server")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("Server forced to shutdown")
	}

	logger.WithFields(logrus.Fields(c.Stats().GetMetrics())).Info("Server exited")
}
