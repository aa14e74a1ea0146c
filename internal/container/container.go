package container

import (
	"fmt"
	"net/http"

	"go-safety-poster/internal/config"
	"go-safety-poster/internal/controller"
	"go-safety-poster/internal/generator"
	"go-safety-poster/internal/logger"
	"go-safety-poster/internal/observer"
	"go-safety-poster/internal/transport"
	"go-safety-poster/internal/view"
)

// Container holds all application dependencies
type Container struct {
	stats   *observer.MetricsObserver
	handler http.Handler
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	templates, err := view.Templates()
	if err != nil {
		return nil, err
	}

	// Build dependency graph
	gen := generator.NewHTTPGenerator(cfg.GenerateTimeout)

	stats := observer.NewMetricsObserver()
	publisher := observer.NewEventPublisher()
	publisher.Subscribe(observer.NewLoggingObserver(logger.Logger))
	publisher.Subscribe(stats)

	handler, err := transport.NewHandler(transport.Dependencies{
		Config:    cfg,
		Generator: gen,
		Templates: templates,
		Guard:     controller.NewGuard(),
		Publisher: publisher,
		Stats:     stats,
	})
	if err != nil {
		return nil, fmt.Errorf("build handler: %w", err)
	}

	return &Container{
		stats:   stats,
		handler: handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Stats returns the in-process submission counters
func (c *Container) Stats() *observer.MetricsObserver {
	return c.stats
}
