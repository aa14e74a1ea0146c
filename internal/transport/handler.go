package transport

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go-safety-poster/internal/config"
	"go-safety-poster/internal/controller"
	apperrors "go-safety-poster/internal/errors"
	"go-safety-poster/internal/generator"
	"go-safety-poster/internal/logger"
	"go-safety-poster/internal/metrics"
	"go-safety-poster/internal/observer"
	"go-safety-poster/internal/poster"
	"go-safety-poster/internal/view"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Dependencies are the collaborators the HTTP handler needs.
type Dependencies struct {
	Config    *config.Config
	Generator generator.Generator
	Templates *template.Template
	// Guard is shared by all requests so one client cannot run two
	// submissions at once.
	Guard     *controller.Guard
	Publisher observer.Subject
	Stats     *observer.MetricsObserver
}

type handler struct {
	deps Dependencies
}

func NewHandler(deps Dependencies) (http.Handler, error) {
	if deps.Guard == nil {
		deps.Guard = controller.NewGuard()
	}
	h := &handler{deps: deps}

	r := gin.New()
	// The guard is keyed by client IP, so forwarded headers only count
	// when they come from a configured proxy.
	if err := r.SetTrustedProxies(deps.Config.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.SetHTMLTemplate(deps.Templates)

	// Add middleware
	r.Use(
		gin.Recovery(),
		requestID(),
		accessLog(),
		requestSizeLimiter(deps.Config.MaxRequestBodySize),
		errorHandler(),
	)

	// Configure routes
	r.GET("/", h.index)
	r.POST("/", h.submit)
	r.POST("/sample", h.sample)
	r.GET("/health", h.healthCheck)
	if deps.Config.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	return r, nil
}

func (h *handler) newPage(c *gin.Context, form poster.Request) *view.Page {
	page := view.NewPage(form)
	page.RequestID = c.GetString(requestIDKey)
	return page
}

func (h *handler) index(c *gin.Context) {
	page := h.newPage(c, poster.Request{})
	controller.New(controller.Config{UI: page.UI()}).Init()
	c.HTML(http.StatusOK, view.PageTemplate, page)
}

func (h *handler) sample(c *gin.Context) {
	form, err := bindForm(c)
	if err != nil {
		c.Error(err)
		return
	}
	page := h.newPage(c, form)
	ctrl := controller.New(controller.Config{UI: page.UI()})
	ctrl.Init()
	ctrl.FillSample()
	c.HTML(http.StatusOK, view.PageTemplate, page)
}

func (h *handler) submit(c *gin.Context) {
	form, err := bindForm(c)
	if err != nil {
		c.Error(err)
		return
	}
	page := h.newPage(c, form)
	log := logger.WithRequestID(page.RequestID).WithField("ip", c.ClientIP())

	endpoint, err := h.deps.Config.EndpointRules().Resolve(c.Request.Host)
	if err != nil {
		log.WithError(err).Error("Failed to resolve generate endpoint")
		page.SetStatus(controller.ErrorStatus(generator.FallbackErrorMessage))
		page.RenderEmpty()
		c.HTML(http.StatusOK, view.PageTemplate, page)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.deps.Config.GenerateTimeout)
	defer cancel()

	ctrl := controller.New(controller.Config{
		UI:        page.UI(),
		Generator: h.deps.Generator,
		Endpoint:  endpoint,
		Guard:     h.deps.Guard,
		GuardKey:  c.ClientIP(),
		Publisher: h.deps.Publisher,
	})

	images, err := ctrl.Submit(ctx)
	switch {
	case errors.Is(err, controller.ErrSubmitInFlight):
		page.SetStatus(controller.StatusBusy)
		c.HTML(apperrors.GetStatusCode(err), view.PageTemplate, page)
		return
	case err != nil:
		// The page already carries the message; the log keeps the cause.
		log.WithError(err).WithFields(logrus.Fields{
			"endpoint":   endpoint,
			"error_type": apperrors.TypeOf(err),
		}).Warn("Poster submission did not complete")
	default:
		log.WithFields(logrus.Fields{
			"endpoint": endpoint,
			"cards":    len(images),
		}).Debug("Poster submission rendered")
	}

	c.HTML(http.StatusOK, view.PageTemplate, page)
}

func (h *handler) healthCheck(c *gin.Context) {
	body := gin.H{
		"status":  "available",
		"version": "1.0.0",
		"time":    time.Now().UTC().Format(time.RFC3339),
	}
	if h.deps.Stats != nil {
		body["submissions"] = h.deps.Stats.GetMetrics()
	}
	c.JSON(http.StatusOK, body)
}

// bindForm reads the form fields. Blank fields bind fine and are left to
// the controller's validation; an unreadable body is a request error.
func bindForm(c *gin.Context) (poster.Request, error) {
	var form poster.Request
	if err := c.ShouldBind(&form); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return poster.Request{}, apperrors.NewPayloadTooLargeError(
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit), err)
		}
		return poster.Request{}, apperrors.NewValidationError("invalid form body", err)
	}
	return form, nil
}

func respondError(c *gin.Context, code int, message string, err error) {
	// Log the error with context
	logger.WithRequestID(c.GetString(requestIDKey)).WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, ErrorResponse{
		Error:   http.StatusText(code),
		Message: fmt.Sprintf("%s: %v", message, err),
	})
}
