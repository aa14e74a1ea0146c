package transport

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	apperrors "go-safety-poster/internal/errors"
	"go-safety-poster/internal/logger"
)

const (
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"
)

// requestID reuses a well-formed incoming X-Request-ID or assigns a new one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := logger.WithRequestID(c.GetString(requestIDKey)).WithFields(logrus.Fields{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"user_agent":  c.Request.UserAgent(),
			"ip":          c.ClientIP(),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Error("Request handled")
			return
		}
		entry.Info("Request handled")
	}
}

func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			err := c.Errors.Last().Err
			respondError(c, determineStatusCode(err), "request processing failed", err)
		}
	}
}

func determineStatusCode(err error) int {
	// Check if it's a custom app error first
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	// Fallback to context-based errors
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
