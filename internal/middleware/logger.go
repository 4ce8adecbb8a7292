package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/google/uuid"
)

// RequestIDKey is the request id header.
const RequestIDKey = "X-Request-ID"

// Logger assigns each request an id and logs start/completion with
// latency and status. Health probes are skipped to keep the logs quiet.
func Logger() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		start := time.Now()
		path := string(c.Path())

		skipLogging := path == "/ping" || path == "/api/health"

		requestID := string(c.Request.Header.Peek(RequestIDKey))
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Response.Header.Set(RequestIDKey, requestID)

		var logger *slog.Logger
		if !skipLogging {
			logger = slog.Default().With(
				"request_id", requestID,
				"method", string(c.Method()),
				"path", path,
				"client_ip", c.ClientIP(),
			)
			logger.Info("request started")
		}

		c.Next(ctx)

		if !skipLogging {
			latency := time.Since(start)
			statusCode := c.Response.StatusCode()

			logger = logger.With(
				"status", statusCode,
				"latency_ms", latency.Milliseconds(),
			)

			switch {
			case statusCode >= 500:
				logger.Error("request completed with server error")
			case statusCode >= 400:
				logger.Warn("request completed with client error")
			default:
				logger.Info("request completed")
			}
		}
	}
}

// GetRequestID returns the request id assigned by Logger.
func GetRequestID(c *app.RequestContext) string {
	return string(c.Response.Header.Peek(RequestIDKey))
}
