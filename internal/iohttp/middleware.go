package iohttp

import (
	"log/slog"
	"time"

	"github.com/ecoglobe/biosync/internal/iologger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// requestID keeps an incoming request id or generates a new one. The
// request context gets a logger tagged with the id.
func requestID(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		ctx := iologger.WithLogger(c.Request.Context(),
			log.With("request_id", id))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// reqLog returns the logger of a request.
func reqLog(c *gin.Context, fallback *slog.Logger) *slog.Logger {
	return iologger.FromContext(c.Request.Context(), fallback)
}

func logger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		log.Info("HTTP request",
			"request_id", c.GetString("request_id"),
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"ip", c.ClientIP(),
		)
	}
}

func recovery(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error("Panic recovered",
					"request_id", c.GetString("request_id"),
					"error", err,
				)
				internalError(c)
			}
		}()
		c.Next()
	}
}
