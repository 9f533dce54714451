package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	ContextRequestID = "requestID"
	ContextLogger    = "logger"

	HeaderRequestID = "X-Request-ID"
)

// RequestLogger coloca no contexto um logger com request_id e registra
// cada requisição ao final.
func RequestLogger(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		log := base.With(zap.String("request_id", requestID))

		c.Set(ContextRequestID, requestID)
		c.Set(ContextLogger, log)
		c.Writer.Header().Set(HeaderRequestID, requestID)

		started := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(started)),
		}

		switch {
		case status >= 500:
			Logger(c).Error("request", fields...)
		case status >= 400:
			Logger(c).Info("request", fields...)
		default:
			Logger(c).Debug("request", fields...)
		}
	}
}

// Logger devolve o logger da requisição, ou um no-op fora do middleware.
func Logger(c *gin.Context) *zap.Logger {
	if v, ok := c.Get(ContextLogger); ok {
		if log, ok := v.(*zap.Logger); ok {
			return log
		}
	}
	return zap.NewNop()
}
