package middleware

import (
	"catalog/errs"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	RequestIDHeader  = "X-Request-ID"
	contextRequestID = "requestId"
)

// RequestID propagates the caller's X-Request-ID or generates one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(contextRequestID, reqID)
		c.Header(RequestIDHeader, reqID)
		c.Next()
	}
}

func GetRequestID(c *gin.Context) string {
	return c.GetString(contextRequestID)
}

// RequestLogger puts a logger tagged with the request id into the request
// context, retrievable with zerolog.Ctx, and logs every completed request.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqLogger := logger.With().Str("request_id", GetRequestID(c)).Logger()
		c.Request = c.Request.WithContext(reqLogger.WithContext(c.Request.Context()))

		c.Next()

		status := c.Writer.Status()
		event := reqLogger.Info()
		switch {
		case status >= 500:
			event = reqLogger.Error()
		case status >= 400:
			event = reqLogger.Warn()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Int("bytes_written", c.Writer.Size()).
			Dur("duration", time.Since(start)).
			Str("remote_addr", c.ClientIP()).
			Str("user_agent", c.Request.UserAgent()).
			Msg("Request completed")
	}
}

// Recoverer turns a panic into a 500 handled by ErrorHandler.
func Recoverer() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rvr := recover(); rvr != nil {
				zerolog.Ctx(c.Request.Context()).Error().
					Interface("panic", rvr).
					Msg("Panic recovered")
				abort(c, errs.NewInternalServerError())
			}
		}()
		c.Next()
	}
}
