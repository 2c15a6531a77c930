package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/thekizzer/microblog/pkg/log"
)

const headerRequestID = "X-Request-ID"

// RequestLogger tags each request with an ID, injects a child logger into
// the request context, and logs the completed request.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader(headerRequestID)
		if reqID == "" {
			reqID = uuid.New().String()
		}

		child := logger.With().
			Str("request_id", reqID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Logger()

		c.Header(headerRequestID, reqID)
		c.Request = c.Request.WithContext(log.WithLogger(c.Request.Context(), child))

		c.Next()

		evt := child.Info().
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start))

		if userID, ok := c.Get(UserIDKey); ok {
			evt = evt.Uint("user_id", userID.(uint))
		}

		evt.Msg("request completed")
	}
}
