package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs each request and its outcome. Bodies are never logged,
// so credentials and tokens stay out of the log stream.
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		log.Info("Incoming request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("ip", c.ClientIP()))

		c.Next()

		attrs := []any{
			slog.Int("status", c.Writer.Status()),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Duration("duration", time.Since(start)),
		}
		if user := CurrentUser(c); user != nil {
			attrs = append(attrs, slog.Uint64("user_id", uint64(user.ID)))
		}
		log.Info("Outgoing response", attrs...)
	}
}
