package http

import (
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/lumora-ai/chatbot-admin/internal/util"
)

// AccessLog logs one line per request with sensitive query values masked.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := log.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"elapsed": time.Since(start).String(),
		}
		if query := util.MaskSensitiveQuery(c.Request.URL.RawQuery); query != "" {
			fields["query"] = query
		}
		if requestID := c.Writer.Header().Get(requestIDHeader); requestID != "" {
			fields["request_id"] = requestID
		}
		log.WithFields(fields).Info("request")
	}
}
