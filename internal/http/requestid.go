package http

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// requestIDHeader propagates a per-request correlation ID.
const requestIDHeader = "X-Request-ID"

// RequestID assigns a request ID when the client did not send one and
// echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("requestID", id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}
