package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"userhub/logger"
)

const requestIdHeader = "X-Request-Id"

// RequestId assigns each request a uuid (honoring one supplied by a trusted
// proxy) and logs method, path, status and latency.
func RequestId() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIdHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIdHeader, id)

		start := time.Now()
		c.Next()

		logger.Debugf("%s %s %d %s rid=%s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start), id)
	}
}
