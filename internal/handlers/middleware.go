package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// requestID echoes the caller's X-Request-ID or issues a new one.
func (h *Handler) requestID(c *gin.Context) {
	id := c.GetHeader(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(requestIDKey, id)
	c.Header(requestIDHeader, id)
	c.Next()
}

// accessLog writes one debug line per request; the dashboard polls often.
func (h *Handler) accessLog(c *gin.Context) {
	start := time.Now()
	c.Next()

	if h.log == nil {
		return
	}
	h.log.Debugw("http_request",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"status", c.Writer.Status(),
		"latency", time.Since(start),
		"request_id", c.GetString(requestIDKey),
	)
}
